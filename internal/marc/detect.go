package marc

import (
	"bytes"
	"io"
	"os"
)

// IsISO2709 reports whether data looks like binary MARC: a five digit record
// length followed by a record terminator somewhere in the data.
func IsISO2709(data []byte) bool {
	if len(data) < leaderSize {
		return false
	}
	for _, b := range data[:recordLengthSize] {
		if b < '0' || b > '9' {
			return false
		}
	}
	return bytes.IndexByte(data, recordTerminator) >= 0
}

// DecodeRecords decodes binary or mnemonic MARC, whichever data holds.
func DecodeRecords(data []byte) ([]*BibRecord, error) {
	if IsISO2709(data) {
		return DecodeISO2709(data)
	}
	return ReadMnemonic(bytes.NewReader(data))
}

// ReadRecords reads r to the end and decodes it with DecodeRecords.
func ReadRecords(r io.Reader) ([]*BibRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}

// ReadFile decodes every record in the named file.
func ReadFile(path string) ([]*BibRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}
