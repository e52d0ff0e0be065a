package marc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	marcli "github.com/hectorcorrea/marcli/pkg/marc"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

const (
	leaderSize         = 24
	directoryEntrySize = 12
	recordLengthSize   = 5

	subfieldDelimiter = 0x1f
	fieldTerminator   = 0x1e
	recordTerminator  = 0x1d
)

// Reader enumerates ISO 2709 (binary MARC 21) records from an io.Reader.
// The whole input is read and decoded on the first call to Next.
//
//	r := marc.NewReader(file)
//	for r.Next() {
//		rec := r.Record()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	r       io.Reader
	records []*BibRecord
	pos     int
	loaded  bool
	err     error
}

// NewReader creates a new Reader with the given io.Reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next advances to the next record and returns true if one exists.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.loaded {
		r.loaded = true
		data, err := io.ReadAll(r.r)
		if err != nil {
			r.err = fmt.Errorf("%w: reading input: %v", errs.ErrParsingFailed, err)
			return false
		}
		r.records, r.err = DecodeISO2709(data)
		if r.err != nil {
			return false
		}
	}
	if r.pos >= len(r.records) {
		return false
	}
	r.pos++
	return true
}

// Record returns the record read by the last successful call to Next.
func (r *Reader) Record() *BibRecord {
	if r.pos == 0 {
		return nil
	}
	return r.records[r.pos-1]
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every record from rd.
func ReadAll(rd io.Reader) ([]*BibRecord, error) {
	r := NewReader(rd)
	var records []*BibRecord
	for r.Next() {
		records = append(records, r.Record())
	}
	return records, r.Err()
}

// DecodeISO2709 decodes every record in data. Each record's structure is
// checked before the fields are handed to marcli, so a malformed directory
// is reported as ErrParsingFailed instead of reaching the parser.
func DecodeISO2709(data []byte) ([]*BibRecord, error) {
	leaders, end, err := checkRecords(data)
	if err != nil {
		return nil, err
	}
	if len(leaders) == 0 {
		return nil, nil
	}

	// marcli scans an *os.File
	tmp, err := os.CreateTemp("", "callno-*.mrc")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data[:end]); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding temp file: %w", err)
	}

	return scanMarcli(tmp, leaders)
}

func scanMarcli(f *os.File, leaders []string) (records []*BibRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("%w: decoding record %d: %v", errs.ErrParsingFailed, len(records)+1, r)
		}
	}()

	marcFile := marcli.NewMarcFile(f)
	for marcFile.Scan() {
		src, err := marcFile.Record()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", errs.ErrParsingFailed, len(records)+1, err)
		}
		if len(records) >= len(leaders) {
			return nil, fmt.Errorf("%w: more records than terminators", errs.ErrParsingFailed)
		}
		records = append(records, fromMarcli(leaders[len(records)], src))
	}
	if err := marcFile.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning records: %v", errs.ErrParsingFailed, err)
	}
	if len(records) != len(leaders) {
		return nil, fmt.Errorf("%w: decoded %d of %d records", errs.ErrParsingFailed, len(records), len(leaders))
	}
	return records, nil
}

func fromMarcli(leader string, src marcli.Record) *BibRecord {
	rec := NewRecord(leader)
	for _, f := range src.Fields {
		if f.Tag == "LDR" {
			continue
		}
		if f.IsControlField() {
			rec.AddField(NewControlField(f.Tag, unterminated(f.Value)))
			continue
		}
		df := NewDataField(f.Tag, blankIndicator(f.Indicator1), blankIndicator(f.Indicator2))
		for _, sf := range f.SubFields {
			df.AddSubfield(sf.Code, unterminated(sf.Value))
		}
		rec.AddField(df)
	}
	return rec
}

func unterminated(s string) string {
	return strings.TrimRight(s, "\x1e\x1d")
}

func blankIndicator(ind string) string {
	if ind == "" {
		return " "
	}
	return ind
}

// checkRecords walks the records in data and returns their leaders and the
// offset just past the last record terminator.
func checkRecords(data []byte) ([]string, int, error) {
	var leaders []string
	pos := 0
	for pos < len(data) {
		if len(bytes.TrimSpace(data[pos:])) == 0 {
			break
		}
		if len(data)-pos < recordLengthSize {
			return nil, 0, fmt.Errorf("%w: record prefix truncated (%q)", errs.ErrParsingFailed, data[pos:])
		}
		length, ok := digits(data[pos : pos+recordLengthSize])
		if !ok || length <= leaderSize {
			return nil, 0, fmt.Errorf("%w: record prefix invalid (%q)", errs.ErrParsingFailed, data[pos:pos+recordLengthSize])
		}
		if pos+length > len(data) {
			return nil, 0, fmt.Errorf("%w: record body truncated (want %d bytes, have %d)", errs.ErrParsingFailed, length, len(data)-pos)
		}
		raw := data[pos : pos+length]
		if err := checkRecord(raw); err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", len(leaders)+1, err)
		}
		leaders = append(leaders, string(raw[:leaderSize]))
		pos += length
	}
	return leaders, pos, nil
}

func checkRecord(raw []byte) error {
	if raw[len(raw)-1] != recordTerminator {
		return fmt.Errorf("%w: record suffix invalid (%x)", errs.ErrParsingFailed, raw[len(raw)-1])
	}

	base, ok := digits(raw[12:17])
	if !ok || base <= leaderSize || base > len(raw) {
		return fmt.Errorf("%w: invalid base address %q", errs.ErrParsingFailed, raw[12:17])
	}

	dirEnd := bytes.IndexByte(raw[leaderSize:base], fieldTerminator)
	if dirEnd < 0 {
		return fmt.Errorf("%w: directory is not terminated", errs.ErrParsingFailed)
	}
	directory := raw[leaderSize : leaderSize+dirEnd]
	if len(directory)%directoryEntrySize != 0 {
		return fmt.Errorf("%w: directory length %d is not a multiple of %d", errs.ErrParsingFailed, len(directory), directoryEntrySize)
	}

	data := raw[base : len(raw)-1]
	for i := 0; i < len(directory); i += directoryEntrySize {
		entry := directory[i : i+directoryEntrySize]
		fieldLen, ok1 := digits(entry[3:7])
		start, ok2 := digits(entry[7:12])
		if !ok1 || !ok2 || fieldLen == 0 || start+fieldLen > len(data) {
			return fmt.Errorf("%w: bad directory entry %q", errs.ErrParsingFailed, entry)
		}
		if data[start+fieldLen-1] != fieldTerminator {
			return fmt.Errorf("%w: field %s is not terminated", errs.ErrParsingFailed, entry[0:3])
		}
	}
	return nil
}

// digits parses b as an unsigned decimal. Signs and spaces are rejected.
func digits(b []byte) (int, bool) {
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(string(b))
	return n, err == nil
}

// EncodeISO2709 serializes rec. The leader's length and base address positions
// are recomputed; the rest of the leader is kept as is.
func EncodeISO2709(rec *BibRecord) []byte {
	var directory, data bytes.Buffer

	for _, f := range rec.All() {
		var body bytes.Buffer
		if IsControlTag(f.Tag()) {
			body.WriteString(f.Value())
		} else {
			body.WriteString(padIndicator(f.Indicator1()))
			body.WriteString(padIndicator(f.Indicator2()))
			for _, sf := range f.Subfields() {
				body.WriteByte(subfieldDelimiter)
				body.WriteString(sf.Code)
				body.WriteString(sf.Value)
			}
		}
		body.WriteByte(fieldTerminator)

		fmt.Fprintf(&directory, "%s%04d%05d", f.Tag(), body.Len(), data.Len())
		data.Write(body.Bytes())
	}
	directory.WriteByte(fieldTerminator)

	leader := []byte(fmt.Sprintf("%-24s", rec.Leader()))[:leaderSize]
	base := leaderSize + directory.Len()
	total := base + data.Len() + 1
	copy(leader[0:5], fmt.Sprintf("%05d", total))
	copy(leader[12:17], fmt.Sprintf("%05d", base))

	out := make([]byte, 0, total)
	out = append(out, leader...)
	out = append(out, directory.Bytes()...)
	out = append(out, data.Bytes()...)
	out = append(out, recordTerminator)
	return out
}

func padIndicator(ind string) string {
	if ind == "" {
		return " "
	}
	return ind[:1]
}
