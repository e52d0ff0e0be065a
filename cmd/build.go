package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/config"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

type buildOutput struct {
	ControlNumber string   `json:"control_number"`
	CallType      string   `json:"call_type,omitempty"`
	State         string   `json:"state"`
	CallNumber    string   `json:"call_number,omitempty"`
	Elements      []string `json:"elements,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

func newBuildCmd() *cobra.Command {
	var (
		library  string
		callType string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Build call numbers for MARC records",
		Long: `Reads MARC records from the given files (or stdin) and prints one call
number per record. Binary MARC (.mrc) and mnemonic MARC (.mrk, MarcEdit
"=TAG  ii$a..." lines) are detected automatically.

Records that cannot produce a call number are reported as NO CALL NUMBER
with the reason; they are routed to manual cataloging, not treated as errors.`,
		Example: `  # Auto-detect the pattern for every record in a file
  callno build records.mrc

  # NYPL fiction call numbers as 091 fields
  callno build --library nypl --type fic --format mnemonic records.mrk

  # JSON lines from stdin
  cat record.mrk | callno build --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if library == "" {
				library = string(cfg.Library)
			}
			lib, err := callno.ParseLibrary(library)
			if err != nil {
				return err
			}
			ct, err := callno.ParseCallType(callType)
			if err != nil {
				return err
			}

			records, err := readRecords(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			constructor := callno.New(callno.WithClassifier(cfg.Classifier()))
			return writeCallNumbers(cmd.OutOrStdout(), constructor, records, callno.Request{Library: lib, CallType: ct}, format)
		},
	}

	cmd.Flags().StringVarP(&library, "library", "l", "", "Library: bpl or nypl (default $CALLNO_LIBRARY or bpl)")
	cmd.Flags().StringVarP(&callType, "type", "t", "auto", "Call type: auto, fic, bio, pic, dewey, dewey-subject, ebook, eaudio, evideo")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, mnemonic, json")

	return cmd
}

func readRecords(stdin io.Reader, paths []string) ([]*marc.BibRecord, error) {
	if len(paths) == 0 {
		return marc.ReadRecords(stdin)
	}

	var records []*marc.BibRecord
	for _, path := range paths {
		recs, err := marc.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		slog.Debug("Read MARC file", "path", path, "records", len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

func writeCallNumbers(w io.Writer, constructor *callno.Constructor, records []*marc.BibRecord, req callno.Request, format string) error {
	switch format {
	case "text", "mnemonic", "json":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	enc := json.NewEncoder(w)
	built := 0

	for i, rec := range records {
		id := rec.ControlNumber()
		if id == "" {
			id = fmt.Sprintf("record-%d", i+1)
		}

		res, err := constructor.Construct(rec, req)
		if err != nil {
			slog.Error("Unable to build call number", "control_number", id, "err", err)
		}
		if res.OK() {
			built++
		}

		switch format {
		case "json":
			out := buildOutput{
				ControlNumber: id,
				CallType:      string(res.CallType),
				State:         string(res.State),
				Reason:        res.Reason,
			}
			if res.OK() {
				out.CallNumber = res.CallNumber.String()
				out.Elements = res.CallNumber.Elements()
			}
			if err := enc.Encode(out); err != nil {
				return err
			}
		case "mnemonic":
			if res.OK() {
				fmt.Fprintf(w, "=001  %s\n%s\n\n", id, res.CallNumber.Mnemonic())
			} else {
				fmt.Fprintf(w, "=001  %s\n# NO CALL NUMBER: %s\n\n", id, res.Reason)
			}
		default:
			if res.OK() {
				fmt.Fprintf(w, "%s\t%s\n", id, res.CallNumber)
			} else {
				fmt.Fprintf(w, "%s\tNO CALL NUMBER (%s)\n", id, res.Reason)
			}
		}
	}

	slog.Info("Call numbers built", "records", len(records), "built", built, "library", req.Library)
	return nil
}
