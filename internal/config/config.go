// Package config loads runtime settings from the environment (and a .env file
// when present) and classification rules from an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/parser"
)

// Config holds the process settings.
type Config struct {
	Library   callno.Library
	Port      string
	RulesPath string
	VuFindURL string
	Rules     parser.Rules
}

// RulesFile is the YAML layout of the rules file:
//
//	fiction_forms: ["1", "f", "j"]
//	sound_fiction_codes: ["f"]
//	dewey_subject_ranges:
//	  - {from: "800", to: "899.999", subject: personal}
type RulesFile struct {
	FictionForms       []string           `yaml:"fiction_forms"`
	SoundFictionCodes  []string           `yaml:"sound_fiction_codes"`
	DeweySubjectRanges []SubjectRangeYAML `yaml:"dewey_subject_ranges"`
}

// SubjectRangeYAML is one dewey_subject_ranges entry. Class numbers are
// strings so leading zeros survive.
type SubjectRangeYAML struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Subject string `yaml:"subject"`
}

// Load reads .env (if present) and the CALLNO_* variables, then the rules file
// named by CALLNO_RULES.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Unable to read .env file", "err", err)
	}

	lib, err := callno.ParseLibrary(getEnv("CALLNO_LIBRARY", string(callno.LibraryBPL)))
	if err != nil {
		return nil, errs.InvalidConfig("CALLNO_LIBRARY", err)
	}

	cfg := &Config{
		Library:   lib,
		Port:      getEnv("CALLNO_PORT", "8888"),
		RulesPath: os.Getenv("CALLNO_RULES"),
		VuFindURL: os.Getenv("VUFIND_URL"),
		Rules:     parser.DefaultRules(),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, errs.InvalidConfig("CALLNO_PORT", fmt.Errorf("port %q is not a number", cfg.Port))
	}

	if cfg.RulesPath != "" {
		rules, err := LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}
	return cfg, nil
}

// LoadRules reads a rules file. Keys missing from the file keep their default
// values.
func LoadRules(path string) (parser.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Rules{}, errs.InvalidConfig("rules file", err)
	}
	return ParseRules(data)
}

// ParseRules parses rules file content.
func ParseRules(data []byte) (parser.Rules, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return parser.Rules{}, errs.InvalidConfig("rules file", err)
	}

	rules := parser.DefaultRules()
	if file.FictionForms != nil {
		rules.FictionForms = file.FictionForms
	}
	if file.SoundFictionCodes != nil {
		rules.SoundFictionCodes = file.SoundFictionCodes
	}
	if file.DeweySubjectRanges != nil {
		rules.DeweySubjectRanges = make([]parser.SubjectRange, 0, len(file.DeweySubjectRanges))
		for i, r := range file.DeweySubjectRanges {
			from, err := strconv.ParseFloat(r.From, 64)
			if err != nil {
				return parser.Rules{}, errs.InvalidConfig("rules file", fmt.Errorf("dewey_subject_ranges[%d].from: %w", i, err))
			}
			to, err := strconv.ParseFloat(r.To, 64)
			if err != nil {
				return parser.Rules{}, errs.InvalidConfig("rules file", fmt.Errorf("dewey_subject_ranges[%d].to: %w", i, err))
			}
			rules.DeweySubjectRanges = append(rules.DeweySubjectRanges, parser.SubjectRange{
				From:    from,
				To:      to,
				Subject: parser.SubjectKind(r.Subject),
			})
		}
	}

	if err := rules.Validate(); err != nil {
		return parser.Rules{}, err
	}
	return rules, nil
}

// Classifier returns a classifier for the configured rules.
func (c *Config) Classifier() *parser.Classifier {
	return parser.NewClassifier(c.Rules)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
