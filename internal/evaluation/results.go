package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is the evaluation of one dataset item.
type Result struct {
	ID         string     `json:"id" yaml:"id"`
	Library    string     `json:"library" yaml:"library"`
	CallType   string     `json:"call_type" yaml:"calltype"`
	Resolved   string     `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	State      string     `json:"state" yaml:"state"`
	Expected   string     `json:"expected" yaml:"expected"`
	Actual     string     `json:"actual" yaml:"actual"`
	Reason     string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	Comparison Comparison `json:"comparison" yaml:"comparison"`
}

// Scored reports whether the item had an expected call number to compare
// against and ran without error.
func (r Result) Scored() bool {
	return r.Error == "" && r.Expected != ""
}

// Results are all results of one run.
type Results struct {
	Dataset   string    `json:"dataset"`
	CreatedAt time.Time `json:"created_at"`
	Results   []Result  `json:"results"`
	Summary   *Summary  `json:"summary"`
}

// Summary contains aggregate metrics.
type Summary struct {
	TotalRecords      int                        `json:"total_records" yaml:"totalrecords"`
	Assembled         int                        `json:"assembled" yaml:"assembled"`
	Failed            int                        `json:"failed" yaml:"failed"`
	Errors            int                        `json:"errors" yaml:"errors"`
	Scored            int                        `json:"scored" yaml:"scored"`
	ExactMatches      int                        `json:"exact_matches" yaml:"exactmatches"`
	ExactRate         float64                    `json:"exact_rate" yaml:"exactrate"`
	AverageSimilarity float64                    `json:"average_similarity" yaml:"averagesimilarity"`
	MedianSimilarity  float64                    `json:"median_similarity" yaml:"mediansimilarity"`
	MinSimilarity     float64                    `json:"min_similarity" yaml:"minsimilarity"`
	MaxSimilarity     float64                    `json:"max_similarity" yaml:"maxsimilarity"`
	CallTypes         map[string]CallTypeSummary `json:"call_types" yaml:"calltypes"`
}

// CallTypeSummary aggregates the scored results of one resolved call type.
type CallTypeSummary struct {
	Scored            int     `json:"scored" yaml:"scored"`
	ExactMatches      int     `json:"exact_matches" yaml:"exactmatches"`
	AverageSimilarity float64 `json:"average_similarity" yaml:"averagesimilarity"`
}

// Summarize calculates summary statistics. Failed constructions count as
// scored with an empty call number; errors are not scored.
func Summarize(results []Result) *Summary {
	summary := &Summary{
		TotalRecords: len(results),
		CallTypes:    make(map[string]CallTypeSummary),
	}

	var scores []float64
	typeTotals := make(map[string]float64)

	for _, r := range results {
		switch {
		case r.Error != "":
			summary.Errors++
		case r.Actual != "":
			summary.Assembled++
		default:
			summary.Failed++
		}
		if !r.Scored() {
			continue
		}

		scores = append(scores, r.Comparison.Similarity)
		key := r.Resolved
		if key == "" {
			key = "none"
		}
		ct := summary.CallTypes[key]
		ct.Scored++
		if r.Comparison.Exact {
			summary.ExactMatches++
			ct.ExactMatches++
		}
		typeTotals[key] += r.Comparison.Similarity
		summary.CallTypes[key] = ct
	}

	for key, ct := range summary.CallTypes {
		ct.AverageSimilarity = typeTotals[key] / float64(ct.Scored)
		summary.CallTypes[key] = ct
	}

	summary.Scored = len(scores)
	if len(scores) == 0 {
		return summary
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	summary.AverageSimilarity = total / float64(len(scores))
	summary.ExactRate = float64(summary.ExactMatches) / float64(len(scores))

	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		summary.MedianSimilarity = (scores[mid-1] + scores[mid]) / 2
	} else {
		summary.MedianSimilarity = scores[mid]
	}
	summary.MinSimilarity = scores[0]
	summary.MaxSimilarity = scores[len(scores)-1]

	return summary
}

const (
	resultsFile = "results.json"
	summaryFile = "summary.yaml"
)

// SaveResults writes results.json and summary.yaml to outputDir.
func SaveResults(results *Results, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filepath.Join(outputDir, resultsFile))
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	return saveSummaryYAML(results, filepath.Join(outputDir, summaryFile))
}

// LoadResults loads results.json from resultsDir.
func LoadResults(resultsDir string) (*Results, error) {
	file, err := os.Open(filepath.Join(resultsDir, resultsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var results Results
	if err := json.NewDecoder(file).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	if results.Summary == nil {
		results.Summary = Summarize(results.Results)
	}
	return &results, nil
}

// summarySpec is the YAML layout of summary.yaml: the run, its aggregate
// scores, and the items that did not match exactly.
type summarySpec struct {
	Config struct {
		Dataset   string `yaml:"dataset"`
		Timestamp string `yaml:"timestamp"`
	} `yaml:"config"`
	Summary    *Summary `yaml:"summary"`
	Mismatches []Result `yaml:"mismatches"`
}

func saveSummaryYAML(results *Results, path string) error {
	var spec summarySpec
	spec.Config.Dataset = results.Dataset
	spec.Config.Timestamp = results.CreatedAt.Format("2006-01-02_15-04-05")
	spec.Summary = results.Summary
	spec.Mismatches = []Result{}
	for _, r := range results.Results {
		if (r.Scored() && !r.Comparison.Exact) || r.Error != "" {
			spec.Mismatches = append(spec.Mismatches, r)
		}
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}
