// Package evaluation scores constructed call numbers against the call numbers
// catalogers assigned to the same records.
package evaluation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// DatasetItem is one record with the call number a cataloger assigned to it.
// MARC holds mnemonic or ISO 2709 text.
type DatasetItem struct {
	ID       string `json:"id" parquet:"id"`
	Library  string `json:"library,omitempty" parquet:"library"`
	CallType string `json:"call_type,omitempty" parquet:"call_type"`
	MARC     string `json:"marc" parquet:"marc"`
	Expected string `json:"expected" parquet:"expected"`
}

// Dataset represents a collection of evaluation items
type Dataset struct {
	Items []DatasetItem `json:"items"`
}

const datasetFile = "dataset.json"

// LoadDataset loads a dataset from a .json, .jsonl or .parquet file. A
// directory is read as <dir>/dataset.json.
func LoadDataset(path string) (*Dataset, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, datasetFile)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return loadJSON(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s (supported: .json, .jsonl, .parquet)", ext)
	}
}

func loadJSON(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var dataset Dataset
	if err := json.NewDecoder(file).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &dataset, nil
}

func loadJSONL(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	dataset := &Dataset{}
	scanner := bufio.NewScanner(file)

	// MARC records can be long
	const maxCapacity = 10 * 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item DatasetItem
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		dataset.Items = append(dataset.Items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "items", len(dataset.Items), "lines", lineNum)
	return dataset, nil
}

func loadParquet(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[DatasetItem](pf)
	defer reader.Close()

	dataset := &Dataset{Items: make([]DatasetItem, 0, pf.NumRows())}
	rows := make([]DatasetItem, 128)
	for {
		n, err := reader.Read(rows)
		dataset.Items = append(dataset.Items, rows[:n]...)
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "items", len(dataset.Items))
	return dataset, nil
}

// SaveDataset writes the dataset to <outputDir>/dataset.json.
func SaveDataset(dataset *Dataset, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filepath.Join(outputDir, datasetFile))
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dataset); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// AppendDatasetItems adds items to <outputDir>/dataset.json, creating it when
// it does not exist. An existing item with the same ID is replaced.
func AppendDatasetItems(outputDir string, items ...DatasetItem) error {
	dataset := &Dataset{}
	if _, err := os.Stat(filepath.Join(outputDir, datasetFile)); err == nil {
		existing, err := LoadDataset(outputDir)
		if err != nil {
			return fmt.Errorf("failed to load existing dataset: %w", err)
		}
		dataset = existing
	}

	index := make(map[string]int, len(dataset.Items))
	for i, item := range dataset.Items {
		index[item.ID] = i
	}
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			dataset.Items[i] = item
			continue
		}
		index[item.ID] = len(dataset.Items)
		dataset.Items = append(dataset.Items, item)
	}

	return SaveDataset(dataset, outputDir)
}
