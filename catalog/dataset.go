package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultColumn is the dataset column the legacy model derived brands from.
const DefaultColumn = "name"

// FromDataset derives a catalog from a reference CSV: distinct values of
// column in first-seen order. This reproduces the ordering older models were
// trained with; new deployments should ship the resulting YAML instead.
func FromDataset(r io.Reader, column, version string) (*Catalog, error) {
	if column == "" {
		column = DefaultColumn
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("dataset has no %q column", column)
	}

	seen := make(map[string]struct{})
	brands := make([]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		if col >= len(record) {
			continue
		}
		brand := record[col]
		if brand == "" {
			continue
		}
		if _, ok := seen[brand]; ok {
			continue
		}
		seen[brand] = struct{}{}
		brands = append(brands, brand)
	}
	return New(version, brands)
}

func LoadDataset(path, column, version string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return FromDataset(file, column, version)
}
