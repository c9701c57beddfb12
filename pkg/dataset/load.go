// Package dataset loads ordered decimal lists from data files. It is the
// data-source collaborator of the solver: any file format reduces to an
// ordered sequence of two-decimal values whose positions the solver
// preserves.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iwvelando/sum-match/pkg/validation"
)

// FormatText and FormatCSV name the supported data file formats.
const (
	FormatText = "txt"
	FormatCSV  = "csv"
)

// LoadFile reads an ordered value list from a file, picking the parser
// from the extension.
func LoadFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		format = FormatText
	case ".csv":
		format = FormatCSV
	default:
		return nil, fmt.Errorf("unsupported data file format %s", filepath.Ext(path))
	}
	return Load(f, format)
}

// Load reads an ordered value list from a reader in the given format and
// validates it (10-200 entries, two-decimal precision). Lines or cells
// that do not parse as numbers are skipped, so headers and annotations
// in hand-maintained files are tolerated.
func Load(r io.Reader, format string) ([]float64, error) {
	var values []float64
	var err error
	switch format {
	case FormatText:
		values, err = parseText(r)
	case FormatCSV:
		values, err = parseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported data format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no numeric values found in data")
	}
	if err := validation.ValidateInputCount(len(values)); err != nil {
		return nil, err
	}
	if err := validation.ValidateValues(values); err != nil {
		return nil, err
	}
	return values, nil
}

// parseText reads one value per line.
func parseText(r io.Reader) ([]float64, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return values, nil
}

// parseCSV reads the first column of each record.
func parseCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var values []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv data: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}
