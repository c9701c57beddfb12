// Package output provides utilities for formatting and exporting search
// results. It is the result-sink collaborator of the solver: every
// format marks which original list entries each solution selects.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/sum-match/internal/solver"
	"github.com/iwvelando/sum-match/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, values []float64, target float64, result *solver.Result) {
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "--- %d combination(s) among %d values via %s in %v ---\n",
		len(result.Combinations), len(values), result.Algorithm, result.Elapsed)
	if result.Cancelled {
		_, _ = fmt.Fprintf(w, "search was cancelled; results may be incomplete\n")
	}
	for i, combo := range result.Combinations {
		_, _ = p.Fprintf(w, "#%d sum=%.2f (off by %.2f):", i+1, combo.Sum, mathutil.Round(math.Abs(combo.Sum-target)))
		for j, idx := range combo.Indices {
			_, _ = p.Fprintf(w, " [%d]=%.2f", idx+1, combo.Values[j])
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// CsvFormat writes a solution matrix: one row per input value, one 0/1
// column per solution marking selection, an aggregate selected column,
// and footer rows carrying each solution's sum and its deviation from
// the target.
func CsvFormat(w io.Writer, values []float64, target float64, result *solver.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"index", "value"}
	for i := range result.Combinations {
		header = append(header, fmt.Sprintf("solution %d", i+1))
	}
	header = append(header, "selected")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	selected := make([][]bool, len(result.Combinations))
	for i, combo := range result.Combinations {
		selected[i] = make([]bool, len(values))
		for _, idx := range combo.Indices {
			selected[i][idx] = true
		}
	}

	for row := range values {
		record := []string{
			strconv.Itoa(row + 1),
			strconv.FormatFloat(values[row], 'f', 2, 64),
		}
		any := false
		for i := range result.Combinations {
			if selected[i][row] {
				record = append(record, "1")
				any = true
			} else {
				record = append(record, "0")
			}
		}
		if any {
			record = append(record, "1")
		} else {
			record = append(record, "0")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	sums := []string{"", "sum"}
	diffs := []string{"", "diff to target"}
	for _, combo := range result.Combinations {
		sums = append(sums, strconv.FormatFloat(combo.Sum, 'f', 2, 64))
		diffs = append(diffs, strconv.FormatFloat(mathutil.Round(math.Abs(combo.Sum-target)), 'f', 2, 64))
	}
	sums = append(sums, "")
	diffs = append(diffs, "")
	if err := cw.Write(sums); err != nil {
		return fmt.Errorf("failed to write csv footer: %w", err)
	}
	if err := cw.Write(diffs); err != nil {
		return fmt.Errorf("failed to write csv footer: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat writes the result as indented JSON.
func JSONFormat(w io.Writer, result *solver.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
