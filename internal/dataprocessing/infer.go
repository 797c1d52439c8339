package dataprocessing

import (
	"fmt"
	"strings"
)

// Canonical column patterns for stress sheets. Matching is case-insensitive
// substring matching, so "Stress PnL (bps)" and "stress pnl" both qualify.
const (
	DatePattern      = "Date"
	StressPnLPattern = "Stress PnL"
	ScenarioPattern  = "Scenario"
)

// TotalRowName tags the pre-aggregated row present once per date in every
// stress sheet.
const TotalRowName = "Total"

// InferColumn returns the index of the first header containing pattern,
// case-insensitively. It is the single place schema inference happens so
// mismatched sheets fail fast with a clear diagnostic.
func InferColumn(headers []string, pattern string) (int, error) {
	needle := strings.ToLower(pattern)
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), needle) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column header matches %q (headers: %s)", pattern, strings.Join(headers, ", "))
}

// SheetSchemaError reports a stress sheet whose headers lack a required
// column pattern. The sheet's data is unusable; this is fatal for the sheet.
type SheetSchemaError struct {
	Sheet   string
	Pattern string
	Err     error
}

func (e *SheetSchemaError) Error() string {
	return fmt.Sprintf("sheet %q: required column %q not found: %v", e.Sheet, e.Pattern, e.Err)
}

func (e *SheetSchemaError) Unwrap() error {
	return e.Err
}
