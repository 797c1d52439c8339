package exporter

import (
	"fmt"
	"strings"
)

// Fixed export file stems, matching the dashboard download buttons.
const (
	FileCorrelation = "correlation_time_series"
	FileSummary     = "summary_statistics"
	FileStressPnL   = "stress_test_pnl"
	FileByStrategy  = "stress_by_strategy"
)

// FileStem derives a file-name-friendly form of a display name:
// lower-cased, spaces replaced with underscores.
func FileStem(displayName string) string {
	return strings.ReplaceAll(strings.ToLower(displayName), " ", "_")
}

// ComparisonFileName derives the comparison export stem from the subject's
// display name.
func ComparisonFileName(displayName string) string {
	return fmt.Sprintf("%s_vs_bucket_stress_test", FileStem(displayName))
}

// WithExt appends the format extension to a file stem.
func WithExt(stem, format string) string {
	return stem + "." + format
}
