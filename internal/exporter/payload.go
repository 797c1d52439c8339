package exporter

import (
	"riskdesk/internal/services"
	"riskdesk/pkg/contracts/domain"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// SeriesPayload renders the filtered correlation view. Its column set
// follows the user's series selection, so the csv form goes through the
// dynamic table writer instead of struct tags.
func SeriesPayload(format string, view *services.SeriesResponse) ([]byte, error) {
	headers, rows := SeriesTable(view)
	if format == FormatCSV {
		return CSVTable(headers, rows)
	}
	return XLSX(SheetCorrelation, headers, rows)
}

// SummaryPayload renders the per-series summary statistics view.
func SummaryPayload(format string, summaries []domain.SeriesSummary) ([]byte, error) {
	if format == FormatCSV {
		return CSV(summaries)
	}
	headers, rows := SummaryTable(summaries)
	return XLSX(SheetSummary, headers, rows)
}

// StressPayload renders the Total stress view.
func StressPayload(format string, records []domain.StressRecord) ([]byte, error) {
	if format == FormatCSV {
		return CSV(stressCSVRows(records))
	}
	headers, rows := StressTable(records)
	return XLSX(SheetStressPnL, headers, rows)
}

// DetailPayload renders the by-strategy view.
func DetailPayload(format string, records []domain.StressDetailRecord) ([]byte, error) {
	if format == FormatCSV {
		return CSV(detailCSVRows(records))
	}
	headers, rows := DetailTable(records)
	return XLSX(SheetByStrategy, headers, rows)
}

// ComparisonPayload renders the subject-vs-bucket view.
func ComparisonPayload(format string, rows []domain.ComparisonRow) ([]byte, error) {
	if format == FormatCSV {
		return CSV(rows)
	}
	headers, table := ComparisonTable(rows)
	return XLSX(SheetComparison, headers, table)
}
