package exporter

import (
	"riskdesk/internal/services"
	"riskdesk/pkg/contracts/domain"
)

// Sheet names mirror the dashboard section titles.
const (
	SheetCorrelation = "Correlation Time Series"
	SheetSummary     = "Summary Statistics"
	SheetStressPnL   = "Stress Test PnL"
	SheetByStrategy  = "StressPnL By Strategy"
	SheetComparison  = "Comparison vs Bucket"
)

const exportDateLayout = "2006-01-02"

// SeriesTable flattens the filtered correlation view into one dated row
// per observation, values already scaled by 100.
func SeriesTable(view *services.SeriesResponse) ([]string, [][]any) {
	headers := make([]string, 0, len(view.Series)+1)
	headers = append(headers, "Date")
	for _, line := range view.Series {
		headers = append(headers, line.Name)
	}
	rows := make([][]any, len(view.Dates))
	for i, d := range view.Dates {
		row := make([]any, 0, len(view.Series)+1)
		row = append(row, d.Format(exportDateLayout))
		for _, line := range view.Series {
			row = append(row, line.Percent[i])
		}
		rows[i] = row
	}
	return headers, rows
}

// SummaryTable lays out the per-series summary statistics.
func SummaryTable(summaries []domain.SeriesSummary) ([]string, [][]any) {
	headers := []string{"Name", "Mean (%)", "Min (%)", "Min Date", "Max (%)", "Max Date"}
	rows := make([][]any, len(summaries))
	for i, s := range summaries {
		rows[i] = []any{s.Name, s.MeanPercent, s.MinPercent, s.MinDate, s.MaxPercent, s.MaxDate}
	}
	return headers, rows
}

// StressTable lays out the Total stress rows.
func StressTable(records []domain.StressRecord) ([]string, [][]any) {
	headers := []string{"Date", "Scenario", "StressPnL", "Portfolio", "ScenarioName"}
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Date.Format(exportDateLayout), r.Scenario, r.StressPnL, r.Portfolio, r.ScenarioName}
	}
	return headers, rows
}

// DetailTable lays out the by-strategy stress rows. A zero date renders
// as an empty cell.
func DetailTable(records []domain.StressDetailRecord) ([]string, [][]any) {
	headers := []string{"Name", "Date", "StressPnL", "Portfolio", "ScenarioName"}
	rows := make([][]any, len(records))
	for i, r := range records {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(exportDateLayout)
		}
		rows[i] = []any{r.Name, date, r.StressPnL, r.Portfolio, r.ScenarioName}
	}
	return headers, rows
}

// ComparisonTable lays out the subject-vs-bucket rows.
func ComparisonTable(rows []domain.ComparisonRow) ([]string, [][]any) {
	headers := []string{"ScenarioName", "StressPnL", "BucketMedian", "Q25", "Q75"}
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.ScenarioName, r.StressPnL, r.BucketMedian, r.BucketQ25, r.BucketQ75}
	}
	return headers, out
}
