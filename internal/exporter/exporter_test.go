package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"riskdesk/pkg/contracts/domain"
)

func TestComparisonFileName(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{name: "spaces to underscores", display: "Euro Macro Fund", want: "euro_macro_fund_vs_bucket_stress_test"},
		{name: "already lower", display: "e7x", want: "e7x_vs_bucket_stress_test"},
		{name: "mixed case", display: "Bond KAPPA", want: "bond_kappa_vs_bucket_stress_test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparisonFileName(tt.display))
		})
	}
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "stress_test_pnl.xlsx", WithExt(FileStressPnL, "xlsx"))
	assert.Equal(t, "summary_statistics.csv", WithExt(FileSummary, "csv"))
}

func TestXLSXRoundTrip(t *testing.T) {
	headers := []string{"Name", "Value"}
	rows := [][]any{
		{"Rates Carry", 5.0},
		{"FX Momentum", -3.0},
	}

	payload, err := XLSX(SheetStressPnL, headers, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetStressPnL}, f.GetSheetList())
	got, err := f.GetRows(SheetStressPnL)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, headers, got[0])
	assert.Equal(t, "Rates Carry", got[1][0])
	assert.Equal(t, "-3", got[2][1])
}

func TestCSVUsesStructTags(t *testing.T) {
	rows := []domain.ComparisonRow{
		{ScenarioName: "Rates +100bps", StressPnL: -12, BucketMedian: 25, BucketQ25: 17.5, BucketQ75: 32.5},
	}

	payload, err := CSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ScenarioName,StressPnL,BucketMedian,Q25,Q75", lines[0])
	assert.Contains(t, lines[1], "Rates +100bps")
	assert.Contains(t, lines[1], "17.5")
}

func TestCSVTable(t *testing.T) {
	payload, err := CSVTable([]string{"Date", "AAA"}, [][]any{
		{"2024-03-15", 12.5},
		{"2024-03-18"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,AAA", lines[0])
	assert.Equal(t, "2024-03-15,12.5", lines[1])
	// Short rows pad with empty cells.
	assert.Equal(t, "2024-03-18,", lines[2])
}

func TestStressTable(t *testing.T) {
	records := []domain.StressRecord{
		{
			Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Scenario:     "SC01",
			StressPnL:    8.25,
			Portfolio:    "E7X",
			ScenarioName: "Rates +100bps",
		},
	}

	headers, rows := StressTable(records)
	assert.Equal(t, []string{"Date", "Scenario", "StressPnL", "Portfolio", "ScenarioName"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-15", rows[0][0])
	assert.Equal(t, 8.25, rows[0][2])
}

func TestDetailTableRendersMissingDateEmpty(t *testing.T) {
	records := []domain.StressDetailRecord{
		{Name: "Rates Carry", StressPnL: 5, Portfolio: "E7X", ScenarioName: "Rates +100bps"},
	}

	_, rows := DetailTable(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][1])
}

func TestSummaryTable(t *testing.T) {
	summaries := []domain.SeriesSummary{
		{Name: "Alpha Fund", MeanPercent: 27.5, MinPercent: 10, MinDate: "11/03/2024", MaxPercent: 40, MaxDate: "14/03/2024"},
	}

	headers, rows := SummaryTable(summaries)
	assert.Equal(t, "Mean (%)", headers[1])
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha Fund", rows[0][0])
	assert.Equal(t, "14/03/2024", rows[0][5])
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "euro_macro_fund", FileStem("Euro Macro Fund"))
	assert.Equal(t, "e7x", FileStem("E7X"))
}

func TestStressPayloadCSV(t *testing.T) {
	records := []domain.StressRecord{
		{
			Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Scenario:     "SC01",
			StressPnL:    8.25,
			Portfolio:    "E7X",
			ScenarioName: "Rates +100bps",
		},
	}

	payload, err := StressPayload(FormatCSV, records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Scenario,StressPnL,Portfolio,ScenarioName", lines[0])
	assert.Equal(t, "2024-03-15,SC01,8.25,E7X,Rates +100bps", lines[1])
}

func TestDetailPayloadCSVRendersMissingDateEmpty(t *testing.T) {
	records := []domain.StressDetailRecord{
		{Name: "Rates Carry", StressPnL: 5, Portfolio: "E7X", ScenarioName: "Rates +100bps"},
	}

	payload, err := DetailPayload(FormatCSV, records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Date,StressPnL,Portfolio,ScenarioName", lines[0])
	assert.Equal(t, "Rates Carry,,5,E7X,Rates +100bps", lines[1])
}

func TestSummaryPayloadCSV(t *testing.T) {
	summaries := []domain.SeriesSummary{
		{Series: "AAA", Name: "Alpha Fund", MeanPercent: 27.5, MinPercent: 10, MinDate: "11/03/2024", MaxPercent: 40, MaxDate: "14/03/2024"},
	}

	payload, err := SummaryPayload(FormatCSV, summaries)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Series,Name,Mean (%),Min (%),Min Date,Max (%),Max Date", lines[0])
	assert.Contains(t, lines[1], "Alpha Fund")
}

func TestComparisonPayloadXLSX(t *testing.T) {
	rows := []domain.ComparisonRow{
		{ScenarioName: "Rates +100bps", StressPnL: -12, BucketMedian: 25, BucketQ25: 17.5, BucketQ75: 32.5},
	}

	payload, err := ComparisonPayload(FormatXLSX, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetComparison}, f.GetSheetList())
}
