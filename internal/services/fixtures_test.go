package services

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"riskdesk/internal/workbook"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, name string, order []string, sheets map[string][][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range sheets[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := make([]any, len(row))
			for c, v := range row {
				values[c] = v
			}
			require.NoError(t, f.SetSheetRow(sheet, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// testEnv wires a store and the three services over throwaway workbooks.
type testEnv struct {
	store       *workbook.Store
	legend      *LegendService
	correlation *CorrelationService
	stress      *StressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	corrPath := writeFixture(t, "corr.xlsx", []string{"E7X", "B2K"}, map[string][][]string{
		"E7X": {
			{"Date", "AAA", "BBB"},
			{"2024-03-11", "0.10", "-0.05"},
			{"2024-03-12", "0.40", "0.00"},
			{"2024-03-13", "0.20", "0.05"},
			{"2024-03-14", "0.40", "0.10"},
		},
		"B2K": {
			{"Date", "CCC"},
			{"2024-03-11", "0.30"},
		},
	})
	stressPath := writeFixture(t, "stress.xlsx",
		[]string{"E7X&&Rates +100bps", "B2K&&Rates +100bps", "C9D&&Rates +100bps"},
		map[string][][]string{
			"E7X&&Rates +100bps": {
				{"Strategy", "Date", "Scenario", "Stress PnL"},
				{"Rates Carry", "2024-03-15", "SC01", "5"},
				{"FX Momentum", "2024-03-15", "SC01", "-3"},
				{"Total", "2024-03-15", "SC01", "2"},
				{"Rates Carry", "2024-03-18", "SC01", "7"},
				{"Total", "2024-03-18", "SC01", "7"},
			},
			"B2K&&Rates +100bps": {
				{"Strategy", "Date", "Scenario", "Stress PnL"},
				{"Rates Carry", "2024-03-15", "SC01", "10"},
				{"Total", "2024-03-15", "SC01", "10"},
			},
			"C9D&&Rates +100bps": {
				{"Strategy", "Date", "Scenario", "Stress PnL"},
				{"Rates Carry", "2024-03-15", "SC01", "20"},
				{"Total", "2024-03-15", "SC01", "20"},
			},
		})
	legendPath := writeFixture(t, "legend.xlsx",
		[]string{workbook.LegendPortfolioSheet, workbook.LegendScenarioSheet},
		map[string][][]string{
			workbook.LegendPortfolioSheet: {
				{"Ticker", "Name", "Description"},
				{"E7X", "Euro Macro", "Macro overlay book"},
				{"AAA", "Alpha Fund", ""},
			},
			workbook.LegendScenarioSheet: {
				{"Scenario", "Name", "Description"},
				{"SC01", "Rates +100bps", "Parallel shift up"},
			},
		})

	logger := discardLogger()
	store := workbook.NewStore(logger)
	legend := NewLegendService(store, legendPath, logger)
	return &testEnv{
		store:       store,
		legend:      legend,
		correlation: NewCorrelationService(store, corrPath, legend, logger),
		stress:      NewStressService(store, stressPath, legend, logger),
	}
}
