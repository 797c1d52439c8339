package workbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes a throwaway xlsx file with the given sheets, each a
// grid of string cells, and returns its path. Sheet iteration follows the
// order slice so the file's sheet list is deterministic.
func writeWorkbook(t *testing.T, name string, order []string, sheets map[string][][]string) string {
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

func correlationFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, "corr.xlsx", []string{"E7X", "B2K"}, map[string][][]string{
		"E7X": {
			{"Date", "AAA", "BBB"},
			{"2024-03-13", "0.20", "0.05"},
			{"2024-03-11", "0.10", "-0.05"},
			{"2024-03-12", "0.40", "0.00"},
		},
		"B2K": {
			{"Date", "CCC"},
			{"2024-03-11", "0.30"},
		},
	})
}

func stressFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, "stress.xlsx", []string{"E7X&&Rates +100bps", "B2K&&Rates +100bps"}, map[string][][]string{
		"E7X&&Rates +100bps": {
			{"Strategy", "Date", "Scenario", "Stress PnL"},
			{"Rates Carry", "2024-03-15", "SC01", "5"},
			{"FX Momentum", "2024-03-15", "SC01", "-3"},
			{"Total", "2024-03-15", "SC01", "2"},
		},
		"B2K&&Rates +100bps": {
			{"Strategy", "Date", "Scenario", "Stress PnL"},
			{"Rates Carry", "2024-03-15", "SC01", "10"},
			{"Total", "2024-03-15", "SC01", "10"},
		},
	})
}

func legendFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, "legend.xlsx", []string{LegendPortfolioSheet, LegendScenarioSheet}, map[string][][]string{
		LegendPortfolioSheet: {
			{"Ticker", "Name", "Description"},
			{"E7X", "Euro Macro", "Macro overlay book"},
			{"B2K", "Bond Kappa", ""},
		},
		LegendScenarioSheet: {
			{"Scenario", "Name", "Description"},
			{"SC01", "Rates +100bps", "Parallel shift up"},
		},
	})
}
