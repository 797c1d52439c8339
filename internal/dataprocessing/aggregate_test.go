package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskdesk/pkg/contracts/domain"
)

func TestConcatTotalsPreservesSheetOrder(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	sets := [][]domain.StressRecord{
		{{Date: d, Portfolio: "E7X", ScenarioName: "Rates +100bps", StressPnL: 8.25}},
		{{Date: d, Portfolio: "B2K", ScenarioName: "Rates +100bps", StressPnL: -3.0}},
	}

	out := ConcatTotals(sets)
	require.Len(t, out, 2)
	assert.Equal(t, "E7X", out[0].Portfolio)
	assert.Equal(t, "B2K", out[1].Portfolio)
}

func TestConcatDetailsSortsDeterministically(t *testing.T) {
	d1 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	sets := [][]domain.StressDetailRecord{
		{
			{Name: "FX Momentum", Date: d2, Portfolio: "E7X", ScenarioName: "Rates +100bps"},
			{Name: "Rates Carry", Date: d1, Portfolio: "E7X", ScenarioName: "Rates +100bps"},
		},
		{
			{Name: "Rates Carry", Date: d1, Portfolio: "B2K", ScenarioName: "Rates +100bps"},
			{Name: "Credit Vol", Date: d1, Portfolio: "E7X", ScenarioName: "Equity -20%"},
		},
	}

	out := ConcatDetails(sets)
	require.Len(t, out, 4)

	// Ascending by date, then portfolio, then scenario, then name.
	assert.Equal(t, "B2K", out[0].Portfolio)
	assert.Equal(t, "Equity -20%", out[1].ScenarioName)
	assert.Equal(t, "Rates +100bps", out[2].ScenarioName)
	assert.Equal(t, d2, out[3].Date)
}

func TestConcatDetailsSortsUndatedRowsLast(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	sets := [][]domain.StressDetailRecord{
		{
			{Name: "Credit Vol", Portfolio: "A1A", ScenarioName: "Equity -20%"},
			{Name: "Rates Carry", Date: d, Portfolio: "E7X", ScenarioName: "Rates +100bps"},
		},
		{
			{Name: "FX Momentum", Portfolio: "B2K", ScenarioName: "Rates +100bps"},
		},
	}

	out := ConcatDetails(sets)
	require.Len(t, out, 3)

	// Rows without a parsed date follow every dated row, themselves
	// ordered by portfolio.
	assert.Equal(t, "Rates Carry", out[0].Name)
	assert.Equal(t, "A1A", out[1].Portfolio)
	assert.Equal(t, "B2K", out[2].Portfolio)
	assert.True(t, out[1].Date.IsZero())
	assert.True(t, out[2].Date.IsZero())
}
