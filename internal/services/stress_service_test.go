package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	day18 = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
)

func TestStressDates(t *testing.T) {
	env := newTestEnv(t)

	dates, err := env.stress.Dates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day15, day18}, dates)
}

func TestDetailDates(t *testing.T) {
	env := newTestEnv(t)

	dates, err := env.stress.DetailDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day15, day18}, dates)
}

func TestPnL(t *testing.T) {
	env := newTestEnv(t)

	records, err := env.stress.PnL(context.Background(), StressRequest{Date: day15})
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, day15, r.Date)
	}
}

func TestPnLPortfolioFilter(t *testing.T) {
	env := newTestEnv(t)

	records, err := env.stress.PnL(context.Background(), StressRequest{
		Date:       day15,
		Portfolios: []string{"E7X"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E7X", records[0].Portfolio)
	assert.InDelta(t, 2, records[0].StressPnL, 1e-9)
}

func TestPnLNoMatches(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stress.PnL(context.Background(), StressRequest{
		Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTreemap(t *testing.T) {
	env := newTestEnv(t)

	tm, err := env.stress.Treemap(context.Background(), TreemapRequest{
		Date:      day15,
		Portfolio: "E7X",
		Scenario:  "Rates +100bps",
	})
	require.NoError(t, err)

	assert.Equal(t, "Euro Macro - Rates +100bps (2024-03-15)", tm.Root.Label)
	require.Len(t, tm.Leaves, 2)
	assert.InDelta(t, 8, tm.Root.Value, 1e-9)
}

func TestTreemapNoMatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stress.Treemap(context.Background(), TreemapRequest{
		Date:      day15,
		Portfolio: "E7X",
		Scenario:  "Equity -20%",
	})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDetailsExcludesTotalRows(t *testing.T) {
	env := newTestEnv(t)

	details, err := env.stress.Details(context.Background(), TreemapRequest{
		Date:      day15,
		Portfolio: "E7X",
		Scenario:  "Rates +100bps",
	})
	require.NoError(t, err)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.NotEqual(t, "Total", d.Name)
	}
}

func TestComparisonService(t *testing.T) {
	env := newTestEnv(t)

	rows, err := env.stress.Comparison(context.Background(), ComparisonRequest{
		Date:    day15,
		Subject: "E7X",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Rates +100bps", row.ScenarioName)
	assert.InDelta(t, 2, row.StressPnL, 1e-9)
	// Bucket is B2K (10) and C9D (20); the subject's own value stays out.
	assert.InDelta(t, 15, row.BucketMedian, 1e-9)
	assert.InDelta(t, 12.5, row.BucketQ25, 1e-9)
	assert.InDelta(t, 17.5, row.BucketQ75, 1e-9)
}

func TestComparisonSubjectOnlyDate(t *testing.T) {
	env := newTestEnv(t)

	// On the 18th only E7X reported, so there is no bucket to join.
	_, err := env.stress.Comparison(context.Background(), ComparisonRequest{
		Date:    day18,
		Subject: "E7X",
	})
	assert.ErrorIs(t, err, ErrNoData)
}
