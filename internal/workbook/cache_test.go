package workbook

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMemoizesLoads(t *testing.T) {
	path := stressFixture(t)
	store := NewStore(nil)

	var loads int64
	store.OnLoad(func(string) { atomic.AddInt64(&loads, 1) })

	first, err := store.StressTotals(path)
	require.NoError(t, err)
	second, err := store.StressTotals(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&loads))
	// Same memoized slice, not a reparse.
	assert.Equal(t, first, second)
}

func TestStoreKeysIncludeParameters(t *testing.T) {
	path := correlationFixture(t)
	store := NewStore(nil)

	var loads int64
	store.OnLoad(func(string) { atomic.AddInt64(&loads, 1) })

	e7x, err := store.CorrelationFrame(path, "E7X")
	require.NoError(t, err)
	b2k, err := store.CorrelationFrame(path, "B2K")
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(&loads))
	assert.NotEqual(t, e7x.Portfolio, b2k.Portfolio)
}

func TestDatasetStripsPathFromKey(t *testing.T) {
	path := correlationFixture(t)
	store := NewStore(nil)

	var datasets []string
	store.OnLoad(func(key string) { datasets = append(datasets, Dataset(key)) })

	_, err := store.CorrelationSheets(path)
	require.NoError(t, err)
	_, err = store.CorrelationFrame(path, "E7X")
	require.NoError(t, err)

	assert.Equal(t, []string{"corr-sheets", "corr-frame"}, datasets)
	for _, d := range datasets {
		assert.NotContains(t, d, "/")
	}
}

func TestStoreDoesNotCacheFailures(t *testing.T) {
	store := NewStore(nil)

	_, err := store.StressTotals("/nonexistent/stress.xlsx")
	require.Error(t, err)

	// A failed load must not poison the cache for a later valid path.
	path := stressFixture(t)
	records, err := store.StressTotals(path)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestStoreConcurrentFirstLoad(t *testing.T) {
	path := stressFixture(t)
	store := NewStore(nil)

	var loads int64
	store.OnLoad(func(string) { atomic.AddInt64(&loads, 1) })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := store.StressTotals(path)
			assert.NoError(t, err)
			assert.Len(t, records, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&loads))
}

func TestStoreCorrelationSheets(t *testing.T) {
	path := correlationFixture(t)
	store := NewStore(nil)

	sheets, err := store.CorrelationSheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"E7X", "B2K"}, sheets)
}

func TestStoreLegendTables(t *testing.T) {
	path := legendFixture(t)
	store := NewStore(nil)

	entries, err := store.LegendEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	scenarios, err := store.ScenarioEntries(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}
