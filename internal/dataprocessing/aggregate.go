package dataprocessing

import (
	"sort"

	"riskdesk/pkg/contracts/domain"
)

// ConcatTotals concatenates per-sheet stress record sets into one dataset,
// preserving all rows in sheet order. No deduplication.
func ConcatTotals(sets [][]domain.StressRecord) []domain.StressRecord {
	var out []domain.StressRecord
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}

// ConcatDetails concatenates per-sheet detail record sets and sorts them
// ascending by (date, portfolio, scenario, name). Rows whose date failed
// to parse sort after every dated row. The name tie-break keeps ordering
// deterministic regardless of source sheet order.
func ConcatDetails(sets [][]domain.StressDetailRecord) []domain.StressDetailRecord {
	var out []domain.StressDetailRecord
	for _, set := range sets {
		out = append(out, set...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date.IsZero() != b.Date.IsZero() {
			return b.Date.IsZero()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Portfolio != b.Portfolio {
			return a.Portfolio < b.Portfolio
		}
		if a.ScenarioName != b.ScenarioName {
			return a.ScenarioName < b.ScenarioName
		}
		return a.Name < b.Name
	})
	return out
}
