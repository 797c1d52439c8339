package domain

import (
	"time"
)

// CorrelationFrame holds one portfolio's correlation time series as loaded
// from a single workbook sheet. Dates are unique and sorted ascending;
// Series maps a series identifier to values aligned index-for-index with
// Dates. Order preserves the sheet's column order for stable presentation.
type CorrelationFrame struct {
	Portfolio string               `json:"portfolio"`
	Dates     []time.Time          `json:"dates"`
	Order     []string             `json:"order"`
	Series    map[string][]float64 `json:"series"`
}

// Slice returns a copy of the frame restricted to dates in [from, to]
// (inclusive on both ends). The receiver is never mutated.
func (f *CorrelationFrame) Slice(from, to time.Time) *CorrelationFrame {
	out := &CorrelationFrame{
		Portfolio: f.Portfolio,
		Order:     append([]string(nil), f.Order...),
		Series:    make(map[string][]float64, len(f.Series)),
	}
	lo, hi := -1, -1
	for i, d := range f.Dates {
		if d.Before(from) {
			continue
		}
		if d.After(to) {
			break
		}
		if lo == -1 {
			lo = i
		}
		hi = i
	}
	if lo == -1 {
		out.Dates = []time.Time{}
		for _, id := range f.Order {
			out.Series[id] = []float64{}
		}
		return out
	}
	out.Dates = append([]time.Time(nil), f.Dates[lo:hi+1]...)
	for id, vals := range f.Series {
		out.Series[id] = append([]float64(nil), vals[lo:hi+1]...)
	}
	return out
}

// Empty reports whether the frame holds no dated rows.
func (f *CorrelationFrame) Empty() bool {
	return len(f.Dates) == 0
}

// SeriesSummary is the per-series display summary over a filtered range.
// Percent fields are the correlation scaled by 100; MinDate and MaxDate
// are the latest dates attaining the extreme, formatted dd/mm/yyyy.
type SeriesSummary struct {
	Series      string  `json:"series" csv:"Series"`
	Name        string  `json:"name" csv:"Name"`
	MeanPercent float64 `json:"mean_percent" csv:"Mean (%)"`
	MinPercent  float64 `json:"min_percent" csv:"Min (%)"`
	MinDate     string  `json:"min_date" csv:"Min Date"`
	MaxPercent  float64 `json:"max_percent" csv:"Max (%)"`
	MaxDate     string  `json:"max_date" csv:"Max Date"`
}

// RadarPoint pairs a series' value at the snapshot date (the latest date
// of the filtered range) with its mean over the whole range, both ×100.
type RadarPoint struct {
	Series          string  `json:"series"`
	Name            string  `json:"name"`
	SnapshotPercent float64 `json:"snapshot_percent"`
	MeanPercent     float64 `json:"mean_percent"`
}

// Radar is the snapshot-vs-period-mean comparison for a selection.
type Radar struct {
	SnapshotDate time.Time    `json:"snapshot_date"`
	Points       []RadarPoint `json:"points"`
}
