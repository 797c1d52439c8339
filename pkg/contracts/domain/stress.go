package domain

import (
	"time"
)

// StressRecord is the pre-aggregated stress-test result for one
// (portfolio, scenario, date) triple. It is produced from the row tagged
// "Total" in a raw stress sheet. StressPnL is expressed in basis points.
type StressRecord struct {
	Date         time.Time `json:"date"`
	Scenario     string    `json:"scenario"`
	StressPnL    float64   `json:"stress_pnl"`
	Portfolio    string    `json:"portfolio"`
	ScenarioName string    `json:"scenario_name"`
}

// StressDetailRecord is the by-strategy decomposition of a stress result.
// One record per non-Total row per sheet. A zero Date means the source cell
// did not parse as a date; such rows are retained and filtered downstream.
type StressDetailRecord struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	StressPnL    float64   `json:"stress_pnl"`
	Portfolio    string    `json:"portfolio"`
	ScenarioName string    `json:"scenario_name"`
}

// HasDate reports whether the record carries a parsed date.
func (r StressDetailRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// ComparisonRow joins a subject portfolio's stress value with the bucket
// statistics for the same scenario. Quantiles use linear interpolation
// between order statistics.
type ComparisonRow struct {
	ScenarioName string  `json:"scenario_name" csv:"ScenarioName"`
	StressPnL    float64 `json:"stress_pnl" csv:"StressPnL"`
	BucketMedian float64 `json:"bucket_median" csv:"BucketMedian"`
	BucketQ25    float64 `json:"bucket_q25" csv:"Q25"`
	BucketQ75    float64 `json:"bucket_q75" csv:"Q75"`
}

// TreemapNode is one node of the single-level stress decomposition
// hierarchy. Value carries the sizing weight (absolute, floored), Color
// the raw signed magnitude used for the diverging color scale.
type TreemapNode struct {
	Label     string  `json:"label"`
	Parent    string  `json:"parent"`
	Value     float64 `json:"value"`
	Color     float64 `json:"color"`
	Intensity float64 `json:"intensity"`
	Text      string  `json:"text"`
}

// Treemap is a chart-ready weighted hierarchy: a single synthetic root
// followed by its leaves, sized proportionally to stress magnitude.
type Treemap struct {
	Root   TreemapNode   `json:"root"`
	Leaves []TreemapNode `json:"leaves"`
}
