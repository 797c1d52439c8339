package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"riskdesk/pkg/contracts/domain"
)

// ErrNoData signals that a filter selection matched no records. Callers
// report it to the user and skip the dependent view; it is never a crash.
var ErrNoData = errors.New("no data for this selection")

// displayDateLayout renders extreme dates for the summary table.
const displayDateLayout = "02/01/2006"

// Summarize computes the per-series display summary over an already
// filtered frame: mean, and min/max each paired with the LATEST date
// attaining the extreme. Values are scaled by 100 for display.
func Summarize(frame *domain.CorrelationFrame, selected []string, resolve func(string) string) ([]domain.SeriesSummary, error) {
	if frame.Empty() || len(selected) == 0 {
		return nil, ErrNoData
	}
	summaries := make([]domain.SeriesSummary, 0, len(selected))
	for _, id := range selected {
		vals, ok := frame.Series[id]
		if !ok {
			return nil, fmt.Errorf("unknown series %q", id)
		}
		mean, err := stats.Mean(stats.Float64Data(vals))
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", id, err)
		}
		minVal, minDate := latestExtreme(vals, frame.Dates, func(v, best float64) bool { return v < best })
		maxVal, maxDate := latestExtreme(vals, frame.Dates, func(v, best float64) bool { return v > best })
		summaries = append(summaries, domain.SeriesSummary{
			Series:      id,
			Name:        resolve(id),
			MeanPercent: mean * 100,
			MinPercent:  minVal * 100,
			MinDate:     minDate.Format(displayDateLayout),
			MaxPercent:  maxVal * 100,
			MaxDate:     maxDate.Format(displayDateLayout),
		})
	}
	return summaries, nil
}

// latestExtreme scans values aligned with dates and keeps the extreme under
// better, preferring the most recent date on ties (>= keeps later equal
// values because dates are sorted ascending).
func latestExtreme(vals []float64, dates []time.Time, better func(v, best float64) bool) (float64, time.Time) {
	best := vals[0]
	bestDate := dates[0]
	for i := 1; i < len(vals); i++ {
		if better(vals[i], best) || vals[i] == best {
			best = vals[i]
			bestDate = dates[i]
		}
	}
	return best, bestDate
}

// BuildRadar extracts each selected series' value at the snapshot date (the
// latest in the filtered range) next to its mean over the whole range.
func BuildRadar(frame *domain.CorrelationFrame, selected []string, resolve func(string) string) (*domain.Radar, error) {
	if frame.Empty() || len(selected) == 0 {
		return nil, ErrNoData
	}
	last := len(frame.Dates) - 1
	radar := &domain.Radar{SnapshotDate: frame.Dates[last]}
	for _, id := range selected {
		vals, ok := frame.Series[id]
		if !ok {
			return nil, fmt.Errorf("unknown series %q", id)
		}
		mean, err := stats.Mean(stats.Float64Data(vals))
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", id, err)
		}
		radar.Points = append(radar.Points, domain.RadarPoint{
			Series:          id,
			Name:            resolve(id),
			SnapshotPercent: vals[last] * 100,
			MeanPercent:     mean * 100,
		})
	}
	return radar, nil
}
