package analytics

import (
	"errors"
	"sort"
)

// ErrEmptySample is returned when a quantile is requested over no values.
var ErrEmptySample = errors.New("empty sample")

// Quantile computes the q-th quantile (q in [0,1]) of values using linear
// interpolation between order statistics. This matches the conventional
// definition used by the report producers: for [10,20,30,40] the 25th
// percentile is 17.5 and the 75th is 32.5.
//
// montanaflynn/stats.Percentile uses a rank-based method that disagrees
// with those fixtures, so the interpolating form lives here.
func Quantile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// Median is the 0.5 quantile.
func Median(values []float64) (float64, error) {
	return Quantile(values, 0.5)
}
