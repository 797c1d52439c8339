package analytics

import (
	"fmt"
	"sort"

	"riskdesk/pkg/contracts/domain"
)

// bucketStats carries the per-scenario dispersion of the peer group.
type bucketStats struct {
	median float64
	q25    float64
	q75    float64
}

// Compare partitions one date's stress records into a subject portfolio and
// its peer bucket, computes per-scenario bucket dispersion, and inner-joins
// subject rows onto the bucket statistics. Scenarios present on only one
// side are dropped: report scenarios are assumed consistently populated
// across portfolios, so an outer join would only manufacture gaps.
func Compare(records []domain.StressRecord, subject string) ([]domain.ComparisonRow, error) {
	var subjectRows []domain.StressRecord
	bucketVals := make(map[string][]float64)
	for _, r := range records {
		if r.Portfolio == subject {
			subjectRows = append(subjectRows, r)
		} else {
			bucketVals[r.ScenarioName] = append(bucketVals[r.ScenarioName], r.StressPnL)
		}
	}
	if len(subjectRows) == 0 {
		return nil, ErrNoData
	}

	byScenario := make(map[string]bucketStats, len(bucketVals))
	for scenario, vals := range bucketVals {
		median, err := Median(vals)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		q25, err := Quantile(vals, 0.25)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		q75, err := Quantile(vals, 0.75)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		byScenario[scenario] = bucketStats{median: median, q25: q25, q75: q75}
	}

	var rows []domain.ComparisonRow
	for _, r := range subjectRows {
		bs, ok := byScenario[r.ScenarioName]
		if !ok {
			continue
		}
		rows = append(rows, domain.ComparisonRow{
			ScenarioName: r.ScenarioName,
			StressPnL:    r.StressPnL,
			BucketMedian: bs.median,
			BucketQ25:    bs.q25,
			BucketQ75:    bs.q75,
		})
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ScenarioName < rows[j].ScenarioName })
	return rows, nil
}
