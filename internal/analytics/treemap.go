package analytics

import (
	"fmt"
	"math"
	"time"

	"riskdesk/pkg/contracts/domain"
)

// sizeFloor prevents zero-sized, invisible leaves in the layout. Sizing is
// floored; coloring intentionally is not, so a near-zero loss still renders
// red rather than neutral.
const sizeFloor = 0.01

// BuildTreemap turns one (portfolio, scenario, date) selection's detail
// rows into a single-root weighted hierarchy. Leaf size is max(|v|, 0.01),
// the root's size the sum of leaf sizes, and each leaf's color intensity
// the raw value normalized by the set's maximum absolute value (1 when all
// values are zero).
func BuildTreemap(details []domain.StressDetailRecord, portfolio, scenario string, date time.Time, resolve func(string) string) (*domain.Treemap, error) {
	if len(details) == 0 {
		return nil, ErrNoData
	}

	maxAbs := 0.0
	for _, d := range details {
		if a := math.Abs(d.StressPnL); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	rootLabel := fmt.Sprintf("%s - %s (%s)", resolve(portfolio), scenario, date.Format("2006-01-02"))

	leaves := make([]domain.TreemapNode, 0, len(details))
	total := 0.0
	for _, d := range details {
		size := math.Max(math.Abs(d.StressPnL), sizeFloor)
		total += size
		leaves = append(leaves, domain.TreemapNode{
			Label:     resolve(d.Name),
			Parent:    rootLabel,
			Value:     size,
			Color:     d.StressPnL,
			Intensity: d.StressPnL / maxAbs,
			Text:      fmt.Sprintf("%.2f bps", d.StressPnL),
		})
	}

	return &domain.Treemap{
		Root:   domain.TreemapNode{Label: rootLabel, Value: total},
		Leaves: leaves,
	}, nil
}
