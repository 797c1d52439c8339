package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"riskdesk/internal/analytics"
	"riskdesk/internal/workbook"
	"riskdesk/pkg/contracts/domain"
)

// StressRequest filters the Total stress dataset to one date and optional
// portfolio/scenario multi-selections (empty selection means all).
type StressRequest struct {
	Date       time.Time `validate:"required"`
	Portfolios []string  `validate:"-"`
	Scenarios  []string  `validate:"-"`
}

// TreemapRequest selects the by-strategy decomposition of one
// (date, portfolio, scenario) cell.
type TreemapRequest struct {
	Date      time.Time `validate:"required"`
	Portfolio string    `validate:"required"`
	Scenario  string    `validate:"required"`
}

// ComparisonRequest names the subject portfolio compared against its peer
// bucket on one date, within optional portfolio/scenario filters.
type ComparisonRequest struct {
	Date       time.Time `validate:"required"`
	Subject    string    `validate:"required"`
	Portfolios []string  `validate:"-"`
	Scenarios  []string  `validate:"-"`
}

// StressService serves the stress-test workbook views.
type StressService struct {
	store  *workbook.Store
	path   string
	legend *LegendService
	logger *slog.Logger
}

// NewStressService creates a stress service reading from the stress
// workbook at path.
func NewStressService(store *workbook.Store, path string, legend *LegendService, logger *slog.Logger) *StressService {
	return &StressService{
		store:  store,
		path:   path,
		legend: legend,
		logger: logger.With(slog.String("component", "stress_service")),
	}
}

// Dates returns the distinct Total-row dates, sorted ascending. The last
// entry is the natural default selection.
func (s *StressService) Dates(ctx context.Context) ([]time.Time, error) {
	records, err := s.store.StressTotals(s.path)
	if err != nil {
		return nil, fmt.Errorf("load stress totals: %w", err)
	}
	return distinctDates(records, func(r domain.StressRecord) time.Time { return r.Date }), nil
}

// DetailDates returns the distinct dated by-strategy dates, ascending.
// Rows whose date failed to parse are excluded here.
func (s *StressService) DetailDates(ctx context.Context) ([]time.Time, error) {
	records, err := s.store.StressDetails(s.path)
	if err != nil {
		return nil, fmt.Errorf("load stress details: %w", err)
	}
	var dated []domain.StressDetailRecord
	for _, r := range records {
		if r.HasDate() {
			dated = append(dated, r)
		}
	}
	return distinctDates(dated, func(r domain.StressDetailRecord) time.Time { return r.Date }), nil
}

// PnL returns the filtered Total stress rows for one date.
func (s *StressService) PnL(ctx context.Context, req StressRequest) ([]domain.StressRecord, error) {
	rows, err := s.filteredTotals(ctx, req.Date, req.Portfolios, req.Scenarios)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// Treemap builds the by-strategy hierarchy for one selection. The Total
// row never appears: detail extraction already excluded it.
func (s *StressService) Treemap(ctx context.Context, req TreemapRequest) (*domain.Treemap, error) {
	matched, err := s.Details(ctx, req)
	if err != nil {
		return nil, err
	}
	resolve := s.legend.Resolve(ctx)
	tm, err := analytics.BuildTreemap(matched, req.Portfolio, req.Scenario, req.Date, resolve)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "treemap built",
		slog.String("portfolio", req.Portfolio),
		slog.String("scenario", req.Scenario),
		slog.Int("leaves", len(tm.Leaves)))
	return tm, nil
}

// Details returns the raw by-strategy rows behind a treemap selection,
// used by the by-strategy export.
func (s *StressService) Details(ctx context.Context, req TreemapRequest) ([]domain.StressDetailRecord, error) {
	records, err := s.store.StressDetails(s.path)
	if err != nil {
		return nil, fmt.Errorf("load stress details: %w", err)
	}
	var matched []domain.StressDetailRecord
	for _, r := range records {
		if r.HasDate() && r.Date.Equal(req.Date) && r.Portfolio == req.Portfolio && r.ScenarioName == req.Scenario {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoData
	}
	return matched, nil
}

// Comparison joins the subject portfolio's stress values against the peer
// bucket's per-scenario dispersion for one date.
func (s *StressService) Comparison(ctx context.Context, req ComparisonRequest) ([]domain.ComparisonRow, error) {
	rows, err := s.filteredTotals(ctx, req.Date, req.Portfolios, req.Scenarios)
	if err != nil {
		return nil, err
	}
	return analytics.Compare(rows, req.Subject)
}

func (s *StressService) filteredTotals(ctx context.Context, date time.Time, portfolios, scenarios []string) ([]domain.StressRecord, error) {
	records, err := s.store.StressTotals(s.path)
	if err != nil {
		return nil, fmt.Errorf("load stress totals: %w", err)
	}
	wantPortfolio := toSet(portfolios)
	wantScenario := toSet(scenarios)
	var rows []domain.StressRecord
	for _, r := range records {
		if !r.Date.Equal(date) {
			continue
		}
		if wantPortfolio != nil && !wantPortfolio[r.Portfolio] {
			continue
		}
		if wantScenario != nil && !wantScenario[r.ScenarioName] {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func toSet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func distinctDates[T any](records []T, date func(T) time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, r := range records {
		d := date(r)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
