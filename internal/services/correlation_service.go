package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"riskdesk/internal/analytics"
	"riskdesk/internal/workbook"
	"riskdesk/pkg/contracts/domain"
)

// SeriesRequest selects a portfolio sheet, an inclusive date range, and a
// subset of series. An empty Series selection means all series in sheet
// order; zero From/To bounds mean the full loaded range.
type SeriesRequest struct {
	Portfolio string    `validate:"required"`
	From      time.Time `validate:"-"`
	To        time.Time `validate:"-"`
	Series    []string  `validate:"-"`
}

// PortfolioOption is one selector entry, by display name where a mapping
// exists and by raw identifier otherwise.
type PortfolioOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SeriesResponse is the chart-ready filtered correlation view. Values are
// scaled by 100 for display.
type SeriesResponse struct {
	Portfolio string        `json:"portfolio"`
	Name      string        `json:"name"`
	Dates     []time.Time   `json:"dates"`
	Series    []SeriesLine  `json:"series"`
	Bounds    *SeriesBounds `json:"bounds"`
}

// SeriesLine is one plotted series.
type SeriesLine struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Percent []float64 `json:"percent"`
}

// SeriesBounds carries the full loaded date extent of the sheet, driving
// the date-range selector defaults.
type SeriesBounds struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// CorrelationService serves the correlation workbook views.
type CorrelationService struct {
	store  *workbook.Store
	path   string
	legend *LegendService
	logger *slog.Logger
}

// NewCorrelationService creates a correlation service reading from the
// correlation workbook at path.
func NewCorrelationService(store *workbook.Store, path string, legend *LegendService, logger *slog.Logger) *CorrelationService {
	return &CorrelationService{
		store:  store,
		path:   path,
		legend: legend,
		logger: logger.With(slog.String("component", "correlation_service")),
	}
}

// Portfolios lists the workbook's sheets as selector options.
func (s *CorrelationService) Portfolios(ctx context.Context) ([]PortfolioOption, error) {
	sheets, err := s.store.CorrelationSheets(s.path)
	if err != nil {
		return nil, fmt.Errorf("list correlation portfolios: %w", err)
	}
	resolve := s.legend.Resolve(ctx)
	options := make([]PortfolioOption, 0, len(sheets))
	for _, sheet := range sheets {
		options = append(options, PortfolioOption{ID: sheet, Name: resolve(sheet)})
	}
	return options, nil
}

// filteredFrame loads the requested sheet and applies the date range and
// series selection. The base frame is shared and immutable; filtering
// always produces a fresh value.
func (s *CorrelationService) filteredFrame(ctx context.Context, req SeriesRequest) (*domain.CorrelationFrame, []string, error) {
	frame, err := s.store.CorrelationFrame(s.path, req.Portfolio)
	if err != nil {
		return nil, nil, fmt.Errorf("load portfolio %q: %w", req.Portfolio, err)
	}
	if frame.Empty() {
		return nil, nil, ErrNoData
	}

	from, to := req.From, req.To
	if from.IsZero() {
		from = frame.Dates[0]
	}
	if to.IsZero() {
		to = frame.Dates[len(frame.Dates)-1]
	}
	sliced := frame.Slice(from, to)
	if sliced.Empty() {
		return nil, nil, ErrNoData
	}

	selected := req.Series
	if len(selected) == 0 {
		selected = sliced.Order
	} else {
		for _, id := range selected {
			if _, ok := sliced.Series[id]; !ok {
				return nil, nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, id)
			}
		}
	}
	return sliced, selected, nil
}

// Series returns the filtered correlation time series, scaled by 100.
func (s *CorrelationService) Series(ctx context.Context, req SeriesRequest) (*SeriesResponse, error) {
	base, err := s.store.CorrelationFrame(s.path, req.Portfolio)
	if err != nil {
		return nil, fmt.Errorf("load portfolio %q: %w", req.Portfolio, err)
	}
	sliced, selected, err := s.filteredFrame(ctx, req)
	if err != nil {
		return nil, err
	}
	resolve := s.legend.Resolve(ctx)

	resp := &SeriesResponse{
		Portfolio: req.Portfolio,
		Name:      resolve(req.Portfolio),
		Dates:     sliced.Dates,
		Bounds: &SeriesBounds{
			Min: base.Dates[0],
			Max: base.Dates[len(base.Dates)-1],
		},
	}
	for _, id := range selected {
		vals := sliced.Series[id]
		percent := make([]float64, len(vals))
		for i, v := range vals {
			percent[i] = v * 100
		}
		resp.Series = append(resp.Series, SeriesLine{ID: id, Name: resolve(id), Percent: percent})
	}
	s.logger.DebugContext(ctx, "series view built",
		slog.String("portfolio", req.Portfolio),
		slog.Int("dates", len(resp.Dates)),
		slog.Int("series", len(resp.Series)))
	return resp, nil
}

// Summary returns the per-series summary statistics over the filtered range.
func (s *CorrelationService) Summary(ctx context.Context, req SeriesRequest) ([]domain.SeriesSummary, error) {
	sliced, selected, err := s.filteredFrame(ctx, req)
	if err != nil {
		return nil, err
	}
	return analytics.Summarize(sliced, selected, s.legend.Resolve(ctx))
}

// Radar returns the snapshot-vs-period-mean comparison for the selection.
func (s *CorrelationService) Radar(ctx context.Context, req SeriesRequest) (*domain.Radar, error) {
	sliced, selected, err := s.filteredFrame(ctx, req)
	if err != nil {
		return nil, err
	}
	return analytics.BuildRadar(sliced, selected, s.legend.Resolve(ctx))
}
