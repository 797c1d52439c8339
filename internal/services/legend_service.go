package services

import (
	"context"
	"log/slog"
	"sync"

	"riskdesk/internal/namemap"
	"riskdesk/internal/workbook"
	"riskdesk/pkg/contracts/domain"
)

// LegendService serves the reference legend tables and owns the name map
// used everywhere identifiers are shown to a user.
type LegendService struct {
	store  *workbook.Store
	path   string
	logger *slog.Logger

	once  sync.Once
	names *namemap.Map
	err   error
}

// NewLegendService creates a legend service reading from the legend
// workbook at path.
func NewLegendService(store *workbook.Store, path string, logger *slog.Logger) *LegendService {
	return &LegendService{
		store:  store,
		path:   path,
		logger: logger.With(slog.String("component", "legend_service")),
	}
}

// Entries returns the ticker-to-name legend table.
func (s *LegendService) Entries(ctx context.Context) ([]domain.LegendEntry, error) {
	return s.store.LegendEntries(s.path)
}

// Scenarios returns the stress scenario description table.
func (s *LegendService) Scenarios(ctx context.Context) ([]domain.ScenarioEntry, error) {
	return s.store.ScenarioEntries(s.path)
}

// Names returns the immutable name map, building it on first use.
func (s *LegendService) Names(ctx context.Context) (*namemap.Map, error) {
	s.once.Do(func() {
		entries, err := s.store.LegendEntries(s.path)
		if err != nil {
			s.err = err
			return
		}
		s.names = namemap.New(entries)
		s.logger.InfoContext(ctx, "name map built", slog.Int("entries", len(entries)))
	})
	return s.names, s.err
}

// Resolve returns a total resolver function backed by the name map. When
// the legend workbook cannot be read the identity mapping is used, so
// labels degrade to raw identifiers rather than failing the view.
func (s *LegendService) Resolve(ctx context.Context) func(string) string {
	names, err := s.Names(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "legend unavailable, using identity names",
			slog.String("error", err.Error()))
		return func(id string) string { return id }
	}
	return names.Resolve
}
