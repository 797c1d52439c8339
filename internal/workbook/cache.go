package workbook

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"riskdesk/pkg/contracts/domain"
)

// Store memoizes workbook loads keyed by (path, parameters). Source files
// are treated as immutable within a session, so entries never invalidate.
// Singleflight collapses concurrent first loads of the same key so a
// workbook is parsed at most once.
type Store struct {
	logger *slog.Logger
	onLoad func(key string)

	mu      sync.RWMutex
	entries map[string]any
	group   singleflight.Group
}

// NewStore creates an empty memoizing store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:  logger.With(slog.String("component", "workbook_store")),
		entries: make(map[string]any),
	}
}

// OnLoad registers a hook invoked once per cache miss, before parsing.
// Used for load metrics; a nil hook is fine.
func (s *Store) OnLoad(fn func(key string)) {
	s.onLoad = fn
}

// Dataset maps a cache key to its dataset name, the prefix before the
// first colon. Keys embed file paths and sheet names, so metric labels
// use the dataset name to keep cardinality bounded.
func Dataset(key string) string {
	name, _, _ := strings.Cut(key, ":")
	return name
}

func (s *Store) load(key string, loadFn func() (any, error)) (any, error) {
	s.mu.RLock()
	if v, ok := s.entries[key]; ok {
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.RLock()
		if v, ok := s.entries[key]; ok {
			s.mu.RUnlock()
			return v, nil
		}
		s.mu.RUnlock()

		s.logger.Info("loading workbook data", slog.String("key", key))
		if s.onLoad != nil {
			s.onLoad(key)
		}
		v, err := loadFn()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[key] = v
		s.mu.Unlock()
		return v, nil
	})
	return v, err
}

// CorrelationSheets returns the correlation workbook's sheet list.
func (s *Store) CorrelationSheets(path string) ([]string, error) {
	v, err := s.load("corr-sheets:"+path, func() (any, error) {
		return SheetNames(path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// CorrelationFrame returns one portfolio's correlation frame.
func (s *Store) CorrelationFrame(path, sheet string) (*domain.CorrelationFrame, error) {
	v, err := s.load(fmt.Sprintf("corr-frame:%s:%s", path, sheet), func() (any, error) {
		return LoadCorrelationFrame(path, sheet)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CorrelationFrame), nil
}

// StressTotals returns the unified Total-row stress dataset.
func (s *Store) StressTotals(path string) ([]domain.StressRecord, error) {
	v, err := s.load("stress-totals:"+path, func() (any, error) {
		return LoadStressTotals(path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.StressRecord), nil
}

// StressDetails returns the unified by-strategy stress dataset.
func (s *Store) StressDetails(path string) ([]domain.StressDetailRecord, error) {
	v, err := s.load("stress-details:"+path, func() (any, error) {
		return LoadStressDetails(path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.StressDetailRecord), nil
}

// LegendEntries returns the ticker-to-name legend table.
func (s *Store) LegendEntries(path string) ([]domain.LegendEntry, error) {
	v, err := s.load("legend-portfolios:"+path, func() (any, error) {
		return LoadLegendEntries(path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.LegendEntry), nil
}

// ScenarioEntries returns the scenario description table.
func (s *Store) ScenarioEntries(path string) ([]domain.ScenarioEntry, error) {
	v, err := s.load("legend-scenarios:"+path, func() (any, error) {
		return LoadScenarioEntries(path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ScenarioEntry), nil
}
