package services

import (
	"errors"

	"riskdesk/internal/analytics"
)

// Service errors surfaced to the transport layer.
var (
	// ErrNoData reports an empty result after filtering. Dependent views
	// are skipped, never crashed.
	ErrNoData = analytics.ErrNoData

	// Selection errors
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrSeriesNotFound    = errors.New("series not found")
	ErrDateNotAvailable  = errors.New("date not available")
)
