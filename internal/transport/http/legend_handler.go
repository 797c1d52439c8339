package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/services"
)

// LegendHandler serves the reference legend tables.
type LegendHandler struct {
	service      *services.LegendService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewLegendHandler creates a legend handler.
func NewLegendHandler(service *services.LegendService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *LegendHandler {
	return &LegendHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "legend_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the legend routes.
func (h *LegendHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/portfolios", h.GetPortfolios)
	r.Get("/scenarios", h.GetScenarios)
	return r
}

// GetPortfolios handles GET /api/legend/portfolios.
func (h *LegendHandler) GetPortfolios(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Entries(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"entries": entries})
}

// GetScenarios handles GET /api/legend/scenarios.
func (h *LegendHandler) GetScenarios(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Scenarios(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"scenarios": entries})
}
