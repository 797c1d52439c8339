package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/services"
)

// StressHandler serves the stress-test dashboard views.
type StressHandler struct {
	service      *services.StressService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewStressHandler creates a stress handler.
func NewStressHandler(service *services.StressService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StressHandler {
	return &StressHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "stress_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the stress-test routes.
func (h *StressHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/dates", h.GetDates)
	r.Get("/detail-dates", h.GetDetailDates)
	r.Get("/pnl", h.GetPnL)
	r.Get("/treemap", h.GetTreemap)
	r.Get("/comparison", h.GetComparison)
	return r
}

// GetDates handles GET /api/stress/dates.
func (h *StressHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.Dates(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"dates": formatDates(dates)})
}

// GetDetailDates handles GET /api/stress/detail-dates.
func (h *StressHandler) GetDetailDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.DetailDates(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"dates": formatDates(dates)})
}

// GetPnL handles GET /api/stress/pnl.
func (h *StressHandler) GetPnL(w http.ResponseWriter, r *http.Request) {
	date, err := requiredQueryDate(r, "date")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	req := services.StressRequest{
		Date:       date,
		Portfolios: queryList(r, "portfolios"),
		Scenarios:  queryList(r, "scenarios"),
	}
	if err := validateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	rows, err := h.service.PnL(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"records": rows})
}

// GetTreemap handles GET /api/stress/treemap.
func (h *StressHandler) GetTreemap(w http.ResponseWriter, r *http.Request) {
	date, err := requiredQueryDate(r, "date")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	req := services.TreemapRequest{
		Date:      date,
		Portfolio: r.URL.Query().Get("portfolio"),
		Scenario:  r.URL.Query().Get("scenario"),
	}
	if err := validateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	tm, err := h.service.Treemap(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, tm)
}

// GetComparison handles GET /api/stress/comparison.
func (h *StressHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	date, err := requiredQueryDate(r, "date")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	req := services.ComparisonRequest{
		Date:       date,
		Subject:    r.URL.Query().Get("portfolio"),
		Portfolios: queryList(r, "portfolios"),
		Scenarios:  queryList(r, "scenarios"),
	}
	if err := validateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	rows, err := h.service.Comparison(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"rows": rows})
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(queryDateLayout)
	}
	return out
}
