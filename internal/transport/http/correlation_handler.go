package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/services"
)

// CorrelationHandler serves the correlation dashboard views.
type CorrelationHandler struct {
	service      *services.CorrelationService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCorrelationHandler creates a correlation handler.
func NewCorrelationHandler(service *services.CorrelationService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CorrelationHandler {
	return &CorrelationHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "correlation_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the correlation routes.
func (h *CorrelationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/portfolios", h.GetPortfolios)
	r.Get("/series", h.GetSeries)
	r.Get("/summary", h.GetSummary)
	r.Get("/radar", h.GetRadar)
	return r
}

// seriesRequest decodes and validates the shared selection parameters.
func (h *CorrelationHandler) seriesRequest(r *http.Request) (services.SeriesRequest, error) {
	req := services.SeriesRequest{
		Portfolio: r.URL.Query().Get("portfolio"),
		Series:    queryList(r, "series"),
	}
	var err error
	if req.From, err = queryDate(r, "from"); err != nil {
		return req, err
	}
	if req.To, err = queryDate(r, "to"); err != nil {
		return req, err
	}
	if err := validateStruct(req); err != nil {
		return req, err
	}
	return req, nil
}

// GetPortfolios handles GET /api/correlation/portfolios.
func (h *CorrelationHandler) GetPortfolios(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Portfolios(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"portfolios": options})
}

// GetSeries handles GET /api/correlation/series.
func (h *CorrelationHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	req, err := h.seriesRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	view, err := h.service.Series(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, view)
}

// GetSummary handles GET /api/correlation/summary.
func (h *CorrelationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	req, err := h.seriesRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	summaries, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, map[string]any{"summaries": summaries})
}

// GetRadar handles GET /api/correlation/radar.
func (h *CorrelationHandler) GetRadar(w http.ResponseWriter, r *http.Request) {
	req, err := h.seriesRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	radar, err := h.service.Radar(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, radar)
}
