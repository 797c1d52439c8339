package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/exporter"
	"riskdesk/internal/infrastructure"
	"riskdesk/internal/services"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

// ExportHandler renders the dashboard views as downloadable files.
type ExportHandler struct {
	correlation  *services.CorrelationService
	stress       *services.StressService
	legend       *services.LegendService
	metrics      *infrastructure.Metrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler.
func NewExportHandler(
	correlation *services.CorrelationService,
	stress *services.StressService,
	legend *services.LegendService,
	metrics *infrastructure.Metrics,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *ExportHandler {
	return &ExportHandler{
		correlation:  correlation,
		stress:       stress,
		legend:       legend,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes. The format query parameter selects
// xlsx (default) or csv.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/correlation", h.ExportCorrelation)
	r.Get("/summary", h.ExportSummary)
	r.Get("/stress-pnl", h.ExportStressPnL)
	r.Get("/by-strategy", h.ExportByStrategy)
	r.Get("/comparison", h.ExportComparison)
	return r
}

func exportFormat(r *http.Request) (string, error) {
	switch f := r.URL.Query().Get("format"); f {
	case "", exporter.FormatXLSX:
		return exporter.FormatXLSX, nil
	case exporter.FormatCSV:
		return exporter.FormatCSV, nil
	default:
		return "", apierrors.ErrValidation("format", fmt.Sprintf("unsupported format %q", f))
	}
}

// send writes the rendered file with download headers and counts the export.
func (h *ExportHandler) send(w http.ResponseWriter, r *http.Request, view, stem, format string, payload []byte) {
	contentType := xlsxContentType
	if format == exporter.FormatCSV {
		contentType = csvContentType
	}
	filename := exporter.WithExt(stem, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)

	h.metrics.ExportsTotal.WithLabelValues(view, format).Inc()
	h.logger.InfoContext(r.Context(), "export generated",
		slog.String("view", view),
		slog.String("file", filename),
		slog.Int("bytes", len(payload)))
}

// ExportCorrelation handles GET /api/export/correlation.
func (h *ExportHandler) ExportCorrelation(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	req := services.SeriesRequest{
		Portfolio: r.URL.Query().Get("portfolio"),
		Series:    queryList(r, "series"),
	}
	if req.From, err = queryDate(r, "from"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if req.To, err = queryDate(r, "to"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	view, err := h.correlation.Series(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	payload, err := exporter.SeriesPayload(format, view)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.send(w, r, "correlation", exporter.FileCorrelation, format, payload)
}

// ExportSummary handles GET /api/export/summary.
func (h *ExportHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	req := services.SeriesRequest{
		Portfolio: r.URL.Query().Get("portfolio"),
		Series:    queryList(r, "series"),
	}
	if req.From, err = queryDate(r, "from"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if req.To, err = queryDate(r, "to"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	summaries, err := h.correlation.Summary(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	payload, err := exporter.SummaryPayload(format, summaries)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.send(w, r, "summary", exporter.FileSummary, format, payload)
}

// ExportStressPnL handles GET /api/export/stress-pnl.
func (h *ExportHandler) ExportStressPnL(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	date, err := requiredQueryDate(r, "date")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	records, err := h.stress.PnL(r.Context(), services.StressRequest{
		Date:       date,
		Portfolios: queryList(r, "portfolios"),
		Scenarios:  queryList(r, "scenarios"),
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	payload, err := exporter.StressPayload(format, records)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.send(w, r, "stress_pnl", exporter.FileStressPnL, format, payload)
}

// ExportByStrategy handles GET /api/export/by-strategy.
func (h *ExportHandler) ExportByStrategy(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
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
	records, err := h.stress.Details(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	payload, err := exporter.DetailPayload(format, records)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.send(w, r, "by_strategy", exporter.FileByStrategy, format, payload)
}

// ExportComparison handles GET /api/export/comparison. The file name
// carries the subject's display name, lower-cased with underscores.
func (h *ExportHandler) ExportComparison(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
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
	rows, err := h.stress.Comparison(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	payload, err := exporter.ComparisonPayload(format, rows)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	stem := exporter.ComparisonFileName(h.resolveName(r.Context(), req.Subject))
	h.send(w, r, "comparison", stem, format, payload)
}

func (h *ExportHandler) resolveName(ctx context.Context, id string) string {
	return h.legend.Resolve(ctx)(id)
}
