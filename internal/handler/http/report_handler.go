package http

import (
	"net/http"
	"strconv"

	"catalog-api/internal/apperror"
	"catalog-api/internal/logger"
	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"go.opentelemetry.io/otel"
)

type ReportHandler struct {
	service *service.ReportService
}

var HttpReportHandlerTracer = otel.Tracer("HttpReportHandler")

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// ByType serves GET /api/products/report/{type}.
func (h *ReportHandler) ByType(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, model.ReportType(r.PathValue("type")))
}

// LowStock serves GET /api/reports/low-stock.
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, model.LowStock)
}

// HighStock serves GET /api/reports/high-stock.
func (h *ReportHandler) HighStock(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, model.HighStock)
}

func (h *ReportHandler) report(w http.ResponseWriter, r *http.Request, reportType model.ReportType) {
	ctx, span := HttpReportHandlerTracer.Start(r.Context(), "HttpReportHandler.Report")
	defer span.End()
	logger.Info(ctx, "HttpReportHandler")

	threshold, err := parseThreshold(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.service.StockReport(ctx, reportType, threshold)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// parseThreshold reads the mandatory threshold query parameter. There is no
// implicit default.
func parseThreshold(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("threshold")
	if raw == "" {
		return 0, apperror.NewValidationError("threshold query parameter is required")
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError("invalid threshold %q", raw)
	}
	return threshold, nil
}
