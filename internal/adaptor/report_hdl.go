package adaptor

import (
	"bytes"
	"fmt"
	"net/http"

	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// EventReport handles GET /api/admin/events/{id}/report (admin only)
func (h *ReportHandler) EventReport(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	report, err := h.service.EventReport(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, h.log, "event report", err)
		return
	}

	utils.ResponseSuccess(w, "Report retrieved successfully", report)
}

// ExportEventTickets handles GET /api/admin/events/{id}/tickets/export
// (admin only). Returns the ticket ledger as a CSV attachment. The export is
// buffered so that a failed lookup still yields a proper JSON error instead
// of a truncated CSV.
func (h *ReportHandler) ExportEventTickets(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var buf bytes.Buffer
	if err := h.service.ExportEventTickets(r.Context(), eventID, &buf); err != nil {
		writeServiceError(w, h.log, "export tickets", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tickets-%s.csv"`, eventID))
	w.Write(buf.Bytes())
}
