package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Dashboard(ctx context.Context) (*usecase.Dashboard, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) (*usecase.Dashboard, error)
	Annual(ctx context.Context, year int) (*usecase.AnnualReport, error)
	YearlyByUser(ctx context.Context, year int) ([]usecase.UserSummary, error)
}

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Dashboard returns the current-month view across all scopes.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportUC.Dashboard(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Monthly returns the dashboard for an arbitrary month.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r, domain.SystemClock{}.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	dashboard, err := h.reportUC.MonthlyReport(r.Context(), year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Annual returns the whole-year report with per-month totals.
func (h *ReportHandler) Annual(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	report, err := h.reportUC.Annual(r.Context(), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build annual report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// AnnualByUser returns one year's totals split by user.
func (h *ReportHandler) AnnualByUser(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	summaries, err := h.reportUC.YearlyByUser(r.Context(), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build user report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
