package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/adapter/http/dto"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// SalaryService defines the behavior needed by SalaryHandler.
type SalaryService interface {
	AddSalary(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error)
	AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	Summary(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error)
	History(ctx context.Context, input usecase.HistoryInput) ([]*domain.Record, error)
}

// SalaryHandler handles salary-scope HTTP requests.
type SalaryHandler struct {
	salaryUC SalaryService
}

// NewSalaryHandler creates a new SalaryHandler.
func NewSalaryHandler(salaryUC SalaryService) *SalaryHandler {
	return &SalaryHandler{salaryUC: salaryUC}
}

// Create records a salary inflow.
func (h *SalaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.salaryUC.AddSalary(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record salary", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// List retrieves salary-scope history for a user.
func (h *SalaryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.salaryUC.History(r.Context(), usecase.HistoryInput{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list salaries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRecordsResponse{
		Records: dto.RecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// Balance returns the available salary balance for a user.
func (h *SalaryHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	balance, err := h.salaryUC.AvailableBalance(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// Summary aggregates the salary scope, optionally windowed by year and
// month query parameters. A year without a month covers the whole
// year.
func (h *SalaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	var window *domain.Window
	if r.URL.Query().Get("year") != "" {
		year, month, err := parseYearMonth(r, domain.SystemClock{}.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period", err.Error())
			return
		}

		win := domain.MonthOf(year, month)
		if r.URL.Query().Get("month") == "" {
			win = domain.YearOf(year)
		}
		window = &win
	}

	summary, err := h.salaryUC.Summary(r.Context(), userID, window)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to aggregate salaries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
