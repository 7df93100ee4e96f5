package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/financo/internal/adapter/http/dto"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Record, error)
	UpdateExpense(ctx context.Context, input usecase.UpdateExpenseInput) (*domain.Record, error)
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Record, error)
	MonthlyExpenses(ctx context.Context, year int, month time.Month, userID string) ([]*domain.Record, error)
	MonthlySummary(ctx context.Context, userID string) (domain.Summary, error)
}

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records an expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.expenseUC.AddExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// Update edits an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.expenseUC.UpdateExpense(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.expenseUC.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List retrieves expenses for a user.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRecordsResponse{
		Records: dto.RecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// Monthly retrieves the expenses of one calendar month.
func (h *ExpenseHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r, domain.SystemClock{}.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	records, err := h.expenseUC.MonthlyExpenses(r.Context(), year, month, r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list monthly expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRecordsResponse{
		Records: dto.RecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// Summary aggregates the current month's expenses.
func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.expenseUC.MonthlySummary(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to aggregate expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
