package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/financo/internal/adapter/http/dto"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// FundService defines the behavior needed by FundHandler.
type FundService interface {
	Summary(ctx context.Context, fundType domain.FundType, userID string) (usecase.FundSummary, error)
	History(ctx context.Context, fundType domain.FundType, userID string) (usecase.FundHistory, error)
	AddEntry(ctx context.Context, input usecase.AddFundRecordInput) (*domain.Record, error)
	AddEntryFromSalary(ctx context.Context, input usecase.AddFundRecordInput) (*domain.Record, error)
	AddExpense(ctx context.Context, input usecase.AddFundRecordInput) (*domain.Record, error)
	DeleteEntry(ctx context.Context, id string) error
	DeleteExpense(ctx context.Context, id string) error
}

// FundHandler handles fund HTTP requests. The fund type always comes
// from the URL.
type FundHandler struct {
	fundUC FundService
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundUC FundService) *FundHandler {
	return &FundHandler{fundUC: fundUC}
}

func fundTypeParam(r *http.Request) domain.FundType {
	return domain.FundType(chi.URLParam(r, "type"))
}

// Summary aggregates a fund's ledger.
func (h *FundHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.fundUC.Summary(r.Context(), fundTypeParam(r), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to aggregate fund", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// History lists a fund's entries and expenses.
func (h *FundHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.fundUC.History(r.Context(), fundTypeParam(r), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load fund history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// CreateEntry records a plain inflow into a fund.
func (h *FundHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	h.createRecord(w, r, h.fundUC.AddEntry)
}

// CreateEntryFromSalary moves money from the salary scope into a fund.
func (h *FundHandler) CreateEntryFromSalary(w http.ResponseWriter, r *http.Request) {
	h.createRecord(w, r, h.fundUC.AddEntryFromSalary)
}

// CreateExpense spends from a fund.
func (h *FundHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createRecord(w, r, h.fundUC.AddExpense)
}

func (h *FundHandler) createRecord(
	w http.ResponseWriter,
	r *http.Request,
	create func(context.Context, usecase.AddFundRecordInput) (*domain.Record, error),
) {
	var req dto.FundRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := create(r.Context(), req.ToUseCaseInput(fundTypeParam(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record fund movement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// DeleteEntry removes a fund entry.
func (h *FundHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.fundUC.DeleteEntry)
}

// DeleteExpense removes a fund expense.
func (h *FundHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.fundUC.DeleteExpense)
}

func (h *FundHandler) deleteRecord(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	if err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete fund record", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
