package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/adapter/http/dto"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// InvestmentService defines the behavior needed by InvestmentHandler.
type InvestmentService interface {
	CreateInvestment(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	CreateFromSalaryTransfer(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	GetInvestment(ctx context.Context, id string) (*domain.Investment, error)
	ListInvestments(ctx context.Context, userID string) ([]*domain.Investment, error)
	UpdateInvestment(ctx context.Context, input usecase.UpdateInvestmentInput) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
	AddTransaction(ctx context.Context, input usecase.AddTransactionInput) (*domain.InvestmentTransaction, error)
	ListTransactions(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error)
	Summary(ctx context.Context, userID string) (usecase.InvestmentSummary, error)
	AddEntry(ctx context.Context, input usecase.AddEntryInput) (*domain.Record, error)
	AnnualEntriesTotal(ctx context.Context, year int, userID string) (decimal.Decimal, error)
	UpsertReturn(ctx context.Context, year int, percent decimal.Decimal) (*domain.InvestmentReturn, error)
	ListReturns(ctx context.Context) ([]*domain.InvestmentReturn, error)
	DeleteReturn(ctx context.Context, year int) error
}

// InvestmentHandler handles investment HTTP requests.
type InvestmentHandler struct {
	investmentUC InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentUC InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentUC: investmentUC}
}

// Create registers a new investment asset.
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.investmentUC.CreateInvestment)
}

// CreateFromSalary registers an investment funded from the salary
// scope.
func (h *InvestmentHandler) CreateFromSalary(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.investmentUC.CreateFromSalaryTransfer)
}

func (h *InvestmentHandler) create(
	w http.ResponseWriter,
	r *http.Request,
	create func(context.Context, usecase.CreateInvestmentInput) (*domain.Investment, error),
) {
	var req dto.CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create investment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestmentFromDomain(investment))
}

// Get retrieves an investment by ID.
func (h *InvestmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	investment, err := h.investmentUC.GetInvestment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get investment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentFromDomain(investment))
}

// List retrieves investments, optionally scoped to one user.
func (h *InvestmentHandler) List(w http.ResponseWriter, r *http.Request) {
	investments, err := h.investmentUC.ListInvestments(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list investments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentsFromDomain(investments))
}

// Update edits an investment's name and type.
func (h *InvestmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := h.investmentUC.UpdateInvestment(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update investment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentFromDomain(investment))
}

// Delete removes an investment.
func (h *InvestmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.investmentUC.DeleteInvestment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete investment", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTransaction appends a contribution to an investment.
func (h *InvestmentHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.investmentUC.AddTransaction(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record contribution", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// ListTransactions retrieves the contribution history of an investment.
func (h *InvestmentHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.investmentUC.ListTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list contributions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// Summary aggregates the portfolio in the reference currency.
func (h *InvestmentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.investmentUC.Summary(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to aggregate investments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// CreateEntry records an inflow into the investment-entry ledger.
func (h *InvestmentHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.InvestmentEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.investmentUC.AddEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// AnnualEntries totals the investment-entry ledger for one year.
func (h *InvestmentHandler) AnnualEntries(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	total, err := h.investmentUC.AnnualEntriesTotal(r.Context(), year, r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to total entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Balance: total})
}

// UpsertReturn records or replaces an annual portfolio return.
func (h *InvestmentHandler) UpsertReturn(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ret, err := h.investmentUC.UpsertReturn(r.Context(), req.Year, req.Percent)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record return", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReturnFromDomain(ret))
}

// ListReturns retrieves all recorded annual returns.
func (h *InvestmentHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.investmentUC.ListReturns(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list returns", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReturnsFromDomain(returns))
}

// DeleteReturn removes an annual return.
func (h *InvestmentHandler) DeleteReturn(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	if err := h.investmentUC.DeleteReturn(r.Context(), year); err != nil {
		writeError(w, mapDomainError(err), "failed to delete return", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
