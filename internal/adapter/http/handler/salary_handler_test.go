package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/adapter/http/dto"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

type salaryServiceStub struct {
	addFn     func(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error)
	balanceFn func(ctx context.Context, userID string) (decimal.Decimal, error)
	summaryFn func(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error)
	historyFn func(ctx context.Context, input usecase.HistoryInput) ([]*domain.Record, error)
}

func (s *salaryServiceStub) AddSalary(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error) {
	return s.addFn(ctx, input)
}

func (s *salaryServiceStub) AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, userID)
}

func (s *salaryServiceStub) Summary(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error) {
	return s.summaryFn(ctx, userID, window)
}

func (s *salaryServiceStub) History(ctx context.Context, input usecase.HistoryInput) ([]*domain.Record, error) {
	return s.historyFn(ctx, input)
}

func TestSalaryHandler_Create_Success(t *testing.T) {
	record := &domain.Record{
		ID:       "rec-1",
		Kind:     domain.KindSalary,
		UserID:   "user-1",
		Amount:   decimal.NewFromInt(2500),
		Currency: domain.CurrencyEUR,
	}

	var captured usecase.AddSalaryInput
	h := NewSalaryHandler(&salaryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error) {
			captured = input
			return record, nil
		},
	})

	body, _ := json.Marshal(dto.AddSalaryRequest{
		UserID:   "user-1",
		Amount:   decimal.NewFromInt(2500),
		Currency: "EUR",
	})

	req := httptest.NewRequest(http.MethodPost, "/salaries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.Currency != domain.CurrencyEUR {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if !captured.Amount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected amount 2500, got %s", captured.Amount)
	}

	var resp dto.RecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "rec-1" || resp.Kind != string(domain.KindSalary) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSalaryHandler_Create_InvalidJSON(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error) {
			t.Fatal("AddSalary should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/salaries", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSalaryHandler_Create_DomainError(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddSalaryInput) (*domain.Record, error) {
			return nil, domain.ErrInvalidAmount
		},
	})

	body, _ := json.Marshal(dto.AddSalaryRequest{UserID: "user-1", Currency: "EUR"})
	req := httptest.NewRequest(http.MethodPost, "/salaries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSalaryHandler_Balance(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		balanceFn: func(ctx context.Context, userID string) (decimal.Decimal, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %q", userID)
			}
			return decimal.NewFromInt(1500), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/salaries/balance?user_id=user-1", nil)
	rec := httptest.NewRecorder()

	h.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected balance 1500, got %s", resp.Balance)
	}
}

func TestSalaryHandler_Summary_WindowFromQuery(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		summaryFn: func(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error) {
			if window == nil {
				t.Fatal("expected a window when year is given")
			}
			if window.Start.Year() != 2024 || window.Start.Month() != time.March {
				t.Fatalf("unexpected window start: %s", window.Start)
			}
			return domain.Summary{Balance: decimal.NewFromInt(4700)}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/salaries/summary?year=2024&month=3", nil)
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSalaryHandler_Summary_YearOnlyCoversWholeYear(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		summaryFn: func(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error) {
			if window == nil {
				t.Fatal("expected a window when year is given")
			}
			if window.Start.Month() != time.January || window.Start.Year() != 2025 {
				t.Fatalf("unexpected window start: %s", window.Start)
			}
			if !window.End.After(window.Start.AddDate(0, 11, 0)) {
				t.Fatalf("window must span the full year, ends %s", window.End)
			}
			return domain.Summary{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/salaries/summary?year=2025", nil)
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSalaryHandler_List(t *testing.T) {
	h := NewSalaryHandler(&salaryServiceStub{
		historyFn: func(ctx context.Context, input usecase.HistoryInput) ([]*domain.Record, error) {
			if input.Limit != 5 || input.Offset != 10 {
				t.Fatalf("expected pagination from query, got %+v", input)
			}
			return []*domain.Record{{ID: "rec-1", Kind: domain.KindSalary}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/salaries?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListRecordsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Records) != 1 {
		t.Fatalf("unexpected list response: %+v", resp)
	}
}
