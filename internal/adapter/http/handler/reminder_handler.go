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

// ReminderService defines the behavior needed by ReminderHandler.
type ReminderService interface {
	Create(ctx context.Context, input usecase.CreateReminderInput) (*domain.Reminder, error)
	Get(ctx context.Context, id string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Reminder, error)
	Delete(ctx context.Context, id string) error
}

// ReminderHandler handles reminder HTTP requests.
type ReminderHandler struct {
	reminderUC ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create stores a new reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromDomain(reminder))
}

// Get retrieves a reminder by ID.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.reminderUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// List retrieves a user's reminders.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminderUC.ListByUser(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list reminders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromDomain(reminders))
}

// Update rewrites a reminder's text.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.UpdateText(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// Delete removes a reminder.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reminderUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete reminder", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
