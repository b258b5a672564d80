package api

import (
	"net/http"

	"culturepass/internal/auth"
	"culturepass/internal/booking"
	"culturepass/internal/logger"
	"culturepass/internal/store"
)

type BookingHandler struct {
	Booking *booking.Service
	Store   *store.DB
	Logger  *logger.Logger
}

// CreateOrder books tickets for the session user and bumps the event's
// tickets_sold counter.
func (h *BookingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID  string  `json:"eventId"`
		Quantity int     `json:"quantity"`
		Amount   float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EventID == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, codeValidation, "eventId and a positive quantity are required")
		return
	}

	account := auth.AccountFromContext(r.Context())
	order, err := h.Booking.RecordOrder(r.Context(), account.ID, req.EventID, req.Quantity, req.Amount)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// CreateMembership joins the session user to an organisation and bumps
// its member_count.
func (h *BookingHandler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrgID string `json:"orgId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrgID == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "orgId is required")
		return
	}

	account := auth.AccountFromContext(r.Context())
	membership, err := h.Booking.RecordMembership(r.Context(), account.ID, req.OrgID)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, membership)
}

// SaveEvent toggles an event on the session user's saved list and
// returns the updated account.
func (h *BookingHandler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID string `json:"eventId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EventID == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "eventId is required")
		return
	}

	if _, err := h.Store.GetEventByID(r.Context(), req.EventID); err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	account := auth.AccountFromContext(r.Context())
	user, err := h.Store.ToggleSavedEvent(r.Context(), account.ID, req.EventID)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
