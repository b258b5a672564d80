package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"culturepass/internal/logger"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

type EventHandler struct {
	Store  *store.DB
	Logger *logger.Logger
}

// List is the public listing: published events only, narrowed by the
// optional category / city / featured / search query params.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.EventFilter{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}

	events, err := h.Store.ListPublicEvents(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.Store.GetEventByID(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if !decodeBody(w, r, &event) {
		return
	}
	if event.Title == "" || event.Category == "" || event.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, codeValidation, "title, category and startTime are required")
		return
	}

	created, err := h.Store.CreateEvent(r.Context(), event)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.ID = chi.URLParam(r, "eventId")

	updated, err := h.Store.UpdateEvent(r.Context(), event)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEvent(r.Context(), chi.URLParam(r, "eventId")); err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
