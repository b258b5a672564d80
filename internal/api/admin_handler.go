package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"culturepass/internal/analytics"
	"culturepass/internal/booking"
	"culturepass/internal/kafka"
	"culturepass/internal/logger"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

type AdminHandler struct {
	Store     *store.DB
	Analytics *analytics.Service
	Kafka     booking.Publisher
	Logger    *logger.Logger
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusActive)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusRejected)
}

// moderate is idempotent: a second concurrent approve lands on the same
// final state and succeeds again.
func (h *AdminHandler) moderate(w http.ResponseWriter, r *http.Request, status string) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	entity, err := h.Store.SetModeratedStatus(r.Context(), kind, id, status)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	h.publish(kafka.TopicEntityModerated, kind+":"+id, entity)
	writeJSON(w, http.StatusOK, entity)
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Store.ListAllPending(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Overview(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Promote grants the admin role to another account.
func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.SetUserRole(r.Context(), chi.URLParam(r, "userId"), models.RoleAdmin)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) publish(topic, key string, payload interface{}) {
	if h.Kafka == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		h.Logger.Error("KAFKA", fmt.Sprintf("marshal %s payload: %v", topic, err))
		return
	}
	if err := h.Kafka.Publish(topic, key, value); err != nil {
		h.Logger.Error("KAFKA", fmt.Sprintf("publish %s: %v", topic, err))
	}
}
