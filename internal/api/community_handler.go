package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"culturepass/internal/auth"
	"culturepass/internal/booking"
	"culturepass/internal/kafka"
	"culturepass/internal/logger"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

// CommunityHandler covers the moderated entity kinds (organisations,
// businesses, artists) plus perks.
type CommunityHandler struct {
	Store  *store.DB
	Kafka  booking.Publisher
	Logger *logger.Logger
}

func (h *CommunityHandler) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.Store.ListPublicOrganisations(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *CommunityHandler) GetOrganisation(w http.ResponseWriter, r *http.Request) {
	org, err := h.Store.GetOrganisationByID(r.Context(), chi.URLParam(r, "orgId"))
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *CommunityHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	bizzes, err := h.Store.ListPublicBusinesses(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bizzes)
}

func (h *CommunityHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	biz, err := h.Store.GetBusinessByID(r.Context(), chi.URLParam(r, "businessId"))
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, biz)
}

func (h *CommunityHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Store.ListPublicArtists(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (h *CommunityHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	artist, err := h.Store.GetArtistByID(r.Context(), chi.URLParam(r, "artistId"))
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

// Submit handles POST /api/submit/{kind}. Submissions from standard
// users land as pending; admins create directly active entities.
func (h *CommunityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	account := auth.AccountFromContext(r.Context())

	submittedBy := account.ID
	if account.Role == models.RoleAdmin {
		submittedBy = ""
	}

	var created interface{}
	var err error
	switch kind {
	case "organisation":
		var org models.Organisation
		if !decodeBody(w, r, &org) {
			return
		}
		if org.Name == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "name is required")
			return
		}
		created, err = h.Store.CreateOrganisation(r.Context(), org, submittedBy)
	case "business":
		var biz models.Business
		if !decodeBody(w, r, &biz) {
			return
		}
		if biz.Name == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "name is required")
			return
		}
		created, err = h.Store.CreateBusiness(r.Context(), biz, submittedBy)
	case "artist":
		var artist models.Artist
		if !decodeBody(w, r, &artist) {
			return
		}
		if artist.Name == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "name is required")
			return
		}
		created, err = h.Store.CreateArtist(r.Context(), artist, submittedBy)
	default:
		writeError(w, http.StatusBadRequest, codeValidation, "unknown entity kind")
		return
	}
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	h.publish(kafka.TopicEntitySubmitted, kind, created)
	writeJSON(w, http.StatusCreated, created)
}

func (h *CommunityHandler) ListPerks(w http.ResponseWriter, r *http.Request) {
	perks, err := h.Store.ListPublicPerks(r.Context())
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, perks)
}

func (h *CommunityHandler) CreatePerk(w http.ResponseWriter, r *http.Request) {
	var perk models.Perk
	if !decodeBody(w, r, &perk) {
		return
	}
	if perk.Title == "" || perk.BusinessID == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "title and businessId are required")
		return
	}

	created, err := h.Store.CreatePerk(r.Context(), perk)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CommunityHandler) publish(topic, key string, payload interface{}) {
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
