package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"culturepass/internal/cpid"
	"culturepass/internal/logger"
)

type CPIDHandler struct {
	Registry *cpid.Registry
	Logger   *logger.Logger
}

// Lookup resolves a public identifier code to its entity.
func (h *CPIDHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "cpid")
	kind, entityID, err := h.Registry.Lookup(r.Context(), code)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"entityType": string(kind),
		"entityId":   entityID,
	})
}

// QR serves the code as a PNG QR image, verified first so never-assigned
// codes 404 instead of rendering.
func (h *CPIDHandler) QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "cpid")
	if _, _, err := h.Registry.Lookup(r.Context(), code); err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	png, err := cpid.PNG(code)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}
