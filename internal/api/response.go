package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"culturepass/internal/auth"
	"culturepass/internal/booking"
	"culturepass/internal/cpid"
	"culturepass/internal/logger"
	"culturepass/internal/store"
)

// Error envelope with stable machine codes; clients switch on the code,
// never on message text.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

const (
	codeValidation      = "validation_error"
	codeUnauthenticated = "unauthenticated"
	codeForbidden       = "forbidden"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codeAlreadyMember   = "already_member"
	codeSoldOut         = "sold_out"
	codeInternal        = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// writeDomainError maps layer errors onto the HTTP taxonomy. Anything
// unrecognised is a 500 with the detail kept server-side.
func writeDomainError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, cpid.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.Is(err, store.ErrUsernameTaken):
		writeError(w, http.StatusConflict, codeConflict, "username already taken")
	case errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrInvalidKind),
		errors.Is(err, booking.ErrInvalidQuantity), errors.Is(err, cpid.ErrUnknownKind):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, booking.ErrAlreadyMember):
		writeError(w, http.StatusConflict, codeAlreadyMember, "already a member of this organisation")
	case errors.Is(err, booking.ErrSoldOut):
		writeError(w, http.StatusConflict, codeSoldOut, "not enough tickets available")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid credentials")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "insufficient role")
	default:
		if log != nil {
			log.Error("API", err.Error())
		}
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return false
	}
	return true
}
