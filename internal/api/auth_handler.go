package api

import (
	"fmt"
	"net/http"

	"culturepass/internal/auth"
	"culturepass/internal/logger"
)

type AuthHandler struct {
	Auth       *auth.Service
	Middleware *auth.Middleware
	Logger     *logger.Logger
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "username, password and name are required")
		return
	}

	user, session, err := h.Auth.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	http.SetCookie(w, h.Middleware.SessionCookie(session))
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "username and password are required")
		return
	}

	user, session, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	http.SetCookie(w, h.Middleware.SessionCookie(session))
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "idToken is required")
		return
	}

	user, session, err := h.Auth.LoginFederated(r.Context(), req.IDToken)
	if err != nil {
		writeDomainError(w, h.Logger, err)
		return
	}

	http.SetCookie(w, h.Middleware.SessionCookie(session))
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if err := h.Auth.Logout(r.Context(), cookie.Value); err != nil {
			h.Logger.Warn("AUTH", fmt.Sprintf("logout: %v", err))
		}
	}
	http.SetCookie(w, h.Middleware.ClearedCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.AccountFromContext(r.Context()))
}
