package auth

import (
	"context"
	"net/http"
	"time"

	"culturepass/internal/models"
)

type contextKey string

const accountKey contextKey = "account"

// CookieName carries the opaque session token; HTTP-only so the client
// script never sees it.
const CookieName = "cp_session"

type Middleware struct {
	Auth         *Service
	CookieSecure bool
}

// RequireSession resolves the session cookie to an account and injects
// it into the request context, or answers 401.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := m.authenticate(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
	})
}

// RequireAdmin additionally checks role == admin.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := m.authenticate(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return
		}
		if account.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
	})
}

func (m *Middleware) authenticate(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return m.Auth.Authenticate(r.Context(), cookie.Value)
}

// SessionCookie builds the cookie for a freshly established session.
func (m *Middleware) SessionCookie(session *models.Session) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie expires the session cookie immediately.
func (m *Middleware) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func withAccount(ctx context.Context, account *models.User) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFromContext returns the authenticated account set by
// RequireSession / RequireAdmin, or nil on public routes.
func AccountFromContext(ctx context.Context) *models.User {
	if account, ok := ctx.Value(accountKey).(*models.User); ok {
		return account
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`))
}
