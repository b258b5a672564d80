// Package auth owns credentials, server-side sessions, and the role
// gates in front of privileged routes. Sessions move Anonymous →
// Authenticated on register/login/federated login and back on logout;
// there are no intermediate states.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"culturepass/internal/logger"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnauthenticated    = errors.New("auth: not authenticated")
	ErrForbidden          = errors.New("auth: forbidden")
)

// Store is the slice of the persistence layer the session manager needs.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	InsertSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Verifier checks a federated provider token. The verification itself is
// an opaque external call; only the stable subject and profile claims
// come back.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*FederatedClaims, error)
}

type FederatedClaims struct {
	Subject string
	Email   string
	Name    string
}

// Cache is the read-through session cache. Nil-safe from the service's
// point of view: a missing cache just means every check hits the DB.
type Cache interface {
	GetUserID(ctx context.Context, token string) (string, error)
	SetUserID(ctx context.Context, token, userID string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

type Service struct {
	Store      Store
	Google     Verifier
	Cache      Cache
	Logger     *logger.Logger
	SessionTTL time.Duration
}

func NewService(st Store, google Verifier, cache Cache, log *logger.Logger, sessionTTL time.Duration) *Service {
	return &Service{Store: st, Google: google, Cache: cache, Logger: log, SessionTTL: sessionTTL}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	City     string `json:"city"`
}

// Register creates the account (hashing the password, assigning a CPID
// via the store) and establishes a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Store.CreateUser(ctx, models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Email:        req.Email,
		City:         req.City,
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.Logger.LogAuth("REGISTER", user.Username, "account created")
	return user, session, nil
}

// Login checks the credentials and establishes a session. Unknown
// username and hash mismatch are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	user, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.Logger.LogAuth("LOGIN", username, "session established")
	return user, session, nil
}

// LoginFederated verifies the provider token and finds or creates the
// account keyed by the provider's stable subject.
func (s *Service) LoginFederated(ctx context.Context, rawToken string) (*models.User, *models.Session, error) {
	if s.Google == nil {
		return nil, nil, fmt.Errorf("auth: federated login not configured")
	}

	claims, err := s.Google.Verify(ctx, rawToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	user, err := s.Store.GetUserByGoogleID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.Store.CreateUser(ctx, models.User{
			Username: "google:" + claims.Subject,
			GoogleID: claims.Subject,
			Name:     claims.Name,
			Email:    claims.Email,
		})
	}
	if err != nil {
		return nil, nil, err
	}

	session, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.Logger.LogAuth("FEDERATED", user.Username, "session established")
	return user, session, nil
}

// Logout tears the session down on both the cache and the DB.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, token); err != nil {
			s.Logger.Warn("AUTH", fmt.Sprintf("session cache delete failed: %v", err))
		}
	}
	return s.Store.DeleteSession(ctx, token)
}

// Authenticate resolves a session token to its account, consulting the
// cache before the sessions table. Expired sessions are rejected with
// ErrUnauthenticated (expiry is absolute from creation).
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	if s.Cache != nil {
		if userID, err := s.Cache.GetUserID(ctx, token); err == nil && userID != "" {
			return s.Store.GetUserByID(ctx, userID)
		}
	}

	session, err := s.Store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, ErrUnauthenticated
	}

	if s.Cache != nil {
		ttl := time.Until(session.ExpiresAt)
		if ttl > 15*time.Minute {
			ttl = 15 * time.Minute
		}
		if err := s.Cache.SetUserID(ctx, token, session.UserID, ttl); err != nil {
			s.Logger.Warn("AUTH", fmt.Sprintf("session cache set failed: %v", err))
		}
	}

	return s.Store.GetUserByID(ctx, session.UserID)
}

func (s *Service) establishSession(ctx context.Context, userID string) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	if err := s.Store.InsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &session, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
