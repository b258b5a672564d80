package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session is a server-side login session. Expiry is absolute from
// creation; there is no sliding renewal.
type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	Token     string    `bun:"token,pk" json:"-"`
	UserID    string    `bun:"user_id,notnull" json:"userId"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	ExpiresAt time.Time `bun:"expires_at,notnull" json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
