package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID            string    `bun:"id,pk" json:"id"`
	CPID          string    `bun:"cpid,unique" json:"cpid"`
	Username      string    `bun:"username,unique,notnull" json:"username"`
	PasswordHash  string    `bun:"password_hash,nullzero" json:"-"`
	GoogleID      string    `bun:"google_id,nullzero" json:"-"`
	Name          string    `bun:"name,notnull" json:"name"`
	Email         string    `bun:"email,nullzero" json:"email,omitempty"`
	City          string    `bun:"city,nullzero" json:"city,omitempty"`
	Role          string    `bun:"role,notnull,default:'standard'" json:"role"`
	SavedEventIDs []string  `bun:"saved_event_ids,array" json:"savedEventIds"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
