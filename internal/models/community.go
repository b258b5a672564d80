package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Lifecycle statuses for moderated entities. Submissions from standard
// users start as pending and only appear in public listings once an
// admin promotes them to active.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

func IsValidStatus(status string) bool {
	return status == StatusPending || status == StatusActive || status == StatusRejected
}

type Organisation struct {
	bun.BaseModel `bun:"table:organisations"`

	ID          string    `bun:"id,pk" json:"id"`
	CPID        string    `bun:"cpid,unique" json:"cpid"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	City        string    `bun:"city,nullzero" json:"city,omitempty"`
	Status      string    `bun:"status,notnull,default:'pending'" json:"status"`
	OwnerID     string    `bun:"owner_id,nullzero" json:"ownerId,omitempty"`
	MemberCount int       `bun:"member_count,notnull,default:0" json:"memberCount"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type Business struct {
	bun.BaseModel `bun:"table:businesses"`

	ID          string    `bun:"id,pk" json:"id"`
	CPID        string    `bun:"cpid,unique" json:"cpid"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	City        string    `bun:"city,nullzero" json:"city,omitempty"`
	Status      string    `bun:"status,notnull,default:'pending'" json:"status"`
	OwnerID     string    `bun:"owner_id,nullzero" json:"ownerId,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type Artist struct {
	bun.BaseModel `bun:"table:artists"`

	ID         string    `bun:"id,pk" json:"id"`
	CPID       string    `bun:"cpid,unique" json:"cpid"`
	Name       string    `bun:"name,notnull" json:"name"`
	Bio        string    `bun:"bio,nullzero" json:"bio,omitempty"`
	Discipline string    `bun:"discipline,nullzero" json:"discipline,omitempty"`
	City       string    `bun:"city,nullzero" json:"city,omitempty"`
	Status     string    `bun:"status,notnull,default:'pending'" json:"status"`
	OwnerID    string    `bun:"owner_id,nullzero" json:"ownerId,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
