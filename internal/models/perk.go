package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Perk is a discount offer tied to a business. It carries the same status
// field as moderated entities so listings stay status-gated, but has no
// counters.
type Perk struct {
	bun.BaseModel `bun:"table:perks"`

	ID          string    `bun:"id,pk" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	Discount    string    `bun:"discount,nullzero" json:"discount,omitempty"`
	BusinessID  string    `bun:"business_id,notnull" json:"businessId"`
	Status      string    `bun:"status,notnull,default:'active'" json:"status"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
