package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Order is a purchase record linking a user and an event. Creating one is
// the trigger that increments the event's tickets_sold counter.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"userId"`
	EventID   string    `bun:"event_id,notnull" json:"eventId"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	Amount    float64   `bun:"amount" json:"amount"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
