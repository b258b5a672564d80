package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CPIDEntry maps a public identifier code back to the entity it was
// assigned to. Rows are written exactly once per entity and never mutated.
type CPIDEntry struct {
	bun.BaseModel `bun:"table:cpid_registry"`

	Code       string    `bun:"code,pk" json:"code"`
	EntityKind string    `bun:"entity_kind,notnull" json:"entityType"`
	EntityID   string    `bun:"entity_id,notnull" json:"entityId"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
}
