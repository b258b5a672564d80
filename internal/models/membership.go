package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Membership is a join record linking a user and an organisation. The
// (user_id, organisation_id) pair is unique; creating one increments the
// organisation's member_count.
type Membership struct {
	bun.BaseModel `bun:"table:memberships"`

	ID             string    `bun:"id,pk" json:"id"`
	UserID         string    `bun:"user_id,notnull,unique:memberships_user_org" json:"userId"`
	OrganisationID string    `bun:"organisation_id,notnull,unique:memberships_user_org" json:"organisationId"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
