package models

import (
	"time"

	"github.com/uptrace/bun"
)

// EventCategories is the fixed set of categories an event may carry.
var EventCategories = []string{
	"music",
	"theatre",
	"dance",
	"visual-arts",
	"film",
	"literature",
	"heritage",
	"food",
	"workshop",
}

func IsValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID               string    `bun:"id,pk" json:"id"`
	CPID             string    `bun:"cpid,unique" json:"cpid"`
	Title            string    `bun:"title,notnull" json:"title"`
	Description      string    `bun:"description,nullzero" json:"description,omitempty"`
	Category         string    `bun:"category,notnull" json:"category"`
	City             string    `bun:"city,nullzero" json:"city,omitempty"`
	Venue            string    `bun:"venue,nullzero" json:"venue,omitempty"`
	StartTime        time.Time `bun:"start_time,notnull" json:"startTime"`
	EndTime          time.Time `bun:"end_time,nullzero" json:"endTime,omitempty"`
	Price            float64   `bun:"price" json:"price"`
	TicketsAvailable int       `bun:"tickets_available,notnull" json:"ticketsAvailable"`
	TicketsSold      int       `bun:"tickets_sold,notnull,default:0" json:"ticketsSold"`
	OrganisationID   string    `bun:"organisation_id,nullzero" json:"organisationId,omitempty"`
	Featured         bool      `bun:"featured" json:"featured"`
	Published        bool      `bun:"published" json:"published"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
