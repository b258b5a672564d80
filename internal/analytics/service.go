// Package analytics aggregates the counts behind the admin dashboard.
package analytics

import (
	"context"

	"github.com/uptrace/bun"

	"culturepass/internal/models"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Stats is the admin overview: totals per entity kind, the moderation
// backlog, and the two running counters.
type Stats struct {
	Users                int `json:"users"`
	Events               int `json:"events"`
	Organisations        int `json:"organisations"`
	Businesses           int `json:"businesses"`
	Artists              int `json:"artists"`
	Perks                int `json:"perks"`
	Orders               int `json:"orders"`
	Memberships          int `json:"memberships"`
	PendingOrganisations int `json:"pendingOrganisations"`
	PendingBusinesses    int `json:"pendingBusinesses"`
	PendingArtists       int `json:"pendingArtists"`
	TicketsSold          int `json:"ticketsSold"`
	TotalMembers         int `json:"totalMembers"`
}

func (s *Service) Overview(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		model interface{}
		dest  *int
	}{
		{(*models.User)(nil), &stats.Users},
		{(*models.Event)(nil), &stats.Events},
		{(*models.Organisation)(nil), &stats.Organisations},
		{(*models.Business)(nil), &stats.Businesses},
		{(*models.Artist)(nil), &stats.Artists},
		{(*models.Perk)(nil), &stats.Perks},
		{(*models.Order)(nil), &stats.Orders},
		{(*models.Membership)(nil), &stats.Memberships},
	}
	for _, c := range counts {
		n, err := s.db.NewSelect().Model(c.model).Count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	pending := []struct {
		model interface{}
		dest  *int
	}{
		{(*models.Organisation)(nil), &stats.PendingOrganisations},
		{(*models.Business)(nil), &stats.PendingBusinesses},
		{(*models.Artist)(nil), &stats.PendingArtists},
	}
	for _, p := range pending {
		n, err := s.db.NewSelect().Model(p.model).Where("status = ?", models.StatusPending).Count(ctx)
		if err != nil {
			return nil, err
		}
		*p.dest = n
	}

	err := s.db.NewSelect().
		Model((*models.Event)(nil)).
		ColumnExpr("coalesce(sum(tickets_sold), 0)").
		Scan(ctx, &stats.TicketsSold)
	if err != nil {
		return nil, err
	}

	err = s.db.NewSelect().
		Model((*models.Organisation)(nil)).
		ColumnExpr("coalesce(sum(member_count), 0)").
		Scan(ctx, &stats.TotalMembers)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
