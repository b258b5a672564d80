package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"culturepass/internal/cpid"
	"culturepass/internal/models"
)

// EventFilter narrows the public event listing. Zero values mean "don't
// filter on this".
type EventFilter struct {
	Category string
	City     string
	Featured *bool
	Search   string
}

func (d *DB) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if !models.IsValidCategory(event.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidStatus, event.Category)
	}

	event.ID = uuid.NewString()
	event.TicketsSold = 0
	event.CreatedAt = time.Now()

	code, err := d.Registry.Assign(ctx, cpid.KindEvent, event.ID)
	if err != nil {
		return nil, fmt.Errorf("assign cpid: %w", err)
	}
	event.CPID = code

	if _, err := d.Bun.NewInsert().Model(&event).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// UpdateEvent overwrites the mutable fields of an event. The tickets_sold
// counter is owned by the booking layer and deliberately not touched here.
func (d *DB) UpdateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if event.Category != "" && !models.IsValidCategory(event.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidStatus, event.Category)
	}
	res, err := d.Bun.NewUpdate().
		Model(&event).
		Column("title", "description", "category", "city", "venue",
			"start_time", "end_time", "price", "tickets_available",
			"organisation_id", "featured", "published").
		Where("id = ?", event.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return d.GetEventByID(ctx, event.ID)
}

func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublicEvents applies the filter on top of the published-only
// restriction. Title search is a case-insensitive substring match.
func (d *DB) ListPublicEvents(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	events := []models.Event{}
	q := d.Bun.NewSelect().
		Model(&events).
		Where("published = ?", true)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		q = q.Where("lower(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	err := q.Order("start_time ASC").Scan(ctx)
	return events, err
}
