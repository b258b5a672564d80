package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"culturepass/internal/models"
)

// CreatePerk inserts a perk attached to a business. Perks carry no CPID
// and no counters.
func (d *DB) CreatePerk(ctx context.Context, perk models.Perk) (*models.Perk, error) {
	if _, err := d.GetBusinessByID(ctx, perk.BusinessID); err != nil {
		return nil, err
	}
	perk.ID = uuid.NewString()
	if perk.Status == "" {
		perk.Status = models.StatusActive
	}
	perk.CreatedAt = time.Now()

	if _, err := d.Bun.NewInsert().Model(&perk).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert perk: %w", err)
	}
	return &perk, nil
}

// ListPublicPerks is the status-gated listing.
func (d *DB) ListPublicPerks(ctx context.Context) ([]models.Perk, error) {
	perks := []models.Perk{}
	err := d.Bun.NewSelect().
		Model(&perks).
		Where("status = ?", models.StatusActive).
		Order("created_at DESC").
		Scan(ctx)
	return perks, err
}

func (d *DB) GetPerkByID(ctx context.Context, id string) (*models.Perk, error) {
	var perk models.Perk
	err := d.Bun.NewSelect().
		Model(&perk).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &perk, nil
}
