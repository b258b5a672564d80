package booking

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"culturepass/internal/models"
	"culturepass/internal/store"
)

// DB is the booking storage layer. All counter mutation happens here as
// single-statement column increments so concurrent writes to the same row
// cannot lose updates.
type DB struct {
	Bun *bun.DB
}

func (d *DB) InsertOrder(ctx context.Context, order models.Order) error {
	_, err := d.Bun.NewInsert().Model(&order).Exec(ctx)
	return err
}

func (d *DB) DeleteOrder(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Order)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// IncrementTicketsSold applies tickets_sold = tickets_sold + qty at the
// storage layer, never as read-then-write. With the capacity guard on,
// the increment only lands while qty still fits and ErrSoldOut is
// returned otherwise.
func (d *DB) IncrementTicketsSold(ctx context.Context, eventID string, qty int, allowOversell bool) error {
	q := d.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Set("tickets_sold = tickets_sold + ?", qty).
		Where("id = ?", eventID)
	if !allowOversell {
		q = q.Where("tickets_sold + ? <= tickets_available", qty)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("increment tickets_sold: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, err := d.Bun.NewSelect().
			Model((*models.Event)(nil)).
			Where("id = ?", eventID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}
		return ErrSoldOut
	}
	return nil
}

// InsertMembership relies on the unique (user_id, organisation_id) index:
// a duplicate join loses at the database and surfaces as ErrAlreadyMember.
func (d *DB) InsertMembership(ctx context.Context, membership models.Membership) error {
	res, err := d.Bun.NewInsert().Model(&membership).Ignore().Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyMember
	}
	return nil
}

func (d *DB) DeleteMembership(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Membership)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (d *DB) MembershipExists(ctx context.Context, userID, orgID string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Membership)(nil)).
		Where("user_id = ?", userID).
		Where("organisation_id = ?", orgID).
		Exists(ctx)
}

func (d *DB) IncrementMemberCount(ctx context.Context, orgID string) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.Organisation)(nil)).
		Set("member_count = member_count + 1").
		Where("id = ?", orgID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("increment member_count: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
