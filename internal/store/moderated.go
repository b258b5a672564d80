package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"culturepass/internal/cpid"
	"culturepass/internal/models"
)

// ---------------- ORGANISATIONS ----------------

// CreateOrganisation inserts a new organisation. When submittedBy is a
// non-empty user id (the non-admin submission path) the status is forced
// to pending and the owner recorded; otherwise it is created active.
// A CPID is always assigned before the row is written.
func (d *DB) CreateOrganisation(ctx context.Context, org models.Organisation, submittedBy string) (*models.Organisation, error) {
	org.ID = uuid.NewString()
	org.CreatedAt = time.Now()
	if submittedBy != "" {
		org.Status = models.StatusPending
		org.OwnerID = submittedBy
	} else {
		org.Status = models.StatusActive
	}

	code, err := d.Registry.Assign(ctx, cpid.KindOrganisation, org.ID)
	if err != nil {
		return nil, fmt.Errorf("assign cpid: %w", err)
	}
	org.CPID = code

	if _, err := d.Bun.NewInsert().Model(&org).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert organisation: %w", err)
	}
	return &org, nil
}

// ListPublicOrganisations returns active organisations ordered by name.
func (d *DB) ListPublicOrganisations(ctx context.Context) ([]models.Organisation, error) {
	orgs := []models.Organisation{}
	err := d.Bun.NewSelect().
		Model(&orgs).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Scan(ctx)
	return orgs, err
}

// GetOrganisationByID returns the organisation regardless of status; the
// detail view must work for pending items viewed by their owner or an
// admin.
func (d *DB) GetOrganisationByID(ctx context.Context, id string) (*models.Organisation, error) {
	var org models.Organisation
	err := d.Bun.NewSelect().
		Model(&org).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (d *DB) SetOrganisationStatus(ctx context.Context, id, status string) (*models.Organisation, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	res, err := d.Bun.NewUpdate().
		Model((*models.Organisation)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return d.GetOrganisationByID(ctx, id)
}

func (d *DB) ListPendingOrganisations(ctx context.Context) ([]models.Organisation, error) {
	orgs := []models.Organisation{}
	err := d.Bun.NewSelect().
		Model(&orgs).
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Scan(ctx)
	return orgs, err
}

// ---------------- BUSINESSES ----------------

func (d *DB) CreateBusiness(ctx context.Context, biz models.Business, submittedBy string) (*models.Business, error) {
	biz.ID = uuid.NewString()
	biz.CreatedAt = time.Now()
	if submittedBy != "" {
		biz.Status = models.StatusPending
		biz.OwnerID = submittedBy
	} else {
		biz.Status = models.StatusActive
	}

	code, err := d.Registry.Assign(ctx, cpid.KindBusiness, biz.ID)
	if err != nil {
		return nil, fmt.Errorf("assign cpid: %w", err)
	}
	biz.CPID = code

	if _, err := d.Bun.NewInsert().Model(&biz).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert business: %w", err)
	}
	return &biz, nil
}

func (d *DB) ListPublicBusinesses(ctx context.Context) ([]models.Business, error) {
	bizzes := []models.Business{}
	err := d.Bun.NewSelect().
		Model(&bizzes).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Scan(ctx)
	return bizzes, err
}

func (d *DB) GetBusinessByID(ctx context.Context, id string) (*models.Business, error) {
	var biz models.Business
	err := d.Bun.NewSelect().
		Model(&biz).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &biz, nil
}

func (d *DB) SetBusinessStatus(ctx context.Context, id, status string) (*models.Business, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	res, err := d.Bun.NewUpdate().
		Model((*models.Business)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return d.GetBusinessByID(ctx, id)
}

func (d *DB) ListPendingBusinesses(ctx context.Context) ([]models.Business, error) {
	bizzes := []models.Business{}
	err := d.Bun.NewSelect().
		Model(&bizzes).
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Scan(ctx)
	return bizzes, err
}

// ---------------- ARTISTS ----------------

func (d *DB) CreateArtist(ctx context.Context, artist models.Artist, submittedBy string) (*models.Artist, error) {
	artist.ID = uuid.NewString()
	artist.CreatedAt = time.Now()
	if submittedBy != "" {
		artist.Status = models.StatusPending
		artist.OwnerID = submittedBy
	} else {
		artist.Status = models.StatusActive
	}

	code, err := d.Registry.Assign(ctx, cpid.KindArtist, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("assign cpid: %w", err)
	}
	artist.CPID = code

	if _, err := d.Bun.NewInsert().Model(&artist).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert artist: %w", err)
	}
	return &artist, nil
}

func (d *DB) ListPublicArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	err := d.Bun.NewSelect().
		Model(&artists).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Scan(ctx)
	return artists, err
}

func (d *DB) GetArtistByID(ctx context.Context, id string) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artist, nil
}

func (d *DB) SetArtistStatus(ctx context.Context, id, status string) (*models.Artist, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	res, err := d.Bun.NewUpdate().
		Model((*models.Artist)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return d.GetArtistByID(ctx, id)
}

func (d *DB) ListPendingArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	err := d.Bun.NewSelect().
		Model(&artists).
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Scan(ctx)
	return artists, err
}

// ---------------- KIND DISPATCH ----------------

// SetModeratedStatus routes an admin approve/reject to the right table.
// The returned value is the updated entity.
func (d *DB) SetModeratedStatus(ctx context.Context, kind, id, status string) (interface{}, error) {
	switch kind {
	case "organisation":
		return d.SetOrganisationStatus(ctx, id, status)
	case "business":
		return d.SetBusinessStatus(ctx, id, status)
	case "artist":
		return d.SetArtistStatus(ctx, id, status)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

// PendingSubmissions bundles everything awaiting moderation, most recent
// first within each kind.
type PendingSubmissions struct {
	Organisations []models.Organisation `json:"organisations"`
	Businesses    []models.Business     `json:"businesses"`
	Artists       []models.Artist       `json:"artists"`
}

func (d *DB) ListAllPending(ctx context.Context) (*PendingSubmissions, error) {
	orgs, err := d.ListPendingOrganisations(ctx)
	if err != nil {
		return nil, err
	}
	bizzes, err := d.ListPendingBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	artists, err := d.ListPendingArtists(ctx)
	if err != nil {
		return nil, err
	}
	return &PendingSubmissions{
		Organisations: orgs,
		Businesses:    bizzes,
		Artists:       artists,
	}, nil
}
