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

// CreateUser inserts a new account. The password is expected to arrive
// already hashed. Fails with ErrUsernameTaken on a duplicate username.
func (d *DB) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	exists, err := d.Bun.NewSelect().
		Model((*models.User)(nil)).
		Where("username = ?", user.Username).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	user.ID = uuid.NewString()
	if user.Role == "" {
		user.Role = models.RoleStandard
	}
	if user.SavedEventIDs == nil {
		user.SavedEventIDs = []string{}
	}
	user.CreatedAt = time.Now()

	code, err := d.Registry.Assign(ctx, cpid.KindUser, user.ID)
	if err != nil {
		return nil, fmt.Errorf("assign cpid: %w", err)
	}
	user.CPID = code

	if _, err := d.Bun.NewInsert().Model(&user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (d *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return d.getUser(ctx, "id = ?", id)
}

func (d *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.getUser(ctx, "username = ?", username)
}

func (d *DB) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return d.getUser(ctx, "google_id = ?", googleID)
}

func (d *DB) getUser(ctx context.Context, where string, arg string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ToggleSavedEvent adds the event to the user's saved list, or removes it
// if already present, and returns the updated account.
func (d *DB) ToggleSavedEvent(ctx context.Context, userID, eventID string) (*models.User, error) {
	user, err := d.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved := user.SavedEventIDs[:0:0]
	found := false
	for _, id := range user.SavedEventIDs {
		if id == eventID {
			found = true
			continue
		}
		saved = append(saved, id)
	}
	if !found {
		saved = append(saved, eventID)
	}
	if saved == nil {
		saved = []string{}
	}
	user.SavedEventIDs = saved

	_, err = d.Bun.NewUpdate().
		Model(user).
		Column("saved_event_ids").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update saved events: %w", err)
	}
	return user, nil
}

// SetUserRole promotes or demotes an account.
func (d *DB) SetUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role != models.RoleStandard && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, role)
	}
	res, err := d.Bun.NewUpdate().
		Model((*models.User)(nil)).
		Set("role = ?", role).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return d.GetUserByID(ctx, userID)
}
