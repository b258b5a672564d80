package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"culturepass/internal/models"
	"culturepass/internal/store"
)

func TestCreateUser(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, models.User{Username: "maeve", Name: "Maeve"})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStandard, user.Role)
	assert.Contains(t, user.CPID, "CP-U-")
	assert.NotNil(t, user.SavedEventIDs)

	got, err := db.GetUserByUsername(ctx, "maeve")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	_, err := db.CreateUser(ctx, models.User{Username: "maeve", Name: "Maeve"})
	assert.NoError(t, err)

	_, err = db.CreateUser(ctx, models.User{Username: "maeve", Name: "Other Maeve"})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestGetUserByGoogleID(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	_, err := db.CreateUser(ctx, models.User{Username: "google:abc", Name: "Fed User", GoogleID: "abc"})
	assert.NoError(t, err)

	user, err := db.GetUserByGoogleID(ctx, "abc")
	assert.NoError(t, err)
	assert.Equal(t, "Fed User", user.Name)

	_, err = db.GetUserByGoogleID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleSavedEvent(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, models.User{Username: "saver", Name: "Saver"})
	assert.NoError(t, err)

	updated, err := db.ToggleSavedEvent(ctx, user.ID, "event-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"event-1"}, updated.SavedEventIDs)

	updated, err = db.ToggleSavedEvent(ctx, user.ID, "event-2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"event-1", "event-2"}, updated.SavedEventIDs)

	// Toggling again removes.
	updated, err = db.ToggleSavedEvent(ctx, user.ID, "event-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"event-2"}, updated.SavedEventIDs)
}

func TestSetUserRole(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, models.User{Username: "mod", Name: "Mod"})
	assert.NoError(t, err)

	promoted, err := db.SetUserRole(ctx, user.ID, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	_, err = db.SetUserRole(ctx, user.ID, "superuser")
	assert.ErrorIs(t, err, store.ErrInvalidStatus)

	_, err = db.SetUserRole(ctx, "missing", models.RoleAdmin)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
