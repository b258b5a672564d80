package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"culturepass/internal/models"
	"culturepass/internal/store"
)

func TestCreatePerk(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	biz, err := db.CreateBusiness(ctx, models.Business{Name: "Bookshop"}, "")
	assert.NoError(t, err)

	perk, err := db.CreatePerk(ctx, models.Perk{
		Title:      "10% off",
		Discount:   "10%",
		BusinessID: biz.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, perk.Status)

	got, err := db.GetPerkByID(ctx, perk.ID)
	assert.NoError(t, err)
	assert.Equal(t, "10% off", got.Title)
}

func TestCreatePerkUnknownBusiness(t *testing.T) {
	db := setupTestStore(t)

	_, err := db.CreatePerk(context.Background(), models.Perk{
		Title:      "Orphan perk",
		BusinessID: "missing",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPublicPerksStatusGated(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	biz, err := db.CreateBusiness(ctx, models.Business{Name: "Cafe"}, "")
	assert.NoError(t, err)

	_, err = db.CreatePerk(ctx, models.Perk{Title: "Live perk", BusinessID: biz.ID})
	assert.NoError(t, err)
	_, err = db.CreatePerk(ctx, models.Perk{Title: "Paused perk", BusinessID: biz.ID, Status: models.StatusPending})
	assert.NoError(t, err)

	perks, err := db.ListPublicPerks(ctx)
	assert.NoError(t, err)
	assert.Len(t, perks, 1)
	assert.Equal(t, "Live perk", perks[0].Title)
}
