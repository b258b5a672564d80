package cpid_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"culturepass/internal/cpid"
	"culturepass/internal/models"
)

func setupTestRegistry(t *testing.T) *cpid.Registry {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if err := bunDB.ResetModel(context.Background(), (*models.CPIDEntry)(nil)); err != nil {
		t.Fatalf("Failed to create registry table: %v", err)
	}

	return cpid.NewRegistry(bunDB)
}

func TestAssignAndLookup(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	code, err := registry.Assign(ctx, cpid.KindUser, "user-1")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "CP-U-"))
	assert.Len(t, code, len("CP-U-")+6)

	kind, entityID, err := registry.Lookup(ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, cpid.KindUser, kind)
	assert.Equal(t, "user-1", entityID)

	// Lookup keeps resolving to the same entity.
	kind, entityID, err = registry.Lookup(ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, cpid.KindUser, kind)
	assert.Equal(t, "user-1", entityID)
}

func TestAssignPrefixes(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	cases := []struct {
		kind   cpid.Kind
		prefix string
	}{
		{cpid.KindUser, "CP-U-"},
		{cpid.KindEvent, "CP-E-"},
		{cpid.KindOrganisation, "CP-ORG-"},
		{cpid.KindBusiness, "CP-B-"},
		{cpid.KindArtist, "CP-AR-"},
	}
	for _, tc := range cases {
		code, err := registry.Assign(ctx, tc.kind, "entity-x")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, tc.prefix), "kind %s got %s", tc.kind, code)
	}
}

func TestAssignUnknownKind(t *testing.T) {
	registry := setupTestRegistry(t)

	_, err := registry.Assign(context.Background(), cpid.Kind("perk"), "perk-1")
	assert.ErrorIs(t, err, cpid.ErrUnknownKind)
}

func TestLookupNeverAssigned(t *testing.T) {
	registry := setupTestRegistry(t)

	_, _, err := registry.Lookup(context.Background(), "CP-U-ZZZZZZ")
	assert.ErrorIs(t, err, cpid.ErrNotFound)
}

func TestAssignedCodesAreUnique(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := registry.Assign(ctx, cpid.KindEvent, "event-x")
		assert.NoError(t, err)
		assert.False(t, seen[code], "code %s assigned twice", code)
		seen[code] = true
	}
}

func TestCodeSuffixAvoidsAmbiguousGlyphs(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		code, err := registry.Assign(ctx, cpid.KindBusiness, "biz-x")
		assert.NoError(t, err)
		suffix := strings.TrimPrefix(code, "CP-B-")
		assert.NotContains(t, suffix, "0")
		assert.NotContains(t, suffix, "O")
		assert.NotContains(t, suffix, "1")
		assert.NotContains(t, suffix, "I")
	}
}
