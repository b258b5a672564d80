package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"culturepass/internal/cpid"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

func setupTestStore(t *testing.T) *store.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	err = bunDB.ResetModel(context.Background(),
		(*models.User)(nil),
		(*models.Event)(nil),
		(*models.Organisation)(nil),
		(*models.Business)(nil),
		(*models.Artist)(nil),
		(*models.Perk)(nil),
		(*models.CPIDEntry)(nil),
		(*models.Session)(nil),
	)
	if err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	return store.New(bunDB, cpid.NewRegistry(bunDB))
}
