// Command migrate applies the SQL schema and optionally seeds sample
// data for local development.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"culturepass/internal/config"
	"culturepass/internal/cpid"
	"culturepass/internal/database/migrations"
	"culturepass/internal/models"
	"culturepass/internal/store"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample data after migrating")
	down := flag.Bool("down", false, "roll back all migrations instead")
	dir := flag.String("dir", "./migrations", "migrations directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}
	cfg := config.Load()

	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN))
	sqldb := sql.OpenDB(connector)
	defer sqldb.Close()

	ctx := context.Background()
	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	runner := migrations.NewRunner(bunDB, migrations.Options{MigrationsDir: *dir})
	if *down {
		if err := runner.Down(); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Println("rollback complete")
		return
	}

	if err := runner.Up(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("schema up to date")

	if *seed {
		if err := seedData(ctx, bunDB); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Println("sample data seeded")
	}
}

func seedData(ctx context.Context, bunDB *bun.DB) error {
	registry := cpid.NewRegistry(bunDB)
	db := store.New(bunDB, registry)

	org, err := db.CreateOrganisation(ctx, models.Organisation{
		Name:        "Riverside Arts Collective",
		Description: "Community arts organisation running year-round programming.",
		City:        "Rotterdam",
	}, "")
	if err != nil {
		return err
	}

	if _, err := db.CreateEvent(ctx, models.Event{
		Title:            "Summer Heritage Walk",
		Description:      "Guided walk through the old harbour district.",
		Category:         "heritage",
		City:             "Rotterdam",
		Venue:            "Old Harbour",
		StartTime:        time.Now().AddDate(0, 1, 0),
		EndTime:          time.Now().AddDate(0, 1, 0).Add(3 * time.Hour),
		Price:            12.50,
		TicketsAvailable: 40,
		OrganisationID:   org.ID,
		Featured:         true,
		Published:        true,
	}); err != nil {
		return err
	}

	biz, err := db.CreateBusiness(ctx, models.Business{
		Name:        "Canal Cafe",
		Description: "Coffee and cake next to the gallery quarter.",
		City:        "Rotterdam",
	}, "")
	if err != nil {
		return err
	}

	if _, err := db.CreatePerk(ctx, models.Perk{
		Title:      "10% off for members",
		Discount:   "10%",
		BusinessID: biz.ID,
	}); err != nil {
		return err
	}

	_, err = db.CreateArtist(ctx, models.Artist{
		Name:       "Mara Olde",
		Bio:        "Printmaker and muralist.",
		Discipline: "visual-arts",
		City:       "Rotterdam",
	}, "")
	return err
}
