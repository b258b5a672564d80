package store

import (
	"context"
	"database/sql"
	"errors"

	"culturepass/internal/models"
)

func (d *DB) InsertSession(ctx context.Context, session models.Session) error {
	_, err := d.Bun.NewInsert().Model(&session).Exec(ctx)
	return err
}

func (d *DB) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := d.Bun.NewSelect().
		Model(&session).
		Where("token = ?", token).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (d *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	return err
}
