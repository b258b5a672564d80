// Package store is the typed persistence layer: CRUD for the entity
// kinds plus the status lifecycle rules for moderated ones. Access
// control lives in the auth layer, not here.
package store

import (
	"errors"

	"github.com/uptrace/bun"

	"culturepass/internal/cpid"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrInvalidStatus = errors.New("store: invalid status")
	ErrUsernameTaken = errors.New("store: username already taken")
	ErrInvalidKind   = errors.New("store: invalid entity kind")
)

type DB struct {
	Bun      *bun.DB
	Registry *cpid.Registry
}

func New(bunDB *bun.DB, registry *cpid.Registry) *DB {
	return &DB{Bun: bunDB, Registry: registry}
}
