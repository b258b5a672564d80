// Package cpid assigns the public identifier codes ("CPIDs") carried by
// every created entity and resolves them back to (kind, id).
package cpid

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"culturepass/internal/models"
)

// Kind identifies the entity type a code belongs to.
type Kind string

const (
	KindUser         Kind = "user"
	KindEvent        Kind = "event"
	KindOrganisation Kind = "organisation"
	KindBusiness     Kind = "business"
	KindArtist       Kind = "artist"
)

// 32 symbols, no 0/O or 1/I. Length is a power of two so byte modulo
// stays unbiased.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 6

// assignAttempts bounds code regeneration on collision before giving up.
const assignAttempts = 3

var prefixes = map[Kind]string{
	KindUser:         "CP-U-",
	KindEvent:        "CP-E-",
	KindOrganisation: "CP-ORG-",
	KindBusiness:     "CP-B-",
	KindArtist:       "CP-AR-",
}

var (
	ErrDuplicateCode = errors.New("cpid: code already assigned")
	ErrNotFound      = errors.New("cpid: code not found")
	ErrUnknownKind   = errors.New("cpid: unknown entity kind")
)

type Registry struct {
	Bun *bun.DB
}

func NewRegistry(db *bun.DB) *Registry {
	return &Registry{Bun: db}
}

// Assign generates a fresh code for the entity and records it for reverse
// lookup. Codes are never recycled or reassigned; a collision triggers a
// bounded regenerate-and-retry before surfacing ErrDuplicateCode.
func (r *Registry) Assign(ctx context.Context, kind Kind, entityID string) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	for attempt := 0; attempt < assignAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		code := prefix + suffix

		entry := models.CPIDEntry{
			Code:       code,
			EntityKind: string(kind),
			EntityID:   entityID,
			CreatedAt:  time.Now(),
		}

		res, err := r.Bun.NewInsert().Model(&entry).Ignore().Exec(ctx)
		if err != nil {
			return "", fmt.Errorf("insert cpid entry: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return "", err
		}
		if rows == 0 {
			// Collision with an existing code.
			continue
		}
		return code, nil
	}

	return "", ErrDuplicateCode
}

// Lookup resolves a code to the entity it was assigned to. Pure read.
func (r *Registry) Lookup(ctx context.Context, code string) (Kind, string, error) {
	var entry models.CPIDEntry
	err := r.Bun.NewSelect().
		Model(&entry).
		Where("code = ?", code).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("lookup cpid: %w", err)
	}
	return Kind(entry.EntityKind), entry.EntityID, nil
}

func randomSuffix() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
