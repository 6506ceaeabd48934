// ABOUTME: Generic CRUD engine shared by all entity stores
// ABOUTME: Parameterized over an entity and its creation/update payload types

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// Payload applies request fields to an entity. Creation payloads set every
// field they carry; update payloads set only fields that are explicitly
// present (non-nil), leaving the rest untouched.
type Payload[E any] interface {
	Apply(*E)
}

// Store implements the CRUD operations shared by every entity type.
// E must embed Base; C and U are the creation and partial-update payloads.
//
// Every method runs against the session it is given. No locking is done
// here: the caller guarantees one logical writer per session value.
type Store[E any, C Payload[E], U Payload[E]] struct {
	logger *slog.Logger
}

// NewStore creates the shared CRUD engine for one entity type. It panics if
// E does not embed Base, which is a programming error caught at wiring time.
func NewStore[E any, C Payload[E], U Payload[E]]() *Store[E, C, U] {
	if _, ok := any(new(E)).(Record); !ok {
		panic(fmt.Sprintf("store: %T does not embed store.Base", new(E)))
	}
	return &Store[E, C, U]{
		logger: slog.Default().With("component", "store"),
	}
}

// Get returns the record with the given ID, or (nil, nil) if none exists.
func (s *Store[E, C, U]) Get(ctx context.Context, db bun.IDB, id int64) (*E, error) {
	rec := new(E)
	err := db.NewSelect().Model(rec).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %T %d: %w", rec, id, err)
	}
	return rec, nil
}

// List returns up to limit records, skipping the first skip. Ordering
// beyond the engine default is not guaranteed.
func (s *Store[E, C, U]) List(ctx context.Context, db bun.IDB, skip, limit int) ([]E, error) {
	var recs []E
	err := db.NewSelect().Model(&recs).Offset(skip).Limit(limit).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %T: %w", recs, err)
	}
	return recs, nil
}

// listWhere is List with one extra filter condition. Entity stores use it
// for ownership-scoped listings.
func (s *Store[E, C, U]) listWhere(ctx context.Context, db bun.IDB, cond string, arg any, skip, limit int) ([]E, error) {
	var recs []E
	err := db.NewSelect().Model(&recs).Where(cond, arg).Offset(skip).Limit(limit).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %T where %s: %w", recs, cond, err)
	}
	return recs, nil
}

// Create builds a record from the creation payload, stamps identity and
// audit timestamps, persists it, and returns the fully materialized row as
// re-read from the database.
func (s *Store[E, C, U]) Create(ctx context.Context, db bun.IDB, payload C) (*E, error) {
	rec := new(E)
	payload.Apply(rec)

	now := time.Now().UTC()
	b := any(rec).(Record).base()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := db.NewInsert().Model(rec).Exec(ctx); err != nil {
		return nil, fmt.Errorf("inserting %T: %w", rec, err)
	}

	s.logger.Debug("created record", "type", fmt.Sprintf("%T", rec), "id", b.ID)

	// Re-select so server-assigned columns round-trip through the engine.
	return s.Get(ctx, db, b.ID)
}

// Update overwrites the fields of existing that are explicitly present in
// the payload, bumps the last-modified timestamp, persists, and returns the
// refreshed record. An all-absent payload is a no-op apart from the bump.
// The caller's record is left untouched; only the returned record carries
// the new state.
func (s *Store[E, C, U]) Update(ctx context.Context, db bun.IDB, existing *E, payload U) (*E, error) {
	rec := new(E)
	*rec = *existing
	payload.Apply(rec)

	b := any(rec).(Record).base()
	b.UpdatedAt = time.Now().UTC()

	if _, err := db.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("updating %T %d: %w", rec, b.ID, err)
	}

	s.logger.Debug("updated record", "type", fmt.Sprintf("%T", rec), "id", b.ID)

	return s.Get(ctx, db, b.ID)
}

// Remove deletes the record with the given ID and returns its pre-deletion
// snapshot, or (nil, nil) if no such record exists. The lookup and delete
// run in one transactional unit on the session.
func (s *Store[E, C, U]) Remove(ctx context.Context, db bun.IDB, id int64) (*E, error) {
	var rec *E
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := s.Get(ctx, tx, id)
		if err != nil || found == nil {
			return err
		}
		if _, err := tx.NewDelete().Model(found).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("deleting %T %d: %w", found, id, err)
		}
		rec = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rec != nil {
		s.logger.Debug("removed record", "type", fmt.Sprintf("%T", rec), "id", id)
	}
	return rec, nil
}
