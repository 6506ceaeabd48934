// ABOUTME: User store with email lookup and password-hashing-aware mutations
// ABOUTME: Guarantees the generic CRUD layer never sees a plaintext password

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/lorekeep/lorekeep/internal/auth"
)

// UserCreate is the creation payload for users. Password is plaintext here
// and hashed by UserStore.Create before anything is persisted.
type UserCreate struct {
	Email    string
	Password string
	FullName *string

	hashedPassword string
}

// Apply sets the user fields from the payload. New users are always active
// and never superusers, regardless of what the caller sent.
func (p UserCreate) Apply(u *User) {
	u.Email = p.Email
	u.HashedPassword = p.hashedPassword
	u.FullName = p.FullName
	u.IsActive = true
	u.IsSuperuser = false
}

// UserUpdate is the partial-update payload for users. Nil fields are left
// untouched. Password, when present, is plaintext and hashed by
// UserStore.Update before delegation.
type UserUpdate struct {
	Email       *string
	Password    *string
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool

	hashedPassword string
}

func (p UserUpdate) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.hashedPassword != "" {
		u.HashedPassword = p.hashedPassword
	}
	if p.FullName != nil {
		u.FullName = p.FullName
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsSuperuser != nil {
		u.IsSuperuser = *p.IsSuperuser
	}
}

// UserStore persists users.
type UserStore struct {
	*Store[User, UserCreate, UserUpdate]
}

// NewUserStore creates the user store.
func NewUserStore() *UserStore {
	return &UserStore{Store: NewStore[User, UserCreate, UserUpdate]()}
}

// GetByEmail returns the user with exactly this email, or (nil, nil) if no
// such user exists.
func (s *UserStore) GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	u := new(User)
	err := db.NewSelect().Model(u).Where("email = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting user by email: %w", err)
	}
	return u, nil
}

// Create hashes the plaintext password and delegates to the generic engine.
func (s *UserStore) Create(ctx context.Context, db bun.IDB, payload UserCreate) (*User, error) {
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}
	payload.Password = ""
	payload.hashedPassword = hash
	return s.Store.Create(ctx, db, payload)
}

// Update hashes a new plaintext password, if one is present, before
// delegating to the generic engine.
func (s *UserStore) Update(ctx context.Context, db bun.IDB, existing *User, payload UserUpdate) (*User, error) {
	if payload.Password != nil {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		payload.Password = nil
		payload.hashedPassword = hash
	}
	return s.Store.Update(ctx, db, existing, payload)
}
