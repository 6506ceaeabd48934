// ABOUTME: Tests for the user store
// ABOUTME: Covers email lookup, password hashing on create/update, and forced flags

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep/internal/auth"
)

func TestUserCreate_HashesPasswordAndForcesFlags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	created, err := users.Create(ctx, db, UserCreate{
		Email:    "ada@example.com",
		Password: "difference-engine",
		FullName: strPtr("Ada Lovelace"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "ada@example.com", created.Email)
	assert.NotEqual(t, "difference-engine", created.HashedPassword)
	assert.True(t, auth.CheckPassword("difference-engine", created.HashedPassword))
	assert.True(t, created.IsActive)
	assert.False(t, created.IsSuperuser)
	require.NotNil(t, created.FullName)
	assert.Equal(t, "Ada Lovelace", *created.FullName)
}

func TestUserCreate_DuplicateEmailFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	_, err := users.Create(ctx, db, UserCreate{Email: "dup@example.com", Password: "pw-one-two"})
	require.NoError(t, err)

	_, err = users.Create(ctx, db, UserCreate{Email: "dup@example.com", Password: "pw-three-four"})
	assert.Error(t, err, "unique email constraint should propagate")
}

func TestGetByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	created, err := users.Create(ctx, db, UserCreate{Email: "grace@example.com", Password: "cobol-forever"})
	require.NoError(t, err)

	got, err := users.GetByEmail(ctx, db, "grace@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	// Exact match only
	missing, err := users.GetByEmail(ctx, db, "GRACE@example.com ")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetByEmail_Missing(t *testing.T) {
	db := newTestDB(t)

	got, err := NewUserStore().GetByEmail(context.Background(), db, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserUpdate_RehashesPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	created, err := users.Create(ctx, db, UserCreate{Email: "alan@example.com", Password: "enigma-machine"})
	require.NoError(t, err)

	updated, err := users.Update(ctx, db, created, UserUpdate{
		Password: strPtr("bombe-machine"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.NotEqual(t, "bombe-machine", updated.HashedPassword)
	assert.True(t, auth.CheckPassword("bombe-machine", updated.HashedPassword))
	assert.False(t, auth.CheckPassword("enigma-machine", updated.HashedPassword))
}

func TestUserUpdate_WithoutPasswordKeepsHash(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	created, err := users.Create(ctx, db, UserCreate{Email: "joan@example.com", Password: "hut-eight"})
	require.NoError(t, err)

	updated, err := users.Update(ctx, db, created, UserUpdate{
		FullName: strPtr("Joan Clarke"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, auth.CheckPassword("hut-eight", updated.HashedPassword))
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Joan Clarke", *updated.FullName)
}

func TestUserUpdate_Flags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserStore()
	created, err := users.Create(ctx, db, UserCreate{Email: "root@example.com", Password: "supervisor"})
	require.NoError(t, err)

	active := false
	super := true
	updated, err := users.Update(ctx, db, created, UserUpdate{
		IsActive:    &active,
		IsSuperuser: &super,
	})
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.True(t, updated.IsSuperuser)
}
