// ABOUTME: Tests for ownership-scoped listing on projects and knowledge bases
// ABOUTME: Verifies filtering with mixed owners and pagination within a scope

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectListByOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")

	projects := NewProjectStore()
	for i := 0; i < 3; i++ {
		_, err := projects.Create(ctx, db, ProjectCreate{Name: "alice-project", OwnerID: alice.ID})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := projects.Create(ctx, db, ProjectCreate{Name: "bob-project", OwnerID: bob.ID})
		require.NoError(t, err)
	}

	aliceProjects, err := projects.ListByOwner(ctx, db, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, aliceProjects, 3)
	for _, p := range aliceProjects {
		assert.Equal(t, alice.ID, p.OwnerID)
	}

	bobProjects, err := projects.ListByOwner(ctx, db, bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, bobProjects, 2)
	for _, p := range bobProjects {
		assert.Equal(t, bob.ID, p.OwnerID)
	}
}

func TestProjectListByOwner_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	projects := NewProjectStore()
	for i := 0; i < 5; i++ {
		_, err := projects.Create(ctx, db, ProjectCreate{Name: "p", OwnerID: owner.ID})
		require.NoError(t, err)
	}
	_, err := projects.Create(ctx, db, ProjectCreate{Name: "q", OwnerID: other.ID})
	require.NoError(t, err)

	page, err := projects.ListByOwner(ctx, db, owner.ID, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestProjectListByOwner_NoMatches(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := newTestUser(t, db, "lonely@example.com")

	got, err := NewProjectStore().ListByOwner(ctx, db, owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnowledgeBaseListByOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")

	kbs := NewKnowledgeBaseStore()
	_, err := kbs.Create(ctx, db, KnowledgeBaseCreate{
		Name:            "papers",
		OwnerID:         alice.ID,
		VectorStorePath: "/var/lib/lorekeep/vectors/papers",
	})
	require.NoError(t, err)
	_, err = kbs.Create(ctx, db, KnowledgeBaseCreate{
		Name:            "notes",
		OwnerID:         bob.ID,
		VectorStorePath: "/var/lib/lorekeep/vectors/notes",
	})
	require.NoError(t, err)

	aliceKBs, err := kbs.ListByOwner(ctx, db, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, aliceKBs, 1)
	assert.Equal(t, "papers", aliceKBs[0].Name)
	assert.Equal(t, KnowledgeBaseStatusPending, aliceKBs[0].Status)
}

func TestKnowledgeBaseStatusTransition(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@example.com")

	kbs := NewKnowledgeBaseStore()
	created, err := kbs.Create(ctx, db, KnowledgeBaseCreate{
		Name:            "corpus",
		OwnerID:         owner.ID,
		VectorStorePath: "/var/lib/lorekeep/vectors/corpus",
	})
	require.NoError(t, err)
	assert.Equal(t, KnowledgeBaseStatusPending, created.Status)

	ready := KnowledgeBaseStatusReady
	updated, err := kbs.Update(ctx, db, created, KnowledgeBaseUpdate{Status: &ready})
	require.NoError(t, err)
	assert.Equal(t, KnowledgeBaseStatusReady, updated.Status)
	assert.Equal(t, "corpus", updated.Name)
	assert.Equal(t, "/var/lib/lorekeep/vectors/corpus", updated.VectorStorePath)
}
