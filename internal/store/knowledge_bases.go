// ABOUTME: Knowledge base store with ownership-scoped listing
// ABOUTME: New knowledge bases start in the pending status

package store

import (
	"context"

	"github.com/uptrace/bun"
)

// KnowledgeBaseCreate is the creation payload for knowledge bases. The
// vector store path is required; status always starts as pending.
type KnowledgeBaseCreate struct {
	Name            string
	Description     *string
	OwnerID         int64
	VectorStorePath string
}

func (p KnowledgeBaseCreate) Apply(rec *KnowledgeBase) {
	rec.Name = p.Name
	rec.Description = p.Description
	rec.OwnerID = p.OwnerID
	rec.Status = KnowledgeBaseStatusPending
	rec.VectorStorePath = p.VectorStorePath
}

// KnowledgeBaseUpdate is the partial-update payload for knowledge bases.
// Nil fields are left untouched.
type KnowledgeBaseUpdate struct {
	Name            *string
	Description     *string
	Status          *KnowledgeBaseStatus
	VectorStorePath *string
}

func (p KnowledgeBaseUpdate) Apply(rec *KnowledgeBase) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Description != nil {
		rec.Description = p.Description
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.VectorStorePath != nil {
		rec.VectorStorePath = *p.VectorStorePath
	}
}

// KnowledgeBaseStore persists knowledge bases.
type KnowledgeBaseStore struct {
	*Store[KnowledgeBase, KnowledgeBaseCreate, KnowledgeBaseUpdate]
}

// NewKnowledgeBaseStore creates the knowledge base store.
func NewKnowledgeBaseStore() *KnowledgeBaseStore {
	return &KnowledgeBaseStore{Store: NewStore[KnowledgeBase, KnowledgeBaseCreate, KnowledgeBaseUpdate]()}
}

// ListByOwner returns up to limit knowledge bases owned by ownerID,
// skipping the first skip. Same pagination contract as List.
func (s *KnowledgeBaseStore) ListByOwner(ctx context.Context, db bun.IDB, ownerID int64, skip, limit int) ([]KnowledgeBase, error) {
	return s.listWhere(ctx, db, "owner_id = ?", ownerID, skip, limit)
}
