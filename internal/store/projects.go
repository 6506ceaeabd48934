// ABOUTME: Project store with ownership-scoped listing
// ABOUTME: Defaults the workflow definition to an empty document on create

package store

import (
	"context"

	"github.com/uptrace/bun"
)

// ProjectCreate is the creation payload for projects.
type ProjectCreate struct {
	Name               string
	Description        *string
	OwnerID            int64
	WorkflowDefinition map[string]any
}

func (p ProjectCreate) Apply(rec *Project) {
	rec.Name = p.Name
	rec.Description = p.Description
	rec.OwnerID = p.OwnerID
	rec.WorkflowDefinition = p.WorkflowDefinition
	if rec.WorkflowDefinition == nil {
		rec.WorkflowDefinition = map[string]any{}
	}
}

// ProjectUpdate is the partial-update payload for projects. Nil fields are
// left untouched; a nil WorkflowDefinition means "not supplied".
type ProjectUpdate struct {
	Name               *string
	Description        *string
	WorkflowDefinition map[string]any
}

func (p ProjectUpdate) Apply(rec *Project) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Description != nil {
		rec.Description = p.Description
	}
	if p.WorkflowDefinition != nil {
		rec.WorkflowDefinition = p.WorkflowDefinition
	}
}

// ProjectStore persists projects.
type ProjectStore struct {
	*Store[Project, ProjectCreate, ProjectUpdate]
}

// NewProjectStore creates the project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{Store: NewStore[Project, ProjectCreate, ProjectUpdate]()}
}

// ListByOwner returns up to limit projects owned by ownerID, skipping the
// first skip. Same pagination contract as List.
func (s *ProjectStore) ListByOwner(ctx context.Context, db bun.IDB, ownerID int64, skip, limit int) ([]Project, error) {
	return s.listWhere(ctx, db, "owner_id = ?", ownerID, skip, limit)
}
