// ABOUTME: Entity definitions for users, projects, and knowledge bases
// ABOUTME: Declares both sides of every ownership relationship in one place

package store

import (
	"time"

	"github.com/uptrace/bun"
)

// Base holds the identity and audit columns shared by every entity.
// IDs are assigned by the database and never reused; timestamps are
// stamped by the store in UTC.
type Base struct {
	ID        int64     `bun:"id,pk,autoincrement"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (b *Base) base() *Base { return b }

// Record is satisfied by any entity that embeds Base.
type Record interface {
	base() *Base
}

// User is an account that owns projects and knowledge bases.
type User struct {
	bun.BaseModel `bun:"table:users"`
	Base

	Email          string  `bun:"email,notnull,unique"`
	HashedPassword string  `bun:"hashed_password,notnull"`
	FullName       *string `bun:"full_name"`
	IsActive       bool    `bun:"is_active,notnull,default:true"`
	IsSuperuser    bool    `bun:"is_superuser,notnull,default:false"`

	Projects       []*Project       `bun:"rel:has-many,join:id=owner_id"`
	KnowledgeBases []*KnowledgeBase `bun:"rel:has-many,join:id=owner_id"`
}

// Project groups a workflow definition under an owning user. The workflow
// definition is an opaque structured document; the store enforces nothing
// about it beyond JSON validity.
type Project struct {
	bun.BaseModel `bun:"table:projects"`
	Base

	Name               string         `bun:"name,notnull"`
	Description        *string        `bun:"description"`
	OwnerID            int64          `bun:"owner_id,notnull"`
	WorkflowDefinition map[string]any `bun:"workflow_definition,notnull"`

	Owner *User `bun:"rel:belongs-to,join:owner_id=id"`
}

// KnowledgeBaseStatus tracks ingestion progress of a knowledge base.
type KnowledgeBaseStatus string

const (
	KnowledgeBaseStatusPending    KnowledgeBaseStatus = "pending"
	KnowledgeBaseStatusProcessing KnowledgeBaseStatus = "processing"
	KnowledgeBaseStatusReady      KnowledgeBaseStatus = "ready"
	KnowledgeBaseStatusFailed     KnowledgeBaseStatus = "failed"
)

// KnowledgeBase is an ingested document collection backed by a vector store.
type KnowledgeBase struct {
	bun.BaseModel `bun:"table:knowledge_bases"`
	Base

	Name            string              `bun:"name,notnull"`
	Description     *string             `bun:"description"`
	OwnerID         int64               `bun:"owner_id,notnull"`
	Status          KnowledgeBaseStatus `bun:"status,notnull,default:'pending'"`
	VectorStorePath string              `bun:"vector_store_path,notnull"`

	Owner *User `bun:"rel:belongs-to,join:owner_id=id"`
}

// RegisterModels registers every entity with bun so relationship metadata is
// resolvable. Call once at startup, before running queries.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*User)(nil), (*Project)(nil), (*KnowledgeBase)(nil))
}
