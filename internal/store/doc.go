// Package store provides persistent storage for lorekeep entities using bun.
//
// # Architecture
//
// A single generic engine, Store[E, C, U], implements the CRUD operations
// shared by every entity: Get, List, Create, Update (partial), and Remove.
// Entity stores embed it and add their own rules:
//
//   - UserStore: lookup by email, password hashing on create/update
//   - ProjectStore: listing scoped to an owner
//   - KnowledgeBaseStore: listing scoped to an owner
//
// Every operation takes a bun.IDB as its session: callers pass either a
// *bun.DB or a bun.Tx, and the store runs entirely within it. The store
// assumes one logical writer per session value and holds no locks of its
// own.
//
// # Data Models
//
// All entities embed Base (autoincrement integer ID plus created_at and
// updated_at audit columns, stamped in UTC by the store):
//
//   - User: unique email, bcrypt password hash, active/superuser flags
//   - Project: name, owner reference, opaque JSON workflow definition
//   - KnowledgeBase: name, owner reference, status, vector store path
//
// Ownership runs many-to-one from Project/KnowledgeBase to User. Both sides
// of each relationship are declared in models.go and registered once via
// RegisterModels; nothing mutates an entity type after definition.
//
// # Partial Updates
//
// Update payloads use pointer fields so that "field omitted" (nil) and
// "field set to the zero value" stay distinct. Only non-nil payload fields
// overwrite the loaded record.
//
// # Error Handling
//
// Lookup misses are not errors: Get, GetByEmail, and Remove return
// (nil, nil) when no row matches. Constraint violations and connectivity
// failures propagate from the driver wrapped with context; the store never
// retries or suppresses them.
package store
