// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package lifecycle defines the soft-delete status shared by every aggregate.
package lifecycle

// Status is the persisted lifecycle state of an entity.
type Status string

const (
	// Active entities appear in listings and lookups.
	Active Status = "active"
	// Deleted entities are hidden from listings but never physically removed.
	Deleted Status = "deleted"
)

// IsDeleted reports whether the entity was soft-deleted.
func (s Status) IsDeleted() bool { return s == Deleted }
