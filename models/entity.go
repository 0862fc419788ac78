// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the chama bookkeeping entities, the wire document
// envelope exchanged with the remote store and the value types shared by the
// synchronization engine.
package models

import "time"

// SyncMeta is the synchronization bookkeeping embedded in every syncable
// entity.
//
// LastUpdated and DeletedAt are unix milliseconds. IsSynced is local-only and
// is never serialized to the wire.
type SyncMeta struct {
	// ID is the globally unique identifier of the entity.
	ID string `json:"id"`

	// LastUpdated is bumped by the local writer on every mutation.
	LastUpdated int64 `json:"lastUpdated"`

	// IsSynced reports whether the current local state has been written to
	// the remote store at or after LastUpdated.
	IsSynced bool `json:"-"`

	// IsDeleted marks a soft-deleted row. The deletion itself is synced.
	IsDeleted bool `json:"isDeleted,omitempty"`

	// DeletedAt is set together with IsDeleted.
	DeletedAt *int64 `json:"deletedAt,omitempty"`
}

// Meta returns a copy of the bookkeeping block.
func (m SyncMeta) Meta() SyncMeta {
	return m
}

// SetMeta replaces the bookkeeping block.
func (m *SyncMeta) SetMeta(v SyncMeta) {
	*m = v
}

// Touch records a local mutation: LastUpdated moves to at and the row becomes
// unsynced.
func (m *SyncMeta) Touch(at time.Time) {
	m.LastUpdated = at.UnixMilli()
	m.IsSynced = false
}

// MarkDeleted soft-deletes the row at the given instant.
func (m *SyncMeta) MarkDeleted(at time.Time) {
	ts := at.UnixMilli()
	m.IsDeleted = true
	m.DeletedAt = &ts
	m.LastUpdated = ts
	m.IsSynced = false
}

// Entity is implemented by every syncable entity through the embedded
// [SyncMeta].
type Entity interface {
	Meta() SyncMeta
}

// WithMeta returns a copy of v carrying m. Entities that do not embed
// [SyncMeta] are returned unchanged.
func WithMeta[T Entity](v T, m SyncMeta) T {
	if s, ok := any(&v).(interface{ SetMeta(SyncMeta) }); ok {
		s.SetMeta(m)
	}
	return v
}
