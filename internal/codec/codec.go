// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec describes every syncable collection: how an entity maps to
// the wire [models.Document], which group it belongs to and which other
// entities it references.
//
// A [Codec] is a plain value; the table of codecs in registry.go together with
// [SyncOrder] is what the sync engine iterates over.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-chama-sync/models"
)

// Reference is a foreign key held by an entity.
type Reference struct {
	// Column is the local column holding the key.
	Column string
	// Collection is the referenced collection.
	Collection string
	// ID is the referenced entity id. Empty for an unset optional key.
	ID string
}

// Descriptor is the type-erased view of a [Codec] used where collections of
// different entity types are handled together.
type Descriptor interface {
	CollectionName() string
	DependsOn() []string
	IsScoped() bool
	SupportsSoftDelete() bool
}

// Codec converts between the local entity T and its wire document.
type Codec[T models.Entity] struct {
	// Collection is the collection (and local table) name.
	Collection string

	// Scoped marks collections that can be synced per group.
	Scoped bool

	// SoftDelete marks collections whose rows can be soft-deleted.
	SoftDelete bool

	// Dependencies lists the collections T may reference.
	Dependencies []string

	// GroupOf returns the group the entity belongs to. Nil for collections
	// that are not group-scoped.
	GroupOf func(T) string

	// Refs returns every foreign key of the entity, including unset
	// optional ones. Nil for collections without foreign keys.
	Refs func(T) []Reference
}

func (c Codec[T]) CollectionName() string   { return c.Collection }
func (c Codec[T]) DependsOn() []string      { return c.Dependencies }
func (c Codec[T]) IsScoped() bool           { return c.Scoped }
func (c Codec[T]) SupportsSoftDelete() bool { return c.SoftDelete }

// Group returns the group id of v, or "" when the collection is global.
func (c Codec[T]) Group(v T) string {
	if c.GroupOf == nil {
		return ""
	}
	return c.GroupOf(v)
}

// References returns every foreign key column of v.
func (c Codec[T]) References(v T) []Reference {
	if c.Refs == nil {
		return nil
	}
	return c.Refs(v)
}

// SetReferences returns only the foreign keys of v that are set.
func (c Codec[T]) SetReferences(v T) []Reference {
	all := c.References(v)
	set := make([]Reference, 0, len(all))
	for _, ref := range all {
		if ref.ID != "" {
			set = append(set, ref)
		}
	}
	return set
}

// Encode builds the wire document of v. IsSynced is never part of the body.
func (c Codec[T]) Encode(v T) (models.Document, error) {
	meta := v.Meta()
	if meta.ID == "" {
		return models.Document{}, fmt.Errorf("%s: %w", c.Collection, ErrMissingID)
	}

	body, err := json.Marshal(v)
	if err != nil {
		return models.Document{}, fmt.Errorf("%s %s: encode body: %w", c.Collection, meta.ID, err)
	}

	return models.Document{
		ID:          meta.ID,
		GroupID:     c.Group(v),
		LastUpdated: meta.LastUpdated,
		Body:        body,
	}, nil
}

// Decode rebuilds an entity from its wire document. The envelope id and
// lastUpdated override whatever the body carries; a body whose own id
// disagrees with the envelope is rejected.
func (c Codec[T]) Decode(d models.Document) (T, error) {
	var v T

	if d.ID == "" {
		return v, fmt.Errorf("%s: %w", c.Collection, ErrMissingID)
	}
	if len(d.Body) == 0 {
		return v, fmt.Errorf("%s %s: %w", c.Collection, d.ID, ErrEmptyBody)
	}
	if err := json.Unmarshal(d.Body, &v); err != nil {
		return v, fmt.Errorf("%s %s: %w: %w", c.Collection, d.ID, ErrMalformedDocument, err)
	}

	meta := v.Meta()
	if meta.ID != "" && meta.ID != d.ID {
		return v, fmt.Errorf("%s %s: body id %q: %w", c.Collection, d.ID, meta.ID, ErrIDMismatch)
	}

	meta.ID = d.ID
	meta.LastUpdated = d.LastUpdated
	meta.IsSynced = false

	return models.WithMeta(v, meta), nil
}
