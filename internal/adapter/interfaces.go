// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote document store boundary consumed by the
// sync engine.
//
// [DocumentStore] is a hierarchical document collection keyed by entity id.
// Three implementations ship with the package: an HTTP/REST client for the
// bundled document server, a Redis store indexed by sorted sets, and an
// S3-compatible object store on MinIO. [NewDocumentStore] selects one from
// configuration.
//
// Transport failures are mapped onto the sentinel errors in errors.go so that
// callers can use [errors.Is] regardless of the backend.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chama-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// DocumentStore is the remote side of a sync pass.
type DocumentStore interface {
	// Set upserts doc into collection keyed by doc.ID. The last writer wins;
	// the store performs no merge.
	Set(ctx context.Context, collection string, doc models.Document) error

	// Query returns the documents of collection with lastUpdated strictly
	// greater than q.UpdatedAfter, restricted to q.GroupID when set, ordered
	// by lastUpdated ascending.
	Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error)

	// Close releases the underlying connections.
	Close() error
}
