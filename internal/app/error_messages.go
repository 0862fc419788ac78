// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// document server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or the document body is not a JSON object.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header is
	// missing or does not match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgUnknownCollection is returned for a collection name outside the
	// synchronized set.
	MsgUnknownCollection = "unknown collection"

	// MsgNoDocumentID is returned when a document arrives without an id.
	MsgNoDocumentID = "no document id provided"

	// MsgDocumentIDMismatch is returned when the id in the path, the
	// envelope and the body disagree.
	MsgDocumentIDMismatch = "document id mismatch"

	// MsgNoLastUpdated is returned when a document has no positive
	// lastUpdated timestamp.
	MsgNoLastUpdated = "document has no lastUpdated"

	// MsgInvalidQuery is returned for a malformed updated_after or group_id.
	MsgInvalidQuery = "invalid query"

	// MsgDocumentNotSaved is returned when the database accepted the write
	// but no row was stored.
	MsgDocumentNotSaved = "document was not saved"
)
