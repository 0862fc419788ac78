// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators rejects malformed wire documents and queries before
// they reach storage. [DocumentValidator] covers the document server's
// upload and updated_after query paths.
package validators

import "context"

// Validator checks v, optionally only the named fields.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
