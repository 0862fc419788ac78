// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until ctx is done or a
	// one-shot pass has finished.
	Run(ctx context.Context) error

	// Close releases storages and connections.
	Close() error
}

var _ Client = (*App)(nil)
