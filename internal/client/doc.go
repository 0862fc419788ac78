// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires the local datastore, the watermark ledger, the remote document
// store and the sync engine into a single process lifecycle, either as a
// long-running daemon or as a one-shot pass.
package client
