// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledger persists sync watermarks.
//
// A watermark is stored per scope key ("members" or "members:group-7") and
// only ever moves forward. The ledger survives process restarts; a missing
// key reads as 0 so a first pass downloads everything.
package ledger

import (
	"context"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MKhiriev/go-chama-sync/models"
)

//go:generate mockgen -source=ledger.go -destination=../mock/ledger_mock.go -package=mock

const (
	ledgerDirPerm     = fs.FileMode(0o700)
	ledgerFilePerm    = fs.FileMode(0o600)
	ledgerOpenTimeout = 5 * time.Second
)

var watermarksBucket = []byte("watermarks")

// Ledger reads and advances sync watermarks.
type Ledger interface {
	// Watermark returns the watermark of scopeKey, or 0 if none was recorded.
	Watermark(ctx context.Context, scopeKey string) (int64, error)
	// Advance moves the watermark of scopeKey to ts. A ts at or below the
	// stored value is ignored.
	Advance(ctx context.Context, scopeKey string, ts int64) error
	// All returns every recorded watermark ordered by scope key.
	All(ctx context.Context) ([]models.SyncWatermark, error)
}

// BoltLedger is a [Ledger] backed by a bbolt file.
type BoltLedger struct {
	db *bolt.DB
}

// Open opens the ledger at path, creating the file and its directory if
// needed.
func Open(path string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), ledgerDirPerm); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := bolt.Open(path, ledgerFilePerm, &bolt.Options{Timeout: ledgerOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(watermarksBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger db: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error {
	return l.db.Close()
}

func (l *BoltLedger) Watermark(ctx context.Context, scopeKey string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var ts int64
	err := l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(watermarksBucket).Get([]byte(scopeKey))
		if v == nil {
			return nil
		}

		decoded, err := decode(v)
		if err != nil {
			return fmt.Errorf("watermark %q: %w", scopeKey, err)
		}
		ts = decoded

		return nil
	})

	return ts, err
}

func (l *BoltLedger) Advance(ctx context.Context, scopeKey string, ts int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(watermarksBucket)
		key := []byte(scopeKey)

		if v := b.Get(key); v != nil {
			current, err := decode(v)
			if err != nil {
				return fmt.Errorf("watermark %q: %w", scopeKey, err)
			}
			if ts <= current {
				return nil
			}
		}

		return b.Put(key, encode(ts))
	})
}

func (l *BoltLedger) All(ctx context.Context) ([]models.SyncWatermark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []models.SyncWatermark
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(watermarksBucket).ForEach(func(k, v []byte) error {
			ts, err := decode(v)
			if err != nil {
				return fmt.Errorf("watermark %q: %w", k, err)
			}
			out = append(out, models.SyncWatermark{ScopeKey: string(k), LastSyncedAt: ts})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func encode(ts int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(ts))
	return buf
}

func decode(v []byte) (int64, error) {
	if len(v) != 8 {
		return 0, ErrCorruptWatermark
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}
