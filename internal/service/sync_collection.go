// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-chama-sync/internal/adapter"
	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/ledger"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/store"
	"github.com/MKhiriev/go-chama-sync/models"
)

// DefaultUploadConcurrency bounds the remote writes in flight per collection.
const DefaultUploadConcurrency = 4

// CollectionSync is the type-erased view of a [CollectionSyncer] consumed by
// the orchestrator.
type CollectionSync interface {
	Collection() string
	Scoped() bool
	Sync(ctx context.Context, scope models.Scope) CollectionOutcome
}

// CollectionSyncer runs the bidirectional sync of one collection: upload of
// unsynced local rows, download of remote rows newer than the scope's
// watermark, last-write-wins application, and watermark advance.
type CollectionSyncer[T models.Entity] struct {
	codec    codec.Codec[T]
	local    store.LocalCollection[T]
	remote   adapter.DocumentStore
	ledger   ledger.Ledger
	verifier *ReferenceVerifier
	retry    RetryPolicy

	concurrency int
	now         func() time.Time

	logger *logger.Logger
}

// SyncerDeps are the collaborators shared by every collection syncer. Remote
// and Ledger are required. A zero Retry means the default policy. Without a
// Verifier downloaded rows are not checked up front and a missing parent
// surfaces as a foreign key failure of the local write instead.
type SyncerDeps struct {
	Remote            adapter.DocumentStore
	Ledger            ledger.Ledger
	Verifier          *ReferenceVerifier
	Retry             RetryPolicy
	UploadConcurrency int
	Now               func() time.Time
	Logger            *logger.Logger
}

func NewCollectionSyncer[T models.Entity](c codec.Codec[T], local store.LocalCollection[T], deps SyncerDeps) *CollectionSyncer[T] {
	concurrency := deps.UploadConcurrency
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	policy := deps.Retry
	if policy.IsZero() {
		policy = NewRetryPolicy(DefaultRetryAttempts, DefaultRetryBaseDelay)
	}

	return &CollectionSyncer[T]{
		codec:       c,
		local:       local,
		remote:      deps.Remote,
		ledger:      deps.Ledger,
		verifier:    deps.Verifier,
		retry:       policy,
		concurrency: concurrency,
		now:         now,
		logger:      log,
	}
}

func (s *CollectionSyncer[T]) Collection() string {
	return s.codec.Collection
}

func (s *CollectionSyncer[T]) Scoped() bool {
	return s.codec.Scoped
}

// Sync runs one pass of the collection under scope. A failure of the whole
// collection is reported in the outcome and leaves the watermark where it
// was; per-row failures are logged and counted only.
func (s *CollectionSyncer[T]) Sync(ctx context.Context, scope models.Scope) (outcome CollectionOutcome) {
	key := models.ScopeKey(s.codec.Collection, scope)
	outcome = CollectionOutcome{Collection: s.codec.Collection, ScopeKey: key}

	ctx, span := syncTracer.Start(ctx, "sync.collection", trace.WithAttributes(
		attribute.String("collection", s.codec.Collection),
		attribute.String("scope", key),
	))
	started := time.Now()
	defer func() {
		outcome.Duration = time.Since(started)
		s.record(span, outcome)
		span.End()
	}()

	watermark, err := s.ledger.Watermark(ctx, key)
	if err != nil {
		outcome.Err = fmt.Errorf("read watermark %s: %w", key, err)
		return outcome
	}
	outcome.PreviousWatermark = watermark
	outcome.Watermark = watermark

	passStart := s.now().UnixMilli()

	if err := s.upload(ctx, scope, &outcome); err != nil {
		outcome.Err = err
		return outcome
	}

	hold, err := s.download(ctx, scope, watermark, &outcome)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	next := passStart
	if hold > 0 && hold-1 < next {
		next = hold - 1
	}
	if next > watermark {
		if err := s.ledger.Advance(ctx, key, next); err != nil {
			outcome.Err = fmt.Errorf("advance watermark %s: %w", key, err)
			return outcome
		}
		outcome.Watermark = next
	}

	return outcome
}

// upload writes every unsynced row to the remote store, at most concurrency
// at a time, then marks the uploaded ones synced. results[i] always belongs
// to rows[i].
func (s *CollectionSyncer[T]) upload(ctx context.Context, scope models.Scope, outcome *CollectionOutcome) error {
	rows, err := s.local.GetUnsynced(ctx, scope.GroupID)
	if err != nil {
		return fmt.Errorf("get unsynced %s: %w", s.codec.Collection, err)
	}
	if len(rows) == 0 {
		return nil
	}

	results := make([]RowResult, len(rows))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, row := range rows {
		meta := row.Meta()
		if err := ctx.Err(); err != nil {
			results[i] = failed(meta.ID, meta.LastUpdated, err)
			continue
		}

		g.Go(func() error {
			results[i] = s.uploadRow(ctx, row)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if res.Kind == RowAccepted {
			res = s.markSynced(ctx, res)
		}
		outcome.countUpload(res)
		syncRows.WithLabelValues(s.codec.Collection, "upload", res.Kind.String()).Inc()
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("upload %s interrupted: %w", s.codec.Collection, err)
	}
	return nil
}

// uploadRow runs on an errgroup goroutine, where a panic cannot be recovered
// by the orchestrator, so it recovers its own.
func (s *CollectionSyncer[T]) uploadRow(ctx context.Context, row T) (res RowResult) {
	meta := row.Meta()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("func", "CollectionSyncer.uploadRow").
				Str("collection", s.codec.Collection).
				Str("id", meta.ID).
				Interface("panic", r).
				Msg("row upload panicked")
			res = failed(meta.ID, meta.LastUpdated, fmt.Errorf("%w: %v", ErrSyncPanicked, r))
		}
	}()

	doc, err := s.codec.Encode(row)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "CollectionSyncer.uploadRow").
			Str("collection", s.codec.Collection).
			Str("id", meta.ID).
			Msg("failed to encode row")
		return failed(meta.ID, meta.LastUpdated, err)
	}

	if err := s.remote.Set(ctx, s.codec.Collection, doc); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "CollectionSyncer.uploadRow").
			Str("collection", s.codec.Collection).
			Str("id", meta.ID).
			Msg("failed to upload row, it stays unsynced")
		return failed(meta.ID, meta.LastUpdated, err)
	}

	return accepted(meta.ID, meta.LastUpdated)
}

func (s *CollectionSyncer[T]) markSynced(ctx context.Context, res RowResult) RowResult {
	err := s.local.MarkSynced(ctx, res.ID, res.LastUpdated)
	switch {
	case err == nil:
		return res
	case errors.Is(err, store.ErrStaleRow):
		s.logger.Info().
			Str("func", "CollectionSyncer.markSynced").
			Str("collection", s.codec.Collection).
			Str("id", res.ID).
			Msg("row changed during upload, it stays unsynced")
	default:
		s.logger.Warn().Err(err).
			Str("func", "CollectionSyncer.markSynced").
			Str("collection", s.codec.Collection).
			Str("id", res.ID).
			Msg("failed to mark row synced")
	}
	return failed(res.ID, res.LastUpdated, err)
}

// download applies remote rows newer than watermark. It returns the smallest
// lastUpdated among rows that must be fetched again, or 0 if there are none.
func (s *CollectionSyncer[T]) download(ctx context.Context, scope models.Scope, watermark int64, outcome *CollectionOutcome) (int64, error) {
	docs, err := s.remote.Query(ctx, s.codec.Collection, models.DocumentQuery{
		UpdatedAfter: watermark,
		GroupID:      scope.GroupID,
	})
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", s.codec.Collection, err)
	}

	var hold int64
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("download %s interrupted: %w", s.codec.Collection, err)
		}

		res := s.apply(ctx, scope, doc)
		outcome.countDownload(res)
		syncRows.WithLabelValues(s.codec.Collection, "download", res.Kind.String()).Inc()

		if res.Redeliverable() && (hold == 0 || doc.LastUpdated < hold) {
			hold = doc.LastUpdated
		}
	}

	return hold, nil
}

func (s *CollectionSyncer[T]) apply(ctx context.Context, scope models.Scope, doc models.Document) RowResult {
	log := s.logger.With().
		Str("func", "CollectionSyncer.apply").
		Str("collection", s.codec.Collection).
		Str("id", doc.ID).
		Int64("last_updated", doc.LastUpdated).
		Logger()

	v, err := s.codec.Decode(doc)
	if err != nil {
		log.Warn().Err(err).Msg("dropping undecodable row")
		return dropped(doc.ID, doc.LastUpdated, DropMalformed, err.Error())
	}

	if !scope.IsGlobal() && s.codec.Group(v) != scope.GroupID {
		log.Warn().Str("group_id", s.codec.Group(v)).Msg("dropping row of another group")
		return dropped(doc.ID, doc.LastUpdated, DropForeignGroup, s.codec.Group(v))
	}

	if refs := s.codec.SetReferences(v); len(refs) > 0 && s.verifier != nil {
		res := s.verifier.Verify(ctx, doc.ID, doc.LastUpdated, refs)
		if res.Kind != RowAccepted {
			log.Warn().Err(res.Err).Str("missing", res.Detail).Msg("dropping row with unresolved references")
			return res
		}
	}

	current, err := s.local.GetByID(ctx, doc.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Warn().Err(err).Msg("failed to read local row")
		return failed(doc.ID, doc.LastUpdated, err)
	case doc.LastUpdated <= current.Meta().LastUpdated:
		return skipped(doc.ID, doc.LastUpdated)
	}

	meta := v.Meta()
	meta.IsSynced = true
	v = models.WithMeta(v, meta)

	err = s.retry.Do(ctx, s.codec.Collection, func(ctx context.Context) error {
		return s.local.Upsert(ctx, v)
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to write downloaded row")
		return failed(doc.ID, doc.LastUpdated, err)
	}

	return accepted(doc.ID, doc.LastUpdated)
}

func (s *CollectionSyncer[T]) record(span trace.Span, o CollectionOutcome) {
	result := "ok"
	if o.Err != nil {
		result = "error"
		span.RecordError(o.Err)
		span.SetStatus(codes.Error, o.Err.Error())
	}
	span.SetAttributes(
		attribute.Int("uploaded", o.Uploaded),
		attribute.Int("upload_failed", o.UploadFailed),
		attribute.Int("applied", o.Applied),
		attribute.Int("skipped", o.Skipped),
		attribute.Int("dropped", o.Dropped),
		attribute.Int("failed", o.Failed),
		attribute.Int64("watermark", o.Watermark),
	)

	collectionDuration.WithLabelValues(o.Collection, result).Observe(o.Duration.Seconds())
	if o.Watermark > o.PreviousWatermark {
		watermarkGauge.WithLabelValues(o.Collection).Set(float64(o.Watermark))
	}

	event := s.logger.Info()
	if o.Err != nil {
		event = s.logger.Error().Err(o.Err)
	}
	event.
		Str("collection", o.Collection).
		Str("scope", o.ScopeKey).
		Int("uploaded", o.Uploaded).
		Int("upload_failed", o.UploadFailed).
		Int("applied", o.Applied).
		Int("skipped", o.Skipped).
		Int("dropped", o.Dropped).
		Int("failed", o.Failed).
		Int64("watermark", o.Watermark).
		Dur("took", o.Duration).
		Msg("collection synced")
}
