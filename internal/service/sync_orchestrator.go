// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/store"
	"github.com/MKhiriev/go-chama-sync/models"
)

const (
	modeFull   = "full"
	modeScoped = "scoped"
)

// Orchestrator runs sync passes over every collection in dependency order.
//
// Collections of one pass are synced one after another. Only one pass runs
// at a time: a pass started with the same scope as the running one cancels
// it and takes over once it has returned, while passes of different scopes
// queue behind each other.
type Orchestrator struct {
	steps  []CollectionSync
	status *StatusBroadcaster
	now    func() time.Time
	logger *logger.Logger

	runMu sync.Mutex

	flightMu    sync.Mutex
	flights     map[string]*flight
	generations map[string]uint64
}

type flight struct {
	cancel context.CancelFunc
}

type syncUnit struct {
	step  CollectionSync
	scope models.Scope
}

// NewOrchestrator builds one syncer per collection of stores, in
// [codec.SyncOrder]. deps.Verifier defaults to a verifier over stores.
func NewOrchestrator(stores *store.ClientStorages, deps SyncerDeps, status *StatusBroadcaster, log *logger.Logger) *Orchestrator {
	if deps.Verifier == nil {
		deps.Verifier = NewReferenceVerifier(stores)
	}

	steps := []CollectionSync{
		NewCollectionSyncer(codec.Users, stores.Users, deps),
		NewCollectionSyncer(codec.Groups, stores.Groups, deps),
		NewCollectionSyncer(codec.UserGroups, stores.UserGroups, deps),
		NewCollectionSyncer(codec.GroupMembers, stores.GroupMembers, deps),
		NewCollectionSyncer(codec.Members, stores.Members, deps),
		NewCollectionSyncer(codec.Cycles, stores.Cycles, deps),
		NewCollectionSyncer(codec.Meetings, stores.Meetings, deps),
		NewCollectionSyncer(codec.Contributions, stores.Contributions, deps),
		NewCollectionSyncer(codec.Beneficiaries, stores.Beneficiaries, deps),
		NewCollectionSyncer(codec.Savings, stores.Savings, deps),
		NewCollectionSyncer(codec.SavingEntries, stores.SavingEntries, deps),
		NewCollectionSyncer(codec.Benefits, stores.Benefits, deps),
		NewCollectionSyncer(codec.Expenses, stores.Expenses, deps),
		NewCollectionSyncer(codec.Penalties, stores.Penalties, deps),
		NewCollectionSyncer(codec.Welfares, stores.Welfares, deps),
		NewCollectionSyncer(codec.WelfareMeetings, stores.WelfareMeetings, deps),
		NewCollectionSyncer(codec.WelfareContributions, stores.WelfareContributions, deps),
		NewCollectionSyncer(codec.WelfareBeneficiaries, stores.WelfareBeneficiaries, deps),
	}

	return newOrchestrator(steps, status, deps.Now, log)
}

func newOrchestrator(steps []CollectionSync, status *StatusBroadcaster, now func() time.Time, log *logger.Logger) *Orchestrator {
	if status == nil {
		status = NewStatusBroadcaster()
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Orchestrator{
		steps:       steps,
		status:      status,
		now:         now,
		logger:      log,
		flights:     make(map[string]*flight),
		generations: make(map[string]uint64),
	}
}

// Collections returns the collection names in the order a pass visits them.
func (o *Orchestrator) Collections() []string {
	names := make([]string, 0, len(o.steps))
	for _, step := range o.steps {
		names = append(names, step.Collection())
	}
	return names
}

// Status returns the broadcaster the orchestrator publishes to.
func (o *Orchestrator) Status() *StatusBroadcaster {
	return o.status
}

// RunFullSync syncs every collection with collection-wide watermarks.
func (o *Orchestrator) RunFullSync(ctx context.Context) models.SyncResult {
	units := make([]syncUnit, 0, len(o.steps))
	for _, step := range o.steps {
		units = append(units, syncUnit{step: step})
	}

	return o.run(ctx, modeFull, modeFull, units)
}

// RunScopedSync syncs every group-scoped collection once per group, with
// watermarks kept per (collection, group). Collections that are not
// group-scoped are skipped. An empty set of groups is a successful no-op.
func (o *Orchestrator) RunScopedSync(ctx context.Context, groupIDs []string) models.SyncResult {
	groups := normalizeGroups(groupIDs)
	if len(groups) == 0 {
		o.logger.Debug().Str("func", "Orchestrator.RunScopedSync").Msg("no groups to sync")
		return models.SyncResultSuccess
	}

	var units []syncUnit
	for _, step := range o.steps {
		if !step.Scoped() {
			continue
		}
		for _, group := range groups {
			units = append(units, syncUnit{step: step, scope: models.Scope{GroupID: group}})
		}
	}

	return o.run(ctx, modeScoped+":"+strings.Join(groups, ","), modeScoped, units)
}

func (o *Orchestrator) run(ctx context.Context, key, mode string, units []syncUnit) models.SyncResult {
	gen := o.supersede(key)

	o.runMu.Lock()
	defer o.runMu.Unlock()

	passCtx, release, ok := o.claim(ctx, key, gen)
	if !ok {
		o.logger.Info().Str("func", "Orchestrator.run").Str("pass", key).Msg("pass superseded before it started")
		passResults.WithLabelValues(mode, "superseded").Inc()
		return models.SyncResultRetry
	}
	defer release()

	log := o.logger.With().Str("pass", key).Logger()
	passCtx = log.WithContext(passCtx)

	passCtx, span := syncTracer.Start(passCtx, "sync.pass", trace.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("key", key),
		attribute.Int("units", len(units)),
	))
	defer span.End()

	started := time.Now()
	log.Info().Int("units", len(units)).Msg("sync pass started")
	o.status.Publish(models.StatusInProgress())

	total := len(units)
	var failedUnits []string
	for i, unit := range units {
		if err := passCtx.Err(); err != nil {
			return o.abandon(span, mode, log, err)
		}

		outcome := o.syncUnit(passCtx, unit)
		if !outcome.OK() {
			if err := passCtx.Err(); err != nil {
				return o.abandon(span, mode, log, err)
			}
			failedUnits = append(failedUnits, outcome.ScopeKey)
		}

		o.status.Publish(models.StatusProgress(i+1, total))
	}

	took := time.Since(started)
	if len(failedUnits) == 0 {
		o.status.Publish(models.StatusSuccess(o.now()))
		passResults.WithLabelValues(mode, models.SyncResultSuccess.String()).Inc()
		log.Info().Dur("took", took).Msg("sync pass succeeded")
		return models.SyncResultSuccess
	}

	msg := fmt.Sprintf("%d of %d collections failed", len(failedUnits), total)
	span.SetStatus(codes.Error, msg)
	o.status.Publish(models.StatusFailed(msg))
	passResults.WithLabelValues(mode, models.SyncResultRetry.String()).Inc()
	log.Error().
		Strs("failed", failedUnits).
		Dur("took", took).
		Msg("sync pass finished with failures")

	return models.SyncResultRetry
}

// syncUnit runs one step and turns a panic inside it into a failed outcome,
// so the remaining collections of the pass still run.
func (o *Orchestrator) syncUnit(ctx context.Context, unit syncUnit) (outcome CollectionOutcome) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		collection := unit.step.Collection()
		outcome = CollectionOutcome{
			Collection: collection,
			ScopeKey:   models.ScopeKey(collection, unit.scope),
			Err:        fmt.Errorf("%w: %s: %v", ErrSyncPanicked, collection, r),
		}
		logger.FromContext(ctx).Error().
			Str("func", "Orchestrator.syncUnit").
			Str("collection", collection).
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("collection sync panicked")
	}()

	return unit.step.Sync(ctx, unit.scope)
}

// supersede cancels the running pass of key, if any, and returns the
// generation of the new call.
func (o *Orchestrator) supersede(key string) uint64 {
	o.flightMu.Lock()
	defer o.flightMu.Unlock()

	o.generations[key]++
	if f, ok := o.flights[key]; ok {
		f.cancel()
	}
	return o.generations[key]
}

// claim registers the pass as the running flight of key. It fails when a
// newer call of the same key arrived while this one was waiting.
func (o *Orchestrator) claim(ctx context.Context, key string, gen uint64) (context.Context, func(), bool) {
	o.flightMu.Lock()
	defer o.flightMu.Unlock()

	if o.generations[key] != gen {
		return nil, nil, false
	}

	passCtx, cancel := context.WithCancel(ctx)
	f := &flight{cancel: cancel}
	o.flights[key] = f

	release := func() {
		o.flightMu.Lock()
		if o.flights[key] == f {
			delete(o.flights, key)
		}
		o.flightMu.Unlock()
		cancel()
	}
	return passCtx, release, true
}

func (o *Orchestrator) abandon(span trace.Span, mode string, log zerolog.Logger, err error) models.SyncResult {
	span.SetStatus(codes.Error, "pass cancelled")
	passResults.WithLabelValues(mode, "superseded").Inc()
	log.Info().Err(err).Msg("sync pass cancelled")
	return models.SyncResultRetry
}

func normalizeGroups(groupIDs []string) []string {
	groups := make([]string, 0, len(groupIDs))
	for _, id := range groupIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			groups = append(groups, id)
		}
	}
	slices.Sort(groups)
	return slices.Compact(groups)
}
