package service

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/ledger"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/store"
	"github.com/MKhiriev/go-chama-sync/models"
)

// memoryStore is an in-memory remote document store. Set and Query can be
// made to fail per collection or per document id.
type memoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]models.Document

	setErrs   map[string]error
	queryErrs map[string]error

	// queryHook runs before every query, outside the lock.
	queryHook func(ctx context.Context, collection string) error

	sets atomic.Int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		docs:      make(map[string]map[string]models.Document),
		setErrs:   make(map[string]error),
		queryErrs: make(map[string]error),
	}
}

func (m *memoryStore) Set(ctx context.Context, collection string, doc models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.setErrs[doc.ID]; err != nil {
		return err
	}
	m.sets.Add(1)
	m.put(collection, doc)
	return nil
}

func (m *memoryStore) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	if m.queryHook != nil {
		if err := m.queryHook(ctx, collection); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.queryErrs[collection]; err != nil {
		return nil, err
	}

	var out []models.Document
	for _, d := range m.docs[collection] {
		if q.Matches(d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b models.Document) int {
		if c := cmp.Compare(a.LastUpdated, b.LastUpdated); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) put(collection string, doc models.Document) {
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]models.Document)
	}
	m.docs[collection][doc.ID] = doc
}

func (m *memoryStore) get(collection, id string) (models.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[collection][id]
	return d, ok
}

// seed encodes v with c and stores it as if another device had uploaded it.
func seed[T models.Entity](t *testing.T, m *memoryStore, c codec.Codec[T], v T) models.Document {
	t.Helper()
	doc, err := c.Encode(v)
	require.NoError(t, err)

	m.mu.Lock()
	m.put(c.Collection, doc)
	m.mu.Unlock()
	return doc
}

// testClock is a settable clock in unix milliseconds.
type testClock struct {
	ms atomic.Int64
}

func newTestClock(ms int64) *testClock {
	c := &testClock{}
	c.ms.Store(ms)
	return c
}

func (c *testClock) Now() time.Time {
	return time.UnixMilli(c.ms.Load())
}

func (c *testClock) Set(ms int64) {
	c.ms.Store(ms)
}

type testEngine struct {
	stores *store.ClientStorages
	remote *memoryStore
	ledger *ledger.BoltLedger
	clock  *testClock
	deps   SyncerDeps
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	return newTestEngineOn(t, newMemoryStore())
}

// newTestEngineOn opens a fresh local store and ledger syncing against
// remote.
func newTestEngineOn(t *testing.T, remote *memoryStore) *testEngine {
	t.Helper()
	dir := t.TempDir()

	stores, err := store.NewClientStorages(context.Background(), config.Local{DSN: filepath.Join(dir, "chama.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	l, err := ledger.Open(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	clock := newTestClock(1_000_000)

	return &testEngine{
		stores: stores,
		remote: remote,
		ledger: l,
		clock:  clock,
		deps: SyncerDeps{
			Remote:            remote,
			Ledger:            l,
			Verifier:          NewReferenceVerifier(stores),
			Retry:             NewRetryPolicy(3, time.Millisecond),
			UploadConcurrency: 2,
			Now:               clock.Now,
			Logger:            logger.Nop(),
		},
	}
}

func (e *testEngine) orchestrator() *Orchestrator {
	return NewOrchestrator(e.stores, e.deps, NewStatusBroadcaster(), logger.Nop())
}

func (e *testEngine) watermark(t *testing.T, key string) int64 {
	t.Helper()
	w, err := e.ledger.Watermark(context.Background(), key)
	require.NoError(t, err)
	return w
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func group(id string, lastUpdated int64) models.Group {
	return models.Group{
		SyncMeta: models.SyncMeta{ID: id, LastUpdated: lastUpdated},
		Name:     "Umoja " + id,
		Currency: "KES",
	}
}

func syncedGroup(id string, lastUpdated int64) models.Group {
	g := group(id, lastUpdated)
	g.IsSynced = true
	return g
}

func member(id, groupID string, lastUpdated int64) models.Member {
	return models.Member{
		SyncMeta: models.SyncMeta{ID: id, LastUpdated: lastUpdated},
		GroupID:  groupID,
		Name:     "Akinyi " + id,
	}
}
