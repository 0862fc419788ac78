package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

func newTestConfig(t *testing.T, redisAddr string) *config.ClientConfig {
	t.Helper()

	dir := t.TempDir()
	return config.NewClientConfig(&config.StructuredConfig{
		App: config.App{DeviceID: "device-test"},
		Storage: config.Storage{Local: config.Local{
			DSN:        filepath.Join(dir, "chama.db"),
			LedgerPath: filepath.Join(dir, "ledger.db"),
		}},
		Adapter: config.Adapter{
			Backend: config.BackendRedis,
			Redis:   config.Redis{Address: redisAddr},
		},
		Workers: config.Workers{
			FullSyncInterval: time.Hour,
			RetryBaseDelay:   time.Millisecond,
		},
	})
}

func newTestApp(t *testing.T, cfg *config.ClientConfig) *App {
	t.Helper()

	app, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return app
}

func TestApp_RunOnce_UploadsLocalRows(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr.Addr())
	cfg.Workers.RunOnce = true
	app := newTestApp(t, cfg)
	ctx := context.Background()

	g := models.Group{
		SyncMeta: models.SyncMeta{ID: "g-1", LastUpdated: time.Now().UnixMilli()},
		Name:     "Umoja",
		Currency: "KES",
	}
	require.NoError(t, app.storages.Groups.Upsert(ctx, g))

	require.NoError(t, app.Run(ctx))

	docs, err := app.remote.Query(ctx, "groups", models.DocumentQuery{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "g-1", docs[0].ID)

	local, err := app.storages.Groups.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.True(t, local.IsSynced)

	assert.Equal(t, models.SyncStateSuccess, app.Status().Current().State)
}

func TestApp_RunOnce_ScopedGroups(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr.Addr())
	cfg.Workers.ScopedGroups = []string{"g-1"}
	app := newTestApp(t, cfg)

	assert.Equal(t, models.SyncResultSuccess, app.RunOnce(context.Background()))

	watermarks, err := app.ledger.All(context.Background())
	require.NoError(t, err)
	for _, w := range watermarks {
		assert.Contains(t, w.ScopeKey, ":g-1", "scoped pass must only write per-group watermarks")
	}
}

func TestApp_RunOnce_RemoteDown(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr.Addr())
	cfg.Workers.RunOnce = true
	app := newTestApp(t, cfg)

	mr.Close()

	assert.ErrorIs(t, app.Run(context.Background()), ErrRetryRequested)
	assert.Equal(t, models.SyncStateFailed, app.Status().Current().State)
}

func TestApp_Run_StopsWithContext(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newTestApp(t, newTestConfig(t, mr.Addr()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// the full sync job runs immediately on start
	require.Eventually(t, func() bool {
		return app.Status().Current().State == models.SyncStateSuccess
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewApp_InvalidLedgerPath(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr.Addr())
	// a directory cannot be opened as a bolt file
	cfg.Storage.Local.LedgerPath = t.TempDir()

	app, err := NewApp(context.Background(), cfg, logger.Nop())

	require.Error(t, err)
	assert.Nil(t, app)
}

func TestResolveDeviceID(t *testing.T) {
	assert.Equal(t, "configured", resolveDeviceID("configured"))
	assert.NotEmpty(t, resolveDeviceID(""))
}
