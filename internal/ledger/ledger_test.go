package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/MKhiriev/go-chama-sync/models"
)

func openTestLedger(t *testing.T) (*BoltLedger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	l, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func TestWatermark_AbsentIsZero(t *testing.T) {
	l, _ := openTestLedger(t)

	ts, err := l.Watermark(context.Background(), "members:group-7")
	require.NoError(t, err)
	assert.Zero(t, ts)
}

func TestAdvance_IsMonotonic(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		advance int64
		want    int64
	}{
		{name: "first value", advance: 1000, want: 1000},
		{name: "forward", advance: 2000, want: 2000},
		{name: "backwards is ignored", advance: 1500, want: 2000},
		{name: "same value is ignored", advance: 2000, want: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, l.Advance(ctx, "members", tt.advance))

			ts, err := l.Watermark(ctx, "members")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestAdvance_ScopesAreIndependent(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Advance(ctx, "members", 10))
	require.NoError(t, l.Advance(ctx, "members:group-7", 20))

	global, err := l.Watermark(ctx, "members")
	require.NoError(t, err)
	scoped, err := l.Watermark(ctx, "members:group-7")
	require.NoError(t, err)

	assert.Equal(t, int64(10), global)
	assert.Equal(t, int64(20), scoped)
}

func TestLedger_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Advance(ctx, "groups", 42))
	require.NoError(t, l.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	ts, err := reopened.Watermark(ctx, "groups")
	require.NoError(t, err)
	assert.Equal(t, int64(42), ts)
}

func TestAll_OrderedByKey(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Advance(ctx, "users", 3))
	require.NoError(t, l.Advance(ctx, "groups:g1", 2))
	require.NoError(t, l.Advance(ctx, "groups", 1))

	all, err := l.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SyncWatermark{
		{ScopeKey: "groups", LastSyncedAt: 1},
		{ScopeKey: "groups:g1", LastSyncedAt: 2},
		{ScopeKey: "users", LastSyncedAt: 3},
	}, all)
}

func TestWatermark_CorruptValue(t *testing.T) {
	l, _ := openTestLedger(t)

	require.NoError(t, l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(watermarksBucket).Put([]byte("members"), []byte("oops"))
	}))

	_, err := l.Watermark(context.Background(), "members")
	assert.ErrorIs(t, err, ErrCorruptWatermark)
}

func TestLedger_CancelledContext(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Watermark(ctx, "members")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, l.Advance(ctx, "members", 1), context.Canceled)
}
