package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chama-sync/models"
)

func TestStatusBroadcaster_StartsIdle(t *testing.T) {
	b := NewStatusBroadcaster()
	assert.Equal(t, models.StatusIdle(), b.Current())
}

func TestStatusBroadcaster_SubscribeGetsCurrentValue(t *testing.T) {
	b := NewStatusBroadcaster()
	b.Publish(models.StatusProgress(2, 18))

	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	assert.Equal(t, models.StatusProgress(2, 18), <-ch)
}

func TestStatusBroadcaster_LastValueWins(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	at := time.UnixMilli(1_700_000_000_000)
	b.Publish(models.StatusInProgress())
	b.Publish(models.StatusProgress(1, 2))
	b.Publish(models.StatusSuccess(at))

	assert.Equal(t, models.StatusSuccess(at), <-ch)
	select {
	case s := <-ch:
		t.Fatalf("unexpected extra status %v", s)
	default:
	}
	assert.Equal(t, models.StatusSuccess(at), b.Current())
}

func TestStatusBroadcaster_Unsubscribe(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsubscribe := b.Subscribe()
	<-ch

	unsubscribe()
	unsubscribe()

	b.Publish(models.StatusFailed("boom"))
	_, open := <-ch
	assert.False(t, open)
}

func TestStatusBroadcaster_ConcurrentPublish(t *testing.T) {
	b := NewStatusBroadcaster()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(models.StatusProgress(i, 50))
		}()
	}
	wg.Wait()

	got := <-ch
	require.Equal(t, models.SyncStateInProgressWithProgress, got.State)
	assert.Equal(t, b.Current(), got)
}
