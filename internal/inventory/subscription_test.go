package inventory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second

type recorder struct {
	mu    sync.Mutex
	snaps []models.Snapshot
}

func (r *recorder) record(snap models.Snapshot) {
	r.mu.Lock()
	r.snaps = append(r.snaps, snap)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *recorder) last() models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return nil
	}
	return r.snaps[len(r.snaps)-1]
}

func (r *recorder) eventually(t *testing.T, cond func(models.Snapshot) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cond(r.last())
	}, waitFor, 5*time.Millisecond)
}

func TestSubscribe_InitialSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	rec := &recorder{}

	sub, err := s.Subscribe(rec.record)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)

	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, 5*time.Millisecond)
	assert.Empty(t, rec.last())
}

func TestSubscribe_DeliversOwnWrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	rec := &recorder{}

	sub, err := s.Subscribe(rec.record)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)

	id, err := s.Add(ctx, NewItem{Name: "Eggs"})
	require.NoError(t, err)
	rec.eventually(t, func(snap models.Snapshot) bool {
		it, ok := snap.Find(id)
		return ok && it.Name == "Eggs" && it.Quantity == 1
	})

	require.NoError(t, s.Increment(ctx, id))
	rec.eventually(t, func(snap models.Snapshot) bool {
		it, ok := snap.Find(id)
		return ok && it.Quantity == 2
	})

	require.NoError(t, s.Remove(ctx, id))
	rec.eventually(t, func(snap models.Snapshot) bool {
		_, ok := snap.Find(id)
		return snap != nil && !ok
	})
}

func TestSubscribe_SharedFeedAcrossStores(t *testing.T) {
	items := newFlakyRepo()
	feed := NewLocalFeed()
	writer := NewStore(items, feed, zap.NewNop())
	reader := NewStore(items, feed, zap.NewNop())
	rec := &recorder{}

	sub, err := reader.Subscribe(rec.record)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)

	id, err := writer.Add(context.Background(), NewItem{Name: "Rice", Quantity: 4})
	require.NoError(t, err)

	rec.eventually(t, func(snap models.Snapshot) bool {
		it, ok := snap.Find(id)
		return ok && it.Quantity == 4
	})
}

func TestSubscribe_NoCallbackAfterCancel(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	rec := &recorder{}

	sub, err := s.Subscribe(rec.record)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, 5*time.Millisecond)

	sub.Cancel()
	after := rec.count()

	for i := 0; i < 5; i++ {
		_, err := s.Add(ctx, NewItem{Name: "Salt"})
		require.NoError(t, err)
	}

	select {
	case <-sub.Done():
	case <-time.After(waitFor):
		t.Fatal("delivery goroutine did not exit")
	}
	assert.Equal(t, after, rec.count())
}

func TestSubscribe_CancelIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	sub, err := s.Subscribe(func(models.Snapshot) {})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		sub.Cancel()
		sub.Cancel()
		sub.Cancel()
	})
}

func TestSubscribe_CancelFromCallback(t *testing.T) {
	s, _ := newTestStore(t)
	var calls atomic.Int32
	var sub *Subscription
	ready := make(chan struct{})

	var err error
	sub, err = s.Subscribe(func(models.Snapshot) {
		<-ready
		calls.Add(1)
		sub.Cancel()
	})
	require.NoError(t, err)
	close(ready)

	select {
	case <-sub.Done():
	case <-time.After(waitFor):
		t.Fatal("cancel from inside the callback did not stop the subscription")
	}

	_, err = s.Add(context.Background(), NewItem{Name: "Pepper"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubscribe_SurvivesStoreErrors(t *testing.T) {
	s, items := newTestStore(t)
	ctx := context.Background()
	rec := &recorder{}

	sub, err := s.Subscribe(rec.record)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)
	require.Eventually(t, func() bool { return rec.count() == 1 }, waitFor, 5*time.Millisecond)

	items.setDown(true)
	require.NoError(t, s.feed.Publish(ctx))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "a failed reload is not delivered")

	items.setDown(false)
	id, err := s.Add(ctx, NewItem{Name: "Sugar"})
	require.NoError(t, err)
	rec.eventually(t, func(snap models.Snapshot) bool {
		_, ok := snap.Find(id)
		return ok
	})
}

func TestSubscribe_ResyncWithoutSignals(t *testing.T) {
	s, items := newTestStore(t, WithResyncInterval(10*time.Millisecond))
	rec := &recorder{}

	sub, err := s.Subscribe(rec.record)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)

	created, err := items.InMemoryItemRepository.Insert(context.Background(), models.Item{Name: "Honey", Quantity: 1})
	require.NoError(t, err)

	rec.eventually(t, func(snap models.Snapshot) bool {
		_, ok := snap.Find(created.ID)
		return ok
	})
}

func TestSubscribe_SnapshotsAreIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Jam", Quantity: 2})
	require.NoError(t, err)

	rec := &recorder{}
	sub, err := s.Subscribe(func(snap models.Snapshot) {
		for i := range snap {
			snap[i].Quantity = 100
		}
		rec.record(snap)
	})
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)
	require.Eventually(t, func() bool { return rec.count() >= 1 }, waitFor, 5*time.Millisecond)

	it, ok := s.Latest().Find(id)
	require.True(t, ok)
	assert.Equal(t, 2, it.Quantity)
}
