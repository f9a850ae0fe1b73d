package inventory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"go.uber.org/zap"
)

// Subscription is a live registration for whole-collection snapshots.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	// mu is held from the cancelled check until the callback returns.
	mu         sync.Mutex
	cancelled  atomic.Bool
	inCallback atomic.Bool
}

// Subscribe registers fn for a full snapshot now and after every change of
// the collection, including the echo of this process's own writes. Calls to
// fn are sequential and follow the order of the feed's signals. A failed
// reload is logged and skipped; the subscription stays registered.
func (s *Store) Subscribe(fn func(models.Snapshot)) (*Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())

	signals, err := s.feed.Listen(ctx)
	if err != nil {
		cancel()
		return nil, unavailable("subscribe", err)
	}

	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.metrics.SubscriptionOpened()
	go s.run(ctx, sub, signals, fn)
	return sub, nil
}

// Cancel detaches the subscription. Once it returns no callback starts any
// more, even for a snapshot that was already loading. It is safe to call
// repeatedly and from inside the callback.
func (sub *Subscription) Cancel() {
	sub.cancelled.Store(true)
	sub.cancel()
	if !sub.inCallback.Load() {
		// wait out a delivery that passed its cancelled check before we did
		sub.mu.Lock()
		sub.mu.Unlock()
	}
}

// Done is closed when the delivery goroutine has exited.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

func (s *Store) run(ctx context.Context, sub *Subscription, signals <-chan struct{}, fn func(models.Snapshot)) {
	defer close(sub.done)
	defer s.metrics.SubscriptionClosed()

	var resync <-chan time.Time
	if s.resync > 0 {
		ticker := time.NewTicker(s.resync)
		defer ticker.Stop()
		resync = ticker.C
	}

	s.deliver(ctx, sub, fn)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("change feed closed, falling back to periodic resync")
				signals = nil
				continue
			}
		case <-resync:
		}
		s.deliver(ctx, sub, fn)
	}
}

func (s *Store) deliver(ctx context.Context, sub *Subscription, fn func(models.Snapshot)) {
	snap, err := s.Refresh(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("snapshot reload failed", zap.Error(err))
		}
		return
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.cancelled.Load() {
		return
	}
	sub.inCallback.Store(true)
	defer sub.inCallback.Store(false)
	fn(snap)
	s.metrics.SnapshotDelivered()
}
