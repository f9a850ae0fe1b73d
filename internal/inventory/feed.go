package inventory

import (
	"context"
	"sync"
)

// Feed carries "the collection changed" signals from writers to subscribers.
// Signals have no payload: a subscriber reloads the whole collection.
type Feed interface {
	Publish(ctx context.Context) error
	// Listen returns a channel that receives a value after every Publish
	// until ctx is done. Bursts may be coalesced into one signal.
	Listen(ctx context.Context) (<-chan struct{}, error)
}

// LocalFeed is an in-process Feed for single-process deployments and tests.
type LocalFeed struct {
	mu        sync.Mutex
	listeners map[chan struct{}]struct{}
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{listeners: make(map[chan struct{}]struct{})}
}

func (f *LocalFeed) Publish(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.listeners {
		select {
		case ch <- struct{}{}:
		default:
			// a signal is already pending for this listener
		}
	}
	return nil
}

func (f *LocalFeed) Listen(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	f.listeners[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.listeners, ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch, nil
}
