// Package inventory keeps a local view of the shared item collection in sync
// with the remote store and derives the display list from it.
package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"go.uber.org/zap"
)

// NewItem is the input of Store.Add. A zero Quantity means 1.
type NewItem struct {
	Name       string
	Quantity   int
	ExpiryDate *time.Time
}

// Store is the adapter over the remote item collection. Mutations go straight
// to the collection and are announced on the feed; their effect reaches
// callers only through snapshots delivered to subscribers.
type Store struct {
	items   repo.ItemRepository
	feed    Feed
	logger  *zap.Logger
	metrics *metrics.Metrics
	resync  time.Duration

	mu     sync.RWMutex
	latest models.Snapshot
}

type Option func(*Store)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithResyncInterval makes every subscription reload the collection at least
// this often, covering change signals lost by the feed. Zero disables it.
func WithResyncInterval(d time.Duration) Option {
	return func(s *Store) { s.resync = d }
}

func NewStore(items repo.ItemRepository, feed Feed, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		items:  items,
		feed:   feed,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates an item and returns its store-assigned id once the collection
// has accepted the write.
func (s *Store) Add(ctx context.Context, in NewItem) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", ErrEmptyName
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}

	created, err := s.items.Insert(ctx, models.Item{
		Name:       name,
		Quantity:   quantity,
		ExpiryDate: in.ExpiryDate,
	})
	s.metrics.StoreMutation("add", err)
	if err != nil {
		s.logger.Error("insert item failed", zap.String("name", name), zap.Error(err))
		return "", unavailable("add", err)
	}

	s.mu.Lock()
	if s.latest != nil {
		s.latest = append(s.latest, created)
	}
	s.mu.Unlock()

	s.announce(ctx, "add")
	return created.ID, nil
}

// Remove deletes an item. Removing an id that no longer exists succeeds.
func (s *Store) Remove(ctx context.Context, id string) error {
	err := s.items.Delete(ctx, id)
	if errors.Is(err, repo.ErrItemNotFound) {
		s.forget(id)
		return nil
	}
	s.metrics.StoreMutation("remove", err)
	if err != nil {
		s.logger.Error("delete item failed", zap.String("id", id), zap.Error(err))
		return unavailable("remove", err)
	}

	s.forget(id)
	s.announce(ctx, "remove")
	return nil
}

// SetQuantity applies delta to the item's current stored quantity.
// Decrements floor at 1; a decrement at 1 writes nothing.
//
// The read and the write are separate statements and the write is a plain
// overwrite, so two processes incrementing the same item at once can lose
// one of the increments (last write wins).
func (s *Store) SetQuantity(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}

	current, err := s.current(ctx, id)
	if err != nil {
		return err
	}

	next := current.Quantity + delta
	if delta < 0 && next < 1 {
		next = 1
	}
	if next == current.Quantity {
		return nil
	}

	err = s.items.UpdateQuantity(ctx, id, next)
	if errors.Is(err, repo.ErrItemNotFound) {
		s.forget(id)
		return ErrItemNotFound
	}
	s.metrics.StoreMutation("set_quantity", err)
	if err != nil {
		s.logger.Error("update quantity failed", zap.String("id", id), zap.Int("quantity", next), zap.Error(err))
		return unavailable("set quantity", err)
	}

	s.mu.Lock()
	for i := range s.latest {
		if s.latest[i].ID == id {
			s.latest[i].Quantity = next
			break
		}
	}
	s.mu.Unlock()

	s.announce(ctx, "set_quantity")
	return nil
}

func (s *Store) Increment(ctx context.Context, id string) error {
	return s.SetQuantity(ctx, id, 1)
}

func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.SetQuantity(ctx, id, -1)
}

// Refresh reloads the whole collection, records it as the latest known
// snapshot and returns a private copy.
func (s *Store) Refresh(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.items.List(ctx)
	if err != nil {
		return nil, unavailable("list", err)
	}

	s.mu.Lock()
	s.latest = snap.Clone()
	s.mu.Unlock()
	return snap, nil
}

// Start keeps the latest known snapshot current for as long as ctx lives:
// every change signal on the feed, and every resync tick when configured,
// reloads the collection. It returns once the feed is listening.
func (s *Store) Start(ctx context.Context) error {
	signals, err := s.feed.Listen(ctx)
	if err != nil {
		return unavailable("listen", err)
	}
	go s.follow(ctx, signals)
	return nil
}

func (s *Store) follow(ctx context.Context, signals <-chan struct{}) {
	var resync <-chan time.Time
	if s.resync > 0 {
		ticker := time.NewTicker(s.resync)
		defer ticker.Stop()
		resync = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("change feed closed, latest snapshot now follows resync only")
				signals = nil
				continue
			}
		case <-resync:
		}
		if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("latest snapshot reload failed", zap.Error(err))
		}
	}
}

// Latest returns a copy of the last snapshot this process saw, or nil when
// none was loaded yet.
func (s *Store) Latest() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest.Clone()
}

// current reads the item straight from the collection, so a quantity written
// by another process is seen even when no change signal reached this one.
func (s *Store) current(ctx context.Context, id string) (models.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if errors.Is(err, repo.ErrItemNotFound) {
		s.forget(id)
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		s.logger.Error("read item failed", zap.String("id", id), zap.Error(err))
		return models.Item{}, unavailable("get", err)
	}
	return it, nil
}

func (s *Store) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.latest {
		if s.latest[i].ID == id {
			s.latest = append(s.latest[:i], s.latest[i+1:]...)
			return
		}
	}
}

// announce publishes a change signal. The write itself already succeeded, so
// a failed publish is only logged; subscribers catch up on their next resync.
func (s *Store) announce(ctx context.Context, op string) {
	if err := s.feed.Publish(ctx); err != nil {
		s.logger.Warn("change signal not published", zap.String("op", op), zap.Error(err))
	}
}
