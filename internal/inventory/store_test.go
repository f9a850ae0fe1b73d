package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBackend = errors.New("connection refused")

// flakyRepo wraps an in-memory repository and fails every call while down.
type flakyRepo struct {
	*repo.InMemoryItemRepository
	mu   sync.Mutex
	down bool
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{InMemoryItemRepository: repo.NewInMemoryItemRepository()}
}

func (r *flakyRepo) setDown(down bool) {
	r.mu.Lock()
	r.down = down
	r.mu.Unlock()
}

func (r *flakyRepo) fail() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return errBackend
	}
	return nil
}

func (r *flakyRepo) Insert(ctx context.Context, it models.Item) (models.Item, error) {
	if err := r.fail(); err != nil {
		return models.Item{}, err
	}
	return r.InMemoryItemRepository.Insert(ctx, it)
}

func (r *flakyRepo) GetByID(ctx context.Context, id string) (models.Item, error) {
	if err := r.fail(); err != nil {
		return models.Item{}, err
	}
	return r.InMemoryItemRepository.GetByID(ctx, id)
}

func (r *flakyRepo) List(ctx context.Context) (models.Snapshot, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.InMemoryItemRepository.List(ctx)
}

func (r *flakyRepo) UpdateQuantity(ctx context.Context, id string, q int) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.InMemoryItemRepository.UpdateQuantity(ctx, id, q)
}

func (r *flakyRepo) Delete(ctx context.Context, id string) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.InMemoryItemRepository.Delete(ctx, id)
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *flakyRepo) {
	t.Helper()
	items := newFlakyRepo()
	return NewStore(items, NewLocalFeed(), zap.NewNop(), opts...), items
}

func quantityOf(t *testing.T, s *Store, id string) int {
	t.Helper()
	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	it, ok := snap.Find(id)
	require.True(t, ok, "item %s not in snapshot", id)
	return it.Quantity
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, NewItem{Name: "Eggs"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	snap, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, "Eggs", snap[0].Name)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.Nil(t, snap[0].ExpiryDate)
}

func TestAdd_KeepsExpiryDate(t *testing.T) {
	s, _ := newTestStore(t)
	expiry := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	id, err := s.Add(context.Background(), NewItem{Name: "Milk", Quantity: 2, ExpiryDate: &expiry})
	require.NoError(t, err)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	it, ok := snap.Find(id)
	require.True(t, ok)
	require.NotNil(t, it.ExpiryDate)
	assert.True(t, expiry.Equal(*it.ExpiryDate))
	assert.Equal(t, 2, it.Quantity)
}

func TestAdd_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewItem
		want error
	}{
		{"empty name", NewItem{Name: ""}, ErrEmptyName},
		{"blank name", NewItem{Name: "   "}, ErrEmptyName},
		{"negative quantity", NewItem{Name: "Rice", Quantity: -2}, ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	snap, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestAdd_StoreUnavailable(t *testing.T) {
	s, items := newTestStore(t)
	items.setDown(true)

	_, err := s.Add(context.Background(), NewItem{Name: "Eggs"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, errBackend)
}

func TestSetQuantity_Sequences(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		deltas []int
		want   int
	}{
		{"single increment", 1, []int{1}, 2},
		{"decrement at one stays one", 1, []int{-1}, 1},
		{"decrement from three", 3, []int{-1}, 2},
		{"floor is per step", 2, []int{-5, 3}, 4},
		{"mixed", 1, []int{1, 1, -1, 1, -1, -1, -1}, 1},
		{"zero delta", 4, []int{0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()
			id, err := s.Add(ctx, NewItem{Name: "Beans", Quantity: tt.start})
			require.NoError(t, err)

			for _, d := range tt.deltas {
				require.NoError(t, s.SetQuantity(ctx, id, d))
			}
			assert.Equal(t, tt.want, quantityOf(t, s, id))
		})
	}
}

func TestIncrementDecrement(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Apples", Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, s.Increment(ctx, id))
	assert.Equal(t, 4, quantityOf(t, s, id))
	require.NoError(t, s.Decrement(ctx, id))
	require.NoError(t, s.Decrement(ctx, id))
	assert.Equal(t, 2, quantityOf(t, s, id))
}

func TestSetQuantity_UnknownID(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Increment(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetQuantity_SeesItemsWrittenElsewhere(t *testing.T) {
	s, items := newTestStore(t)
	ctx := context.Background()

	created, err := items.InMemoryItemRepository.Insert(ctx, models.Item{Name: "Flour", Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, s.Increment(ctx, created.ID))
	assert.Equal(t, 6, quantityOf(t, s, created.ID))
}

func TestSetQuantity_StoreUnavailable(t *testing.T) {
	s, items := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Tea"})
	require.NoError(t, err)
	_, err = s.Refresh(ctx)
	require.NoError(t, err)

	items.setDown(true)
	err = s.Increment(ctx, id)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	it, ok := s.Latest().Find(id)
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Bread"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, id))
	snap, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)

	assert.NoError(t, s.Remove(ctx, id), "removing twice is not an error")
	assert.NoError(t, s.Remove(ctx, "never-existed"))
}

func TestRemove_StoreUnavailable(t *testing.T) {
	s, items := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Bread"})
	require.NoError(t, err)
	_, err = s.Refresh(ctx)
	require.NoError(t, err)

	items.setDown(true)
	assert.ErrorIs(t, s.Remove(ctx, id), ErrStoreUnavailable)

	_, ok := s.Latest().Find(id)
	assert.True(t, ok)
}

func TestLatest_IsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, err := s.Add(ctx, NewItem{Name: "Oats", Quantity: 2})
	require.NoError(t, err)
	_, err = s.Refresh(ctx)
	require.NoError(t, err)

	snap := s.Latest()
	snap[0].Quantity = 99

	it, ok := s.Latest().Find(id)
	require.True(t, ok)
	assert.Equal(t, 2, it.Quantity)
}

func TestLatest_NilUntilLoaded(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, NewItem{Name: "Oats"})
	require.NoError(t, err)
	assert.Nil(t, s.Latest())

	_, err = s.Refresh(ctx)
	require.NoError(t, err)
	id, err := s.Add(ctx, NewItem{Name: "Rye"})
	require.NoError(t, err)

	latest := s.Latest()
	assert.Len(t, latest, 2)
	_, ok := latest.Find(id)
	assert.True(t, ok)
}

func TestSetQuantity_SequentialWritersInTwoStores(t *testing.T) {
	items := repo.NewInMemoryItemRepository()
	feed := NewLocalFeed()
	a := NewStore(items, feed, zap.NewNop())
	b := NewStore(items, feed, zap.NewNop())
	ctx := context.Background()

	id, err := a.Add(ctx, NewItem{Name: "Rice"})
	require.NoError(t, err)
	_, err = a.Refresh(ctx)
	require.NoError(t, err)
	_, err = b.Refresh(ctx)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, a.Increment(ctx, id))
	}
	require.NoError(t, b.Increment(ctx, id))

	stored, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Quantity)
}

func TestStart_FollowsWritesFromOtherStores(t *testing.T) {
	items := repo.NewInMemoryItemRepository()
	feed := NewLocalFeed()
	reader := NewStore(items, feed, zap.NewNop())
	writer := NewStore(items, feed, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, reader.Start(ctx))

	id, err := writer.Add(ctx, NewItem{Name: "Pasta"})
	require.NoError(t, err)
	require.NoError(t, writer.Increment(ctx, id))

	require.Eventually(t, func() bool {
		it, ok := reader.Latest().Find(id)
		return ok && it.Quantity == 2
	}, waitFor, 5*time.Millisecond)
}

func TestStart_ResyncWithoutSignals(t *testing.T) {
	items := repo.NewInMemoryItemRepository()
	s := NewStore(items, NewLocalFeed(), zap.NewNop(), WithResyncInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.Start(ctx))

	created, err := items.Insert(ctx, models.Item{Name: "Salt", Quantity: 1})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, ok := s.Latest().Find(created.ID)
		return ok
	}, waitFor, 5*time.Millisecond)
}
