package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	snapshot model.Snapshot
	err      error
	calls    int
}

func (f *fakeFetcher) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func ordersSnapshot(orders ...model.Order) model.Snapshot {
	return model.Snapshot{
		Collections: map[string][]model.Order{model.CollectionOrders: orders},
	}
}

func seedOrders(t *testing.T, s *Store, orders ...model.Order) {
	t.Helper()
	for _, o := range orders {
		_, err := s.Create(context.Background(), model.CollectionOrders, o)
		require.NoError(t, err)
	}
}

func TestApplySnapshot_IdenticalSnapshotIsNoOp(t *testing.T) {
	s := newTestStore(t, newMemDurable())
	seedOrders(t, s,
		model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable},
		model.Order{ID: "ORD-2", Status: model.OrderStatusAssigned, PerformerID: "w1"},
	)

	before, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)

	notified := 0
	s.Subscribe(model.CollectionOrders, func() { notified++ })

	changed, err := s.ApplySnapshot(context.Background(), ordersSnapshot(before...))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, notified)

	after, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplySnapshot_LocalHasMoreRecords_Skipped(t *testing.T) {
	// локально 5 заказов, удалённо 4: локальное состояние считается
	// более свежим, локально известный заказ не теряется
	s := newTestStore(t, newMemDurable())

	var local []model.Order
	for i := 1; i <= 5; i++ {
		local = append(local, model.Order{
			ID:     fmt.Sprintf("ORD-%d", i),
			Status: model.OrderStatusAvailable,
		})
	}
	seedOrders(t, s, local...)

	changed, err := s.ApplySnapshot(context.Background(), ordersSnapshot(local[:4]...))
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Len(t, after, 5)

	ids := make(map[string]struct{})
	for _, o := range after {
		ids[o.ID] = struct{}{}
	}
	assert.Contains(t, ids, "ORD-5")
}

func TestApplySnapshot_StatusChangeIsSignificant(t *testing.T) {
	s := newTestStore(t, newMemDurable())
	seedOrders(t, s, model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable})

	notified := 0
	s.Subscribe(model.CollectionOrders, func() { notified++ })

	changed, err := s.ApplySnapshot(context.Background(), ordersSnapshot(
		model.Order{ID: "ORD-1", Status: model.OrderStatusAssigned, PerformerID: "w1"},
	))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, notified)

	found, err := s.FindByID(context.Background(), model.CollectionOrders, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAssigned, found.Status)
	assert.Equal(t, model.SyncStateConfirmed, found.SyncState)
	assert.False(t, s.LastSyncAt().IsZero())
}

func TestApplySnapshot_NewRemoteOrderIsMergedIn(t *testing.T) {
	s := newTestStore(t, newMemDurable())
	seedOrders(t, s, model.Order{ID: "ORD-1", Status: model.OrderStatusAssigned, PerformerID: "w1"})

	changed, err := s.ApplySnapshot(context.Background(), ordersSnapshot(
		model.Order{ID: "ORD-1", Status: model.OrderStatusAssigned, PerformerID: "w1"},
		model.Order{ID: "ORD-2", Status: model.OrderStatusAvailable},
	))
	require.NoError(t, err)
	assert.True(t, changed)

	after, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestApplySnapshot_ReorderingAloneIsNotSignificant(t *testing.T) {
	// сравнение идёт по идентификатору, а не по позиции
	s := newTestStore(t, newMemDurable())
	seedOrders(t, s,
		model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable},
		model.Order{ID: "ORD-2", Status: model.OrderStatusAssigned, PerformerID: "w1"},
	)

	changed, err := s.ApplySnapshot(context.Background(), ordersSnapshot(
		model.Order{ID: "ORD-2", Status: model.OrderStatusAssigned, PerformerID: "w1"},
		model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable},
	))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSignificantChange_AvailableCountDiffers(t *testing.T) {
	local := []model.Order{
		{ID: "ORD-1", Status: model.OrderStatusAssigned, PerformerID: "w1"},
	}
	incoming := []model.Order{
		{ID: "ORD-1", Status: model.OrderStatusAvailable},
	}

	assert.True(t, significantChange(local, incoming))
}

func TestPoller_FailStopThenForceSync(t *testing.T) {
	// пять подряд неудачных fetch останавливают цикл насовсем;
	// явный ForceSync после этого всё ещё сливает снапшот
	s := newTestStore(t, newMemDurable())
	fetcher := &fakeFetcher{err: errors.New("remote down")}

	p := NewPoller(s, fetcher, PollerConfig{
		Interval:    time.Millisecond,
		RetryBase:   time.Millisecond,
		RetryMax:    2 * time.Millisecond,
		MaxFailures: 5,
	}, zap.NewNop().Sugar())

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after failure budget")
	}

	assert.True(t, p.Stopped())
	assert.Equal(t, 5, fetcher.calls)

	fetcher.err = nil
	fetcher.snapshot = ordersSnapshot(model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable})

	require.NoError(t, p.ForceSync(context.Background()))
	assert.False(t, p.Stopped())

	after, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

type toggleGate struct {
	mu      sync.Mutex
	visible bool
}

func (g *toggleGate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

func (g *toggleGate) set(v bool) {
	g.mu.Lock()
	g.visible = v
	g.mu.Unlock()
}

type countingFetcher struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	calls    int
}

func (f *countingFetcher) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snapshot, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPoller_HiddenGateDefersSyncUntilVisible(t *testing.T) {
	// пока поверхность скрыта, fetch не вызывается вовсе; после
	// возврата видимости сверка происходит сразу, без ожидания
	// полного интервала
	s := newTestStore(t, newMemDurable())
	fetcher := &countingFetcher{
		snapshot: ordersSnapshot(model.Order{ID: "ORD-1", Status: model.OrderStatusAvailable}),
	}
	gate := &toggleGate{}

	p := NewPoller(s, fetcher, PollerConfig{
		Interval:    300 * time.Millisecond,
		RetryBase:   time.Millisecond,
		RetryMax:    2 * time.Millisecond,
		MaxFailures: 5,
		Gate:        gate,
	}, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 0, fetcher.count())

	gate.set(true)

	// 150ms заметно меньше интервала в 300ms
	require.Eventually(t, func() bool { return fetcher.count() > 0 },
		150*time.Millisecond, time.Millisecond)

	after, err := s.Find(context.Background(), model.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestPoller_ForceSyncPropagatesFetchError(t *testing.T) {
	s := newTestStore(t, newMemDurable())
	fetcher := &fakeFetcher{err: errors.New("remote down")}

	p := NewPoller(s, fetcher, PollerConfig{}, zap.NewNop().Sugar())
	assert.Error(t, p.ForceSync(context.Background()))
}

func TestPoller_BackoffDoublesAndCaps(t *testing.T) {
	p := NewPoller(nil, nil, PollerConfig{
		RetryBase: time.Second,
		RetryMax:  10 * time.Second,
	}, zap.NewNop().Sugar())

	assert.Equal(t, time.Second, p.backoffDelay(1))
	assert.Equal(t, 2*time.Second, p.backoffDelay(2))
	assert.Equal(t, 4*time.Second, p.backoffDelay(3))
	assert.Equal(t, 10*time.Second, p.backoffDelay(6))
}
