package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ibeloyar/taskmarket/internal/model"
	"go.uber.org/zap"
)

// Durable - долговременное локальное хранилище: один сериализованный
// набор коллекций на сессию
type Durable interface {
	Save(ctx context.Context, sets map[string][]model.Order) error
	Load(ctx context.Context) (map[string][]model.Order, error)
	Close() error
}

// Store владеет типизированными коллекциями заказов. Создаётся явно и
// передаётся потребителям, никаких process-wide синглтонов. Все мутации
// сериализуются через один мьютекс; запись в память происходит раньше
// обращения к durable-хранилищу, при ошибке записи состояние откатывается.
type Store struct {
	lg      *zap.SugaredLogger
	durable Durable

	mu         sync.Mutex
	sets       map[string][]model.Order
	subs       map[string][]func()
	lastSyncAt time.Time

	// kick - запрос немедленной синхронизации после локальной записи
	kick chan struct{}
}

func New(ctx context.Context, durable Durable, lg *zap.SugaredLogger) (*Store, error) {
	sets, err := durable.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	if sets == nil {
		sets = make(map[string][]model.Order)
	}

	return &Store{
		lg:      lg,
		durable: durable,
		sets:    sets,
		subs:    make(map[string][]func()),
		kick:    make(chan struct{}, 1),
	}, nil
}

// Subscribe регистрирует колбэк на изменения коллекции. Гарантируется
// как минимум один вызов после каждой принятой локальной записи и после
// каждого принятого слияния; порядок и exactly-once не гарантируются.
func (s *Store) Subscribe(collection string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[collection] = append(s.subs[collection], fn)
}

func (s *Store) Find(ctx context.Context, collection string, match func(model.Order) bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.Order, 0)
	for _, o := range s.sets[collection] {
		if match == nil || match(o) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, match func(model.Order) bool) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.sets[collection] {
		if match == nil || match(o) {
			found := o
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) FindByID(ctx context.Context, collection, id string) (*model.Order, error) {
	return s.FindOne(ctx, collection, func(o model.Order) bool { return o.ID == id })
}

// Create добавляет запись, синхронно сохраняет набор коллекций локально
// и планирует (не дожидаясь) попытку удалённой сверки.
func (s *Store) Create(ctx context.Context, collection string, order model.Order) (model.Order, error) {
	s.mu.Lock()

	order.SyncState = model.SyncStateLocal
	s.sets[collection] = append(s.sets[collection], order)

	if err := s.persistLocked(ctx); err != nil {
		// откат оптимистичной вставки
		s.sets[collection] = s.sets[collection][:len(s.sets[collection])-1]
		s.mu.Unlock()
		return model.Order{}, fmt.Errorf("persist %s: %w", collection, err)
	}
	s.mu.Unlock()

	s.scheduleSync()
	s.notify(collection)
	return order, nil
}

// Update заменяет запись целиком. Отсутствующий идентификатор - это
// model.ErrOrderNotFound, а не тихий no-op.
func (s *Store) Update(ctx context.Context, collection string, order model.Order) (*model.Order, error) {
	s.mu.Lock()

	list := s.sets[collection]
	idx := -1
	for i, o := range list {
		if o.ID == order.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, model.ErrOrderNotFound
	}

	prev := list[idx]
	order.SyncState = model.SyncStateLocal
	list[idx] = order

	if err := s.persistLocked(ctx); err != nil {
		list[idx] = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("persist %s: %w", collection, err)
	}
	s.mu.Unlock()

	s.scheduleSync()
	s.notify(collection)
	return &order, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()

	list := s.sets[collection]
	idx := -1
	for i, o := range list {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.ErrOrderNotFound
	}

	prev := append([]model.Order(nil), list...)
	s.sets[collection] = append(list[:idx:idx], list[idx+1:]...)

	if err := s.persistLocked(ctx); err != nil {
		s.sets[collection] = prev
		s.mu.Unlock()
		return fmt.Errorf("persist %s: %w", collection, err)
	}
	s.mu.Unlock()

	s.scheduleSync()
	s.notify(collection)
	return nil
}

// LastSyncAt - время последнего принятого слияния с удалённым снапшотом
func (s *Store) LastSyncAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncAt
}

// Export - полная копия набора коллекций, в том виде, в каком её отдаёт
// read-only снапшот-ресурс
func (s *Store) Export() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	collections := make(map[string][]model.Order, len(s.sets))
	for name, list := range s.sets {
		collections[name] = append([]model.Order(nil), list...)
	}
	return model.Snapshot{
		Collections: collections,
		ExportedAt:  time.Now(),
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	return s.durable.Save(ctx, s.sets)
}

func (s *Store) scheduleSync() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// notify вызывает подписчиков вне блокировки: колбэк имеет право
// обратиться к Store повторно
func (s *Store) notify(collections ...string) {
	s.mu.Lock()
	var fns []func()
	for _, c := range collections {
		fns = append(fns, s.subs[c]...)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) notifyAll() {
	s.mu.Lock()
	var fns []func()
	for _, subs := range s.subs {
		fns = append(fns, subs...)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) Close() error {
	return s.durable.Close()
}
