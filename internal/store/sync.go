package store

import (
	"context"
	"sync"
	"time"

	"github.com/ibeloyar/taskmarket/internal/model"
	"go.uber.org/zap"
)

// Fetcher - источник удалённого снапшота (read-only, только polling)
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (model.Snapshot, error)
}

// Gate сообщает, видима ли потребляющая поверхность; пока она скрыта,
// фоновая сверка пропускается
type Gate interface {
	Visible() bool
}

type AlwaysVisible struct{}

func (AlwaysVisible) Visible() bool { return true }

const (
	DefaultSyncInterval = 3 * time.Second
	DefaultRetryBase    = 1 * time.Second
	DefaultRetryMax     = 30 * time.Second
	DefaultMaxFailures  = 5
)

type PollerConfig struct {
	Interval    time.Duration
	RetryBase   time.Duration
	RetryMax    time.Duration
	MaxFailures int
	Gate        Gate
}

// Poller - фоновый цикл сверки: с фиксированным интервалом забирает
// удалённый снапшот и применяет его к Store. Ошибки fetch повторяются с
// экспоненциально растущей задержкой; после MaxFailures подряд цикл
// останавливается насовсем - дальше сверка только через ForceSync.
type Poller struct {
	lg      *zap.SugaredLogger
	store   *Store
	fetcher Fetcher
	config  PollerConfig

	mu       sync.Mutex
	failures int
	stopped  bool
}

func NewPoller(s *Store, f Fetcher, config PollerConfig, lg *zap.SugaredLogger) *Poller {
	if config.Interval == 0 {
		config.Interval = DefaultSyncInterval
	}
	if config.RetryBase == 0 {
		config.RetryBase = DefaultRetryBase
	}
	if config.RetryMax == 0 {
		config.RetryMax = DefaultRetryMax
	}
	if config.MaxFailures == 0 {
		config.MaxFailures = DefaultMaxFailures
	}
	if config.Gate == nil {
		config.Gate = AlwaysVisible{}
	}

	return &Poller{
		lg:      lg,
		store:   s,
		fetcher: f,
		config:  config,
	}
}

// Run крутит цикл до отмены контекста или исчерпания бюджета ошибок.
// Локальная запись в Store будит цикл немедленно, не дожидаясь тика.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(p.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.store.kick:
		case <-timer.C:
		}

		if p.Stopped() {
			return
		}

		if !p.config.Gate.Visible() {
			// пока поверхность скрыта, перепроверяем видимость чаще
			// интервала: первая итерация после возврата сверяется сразу
			timer.Reset(p.config.RetryBase)
			continue
		}

		delay := p.config.Interval
		if err := p.syncOnce(ctx); err != nil {
			if stopped, failures := p.recordFailure(); stopped {
				p.lg.Warnf("background sync stopped after %d consecutive failures: %v", failures, err)
				return
			} else {
				delay = p.backoffDelay(failures)
				p.lg.Warnf("snapshot fetch failed (attempt %d), retry in %s: %v", failures, delay, err)
			}
		} else {
			p.resetFailures(false)
		}

		timer.Reset(delay)
	}
}

// ForceSync - явная разовая сверка; работает и после остановки цикла и
// сбрасывает счётчик ошибок
func (p *Poller) ForceSync(ctx context.Context) error {
	if err := p.syncOnce(ctx); err != nil {
		return err
	}
	p.resetFailures(true)
	return nil
}

func (p *Poller) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Poller) recordFailure() (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures++
	if p.failures >= p.config.MaxFailures {
		p.stopped = true
	}
	return p.stopped, p.failures
}

func (p *Poller) resetFailures(clearStopped bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures = 0
	if clearStopped {
		p.stopped = false
	}
}

func (p *Poller) syncOnce(ctx context.Context) error {
	snapshot, err := p.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return err
	}

	merged, err := p.store.ApplySnapshot(ctx, snapshot)
	if err != nil {
		return err
	}
	if merged {
		p.lg.Infof("remote snapshot merged, last sync %s", p.store.LastSyncAt().Format(time.RFC3339))
	}
	return nil
}

func (p *Poller) backoffDelay(failures int) time.Duration {
	delay := p.config.RetryBase << uint(failures-1)
	if delay > p.config.RetryMax {
		delay = p.config.RetryMax
	}
	return delay
}

// ApplySnapshot применяет удалённый снапшот к локальным коллекциям.
// Слияние, а не перезапись: локально известные записи, которых нет в
// снапшоте, сохраняются даже ценой устаревания. Возвращает true, если
// хоть одна коллекция изменилась; идентичный снапшот не приводит ни к
// записи, ни к уведомлениям.
func (s *Store) ApplySnapshot(ctx context.Context, snapshot model.Snapshot) (bool, error) {
	s.mu.Lock()

	changed := false
	prev := make(map[string][]model.Order, len(s.sets))
	for name, incoming := range snapshot.Collections {
		local := s.sets[name]
		if !significantChange(local, incoming) {
			continue
		}
		prev[name] = local
		s.sets[name] = mergeCollections(local, incoming)
		changed = true
	}

	if !changed {
		s.mu.Unlock()
		return false, nil
	}

	if err := s.persistLocked(ctx); err != nil {
		for name, list := range prev {
			s.sets[name] = list
		}
		s.mu.Unlock()
		return false, err
	}
	s.lastSyncAt = time.Now()
	s.mu.Unlock()

	s.notifyAll()
	return true, nil
}

// significantChange решает, стоит ли вообще принимать входящий снапшот.
// Если локальная коллекция длиннее - локальное состояние считается более
// свежим и снапшот пропускается целиком. Дальше сравниваются количество
// доступных заказов и статус/назначение по идентификатору (не по
// позиции: переупорядочивание само по себе изменением не считается).
func significantChange(local, incoming []model.Order) bool {
	if len(local) > len(incoming) {
		return false
	}

	if availableCount(local) != availableCount(incoming) {
		return true
	}

	byID := make(map[string]model.Order, len(local))
	for _, o := range local {
		byID[o.ID] = o
	}

	for _, in := range incoming {
		known, ok := byID[in.ID]
		if !ok {
			return true
		}
		if known.Status != in.Status || known.PerformerID != in.PerformerID {
			return true
		}
	}

	return false
}

func availableCount(orders []model.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == model.OrderStatusAvailable {
			n++
		}
	}
	return n
}

// mergeCollections строит результат от входящего снапшота и возвращает в
// него локально известные записи, отсутствующие удалённо
func mergeCollections(local, incoming []model.Order) []model.Order {
	merged := make([]model.Order, 0, len(incoming)+len(local))
	seen := make(map[string]struct{}, len(incoming))

	for _, o := range incoming {
		o.SyncState = model.SyncStateConfirmed
		merged = append(merged, o)
		seen[o.ID] = struct{}{}
	}

	for _, o := range local {
		if _, ok := seen[o.ID]; !ok {
			merged = append(merged, o)
		}
	}

	return merged
}
