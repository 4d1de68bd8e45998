package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/ibeloyar/taskmarket/internal/store"
	"go.uber.org/zap"
)

// Collector - финансовый коллаборатор; вызывается по случаю (не
// дожидаясь) при начислении штрафа и при завершении заказа
type Collector interface {
	CollectFine(ctx context.Context, orderID, performerID string, amount float64) error
	OrderCompleted(ctx context.Context, orderID, performerID string, amount float64) error
}

type Event string

const (
	EventWorkStarted Event = "work_started"
	EventSubmitted   Event = "submitted"
	EventCompleted   Event = "completed"
	EventReassigned  Event = "reassigned"
)

// Notifier оповещает другие роли о выбранных переходах; fire-and-forget,
// ошибки логируются и никогда не пробрасываются
type Notifier interface {
	Notify(ctx context.Context, event Event, order model.Order) error
}

type effect func(ctx context.Context)

// Machine держит авторитетную in-memory коллекцию заказов (источник -
// Store) и применяет действия через единственную точку входа Dispatch.
// Каждый переход - атомарная замена записи заказа: новый объект
// собирается из старого, частичных мутаций не бывает.
type Machine struct {
	lg        *zap.SugaredLogger
	store     *store.Store
	collector Collector
	notifier  Notifier

	// strict: незнакомый заказ и нарушенное предусловие - это ошибка;
	// иначе воспроизводится историческое поведение "тихо проштамповать
	// updatedAt и ничего не сделать"
	strict bool

	mu     sync.Mutex
	orders []model.Order
	subs   []func()

	now   func() time.Time
	async func(func())
}

func New(ctx context.Context, s *store.Store, collector Collector, notifier Notifier, strict bool, lg *zap.SugaredLogger) *Machine {
	m := &Machine{
		lg:        lg,
		store:     s,
		collector: collector,
		notifier:  notifier,
		strict:    strict,
		now:       time.Now,
		async:     func(f func()) { go f() },
	}

	m.reload(ctx)

	// после любого принятого слияния или локальной записи перечитываем
	// коллекцию целиком и переиздаём производные представления
	s.Subscribe(model.CollectionOrders, func() {
		m.reload(context.Background())
		m.publish()
	})

	return m
}

// Subscribe регистрирует зависимого потребителя производных представлений
func (m *Machine) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

type CreateOrderInput struct {
	Title    string     `json:"title"`
	Pages    int        `json:"pages"`
	PageRate float64    `json:"page_rate"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// CreateOrder создаёт заказ в статусе Available без исполнителя
func (m *Machine) CreateOrder(ctx context.Context, input CreateOrderInput) (model.Order, error) {
	if input.Title == "" {
		return model.Order{}, errors.New(model.ErrOrderTitleRequiredMessage)
	}
	if input.Pages <= 0 {
		return model.Order{}, errors.New(model.ErrOrderPagesRequiredMessage)
	}

	now := m.now()
	order := model.Order{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Status:    model.OrderStatusAvailable,
		Pages:     input.Pages,
		PageRate:  input.PageRate,
		Deadline:  input.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Message != "" {
		order.Messages = []model.ClientMessage{{From: "client", Text: input.Message, SentAt: now}}
	}

	return m.store.Create(ctx, model.CollectionOrders, order)
}

// Dispatch - единственная точка входа для мутаций заказа. Сначала
// оптимистичная замена в памяти, затем синхронная запись в Store;
// неудачная запись откатывает замену, временные сбои I/O наружу не
// выходят - отсутствие изменения и есть сигнал.
func (m *Machine) Dispatch(ctx context.Context, cmd model.Command) (model.Order, error) {
	m.mu.Lock()

	idx := -1
	for i, o := range m.orders {
		if o.ID == cmd.Order() {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		if m.strict {
			return model.Order{}, fmt.Errorf("dispatch %T: %w", cmd, model.ErrOrderNotFound)
		}
		m.lg.Warnf("dispatch %T: order %s not found, ignored", cmd, cmd.Order())
		return model.Order{}, nil
	}

	current := m.orders[idx]
	next, effects, err := m.transition(current, cmd)
	if err != nil {
		m.mu.Unlock()
		return model.Order{}, err
	}

	m.orders[idx] = next
	m.mu.Unlock()

	if _, err := m.store.Update(ctx, model.CollectionOrders, next); err != nil {
		m.revert(current)
		if m.strict && errors.Is(err, model.ErrOrderNotFound) {
			return model.Order{}, err
		}
		m.lg.Warnf("dispatch %T: persist failed, in-memory state reverted: %v", cmd, err)
		return current, nil
	}

	for _, fx := range effects {
		fx := fx
		m.async(func() { fx(context.Background()) })
	}

	return next, nil
}

// revert возвращает запись к снимку до мутации
func (m *Machine) revert(prev model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.orders {
		if o.ID == prev.ID {
			m.orders[i] = prev
			return
		}
	}
}

func (m *Machine) reload(ctx context.Context) {
	orders, err := m.store.Find(ctx, model.CollectionOrders, nil)
	if err != nil {
		m.lg.Warnf("reload orders: %v", err)
		return
	}

	m.mu.Lock()
	m.orders = orders
	m.mu.Unlock()
}

func (m *Machine) publish() {
	m.mu.Lock()
	subs := make([]func(), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// guard проверяет предусловие перехода. В strict-режиме нарушение - это
// ErrInvalidTransition; иначе команда превращается в no-op по статусу
func (m *Machine) guard(o model.Order, cmd model.Command, allowed ...model.OrderStatus) (bool, error) {
	for _, s := range allowed {
		if o.Status == s {
			return true, nil
		}
	}
	if m.strict {
		return false, fmt.Errorf("%w: %T from %s", model.ErrInvalidTransition, cmd, o.Status)
	}
	return false, nil
}

func (m *Machine) transition(o model.Order, cmd model.Command) (model.Order, []effect, error) {
	now := m.now()
	o.UpdatedAt = now

	var effects []effect

	switch c := cmd.(type) {
	case model.Pick:
		ok, err := m.guard(o, cmd, model.OrderStatusAvailable)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusAssigned
		o.PerformerID = c.PerformerID
		o.PerformerName = c.PerformerName
		o.AssignedAt = &now

	case model.Assign:
		ok, err := m.guard(o, cmd, model.OrderStatusAvailable)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusAssigned
		o.PerformerID = c.PerformerID
		o.PerformerName = c.PerformerName
		o.AssignedAt = &now
		o.Priority = c.Priority
		o.Notes = c.Notes
		o.ConfirmationRequired = c.ConfirmationRequired
		if c.Deadline != nil {
			o.Deadline = c.Deadline
		}

	case model.MakeAvailable:
		if o.PerformerID == "" {
			if m.strict {
				return o, nil, fmt.Errorf("%w: %T without performer", model.ErrInvalidTransition, cmd)
			}
			return o, nil, nil
		}
		o.PreviousPerformerID = o.PerformerID
		o.ReassignReason = c.Reason
		o.ReassignedBy = c.Actor
		o.ReassignedAt = &now
		o = clearPerformer(o)
		o.Status = model.OrderStatusAvailable

	case model.StartWork:
		ok, err := m.guard(o, cmd, model.OrderStatusAssigned)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusInProgress
		o.StartedAt = &now
		o.ETA = c.ETA
		if len(c.Questions) > 0 {
			questions := append([]model.Question(nil), o.Questions...)
			for _, q := range c.Questions {
				questions = append(questions, model.Question{
					ID:      uuid.NewString(),
					Text:    q,
					AskedAt: now,
				})
			}
			o.Questions = questions
		}
		effects = append(effects, m.notifyEffect(EventWorkStarted, o))

	case model.Submit:
		ok, err := m.guard(o, cmd, model.OrderStatusInProgress, model.OrderStatusRevision)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusSubmitted
		o.SubmittedAt = &now
		o.SubmissionNotes = c.Notes
		o.Files = appendFiles(o.Files, c.Files, now)
		effects = append(effects, m.notifyEffect(EventSubmitted, o))

	case model.Approve:
		ok, err := m.guard(o, cmd, model.OrderStatusSubmitted, model.OrderStatusResubmitted)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusCompleted
		o.ReviewedAt = &now
		o.ReviewedBy = c.Reviewer
		o.CompletedAt = &now
		o.ApprovedAt = &now
		effects = append(effects,
			m.completeEffect(o.ID, o.PerformerID, o.Total()-o.FineAmount),
			m.notifyEffect(EventCompleted, o),
		)

	case model.Reject:
		ok, err := m.guard(o, cmd, model.OrderStatusSubmitted, model.OrderStatusResubmitted)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusRejected
		o.ReviewedAt = &now
		o.ReviewedBy = c.Reviewer
		o.ReviewNotes = c.Reason
		amount := applyFine(&o, model.FineTypeRejection, c.Reason, now)
		effects = append(effects, m.fineEffect(o.ID, o.PerformerID, amount))

	case model.RequestRevision:
		ok, err := m.guard(o, cmd, model.OrderStatusSubmitted, model.OrderStatusResubmitted)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusRevision
		o.ReviewedAt = &now
		o.ReviewedBy = c.Reviewer
		o.ReviewNotes = c.Notes

	case model.Resubmit:
		ok, err := m.guard(o, cmd, model.OrderStatusRevision)
		if err != nil || !ok {
			return o, nil, err
		}
		o.Status = model.OrderStatusResubmitted
		o.SubmittedAt = &now
		o.RevisionRespondedAt = &now
		o.Files = appendFiles(o.Files, c.Files, now)

	case model.Reassign:
		if o.PerformerID == "" {
			if m.strict {
				return o, nil, fmt.Errorf("%w: %T without performer", model.ErrInvalidTransition, cmd)
			}
			return o, nil, nil
		}
		o.PreviousPerformerID = o.PerformerID
		o.ReassignReason = c.Reason
		o.ReassignedBy = c.Actor
		o.ReassignedAt = &now
		if c.Late {
			// снятие за просрочку - штраф прежнему исполнителю
			amount := applyFine(&o, model.FineTypeAutoReassignment, c.Reason, now)
			effects = append(effects, m.fineEffect(o.ID, o.PreviousPerformerID, amount))
		}
		o = clearPerformer(o)
		o.Status = model.OrderStatusAvailable
		effects = append(effects, m.notifyEffect(EventReassigned, o))

	case model.PutOnHold:
		o.Status = model.OrderStatusOnHold
		o.HoldAt = &now
		o.HoldBy = c.Actor
		o.HoldReason = c.Reason

	case model.MarkUrgent:
		// только аннотация, статус не меняется
		o.Urgent = true
		o.UrgentAt = &now
		o.UrgentBy = c.Actor

	case model.ExtendDeadline:
		if o.OriginalDeadline == nil && o.Deadline != nil {
			original := *o.Deadline
			o.OriginalDeadline = &original
		}
		deadline := c.NewDeadline
		o.Deadline = &deadline
		o.DeadlineActor = c.Actor
		o.DeadlineReason = c.Reason

	case model.Cancel:
		o.Status = model.OrderStatusCancelled

	case model.Complete:
		o.Status = model.OrderStatusCompleted
		o.CompletedAt = &now
	}

	return o, effects, nil
}

// applyFine добавляет запись в историю штрафов; штраф всегда прибавляется
// к прежним, никогда не замещает их
func applyFine(o *model.Order, fineType model.FineType, reason string, now time.Time) float64 {
	amount := o.Total() * model.FineRate
	entry := model.FineEntry{
		Amount:    amount,
		Reason:    reason,
		Type:      fineType,
		AppliedAt: now,
	}
	o.FineHistory = append(append([]model.FineEntry(nil), o.FineHistory...), entry)
	o.FineAmount += amount
	return amount
}

func clearPerformer(o model.Order) model.Order {
	o.PerformerID = ""
	o.PerformerName = ""
	o.AssignedAt = nil
	o.StartedAt = nil
	o.ETA = nil
	return o
}

func appendFiles(files, extra []model.FileRef, now time.Time) []model.FileRef {
	if len(extra) == 0 {
		return files
	}
	result := append([]model.FileRef(nil), files...)
	for _, f := range extra {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.UploadedAt.IsZero() {
			f.UploadedAt = now
		}
		result = append(result, f)
	}
	return result
}

func (m *Machine) fineEffect(orderID, performerID string, amount float64) effect {
	return func(ctx context.Context) {
		if m.collector == nil {
			return
		}
		if err := m.collector.CollectFine(ctx, orderID, performerID, amount); err != nil {
			m.lg.Warnf("fine collector failed for order %s: %v", orderID, err)
		}
	}
}

func (m *Machine) completeEffect(orderID, performerID string, amount float64) effect {
	return func(ctx context.Context) {
		if m.collector == nil {
			return
		}
		if err := m.collector.OrderCompleted(ctx, orderID, performerID, amount); err != nil {
			m.lg.Warnf("completion collector failed for order %s: %v", orderID, err)
		}
	}
}

func (m *Machine) notifyEffect(event Event, order model.Order) effect {
	return func(ctx context.Context) {
		if m.notifier == nil {
			return
		}
		if err := m.notifier.Notify(ctx, event, order); err != nil {
			m.lg.Warnf("notify %s for order %s: %v", event, order.ID, err)
		}
	}
}
