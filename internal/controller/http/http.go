package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ibeloyar/taskmarket/internal/lifecycle"
	"github.com/ibeloyar/taskmarket/internal/model"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, input lifecycle.CreateOrderInput) (model.Order, error)
	Dispatch(ctx context.Context, cmd model.Command) (model.Order, error)

	Orders() []model.Order
	Get(id string) (model.Order, bool)
	ByStatus(status model.OrderStatus) []model.Order
	ByPerformer(performerID string) []model.Order
	Counts() map[model.OrderStatus]int
	Earnings(performerID string) float64
}

// Snapshotter отдаёт полный набор коллекций: чужая сессия опрашивает его
// как свой удалённый снапшот-ресурс
type Snapshotter interface {
	Export() model.Snapshot
}

type Syncer interface {
	ForceSync(ctx context.Context) error
	Stopped() bool
}

type Controller struct {
	service     Service
	snapshotter Snapshotter
	syncer      Syncer // nil, если удалённый ресурс не настроен
	lg          *zap.SugaredLogger
}

func New(s Service, snapshotter Snapshotter, syncer Syncer, lg *zap.SugaredLogger) *Controller {
	return &Controller{
		service:     s,
		snapshotter: snapshotter,
		syncer:      syncer,
		lg:          lg,
	}
}

func (c *Controller) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[lifecycle.CreateOrderInput](r)
	if err != nil {
		c.lg.Errorf("failed to parse request body: %v", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := c.service.CreateOrder(r.Context(), body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, c.lg, order, http.StatusCreated)
}

func (c *Controller) DispatchAction(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[DispatchDTO](r)
	if err != nil {
		c.lg.Errorf("failed to parse request body: %v", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	cmd, err := decodeCommand(chi.URLParam(r, "id"), body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := c.service.Dispatch(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			http.Error(w, model.ErrOrderNotFoundMessage, http.StatusNotFound)
			return
		}
		if errors.Is(err, model.ErrInvalidTransition) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		c.lg.Errorf("dispatch failed: %v", err)
		http.Error(w, model.ErrInternalServerMessage, http.StatusInternalServerError)
		return
	}

	writeJSON(w, c.lg, order, http.StatusOK)
}

func (c *Controller) GetOrders(w http.ResponseWriter, r *http.Request) {
	var orders []model.Order

	switch {
	case r.URL.Query().Get("status") != "":
		status := model.OrderStatus(r.URL.Query().Get("status"))
		if !status.Valid() {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
		orders = c.service.ByStatus(status)
	case r.URL.Query().Get("performer") != "":
		orders = c.service.ByPerformer(r.URL.Query().Get("performer"))
	default:
		orders = c.service.Orders()
	}

	if len(orders) == 0 {
		http.Error(w, model.ErrOrdersNotFoundMessage, http.StatusNoContent)
		return
	}

	writeJSON(w, c.lg, orders, http.StatusOK)
}

func (c *Controller) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := c.service.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, model.ErrOrderNotFoundMessage, http.StatusNotFound)
		return
	}

	writeJSON(w, c.lg, order, http.StatusOK)
}

func (c *Controller) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.lg, c.service.Counts(), http.StatusOK)
}

func (c *Controller) GetEarnings(w http.ResponseWriter, r *http.Request) {
	performerID := chi.URLParam(r, "id")
	writeJSON(w, c.lg, EarningsDTO{
		PerformerID: performerID,
		Earnings:    c.service.Earnings(performerID),
	}, http.StatusOK)
}

// GetSnapshot - read-only ресурс для опроса другими сессиями
func (c *Controller) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.lg, c.snapshotter.Export(), http.StatusOK)
}

func (c *Controller) ForceSync(w http.ResponseWriter, r *http.Request) {
	if c.syncer == nil {
		http.Error(w, "remote snapshot resource is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := c.syncer.ForceSync(r.Context()); err != nil {
		c.lg.Errorf("force sync failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// SyncStatus отдаёт признак fail-stop фоновой синхронизации
func (c *Controller) SyncStatus(w http.ResponseWriter, r *http.Request) {
	if c.syncer == nil {
		http.Error(w, "remote snapshot resource is not configured", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, c.lg, SyncStatusDTO{Stopped: c.syncer.Stopped()}, http.StatusOK)
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
