package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ibeloyar/taskmarket/internal/model"
)

// DispatchDTO - внешняя форма действия: имя плюс произвольный payload.
// Внутрь машины состояний уходит уже типизированная команда; незнакомое
// имя действия отбрасывается на границе транспорта.
type DispatchDTO struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SyncStatusDTO struct {
	Stopped bool `json:"stopped"`
}

type EarningsDTO struct {
	PerformerID string  `json:"performer_id"`
	Earnings    float64 `json:"earnings"`
}

// decodePayload парсит payload в конкретную команду и восстанавливает
// идентификатор заказа из пути (payload не имеет права его переопределить)
func decodePayload[T model.Command](payload json.RawMessage, set func(*T)) (model.Command, error) {
	var cmd T
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse action payload: %w", err)
	}
	set(&cmd)
	return cmd, nil
}

func decodeCommand(orderID string, dto DispatchDTO) (model.Command, error) {
	if orderID == "" {
		return nil, errors.New(model.ErrOrderNotFoundMessage)
	}

	payload := dto.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	switch dto.Action {
	case "pick":
		return decodePayload(payload, func(c *model.Pick) { c.OrderID = orderID })
	case "assign":
		return decodePayload(payload, func(c *model.Assign) { c.OrderID = orderID })
	case "make_available":
		return decodePayload(payload, func(c *model.MakeAvailable) { c.OrderID = orderID })
	case "start_work":
		return decodePayload(payload, func(c *model.StartWork) { c.OrderID = orderID })
	case "submit":
		return decodePayload(payload, func(c *model.Submit) { c.OrderID = orderID })
	case "approve":
		return decodePayload(payload, func(c *model.Approve) { c.OrderID = orderID })
	case "reject":
		return decodePayload(payload, func(c *model.Reject) { c.OrderID = orderID })
	case "request_revision":
		return decodePayload(payload, func(c *model.RequestRevision) { c.OrderID = orderID })
	case "resubmit":
		return decodePayload(payload, func(c *model.Resubmit) { c.OrderID = orderID })
	case "reassign":
		return decodePayload(payload, func(c *model.Reassign) { c.OrderID = orderID })
	case "put_on_hold":
		return decodePayload(payload, func(c *model.PutOnHold) { c.OrderID = orderID })
	case "mark_urgent":
		return decodePayload(payload, func(c *model.MarkUrgent) { c.OrderID = orderID })
	case "extend_deadline":
		return decodePayload(payload, func(c *model.ExtendDeadline) { c.OrderID = orderID })
	case "cancel":
		return decodePayload(payload, func(c *model.Cancel) { c.OrderID = orderID })
	case "complete":
		return decodePayload(payload, func(c *model.Complete) { c.OrderID = orderID })
	}

	return nil, fmt.Errorf("%s: %q", model.ErrUnknownActionMessage, dto.Action)
}
