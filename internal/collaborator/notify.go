package collaborator

import (
	"context"

	"github.com/ibeloyar/taskmarket/internal/lifecycle"
	"github.com/ibeloyar/taskmarket/internal/model"
	"go.uber.org/zap"
)

// LogNotifier - заглушка транспорта уведомлений: события переходов
// просто пишутся в лог. Настоящая доставка (мессенджер, почта) живёт в
// своём модуле и подписывается на те же события.
type LogNotifier struct {
	lg *zap.SugaredLogger
}

func NewLogNotifier(lg *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

func (n *LogNotifier) Notify(ctx context.Context, event lifecycle.Event, order model.Order) error {
	n.lg.Infow("order event",
		"event", string(event),
		"order_id", order.ID,
		"status", string(order.Status),
		"performer_id", order.PerformerID,
	)
	return nil
}
