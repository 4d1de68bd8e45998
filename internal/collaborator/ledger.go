package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ibeloyar/taskmarket/pgk/retryablehttp"
	"go.uber.org/zap"
)

// LedgerCollector отправляет начисления во внешний финансовый модуль.
// Вызывается по случаю: вызывающая сторона не ждёт результата, ошибка -
// это предупреждение в логе, не отказ перехода.
type LedgerCollector struct {
	address string
	client  *retryablehttp.RetryableClient
	lg      *zap.SugaredLogger
}

func NewLedgerCollector(address string, lg *zap.SugaredLogger) *LedgerCollector {
	return &LedgerCollector{
		address: address,
		client:  retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{}),
		lg:      lg,
	}
}

type ledgerEntry struct {
	OrderID     string  `json:"order_id"`
	PerformerID string  `json:"performer_id"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
}

func (c *LedgerCollector) CollectFine(ctx context.Context, orderID, performerID string, amount float64) error {
	return c.post(ctx, ledgerEntry{OrderID: orderID, PerformerID: performerID, Amount: amount, Kind: "fine"})
}

func (c *LedgerCollector) OrderCompleted(ctx context.Context, orderID, performerID string, amount float64) error {
	return c.post(ctx, ledgerEntry{OrderID: orderID, PerformerID: performerID, Amount: amount, Kind: "payout"})
}

func (c *LedgerCollector) post(ctx context.Context, entry ledgerEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address+"/api/ledger", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("ledger request failed: %s", http.StatusText(response.StatusCode))
	}
	return nil
}
