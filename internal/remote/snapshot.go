package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/ibeloyar/taskmarket/pgk/retryablehttp"
	"go.uber.org/zap"
)

// SnapshotClient забирает полный набор коллекций с read-only
// снапшот-ресурса; это единственный "общий" вид между сессиями
type SnapshotClient struct {
	address string
	client  *retryablehttp.RetryableClient
	lg      *zap.SugaredLogger
}

func NewSnapshotClient(address string, config retryablehttp.RetryConfig, lg *zap.SugaredLogger) *SnapshotClient {
	return &SnapshotClient{
		address: address,
		client:  retryablehttp.NewRetryableClient(config),
		lg:      lg,
	}
}

func (c *SnapshotClient) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	var snapshot model.Snapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.address+"/api/snapshot", nil)
	if err != nil {
		return snapshot, err
	}

	response, err := c.client.Do(ctx, req)
	if err != nil {
		return snapshot, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return snapshot, fmt.Errorf("snapshot request failed: %s", http.StatusText(response.StatusCode))
	}

	if err := json.NewDecoder(response.Body).Decode(&snapshot); err != nil {
		return snapshot, fmt.Errorf("%w: %v", model.ErrSnapshotUnreadable, err)
	}

	return snapshot, nil
}
