package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/ibeloyar/taskmarket/pgk/retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(address string) *SnapshotClient {
	return NewSnapshotClient(address, retryablehttp.RetryConfig{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		MaxJitter:  time.Millisecond,
	}, zap.NewNop().Sugar())
}

func TestSnapshotClient_FetchSnapshot(t *testing.T) {
	exportedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/snapshot", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"collections": {
				"orders": [
					{"id": "o1", "title": "essay", "status": "AVAILABLE", "pages": 3, "page_rate": 100},
					{"id": "o2", "title": "thesis", "status": "ASSIGNED", "performer_id": "w1"}
				]
			},
			"exported_at": "2025-06-01T12:00:00Z"
		}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).FetchSnapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, snapshot.Collections[model.CollectionOrders], 2)
	assert.Equal(t, "o1", snapshot.Collections[model.CollectionOrders][0].ID)
	assert.Equal(t, model.OrderStatusAssigned, snapshot.Collections[model.CollectionOrders][1].Status)
	assert.Equal(t, exportedAt, snapshot.ExportedAt)
}

func TestSnapshotClient_FetchSnapshot_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot request failed")
}

func TestSnapshotClient_FetchSnapshot_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"collections": broken`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchSnapshot(context.Background())

	assert.ErrorIs(t, err, model.ErrSnapshotUnreadable)
}

func TestSnapshotClient_FetchSnapshot_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).FetchSnapshot(context.Background())

	assert.Error(t, err)
}
