package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Valid(t *testing.T) {
	logger, err := New()

	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("taskmarket logger up")
}

// captureLogger пишет в буфер вместо консоли
func captureLogger(buf *bytes.Buffer) *zap.SugaredLogger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar()
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	middleware := LoggingMiddleware(captureLogger(&buf))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ORD-1"}`))
	}))

	req := httptest.NewRequest("POST", "/api/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `{"id":"ORD-1"}`, w.Body.String())

	logOutput := buf.String()
	assert.Contains(t, logOutput, "request->")
	assert.Contains(t, logOutput, "uri: /api/orders")
	assert.Contains(t, logOutput, "method: POST")
	assert.Contains(t, logOutput, "status: 201")
	assert.Contains(t, logOutput, "size: 14")
}

func TestLoggingMiddleware_ImplicitOK(t *testing.T) {
	// без явного WriteHeader статус остаётся 200
	var buf bytes.Buffer
	middleware := LoggingMiddleware(captureLogger(&buf))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "uri: /ping")
	assert.Contains(t, logOutput, "status: 200")
	assert.Contains(t, logOutput, "size: 4")
}

func TestLoggingMiddleware_EmptyBody(t *testing.T) {
	var buf bytes.Buffer
	middleware := LoggingMiddleware(captureLogger(&buf))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/api/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "status: 204")
	assert.Contains(t, logOutput, "size: 0")
}

func TestLoggingMiddleware_ChunkedBody(t *testing.T) {
	// размер суммируется по всем вызовам Write
	var buf bytes.Buffer
	middleware := LoggingMiddleware(captureLogger(&buf))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders":`))
		w.Write([]byte(`[]}`))
	}))

	req := httptest.NewRequest("GET", "/api/snapshot", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, `{"orders":[]}`, w.Body.String())

	logOutput := buf.String()
	assert.Contains(t, logOutput, "size: 13")
}

func TestLoggingResponseWriter_Write(t *testing.T) {
	recorder := httptest.NewRecorder()
	rw := &loggingResponseWriter{
		ResponseWriter: recorder,
		responseData: &responseData{
			status: http.StatusOK,
			size:   0,
		},
	}

	size, err := rw.Write([]byte("accepted"))

	assert.NoError(t, err)
	assert.Equal(t, 8, size)
	assert.Equal(t, 8, rw.responseData.size)
	assert.Equal(t, "accepted", recorder.Body.String())
}

func TestLoggingResponseWriter_WriteHeader(t *testing.T) {
	recorder := httptest.NewRecorder()
	rw := &loggingResponseWriter{
		ResponseWriter: recorder,
		responseData: &responseData{
			status: http.StatusOK,
			size:   0,
		},
	}

	rw.WriteHeader(http.StatusConflict)

	assert.Equal(t, http.StatusConflict, rw.responseData.status)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestLoggingMiddleware_SlowHandler(t *testing.T) {
	var buf bytes.Buffer
	middleware := LoggingMiddleware(captureLogger(&buf))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/sync", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "duration:")
}
