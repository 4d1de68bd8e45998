package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func New() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.responseData.size += size
	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.responseData.status = statusCode
}

// LoggingMiddleware логирует каждый запрос: uri, метод, статус,
// длительность и размер ответа
func LoggingMiddleware(lg *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &loggingResponseWriter{
				ResponseWriter: w,
				responseData: &responseData{
					status: http.StatusOK,
					size:   0,
				},
			}

			next.ServeHTTP(rw, r)

			lg.Infof("request-> uri: %s, method: %s, status: %d, duration: %s, size: %d",
				r.RequestURI,
				r.Method,
				rw.responseData.status,
				time.Since(start),
				rw.responseData.size,
			)
		})
	}
}
