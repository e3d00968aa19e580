package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter records the status code written by the downstream handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Logger returns middleware that logs each request with its method, path,
// response status, client address, and elapsed time.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			logger.Info(
				"request",
				"method", r.Method,
				"path", r.URL.RequestURI(),
				"status", sw.status,
				"addr", r.RemoteAddr,
				"elapsed", time.Since(start),
			)
		})
	}
}
