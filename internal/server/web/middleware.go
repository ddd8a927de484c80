package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/shared"
)

const requestIDHeader = "X-Request-Id"

// requestIDMiddleware keeps a client-supplied X-Request-Id or generates one,
// and puts it in the request context for the logger.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			var err error
			if rid, err = shared.MakeRandHexString(16); err != nil {
				rid = time.Now().UTC().Format("20060102T150405.000000000")
			}
		}
		w.Header().Set(requestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), rid)))
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// loggingMiddleware writes one record per request.
func loggingMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r)

		logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"ms", time.Since(start).Milliseconds(),
			"bytes", lrw.size,
			"remote", r.RemoteAddr,
		)
	})
}

// recoverMiddleware turns a handler panic into a logged 500.
func recoverMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Error(r.Context(), "handler panic", "panic", p, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: true, Message: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
