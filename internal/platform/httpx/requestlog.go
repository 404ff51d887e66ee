package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type logEntryKey struct{}

// logEntry collects what handlers learn about a request until it is logged.
type logEntry struct {
	mu        sync.Mutex
	attrs     []slog.Attr
	err       error
	clientErr *ClientError
}

// RequestLog writes one structured line per request once the handler chain
// returns. Handlers enrich it with AddAttrs. Requests that ended in an error
// are logged at warn level, server errors at error level.
func RequestLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &logEntry{}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logEntryKey{}, entry)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []slog.Attr{
				slog.String("req_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}

			entry.mu.Lock()
			attrs = append(attrs, entry.attrs...)
			if entry.clientErr != nil {
				attrs = append(attrs, slog.String("client_error", entry.clientErr.Message))
			}
			if entry.err != nil {
				attrs = append(attrs,
					slog.String("error_type", KindOf(entry.err)),
					slog.Any("error", entry.err),
				)
				if data := errorData(entry.err); data != nil {
					attrs = append(attrs, slog.Any("error_data", data))
				}
			}
			entry.mu.Unlock()

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case entry.err != nil:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}

// AddAttrs adds attributes to the request log line. It is a no-op outside
// RequestLog.
func AddAttrs(ctx context.Context, attrs ...slog.Attr) {
	entry, ok := ctx.Value(logEntryKey{}).(*logEntry)
	if !ok {
		return
	}
	entry.mu.Lock()
	entry.attrs = append(entry.attrs, attrs...)
	entry.mu.Unlock()
}

func recordError(ctx context.Context, err error, ce *ClientError) {
	entry, ok := ctx.Value(logEntryKey{}).(*logEntry)
	if !ok {
		return
	}
	entry.mu.Lock()
	entry.err = err
	entry.clientErr = ce
	entry.mu.Unlock()
}

// dataCarrier is implemented by errors with structured payloads worth logging.
type dataCarrier interface {
	LogData() any
}

func errorData(err error) any {
	var dc dataCarrier
	if errors.As(err, &dc) {
		return dc.LogData()
	}
	return nil
}
