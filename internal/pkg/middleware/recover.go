package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
)

func Recover() router.Middleware {
	return RecoverWith(slog.Default())
}

// RecoverWith turns a handler panic into a 500 logged on l. When the handler
// already started the response only the log is written. http.ErrAbortHandler
// is passed through so net/http can abort the connection.
func RecoverWith(l *slog.Logger) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &httpStatusWriter{inner: w}
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				l.Error("internal server error",
					"error", err,
					"method", r.Method,
					"url", r.URL.String(),
					"remote_addr", r.RemoteAddr,
					"request_id", RequestIDFromContext(r.Context()),
					"response_started", sw.Status != 0,
					"stack_trace", string(debug.Stack()),
				)

				if sw.Status == 0 {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
