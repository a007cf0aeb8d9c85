package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/middleware"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/serr"
)

func ReadJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	return enc.Encode(resp)
}

// HandleErr logs err and writes the matching response. A *serr.ServiceError
// anywhere in the chain decides the status code and message; anything else is a 500.
func HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []any{
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	}

	var se *serr.ServiceError
	if errors.As(err, &se) {
		for k, v := range se.Env {
			attrs = append(attrs, k, v)
		}

		if se.StatusCode >= http.StatusInternalServerError {
			slog.Error("request error", append(attrs, "stack_trace", se.StackTrace)...)
		} else {
			slog.Warn("request error", attrs...)
		}

		http.Error(w, se.Msg, se.StatusCode)
		return
	}

	slog.Error("request error", attrs...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
