package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestRecover_Panic(t *testing.T) {
	var logs bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.DiscardHandler)) })

	r := router.New()
	r.Use(RequestID(), Recover())
	r.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("aggregate exploded")
	})

	req := httptest.NewRequest("GET", "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-panic")
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		r.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "aggregate exploded")
	assert.Contains(t, logs.String(), "req-panic")
}

func TestRecover_NoPanic(t *testing.T) {
	r := router.New()
	r.Use(Recover())
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/ok", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverWith_ResponseStarted(t *testing.T) {
	var logs bytes.Buffer
	r := router.New()
	r.Use(RecoverWith(slog.New(slog.NewJSONHandler(&logs, nil))))
	r.HandleFunc("/partial", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late failure")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/partial", nil))
	})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Contains(t, logs.String(), "late failure")
	assert.Contains(t, logs.String(), `"response_started":true`)
}

func TestRecoverWith_AbortHandler(t *testing.T) {
	r := router.New()
	r.Use(RecoverWith(slog.New(slog.DiscardHandler)))
	r.HandleFunc("/abort", func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/abort", nil))
	})
}
