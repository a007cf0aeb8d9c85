package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestHandleFunc(t *testing.T) {
	tbl := []struct {
		pattern      string
		method       string
		path         string
		responseBody string
		status       int
	}{
		{"/hello", "GET", "/hello", "ok", http.StatusOK},
		{"hello", "GET", "/hello", "no slash", http.StatusOK},
		{"GET /verbs/{name}", "GET", "/verbs/aller", "aller", http.StatusOK},
		{"GET  verbs/{name}", "GET", "/verbs/venir", "venir", http.StatusOK},
		{"PUT /verbs", "PUT", "/verbs", "", http.StatusCreated},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			r := router.New()
			r.HandleFunc(c.pattern, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				if name := r.PathValue("name"); name != "" {
					fmt.Fprint(w, name)
					return
				}
				fmt.Fprint(w, c.responseBody)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.responseBody, rec.Body.String())
		})
	}
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Handle("GET /verbs", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/verbs", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSubRouter(t *testing.T) {
	tbl := []struct {
		method       string
		mountPoint   string
		relativePath string
		path         string
		responseBody string
		status       int
	}{
		{"GET", "/api", "/hello", "/api/hello", "hello from subrouter", http.StatusOK},
		{"POST", "v1", "/hello/", "/v1/hello/world", "hello from subrouter", http.StatusForbidden},
		{"POST", "/long/prefix", "hello", "/long/prefix/hello", "", http.StatusConflict},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			r := router.New()
			sub := r.SubRouter(c.mountPoint)

			sub.HandleFunc(c.relativePath, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				fmt.Fprint(w, c.responseBody)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.responseBody, rec.Body.String())
		})
	}
}

func TestSubRouter_PanicsWhenEmpty(t *testing.T) {
	r := router.New()
	assert.Panics(t, func() {
		r.SubRouter("")
	})
}

func TestSubRouter_Prefix(t *testing.T) {
	r := router.New()
	admin := r.SubRouter("admin/")
	nested := admin.SubRouter("/v1")

	assert.Equal(t, "/admin", admin.Prefix())
	assert.Equal(t, "/admin/v1", nested.Prefix())
}

func TestSubRouter_MiddlewareAppliedOnce(t *testing.T) {
	calls := 0
	r := router.New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			next.ServeHTTP(w, r)
		})
	})

	sub := r.SubRouter("/admin")
	sub.HandleFunc("/verbs", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/verbs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestMiddleware_Order(t *testing.T) {
	r := router.New()

	callOrder := make(chan int, 2)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callOrder <- 1
			next.ServeHTTP(w, r)
		})
	})
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callOrder <- 2
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "testing middleware order")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "testing middleware order", rec.Body.String())

	close(callOrder)
	assert.Equal(t, 1, <-callOrder)
	assert.Equal(t, 2, <-callOrder)
}
