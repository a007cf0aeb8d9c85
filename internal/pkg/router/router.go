package router

import (
	"net/http"
	"strings"
)

// Middleware wraps a handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Router is a thin wrapper over http.ServeMux that applies a middleware chain
// and supports mounting sub routers under a path prefix.
type Router struct {
	prefix     string
	mux        *http.ServeMux
	middleware []Middleware
}

func New() *Router {
	return &Router{
		prefix: "",
		mux:    http.NewServeMux(),
	}
}

func (rt *Router) Use(mw ...Middleware) {
	rt.middleware = append(rt.middleware, mw...)
}

// Handle registers handler for pattern. Patterns may carry a method
// ("GET /verbs/{name}") and a missing leading slash is added.
func (rt *Router) Handle(pattern string, handler http.Handler) {
	rt.mux.Handle(normalizePattern(pattern), handler)
}

func (rt *Router) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	rt.mux.HandleFunc(normalizePattern(pattern), handler)
}

// SubRouter mounts a new router under prefix. Middleware registered on the
// parent already wraps the sub router, so the sub router starts with its own empty chain.
func (rt *Router) SubRouter(prefix string) *Router {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		panic("empty subrouter prefix")
	}

	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	s := &Router{
		prefix: rt.prefix + prefix,
		mux:    http.NewServeMux(),
	}

	rt.mux.Handle(prefix+"/", http.StripPrefix(prefix, s))
	return s
}

// Prefix returns the full path prefix the router is mounted under.
func (rt *Router) Prefix() string {
	return rt.prefix
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var h http.Handler = rt.mux
	for i := len(rt.middleware) - 1; i >= 0; i-- {
		h = rt.middleware[i](h)
	}

	h.ServeHTTP(w, r)
}

func normalizePattern(pattern string) string {
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		path, method = method, ""
	}

	path = strings.TrimLeft(path, " ")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if method == "" {
		return path
	}
	return method + " " + path
}
