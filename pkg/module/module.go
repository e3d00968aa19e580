// Package module mounts prefixed HTTP sub-routers with per-module middleware.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"scancal/pkg/middleware"
)

// Module is an HTTP handler mounted at a single-level path prefix. Requests
// are re-rooted before dispatch: the inner router sees paths relative to the
// prefix.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module at the given prefix (e.g. "/api"). Panics if the
// prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the module's mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve strips the module prefix from the request path and dispatches to the
// inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	relative := strings.TrimPrefix(req.URL.Path, m.prefix)
	if relative == "" {
		relative = "/"
	}

	scoped := req.Clone(req.Context())
	scoped.URL = new(url.URL)
	*scoped.URL = *req.URL
	scoped.URL.Path = relative
	scoped.URL.RawPath = ""

	m.Handler().ServeHTTP(w, scoped)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be a single-level sub-path: %s", prefix)
	}
	return nil
}
