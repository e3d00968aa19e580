package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scancal/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/devices/1", nil))

	if got := rec.Body.String(); got != "/devices/1" {
		t.Errorf("inner path: got %q, want %q", got, "/devices/1")
	}
}

func TestModuleRootPath(t *testing.T) {
	m := module.New("/api", echoPath())

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest(http.MethodGet, "/api", nil))

	if got := rec.Body.String(); got != "/" {
		t.Errorf("inner path: got %q, want %q", got, "/")
	}
}

func TestModuleMiddlewareApplied(t *testing.T) {
	m := module.New("/api", echoPath())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if got := rec.Header().Get("X-Module"); got != "api" {
		t.Errorf("middleware header: got %q, want %q", got, "api")
	}
}

func TestNewPanicsOnInvalidPrefix(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"multi-level", "/api/v1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) should panic", tc.prefix)
				}
			}()
			module.New(tc.prefix, echoPath())
		})
	}
}

func TestRouterDispatchesToModule(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	if got := rec.Body.String(); got != "/devices" {
		t.Errorf("routed path: got %q, want %q", got, "/devices")
	}
}

func TestRouterNativeFallback(t *testing.T) {
	router := module.NewRouter()
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("fallback status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouterTrimsTrailingSlash(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/devices/", nil))

	if got := rec.Body.String(); got != "/devices" {
		t.Errorf("routed path: got %q, want %q", got, "/devices")
	}
}
