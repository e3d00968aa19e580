package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scancal/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/devices",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: respond("list")},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: respond("find")},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices/abc", nil))

	if got := rec.Body.String(); got != "find" {
		t.Errorf("body: got %q, want %q", got, "find")
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/calibrations",
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/capture", Handler: respond("capture")},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calibrations/xyz/capture", nil))

	if got := rec.Body.String(); got != "capture" {
		t.Errorf("body: got %q, want %q", got, "capture")
	}
}

func TestRegisterRespectsMethod(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/devices",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: respond("create")},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
