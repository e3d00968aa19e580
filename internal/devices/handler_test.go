package devices_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"scancal/internal/devices"
	"scancal/pkg/pagination"
)

type stubSystem struct {
	listResult   *pagination.PageResult[devices.Device]
	listErr      error
	findResult   *devices.Device
	findErr      error
	createResult *devices.Device
	createErr    error
	deleteErr    error

	lastPage    pagination.PageRequest
	lastFilters devices.Filters
	lastCmd     devices.CreateCommand
}

func (s *stubSystem) Handler() *devices.Handler { return nil }

func (s *stubSystem) List(
	_ context.Context,
	page pagination.PageRequest,
	filters devices.Filters,
) (*pagination.PageResult[devices.Device], error) {
	s.lastPage = page
	s.lastFilters = filters
	return s.listResult, s.listErr
}

func (s *stubSystem) Find(_ context.Context, _ uuid.UUID) (*devices.Device, error) {
	return s.findResult, s.findErr
}

func (s *stubSystem) Create(_ context.Context, cmd devices.CreateCommand) (*devices.Device, error) {
	s.lastCmd = cmd
	return s.createResult, s.createErr
}

func (s *stubSystem) Delete(_ context.Context, _ uuid.UUID) error {
	return s.deleteErr
}

func testHandler(sys devices.System) *devices.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{}
	cfg.Finalize(nil)
	return devices.NewHandler(sys, logger, cfg)
}

func testDevice() devices.Device {
	return devices.Device{
		ID:             uuid.New(),
		Name:           "dock-3",
		Vendor:         "zebra",
		Model:          "DS2208",
		KeyboardLayout: "en-US",
		RegisteredAt:   time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func serve(h *devices.Handler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListReturnsPage(t *testing.T) {
	result := pagination.NewPageResult([]devices.Device{testDevice()}, 1, 1, 20)
	sys := &stubSystem{listResult: &result}

	req := httptest.NewRequest(http.MethodGet, "/devices?vendor=zebra&page=2", nil)
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if sys.lastFilters.Vendor == nil || *sys.lastFilters.Vendor != "zebra" {
		t.Errorf("vendor filter: got %v", sys.lastFilters.Vendor)
	}
	if sys.lastPage.Page != 2 {
		t.Errorf("page: got %d, want 2", sys.lastPage.Page)
	}
}

func TestFindInvalidID(t *testing.T) {
	sys := &stubSystem{}

	req := httptest.NewRequest(http.MethodGet, "/devices/not-a-uuid", nil)
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := &stubSystem{findErr: devices.ErrNotFound}

	req := httptest.NewRequest(http.MethodGet, "/devices/"+uuid.NewString(), nil)
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateDevice(t *testing.T) {
	device := testDevice()
	sys := &stubSystem{createResult: &device}

	body, _ := json.Marshal(devices.CreateCommand{
		Name:   "dock-3",
		Vendor: "zebra",
		Model:  "DS2208",
	})

	req := httptest.NewRequest(http.MethodPost, "/devices", bytes.NewReader(body))
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if sys.lastCmd.Name != "dock-3" {
		t.Errorf("command name: got %q, want %q", sys.lastCmd.Name, "dock-3")
	}

	var got devices.Device
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != device.ID {
		t.Errorf("id: got %v, want %v", got.ID, device.ID)
	}
}

func TestCreateDuplicate(t *testing.T) {
	sys := &stubSystem{createErr: devices.ErrDuplicate}

	body, _ := json.Marshal(devices.CreateCommand{Name: "dock-3", Vendor: "zebra", Model: "DS2208"})
	req := httptest.NewRequest(http.MethodPost, "/devices", bytes.NewReader(body))
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSearchPostBody(t *testing.T) {
	result := pagination.NewPageResult([]devices.Device{}, 0, 1, 20)
	sys := &stubSystem{listResult: &result}

	body := `{"page": 1, "page_size": 5, "vendor": "honeywell"}`
	req := httptest.NewRequest(http.MethodPost, "/devices/search", bytes.NewReader([]byte(body)))
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if sys.lastFilters.Vendor == nil || *sys.lastFilters.Vendor != "honeywell" {
		t.Errorf("vendor filter: got %v", sys.lastFilters.Vendor)
	}
	if sys.lastPage.PageSize != 5 {
		t.Errorf("page size: got %d, want 5", sys.lastPage.PageSize)
	}
}

func TestDeleteDevice(t *testing.T) {
	sys := &stubSystem{}

	req := httptest.NewRequest(http.MethodDelete, "/devices/"+uuid.NewString(), nil)
	rec := serve(testHandler(sys), req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}
