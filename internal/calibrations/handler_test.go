package calibrations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"scancal/internal/calibrations"
	"scancal/pkg/caseconv"
	"scancal/pkg/pagination"
	"scancal/pkg/storage"
	"scancal/workflow"
)

type stubSystem struct {
	listResult     *pagination.PageResult[calibrations.Calibration]
	listErr        error
	findResult     *calibrations.Calibration
	findErr        error
	createResult   *calibrations.Calibration
	createErr      error
	batchResults   []calibrations.BatchResult
	deleteErr      error
	downloadResult *storage.DownloadResult
	downloadErr    error

	lastCmd  calibrations.CreateCommand
	lastCmds []calibrations.CreateCommand
}

func (s *stubSystem) Handler(int64) *calibrations.Handler { return nil }

func (s *stubSystem) List(
	_ context.Context,
	_ pagination.PageRequest,
	_ calibrations.Filters,
) (*pagination.PageResult[calibrations.Calibration], error) {
	return s.listResult, s.listErr
}

func (s *stubSystem) Find(_ context.Context, _ uuid.UUID) (*calibrations.Calibration, error) {
	return s.findResult, s.findErr
}

func (s *stubSystem) Create(_ context.Context, cmd calibrations.CreateCommand) (*calibrations.Calibration, error) {
	s.lastCmd = cmd
	return s.createResult, s.createErr
}

func (s *stubSystem) CreateBatch(_ context.Context, cmds []calibrations.CreateCommand) []calibrations.BatchResult {
	s.lastCmds = cmds
	return s.batchResults
}

func (s *stubSystem) Delete(_ context.Context, _ uuid.UUID) error {
	return s.deleteErr
}

func (s *stubSystem) DownloadCapture(_ context.Context, _ uuid.UUID) (*storage.DownloadResult, error) {
	return s.downloadResult, s.downloadErr
}

func testHandler(sys calibrations.System, maxCapture int64) *calibrations.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{}
	cfg.Finalize(nil)
	return calibrations.NewHandler(sys, logger, cfg, maxCapture)
}

func testCalibration() calibrations.Calibration {
	return calibrations.Calibration{
		ID:            uuid.New(),
		DeviceID:      uuid.New(),
		Script:        caseconv.ScriptLatin,
		Payload:       "payload",
		SegmentLength: 82,
		Outcome:       workflow.OutcomeCalibrated,
		CreatedAt:     time.Now(),
	}
}

func serve(h *calibrations.Handler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateRun(t *testing.T) {
	c := testCalibration()
	sys := &stubSystem{createResult: &c}

	body, _ := json.Marshal(calibrations.CreateCommand{
		DeviceID: c.DeviceID,
		Payload:  "payload",
		Script:   caseconv.ScriptLatin,
	})

	req := httptest.NewRequest(http.MethodPost, "/calibrations", bytes.NewReader(body))
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if sys.lastCmd.DeviceID != c.DeviceID {
		t.Errorf("device id: got %v, want %v", sys.lastCmd.DeviceID, c.DeviceID)
	}

	var got calibrations.Calibration
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Outcome != workflow.OutcomeCalibrated {
		t.Errorf("outcome: got %q, want %q", got.Outcome, workflow.OutcomeCalibrated)
	}
}

func TestCreateRejectsOversizedCapture(t *testing.T) {
	sys := &stubSystem{}

	body, _ := json.Marshal(calibrations.CreateCommand{
		DeviceID: uuid.New(),
		Payload:  "payload",
		Capture:  bytes.Repeat([]byte{0xAB}, 64),
	})

	req := httptest.NewRequest(http.MethodPost, "/calibrations", bytes.NewReader(body))
	rec := serve(testHandler(sys, 32), req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestCreateUnknownScript(t *testing.T) {
	sys := &stubSystem{createErr: calibrations.ErrUnknownScript}

	body, _ := json.Marshal(calibrations.CreateCommand{
		DeviceID: uuid.New(),
		Payload:  "payload",
		Script:   caseconv.Script("klingon"),
	})

	req := httptest.NewRequest(http.MethodPost, "/calibrations", bytes.NewReader(body))
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateBatch(t *testing.T) {
	c := testCalibration()
	sys := &stubSystem{
		batchResults: []calibrations.BatchResult{
			{Calibration: &c},
			{Error: calibrations.ErrInvalidRequest.Error()},
		},
	}

	body := `{"runs": [
		{"device_id": "` + c.DeviceID.String() + `", "payload": "one"},
		{"device_id": "` + c.DeviceID.String() + `", "payload": ""}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/calibrations/batch", strings.NewReader(body))
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if len(sys.lastCmds) != 2 {
		t.Errorf("submitted runs: got %d, want 2", len(sys.lastCmds))
	}

	var results []calibrations.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) != 2 || results[1].Error == "" {
		t.Errorf("results: got %+v", results)
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	sys := &stubSystem{}

	req := httptest.NewRequest(http.MethodPost, "/calibrations/batch", strings.NewReader(`{"runs": []}`))
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := &stubSystem{findErr: calibrations.ErrNotFound}

	req := httptest.NewRequest(http.MethodGet, "/calibrations/"+uuid.NewString(), nil)
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDownloadCapture(t *testing.T) {
	payload := []byte("raw capture bytes")
	sys := &stubSystem{
		downloadResult: &storage.DownloadResult{
			Body:          io.NopCloser(bytes.NewReader(payload)),
			ContentType:   "application/octet-stream",
			ContentLength: int64(len(payload)),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/calibrations/"+uuid.NewString()+"/capture", nil)
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("content type: got %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Errorf("body: got %q, want %q", rec.Body.Bytes(), payload)
	}
}

func TestDownloadCaptureMissing(t *testing.T) {
	sys := &stubSystem{downloadErr: calibrations.ErrNoCapture}

	req := httptest.NewRequest(http.MethodGet, "/calibrations/"+uuid.NewString()+"/capture", nil)
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteRun(t *testing.T) {
	sys := &stubSystem{}

	req := httptest.NewRequest(http.MethodDelete, "/calibrations/"+uuid.NewString(), nil)
	rec := serve(testHandler(sys, 1024), req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}
