package calibrations

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"scancal/pkg/formatting"
	"scancal/pkg/handlers"
	"scancal/pkg/pagination"
	"scancal/pkg/routes"
)

// Handler provides HTTP endpoints for calibration operations.
type Handler struct {
	sys            System
	logger         *slog.Logger
	pagination     pagination.Config
	maxCaptureSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// BatchRequest carries a set of calibration runs for concurrent submission.
type BatchRequest struct {
	Runs []CreateCommand `json:"runs"`
}

// NewHandler creates a Handler with the given system, logger, pagination config,
// and capture size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxCaptureSize int64,
) *Handler {
	return &Handler{
		sys:            sys,
		logger:         logger.With("handler", "calibrations"),
		pagination:     pagination,
		maxCaptureSize: maxCaptureSize,
	}
}

// Routes returns the route group definition for calibration endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/calibrations",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/capture", Handler: h.DownloadCapture},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/batch", Handler: h.CreateBatch},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of calibrations with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single calibration by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	c, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching calibrations.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create records a single calibration run from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.decodeCommand(w, r)
	if !ok {
		return
	}

	c, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}

// CreateBatch records multiple calibration runs concurrently.
// Returns 200 with per-run results; individual failures do not fail the batch.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if len(req.Runs) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	for _, cmd := range req.Runs {
		if int64(len(cmd.Capture)) > h.maxCaptureSize {
			h.logger.Warn("batch capture rejected",
				"size", formatting.FormatBytes(int64(len(cmd.Capture)), 1),
				"limit", formatting.FormatBytes(h.maxCaptureSize, 1),
			)
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrCaptureTooLarge)
			return
		}
	}

	results := h.sys.CreateBatch(r.Context(), req.Runs)
	handlers.RespondJSON(w, http.StatusOK, results)
}

// DownloadCapture streams the raw capture archive for a calibration run.
func (h *Handler) DownloadCapture(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	result, err := h.sys.DownloadCapture(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("capture stream interrupted", "id", id, "error", err)
	}
}

// Delete removes a calibration by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeCommand(w http.ResponseWriter, r *http.Request) (CreateCommand, bool) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return cmd, false
	}

	if int64(len(cmd.Capture)) > h.maxCaptureSize {
		h.logger.Warn("capture rejected",
			"size", formatting.FormatBytes(int64(len(cmd.Capture)), 1),
			"limit", formatting.FormatBytes(h.maxCaptureSize, 1),
		)
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrCaptureTooLarge)
		return cmd, false
	}

	return cmd, true
}
