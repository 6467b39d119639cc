package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/girya/internal/export"
	"github.com/ayusman/girya/internal/store"
)

// SessionExporter runs a named exporter over a stored session.
type SessionExporter interface {
	ExportSession(sessionID, exporterName string) (*export.Response, error)
}

// ExportHandler handles POST /api/sessions/{id}/export requests.
type ExportHandler struct {
	exporter SessionExporter
}

// NewExportHandler creates an ExportHandler backed by the given exporter.
func NewExportHandler(e SessionExporter) *ExportHandler {
	return &ExportHandler{exporter: e}
}

type exportRequest struct {
	Exporter string `json:"exporter"`
}

type exportResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /api/sessions/{id}/export
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id := strings.TrimSuffix(path, "/export")
	if id == "" || id == path {
		writeError(w, http.StatusBadRequest, "Missing session ID")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Exporter == "" {
		writeError(w, http.StatusBadRequest, "Missing exporter name")
		return
	}

	resp, err := h.exporter.ExportSession(id, req.Exporter)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, export.ErrExporterNotFound):
			writeError(w, http.StatusNotFound, "Exporter not found")
		default:
			writeError(w, http.StatusInternalServerError, "Export failed")
		}
		return
	}

	if !resp.Success {
		writeError(w, http.StatusBadGateway, "Exporter reported failure: "+resp.Error)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Success: true, Path: resp.Path})
}
