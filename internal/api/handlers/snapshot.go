package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/response"
	"github.com/mvanholst/portfolio-tracker-backend/internal/apperrors"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// maxSnapshotBytes caps import payloads at 10 MiB.
const maxSnapshotBytes = 10 << 20

// SnapshotHandler handles HTTP requests for snapshot export, import and reset.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	backupService   *service.BackupService
}

// NewSnapshotHandler creates a new SnapshotHandler. backupService may be nil
// when backups are not configured.
func NewSnapshotHandler(snapshotService *service.SnapshotService, backupService *service.BackupService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		backupService:   backupService,
	}
}

// Export handles GET requests for the full JSON snapshot, identical in shape
// to the persisted state and accepted back by Import.
//
// Endpoint: GET /api/snapshot
// Response: 200 OK with Snapshot
// Error: 500 Internal Server Error if export fails
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.Export(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportSnapshot.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="snapshot.json"`)
	response.RespondJSON(w, http.StatusOK, snapshot)
}

// ExportCSV handles GET requests for the two-section CSV export
// (#POSITIONS and #TRANSACTIONS).
//
// Endpoint: GET /api/snapshot/csv
// Response: 200 OK with text/csv body
// Error: 500 Internal Server Error if export fails
func (h *SnapshotHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshotService.ExportCSV(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportSnapshot.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="snapshot.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST requests to restore a JSON snapshot, replacing all
// existing state. A rejected snapshot leaves existing state untouched.
//
// Endpoint: POST /api/snapshot/import
// Request Body: Snapshot JSON ({"assets": [...], "transactions": [...]})
// Response: 200 OK with the imported Snapshot
// Error: 400 Bad Request if the snapshot shape is invalid
// Error: 500 Internal Server Error if the import fails
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	snapshot, err := h.snapshotService.Import(r.Context(), data)
	if err != nil {
		if errors.Is(err, apperrors.ErrMalformedSnapshot) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrMalformedSnapshot.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to import snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Reset handles POST requests to clear all assets and transactions.
//
// Endpoint: POST /api/snapshot/reset
// Response: 204 No Content
// Error: 500 Internal Server Error if the reset fails
func (h *SnapshotHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshotService.Reset(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to reset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Backup handles POST requests to run a backup immediately, outside the
// schedule.
//
// Endpoint: POST /api/snapshot/backup
// Response: 200 OK with the written file path
// Error: 503 Service Unavailable when backups are not configured
// Error: 500 Internal Server Error if the backup fails
func (h *SnapshotHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if h.backupService == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "backups are not configured", "")
		return
	}

	path, err := h.backupService.RunBackup(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to run backup", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"path": path})
}
