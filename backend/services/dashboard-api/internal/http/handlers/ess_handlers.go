package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/models"
)

// EssReader is the read surface the ESS handlers need.
type EssReader interface {
	AllEss(ctx context.Context) ([]models.Ess, error)
	EssByStatus(ctx context.Context, status string) ([]models.Ess, error)
	Ess(ctx context.Context, essID int64) (*models.Ess, error)
}

// EssHandlers serves fleet-wide ESS endpoints.
type EssHandlers struct {
	reader EssReader
	logger *zap.Logger
}

// NewEssHandlers returns handler.
func NewEssHandlers(reader EssReader, logger *zap.Logger) *EssHandlers {
	return &EssHandlers{reader: reader, logger: logger}
}

// List handles GET /api/ess with an optional status filter.
func (h *EssHandlers) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var (
		units []models.Ess
		err   error
	)
	if status == "" {
		units, err = h.reader.AllEss(r.Context())
	} else {
		if !models.ValidEssStatus(status) {
			writeFailure(w, http.StatusBadRequest, "unknown ess status", "")
			return
		}
		units, err = h.reader.EssByStatus(r.Context(), status)
	}
	if err != nil {
		h.logger.Error("ess list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load ess list", "")
		return
	}
	writeSuccess(w, units, "")
}

// Get handles GET /api/ess/{id}.
func (h *EssHandlers) Get(w http.ResponseWriter, r *http.Request) {
	essID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ess, err := h.reader.Ess(r.Context(), essID)
	if err != nil {
		h.logger.Error("ess lookup failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load ess", "")
		return
	}
	if ess == nil {
		writeFailure(w, http.StatusNotFound, "ess not found", "")
		return
	}
	writeSuccess(w, ess, "")
}
