package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/service"
)

// StatusUpdater applies validated status changes.
type StatusUpdater interface {
	UpdateStationStatus(ctx context.Context, stationID int64, status string) (bool, error)
	UpdateEvseStatus(ctx context.Context, evseID int64, status string) (bool, error)
	UpdateEssStatus(ctx context.Context, essID int64, status string) (bool, error)
}

// StatusHandlers serves the PUT status mutations.
type StatusHandlers struct {
	updater StatusUpdater
	logger  *zap.Logger
}

// NewStatusHandlers returns handler.
func NewStatusHandlers(updater StatusUpdater, logger *zap.Logger) *StatusHandlers {
	return &StatusHandlers{updater: updater, logger: logger}
}

type statusRequest struct {
	Status string `json:"status"`
}

// Station handles PUT /api/chargers/{id}/status.
func (h *StatusHandlers) Station(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "station", h.updater.UpdateStationStatus)
}

// Evse handles PUT /api/evses/{id}/status.
func (h *StatusHandlers) Evse(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "evse", h.updater.UpdateEvseStatus)
}

// Ess handles PUT /api/ess/{id}/status.
func (h *StatusHandlers) Ess(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "ess", h.updater.UpdateEssStatus)
}

func (h *StatusHandlers) update(w http.ResponseWriter, r *http.Request, entity string, apply func(context.Context, int64, string) (bool, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeFailure(w, http.StatusBadRequest, "request body must carry a status field", "")
		return
	}

	found, err := apply(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeFailure(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		h.logger.Error("status update failed", zap.String("entity", entity), zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to update status", "")
		return
	}
	if !found {
		writeFailure(w, http.StatusNotFound, entity+" not found", "")
		return
	}
	writeSuccess(w, nil, "status updated")
}
