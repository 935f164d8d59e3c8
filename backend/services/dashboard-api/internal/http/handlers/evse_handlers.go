package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/models"
)

// EvseReader is the read surface the EVSE handlers need.
type EvseReader interface {
	Evse(ctx context.Context, evseID int64) (*models.Evse, error)
	Connectors(ctx context.Context, evseID int64) ([]models.Connector, error)
	Connector(ctx context.Context, connectorID int64) (*models.Connector, error)
	MeterValuesByEvse(ctx context.Context, evseID int64, limit int) ([]models.MeterValue, error)
	MeterValuesByConnector(ctx context.Context, connectorID int64, limit int) ([]models.MeterValue, error)
}

// EvseHandlers serves EVSE and connector endpoints.
type EvseHandlers struct {
	reader EvseReader
	logger *zap.Logger
}

// NewEvseHandlers returns handler.
func NewEvseHandlers(reader EvseReader, logger *zap.Logger) *EvseHandlers {
	return &EvseHandlers{reader: reader, logger: logger}
}

// Get handles GET /api/evses/{id}.
func (h *EvseHandlers) Get(w http.ResponseWriter, r *http.Request) {
	evseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	evse, err := h.reader.Evse(r.Context(), evseID)
	if err != nil {
		h.logger.Error("evse lookup failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load evse", "")
		return
	}
	if evse == nil {
		writeFailure(w, http.StatusNotFound, "evse not found", "")
		return
	}
	writeSuccess(w, evse, "")
}

// Connectors handles GET /api/evses/{id}/connectors.
func (h *EvseHandlers) Connectors(w http.ResponseWriter, r *http.Request) {
	evseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	connectors, err := h.reader.Connectors(r.Context(), evseID)
	if err != nil {
		h.logger.Error("connector list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load connectors", "")
		return
	}
	writeSuccess(w, connectors, "")
}

// MeterValues handles GET /api/evses/{id}/meter-values.
func (h *EvseHandlers) MeterValues(w http.ResponseWriter, r *http.Request) {
	evseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	values, err := h.reader.MeterValuesByEvse(r.Context(), evseID, queryLimit(r))
	if err != nil {
		h.logger.Error("meter value list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load meter values", "")
		return
	}
	writeSuccess(w, values, "")
}

// ConnectorMeterValues handles GET /api/connectors/{id}/meter-values.
func (h *EvseHandlers) ConnectorMeterValues(w http.ResponseWriter, r *http.Request) {
	connectorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	values, err := h.reader.MeterValuesByConnector(r.Context(), connectorID, queryLimit(r))
	if err != nil {
		h.logger.Error("meter value list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load meter values", "")
		return
	}
	writeSuccess(w, values, "")
}

// GetConnector handles GET /api/connectors/{id}.
func (h *EvseHandlers) GetConnector(w http.ResponseWriter, r *http.Request) {
	connectorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	connector, err := h.reader.Connector(r.Context(), connectorID)
	if err != nil {
		h.logger.Error("connector lookup failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load connector", "")
		return
	}
	if connector == nil {
		writeFailure(w, http.StatusNotFound, "connector not found", "")
		return
	}
	writeSuccess(w, connector, "")
}
