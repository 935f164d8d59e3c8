package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/clients"
)

// SetVariablesHandlers forwards configuration pushes to the fleet backend.
// The push is fire-and-forget from the dashboard's perspective: no local
// state is created, only the upstream outcome is relayed.
type SetVariablesHandlers struct {
	client *clients.ProvisioningClient
	logger *zap.Logger
}

// NewSetVariablesHandlers returns handler.
func NewSetVariablesHandlers(client *clients.ProvisioningClient, logger *zap.Logger) *SetVariablesHandlers {
	return &SetVariablesHandlers{client: client, logger: logger}
}

// Create handles GET /api/setvariables/create. Absent parameters are
// forwarded as empty strings (alert flags as "false"); the endpoint performs
// no required-parameter validation of its own.
func (h *SetVariablesHandlers) Create(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := clients.SetVariablesParams{
		StationID:       query.Get("stationId"),
		TargetComponent: query.Get("targetComponent"),
		DataDirection:   query.Get("dataDirection"),
		MeasurementType: query.Get("measurementType"),
		MeasurementUnit: query.Get("measurementUnit"),
		Interval:        query.Get("interval"),
		AlertsEnabled:   query.Get("alertsEnabled"),
		AlertsStart:     query.Get("alertsStart"),
		AlertsEnd:       query.Get("alertsEnd"),
		AlertsDuring:    query.Get("alertsDuring"),
	}

	h.logger.Info("forwarding set-variables request",
		zap.String("stationId", params.StationID),
		zap.String("targetComponent", params.TargetComponent),
		zap.String("measurementType", params.MeasurementType),
	)

	status, body, err := h.client.SetVariables(r.Context(), params)
	if err != nil {
		h.logger.Error("upstream unreachable", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to connect to fleet backend: "+err.Error(), "")
		return
	}

	if status < 200 || status > 299 {
		h.logger.Error("upstream rejected set-variables request",
			zap.Int("status", status),
			zap.ByteString("body", body),
		)
		writeFailure(w, status, fmt.Sprintf("fleet backend error: %d", status), string(body))
		return
	}

	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		h.logger.Error("upstream returned malformed JSON", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "fleet backend returned malformed response", "")
		return
	}

	writeSuccess(w, data, "Configuration sent successfully")
}
