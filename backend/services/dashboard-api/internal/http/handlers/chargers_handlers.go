package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/models"
)

// ChargerLister serves the station list in legacy shape.
type ChargerLister interface {
	ListChargers(ctx context.Context) ([]models.LegacyStation, error)
}

// StationReader is the read surface the station handlers need.
type StationReader interface {
	Ping(ctx context.Context) error
	Station(ctx context.Context, stationID int64) (*models.Station, error)
	StationDetails(ctx context.Context, stationID int64) (*models.StationDetails, error)
	StationsByRegion(ctx context.Context, region string) ([]models.Station, error)
	OnlineStations(ctx context.Context) ([]models.Station, error)
	Evses(ctx context.Context, stationID int64) ([]models.Evse, error)
	MeterValues(ctx context.Context, stationID int64, limit int) ([]models.MeterValue, error)
	EssByStation(ctx context.Context, stationID int64) ([]models.Ess, error)
}

// ChargersHandlers serves station-scoped endpoints.
type ChargersHandlers struct {
	catalog ChargerLister
	reader  StationReader
	logger  *zap.Logger
}

// NewChargersHandlers returns handler.
func NewChargersHandlers(catalog ChargerLister, reader StationReader, logger *zap.Logger) *ChargersHandlers {
	return &ChargersHandlers{catalog: catalog, reader: reader, logger: logger}
}

// List handles GET /api/chargers. The response is a bare JSON array; two
// legacy consumers depend on that shape.
func (h *ChargersHandlers) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.catalog.ListChargers(r.Context())
	if err != nil {
		h.logger.Error("charger list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load charger list")
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// Get handles GET /api/chargers/{id}.
func (h *ChargersHandlers) Get(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	station, err := h.reader.Station(r.Context(), stationID)
	if err != nil {
		h.logger.Error("station lookup failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load station", "")
		return
	}
	if station == nil {
		writeFailure(w, http.StatusNotFound, "station not found", "")
		return
	}
	writeSuccess(w, station, "")
}

// Details handles GET /api/chargers/{id}/details.
func (h *ChargersHandlers) Details(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	details, err := h.reader.StationDetails(r.Context(), stationID)
	if err != nil {
		h.logger.Error("station details failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load station details", "")
		return
	}
	if details == nil {
		writeFailure(w, http.StatusNotFound, "station not found", "")
		return
	}
	writeSuccess(w, details, "")
}

// Evses handles GET /api/chargers/{id}/evses. The response is a bare JSON
// array; an unknown station yields an empty array, never 404.
func (h *ChargersHandlers) Evses(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.reader.Ping(r.Context()); err != nil {
		h.logger.Error("store unreachable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database connection failed")
		return
	}
	evses, err := h.reader.Evses(r.Context(), stationID)
	if err != nil {
		h.logger.Error("evse list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load evse list")
		return
	}
	writeJSON(w, http.StatusOK, evses)
}

// MeterValues handles GET /api/chargers/{id}/meter-values.
func (h *ChargersHandlers) MeterValues(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	values, err := h.reader.MeterValues(r.Context(), stationID, queryLimit(r))
	if err != nil {
		h.logger.Error("meter value list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load meter values", "")
		return
	}
	writeSuccess(w, values, "")
}

// Ess handles GET /api/chargers/{id}/ess.
func (h *ChargersHandlers) Ess(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	units, err := h.reader.EssByStation(r.Context(), stationID)
	if err != nil {
		h.logger.Error("ess list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load ess list", "")
		return
	}
	writeSuccess(w, units, "")
}

// Online handles GET /api/stations/online.
func (h *ChargersHandlers) Online(w http.ResponseWriter, r *http.Request) {
	stations, err := h.reader.OnlineStations(r.Context())
	if err != nil {
		h.logger.Error("online station list failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to load online stations", "")
		return
	}
	writeSuccess(w, stations, "")
}

// Search handles GET /api/stations/search?region=.
func (h *ChargersHandlers) Search(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		writeFailure(w, http.StatusBadRequest, "region query parameter required", "")
		return
	}
	stations, err := h.reader.StationsByRegion(r.Context(), region)
	if err != nil {
		h.logger.Error("station search failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to search stations", "")
		return
	}
	writeSuccess(w, stations, "")
}
