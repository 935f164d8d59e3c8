package service

import (
	"context"
	"errors"

	"chargeview/backend/services/dashboard-api/internal/models"
)

// ErrNoStore is returned by every directory operation when the deployment
// runs without a relational store (csv or static charger source).
var ErrNoStore = errors.New("directory: no relational store configured")

// Unavailable is the directory stand-in for store-less deployments. The
// charger list still works through the catalog; everything store-backed
// fails uniformly.
type Unavailable struct{}

func (Unavailable) Ping(context.Context) error { return ErrNoStore }

func (Unavailable) Station(context.Context, int64) (*models.Station, error) { return nil, ErrNoStore }

func (Unavailable) StationDetails(context.Context, int64) (*models.StationDetails, error) {
	return nil, ErrNoStore
}

func (Unavailable) StationsByRegion(context.Context, string) ([]models.Station, error) {
	return nil, ErrNoStore
}

func (Unavailable) OnlineStations(context.Context) ([]models.Station, error) {
	return nil, ErrNoStore
}

func (Unavailable) Evses(context.Context, int64) ([]models.Evse, error) { return nil, ErrNoStore }

func (Unavailable) Evse(context.Context, int64) (*models.Evse, error) { return nil, ErrNoStore }

func (Unavailable) Connectors(context.Context, int64) ([]models.Connector, error) {
	return nil, ErrNoStore
}

func (Unavailable) Connector(context.Context, int64) (*models.Connector, error) {
	return nil, ErrNoStore
}

func (Unavailable) MeterValues(context.Context, int64, int) ([]models.MeterValue, error) {
	return nil, ErrNoStore
}

func (Unavailable) MeterValuesByEvse(context.Context, int64, int) ([]models.MeterValue, error) {
	return nil, ErrNoStore
}

func (Unavailable) MeterValuesByConnector(context.Context, int64, int) ([]models.MeterValue, error) {
	return nil, ErrNoStore
}

func (Unavailable) EssByStation(context.Context, int64) ([]models.Ess, error) {
	return nil, ErrNoStore
}

func (Unavailable) Ess(context.Context, int64) (*models.Ess, error) { return nil, ErrNoStore }

func (Unavailable) AllEss(context.Context) ([]models.Ess, error) { return nil, ErrNoStore }

func (Unavailable) EssByStatus(context.Context, string) ([]models.Ess, error) {
	return nil, ErrNoStore
}

func (Unavailable) UpdateStationStatus(context.Context, int64, string) (bool, error) {
	return false, ErrNoStore
}

func (Unavailable) UpdateEvseStatus(context.Context, int64, string) (bool, error) {
	return false, ErrNoStore
}

func (Unavailable) UpdateEssStatus(context.Context, int64, string) (bool, error) {
	return false, ErrNoStore
}
