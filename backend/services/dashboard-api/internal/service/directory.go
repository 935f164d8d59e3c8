package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/models"
	"chargeview/backend/services/dashboard-api/internal/repository"
)

// Directory ties the entity repositories together and owns the one
// aggregation the flat queries cannot express: a station with its EVSE and
// connector tree plus connector counts.
type Directory struct {
	stations   *repository.StationRepository
	evses      *repository.EvseRepository
	connectors *repository.ConnectorRepository
	meters     *repository.MeterValueRepository
	ess        *repository.EssRepository
	logger     *zap.Logger
}

// NewDirectory builds the read service over the repositories.
func NewDirectory(
	stations *repository.StationRepository,
	evses *repository.EvseRepository,
	connectors *repository.ConnectorRepository,
	meters *repository.MeterValueRepository,
	ess *repository.EssRepository,
	logger *zap.Logger,
) *Directory {
	return &Directory{
		stations:   stations,
		evses:      evses,
		connectors: connectors,
		meters:     meters,
		ess:        ess,
		logger:     logger,
	}
}

// Ping verifies store connectivity.
func (d *Directory) Ping(ctx context.Context) error {
	return d.stations.Ping(ctx)
}

// Stations returns every station.
func (d *Directory) Stations(ctx context.Context) ([]models.Station, error) {
	return d.stations.All(ctx)
}

// Station returns one station, nil when absent.
func (d *Directory) Station(ctx context.Context, stationID int64) (*models.Station, error) {
	return d.stations.ByID(ctx, stationID)
}

// StationsByRegion returns stations whose address contains the substring.
func (d *Directory) StationsByRegion(ctx context.Context, region string) ([]models.Station, error) {
	return d.stations.ByRegion(ctx, region)
}

// OnlineStations returns stations currently marked online.
func (d *Directory) OnlineStations(ctx context.Context) ([]models.Station, error) {
	return d.stations.Online(ctx)
}

// StationDetails returns a station with its EVSEs, their connectors and the
// connector aggregates. Nil when the station does not exist; empty slices
// (never nil) when it has no EVSEs or connectors.
func (d *Directory) StationDetails(ctx context.Context, stationID int64) (*models.StationDetails, error) {
	station, err := d.stations.ByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, nil
	}

	evses, err := d.evses.ByStationID(ctx, stationID)
	if err != nil {
		return nil, err
	}

	details := &models.StationDetails{
		Station: *station,
		Evses:   make([]models.EvseDetails, 0, len(evses)),
	}
	for _, evse := range evses {
		connectors, err := d.connectors.ByEvseID(ctx, evse.EvseID)
		if err != nil {
			return nil, err
		}
		details.Evses = append(details.Evses, models.EvseDetails{Evse: evse, Connectors: connectors})

		details.TotalConnectors += len(connectors)
		for _, connector := range connectors {
			switch connector.Status {
			case models.EvseStatusAvailable:
				details.AvailableConnectors++
			case models.EvseStatusOccupied:
				details.OccupiedConnectors++
			case models.EvseStatusFaulted:
				details.FaultedConnectors++
			}
		}
	}
	return details, nil
}

// Evses returns the EVSEs of a station.
func (d *Directory) Evses(ctx context.Context, stationID int64) ([]models.Evse, error) {
	return d.evses.ByStationID(ctx, stationID)
}

// Evse returns one EVSE, nil when absent.
func (d *Directory) Evse(ctx context.Context, evseID int64) (*models.Evse, error) {
	return d.evses.ByID(ctx, evseID)
}

// Connectors returns the connectors of an EVSE.
func (d *Directory) Connectors(ctx context.Context, evseID int64) ([]models.Connector, error) {
	return d.connectors.ByEvseID(ctx, evseID)
}

// Connector returns one connector, nil when absent.
func (d *Directory) Connector(ctx context.Context, connectorID int64) (*models.Connector, error) {
	return d.connectors.ByID(ctx, connectorID)
}

// MeterValues returns the most recent samples for a station.
func (d *Directory) MeterValues(ctx context.Context, stationID int64, limit int) ([]models.MeterValue, error) {
	return d.meters.RecentByStation(ctx, stationID, limit)
}

// MeterValuesByEvse returns the most recent samples for an EVSE.
func (d *Directory) MeterValuesByEvse(ctx context.Context, evseID int64, limit int) ([]models.MeterValue, error) {
	return d.meters.RecentByEvse(ctx, evseID, limit)
}

// MeterValuesByConnector returns the most recent samples for a connector.
func (d *Directory) MeterValuesByConnector(ctx context.Context, connectorID int64, limit int) ([]models.MeterValue, error) {
	return d.meters.RecentByConnector(ctx, connectorID, limit)
}

// EssByStation returns the ESS units of a station.
func (d *Directory) EssByStation(ctx context.Context, stationID int64) ([]models.Ess, error) {
	return d.ess.ByStationID(ctx, stationID)
}

// Ess returns one ESS unit, nil when absent.
func (d *Directory) Ess(ctx context.Context, essID int64) (*models.Ess, error) {
	return d.ess.ByID(ctx, essID)
}

// AllEss returns every ESS unit.
func (d *Directory) AllEss(ctx context.Context) ([]models.Ess, error) {
	return d.ess.All(ctx)
}

// EssByStatus returns ESS units in the given state.
func (d *Directory) EssByStatus(ctx context.Context, status string) ([]models.Ess, error) {
	return d.ess.ByStatus(ctx, status)
}

// UpdateStationStatus validates and applies a station status change.
// Returns false when the station does not exist.
func (d *Directory) UpdateStationStatus(ctx context.Context, stationID int64, status string) (bool, error) {
	if !models.ValidStationStatus(status) {
		return false, fmt.Errorf("%w: station status %q", ErrInvalidStatus, status)
	}
	return d.stations.UpdateStatus(ctx, stationID, status)
}

// UpdateEvseStatus validates and applies an EVSE status change.
func (d *Directory) UpdateEvseStatus(ctx context.Context, evseID int64, status string) (bool, error) {
	if !models.ValidEvseStatus(status) {
		return false, fmt.Errorf("%w: evse status %q", ErrInvalidStatus, status)
	}
	return d.evses.UpdateStatus(ctx, evseID, status)
}

// UpdateEssStatus validates and applies an ESS status change.
func (d *Directory) UpdateEssStatus(ctx context.Context, essID int64, status string) (bool, error) {
	if !models.ValidEssStatus(status) {
		return false, fmt.Errorf("%w: ess status %q", ErrInvalidStatus, status)
	}
	return d.ess.UpdateStatus(ctx, essID, status)
}
