package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const stationColumns = `station_id, station_alias, road_address, station_status, update_time, evse_count, station_load_kw, latitude, longitude`

// StationRepository reads charging stations from the relational store.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Ping verifies store connectivity.
func (r *StationRepository) Ping(ctx context.Context) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return dataAccessErr("stations: ping", err)
	}
	return nil
}

// All returns every station ordered by identifier.
func (r *StationRepository) All(ctx context.Context) ([]models.Station, error) {
	const query = `
		SELECT ` + stationColumns + `
		FROM charging_stations
		ORDER BY station_id
	`
	return r.queryStations(ctx, "stations: all", query)
}

// ByID returns a single station, or nil when it does not exist.
func (r *StationRepository) ByID(ctx context.Context, stationID int64) (*models.Station, error) {
	const query = `
		SELECT ` + stationColumns + `
		FROM charging_stations
		WHERE station_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	station, err := scanStation(r.db.QueryRowContext(ctx, query, stationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataAccessErr("stations: by id", err)
	}
	return station, nil
}

// ByRegion returns stations whose address contains the given substring.
// The match is case-sensitive against the stored address.
func (r *StationRepository) ByRegion(ctx context.Context, region string) ([]models.Station, error) {
	const query = `
		SELECT ` + stationColumns + `
		FROM charging_stations
		WHERE road_address LIKE '%' || $1 || '%'
		ORDER BY station_id
	`
	return r.queryStations(ctx, "stations: by region", query, region)
}

// Online returns only stations currently marked online.
func (r *StationRepository) Online(ctx context.Context) ([]models.Station, error) {
	const query = `
		SELECT ` + stationColumns + `
		FROM charging_stations
		WHERE station_status = 'online'
		ORDER BY station_id
	`
	return r.queryStations(ctx, "stations: online", query)
}

// UpdateStatus sets the operational status. Returns false when the station
// does not exist.
func (r *StationRepository) UpdateStatus(ctx context.Context, stationID int64, status string) (bool, error) {
	const query = `
		UPDATE charging_stations
		SET station_status = $2, update_time = NOW()
		WHERE station_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, stationID, status)
	if err != nil {
		return false, dataAccessErr("stations: update status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, dataAccessErr("stations: update status", err)
	}
	return affected > 0, nil
}

func (r *StationRepository) queryStations(ctx context.Context, op, query string, args ...interface{}) ([]models.Station, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccessErr(op, err)
	}
	defer rows.Close()

	stations := make([]models.Station, 0)
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, dataAccessErr(op, err)
		}
		stations = append(stations, *station)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr(op, err)
	}
	return stations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var (
		station   models.Station
		latitude  sql.NullFloat64
		longitude sql.NullFloat64
	)
	if err := row.Scan(
		&station.StationID,
		&station.StationAlias,
		&station.RoadAddress,
		&station.StationStatus,
		&station.UpdateTime,
		&station.EvseCount,
		&station.StationLoadKw,
		&latitude,
		&longitude,
	); err != nil {
		return nil, err
	}
	if latitude.Valid {
		station.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		station.Longitude = &longitude.Float64
	}
	return &station, nil
}
