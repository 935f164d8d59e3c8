package repository

import (
	"context"
	"database/sql"

	"chargeview/backend/services/dashboard-api/internal/models"
)

// Default window sizes when the caller passes a non-positive limit.
const (
	DefaultStationMeterLimit   = 100
	DefaultEvseMeterLimit      = 50
	DefaultConnectorMeterLimit = 50
)

const meterValueColumns = `meter_value_id, station_id, evse_id, connector_id, transaction_id, sampled_at, location, created_at`

// MeterValueRepository reads measurement samples. The table is append-only
// from the device fleet's side; reads always take the most recent window.
type MeterValueRepository struct {
	db *sql.DB
}

// NewMeterValueRepository returns repository.
func NewMeterValueRepository(db *sql.DB) *MeterValueRepository {
	return &MeterValueRepository{db: db}
}

// RecentByStation returns at most limit samples for a station, most recent first.
func (r *MeterValueRepository) RecentByStation(ctx context.Context, stationID int64, limit int) ([]models.MeterValue, error) {
	if limit <= 0 {
		limit = DefaultStationMeterLimit
	}
	const query = `
		SELECT ` + meterValueColumns + `
		FROM meter_values
		WHERE station_id = $1
		ORDER BY sampled_at DESC
		LIMIT $2
	`
	return r.queryMeterValues(ctx, "meter values: by station", query, stationID, limit)
}

// RecentByEvse returns at most limit samples for an EVSE, most recent first.
func (r *MeterValueRepository) RecentByEvse(ctx context.Context, evseID int64, limit int) ([]models.MeterValue, error) {
	if limit <= 0 {
		limit = DefaultEvseMeterLimit
	}
	const query = `
		SELECT ` + meterValueColumns + `
		FROM meter_values
		WHERE evse_id = $1
		ORDER BY sampled_at DESC
		LIMIT $2
	`
	return r.queryMeterValues(ctx, "meter values: by evse", query, evseID, limit)
}

// RecentByConnector returns at most limit samples for a connector, most recent first.
func (r *MeterValueRepository) RecentByConnector(ctx context.Context, connectorID int64, limit int) ([]models.MeterValue, error) {
	if limit <= 0 {
		limit = DefaultConnectorMeterLimit
	}
	const query = `
		SELECT ` + meterValueColumns + `
		FROM meter_values
		WHERE connector_id = $1
		ORDER BY sampled_at DESC
		LIMIT $2
	`
	return r.queryMeterValues(ctx, "meter values: by connector", query, connectorID, limit)
}

func (r *MeterValueRepository) queryMeterValues(ctx context.Context, op, query string, args ...interface{}) ([]models.MeterValue, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccessErr(op, err)
	}
	defer rows.Close()

	values := make([]models.MeterValue, 0)
	for rows.Next() {
		var (
			value         models.MeterValue
			connectorID   sql.NullInt64
			transactionID sql.NullString
		)
		if err := rows.Scan(
			&value.MeterValueID,
			&value.StationID,
			&value.EvseID,
			&connectorID,
			&transactionID,
			&value.SampledAt,
			&value.Location,
			&value.CreatedAt,
		); err != nil {
			return nil, dataAccessErr(op, err)
		}
		if connectorID.Valid {
			value.ConnectorID = &connectorID.Int64
		}
		if transactionID.Valid {
			value.TransactionID = &transactionID.String
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr(op, err)
	}
	return values, nil
}
