package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const evseColumns = `evse_id, station_id, status, max_power_kw, connector_count, update_time`

// EvseRepository reads EVSEs from the relational store.
type EvseRepository struct {
	db *sql.DB
}

// NewEvseRepository returns repository.
func NewEvseRepository(db *sql.DB) *EvseRepository {
	return &EvseRepository{db: db}
}

// ByStationID returns every EVSE of a station ordered by identifier. The
// result is empty, not nil, when the station has none.
func (r *EvseRepository) ByStationID(ctx context.Context, stationID int64) ([]models.Evse, error) {
	const query = `
		SELECT ` + evseColumns + `
		FROM evses
		WHERE station_id = $1
		ORDER BY evse_id
	`
	return r.queryEvses(ctx, "evses: by station", query, stationID)
}

// ByID returns a single EVSE, or nil when it does not exist.
func (r *EvseRepository) ByID(ctx context.Context, evseID int64) (*models.Evse, error) {
	const query = `
		SELECT ` + evseColumns + `
		FROM evses
		WHERE evse_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var evse models.Evse
	err := r.db.QueryRowContext(ctx, query, evseID).Scan(
		&evse.EvseID,
		&evse.StationID,
		&evse.Status,
		&evse.MaxPowerKw,
		&evse.ConnectorCount,
		&evse.UpdateTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataAccessErr("evses: by id", err)
	}
	return &evse, nil
}

// UpdateStatus sets the EVSE status. Returns false when the EVSE does not exist.
func (r *EvseRepository) UpdateStatus(ctx context.Context, evseID int64, status string) (bool, error) {
	const query = `
		UPDATE evses
		SET status = $2, update_time = NOW()
		WHERE evse_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, evseID, status)
	if err != nil {
		return false, dataAccessErr("evses: update status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, dataAccessErr("evses: update status", err)
	}
	return affected > 0, nil
}

func (r *EvseRepository) queryEvses(ctx context.Context, op, query string, args ...interface{}) ([]models.Evse, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccessErr(op, err)
	}
	defer rows.Close()

	evses := make([]models.Evse, 0)
	for rows.Next() {
		var evse models.Evse
		if err := rows.Scan(
			&evse.EvseID,
			&evse.StationID,
			&evse.Status,
			&evse.MaxPowerKw,
			&evse.ConnectorCount,
			&evse.UpdateTime,
		); err != nil {
			return nil, dataAccessErr(op, err)
		}
		evses = append(evses, evse)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr(op, err)
	}
	return evses, nil
}
