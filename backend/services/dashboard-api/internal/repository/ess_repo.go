package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const essColumns = `ess_id, station_id, manufacturer, model, serial_number, commissioned_at, warranty_until,
		capacity_kwh, rated_power_kw, max_charge_power_kw, max_discharge_power_kw,
		voltage_min, voltage_max, phases, ess_status, soc_percent, soh_percent,
		temperature_c, cycle_count, last_update_at`

// EssRepository reads energy storage units from the relational store.
type EssRepository struct {
	db *sql.DB
}

// NewEssRepository returns repository.
func NewEssRepository(db *sql.DB) *EssRepository {
	return &EssRepository{db: db}
}

// ByStationID returns every ESS of a station ordered by identifier.
func (r *EssRepository) ByStationID(ctx context.Context, stationID int64) ([]models.Ess, error) {
	const query = `
		SELECT ` + essColumns + `
		FROM ess_units
		WHERE station_id = $1
		ORDER BY ess_id
	`
	return r.queryEss(ctx, "ess: by station", query, stationID)
}

// ByID returns a single ESS, or nil when it does not exist.
func (r *EssRepository) ByID(ctx context.Context, essID int64) (*models.Ess, error) {
	const query = `
		SELECT ` + essColumns + `
		FROM ess_units
		WHERE ess_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	ess, err := scanEss(r.db.QueryRowContext(ctx, query, essID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataAccessErr("ess: by id", err)
	}
	return ess, nil
}

// All returns every ESS ordered by station then identifier.
func (r *EssRepository) All(ctx context.Context) ([]models.Ess, error) {
	const query = `
		SELECT ` + essColumns + `
		FROM ess_units
		ORDER BY station_id, ess_id
	`
	return r.queryEss(ctx, "ess: all", query)
}

// ByStatus returns ESS units with the given status. The status must be one
// of the four known values.
func (r *EssRepository) ByStatus(ctx context.Context, status string) ([]models.Ess, error) {
	if !models.ValidEssStatus(status) {
		return nil, fmt.Errorf("ess: unknown status %q", status)
	}
	const query = `
		SELECT ` + essColumns + `
		FROM ess_units
		WHERE ess_status = $1
		ORDER BY station_id, ess_id
	`
	return r.queryEss(ctx, "ess: by status", query, status)
}

// UpdateStatus sets the ESS status. Returns false when the unit does not exist.
func (r *EssRepository) UpdateStatus(ctx context.Context, essID int64, status string) (bool, error) {
	const query = `
		UPDATE ess_units
		SET ess_status = $2, last_update_at = NOW()
		WHERE ess_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, essID, status)
	if err != nil {
		return false, dataAccessErr("ess: update status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, dataAccessErr("ess: update status", err)
	}
	return affected > 0, nil
}

func (r *EssRepository) queryEss(ctx context.Context, op, query string, args ...interface{}) ([]models.Ess, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccessErr(op, err)
	}
	defer rows.Close()

	units := make([]models.Ess, 0)
	for rows.Next() {
		ess, err := scanEss(rows)
		if err != nil {
			return nil, dataAccessErr(op, err)
		}
		units = append(units, *ess)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr(op, err)
	}
	return units, nil
}

func scanEss(row rowScanner) (*models.Ess, error) {
	var (
		ess           models.Ess
		manufacturer  sql.NullString
		model         sql.NullString
		serialNumber  sql.NullString
		commissioned  sql.NullTime
		warranty      sql.NullTime
		ratedPower    sql.NullFloat64
		maxCharge     sql.NullFloat64
		maxDischarge  sql.NullFloat64
		voltageMin    sql.NullFloat64
		voltageMax    sql.NullFloat64
		phases        sql.NullInt64
		socPercent    sql.NullFloat64
		sohPercent    sql.NullFloat64
		temperatureC  sql.NullFloat64
		cycleCount    sql.NullInt64
	)
	if err := row.Scan(
		&ess.EssID,
		&ess.StationID,
		&manufacturer,
		&model,
		&serialNumber,
		&commissioned,
		&warranty,
		&ess.CapacityKwh,
		&ratedPower,
		&maxCharge,
		&maxDischarge,
		&voltageMin,
		&voltageMax,
		&phases,
		&ess.EssStatus,
		&socPercent,
		&sohPercent,
		&temperatureC,
		&cycleCount,
		&ess.LastUpdateAt,
	); err != nil {
		return nil, err
	}

	if manufacturer.Valid {
		ess.Manufacturer = &manufacturer.String
	}
	if model.Valid {
		ess.Model = &model.String
	}
	if serialNumber.Valid {
		ess.SerialNumber = &serialNumber.String
	}
	if commissioned.Valid {
		ess.CommissionedAt = &commissioned.Time
	}
	if warranty.Valid {
		ess.WarrantyUntil = &warranty.Time
	}
	if ratedPower.Valid {
		ess.RatedPowerKw = &ratedPower.Float64
	}
	if maxCharge.Valid {
		ess.MaxChargePowerKw = &maxCharge.Float64
	}
	if maxDischarge.Valid {
		ess.MaxDischargePowerKw = &maxDischarge.Float64
	}
	if voltageMin.Valid {
		ess.VoltageMin = &voltageMin.Float64
	}
	if voltageMax.Valid {
		ess.VoltageMax = &voltageMax.Float64
	}
	if phases.Valid {
		p := int(phases.Int64)
		ess.Phases = &p
	}
	if socPercent.Valid {
		ess.SocPercent = &socPercent.Float64
	}
	if sohPercent.Valid {
		ess.SohPercent = &sohPercent.Float64
	}
	if temperatureC.Valid {
		ess.TemperatureC = &temperatureC.Float64
	}
	if cycleCount.Valid {
		c := int(cycleCount.Int64)
		ess.CycleCount = &c
	}
	return &ess, nil
}
