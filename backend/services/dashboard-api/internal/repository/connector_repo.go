package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const connectorColumns = `connector_id, evse_id, connector_type, max_power_kw, status, update_time`

// ConnectorRepository reads connectors from the relational store.
type ConnectorRepository struct {
	db *sql.DB
}

// NewConnectorRepository returns repository.
func NewConnectorRepository(db *sql.DB) *ConnectorRepository {
	return &ConnectorRepository{db: db}
}

// ByEvseID returns every connector of an EVSE ordered by identifier.
func (r *ConnectorRepository) ByEvseID(ctx context.Context, evseID int64) ([]models.Connector, error) {
	const query = `
		SELECT ` + connectorColumns + `
		FROM connectors
		WHERE evse_id = $1
		ORDER BY connector_id
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, evseID)
	if err != nil {
		return nil, dataAccessErr("connectors: by evse", err)
	}
	defer rows.Close()

	connectors := make([]models.Connector, 0)
	for rows.Next() {
		var connector models.Connector
		if err := scanConnector(rows, &connector); err != nil {
			return nil, dataAccessErr("connectors: by evse", err)
		}
		connectors = append(connectors, connector)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("connectors: by evse", err)
	}
	return connectors, nil
}

// ByID returns a single connector, or nil when it does not exist.
func (r *ConnectorRepository) ByID(ctx context.Context, connectorID int64) (*models.Connector, error) {
	const query = `
		SELECT ` + connectorColumns + `
		FROM connectors
		WHERE connector_id = $1
	`
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var connector models.Connector
	err := scanConnector(r.db.QueryRowContext(ctx, query, connectorID), &connector)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataAccessErr("connectors: by id", err)
	}
	return &connector, nil
}

func scanConnector(row rowScanner, connector *models.Connector) error {
	return row.Scan(
		&connector.ConnectorID,
		&connector.EvseID,
		&connector.ConnectorType,
		&connector.MaxPowerKw,
		&connector.Status,
		&connector.UpdateTime,
	)
}
