package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/cache"
	"chargeview/backend/services/dashboard-api/internal/csvstore"
	"chargeview/backend/services/dashboard-api/internal/models"
)

// Station list sources. The source is deployment policy, not a runtime
// fallback chain: a db-backed deployment only reaches for the cache, never
// silently for fixtures.
const (
	SourceDB     = "db"
	SourceCSV    = "csv"
	SourceStatic = "static"
)

// ErrInvalidStatus marks a status value outside the entity's enum.
var ErrInvalidStatus = errors.New("invalid status")

// StationLister is the subset of the directory the catalog needs.
type StationLister interface {
	Stations(ctx context.Context) ([]models.Station, error)
}

// LastGoodCache stores and recalls the last successful station list.
type LastGoodCache interface {
	Save(ctx context.Context, stations []models.LegacyStation) error
	Load(ctx context.Context) ([]models.LegacyStation, error)
}

// Catalog serves the station list in legacy shape from the configured source.
type Catalog struct {
	source   string
	lister   StationLister
	lastGood LastGoodCache
	csvPath  string
	fixtures []models.LegacyStation
	logger   *zap.Logger
}

// NewCatalog builds the station list source. lastGood may be nil when no
// cache is deployed.
func NewCatalog(source string, lister StationLister, lastGood LastGoodCache, csvPath string, logger *zap.Logger) (*Catalog, error) {
	switch source {
	case SourceDB, SourceCSV, SourceStatic:
	default:
		return nil, fmt.Errorf("catalog: unknown source %q", source)
	}
	if source == SourceDB && lister == nil {
		return nil, errors.New("catalog: db source requires a station lister")
	}
	if source == SourceCSV && csvPath == "" {
		return nil, errors.New("catalog: csv source requires a file path")
	}
	return &Catalog{
		source:   source,
		lister:   lister,
		lastGood: lastGood,
		csvPath:  csvPath,
		fixtures: StaticStations(),
		logger:   logger,
	}, nil
}

// ListChargers returns the station list in legacy shape.
func (c *Catalog) ListChargers(ctx context.Context) ([]models.LegacyStation, error) {
	switch c.source {
	case SourceCSV:
		return csvstore.Load(c.csvPath)
	case SourceStatic:
		return c.fixtures, nil
	}

	stations, err := c.lister.Stations(ctx)
	if err != nil {
		if c.lastGood == nil {
			return nil, err
		}
		cached, cacheErr := c.lastGood.Load(ctx)
		if cacheErr != nil {
			if !errors.Is(cacheErr, cache.ErrMiss) {
				c.logger.Warn("station cache read failed", zap.Error(cacheErr))
			}
			return nil, err
		}
		c.logger.Warn("store unreachable, serving last-good station list", zap.Error(err))
		return cached, nil
	}

	legacy := models.ToLegacySlice(stations)
	if c.lastGood != nil {
		if err := c.lastGood.Save(ctx, legacy); err != nil {
			c.logger.Warn("station cache write failed", zap.Error(err))
		}
	}
	return legacy, nil
}

// StaticStations returns the fixed development dataset.
func StaticStations() []models.LegacyStation {
	return []models.LegacyStation{
		{StationName: "Seoul Station", Region: "Seoul", Address: "Seoul Jung-gu", StationID: "CHG001", Status: models.LegacyStatusOnline, UpdateTime: "2024-01-01T00:00:00Z"},
		{StationName: "Gangnam Station", Region: "Seoul", Address: "Seoul Gangnam-gu", StationID: "CHG002", Status: models.LegacyStatusOnline, UpdateTime: "2024-01-01T00:00:00Z"},
		{StationName: "Busan Station", Region: "Busan", Address: "Busan Haeundae-gu", StationID: "CHG003", Status: models.LegacyStatusOffline, UpdateTime: "2024-01-01T00:00:00Z"},
		{StationName: "Incheon Airport", Region: "Incheon", Address: "Incheon Jung-gu", StationID: "CHG004", Status: models.LegacyStatusOnline, UpdateTime: "2024-01-01T00:00:00Z"},
		{StationName: "Daejeon Station", Region: "Daejeon", Address: "Daejeon Dong-gu", StationID: "CHG005", Status: models.LegacyStatusOffline, UpdateTime: "2024-01-01T00:00:00Z"},
	}
}
