package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"chargeview/backend/libs/db"
	libredis "chargeview/backend/libs/redis"
	"chargeview/backend/services/dashboard-api/internal/cache"
	"chargeview/backend/services/dashboard-api/internal/clients"
	"chargeview/backend/services/dashboard-api/internal/config"
	httpserver "chargeview/backend/services/dashboard-api/internal/http"
	"chargeview/backend/services/dashboard-api/internal/http/handlers"
	"chargeview/backend/services/dashboard-api/internal/http/middleware"
	"chargeview/backend/services/dashboard-api/internal/metrics"
	"chargeview/backend/services/dashboard-api/internal/repository"
	"chargeview/backend/services/dashboard-api/internal/service"
	"chargeview/backend/services/dashboard-api/internal/ws"
)

// App wires dashboard-api dependencies.
type App struct {
	server *httpserver.Server
	hub    *ws.Hub
	pool   *sql.DB
	logger *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	var pool *sql.DB
	if cfg.Chargers.Source == service.SourceDB {
		var err error
		pool, err = db.NewPostgresDB(cfg.Database)
		if err != nil {
			return nil, err
		}
	}

	var directory *service.Directory
	if pool != nil {
		directory = service.NewDirectory(
			repository.NewStationRepository(pool),
			repository.NewEvseRepository(pool),
			repository.NewConnectorRepository(pool),
			repository.NewMeterValueRepository(pool),
			repository.NewEssRepository(pool),
			logger,
		)
	}

	var lastGood service.LastGoodCache
	if cfg.Redis.Addr != "" {
		client, err := libredis.NewRedisClient(cfg.Redis.Settings)
		if err != nil {
			logger.Warn("redis unavailable, station cache disabled", zap.Error(err))
		} else {
			lastGood = cache.NewStationCache(client, cfg.Redis.CacheTTL)
		}
	}

	var (
		lister        service.StationLister
		stationReader handlers.StationReader = service.Unavailable{}
		evseReader    handlers.EvseReader    = service.Unavailable{}
		essReader     handlers.EssReader     = service.Unavailable{}
		statusUpdater handlers.StatusUpdater = service.Unavailable{}
	)
	if directory != nil {
		lister = directory
		stationReader = directory
		evseReader = directory
		essReader = directory
		statusUpdater = directory
	}
	catalog, err := service.NewCatalog(cfg.Chargers.Source, lister, lastGood, cfg.Chargers.CSVPath, logger)
	if err != nil {
		return nil, err
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth, err := service.NewAuthService(cfg.Auth.Username, cfg.Auth.Password, tokens)
	if err != nil {
		return nil, err
	}

	provisioning := clients.NewProvisioningClient(
		cfg.Upstream.BaseURL,
		clients.NewDefaultHTTPClient(cfg.UpstreamTimeout()),
	)

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	var hub *ws.Hub
	deps := httpserver.RouterDeps{
		Chargers:     handlers.NewChargersHandlers(catalog, stationReader, logger),
		Evses:        handlers.NewEvseHandlers(evseReader, logger),
		Ess:          handlers.NewEssHandlers(essReader, logger),
		SetVariables: handlers.NewSetVariablesHandlers(provisioning, logger),
		Status:       handlers.NewStatusHandlers(statusUpdater, logger),
		Auth:         handlers.NewAuthHandlers(auth, logger),
		Health:       handlers.NewHealthHandler(),
		Metrics:      metrics.Handler(registry),
	}
	if cfg.WS.Enable {
		hub = ws.NewHub(catalog, cfg.WS.Interval, logger)
		deps.StationsWS = hub.Handler
	}

	router := httpserver.NewRouter(deps, middleware.AuthMiddleware(tokens))

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.MetricsMiddleware(httpMetrics),
	)

	return &App{
		server: server,
		hub:    hub,
		pool:   pool,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic and the snapshot broadcaster.
func (a *App) Run(ctx context.Context) error {
	if a.hub != nil {
		go a.hub.Run(ctx)
	}
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
