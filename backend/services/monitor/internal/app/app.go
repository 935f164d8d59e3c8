package app

import (
	"context"

	"go.uber.org/zap"

	"chargeview/backend/services/monitor/internal/client"
	"chargeview/backend/services/monitor/internal/config"
	"chargeview/backend/services/monitor/internal/mqtt"
	"chargeview/backend/services/monitor/internal/watcher"
)

// App wires monitor dependencies.
type App struct {
	api       *client.Client
	watcher   *watcher.Watcher
	publisher *mqtt.Publisher
	cfg       *config.Config
	logger    *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	tokens := client.NewTokenStore(cfg.DataDir)
	api := client.New(cfg.API.BaseURL, tokens, logger)

	var publisher *mqtt.Publisher
	if cfg.MQTT.Enable {
		var err error
		publisher, err = mqtt.NewPublisher(cfg.MQTT.BrokerURL, cfg.MQTT.ClientID, cfg.MQTT.TopicPrefix, logger)
		if err != nil {
			return nil, err
		}
	}

	var onRefresh func(watcher.Snapshot)
	if publisher != nil {
		onRefresh = publisher.PublishSnapshot
	}
	fleet := watcher.New(api, cfg.Watcher.RefreshInterval, cfg.Watcher.FallbackMode, logger, onRefresh)

	return &App{
		api:       api,
		watcher:   fleet,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Run logs in when credentials are configured, then polls until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.API.Username != "" && a.cfg.API.Password != "" {
		if err := a.api.Login(ctx, a.cfg.API.Username, a.cfg.API.Password); err != nil {
			a.logger.Warn("login failed, continuing read-only", zap.Error(err))
		}
	}

	if err := a.watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.watcher.Stop()
	return ctx.Err()
}

// Close releases resources.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
}
