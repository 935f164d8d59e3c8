package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargeview/backend/libs/config"
	"chargeview/backend/libs/db"
	"chargeview/backend/libs/logging"
	"chargeview/backend/libs/redis"
)

// Config defines dashboard-api configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT"`
	} `yaml:"http"`
	Database db.Settings `yaml:"database"`
	Upstream struct {
		BaseURL        string `yaml:"baseUrl" env:"UPSTREAM_BASE_URL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"UPSTREAM_TIMEOUT"`
	} `yaml:"upstream"`
	Chargers struct {
		Source  string `yaml:"source" env:"CHARGERS_SOURCE"`
		CSVPath string `yaml:"csvPath" env:"CHARGERS_CSV_PATH"`
	} `yaml:"chargers"`
	Redis struct {
		redis.Settings `yaml:",inline"`
		CacheTTL       time.Duration `yaml:"cacheTtl" env:"STATION_CACHE_TTL"`
	} `yaml:"redis"`
	Auth struct {
		Username  string        `yaml:"username" env:"AUTH_USERNAME"`
		Password  string        `yaml:"password" env:"AUTH_PASSWORD"`
		JWTSecret string        `yaml:"jwtSecret" env:"JWT_SECRET"`
		TokenTTL  time.Duration `yaml:"tokenTtl" env:"TOKEN_TTL"`
	} `yaml:"auth"`
	WS struct {
		Enable   bool          `yaml:"enable" env:"WS_ENABLE"`
		Interval time.Duration `yaml:"interval" env:"WS_INTERVAL"`
	} `yaml:"ws"`
	Logging struct {
		File logging.FileSettings `yaml:"file"`
	} `yaml:"logging"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Upstream.BaseURL = "http://localhost:8090"
	cfg.Upstream.TimeoutSeconds = 10
	cfg.Chargers.Source = "db"
	cfg.Redis.CacheTTL = time.Hour
	cfg.Auth.TokenTTL = time.Hour
	cfg.WS.Enable = true
	cfg.WS.Interval = 30 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if strings.TrimSpace(cfg.Auth.Username) == "" || strings.TrimSpace(cfg.Auth.Password) == "" {
		return nil, errors.New("config: operator credentials required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// UpstreamTimeout returns the fleet backend client timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	if c.Upstream.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}
