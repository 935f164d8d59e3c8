package config

import (
	"time"

	libconfig "chargeview/backend/libs/config"
	"chargeview/backend/libs/logging"
)

// Config defines monitor configuration.
type Config struct {
	API struct {
		BaseURL  string `yaml:"baseUrl" env:"API_BASE_URL"`
		Username string `yaml:"username" env:"API_USERNAME"`
		Password string `yaml:"password" env:"API_PASSWORD"`
	} `yaml:"api"`
	DataDir string `yaml:"dataDir" env:"DATA_DIR"`
	Watcher struct {
		RefreshInterval time.Duration `yaml:"refreshInterval" env:"REFRESH_INTERVAL"`
		FallbackMode    string        `yaml:"fallbackMode" env:"FALLBACK_MODE"`
	} `yaml:"watcher"`
	MQTT struct {
		Enable      bool   `yaml:"enable" env:"MQTT_ENABLE"`
		BrokerURL   string `yaml:"brokerUrl" env:"MQTT_BROKER_URL"`
		ClientID    string `yaml:"clientId" env:"MQTT_CLIENT_ID"`
		TopicPrefix string `yaml:"topicPrefix" env:"MQTT_TOPIC_PREFIX"`
	} `yaml:"mqtt"`
	Logging struct {
		File logging.FileSettings `yaml:"file"`
	} `yaml:"logging"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.Watcher.RefreshInterval = 15 * time.Minute
	cfg.Watcher.FallbackMode = "fixtures"
	cfg.MQTT.BrokerURL = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "chargeview-monitor"
	cfg.MQTT.TopicPrefix = "chargeview"

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
