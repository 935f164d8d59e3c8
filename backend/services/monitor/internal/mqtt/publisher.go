package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"chargeview/backend/services/monitor/internal/watcher"
)

const connectTimeout = 10 * time.Second

// Publisher mirrors each fleet snapshot onto MQTT state topics.
type Publisher struct {
	client pahomqtt.Client
	prefix string
	logger *zap.Logger
}

// NewPublisher connects to the broker. Topics are published under prefix.
func NewPublisher(brokerURL, clientID, prefix string, logger *zap.Logger) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt: connect to %s timed out", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", brokerURL, err)
	}

	return &Publisher{client: client, prefix: prefix, logger: logger}, nil
}

type summaryPayload struct {
	Total             int    `json:"total"`
	NormalCount       int    `json:"normalCount"`
	DisconnectedCount int    `json:"disconnectedCount"`
	OperationalRate   int    `json:"operationalRate"`
	LastUpdated       string `json:"lastUpdated"`
	LastError         string `json:"lastError,omitempty"`
}

// PublishSnapshot writes the fleet summary and a status topic per charger.
// Publish failures are logged, not returned; the next cycle republishes the
// full state anyway.
func (p *Publisher) PublishSnapshot(snap watcher.Snapshot) {
	summary := summaryPayload{
		Total:             snap.Total,
		NormalCount:       snap.NormalCount,
		DisconnectedCount: snap.DisconnectedCount,
		OperationalRate:   snap.OperationalRate,
		LastUpdated:       snap.LastUpdated.UTC().Format(time.RFC3339),
		LastError:         snap.LastError,
	}
	p.publishJSON(p.prefix+"/summary", summary)

	for _, charger := range snap.Normal {
		p.publish(fmt.Sprintf("%s/chargers/%s/status", p.prefix, charger.ID), charger.Status)
	}
	for _, charger := range snap.Disconnected {
		p.publish(fmt.Sprintf("%s/chargers/%s/status", p.prefix, charger.ID), charger.Status)
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

func (p *Publisher) publishJSON(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("mqtt payload marshal failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	p.publish(topic, string(data))
}

func (p *Publisher) publish(topic, payload string) {
	token := p.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(connectTimeout) {
		p.logger.Warn("mqtt publish timed out", zap.String("topic", topic))
		return
	}
	if err := token.Error(); err != nil {
		p.logger.Warn("mqtt publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
