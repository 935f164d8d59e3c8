package model

import "strings"

// Charger status buckets the monitor aggregates into.
const (
	StatusNormal       = "normal"
	StatusDisconnected = "disconnected"
)

// Charger is the monitor's view of one station: the handful of fields the
// aggregation and search logic needs.
type Charger struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	MessageType    string `json:"messageType,omitempty"`
	LastConnection string `json:"lastConnection,omitempty"`
}

// LegacyStation mirrors the /api/chargers payload.
type LegacyStation struct {
	StationName   string   `json:"stationName"`
	Region        string   `json:"region"`
	Address       string   `json:"address"`
	StationID     string   `json:"stationId"`
	Status        string   `json:"status"`
	UpdateTime    string   `json:"updateTime"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	EvseCount     *int     `json:"evseCount,omitempty"`
	StationLoadKw *float64 `json:"stationLoadKw,omitempty"`
}

// FromLegacy maps a wire station to a Charger. Online/Offline become the two
// monitor buckets; any other status is passed through lowercased so it falls
// outside both buckets.
func FromLegacy(station LegacyStation) Charger {
	var status string
	switch station.Status {
	case "Online":
		status = StatusNormal
	case "Offline":
		status = StatusDisconnected
	default:
		status = strings.ToLower(station.Status)
	}
	return Charger{
		ID:             station.StationID,
		Name:           station.StationName,
		Location:       station.Address,
		Status:         status,
		LastConnection: station.UpdateTime,
	}
}

// FromLegacySlice maps a slice preserving order; never nil.
func FromLegacySlice(stations []LegacyStation) []Charger {
	out := make([]Charger, 0, len(stations))
	for _, station := range stations {
		out = append(out, FromLegacy(station))
	}
	return out
}

// Station mirrors the enveloped station detail payload.
type Station struct {
	StationID     int64    `json:"stationId"`
	StationAlias  string   `json:"stationAlias"`
	RoadAddress   string   `json:"roadAddress"`
	StationStatus string   `json:"stationStatus"`
	UpdateTime    string   `json:"updateTime"`
	EvseCount     int      `json:"evseCount"`
	StationLoadKw float64  `json:"stationLoadKw"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// Evse mirrors the enveloped EVSE payload.
type Evse struct {
	EvseID         int64   `json:"evseId"`
	StationID      int64   `json:"stationId"`
	Status         string  `json:"status"`
	MaxPowerKw     float64 `json:"maxPowerKw"`
	ConnectorCount int     `json:"connectorCount"`
	UpdateTime     string  `json:"updateTime"`
}

// Connector mirrors the enveloped connector payload.
type Connector struct {
	ConnectorID   int64   `json:"connectorId"`
	EvseID        int64   `json:"evseId"`
	ConnectorType string  `json:"connectorType"`
	MaxPowerKw    float64 `json:"maxPowerKw"`
	Status        string  `json:"status"`
	UpdateTime    string  `json:"updateTime"`
}

// MeterValue mirrors the enveloped meter value payload.
type MeterValue struct {
	MeterValueID  int64   `json:"meterValueId"`
	StationID     int64   `json:"stationId"`
	EvseID        int64   `json:"evseId"`
	ConnectorID   *int64  `json:"connectorId,omitempty"`
	TransactionID *string `json:"transactionId,omitempty"`
	SampledAt     string  `json:"sampledAt"`
	Location      string  `json:"location"`
	CreatedAt     string  `json:"createdAt"`
}

// Ess mirrors the enveloped ESS payload, trimmed to the telemetry the
// monitor surfaces.
type Ess struct {
	EssID        int64    `json:"essId"`
	StationID    int64    `json:"stationId"`
	EssStatus    string   `json:"essStatus"`
	CapacityKwh  float64  `json:"capacityKwh"`
	SocPercent   *float64 `json:"socPercent,omitempty"`
	SohPercent   *float64 `json:"sohPercent,omitempty"`
	TemperatureC *float64 `json:"temperatureC,omitempty"`
	LastUpdateAt string   `json:"lastUpdateAt"`
}
