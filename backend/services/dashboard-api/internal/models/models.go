package models

import "time"

// Station status values.
const (
	StationStatusOnline  = "online"
	StationStatusOffline = "offline"
)

// EVSE / connector status values.
const (
	EvseStatusAvailable = "available"
	EvseStatusOccupied  = "occupied"
	EvseStatusFaulted   = "faulted"
)

// ESS status values.
const (
	EssStatusOnline      = "online"
	EssStatusOffline     = "offline"
	EssStatusFaulted     = "faulted"
	EssStatusMaintenance = "maintenance"
)

// ValidStationStatus reports whether s is a known station status.
func ValidStationStatus(s string) bool {
	return s == StationStatusOnline || s == StationStatusOffline
}

// ValidEvseStatus reports whether s is a known EVSE/connector status.
func ValidEvseStatus(s string) bool {
	return s == EvseStatusAvailable || s == EvseStatusOccupied || s == EvseStatusFaulted
}

// ValidEssStatus reports whether s is a known ESS status.
func ValidEssStatus(s string) bool {
	switch s {
	case EssStatusOnline, EssStatusOffline, EssStatusFaulted, EssStatusMaintenance:
		return true
	}
	return false
}

// Station is a charging station as stored by the fleet backend.
type Station struct {
	StationID     int64     `db:"station_id" json:"stationId"`
	StationAlias  string    `db:"station_alias" json:"stationAlias"`
	RoadAddress   string    `db:"road_address" json:"roadAddress"`
	StationStatus string    `db:"station_status" json:"stationStatus"`
	UpdateTime    time.Time `db:"update_time" json:"updateTime"`
	EvseCount     int       `db:"evse_count" json:"evseCount"`
	StationLoadKw float64   `db:"station_load_kw" json:"stationLoadKw"`
	Latitude      *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude     *float64  `db:"longitude" json:"longitude,omitempty"`
}

// Evse is a charging point belonging to a station.
type Evse struct {
	EvseID         int64     `db:"evse_id" json:"evseId"`
	StationID      int64     `db:"station_id" json:"stationId"`
	Status         string    `db:"status" json:"status"`
	MaxPowerKw     float64   `db:"max_power_kw" json:"maxPowerKw"`
	ConnectorCount int       `db:"connector_count" json:"connectorCount"`
	UpdateTime     time.Time `db:"update_time" json:"updateTime"`
}

// Connector is a physical plug belonging to an EVSE.
type Connector struct {
	ConnectorID   int64     `db:"connector_id" json:"connectorId"`
	EvseID        int64     `db:"evse_id" json:"evseId"`
	ConnectorType string    `db:"connector_type" json:"connectorType"`
	MaxPowerKw    float64   `db:"max_power_kw" json:"maxPowerKw"`
	Status        string    `db:"status" json:"status"`
	UpdateTime    time.Time `db:"update_time" json:"updateTime"`
}

// MeterValue is a timestamped measurement sample written by the device fleet.
type MeterValue struct {
	MeterValueID  int64     `db:"meter_value_id" json:"meterValueId"`
	StationID     int64     `db:"station_id" json:"stationId"`
	EvseID        int64     `db:"evse_id" json:"evseId"`
	ConnectorID   *int64    `db:"connector_id" json:"connectorId,omitempty"`
	TransactionID *string   `db:"transaction_id" json:"transactionId,omitempty"`
	SampledAt     time.Time `db:"sampled_at" json:"sampledAt"`
	Location      string    `db:"location" json:"location"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Ess is an energy storage unit attached to a station.
type Ess struct {
	EssID               int64      `db:"ess_id" json:"essId"`
	StationID           int64      `db:"station_id" json:"stationId"`
	Manufacturer        *string    `db:"manufacturer" json:"manufacturer,omitempty"`
	Model               *string    `db:"model" json:"model,omitempty"`
	SerialNumber        *string    `db:"serial_number" json:"serialNumber,omitempty"`
	CommissionedAt      *time.Time `db:"commissioned_at" json:"commissionedAt,omitempty"`
	WarrantyUntil       *time.Time `db:"warranty_until" json:"warrantyUntil,omitempty"`
	CapacityKwh         float64    `db:"capacity_kwh" json:"capacityKwh"`
	RatedPowerKw        *float64   `db:"rated_power_kw" json:"ratedPowerKw,omitempty"`
	MaxChargePowerKw    *float64   `db:"max_charge_power_kw" json:"maxChargePowerKw,omitempty"`
	MaxDischargePowerKw *float64   `db:"max_discharge_power_kw" json:"maxDischargePowerKw,omitempty"`
	VoltageMin          *float64   `db:"voltage_min" json:"voltageMin,omitempty"`
	VoltageMax          *float64   `db:"voltage_max" json:"voltageMax,omitempty"`
	Phases              *int       `db:"phases" json:"phases,omitempty"`
	EssStatus           string     `db:"ess_status" json:"essStatus"`
	SocPercent          *float64   `db:"soc_percent" json:"socPercent,omitempty"`
	SohPercent          *float64   `db:"soh_percent" json:"sohPercent,omitempty"`
	TemperatureC        *float64   `db:"temperature_c" json:"temperatureC,omitempty"`
	CycleCount          *int       `db:"cycle_count" json:"cycleCount,omitempty"`
	LastUpdateAt        time.Time  `db:"last_update_at" json:"lastUpdateAt"`
}

// EvseDetails is an EVSE with its connectors populated.
type EvseDetails struct {
	Evse
	Connectors []Connector `json:"connectors"`
}

// StationDetails is a station with its EVSEs, their connectors and the
// connector aggregates across the whole station.
type StationDetails struct {
	Station
	Evses               []EvseDetails `json:"evses"`
	TotalConnectors     int           `json:"totalConnectors"`
	AvailableConnectors int           `json:"availableConnectors"`
	OccupiedConnectors  int           `json:"occupiedConnectors"`
	FaultedConnectors   int           `json:"faultedConnectors"`
}
