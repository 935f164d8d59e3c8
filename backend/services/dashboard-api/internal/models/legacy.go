package models

import (
	"strconv"
	"strings"
	"time"
)

// LegacyStation is the field-naming convention one rendering surface still
// expects. Region is derived from the address rather than stored.
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

// Legacy station status values.
const (
	LegacyStatusOnline  = "Online"
	LegacyStatusOffline = "Offline"
)

// ToLegacy maps a canonical station to the legacy shape. The region is the
// first whitespace-delimited token of the road address, empty when the
// address is empty.
func ToLegacy(station Station) LegacyStation {
	evseCount := station.EvseCount
	loadKw := station.StationLoadKw

	status := LegacyStatusOffline
	if station.StationStatus == StationStatusOnline {
		status = LegacyStatusOnline
	}

	return LegacyStation{
		StationName:   station.StationAlias,
		Region:        firstToken(station.RoadAddress),
		Address:       station.RoadAddress,
		StationID:     strconv.FormatInt(station.StationID, 10),
		Status:        status,
		UpdateTime:    station.UpdateTime.UTC().Format(time.RFC3339),
		Latitude:      station.Latitude,
		Longitude:     station.Longitude,
		EvseCount:     &evseCount,
		StationLoadKw: &loadKw,
	}
}

// ToLegacySlice maps a slice of stations, preserving order. The result is
// never nil so callers can marshal it as an empty JSON array.
func ToLegacySlice(stations []Station) []LegacyStation {
	out := make([]LegacyStation, 0, len(stations))
	for _, station := range stations {
		out = append(out, ToLegacy(station))
	}
	return out
}

func firstToken(s string) string {
	if s == "" {
		return ""
	}
	return strings.Split(s, " ")[0]
}
