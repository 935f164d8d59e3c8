// Package csvstore reads the bundled station list used when no database is
// available. The file format is fixed: a header line, then one station per
// line with comma-separated fields in the order stationName, region, address,
// stationId, status, updateTime. Fields carry no quoting or escaping, so a
// plain comma split is the contract.
package csvstore

import (
	"fmt"
	"os"
	"strings"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const fieldCount = 6

// Load reads the CSV file at path and returns the stations it contains.
func Load(path string) ([]models.LegacyStation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("csvstore: read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse converts CSV content into stations. The first line is treated as a
// header and skipped. Rows with fewer than six fields are dropped.
func Parse(content string) []models.LegacyStation {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	stations := make([]models.LegacyStation, 0, len(lines))
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if station, ok := ParseRow(line); ok {
			stations = append(stations, station)
		}
	}
	return stations
}

// ParseRow parses a single data row. Only the exact literal "Online" maps to
// the online status; anything else is offline.
func ParseRow(line string) (models.LegacyStation, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return models.LegacyStation{}, false
	}

	status := models.LegacyStatusOffline
	if fields[4] == models.LegacyStatusOnline {
		status = models.LegacyStatusOnline
	}

	return models.LegacyStation{
		StationName: fields[0],
		Region:      fields[1],
		Address:     fields[2],
		StationID:   fields[3],
		Status:      status,
		UpdateTime:  fields[5],
	}, true
}
