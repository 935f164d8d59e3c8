package csvstore

import (
	"testing"

	"chargeview/backend/services/dashboard-api/internal/models"
)

func TestParseSkipsHeaderAndBlankLines(t *testing.T) {
	content := "stationName,region,address,stationId,status,updateTime\n" +
		"Seoul Station,Seoul,Seoul Jung-gu,CHG001,Online,2024-01-01T00:00:00Z\n" +
		"\n" +
		"Busan Station,Busan,Busan Haeundae-gu,CHG003,Offline,2024-01-01T00:00:00Z\n"

	stations := Parse(content)
	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stations))
	}
	if stations[0].StationID != "CHG001" || stations[1].StationID != "CHG003" {
		t.Errorf("unexpected order: %q, %q", stations[0].StationID, stations[1].StationID)
	}
}

func TestParseDropsShortRows(t *testing.T) {
	content := "header\n" +
		"only,four,fields,here\n" +
		"Seoul Station,Seoul,Seoul Jung-gu,CHG001,Online,2024-01-01T00:00:00Z\n"

	stations := Parse(content)
	if len(stations) != 1 {
		t.Fatalf("expected 1 station, got %d", len(stations))
	}
}

func TestParseRowStatusLiteral(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"Online", models.LegacyStatusOnline},
		{"online", models.LegacyStatusOffline},
		{"ONLINE", models.LegacyStatusOffline},
		{"Online ", models.LegacyStatusOffline},
		{"Offline", models.LegacyStatusOffline},
		{"", models.LegacyStatusOffline},
	}

	for _, tc := range cases {
		line := "Name,Region,Address,ID," + tc.status + ",2024-01-01T00:00:00Z"
		station, ok := ParseRow(line)
		if !ok {
			t.Fatalf("row with status %q rejected", tc.status)
		}
		if station.Status != tc.want {
			t.Errorf("status %q parsed as %q, want %q", tc.status, station.Status, tc.want)
		}
	}
}

func TestParseRowKeepsRawFields(t *testing.T) {
	station, ok := ParseRow(" Seoul Station , Seoul ,Addr,ID,Online,2024")
	if !ok {
		t.Fatal("row rejected")
	}
	if station.StationName != " Seoul Station " {
		t.Errorf("stationName = %q, fields must not be trimmed", station.StationName)
	}
	if station.Region != " Seoul " {
		t.Errorf("region = %q, fields must not be trimmed", station.Region)
	}
	// the status column had no padding, so it still matches
	if station.Status != models.LegacyStatusOnline {
		t.Errorf("status = %q", station.Status)
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	content := "header\r\nSeoul Station,Seoul,Addr,CHG001,Online,2024\r\n"
	stations := Parse(content)
	if len(stations) != 1 {
		t.Fatalf("expected 1 station, got %d", len(stations))
	}
	if stations[0].UpdateTime != "2024" {
		t.Errorf("updateTime = %q, trailing CR must be stripped", stations[0].UpdateTime)
	}
}
