package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/models"
)

type fakeCatalog struct {
	stations []models.LegacyStation
	err      error
}

func (f *fakeCatalog) ListChargers(ctx context.Context) ([]models.LegacyStation, error) {
	return f.stations, f.err
}

type fakeStationReader struct {
	pingErr  error
	station  *models.Station
	details  *models.StationDetails
	stations []models.Station
	evses    []models.Evse
	values   []models.MeterValue
	ess      []models.Ess
	err      error
}

func (f *fakeStationReader) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStationReader) Station(ctx context.Context, stationID int64) (*models.Station, error) {
	return f.station, f.err
}

func (f *fakeStationReader) StationDetails(ctx context.Context, stationID int64) (*models.StationDetails, error) {
	return f.details, f.err
}

func (f *fakeStationReader) StationsByRegion(ctx context.Context, region string) ([]models.Station, error) {
	return f.stations, f.err
}

func (f *fakeStationReader) OnlineStations(ctx context.Context) ([]models.Station, error) {
	return f.stations, f.err
}

func (f *fakeStationReader) Evses(ctx context.Context, stationID int64) ([]models.Evse, error) {
	return f.evses, f.err
}

func (f *fakeStationReader) MeterValues(ctx context.Context, stationID int64, limit int) ([]models.MeterValue, error) {
	return f.values, f.err
}

func (f *fakeStationReader) EssByStation(ctx context.Context, stationID int64) ([]models.Ess, error) {
	return f.ess, f.err
}

func newChargersTest(catalog *fakeCatalog, reader *fakeStationReader) *ChargersHandlers {
	return NewChargersHandlers(catalog, reader, zap.NewNop())
}

func TestListChargersReturnsBareArray(t *testing.T) {
	catalog := &fakeCatalog{stations: []models.LegacyStation{
		{StationID: "CHG001", StationName: "Seoul Station", Status: models.LegacyStatusOnline},
		{StationID: "CHG003", StationName: "Busan Station", Status: models.LegacyStatusOffline},
	}}
	h := newChargersTest(catalog, &fakeStationReader{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/chargers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := strings.TrimSpace(rec.Body.String())
	if !strings.HasPrefix(body, "[") {
		t.Fatalf("expected a bare JSON array, got %s", body)
	}
	var stations []models.LegacyStation
	if err := json.Unmarshal([]byte(body), &stations); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(stations) != 2 || stations[0].StationID != "CHG001" {
		t.Errorf("unexpected payload: %+v", stations)
	}
}

func TestListChargersEmptyListIsEmptyArray(t *testing.T) {
	h := newChargersTest(&fakeCatalog{stations: []models.LegacyStation{}}, &fakeStationReader{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/chargers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestListChargersFailure(t *testing.T) {
	h := newChargersTest(&fakeCatalog{err: errors.New("store down")}, &fakeStationReader{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/chargers", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["error"] == "" {
		t.Errorf("expected error message, got %v", payload)
	}
}

func TestEvsesRejectsNonNumericID(t *testing.T) {
	h := newChargersTest(&fakeCatalog{}, &fakeStationReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/chargers/abc/evses", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.Evses(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestEvsesReportsStoreFailure(t *testing.T) {
	h := newChargersTest(&fakeCatalog{}, &fakeStationReader{pingErr: errors.New("dial refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/chargers/1/evses", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Evses(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["error"] != "database connection failed" {
		t.Errorf("error = %q", payload["error"])
	}
}

func TestEvsesUnknownStationIsEmptyArray(t *testing.T) {
	h := newChargersTest(&fakeCatalog{}, &fakeStationReader{evses: []models.Evse{}})

	req := httptest.NewRequest(http.MethodGet, "/api/chargers/999/evses", nil)
	req.SetPathValue("id", "999")
	rec := httptest.NewRecorder()
	h.Evses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestGetStationNotFound(t *testing.T) {
	h := newChargersTest(&fakeCatalog{}, &fakeStationReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/chargers/7", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Success {
		t.Error("expected success=false")
	}
}

func TestSearchRequiresRegion(t *testing.T) {
	h := newChargersTest(&fakeCatalog{}, &fakeStationReader{})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/stations/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
