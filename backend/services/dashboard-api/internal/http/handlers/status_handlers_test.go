package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"chargeview/backend/services/dashboard-api/internal/service"
)

type fakeUpdater struct {
	found      bool
	err        error
	lastID     int64
	lastStatus string
}

func (f *fakeUpdater) UpdateStationStatus(ctx context.Context, id int64, status string) (bool, error) {
	f.lastID, f.lastStatus = id, status
	return f.found, f.err
}

func (f *fakeUpdater) UpdateEvseStatus(ctx context.Context, id int64, status string) (bool, error) {
	f.lastID, f.lastStatus = id, status
	return f.found, f.err
}

func (f *fakeUpdater) UpdateEssStatus(ctx context.Context, id int64, status string) (bool, error) {
	f.lastID, f.lastStatus = id, status
	return f.found, f.err
}

func putStatus(t *testing.T, h *StatusHandlers, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/chargers/"+id+"/status", strings.NewReader(body))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Station(rec, req)
	return rec
}

func TestStatusUpdateHappyPath(t *testing.T) {
	updater := &fakeUpdater{found: true}
	h := NewStatusHandlers(updater, zap.NewNop())

	rec := putStatus(t, h, "5", `{"status":"offline"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if updater.lastID != 5 || updater.lastStatus != "offline" {
		t.Errorf("updater called with id=%d status=%q", updater.lastID, updater.lastStatus)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || env.Message != "status updated" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestStatusUpdateRejectsEmptyBody(t *testing.T) {
	h := NewStatusHandlers(&fakeUpdater{found: true}, zap.NewNop())

	for _, body := range []string{"", "{}", `{"status":""}`, "not json"} {
		rec := putStatus(t, h, "1", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	updater := &fakeUpdater{err: service.ErrInvalidStatus}
	h := NewStatusHandlers(updater, zap.NewNop())

	rec := putStatus(t, h, "1", `{"status":"sleeping"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStatusUpdateUnknownEntity(t *testing.T) {
	h := NewStatusHandlers(&fakeUpdater{found: false}, zap.NewNop())

	rec := putStatus(t, h, "404", `{"status":"online"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
