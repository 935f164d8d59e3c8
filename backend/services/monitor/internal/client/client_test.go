package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestLoginStoresTokenAndAttachesIt(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"token":"tok-123"}}`))
		case "/api/chargers":
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tokens := NewTokenStore(t.TempDir())
	c := New(server.URL, tokens, zap.NewNop())

	if err := c.Login(context.Background(), "operator", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	stored, err := tokens.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored != "tok-123" {
		t.Fatalf("stored token = %q", stored)
	}

	if _, err := c.ListChargers(context.Background()); err != nil {
		t.Fatalf("ListChargers: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestUnauthorizedClearsStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := NewTokenStore(t.TempDir())
	if err := tokens.Save("stale-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c := New(server.URL, tokens, zap.NewNop())

	_, err := c.ListChargers(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	stored, err := tokens.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored != "" {
		t.Errorf("token = %q, want cleared", stored)
	}
}

func TestListChargersMapsStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"stationId":"CHG001","stationName":"Seoul Station","address":"Seoul Jung-gu","status":"Online"},
			{"stationId":"CHG002","stationName":"Busan Station","address":"Busan Haeundae-gu","status":"Offline"},
			{"stationId":"CHG003","stationName":"Depot","address":"Daejeon","status":"Maintenance"}
		]`))
	}))
	defer server.Close()

	c := New(server.URL, NewTokenStore(""), zap.NewNop())
	chargers, err := c.ListChargers(context.Background())
	if err != nil {
		t.Fatalf("ListChargers: %v", err)
	}
	if len(chargers) != 3 {
		t.Fatalf("expected 3 chargers, got %d", len(chargers))
	}
	if chargers[0].Status != "normal" {
		t.Errorf("Online mapped to %q, want normal", chargers[0].Status)
	}
	if chargers[1].Status != "disconnected" {
		t.Errorf("Offline mapped to %q, want disconnected", chargers[1].Status)
	}
	if chargers[2].Status != "maintenance" {
		t.Errorf("Maintenance mapped to %q, want lowercased passthrough", chargers[2].Status)
	}
	if chargers[0].Location != "Seoul Jung-gu" {
		t.Errorf("location = %q", chargers[0].Location)
	}
}

func TestEnvelopeFailureSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"station not found"}`))
	}))
	defer server.Close()

	c := New(server.URL, NewTokenStore(""), zap.NewNop())
	_, err := c.GetStation(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(t.TempDir())

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("empty store Load = %q, %v", tok, err)
	}
	if err := store.Save("abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, _ := store.Load(); tok != "abc" {
		t.Fatalf("Load = %q, want abc", tok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("Load after Clear = %q", tok)
	}
	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
