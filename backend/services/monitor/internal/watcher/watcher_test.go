package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"chargeview/backend/services/monitor/internal/model"
)

type fakeFetcher struct {
	mu       sync.Mutex
	chargers []model.Charger
	err      error
	calls    int
}

func (f *fakeFetcher) ListChargers(ctx context.Context) ([]model.Charger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chargers, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testFleet() []model.Charger {
	return []model.Charger{
		{ID: "CHG001", Name: "Seoul Station", Location: "Seoul Jung-gu", Status: model.StatusNormal},
		{ID: "CHG002", Name: "Gangnam Station", Location: "Seoul Gangnam-gu", Status: model.StatusNormal},
		{ID: "CHG003", Name: "Busan Station", Location: "Busan Haeundae-gu", Status: model.StatusDisconnected},
		{ID: "CHG004", Name: "Incheon Airport", Location: "Incheon Jung-gu", Status: model.StatusNormal},
		{ID: "CHG005", Name: "Depot", Location: "Daejeon Dong-gu", Status: "maintenance"},
	}
}

func TestRefreshPartitionsFleet(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)

	w.refresh(context.Background())
	snap := w.Snapshot()

	if snap.NormalCount != 3 || snap.DisconnectedCount != 1 {
		t.Fatalf("counts = %d/%d, want 3/1", snap.NormalCount, snap.DisconnectedCount)
	}
	// the maintenance charger belongs to neither bucket
	if snap.Total != 4 {
		t.Errorf("total = %d, want 4", snap.Total)
	}
	if snap.OperationalRate != 75 {
		t.Errorf("operational rate = %d, want 75", snap.OperationalRate)
	}
	if snap.LastUpdated.IsZero() {
		t.Error("lastUpdated not set after successful refresh")
	}
	if snap.LastError != "" {
		t.Errorf("lastError = %q, want empty", snap.LastError)
	}
}

func TestOperationalRateRounding(t *testing.T) {
	cases := []struct {
		normal, total int
		want          int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 4, 75},
		{4, 4, 100},
	}
	for _, tc := range cases {
		if got := operationalRate(tc.normal, tc.total); got != tc.want {
			t.Errorf("operationalRate(%d, %d) = %d, want %d", tc.normal, tc.total, got, tc.want)
		}
	}
}

func TestSnapshotAppliesFiltersWithoutChangingCounts(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)
	w.refresh(context.Background())

	w.SetFilters(Filters{Search: "seoul"})
	snap := w.Snapshot()
	if len(snap.Normal) != 2 {
		t.Fatalf("filtered normal = %d, want 2", len(snap.Normal))
	}
	if snap.NormalCount != 3 || snap.Total != 4 || snap.OperationalRate != 75 {
		t.Errorf("aggregates changed under filter: %+v", snap)
	}

	// search also matches IDs
	w.SetFilters(Filters{Search: "chg003"})
	snap = w.Snapshot()
	if len(snap.Disconnected) != 1 || len(snap.Normal) != 0 {
		t.Errorf("id search buckets = %d/%d", len(snap.Normal), len(snap.Disconnected))
	}

	// location filters combine with the search
	w.SetFilters(Filters{Search: "station", City: "Seoul", District: "Gangnam"})
	snap = w.Snapshot()
	if len(snap.Normal) != 1 || snap.Normal[0].ID != "CHG002" {
		t.Errorf("combined filter normal = %+v", snap.Normal)
	}

	w.SetFilters(Filters{})
	snap = w.Snapshot()
	if len(snap.Normal) != 3 {
		t.Errorf("cleared filter normal = %d, want 3", len(snap.Normal))
	}
}

func TestRefreshFailureWithFixtureFallback(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("api unreachable")}
	w := New(fetcher, time.Minute, FallbackFixtures, zap.NewNop(), nil)

	w.refresh(context.Background())
	snap := w.Snapshot()

	if snap.Total == 0 {
		t.Fatal("expected fixture data after fallback")
	}
	if snap.LastError == "" {
		t.Error("expected lastError to record the fetch failure")
	}
	if snap.LastUpdated.IsZero() {
		t.Error("fallback data counts as an update")
	}
}

func TestRefreshFailureWithoutFallbackKeepsBuckets(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)
	w.refresh(context.Background())
	firstUpdate := w.Snapshot().LastUpdated

	fetcher.mu.Lock()
	fetcher.err = errors.New("api unreachable")
	fetcher.mu.Unlock()
	w.refresh(context.Background())
	snap := w.Snapshot()

	if snap.Total != 4 {
		t.Errorf("total = %d, previous buckets must survive", snap.Total)
	}
	if snap.LastError == "" {
		t.Error("expected lastError after failed refresh")
	}
	if !snap.LastUpdated.Equal(firstUpdate) {
		t.Error("lastUpdated must not advance on a failed refresh")
	}
}

func TestRefreshResetsCountdown(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)

	for i := 0; i < 10; i++ {
		w.tick()
	}
	if w.Snapshot().Countdown != 50 {
		t.Fatalf("countdown = %d, want 50", w.Snapshot().Countdown)
	}

	w.refresh(context.Background())
	if w.Snapshot().Countdown != 60 {
		t.Errorf("countdown after refresh = %d, want 60", w.Snapshot().Countdown)
	}
}

func TestCountdownClampsAtZero(t *testing.T) {
	w := New(&fakeFetcher{}, 2*time.Second, FallbackNone, zap.NewNop(), nil)
	for i := 0; i < 5; i++ {
		w.tick()
	}
	if got := w.Snapshot().Countdown; got != 0 {
		t.Errorf("countdown = %d, want 0", got)
	}
}

func TestRefreshSkippedWhileLoading(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)

	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	w.refresh(context.Background())
	if fetcher.callCount() != 0 {
		t.Errorf("fetcher called %d times during an in-flight refresh", fetcher.callCount())
	}

	w.mu.Lock()
	w.loading = false
	w.mu.Unlock()
	w.refresh(context.Background())
	if fetcher.callCount() != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.callCount())
	}
}

func TestStartStopLifecycle(t *testing.T) {
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), nil)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(context.Background()); err == nil {
		t.Error("second Start must fail")
	}

	deadline := time.Now().Add(2 * time.Second)
	for fetcher.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if fetcher.callCount() == 0 {
		t.Fatal("Start did not trigger an immediate fetch")
	}

	w.Stop()
	// a second Stop is a no-op
	w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("restart after Stop: %v", err)
	}
	w.Stop()
}

func TestOnRefreshHookReceivesSnapshot(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []Snapshot
		hook = func(s Snapshot) {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		}
	)
	fetcher := &fakeFetcher{chargers: testFleet()}
	w := New(fetcher, time.Minute, FallbackNone, zap.NewNop(), hook)

	w.refresh(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("hook called %d times, want 1", len(got))
	}
	if got[0].Total != 4 || got[0].OperationalRate != 75 {
		t.Errorf("hook snapshot = %+v", got[0])
	}
}
