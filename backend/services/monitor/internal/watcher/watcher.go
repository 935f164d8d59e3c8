package watcher

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"chargeview/backend/services/monitor/internal/model"
)

// Fallback behavior when a fetch fails.
const (
	FallbackFixtures = "fixtures"
	FallbackNone     = "none"
)

// DefaultRefreshInterval is the poll period when none is configured.
const DefaultRefreshInterval = 15 * time.Minute

// Fetcher supplies the charger list.
type Fetcher interface {
	ListChargers(ctx context.Context) ([]model.Charger, error)
}

// Filters narrow the buckets returned by Snapshot. Search matches name,
// location or ID; the three location filters are substring matches and all
// active criteria must hold at once.
type Filters struct {
	Search      string
	City        string
	District    string
	SubDistrict string
}

// Snapshot is one consistent view of the fleet.
type Snapshot struct {
	Normal            []model.Charger `json:"normal"`
	Disconnected      []model.Charger `json:"disconnected"`
	Total             int             `json:"total"`
	NormalCount       int             `json:"normalCount"`
	DisconnectedCount int             `json:"disconnectedCount"`
	OperationalRate   int             `json:"operationalRate"`
	Countdown         int             `json:"countdown"`
	Loading           bool            `json:"loading"`
	LastUpdated       time.Time       `json:"lastUpdated"`
	LastError         string          `json:"lastError,omitempty"`
}

// Watcher polls the charger list on a fixed interval and maintains the
// normal/disconnected partition. Start and Stop bound its lifetime.
type Watcher struct {
	fetcher   Fetcher
	interval  time.Duration
	fallback  string
	logger    *zap.Logger
	onRefresh func(Snapshot)

	mu           sync.Mutex
	normal       []model.Charger
	disconnected []model.Charger
	filters      Filters
	countdown    int
	loading      bool
	lastUpdated  time.Time
	lastErr      error

	cancel    context.CancelFunc
	done      chan struct{}
	refreshCh chan struct{}
}

// New builds a watcher. onRefresh may be nil; when set it is called with
// the unfiltered snapshot after every completed refresh cycle.
func New(fetcher Fetcher, interval time.Duration, fallback string, logger *zap.Logger, onRefresh func(Snapshot)) *Watcher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if fallback != FallbackNone {
		fallback = FallbackFixtures
	}
	return &Watcher{
		fetcher:   fetcher,
		interval:  interval,
		fallback:  fallback,
		logger:    logger,
		onRefresh: onRefresh,
		countdown: int(interval / time.Second),
		refreshCh: make(chan struct{}, 1),
	}
}

// Start fetches immediately and then keeps refreshing until Stop or ctx
// cancellation. Calling Start twice without Stop is an error.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return errors.New("watcher: already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.run(runCtx)
	return nil
}

// Stop cancels the poll loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RefreshNow triggers an immediate refresh unless one is already running.
func (w *Watcher) RefreshNow() {
	w.mu.Lock()
	busy := w.loading
	w.mu.Unlock()
	if busy {
		return
	}
	select {
	case w.refreshCh <- struct{}{}:
	default:
	}
}

// SetFilters replaces the active filter set.
func (w *Watcher) SetFilters(filters Filters) {
	w.mu.Lock()
	w.filters = filters
	w.mu.Unlock()
}

// Snapshot returns the current view. Buckets are filtered; totals, counts
// and the operational rate always describe the full partition.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked(true)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	w.refresh(ctx)

	refreshTicker := time.NewTicker(w.interval)
	defer refreshTicker.Stop()
	secondTicker := time.NewTicker(time.Second)
	defer secondTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-refreshTicker.C:
			w.refresh(ctx)
		case <-w.refreshCh:
			w.refresh(ctx)
		case <-secondTicker.C:
			w.tick()
		}
	}
}

func (w *Watcher) tick() {
	w.mu.Lock()
	if w.countdown > 0 {
		w.countdown--
	}
	w.mu.Unlock()
}

func (w *Watcher) refresh(ctx context.Context) {
	w.mu.Lock()
	if w.loading {
		w.mu.Unlock()
		return
	}
	w.loading = true
	w.mu.Unlock()

	chargers, err := w.fetcher.ListChargers(ctx)

	w.mu.Lock()
	w.loading = false
	w.countdown = int(w.interval / time.Second)
	switch {
	case err == nil:
		w.normal, w.disconnected = partition(chargers)
		w.lastUpdated = time.Now()
		w.lastErr = nil
	case w.fallback == FallbackFixtures:
		w.normal, w.disconnected = partition(fallbackChargers())
		w.lastUpdated = time.Now()
		w.lastErr = err
	default:
		w.lastErr = err
	}
	snap := w.snapshotLocked(false)
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("charger refresh failed",
			zap.Error(err),
			zap.String("fallback", w.fallback),
		)
	}
	w.logger.Info("fleet refreshed",
		zap.Int("total", snap.Total),
		zap.Int("normal", snap.NormalCount),
		zap.Int("disconnected", snap.DisconnectedCount),
		zap.Int("operationalRate", snap.OperationalRate),
	)

	if w.onRefresh != nil {
		w.onRefresh(snap)
	}
}

func (w *Watcher) snapshotLocked(filtered bool) Snapshot {
	normal, disconnected := w.normal, w.disconnected
	if filtered {
		normal = filterChargers(normal, w.filters)
		disconnected = filterChargers(disconnected, w.filters)
	}

	total := len(w.normal) + len(w.disconnected)
	snap := Snapshot{
		Normal:            append([]model.Charger(nil), normal...),
		Disconnected:      append([]model.Charger(nil), disconnected...),
		Total:             total,
		NormalCount:       len(w.normal),
		DisconnectedCount: len(w.disconnected),
		OperationalRate:   operationalRate(len(w.normal), total),
		Countdown:         w.countdown,
		Loading:           w.loading,
		LastUpdated:       w.lastUpdated,
	}
	if w.lastErr != nil {
		snap.LastError = w.lastErr.Error()
	}
	return snap
}

// partition splits chargers into the normal and disconnected buckets. Any
// other status is excluded from both.
func partition(chargers []model.Charger) (normal, disconnected []model.Charger) {
	for _, charger := range chargers {
		switch charger.Status {
		case model.StatusNormal:
			normal = append(normal, charger)
		case model.StatusDisconnected:
			disconnected = append(disconnected, charger)
		}
	}
	return normal, disconnected
}

func filterChargers(chargers []model.Charger, filters Filters) []model.Charger {
	out := make([]model.Charger, 0, len(chargers))
	for _, charger := range chargers {
		if matches(charger, filters) {
			out = append(out, charger)
		}
	}
	return out
}

func matches(charger model.Charger, filters Filters) bool {
	if search := strings.ToLower(filters.Search); search != "" {
		if !strings.Contains(strings.ToLower(charger.Name), search) &&
			!strings.Contains(strings.ToLower(charger.Location), search) &&
			!strings.Contains(strings.ToLower(charger.ID), search) {
			return false
		}
	}
	for _, area := range []string{filters.City, filters.District, filters.SubDistrict} {
		if area == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(charger.Location), strings.ToLower(area)) {
			return false
		}
	}
	return true
}

// operationalRate is the share of normal chargers over the whole fleet,
// rounded to the nearest whole percent. Zero when the fleet is empty.
func operationalRate(normal, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(normal) / float64(total) * 100))
}
