package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"chargeview/backend/services/dashboard-api/internal/models"
)

const stationListKey = "chargeview:stations:lastgood"

// ErrMiss is returned when no snapshot has been cached yet.
var ErrMiss = errors.New("cache: no cached station list")

// StationCache keeps the last successfully loaded station list so a store
// outage can be bridged with slightly stale data.
type StationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStationCache returns redis-backed cache.
func NewStationCache(client *redis.Client, ttl time.Duration) *StationCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &StationCache{client: client, ttl: ttl}
}

// Save caches the station list.
func (c *StationCache) Save(ctx context.Context, stations []models.LegacyStation) error {
	data, err := json.Marshal(stations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stationListKey, data, c.ttl).Err()
}

// Load returns the cached station list, or ErrMiss when absent or expired.
func (c *StationCache) Load(ctx context.Context) ([]models.LegacyStation, error) {
	result, err := c.client.Get(ctx, stationListKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var stations []models.LegacyStation
	if err := json.Unmarshal([]byte(result), &stations); err != nil {
		return nil, err
	}
	return stations, nil
}
