package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/stairstats/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour          = 60 * 60
	cacheExpire      = oneHour * 12
	cacheKeyConfig   = "config"
	cacheKeyLifetime = "lifetime"
	cacheKeyDates    = "dates"
)

var _ Store = (*CachedStore)(nil)

// CachedStore keeps read results of another Store in memory. Writes go
// straight through and evict what they could have changed.
type CachedStore struct {
	store   Store
	cache   *freecache.Cache
	metrics *metrics.Manager
}

func NewCachedStore(store Store, cacheSizeMB int, metricsManager *metrics.Manager) *CachedStore {
	megabyte := 1024 * 1024
	return &CachedStore{
		store:   store,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
		metrics: metricsManager,
	}
}

func (c *CachedStore) Initialize(ctx context.Context) error {
	c.cache.Clear()
	return c.store.Initialize(ctx)
}

func (c *CachedStore) GetConfiguration(ctx context.Context) (StairConfiguration, error) {
	var cfg StairConfiguration
	if c.get(cacheKeyConfig, &cfg) {
		return cfg, nil
	}
	cfg, err := c.store.GetConfiguration(ctx)
	if err != nil {
		return StairConfiguration{}, err
	}
	c.set(cacheKeyConfig, cfg)
	return cfg, nil
}

func (c *CachedStore) UpdateConfiguration(ctx context.Context, next StairConfiguration) error {
	c.cache.Del([]byte(cacheKeyConfig))
	return c.store.UpdateConfiguration(ctx, next)
}

func (c *CachedStore) InsertSession(ctx context.Context, s Session) (*Session, error) {
	inserted, err := c.store.InsertSession(ctx, s)
	if err != nil {
		return nil, err
	}
	// every aggregate may include the new row, the config entry survives
	cfgBytes, cfgErr := c.cache.Get([]byte(cacheKeyConfig))
	c.cache.Clear()
	if cfgErr == nil {
		if err := c.cache.Set([]byte(cacheKeyConfig), cfgBytes, cacheExpire); err != nil {
			log.Debugf("re-set config cache: %s", err)
		}
	}
	return inserted, nil
}

func (c *CachedStore) GetLifetimeTotals(ctx context.Context) (LifetimeTotals, error) {
	var totals LifetimeTotals
	if c.get(cacheKeyLifetime, &totals) {
		return totals, nil
	}
	totals, err := c.store.GetLifetimeTotals(ctx)
	if err != nil {
		return LifetimeTotals{}, err
	}
	c.set(cacheKeyLifetime, totals)
	return totals, nil
}

func (c *CachedStore) GetDatesWithSessions(ctx context.Context) ([]string, error) {
	var dates []string
	if c.get(cacheKeyDates, &dates) {
		return dates, nil
	}
	dates, err := c.store.GetDatesWithSessions(ctx)
	if err != nil {
		return nil, err
	}
	c.set(cacheKeyDates, dates)
	return dates, nil
}

func (c *CachedStore) GetDailyTotals(ctx context.Context, date string) (*DailyTotals, error) {
	cacheKey := fmt.Sprintf("daily::%s", date)
	var totals *DailyTotals
	if c.get(cacheKey, &totals) {
		return totals, nil
	}
	totals, err := c.store.GetDailyTotals(ctx, date)
	if err != nil {
		return nil, err
	}
	// a day without data is cached as null
	c.set(cacheKey, totals)
	return totals, nil
}

func (c *CachedStore) ListSessions(ctx context.Context, date string) ([]Session, error) {
	cacheKey := fmt.Sprintf("sessions::%s", date)
	var sessions []Session
	if c.get(cacheKey, &sessions) {
		return sessions, nil
	}
	sessions, err := c.store.ListSessions(ctx, date)
	if err != nil {
		return nil, err
	}
	c.set(cacheKey, sessions)
	return sessions, nil
}

func (c *CachedStore) ListDailyTotals(ctx context.Context, from, to string) ([]DailyTotals, error) {
	cacheKey := fmt.Sprintf("range::%s::%s", from, to)
	var daily []DailyTotals
	if c.get(cacheKey, &daily) {
		return daily, nil
	}
	daily, err := c.store.ListDailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	c.set(cacheKey, daily)
	return daily, nil
}

func (c *CachedStore) Close() error {
	c.cache.Clear()
	return c.store.Close()
}

func (c *CachedStore) get(key string, target any) bool {
	valueBytes, err := c.cache.Get([]byte(key))
	if err != nil {
		c.metrics.CounterCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(valueBytes, target); err != nil {
		log.Errorf("failed to unmarshal cached %s: %s", key, err)
		c.cache.Del([]byte(key))
		c.metrics.CounterCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	log.Tracef("found %s in cache", key)
	c.metrics.CounterCacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *CachedStore) set(key string, value any) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal %s for cache: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), valueBytes, cacheExpire); err != nil {
		log.Errorf("failed to write %s cache: %s", key, err)
	}
}
