package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/smallbiznis/debitplan/internal/config"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"go.uber.org/zap"
)

const cleanupInterval = 5 * time.Minute

// holidayZoneCache is a read-through cache in front of the holiday zone store.
// The TTL is read on every lookup so a reloaded planner config takes effect
// without a restart; a TTL of zero bypasses the cache.
type holidayZoneCache struct {
	next  holidaydomain.Repository
	cfg   *config.PlannerConfigHolder
	zones *gocache.Cache
	log   *zap.Logger
}

// NewHolidayZoneCache wraps next.
func NewHolidayZoneCache(next holidaydomain.Repository, cfg *config.PlannerConfigHolder, log *zap.Logger) holidaydomain.Repository {
	return &holidayZoneCache{
		next:  next,
		cfg:   cfg,
		zones: gocache.New(gocache.NoExpiration, cleanupInterval),
		log:   log.Named("cache.holiday_zone"),
	}
}

func (c *holidayZoneCache) GetHolidayZone(ctx context.Context, organisationID, zoneID string) (*holidaydomain.HolidayZone, error) {
	ttl := c.ttl()
	if ttl <= 0 {
		return c.next.GetHolidayZone(ctx, organisationID, zoneID)
	}

	key := cacheKey(organisationID, zoneID)
	if cached, ok := c.zones.Get(key); ok {
		return cached.(*holidaydomain.HolidayZone), nil
	}

	zone, err := c.next.GetHolidayZone(ctx, organisationID, zoneID)
	if err != nil || zone == nil {
		return zone, err
	}
	c.zones.Set(key, zone, ttl)
	c.log.Debug("holiday zone cached", zap.String("key", key), zap.Duration("ttl", ttl))
	return zone, nil
}

func (c *holidayZoneCache) Create(ctx context.Context, zone *holidaydomain.HolidayZone) error {
	if err := c.next.Create(ctx, zone); err != nil {
		return err
	}
	c.zones.Delete(cacheKey(zone.OrganisationID, zone.ID))
	return nil
}

func (c *holidayZoneCache) ttl() time.Duration {
	if c.cfg == nil {
		return 0
	}
	return c.cfg.Get().HolidayZoneCacheTTL
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
