package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

const (
	// DefaultCacheTTL is how long a cached provider answer stays valid.
	DefaultCacheTTL = 24 * time.Hour

	// cacheWriteTimeout bounds each asynchronous cache write.
	cacheWriteTimeout = 5 * time.Second

	// geohashPrecision 9 is a cell of roughly 5m, well below store spacing.
	geohashPrecision = 9

	geocodeKeyPrefix  = "geocode:"
	distanceKeyPrefix = "distance:"
)

// CacheStore is the key/value backend of the provider caches.
type CacheStore interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCacheStore is the production CacheStore.
type RedisCacheStore struct {
	client *redis.Client
}

// NewRedisCacheStore creates a CacheStore backed by client.
func NewRedisCacheStore(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{client: client}
}

func (s *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return b, true, nil
}

func (s *RedisCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// cacheAside holds what both caching decorators share.
type cacheAside struct {
	store      CacheStore
	ttl        time.Duration
	logger     *zap.Logger
	afterStore func() // test hook, called after every async write attempt
}

func newCacheAside(store CacheStore, ttl time.Duration, logger *zap.Logger) cacheAside {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return cacheAside{store: store, ttl: ttl, logger: logger}
}

// load decodes a cached value into out. Read and decode failures count as misses.
func (c cacheAside) load(ctx context.Context, key string, out interface{}) bool {
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Provider cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		c.logger.Warn("Provider cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// saveAsync writes value in the background so the caller does not wait on redis.
func (c cacheAside) saveAsync(key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Provider cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
			c.logger.Warn("Provider cache write failed", zap.String("key", key), zap.Error(err))
		}
		if c.afterStore != nil {
			c.afterStore()
		}
	}()
}

// CachedGeocoder caches successful primary geocoding results.
type CachedGeocoder struct {
	inner Geocoder
	cacheAside
}

// NewCachedGeocoder wraps inner with a cache-aside layer.
func NewCachedGeocoder(inner Geocoder, store CacheStore, ttl time.Duration, logger *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cacheAside: newCacheAside(store, ttl, logger)}
}

// Geocode satisfies Geocoder.
func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	key := geocodeKey(address)

	var cached models.Coordinates
	if g.load(ctx, key, &cached) {
		return cached, nil
	}

	coords, err := g.inner.Geocode(ctx, address)
	if err != nil {
		return models.Coordinates{}, err
	}
	g.saveAsync(key, coords)
	return coords, nil
}

// CachedDistanceClient caches resolvable distances. Unresolvable results and
// errors always go back to the provider on the next call.
type CachedDistanceClient struct {
	inner DistanceClient
	cacheAside
}

// NewCachedDistanceClient wraps inner with a cache-aside layer.
func NewCachedDistanceClient(inner DistanceClient, store CacheStore, ttl time.Duration, logger *zap.Logger) *CachedDistanceClient {
	return &CachedDistanceClient{inner: inner, cacheAside: newCacheAside(store, ttl, logger)}
}

// Distance satisfies DistanceClient.
func (d *CachedDistanceClient) Distance(ctx context.Context, origin, destination string) (DistanceResult, error) {
	key := distanceKey(origin, destination)

	var cached DistanceResult
	if d.load(ctx, key, &cached) && cached.Resolvable() {
		return cached, nil
	}

	res, err := d.inner.Distance(ctx, origin, destination)
	if err != nil {
		return DistanceResult{}, err
	}
	if res.Resolvable() {
		d.saveAsync(key, res)
	}
	return res, nil
}

func geocodeKey(address string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(address))
}

func distanceKey(origin, destination string) string {
	return distanceKeyPrefix + endpointKey(origin) + ":" + endpointKey(destination)
}

// endpointKey normalizes one distance endpoint: "lat,lng" becomes a geohash, a
// postal code becomes its digits, anything else is lower-cased.
func endpointKey(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if lat, lng, ok := parseLatLng(endpoint); ok {
		return geohash.EncodeWithPrecision(lat, lng, geohashPrecision)
	}
	if digits := digitsOnly(endpoint); digits != "" && len(digits) == len(strings.ReplaceAll(endpoint, "-", "")) {
		return digits
	}
	return strings.ToLower(endpoint)
}

func parseLatLng(s string) (float64, float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
