package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamsite/content-api/internal/core/domain"
)

const defaultCacheTTL = time.Minute

// ListCache caches the unauthenticated list endpoints. Entries expire after
// the configured TTL and are dropped eagerly after every mutating write, so a
// failure here only costs a repository round trip, never correctness.
// Key format: records:<kind>:<locale> and locales.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache wraps an existing Redis client. A non-positive ttl falls back
// to defaultCacheTTL.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

func recordsKey(kind domain.Kind, locale string) string {
	return "records:" + string(kind) + ":" + locale
}

const localesKey = "locales"

func (c *ListCache) GetRecordList(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, bool) {
	raw, err := c.client.Get(ctx, recordsKey(kind, locale)).Bytes()
	if err != nil {
		return nil, false
	}
	var records []*domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

func (c *ListCache) SetRecordList(ctx context.Context, kind domain.Kind, locale string, records []*domain.Record) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, recordsKey(kind, locale), raw, c.ttl).Err()
}

// DropRecordList evicts both the locale-scoped list and the unscoped list for
// the kind, since a write invalidates either view.
func (c *ListCache) DropRecordList(ctx context.Context, kind domain.Kind, locale string) {
	keys := []string{recordsKey(kind, "")}
	if locale != "" {
		keys = append(keys, recordsKey(kind, locale))
	}
	_ = c.client.Del(ctx, keys...).Err()
}

func (c *ListCache) GetLocales(ctx context.Context) ([]domain.Locale, bool) {
	raw, err := c.client.Get(ctx, localesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var locales []domain.Locale
	if err := json.Unmarshal(raw, &locales); err != nil {
		return nil, false
	}
	return locales, true
}

func (c *ListCache) SetLocales(ctx context.Context, locales []domain.Locale) {
	raw, err := json.Marshal(locales)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, localesKey, raw, c.ttl).Err()
}

func (c *ListCache) DropLocales(ctx context.Context) {
	_ = c.client.Del(ctx, localesKey).Err()
}
