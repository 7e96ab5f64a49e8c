package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"openhouse/internal/domain"
)

// RedisStore handles sessions and the scrape cache.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func scrapeKey(url string) string {
	return fmt.Sprintf("scrape:%s", url)
}

// SaveSession stores a session token for a user with a TTL.
func (s *RedisStore) SaveSession(ctx context.Context, token string, userID int, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(token), strconv.Itoa(userID), ttl).Err()
}

// GetSession resolves a session token to a user ID. An unknown or
// expired token returns ErrNotFound.
func (s *RedisStore) GetSession(ctx context.Context, token string) (int, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// CacheScrape stores a scrape result so repeat lookups of the same
// listing URL skip the headless browser.
func (s *RedisStore) CacheScrape(ctx context.Context, url string, property *domain.ScrapedProperty, ttl time.Duration) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, scrapeKey(url), data, ttl).Err()
}

// GetCachedScrape returns a previously cached scrape result, or
// ErrNotFound on a cache miss.
func (s *RedisStore) GetCachedScrape(ctx context.Context, url string) (*domain.ScrapedProperty, error) {
	val, err := s.client.Get(ctx, scrapeKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var property domain.ScrapedProperty
	if err := json.Unmarshal(val, &property); err != nil {
		return nil, err
	}
	return &property, nil
}
