package caching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"dinepos/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	menuKey        = "catalog:menu"
	tablesKey      = "registry:tables"
	denylistPrefix = "auth:denylist:"
)

// CacheService fronts the read-heavy catalog and table views and tracks
// revoked token ids. A miss returns (nil, nil); callers fall through to the
// database.
type CacheService interface {
	GetMenu(ctx context.Context) ([]*models.MenuItem, error)
	SetMenu(ctx context.Context, items []*models.MenuItem, ttl time.Duration) error
	InvalidateMenu(ctx context.Context) error

	GetTables(ctx context.Context) ([]*models.Table, error)
	SetTables(ctx context.Context, tables []*models.Table, ttl time.Duration) error

	DenylistToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenDenylisted(ctx context.Context, tokenID string) (bool, error)
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func (s *redisCacheService) GetMenu(ctx context.Context) ([]*models.MenuItem, error) {
	data, err := s.client.Get(ctx, menuKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []*models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *redisCacheService) SetMenu(ctx context.Context, items []*models.MenuItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, menuKey, data, ttl).Err()
}

func (s *redisCacheService) InvalidateMenu(ctx context.Context) error {
	return s.client.Del(ctx, menuKey).Err()
}

func (s *redisCacheService) GetTables(ctx context.Context) ([]*models.Table, error) {
	data, err := s.client.Get(ctx, tablesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tables []*models.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *redisCacheService) SetTables(ctx context.Context, tables []*models.Table, ttl time.Duration) error {
	data, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tablesKey, data, ttl).Err()
}

// DenylistToken marks a token id revoked until its natural expiry.
func (s *redisCacheService) DenylistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, denylistPrefix+tokenID, "revoked", ttl).Err()
}

func (s *redisCacheService) IsTokenDenylisted(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, denylistPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
