// Package cache adds a Redis read-through layer over the repository for
// company records, which are read on every assessment create and submit
// but practically never change.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/candidex/screening-engine/internal/models"
	"github.com/candidex/screening-engine/internal/storage"
)

const (
	companyKeyPrefix = "company:"
	companyListKey   = "companies"
)

// NewRedisClient connects to Redis and verifies connectivity.
func NewRedisClient(address, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// CompanyCache wraps a Repository and caches company reads in Redis.
// Cache failures degrade to uncached reads; they never fail a request.
type CompanyCache struct {
	storage.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewCompanyCache creates the caching wrapper.
func NewCompanyCache(repo storage.Repository, client *redis.Client, ttl time.Duration) *CompanyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CompanyCache{
		Repository: repo,
		client:     client,
		ttl:        ttl,
	}
}

// CreateCompany writes through and invalidates the company listing.
func (c *CompanyCache) CreateCompany(ctx context.Context, company *models.Company) error {
	if err := c.Repository.CreateCompany(ctx, company); err != nil {
		return err
	}

	if err := c.client.Del(ctx, companyListKey).Err(); err != nil {
		slog.Warn("failed to invalidate company list cache", "error", err)
	}

	return nil
}

// GetCompany serves from cache when possible.
func (c *CompanyCache) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	key := fmt.Sprintf("%s%d", companyKeyPrefix, id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var company models.Company
		if err := json.Unmarshal(data, &company); err == nil {
			return &company, nil
		}
		slog.Warn("corrupt company cache entry, refetching", "key", key)
	} else if err != redis.Nil {
		slog.Warn("company cache read failed", "error", err, "key", key)
	}

	company, err := c.Repository.GetCompany(ctx, id)
	if err != nil || company == nil {
		return company, err
	}

	if data, err := json.Marshal(company); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("company cache write failed", "error", err, "key", key)
		}
	}

	return company, nil
}

// ListCompanies caches the full listing under a single key.
func (c *CompanyCache) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	data, err := c.client.Get(ctx, companyListKey).Bytes()
	if err == nil {
		var companies []*models.Company
		if err := json.Unmarshal(data, &companies); err == nil {
			return companies, nil
		}
	} else if err != redis.Nil {
		slog.Warn("company list cache read failed", "error", err)
	}

	companies, err := c.Repository.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(companies); err == nil {
		if err := c.client.Set(ctx, companyListKey, data, c.ttl).Err(); err != nil {
			slog.Warn("company list cache write failed", "error", err)
		}
	}

	return companies, nil
}

// Close closes the Redis client and the underlying repository.
func (c *CompanyCache) Close() error {
	if err := c.client.Close(); err != nil {
		slog.Warn("failed to close redis client", "error", err)
	}
	return c.Repository.Close()
}
