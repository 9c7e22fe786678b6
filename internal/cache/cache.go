package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// CachedResult is a cached analysis payload.
type CachedResult struct {
	Key       string                 `json:"key"`
	Source    string                 `json:"source"` // "news" or "calendar"
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// Cache is the cache interface. Get returns (nil, nil) on a miss or an
// expired entry.
type Cache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, data map[string]interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MemoryCache is an in-memory cache for single-instance deployments
// and tests.
type MemoryCache struct {
	source string
	data   map[string]*CachedResult
	mu     sync.RWMutex
}

// NewMemoryCache creates a memory cache.
func NewMemoryCache(source string) *MemoryCache {
	return &MemoryCache{
		source: source,
		data:   make(map[string]*CachedResult),
	}
}

// Get returns a cached entry, or nil if missing or expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	c.mu.RLock()
	result, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if time.Now().After(result.ExpiresAt) {
		go c.Delete(context.Background(), key)
		return nil, nil
	}
	return result, nil
}

// Set stores an entry with a TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, data map[string]interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &CachedResult{
		Key:       key,
		Source:    c.source,
		Data:      data,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

// PostgresCache stores cached results in an analysis_cache table, one
// row per (source, key) with an expiry column.
type PostgresCache struct {
	db     *sql.DB
	source string
}

// NewPostgresCache connects to Postgres and ensures the cache table
// exists.
func NewPostgresCache(databaseURL, source string) (*PostgresCache, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS analysis_cache (
		source     TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		data       JSONB       NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (source, key)
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresCache{db: db, source: source}, nil
}

// Get returns a cached entry, or nil if missing or expired.
func (c *PostgresCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	query := `
	SELECT key, source, data, created_at, expires_at
	FROM analysis_cache
	WHERE source = $1 AND key = $2 AND expires_at > NOW()
	`

	var result CachedResult
	var dataJSON []byte

	err := c.db.QueryRowContext(ctx, query, c.source, key).Scan(
		&result.Key,
		&result.Source,
		&dataJSON,
		&result.CreatedAt,
		&result.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(dataJSON, &result.Data); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set upserts an entry with a TTL.
func (c *PostgresCache) Set(ctx context.Context, key string, data map[string]interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO analysis_cache (source, key, data, created_at, expires_at)
	VALUES ($1, $2, $3, NOW(), $4)
	ON CONFLICT (source, key)
	DO UPDATE SET data = $3, created_at = NOW(), expires_at = $4
	`
	_, err = c.db.ExecContext(ctx, query, c.source, key, dataJSON, time.Now().Add(ttl))
	return err
}

// Delete removes an entry.
func (c *PostgresCache) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM analysis_cache WHERE source = $1 AND key = $2`
	_, err := c.db.ExecContext(ctx, query, c.source, key)
	return err
}

// CleanExpired removes expired rows for every source.
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM analysis_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close closes the database connection.
func (c *PostgresCache) Close() error {
	return c.db.Close()
}
