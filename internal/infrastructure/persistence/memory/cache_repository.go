// Package memory provides an in-memory cache repository used when
// Redis is disabled and by the tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mealwise/v1/internal/ports/outbound"
)

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements the cache repository interface in process
// memory. Expired entries are dropped lazily on read and swept
// periodically until Close is called.
type CacheRepository struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]cacheItem),
		stop: make(chan struct{}),
	}
	go repo.sweep()
	return repo
}

// Get retrieves a value. A miss returns nil bytes and no error, the
// same contract as the Redis adapter.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists {
		return nil, nil
	}
	if time.Now().After(item.expiresAt) {
		r.mutex.Lock()
		delete(r.data, key)
		r.mutex.Unlock()
		return nil, nil
	}
	return item.value, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists and is not expired
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	if !exists {
		return false, nil
	}
	return time.Now().Before(item.expiresAt), nil
}

// Close stops the sweep goroutine. Safe to call more than once.
func (r *CacheRepository) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}

func (r *CacheRepository) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			r.mutex.Lock()
			for key, item := range r.data {
				if now.After(item.expiresAt) {
					delete(r.data, key)
				}
			}
			r.mutex.Unlock()
		case <-r.stop:
			return
		}
	}
}
