package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryRepository struct {
	store *gocache.Cache
}

// NewMemoryRepository is the in-process fallback used when no REDIS_URL is
// configured. Values are stored JSON-encoded so both implementations
// behave identically.
func NewMemoryRepository(defaultTTL time.Duration) Repository {
	return &memoryRepository{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *memoryRepository) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	val, found := m.store.Get(key)
	if !found {
		return false, nil
	}

	data, ok := val.([]byte)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

func (m *memoryRepository) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	m.store.Set(key, data, ttl)
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.store.Delete(key)
	}
	return nil
}

func (m *memoryRepository) DeletePrefix(_ context.Context, prefix string) error {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}
	return nil
}
