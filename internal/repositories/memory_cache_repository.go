package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	apperrors "crm-console/pkg/errors"
)

// MemoryCacheRepository - CacheRepositoryInterface в памяти процесса,
// для запуска без Redis и для тестов.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{items: map[string]memoryItem{}, now: time.Now}
}

func (m *MemoryCacheRepository) alive(key string) (memoryItem, bool) {
	item, ok := m.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		return memoryItem{}, false
	}
	return item, true
}

func (m *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.alive(key)
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return item.value, nil
}

func (m *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := memoryItem{}
	switch v := value.(type) {
	case string:
		item.value = v
	case []byte:
		item.value = string(v)
	default:
		item.value = fmt.Sprint(v)
	}
	if expiration > 0 {
		item.expiresAt = m.now().Add(expiration)
	}
	m.items[key] = item
	return nil
}

func (m *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, _ := m.alive(key)
	var n int64
	if item.value != "" {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("значение ключа %s не является целым числом: %w", key, err)
		}
		n = parsed
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	m.items[key] = item
	return n, nil
}

func (m *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.alive(key)
	if !ok {
		return false, nil
	}
	item.expiresAt = m.now().Add(expiration)
	m.items[key] = item
	return true, nil
}
