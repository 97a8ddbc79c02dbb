package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node
// deployments without a database.
type MemoryStore struct {
	mu         sync.Mutex
	namespaces map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.write(namespace, key, value)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := checkKey(namespace, key); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.namespaces[namespace][key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, key)
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.namespaces[namespace], key)
	return nil
}

func (m *MemoryStore) ListKeys(ctx context.Context, namespace string, kind Kind) ([]string, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: namespace is required", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0)
	for key := range m.namespaces[namespace] {
		if KindOfKey(key) == kind {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Update(ctx context.Context, namespace, key string, fn UpdateFunc) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.namespaces[namespace][key]
	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	m.write(namespace, key, next)
	return nil
}

// write assumes the caller holds mu.
func (m *MemoryStore) write(namespace, key string, value []byte) {
	records, ok := m.namespaces[namespace]
	if !ok {
		records = make(map[string][]byte)
		m.namespaces[namespace] = records
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	records[key] = stored
}

func checkKey(namespace, key string) error {
	if namespace == "" {
		return fmt.Errorf("%w: namespace is required", ErrInvalidArgument)
	}
	if key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidArgument)
	}
	return nil
}
