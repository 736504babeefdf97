package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MemoryKV is a map-backed KV with the same namespace semantics as SQLiteKV.
// FailSave and FailLoad let tests force the failure path.
type MemoryKV struct {
	prefix   string
	data     map[string]string
	FailSave error
	FailLoad error
}

func NewMemoryKV(prefix string) *MemoryKV {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &MemoryKV{prefix: prefix, data: make(map[string]string)}
}

func (m *MemoryKV) Save(key string, value any) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	m.data[namespaced(m.prefix, key)] = string(payload)
	return nil
}

func (m *MemoryKV) Load(key string, dst any) error {
	if m.FailLoad != nil {
		return m.FailLoad
	}
	raw, ok := m.data[namespaced(m.prefix, key)]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	delete(m.data, namespaced(m.prefix, key))
	return nil
}

func (m *MemoryKV) Clear() error {
	for k := range m.data {
		if strings.HasPrefix(k, m.prefix+"_") {
			delete(m.data, k)
		}
	}
	return nil
}

// Len reports the number of stored entries across all namespaces.
func (m *MemoryKV) Len() int { return len(m.data) }

// SetRaw plants a raw value under the namespaced key, bypassing encoding.
// Used by tests to simulate malformed persisted data.
func (m *MemoryKV) SetRaw(key, raw string) {
	m.data[namespaced(m.prefix, key)] = raw
}
