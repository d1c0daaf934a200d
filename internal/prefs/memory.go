/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package prefs

import "sync"

// MemoryBackend keeps items for the life of the process.
type MemoryBackend struct {
	mu    sync.Mutex
	items map[string]string
	quota int
	fail  error
}

// NewMemoryBackend returns an empty backend. quota <= 0 means unlimited,
// otherwise it bounds the summed size of keys and values.
func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string), quota: quota}
}

// Fail makes every following operation return err. nil restores service.
func (m *MemoryBackend) Fail(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

func (m *MemoryBackend) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", false, m.fail
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryBackend) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.quota > 0 {
		size := len(key) + len(value)
		for k, v := range m.items {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.items[key] = value
	return nil
}

func (m *MemoryBackend) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	delete(m.items, key)
	return nil
}

func (m *MemoryBackend) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}
	return len(m.items), nil
}
