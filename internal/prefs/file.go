/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores items as one JSON object in a file. Writes go
// through a temp file and rename so a crash never leaves half a file.
type FileBackend struct {
	mu    sync.Mutex
	path  string
	quota int64
}

// NewFileBackend uses path; quota <= 0 disables the size limit.
func NewFileBackend(path string, quota int64) *FileBackend {
	return &FileBackend{path: path, quota: quota}
}

func (f *FileBackend) Path() string { return f.path }

// readLocked returns the stored items. A missing or unparsable file reads
// as empty and is replaced on the next write.
func (f *FileBackend) readLocked() (map[string]string, error) {
	items := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return items, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return make(map[string]string), nil
	}
	return items, nil
}

func (f *FileBackend) writeLocked(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if f.quota > 0 && int64(len(data)) > f.quota {
		return ErrQuotaExceeded
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

func (f *FileBackend) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *FileBackend) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readLocked()
	if err != nil {
		return err
	}
	items[key] = value
	return f.writeLocked(items)
}

func (f *FileBackend) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readLocked()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.writeLocked(items)
}

func (f *FileBackend) Len() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readLocked()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
