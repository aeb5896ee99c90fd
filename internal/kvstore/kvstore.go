// Package kvstore provides the simple key-value persistence used for local
// session state (theme preference, prompt drafts).
package kvstore

import (
	"encoding/json"
	"os"
	"sync"
)

// Memory is an in-process key-value store, safe for concurrent use
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Remove deletes key
func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// File is a Memory store mirrored to a JSON file after every write. Reads
// are served from memory; a missing or unreadable file starts empty.
type File struct {
	Memory
	path string
}

// NewFile creates a file-backed store, loading existing contents if any
func NewFile(path string) *File {
	f := &File{path: path}
	f.data = make(map[string]string)

	raw, err := os.ReadFile(path)
	if err == nil {
		// Best effort: a corrupt file simply starts a fresh store
		_ = json.Unmarshal(raw, &f.data)
	}
	return f
}

// Set stores value under key and flushes to disk
func (f *File) Set(key, value string) {
	f.Memory.Set(key, value)
	f.flush()
}

// Remove deletes key and flushes to disk
func (f *File) Remove(key string) {
	f.Memory.Remove(key)
	f.flush()
}

func (f *File) flush() {
	f.mu.RLock()
	raw, err := json.Marshal(f.data)
	f.mu.RUnlock()
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, raw, 0o600)
}
