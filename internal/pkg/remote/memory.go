package remote

import (
	"context"
	"errors"
	"sync"
)

var errWriteFailed = errors.New("remote: write failed")

// MemoryMirror is a map-backed Mirror, safe for concurrent use. It exists
// for tests and for running the full stack without any external service.
type MemoryMirror struct {
	mu         sync.RWMutex
	objects    map[string][]byte
	messages   map[string]string
	failWrites bool
	failReads  bool
}

// NewMemoryMirror creates an empty in-memory mirror.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{
		objects:  make(map[string][]byte),
		messages: make(map[string]string),
	}
}

func (m *MemoryMirror) Enabled() bool { return true }

func (m *MemoryMirror) Driver() Driver { return DriverMemory }

func (m *MemoryMirror) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failReads {
		return nil, ErrNotFound
	}
	data, ok := m.objects[path]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryMirror) Write(_ context.Context, path string, data []byte, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteFailed
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[path] = stored
	m.messages[path] = message
	return nil
}

// FailWrites toggles forced write failures.
func (m *MemoryMirror) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// FailReads toggles forced read misses.
func (m *MemoryMirror) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

// Message returns the change message recorded for the last write to path.
func (m *MemoryMirror) Message(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.messages[path]
}

// Len reports how many objects the mirror holds.
func (m *MemoryMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
