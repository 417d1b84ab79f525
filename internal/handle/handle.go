// Package handle implements the per-engine handle registry of spec.md
// §4.11: an integer-keyed arena of shared Values that lets a host push
// tensors into the engine once and chain dense operations by id. Per
// spec.md §9 this state must be per-engine-instance (not process-wide);
// the mutex exists only because a host embedding the engine may call from
// more than one goroutine even though the engine itself never schedules
// concurrently (spec.md §5).
package handle

import (
	"sync"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// ID is an opaque handle identifier.
type ID int64

// Stats reports the live/lifetime counters a host uses to detect leaks
// (spec.md §5).
type Stats struct {
	Active         int
	TotalAllocated int64
	TotalFreed     int64
}

type entry struct {
	val value.Value
}

// Manager is the per-engine handle registry.
type Manager struct {
	mu      sync.Mutex
	entries map[ID]*entry
	nextID  ID
	stats   Stats
}

// New creates an empty handle registry.
func New() *Manager {
	return &Manager{entries: make(map[ID]*entry)}
}

// Create stores v and returns a fresh handle with a single reference.
func (m *Manager) Create(v value.Value) ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.entries[id] = &entry{val: v}
	m.stats.Active++
	m.stats.TotalAllocated++
	return id
}

// Get returns the Value behind a handle, or a Disposed error if the handle
// was never created or has since been released (spec.md §7).
func (m *Manager) Get(id ID) (value.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, soerr.New(soerr.Disposed, "handle %d is not valid", id)
	}
	return e.val, nil
}

// IsValid reports whether id currently refers to a live entry.
func (m *Manager) IsValid(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[id]
	return ok
}

// Clone increments the reference count and returns a new handle id aliasing
// the same Value (tensors are immutable once created — kernels always
// allocate fresh outputs — so aliasing is safe, spec.md §3 ownership).
func (m *Manager) Clone(id ID) (ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return 0, soerr.New(soerr.Disposed, "handle %d is not valid", id)
	}
	m.nextID++
	newID := m.nextID
	m.entries[newID] = &entry{val: e.val}
	m.stats.Active++
	m.stats.TotalAllocated++
	return newID, nil
}

// CreateFromBuffer copies a host-owned float64 buffer into a fresh Tensor
// handle (spec.md §4.11's create_from_buffer). rows/cols, when both > 0,
// shape the buffer as a matrix; otherwise it is stored as a vector. The
// engine always copies rather than aliasing host memory, since the host's
// buffer lifetime is independent of the handle's (spec.md §3 ownership).
func (m *Manager) CreateFromBuffer(buf []float64, rows, cols int) (ID, error) {
	data := append([]float64(nil), buf...)
	var shape []int
	switch {
	case rows > 0 && cols > 0:
		if rows*cols != len(data) {
			return 0, soerr.New(soerr.Shape, "create_from_buffer: rows*cols (%d) does not match buffer length %d", rows*cols, len(data))
		}
		shape = []int{rows, cols}
	default:
		shape = []int{len(data)}
	}
	return m.Create(value.NewTensorFromData(shape, data)), nil
}

// Release drops a handle, returning true if it was live.
func (m *Manager) Release(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return false
	}
	delete(m.entries, id)
	m.stats.Active--
	m.stats.TotalFreed++
	return true
}

// Count returns the number of currently live handles.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns the allocation diagnostics counters (spec.md §5).
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Clear releases every handle (spec.md §3 full reset).
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.TotalFreed += int64(len(m.entries))
	m.entries = make(map[ID]*entry)
	m.stats.Active = 0
}
