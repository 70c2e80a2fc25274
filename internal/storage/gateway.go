package storage

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/nikbrunner/nota/internal/logger"
)

// ErrNoValue is returned by backends when a slot has never been written.
var ErrNoValue = errors.New("storage: no value")

// Backend stores named slots of JSON-encoded data. Backends return errors;
// the Gateway decides what callers see.
type Backend interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	Clear() error
	Close() error
}

// Gateway is the persistence boundary. It never surfaces errors: backend
// failures are logged and swallowed, so callers keep working in memory when
// the medium is unavailable. Losing durability is preferable to blocking
// note-taking.
type Gateway struct {
	backend Backend
}

// NewGateway wraps a backend. A nil backend yields a gateway whose
// operations are silent no-ops, for headless contexts.
func NewGateway(backend Backend) *Gateway {
	return &Gateway{backend: backend}
}

// Save serializes value into the named slot. Failures are logged and dropped.
func (g *Gateway) Save(key string, value any) {
	if g == nil || g.backend == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("storage: marshal failed", logger.F("key", key), logger.F("err", err))
		return
	}
	if err := g.backend.Put(key, data); err != nil {
		logger.Error("storage: save failed", logger.F("key", key), logger.F("err", err))
	}
}

// Load decodes the named slot into dest and reports whether a stored value
// was decoded. On a miss or a decode failure dest keeps whatever default the
// caller prepared.
func (g *Gateway) Load(key string, dest any) bool {
	if g == nil || g.backend == nil {
		return false
	}
	data, err := g.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			logger.Warn("storage: load failed", logger.F("key", key), logger.F("err", err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("storage: corrupt slot", logger.F("key", key), logger.F("err", err))
		return false
	}
	return true
}

// Clear removes every slot owned by this application. Slots belonging to
// other programs sharing the same medium are untouched.
func (g *Gateway) Clear() {
	if g == nil || g.backend == nil {
		return
	}
	if err := g.backend.Clear(); err != nil {
		logger.Error("storage: clear failed", logger.F("err", err))
	}
}

// Close releases the underlying backend.
func (g *Gateway) Close() {
	if g == nil || g.backend == nil {
		return
	}
	if err := g.backend.Close(); err != nil {
		logger.Warn("storage: close failed", logger.F("err", err))
	}
}

// MemoryBackend is an in-process Backend for tests and ephemeral sessions.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

// Put stores data under key.
func (b *MemoryBackend) Put(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.slots[key] = cp
	return nil
}

// Get returns the data stored under key, or ErrNoValue.
func (b *MemoryBackend) Get(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.slots[key]
	if !ok {
		return nil, ErrNoValue
	}
	return data, nil
}

// Clear removes all slots.
func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots = make(map[string][]byte)
	return nil
}

// Close is a no-op.
func (b *MemoryBackend) Close() error { return nil }
