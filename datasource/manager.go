// Package datasource manages named data sources for template binding:
// literal JSON payloads, remote APIs, injected fetchers and static samples.
//
// A Manager owns a registry of source configs, tracks at most one active
// source, caches API responses with a per-source TTL, validates fetched data
// against a declared schema of expected variable paths, and can infer such a
// schema from sample data.
//
// The manager performs no fetch de-duplication: concurrent fetches for the
// same source may each hit the network, and the last completion's cache
// write wins. Callers needing stricter consistency must serialize their own
// calls. Internal maps are lock-guarded only for memory safety.
package datasource

import (
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"
)

// ErrNoActiveSource is returned by FetchActive when no source is active.
var ErrNoActiveSource = errors.New("no active data source")

// ErrUnknownSource is wrapped by operations addressing an unregistered id.
var ErrUnknownSource = errors.New("unknown data source")

// Manager is an instantiable data source registry. The composing
// application owns the instance and its lifetime; there is no package-level
// singleton.
type Manager struct {
	mu       sync.RWMutex
	sources  map[string]*Config
	activeID string

	cache  *dataCache
	client *http.Client
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		sources: make(map[string]*Config),
		cache:   newDataCache(),
		client:  &http.Client{},
	}
}

// Add inserts or overwrites a source by its ID. The first source ever
// added becomes active; so does any source added with Active set (last
// writer wins).
func (m *Manager) Add(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg.UpdatedAt = time.Now()
	m.sources[cfg.ID] = &cfg

	if len(m.sources) == 1 || cfg.Active {
		m.activeID = cfg.ID
	}
}

// Remove deletes a source and its cache entry, reporting whether the id was
// registered. Removing the active source promotes an arbitrary remaining
// source to active, or clears active if none remain.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sources[id]; !ok {
		return false
	}
	delete(m.sources, id)
	m.cache.evict(id)

	if m.activeID == id {
		m.activeID = ""
		for next := range m.sources {
			m.activeID = next
			break
		}
	}
	return true
}

// Update applies a mutation to the config registered under id, stamps
// UpdatedAt and evicts the source's cache entry so the next fetch reflects
// the new config immediately, bypassing any TTL. Returns false without
// side effects when id is unknown.
//
// The apply callback receives the stored config and mutates only the fields
// it wants changed, giving shallow-merge semantics.
func (m *Manager) Update(id string, apply func(*Config)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.sources[id]
	if !ok {
		return false
	}
	apply(cfg)
	cfg.ID = id // the key is authoritative
	cfg.UpdatedAt = time.Now()
	m.cache.evict(id)
	return true
}

// SetActive designates the active source. Returns false with no state
// change when id is unknown.
func (m *Manager) SetActive(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sources[id]; !ok {
		return false
	}
	m.activeID = id
	return true
}

// ActiveID returns the active source id, or "" when none is active.
func (m *Manager) ActiveID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID
}

// Get returns a copy of the config registered under id.
func (m *Manager) Get(id string) (Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.sources[id]
	if !ok {
		return Config{}, false
	}
	return *cfg, true
}

// SampleData returns the sample data of the named source, or of the active
// source when id is empty. Sources without sample data, unknown ids and an
// absent active source all yield an empty object.
func (m *Manager) SampleData(id string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id == "" {
		id = m.activeID
	}
	if cfg, ok := m.sources[id]; ok && cfg.SampleData != nil {
		return cfg.SampleData
	}
	return map[string]any{}
}

// ClearCache evicts every cached payload.
func (m *Manager) ClearCache() {
	m.cache.clear()
}

// ClearCacheForSource evicts the cached payload of one source.
func (m *Manager) ClearCacheForSource(id string) {
	m.cache.evict(id)
}

// ExportConfig returns copies of every registered config, ordered by id for
// stable serialization. Injected Fetch/Validate functions do not survive a
// round trip through serialization.
func (m *Manager) ExportConfig() []Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Config, 0, len(m.sources))
	for _, cfg := range m.sources {
		out = append(out, *cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ImportConfig registers every config through Add. Duplicate ids overwrite;
// no validation happens beyond what Add does.
func (m *Manager) ImportConfig(configs []Config) {
	for _, cfg := range configs {
		m.Add(cfg)
	}
}
