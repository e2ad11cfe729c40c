package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// FetchActive fetches the active source's current data. Fails with
// ErrNoActiveSource when no source is active.
func (m *Manager) FetchActive(ctx context.Context) (any, error) {
	m.mu.RLock()
	id := m.activeID
	m.mu.RUnlock()

	if id == "" {
		return nil, ErrNoActiveSource
	}
	return m.Fetch(ctx, id)
}

// Fetch returns the current data of the source registered under id.
//
// API sources with caching enabled return the cached payload when its age
// is below the source's TTL. Otherwise dispatch follows the source type:
// json sources return their literal data, api sources issue an HTTP
// request, custom sources invoke their injected fetcher, sample sources
// return their sample data. Every successful fetch writes a cache entry,
// though only api sources ever read one back.
func (m *Manager) Fetch(ctx context.Context, id string) (any, error) {
	m.mu.RLock()
	src, ok := m.sources[id]
	var cfg Config
	if ok {
		cfg = *src
	}
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, id)
	}

	if cfg.Type == SourceAPI && cfg.Cache {
		ttl := cfg.CacheDuration
		if ttl <= 0 {
			ttl = DefaultCacheDuration
		}
		if entry, hit := m.cache.get(id); hit && time.Since(entry.at) < ttl {
			return entry.data, nil
		}
	}

	var (
		data any
		err  error
	)
	switch cfg.Type {
	case SourceJSON:
		data = cfg.Data
	case SourceAPI:
		data, err = m.fetchAPI(ctx, cfg)
	case SourceCustom:
		data, err = fetchCustom(ctx, cfg)
	case SourceSample:
		data = cfg.SampleData
		if data == nil {
			data = map[string]any{}
		}
	default:
		err = fmt.Errorf("data source %q has unsupported type %q", id, cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	m.cache.set(id, data)
	return data, nil
}

// fetchAPI issues the HTTP request described by an api-source config and
// decodes the JSON response body.
func (m *Manager) fetchAPI(ctx context.Context, cfg Config) (any, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("data source %q: invalid url: %w", cfg.ID, err)
	}
	if len(cfg.Params) > 0 {
		q := u.Query()
		for k, v := range cfg.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	sendBody := method != http.MethodGet && cfg.Body != nil
	if sendBody {
		encoded, err := json.Marshal(cfg.Body)
		if err != nil {
			return nil, fmt.Errorf("data source %q: encode body: %w", cfg.ID, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("data source %q: build request: %w", cfg.ID, err)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}
	if sendBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("data source %q: request failed: %w", cfg.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("data source %q: unexpected status %d %s",
			cfg.ID, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("data source %q: read response: %w", cfg.ID, err)
	}
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("data source %q: decode response: %w", cfg.ID, err)
	}

	if cfg.DataPath != "" {
		data, err = drill(data, cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("data source %q: %w", cfg.ID, err)
		}
	}
	return data, nil
}

// fetchCustom invokes the injected fetcher and runs the optional
// acceptance check.
func fetchCustom(ctx context.Context, cfg Config) (any, error) {
	if cfg.Fetch == nil {
		return nil, fmt.Errorf("custom data source %q has no fetch function", cfg.ID)
	}
	data, err := cfg.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("custom data source %q: %w", cfg.ID, err)
	}
	if cfg.Validate != nil && !cfg.Validate(data) {
		return nil, fmt.Errorf("custom data source %q: fetched data failed validation", cfg.ID)
	}
	return data, nil
}

// drill walks data one dot-separated segment at a time. Every intermediate
// value must be an object holding the next segment.
func drill(data any, path string) (any, error) {
	cur := data
	for _, seg := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid data path %q: segment %q is not an object", path, seg)
		}
		next, ok := obj[seg]
		if !ok {
			return nil, fmt.Errorf("invalid data path %q: missing segment %q", path, seg)
		}
		cur = next
	}
	return cur, nil
}

// Query fetches the source's data and applies a JSONPath selector to it,
// returning every match. Used by preview surfaces to drill into payloads
// without a declared dataPath.
func (m *Manager) Query(ctx context.Context, id, selector string) ([]any, error) {
	data, err := m.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	expr, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	return expr.Get(data), nil
}

// TestConnection probes a source without surfacing errors as errors: any
// fetch failure is downgraded to a structured result so UI flows can probe
// without error-handling boilerplate.
func (m *Manager) TestConnection(ctx context.Context, id string) ConnectionResult {
	data, err := m.Fetch(ctx, id)
	if err != nil {
		return ConnectionResult{Success: false, Message: err.Error()}
	}
	return ConnectionResult{Success: true, Message: "Connection successful", Data: data}
}
