package datasource

import (
	"context"
	"time"
)

// SourceType identifies how a data source obtains its data.
type SourceType string

const (
	// SourceJSON holds a literal data value in its config.
	SourceJSON SourceType = "json"
	// SourceAPI fetches data from a remote HTTP endpoint.
	SourceAPI SourceType = "api"
	// SourceCustom delegates to an injected fetch function.
	SourceCustom SourceType = "custom"
	// SourceSample returns static sample data, never fetched or cached.
	SourceSample SourceType = "sample"
)

// Default fetch behavior when a config leaves the knobs unset.
const (
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second
	// DefaultCacheDuration is the TTL applied to cached API responses when
	// the config enables caching without choosing a duration.
	DefaultCacheDuration = time.Minute
)

// FetchFunc is an injected fetcher for custom sources.
type FetchFunc func(ctx context.Context) (any, error)

// ValidateFunc is an optional acceptance check for custom-source data.
// Returning false fails the fetch.
type ValidateFunc func(data any) bool

// Config describes a named data source.
//
// Only the fields matching the source's Type are consulted: Data for json
// sources; URL, Method, Headers, Params, Body, Timeout, DataPath, Cache and
// CacheDuration for api sources; Fetch and Validate for custom sources.
// SampleData is usable for preview regardless of Type.
type Config struct {
	// ID is the unique key of the source.
	ID string `json:"id" yaml:"id"`
	// Active is a registration-time hint: when true, the source becomes the
	// manager's active source on Add. It is not kept up to date afterwards.
	Active bool `json:"active,omitempty" yaml:"active,omitempty"`
	// Type selects the fetch strategy.
	Type SourceType `json:"type" yaml:"type"`

	// Data is the literal payload of a json source.
	Data any `json:"data,omitempty" yaml:"data,omitempty"`

	// URL is the endpoint of an api source.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// Method is the HTTP method, defaulting to GET.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Headers are sent verbatim with the request.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	// Params are appended to the URL as query parameters.
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	// Body is JSON-encoded and sent with non-GET requests.
	Body any `json:"body,omitempty" yaml:"body,omitempty"`
	// Timeout bounds the request; zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// DataPath drills into the decoded response body, one dot-separated
	// segment at a time.
	DataPath string `json:"dataPath,omitempty" yaml:"dataPath,omitempty"`
	// Cache enables response caching for api sources.
	Cache bool `json:"cache,omitempty" yaml:"cache,omitempty"`
	// CacheDuration is the cache TTL; zero means DefaultCacheDuration.
	CacheDuration time.Duration `json:"cacheDuration,omitempty" yaml:"cacheDuration,omitempty"`

	// Fetch is the injected fetcher of a custom source. Not serializable.
	Fetch FetchFunc `json:"-" yaml:"-"`
	// Validate optionally checks data fetched by a custom source.
	Validate ValidateFunc `json:"-" yaml:"-"`

	// SampleData is a static payload for sample sources and previews.
	SampleData any `json:"sampleData,omitempty" yaml:"sampleData,omitempty"`

	// UpdatedAt is stamped on every mutation through the manager.
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// ConnectionResult is the non-throwing outcome of TestConnection.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
