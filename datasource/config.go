package datasource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// fileSource mirrors Config for config files. Durations are human-readable
// strings ("30s", "2m") and custom sources are rejected: an injected fetch
// function cannot come from a file.
type fileSource struct {
	ID         string            `json:"id" yaml:"id" validate:"required"`
	Type       string            `json:"type" yaml:"type" validate:"required,oneof=json api sample"`
	Active     bool              `json:"active" yaml:"active"`
	Data       any               `json:"data" yaml:"data"`
	URL        string            `json:"url" yaml:"url" validate:"required_if=Type api,omitempty,url"`
	Method     string            `json:"method" yaml:"method" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Params     map[string]string `json:"params" yaml:"params"`
	Body       any               `json:"body" yaml:"body"`
	Timeout    string            `json:"timeout" yaml:"timeout"`
	DataPath   string            `json:"dataPath" yaml:"dataPath"`
	Cache      bool              `json:"cache" yaml:"cache"`
	CacheTTL   string            `json:"cacheDuration" yaml:"cacheDuration"`
	SampleData any               `json:"sampleData" yaml:"sampleData"`
}

// LoadConfigFile reads a YAML or JSON array of data source configs,
// validates each entry and converts it to a Config ready for ImportConfig.
// The format is chosen by file extension: .json is JSON, everything else
// is parsed as YAML.
//
// This is a convenience for CLI and demo surfaces; the manager's own Add
// and ImportConfig stay validation-free.
func LoadConfigFile(path string) ([]Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(raw, strings.EqualFold(filepath.Ext(path), ".json"))
}

// ParseConfig decodes and validates a config document.
func ParseConfig(raw []byte, isJSON bool) ([]Config, error) {
	var entries []fileSource
	if isJSON {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	check := validator.New()
	configs := make([]Config, 0, len(entries))
	for i, e := range entries {
		if err := check.Struct(e); err != nil {
			return nil, fmt.Errorf("config entry %d (%s): %w", i, e.ID, err)
		}
		cfg, err := e.toConfig()
		if err != nil {
			return nil, fmt.Errorf("config entry %d (%s): %w", i, e.ID, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (e fileSource) toConfig() (Config, error) {
	cfg := Config{
		ID:         e.ID,
		Active:     e.Active,
		Type:       SourceType(e.Type),
		Data:       e.Data,
		URL:        e.URL,
		Method:     e.Method,
		Headers:    e.Headers,
		Params:     e.Params,
		Body:       e.Body,
		DataPath:   e.DataPath,
		Cache:      e.Cache,
		SampleData: e.SampleData,
	}

	var err error
	if cfg.Timeout, err = parseDuration(e.Timeout); err != nil {
		return Config{}, fmt.Errorf("timeout: %w", err)
	}
	if cfg.CacheDuration, err = parseDuration(e.CacheTTL); err != nil {
		return Config{}, fmt.Errorf("cacheDuration: %w", err)
	}
	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
