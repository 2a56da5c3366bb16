package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HandlersConfig is the startup state of command handlers, keyed by handler name.
//
//	handlers:
//	  ARM Debug Handler:
//	    enabled: false
type HandlersConfig struct {
	Handlers map[string]HandlerSettings `yaml:"handlers"`
}

type HandlerSettings struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// LoadHandlersConfig reads path. A missing file yields an empty config.
func LoadHandlersConfig(path string) (*HandlersConfig, error) {
	cfg := &HandlersConfig{Handlers: make(map[string]HandlerSettings)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read handlers config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse handlers config %s: %w", path, err)
	}
	if cfg.Handlers == nil {
		cfg.Handlers = make(map[string]HandlerSettings)
	}
	return cfg, nil
}

// IsEnabled reports the configured state, defaulting to enabled.
func (c *HandlersConfig) IsEnabled(name string) bool {
	s, ok := c.Handlers[name]
	if !ok || s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

// Unknown returns configured names that match none of known.
func (c *HandlersConfig) Unknown(known []string) []string {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}

	var res []string
	for name := range c.Handlers {
		if _, ok := set[name]; !ok {
			res = append(res, name)
		}
	}
	return res
}

func (c *HandlersConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode handlers config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write handlers config: %w", err)
	}
	return nil
}
