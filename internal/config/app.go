package config

import (
	"path/filepath"

	"github.com/caarlos0/env/v9"
)

type AppConfig struct {
	RuntimePath string `env:"DTOOL_RUNTIME_PATH" envDefault:".debugtool"`

	// Command history kept between sessions
	HistoryLimit int `env:"DTOOL_HISTORY_LIMIT" envDefault:"1000"`

	// Nested `source` limit, 0 disables the check
	MaxSourceDepth int `env:"DTOOL_MAX_SOURCE_DEPTH" envDefault:"0"`

	EnableTranscript bool `env:"DTOOL_TRANSCRIPT" envDefault:"true"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = ResolveRuntimePath(c.RuntimePath)
	if c.HistoryLimit < 0 {
		c.HistoryLimit = 0
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "dtool.db")
}

func (c AppConfig) GetHandlersPath() string {
	return filepath.Join(c.RuntimePath, "handlers.yaml")
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "dtool.log")
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

func (c AppConfig) GetMaxSourceDepth() int {
	return c.MaxSourceDepth
}

func (c AppConfig) IsTranscriptEnabled() bool {
	return c.EnableTranscript
}
