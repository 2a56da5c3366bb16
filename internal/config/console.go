package config

import (
	"github.com/caarlos0/env/v11"
)

type ConsoleConfig struct {
	Prompt    string `env:"DTOOL_PROMPT" envDefault:"> "`
	Plain     bool   `env:"DTOOL_PLAIN" envDefault:"false"`
	AltScreen bool   `env:"DTOOL_ALT_SCREEN" envDefault:"true"`
}

func LoadConsoleConfig() (*ConsoleConfig, error) {
	c := &ConsoleConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c ConsoleConfig) GetPrompt() string {
	return c.Prompt
}

func (c ConsoleConfig) IsPlain() bool {
	return c.Plain
}

func (c ConsoleConfig) UseAltScreen() bool {
	return c.AltScreen
}
