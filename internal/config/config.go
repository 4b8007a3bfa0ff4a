// Package config loads match settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/headsup/internal/match"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete harness configuration.
type Config struct {
	Match MatchSettings
	Bot   BotSettings
	Log   LogSettings
}

// file is the decoded form of a config file. Every block is optional.
type file struct {
	Match *MatchSettings `hcl:"match,block"`
	Bot   *BotSettings   `hcl:"bot,block"`
	Log   *LogSettings   `hcl:"log,block"`
}

// MatchSettings are the table stakes and limits.
type MatchSettings struct {
	StartingStack int   `hcl:"starting_stack,optional"`
	SmallBlind    int   `hcl:"small_blind,optional"`
	BigBlind      int   `hcl:"big_blind,optional"`
	MaxHands      int   `hcl:"max_hands,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// BotSettings apply to external bots.
type BotSettings struct {
	Timeout string `hcl:"timeout,optional"`
}

// LogSettings control the logger.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			StartingStack: 7500,
			SmallBlind:    50,
			BigBlind:      100,
		},
		Bot: BotSettings{Timeout: "5s"},
		Log: LogSettings{Level: "info"},
	}
}

// Load reads the config at filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills unset values with defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var partial file
	diags = gohcl.DecodeBody(f.Body, nil, &partial)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if m := partial.Match; m != nil {
		if m.StartingStack != 0 {
			cfg.Match.StartingStack = m.StartingStack
		}
		if m.SmallBlind != 0 {
			cfg.Match.SmallBlind = m.SmallBlind
		}
		if m.BigBlind != 0 {
			cfg.Match.BigBlind = m.BigBlind
		} else if m.SmallBlind != 0 {
			cfg.Match.BigBlind = 2 * m.SmallBlind
		}
		cfg.Match.MaxHands = m.MaxHands
		cfg.Match.Seed = m.Seed
	}
	if b := partial.Bot; b != nil && b.Timeout != "" {
		cfg.Bot.Timeout = b.Timeout
	}
	if l := partial.Log; l != nil && l.Level != "" {
		cfg.Log.Level = l.Level
	}
	return cfg, nil
}

// Validate checks for impossible values.
func (c *Config) Validate() error {
	if err := c.MatchConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if d, err := c.BotTimeout(); err != nil {
		return fmt.Errorf("%w: bot timeout: %w", ErrInvalid, err)
	} else if d < 0 {
		return fmt.Errorf("%w: bot timeout must not be negative, got %s", ErrInvalid, d)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}
	return nil
}

// BotTimeout returns the per-decision timeout. An empty value disables it.
func (c *Config) BotTimeout() (time.Duration, error) {
	if c.Bot.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Bot.Timeout)
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// MatchConfig converts the settings into a match config with default names.
func (c *Config) MatchConfig() match.Config {
	mc := match.DefaultConfig()
	mc.StartingStack = c.Match.StartingStack
	mc.SmallBlind = c.Match.SmallBlind
	mc.BigBlind = c.Match.BigBlind
	mc.MaxHands = c.Match.MaxHands
	mc.Seed = c.Match.Seed
	return mc
}
