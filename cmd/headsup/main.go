package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"headsup.hcl" type:"path" help:"HCL config file, ignored if missing"`
	Debug    bool             `help:"Enable debug logging"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a match against a bot (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Play many bot-vs-bot matches and report results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("headsup"),
		kong.Description("Heads-up No-Limit Hold'em harness for poker bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and validates it.
func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *CLI) logger(cfg *config.Config, quiet bool) *log.Logger {
	level := cfg.LogLevel()
	if quiet && level < log.WarnLevel {
		level = log.WarnLevel
	}
	if c.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// botName turns a bot spec into a short player name.
func botName(spec string) string {
	if strings.Contains(spec, "://") {
		return strings.TrimSuffix(strings.SplitN(spec, "://", 2)[1], "/")
	}
	base := filepath.Base(spec)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// distinctNames keeps player names unique when both bots share a name.
func distinctNames(a, b string) [2]string {
	if a == b {
		return [2]string{a + "-1", b + "-2"}
	}
	return [2]string{a, b}
}
