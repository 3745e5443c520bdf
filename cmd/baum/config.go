package main

import (
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"
	"github.com/urfave/cli"

	"github.com/fkohlgrueber/baum"
	logzap "github.com/fkohlgrueber/baum/log/zap"
	loglogrus "github.com/fkohlgrueber/baum/log/logrus"
	logslog "github.com/fkohlgrueber/baum/log/slog"
)

// Config is the TOML configuration of the baum command.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Decode DecodeConfig `toml:"decode"`
}

// LogConfig selects the logging backend and level.
type LogConfig struct {
	Level   string `toml:"level"`
	Backend string `toml:"backend"`
}

// DecodeConfig holds decode limits; 0 disables a limit.
type DecodeConfig struct {
	MaxDepth int `toml:"max_depth"`
	MaxSize  int `toml:"max_size"`
}

// DefaultConfig is used when no --config file is given.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Backend: "zap"},
	}
}

func (c *Config) decodeOptions() baum.DecodeOptions {
	return baum.DecodeOptions{MaxDepth: c.Decode.MaxDepth, MaxSize: c.Decode.MaxSize}
}

// loadConfig reads file on top of the defaults.
func loadConfig(file string) (*Config, error) {
	fp, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Clean(fp))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	config := DefaultConfig()
	if err = toml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}
	return config, nil
}

// getConfig loads --config if set, then applies global flag overrides.
func getConfig(ctx *cli.Context) (*Config, error) {
	config := DefaultConfig()
	if file := ctx.GlobalString(ConfigFlag.Name); file != "" {
		var err error
		if config, err = loadConfig(file); err != nil {
			return nil, err
		}
	}
	if lvl := ctx.GlobalString(LogFlag.Name); lvl != "" {
		config.Log.Level = lvl
	}
	if ctx.GlobalIsSet(MaxDepthFlag.Name) {
		config.Decode.MaxDepth = ctx.GlobalInt(MaxDepthFlag.Name)
	}
	if ctx.GlobalIsSet(MaxSizeFlag.Name) {
		config.Decode.MaxSize = ctx.GlobalInt(MaxSizeFlag.Name)
	}
	if config.Decode.MaxDepth < 0 || config.Decode.MaxSize < 0 {
		return nil, fmt.Errorf("decode limits must not be negative")
	}
	return config, nil
}

// newLogger builds the configured backend writing to w.
func newLogger(c LogConfig, w io.Writer) (baum.Logger, error) {
	level := strings.ToLower(c.Level)
	if level == "" {
		level = "warn"
	}
	switch c.Backend {
	case "", "zap":
		return logzap.New(w, level)
	case "logrus":
		return loglogrus.New(w, level)
	case "slog":
		var lvl stdslog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: lvl})
		return logslog.Logger{L: stdslog.New(h)}, nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", c.Backend)
	}
}
