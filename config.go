package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"
)

type Config struct {
	Port         uint
	PeerIDPrefix string
	Timeout      time.Duration
	LogLevel     string
}

var DefaultConfig = Config{
	Port:         6881,
	PeerIDPrefix: "-TM0100-",
	Timeout:      15 * time.Second,
	LogLevel:     "warn",
}

// parseFlags reads flags from args on top of DefaultConfig and returns the
// remaining positional arguments.
func parseFlags(args []string, stderr io.Writer) (Config, []string, error) {
	cfg := DefaultConfig

	fs := flag.NewFlagSet("torrentmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: torrentmeta [flags] decode <bencoded-string> | info <path> | peers <path>")
		fs.PrintDefaults()
	}
	fs.UintVar(&cfg.Port, "port", cfg.Port, "listen port reported to the tracker")
	fs.StringVar(&cfg.PeerIDPrefix, "peer-id-prefix", cfg.PeerIDPrefix, "peer ID prefix, random bytes fill the rest")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "tracker request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

func (c Config) Validate() error {
	if c.Port == 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if len(c.PeerIDPrefix) > 20 {
		return fmt.Errorf("peer ID prefix %q longer than 20 bytes", c.PeerIDPrefix)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// newLogger builds a text logger on w. The level was checked by Validate.
func (c Config) newLogger(w io.Writer) *slog.Logger {
	level, _ := c.level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
