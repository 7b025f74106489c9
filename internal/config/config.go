// Package config loads arenaview settings from a YAML file, an optional .env
// file and ARENA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/feed"
	"github.com/zeusync/arena/internal/server"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ARENA_"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete arenaview configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Replay, when set, renders a recorded YAML stream instead of dialing the feed.
	Replay         string        `yaml:"replay"`
	ReplayInterval time.Duration `yaml:"replay_interval"`

	Background string `yaml:"background"`

	Feed   feed.ClientConfig `yaml:"feed"`
	Server server.Config     `yaml:"server"`
	View   model.ViewConfig  `yaml:"view"`
}

func Default() Config {
	return Config{
		LogLevel:       "info",
		ReplayInterval: 16 * time.Millisecond,
		Background:     "#10141c",
		Feed:           feed.DefaultClientConfig(),
		Server:         server.DefaultConfig(),
		View: model.ViewConfig{
			Scale:      150,
			Centered:   true,
			Boundaries: geometry.Size{W: 400, H: 400},
		},
	}
}

// Load reads path over the defaults. An empty path skips the file. A .env file
// in the working directory is loaded if present; variables already set win.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.Replay == "" && c.Feed.URL == "" {
		return fmt.Errorf("%w: feed url or replay file required", ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr required", ErrInvalidConfig)
	}
	if c.View.Boundaries.W <= 0 || c.View.Boundaries.H <= 0 {
		return fmt.Errorf("%w: view boundaries must be positive", ErrInvalidConfig)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("REPLAY", &cfg.Replay)
	setString("BACKGROUND", &cfg.Background)
	setString("FEED_URL", &cfg.Feed.URL)
	setString("SERVER_ADDR", &cfg.Server.Addr)

	if v, ok := lookup("SERVER_ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	var errs []error
	errs = append(errs,
		setDuration("REPLAY_INTERVAL", &cfg.ReplayInterval),
		setFloat("VIEW_SCALE", &cfg.View.Scale),
		setFloat("VIEW_ROTATION", &cfg.View.Rotation),
		setFloat("VIEW_WIDTH", &cfg.View.Boundaries.W),
		setFloat("VIEW_HEIGHT", &cfg.View.Boundaries.H),
		setBool("VIEW_CENTERED", &cfg.View.Centered),
		setBool("VIEW_DEBUG", &cfg.View.Debug),
	)
	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setFloat(key string, dst *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = f
	return nil
}

func setBool(key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = b
	return nil
}

func setDuration(key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
