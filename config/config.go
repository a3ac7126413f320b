// Package config loads the stocksync configuration.
//
// Values come from, in increasing priority: defaults, an optional YAML file,
// a .env file in the current folder, and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/etnz/watchlist"
)

// Environment variables overriding the configuration.
const (
	EnvStocksFile   = "STOCKSYNC_FILE"
	EnvRepoRoot     = "STOCKSYNC_REPO"
	EnvPush         = "STOCKSYNC_PUSH"
	EnvTrackHighest = "STOCKSYNC_TRACK_HIGHEST"
	EnvRecover      = "STOCKSYNC_RECOVER"
	EnvQuotesURL    = "STOCKSYNC_QUOTES_URL"
	EnvMetricsFile  = "STOCKSYNC_METRICS_FILE"
	EnvVerbose      = "STOCKSYNC_VERBOSE"
	EnvDebug        = "DEBUG"
)

// Config holds the stocksync configuration.
type Config struct {
	StocksFile         string        `yaml:"stocksFile"`
	RepoRoot           string        `yaml:"repoRoot"`
	TrackHighest       bool          `yaml:"trackHighest"`
	Push               bool          `yaml:"push"`
	RecoverUncommitted bool          `yaml:"recoverUncommitted"`
	Git                GitConfig     `yaml:"git"`
	Quotes             QuotesConfig  `yaml:"quotes"`
	Log                LogConfig     `yaml:"log"`
	Metrics            MetricsConfig `yaml:"metrics"`

	// Debug prints stack traces of fatal errors. Only set by the environment.
	Debug bool `yaml:"-"`
}

type GitConfig struct {
	AuthorName  string `yaml:"authorName"`
	AuthorEmail string `yaml:"authorEmail"`
}

// Env returns the git environment for the configured author.
func (g GitConfig) Env() []string {
	var env []string
	if g.AuthorName != "" {
		env = append(env, "GIT_AUTHOR_NAME="+g.AuthorName, "GIT_COMMITTER_NAME="+g.AuthorName)
	}
	if g.AuthorEmail != "" {
		env = append(env, "GIT_AUTHOR_EMAIL="+g.AuthorEmail, "GIT_COMMITTER_EMAIL="+g.AuthorEmail)
	}
	return env
}

type QuotesConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile, disabled if empty
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		StocksFile:   watchlist.DefaultPath,
		RepoRoot:     ".",
		TrackHighest: true,
		Push:         true,
		Quotes: QuotesConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvStocksFile); v != "" {
		cfg.StocksFile = v
	}
	if v := os.Getenv(EnvRepoRoot); v != "" {
		cfg.RepoRoot = v
	}
	if v := os.Getenv(EnvQuotesURL); v != "" {
		cfg.Quotes.BaseURL = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		cfg.Metrics.Textfile = v
	}
	for name, dst := range map[string]*bool{
		EnvPush:         &cfg.Push,
		EnvTrackHighest: &cfg.TrackHighest,
		EnvRecover:      &cfg.RecoverUncommitted,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", name, err)
		}
		*dst = b
	}
	if truthy(os.Getenv(EnvVerbose)) {
		cfg.Log.Level = "debug"
	}
	if truthy(os.Getenv(EnvDebug)) {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}
	return nil
}

// truthy is lenient: any non empty value but "0" and "false" is true.
func truthy(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	return v != "" && v != "0" && v != "false"
}

// Validate ensures the configuration is usable.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.StocksFile) == "" {
		return errors.New("stocksFile is required")
	}
	if cfg.Quotes.Timeout < 0 {
		return errors.New("quotes.timeout must be >= 0")
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", cfg.Log.Format)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}
