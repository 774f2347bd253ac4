package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. GLASSES_SERVICE_URL.
const EnvPrefix = "GLASSES"

// LegacyPortEnv names the backend port variable understood by older launch
// scripts. It only changes the default service URL.
const LegacyPortEnv = "TRYON_BACKEND_PORT"

// Config holds runtime configuration for the studio.
// Fields may be loaded from a JSON or YAML file, the environment and
// command-line flags.
type Config struct {
	Debug    bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// Extraction service
	ServiceURL            string `json:"service_url" yaml:"service_url" mapstructure:"service_url"`
	HealthIntervalMs      int    `json:"health_interval_ms" yaml:"health_interval_ms" mapstructure:"health_interval_ms"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`

	// Result download
	DownloadDir  string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`
	DownloadName string `json:"download_name" yaml:"download_name" mapstructure:"download_name"`

	// Layout
	CanvasMaxW  int `json:"canvas_max_w" yaml:"canvas_max_w" mapstructure:"canvas_max_w"`
	CanvasMaxH  int `json:"canvas_max_h" yaml:"canvas_max_h" mapstructure:"canvas_max_h"`
	PreviewMaxW int `json:"preview_max_w" yaml:"preview_max_w" mapstructure:"preview_max_w"`
	PreviewMaxH int `json:"preview_max_h" yaml:"preview_max_h" mapstructure:"preview_max_h"`
	WindowW     int `json:"window_w" yaml:"window_w" mapstructure:"window_w"`
	WindowH     int `json:"window_h" yaml:"window_h" mapstructure:"window_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		LogLevel:              "info",
		ServiceURL:            "http://127.0.0.1:8000",
		HealthIntervalMs:      800,
		RequestTimeoutSeconds: 120,
		DownloadDir:           ".",
		DownloadName:          "glasses.png",
		CanvasMaxW:            900,
		CanvasMaxH:            640,
		PreviewMaxW:           420,
		PreviewMaxH:           420,
		WindowW:               1400,
		WindowH:               820,
	}
}

// Validate clamps/normalizes values to safe ranges. An unusable service URL
// is reset to the default and reported.
func (c *Config) Validate() error {
	d := DefaultConfig()
	var err error
	if u, perr := url.Parse(c.ServiceURL); perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = fmt.Errorf("invalid service_url %q", c.ServiceURL)
		c.ServiceURL = d.ServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")
	if c.HealthIntervalMs < 100 {
		c.HealthIntervalMs = d.HealthIntervalMs
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = d.RequestTimeoutSeconds
	}
	if c.DownloadDir == "" {
		c.DownloadDir = d.DownloadDir
	}
	if c.DownloadName == "" || filepath.Base(c.DownloadName) != c.DownloadName {
		c.DownloadName = d.DownloadName
	}
	if c.CanvasMaxW < 50 {
		c.CanvasMaxW = d.CanvasMaxW
	}
	if c.CanvasMaxH < 50 {
		c.CanvasMaxH = d.CanvasMaxH
	}
	if c.PreviewMaxW < 50 {
		c.PreviewMaxW = d.PreviewMaxW
	}
	if c.PreviewMaxH < 50 {
		c.PreviewMaxH = d.PreviewMaxH
	}
	if c.WindowW < 200 {
		c.WindowW = d.WindowW
	}
	if c.WindowH < 200 {
		c.WindowH = d.WindowH
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		c.LogLevel = d.LogLevel
	}
	return err
}

// HealthInterval is the availability polling period.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalMs) * time.Millisecond
}

// RequestTimeout bounds a single extraction request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Level returns the slog level; Debug forces debug logging.
func (c *Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return l, true
}

// NewViper returns a viper instance carrying the defaults and environment
// bindings. Callers may bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("service_url", d.ServiceURL)
	if port := strings.TrimSpace(os.Getenv(LegacyPortEnv)); port != "" {
		v.SetDefault("service_url", "http://127.0.0.1:"+port)
	}
	v.SetDefault("health_interval_ms", d.HealthIntervalMs)
	v.SetDefault("request_timeout_seconds", d.RequestTimeoutSeconds)
	v.SetDefault("download_dir", d.DownloadDir)
	v.SetDefault("download_name", d.DownloadName)
	v.SetDefault("canvas_max_w", d.CanvasMaxW)
	v.SetDefault("canvas_max_h", d.CanvasMaxH)
	v.SetDefault("preview_max_w", d.PreviewMaxW)
	v.SetDefault("preview_max_h", d.PreviewMaxH)
	v.SetDefault("window_w", d.WindowW)
	v.SetDefault("window_h", d.WindowH)

	// GLASSES_SERVICE_URL, GLASSES_DEBUG, ...
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads configuration through v from the optional file at path. A
// missing file yields the defaults merged with environment and flags. The
// returned config is validated; a validation error is returned alongside the
// usable config.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fallback(err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fallback(fmt.Errorf("unmarshal config: %w", err))
	}
	return cfg, cfg.Validate()
}

func fallback(err error) (*Config, error) {
	return DefaultConfig(), err
}

// Save writes the configuration to the given path. Files ending in .yaml or
// .yml are written as YAML, everything else as JSON.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
