// Package config loads menu-lens settings from a YAML file and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/translate"
)

// Environment variables that override the file.
const (
	EnvServerURL = "MENULENS_SERVER_URL"
	EnvLogLevel  = "MENULENS_LOG_LEVEL"
)

const (
	DefaultServerURL   = "http://localhost:8000"
	DefaultRenderWidth = 800
	DefaultBackendAddr = ":8000"
	DefaultLogLevel    = "info"
	DefaultLanguage    = "chi_sim"
)

// Config holds client and backend settings.
type Config struct {
	ServerURL   string        `yaml:"server_url"`
	Timeout     time.Duration `yaml:"timeout"`
	StorageDir  string        `yaml:"storage_dir"`
	JPEGQuality int           `yaml:"jpeg_quality"`
	RenderWidth int           `yaml:"render_width"`
	LogLevel    string        `yaml:"log_level"`
	Backend     Backend       `yaml:"backend"`
}

// Backend configures the development recognition service.
type Backend struct {
	Addr     string `yaml:"addr"`
	Language string `yaml:"language"`
	Glossary string `yaml:"glossary"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		Timeout:     translate.DefaultTimeout,
		StorageDir:  defaultStorageDir(),
		JPEGQuality: imaging.DefaultQuality,
		RenderWidth: DefaultRenderWidth,
		LogLevel:    DefaultLogLevel,
		Backend: Backend{
			Addr:     DefaultBackendAddr,
			Language: DefaultLanguage,
		},
	}
}

func defaultStorageDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "menu-lens")
	}
	return filepath.Join(os.TempDir(), "menu-lens")
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	d := Default()
	if c.ServerURL == "" {
		c.ServerURL = d.ServerURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.StorageDir == "" {
		c.StorageDir = d.StorageDir
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.RenderWidth <= 0 {
		c.RenderWidth = d.RenderWidth
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Backend.Addr == "" {
		c.Backend.Addr = d.Backend.Addr
	}
	if c.Backend.Language == "" {
		c.Backend.Language = d.Backend.Language
	}
}
