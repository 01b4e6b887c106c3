package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings for the drivequiz CLI.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	UploadTimeout       time.Duration
	OnlineCheckInterval time.Duration

	DataDir string
	// DBPath defaults to drivequiz.db inside DataDir.
	DBPath string

	CredentialBackend string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	MaxVideoSize int64
	// CatalogPath replaces the built-in quiz catalog when set.
	CatalogPath string

	LogLevel   string
	LogBackend string
	// LogFile defaults to drivequiz.log inside DataDir; "-" means stderr.
	LogFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 5 * time.Minute
	c.OnlineCheckInterval = 5 * time.Second
	c.DataDir = defaultDataDir()
	c.DBPath = ""
	c.CredentialBackend = BackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.MaxVideoSize = 100 << 20
	c.CatalogPath = ""
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.LogFile = ""
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".drivequiz"
	}
	return filepath.Join(home, ".drivequiz")
}

// LoadConfig applies defaults, then the config file at path (DRIVEQUIZ_CONFIG
// when path is empty), the environment and finally the flags in fs that
// were set. fs may be nil.
func LoadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := parseFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)
	cfg.CatalogPath = expandHome(cfg.CatalogPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_base_url: %q is not an http(s) URL", c.APIBaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.UploadTimeout <= 0 {
		errs = append(errs, errors.New("upload_timeout must be positive"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online_check_interval must be positive"))
	}
	switch c.CredentialBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("credential_backend: unknown backend %q", c.CredentialBackend))
	}
	if c.MaxVideoSize <= 0 {
		errs = append(errs, errors.New("max_video_size must be positive"))
	}
	switch c.LogBackend {
	case "slog", "zerolog":
	default:
		errs = append(errs, fmt.Errorf("log_backend: unknown backend %q", c.LogBackend))
	}

	return errors.Join(errs...)
}

// DBFile is the SQLite database location.
func (c *Config) DBFile() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "drivequiz.db")
}

// LogPath is the log destination; empty means stderr.
func (c *Config) LogPath() string {
	switch c.LogFile {
	case "-":
		return ""
	case "":
		return filepath.Join(c.DataDir, "drivequiz.log")
	}
	return c.LogFile
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
