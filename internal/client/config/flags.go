package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the CLI.
const (
	FlagConfig   = "config"
	FlagAPI      = "api"
	FlagDB       = "db"
	FlagTimeout  = "timeout"
	FlagLogLevel = "log-level"
	FlagBackend  = "credential-backend"
)

// RegisterFlags defines the configuration flags on fs. Their defaults are
// zero values: only flags the user sets override earlier sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagAPI, "a", "", "API base URL, e.g. http://127.0.0.1:8000/api")
	fs.String(FlagDB, "", "path to the local SQLite database")
	fs.Duration(FlagTimeout, 0, "per-request timeout")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(FlagBackend, "", "credential backend: sqlite, redis or memory")
}

// parseFlags overlays cfg with the flags in fs that were set.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagAPI) {
		if cfg.APIBaseURL, err = fs.GetString(FlagAPI); err != nil {
			return err
		}
	}
	if fs.Changed(FlagDB) {
		if cfg.DBPath, err = fs.GetString(FlagDB); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	if fs.Changed(FlagBackend) {
		if cfg.CredentialBackend, err = fs.GetString(FlagBackend); err != nil {
			return err
		}
	}
	return nil
}
