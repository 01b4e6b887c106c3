package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/drivequiz/internal/timex"
)

// FileConfig is a DTO used only for decoding the config file. Unset keys
// leave the current value alone.
type FileConfig struct {
	APIBaseURL          string          `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	UploadTimeout       *timex.Duration `json:"upload_timeout" yaml:"upload_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	DataDir             string          `json:"data_dir" yaml:"data_dir"`
	DBPath              string          `json:"db_path" yaml:"db_path"`
	CredentialBackend   string          `json:"credential_backend" yaml:"credential_backend"`
	RedisAddr           string          `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword       string          `json:"redis_password" yaml:"redis_password"`
	RedisDB             *int            `json:"redis_db" yaml:"redis_db"`
	MaxVideoSize        *ByteSize       `json:"max_video_size" yaml:"max_video_size"`
	CatalogPath         string          `json:"catalog_path" yaml:"catalog_path"`
	LogLevel            string          `json:"log_level" yaml:"log_level"`
	LogBackend          string          `json:"log_backend" yaml:"log_backend"`
	LogFile             string          `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UploadTimeout != nil {
		cfg.UploadTimeout = fc.UploadTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.CredentialBackend, fc.CredentialBackend)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.MaxVideoSize != nil {
		cfg.MaxVideoSize = int64(*fc.MaxVideoSize)
	}
	setString(&cfg.CatalogPath, fc.CatalogPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.LogFile, fc.LogFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
