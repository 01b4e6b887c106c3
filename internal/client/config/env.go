package config

import (
	"fmt"
	"strconv"
	"time"
)

const envPrefix = "DRIVEQUIZ_"

// parseEnv overlays cfg with DRIVEQUIZ_* variables. lookup is os.LookupEnv
// outside tests.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := get(key)
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

	str("API_BASE_URL", &cfg.APIBaseURL)
	str("DATA_DIR", &cfg.DataDir)
	str("DB_PATH", &cfg.DBPath)
	str("CREDENTIAL_BACKEND", &cfg.CredentialBackend)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("CATALOG_PATH", &cfg.CatalogPath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_BACKEND", &cfg.LogBackend)
	str("LOG_FILE", &cfg.LogFile)

	if err := dur("REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := dur("UPLOAD_TIMEOUT", &cfg.UploadTimeout); err != nil {
		return err
	}
	if err := dur("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval); err != nil {
		return err
	}
	if v, ok := get("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		cfg.RedisDB = n
	}
	if v, ok := get("MAX_VIDEO_SIZE"); ok {
		n, err := ParseByteSize(v)
		if err != nil {
			return fmt.Errorf("%sMAX_VIDEO_SIZE: %w", envPrefix, err)
		}
		cfg.MaxVideoSize = int64(n)
	}
	return nil
}
