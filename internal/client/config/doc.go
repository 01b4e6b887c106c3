// Package config loads runtime configuration for the drivequiz CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c/--config or DRIVEQUIZ_CONFIG.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables DRIVEQUIZ_*.
//  4. Command-line flags, only those actually set.
//
// # File schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work.
// Sizes accept bytes or humanized strings:
//
//	api_base_url: http://127.0.0.1:8000/api
//	request_timeout: 30s
//	upload_timeout: 5m
//	online_check_interval: 5s
//	data_dir: ~/.drivequiz
//	credential_backend: sqlite   # sqlite | redis | memory
//	redis_addr: 127.0.0.1:6379
//	max_video_size: 100MiB
//	log_level: info
//	log_backend: slog            # slog | zerolog
//
// # Environment
//
// Every file key has an upper-case DRIVEQUIZ_ counterpart, for example
// DRIVEQUIZ_API_BASE_URL or DRIVEQUIZ_REQUEST_TIMEOUT.
package config
