package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Minute, c.UploadTimeout)
	assert.Equal(t, BackendSQLite, c.CredentialBackend)
	assert.Equal(t, int64(100<<20), c.MaxVideoSize)
	assert.Equal(t, "slog", c.LogBackend)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	t.Setenv("DRIVEQUIZ_CONFIG", "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(cfg.DataDir, "drivequiz.db"), cfg.DBFile())
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := writeFile(t, "drivequiz.yaml", `
api_base_url: https://quiz.example.com/api
request_timeout: 10s
upload_timeout: 120000000000
credential_backend: redis
redis_addr: cache:6379
redis_db: 2
max_video_size: 50MiB
log_backend: zerolog
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://quiz.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.UploadTimeout)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval, "unset keys keep defaults")
	assert.Equal(t, BackendRedis, cfg.CredentialBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, int64(50<<20), cfg.MaxVideoSize)
	assert.Equal(t, "zerolog", cfg.LogBackend)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := writeFile(t, "drivequiz.json", `{
  "api_base_url": "http://10.0.0.5:8000/api",
  "online_check_interval": "1m",
  "max_video_size": 1048576,
  "log_file": "-"
}`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/api", cfg.APIBaseURL)
	assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
	assert.Equal(t, int64(1<<20), cfg.MaxVideoSize)
	assert.Equal(t, "", cfg.LogPath())
}

func TestLoadConfig_FileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.json", `{"request_timeout": true}`), nil)
	require.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yml", "max_video_size: lots\n"), nil)
	require.Error(t, err)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeFile(t, "drivequiz.yaml", `
api_base_url: http://file:8000/api
request_timeout: 10s
log_level: warn
`)
	t.Setenv("DRIVEQUIZ_API_BASE_URL", "http://env:8000/api")
	t.Setenv("DRIVEQUIZ_REQUEST_TIMEOUT", "20s")
	t.Setenv("DRIVEQUIZ_MAX_VIDEO_SIZE", "10MB")

	fs := newFlags(t, "--timeout", "3s", "--db", "/tmp/quiz.db")

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000/api", cfg.APIBaseURL, "env beats file")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout, "flag beats env")
	assert.Equal(t, "warn", cfg.LogLevel, "file beats default")
	assert.Equal(t, int64(10_000_000), cfg.MaxVideoSize)
	assert.Equal(t, "/tmp/quiz.db", cfg.DBFile())
}

func TestLoadConfig_ConfigPathFromEnv(t *testing.T) {
	path := writeFile(t, "env.yml", "api_base_url: http://from-env-file/api\n")
	t.Setenv("DRIVEQUIZ_CONFIG", path)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env-file/api", cfg.APIBaseURL)
}

func TestParseEnv_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DRIVEQUIZ_REQUEST_TIMEOUT", "soon"},
		{"DRIVEQUIZ_REDIS_DB", "one"},
		{"DRIVEQUIZ_MAX_VIDEO_SIZE", "huge"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			env := map[string]string{tt.key: tt.value}
			var c Config
			c.LoadDefaults()
			err := parseEnv(&c, func(k string) (string, bool) { v, ok := env[k]; return v, ok })
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestParseFlags_OnlyChanged(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFlags(&c, newFlags(t, "-a", "http://flag/api")))

	assert.Equal(t, "http://flag/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout, "unset flag leaves value")
	assert.Equal(t, BackendSQLite, c.CredentialBackend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.APIBaseURL = "127.0.0.1:8000" }, "api_base_url"},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://h/api" }, "api_base_url"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout"},
		{"backend", func(c *Config) { c.CredentialBackend = "keychain" }, "credential_backend"},
		{"redis addr", func(c *Config) { c.CredentialBackend = BackendRedis; c.RedisAddr = "" }, "redis_addr"},
		{"video size", func(c *Config) { c.MaxVideoSize = 0 }, "max_video_size"},
		{"log backend", func(c *Config) { c.LogBackend = "logrus" }, "log_backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPaths(t *testing.T) {
	c := Config{DataDir: "/var/lib/dq"}
	assert.Equal(t, "/var/lib/dq/drivequiz.db", c.DBFile())
	assert.Equal(t, "/var/lib/dq/drivequiz.log", c.LogPath())

	c.LogFile = "/tmp/x.log"
	assert.Equal(t, "/tmp/x.log", c.LogPath())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dq"), expandHome("~/.dq"))
	assert.Equal(t, "rel/path", expandHome("rel/path"))
}

func TestByteSize(t *testing.T) {
	n, err := ParseByteSize("100MiB")
	require.NoError(t, err)
	assert.Equal(t, ByteSize(100<<20), n)
	assert.Equal(t, "100 MiB", n.String())

	_, err = ParseByteSize("abc")
	require.Error(t, err)
}
