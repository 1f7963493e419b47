package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigToml = `
[development]
host = "localhost"
port = 8080
allowed_origins = ["http://localhost:3000"]
api_base_url = "http://localhost:5555/api"
api_timeout_seconds = 10
api_retry_delay_millis = 500
exercise_search_cache_ttl_seconds = 60
log_level = "debug"
log_to_stdout = true
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"

[production]
environment = "prod"
host = "127.0.0.1"
port = 9000
api_base_url = "https://workouts.example.com/api"
use_user_data_endpoint = true
log_level = "info"
logs_path = "/var/log/workouts/service"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t, testConfigToml)

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:5555/api", cfg.ApiBaseURL)
	assert.Equal(t, 10*time.Second, cfg.ApiTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.ApiRetryDelay())
	assert.False(t, cfg.UseUserDataEndpoint)
	assert.True(t, cfg.LogToStdout)

	cfg, err = Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Environment)
	assert.True(t, cfg.UseUserDataEndpoint)
	assert.Equal(t, "/var/log/workouts/service", cfg.LogsPath)
}

func TestLoad_Errors(t *testing.T) {
	path := writeTestConfig(t, testConfigToml)

	_, err := Load("staging", path)
	assert.Error(t, err)

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	noApi := writeTestConfig(t, "[development]\nport = 8080\n")
	_, err = Load("dev", noApi)
	assert.ErrorContains(t, err, "api_base_url")

	onlyDev := writeTestConfig(t, "[development]\nport = 8080\napi_base_url = \"http://x\"\n")
	_, err = Load("prod", onlyDev)
	assert.ErrorContains(t, err, "missing")
}

func TestLoad_HostMustBeLoopback(t *testing.T) {
	for host, valid := range map[string]bool{
		"localhost":   true,
		"127.0.0.1":   true,
		"::1":         true,
		"0.0.0.0":     false,
		"192.168.1.4": false,
		"":            false,
	} {
		path := writeTestConfig(t, fmt.Sprintf("[development]\nhost = %q\nport = 8080\napi_base_url = \"http://x\"\n", host))
		_, err := Load("dev", path)
		if valid {
			assert.NoError(t, err, host)
		} else {
			assert.ErrorContains(t, err, "loopback", host)
		}
	}
}

func TestLoad_RepoConfig(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg, err := Load(env, filepath.Join("..", "..", "config.toml"))
		require.NoError(t, err, env)
		assert.True(t, isLoopbackHost(cfg.Host), env)
	}
}
