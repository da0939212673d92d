package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:8000",
		"endpoint_addr_grpc":             "www.example:9000",
		"storage_driver":                 "mongo",
		"database_dsn":                   "postgres://db",
		"mongo_uri":                      "mongodb://db:27017",
		"mongo_database":                 "accounts",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "90s",
		"password_hasher":                "argon2id",
		"bcrypt_cost":                    12,
		"read_timeout":                   "3s",
		"write_timeout":                  4000000000,
		"shutdown_timeout":               "1m",
		"health_check_interval":          "30s",
		"log_level":                      "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, DriverMongo, cfg.StorageDriver)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
		assert.Equal(t, "accounts", cfg.MongoDatabase)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Second, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "argon2id", cfg.PasswordHasher)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 4*time.Second, cfg.WriteTimeout)
		assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
		assert.Equal(t, 30*time.Second, cfg.HealthCheckInterval)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("short flag", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-c", pathFlag}))
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "only-this"})

		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		want := defaults()
		want.SecretKey = "only-this"
		assert.Equal(t, want, cfg)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})

	t.Run("bad duration → error", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"read_timeout": "soon"})
		assert.ErrorContains(t, parseJson(&Config{}, []string{"-c", bad}), "invalid duration")
	})

	t.Run("missing file → error", func(t *testing.T) {
		assert.ErrorContains(t, parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}), "read config file")
	})
}
