package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:8081", "-g", "127.0.0.1:9090", "-d", "db", "-m", "mongodb://m", "-n", "accounts",
			"-s", "secret", "-t", "60", "-l", "debug", "-driver", "mongo", "-hasher", "argon2id", "-cost", "11",
		},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:8081",
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				MongoURI:                    "mongodb://m",
				MongoDatabase:               "accounts",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: time.Hour,
				LogLevel:                    "debug",
				StorageDriver:               "mongo",
				PasswordHasher:              "argon2id",
				BcryptCost:                  11,
			}},
		{name: "unknown flags are ignored", args: []string{"-c", "cfg.json", "-x", "y", "-s=secret"},
			expected: &Config{SecretKey: "secret"}},
		{name: "bad int", args: []string{"-cost", "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsSubMinuteValidity(t *testing.T) {
	config := &Config{AccessTokenValidityDuration: 90 * time.Second}
	assert.NoError(t, parseFlags(config, []string{"-a", ":1"}))
	assert.Equal(t, 90*time.Second, config.AccessTokenValidityDuration)
}
