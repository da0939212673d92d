package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = config.DriverMemory
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.BcryptCost = 4
	return c
}

func TestNewApp_Memory(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)

	assert.NotNil(t, app.accounts)
	assert.Contains(t, logs.String(), "in-memory storage")
	assert.Contains(t, logs.String(), "built-in development secret")
}

func TestNewApp_CustomSecretIsNotWarned(t *testing.T) {
	c := memoryConfig()
	c.SecretKey = "0f1e2d3c4b5a69788796a5b4c3d2e1f0"

	var logs bytes.Buffer
	_, err := NewApp(context.Background(), c, &logs)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "development secret")
}

func TestNewApp_BadHasher(t *testing.T) {
	c := memoryConfig()
	c.PasswordHasher = "md5"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.ErrorContains(t, err, "password hasher")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
