package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	m, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory}, logging.Nop{})
	require.NoError(t, err)

	assert.IsType(t, &accounts.MemoryRepository{}, m.Accounts())
	assert.NoError(t, m.Accounts().Ping(context.Background()))
	assert.NoError(t, m.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageDriver: "bolt"}, logging.Nop{})
	assert.ErrorContains(t, err, `unknown storage driver "bolt"`)
}
