package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinfolio/internal/config"
	"coinfolio/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestManager_SQLite(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "ledger.db")

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	defer mgr.Close()

	require.NoError(t, mgr.Migrate())

	for _, table := range []string{"portfolios", "wallets", "assets", "movements", "holdings", "audit_logs"} {
		assert.True(t, mgr.DB().Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestNewManager_UnknownDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.DBDriver = "oracle"

	_, err := NewManager(cfg)
	assert.Error(t, err)
}
