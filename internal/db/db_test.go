package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripify-backend/internal/config"
	"tripify-backend/internal/model"
)

func sqliteConfig(initialize bool) *config.APIConfig {
	return &config.APIConfig{
		Context: config.ContextConfig{TimeZone: "UTC"},
		DB: config.DBConfig{
			Initialize: initialize,
			Driver:     "sqlite",
			Names:      config.DBNames{TRIPIFY: ":memory:"},
			Pool:       config.DBPoolConfig{MaxOpenConns: 1},
		},
	}
}

func TestInitDBFromConfigMigrates(t *testing.T) {
	require.NoError(t, InitDBFromConfig(sqliteConfig(true)))
	t.Cleanup(func() { _ = Close() })

	conn := GetDB()
	require.NotNil(t, conn)
	assert.True(t, conn.Migrator().HasTable(&model.User{}))
	assert.True(t, conn.Migrator().HasTable(&model.MoodRecord{}))

	require.NoError(t, Close())
	assert.Nil(t, GetDB())
	assert.NoError(t, Close(), "closing twice is a no-op")
}

func TestOpenWithoutMigration(t *testing.T) {
	conn, err := Open(sqliteConfig(false))
	require.NoError(t, err)
	assert.False(t, conn.Migrator().HasTable(&model.MoodRecord{}))

	require.NoError(t, Migrate(conn))
	assert.True(t, conn.Migrator().HasTable(&model.MoodRecord{}))
}
