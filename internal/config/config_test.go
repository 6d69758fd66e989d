package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<API REQUEST_DUMP="true">
	<CONTEXT>
		<PORT>9000</PORT>
		<HOST>127.0.0.1</HOST>
	</CONTEXT>
	<AUTHENTICATION>
		<ACCESS_SECRET>access</ACCESS_SECRET>
		<REFRESH_SECRET>refresh</REFRESH_SECRET>
	</AUTHENTICATION>
	<DB>
		<DRIVER>postgres</DRIVER>
		<HOST>db</HOST>
		<PORT>5432</PORT>
		<NAMES TRIPIFY="tripify"/>
		<USERNAME>tripify</USERNAME>
		<PASSWORD TYPE="plain">secret</PASSWORD>
	</DB>
</API>`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	assert.True(t, cfg.RequestDump)
	assert.Equal(t, 9000, cfg.Context.Port)
	assert.Equal(t, "/api", cfg.Context.Path)
	assert.Equal(t, 100, cfg.Pagination.PageSize)
	assert.Equal(t, 15*time.Minute, cfg.Authentication.AccessTokenExpiry())
	assert.Equal(t, 7*24*time.Hour, cfg.Authentication.RefreshTokenExpiry())
	assert.Equal(t, 24*time.Hour, cfg.Cache.CacheTTL())
	assert.Empty(t, cfg.Cache.Addr)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t,
		"host=db user=tripify password=secret dbname=tripify port=5432 sslmode=disable TimeZone=UTC",
		cfg.DB.DSN(cfg.Context.TimeZone))
}

func TestParseEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvAccessSecret, "env-access")
	t.Setenv(EnvRedisAddr, "localhost:6379")
	t.Setenv(EnvPort, "8123")

	cfg, err := Parse([]byte(sampleXML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DB.Password.Value)
	assert.Equal(t, "env-access", cfg.Authentication.AccessSecret)
	assert.Equal(t, "refresh", cfg.Authentication.RefreshSecret)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
	assert.Equal(t, 8123, cfg.Context.Port)

	t.Setenv(EnvPort, "eighty")
	_, err = Parse([]byte(sampleXML))
	assert.ErrorContains(t, err, EnvPort)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	_, err := Parse([]byte(`<API><DB><DRIVER>mysql</DRIVER></DB></API>`))
	assert.ErrorContains(t, err, "unsupported DB driver")

	_, err = Parse([]byte(`<API><DB><DRIVER>sqlite</DRIVER></DB></API>`))
	assert.ErrorContains(t, err, "secrets must be set")

	_, err = Parse([]byte(`<API>`))
	assert.ErrorContains(t, err, "parse config")
}

func TestSQLiteDSN(t *testing.T) {
	d := DBConfig{Driver: "sqlite", Names: DBNames{TRIPIFY: "file:tripify.db"}}
	assert.Equal(t, "file:tripify.db", d.DSN("UTC"))
}
