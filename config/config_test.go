package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "GEO_DELETE_POLICY", "GEO_CACHE_TTL", "ACCESS_TOKEN_TTL_MINUTES", "AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "restrict", cfg.GeoDeletePolicy)
	assert.Equal(t, 10*time.Minute, cfg.GeoCacheTTL)
	assert.Equal(t, 3*24*time.Hour, cfg.AccessTokenTTL)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("GEO_DELETE_POLICY", "CASCADE")
	t.Setenv("GEO_CACHE_TTL", "30s")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg := Load()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "cascade", cfg.GeoDeletePolicy)
	assert.Equal(t, 30*time.Second, cfg.GeoCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.AutoMigrate)
}

func TestUnknownDeletePolicyFallsBackToRestrict(t *testing.T) {
	t.Setenv("GEO_DELETE_POLICY", "nuke")
	assert.Equal(t, "restrict", Load().GeoDeletePolicy)
}

func TestDBConfigByEnv(t *testing.T) {
	t.Setenv("QC_DB_HOST", "db.qc")
	t.Setenv("QC_DB_USER", "travel")
	t.Setenv("QC_DB_PASSWORD", "pw")
	t.Setenv("QC_DB_NAME", "travelhub")
	t.Setenv("QC_DB_PORT", "5432")
	t.Setenv("QC_DB_SSLMODE", "disable")

	dsn, err := getDBConfigByEnv("qc")
	require.NoError(t, err)
	assert.Contains(t, dsn, "host=db.qc")
	assert.Contains(t, dsn, "dbname=travelhub")
	assert.Contains(t, dsn, "sslmode=disable")

	_, err = getDBConfigByEnv("staging")
	assert.Error(t, err)
}

func TestConnectRedisDisabledWithoutAddr(t *testing.T) {
	rdb, err := ConnectRedis(&Config{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
