package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVICE_PORT", "METRICS_PORT", "UPLOAD_DIR", "MAX_UPLOAD_SIZE", "BROKER_TOPIC", "ORPHAN_SWEEP_INTERVAL", "SEED_SAMPLE_DATA", "RUN_MIGRATIONS"} {
		t.Setenv(key, "")
	}

	conf := CreateNewConfig()

	assert.Equal(t, "8080", conf.ServicePort)
	assert.Equal(t, "8081", conf.MetricsPort)
	assert.Equal(t, "uploads", conf.FileStoreConfig.UploadDir)
	assert.Equal(t, int64(10<<20), conf.FileStoreConfig.MaxUploadSize)
	assert.Equal(t, time.Hour, conf.FileStoreConfig.OrphanSweepInterval)
	assert.Equal(t, "products", conf.KafkaConfig.BrokerTopic)
	assert.False(t, conf.SeedSampleData)
	assert.True(t, conf.PostgreSQLConfig.RunMigrations)
}

func TestCreateNewConfig_Overrides(t *testing.T) {
	t.Setenv("SERVICE_PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")
	t.Setenv("ORPHAN_SWEEP_INTERVAL", "0")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("RUN_MIGRATIONS", "false")

	conf := CreateNewConfig()

	assert.Equal(t, "9000", conf.ServicePort)
	assert.Equal(t, "db", conf.PostgreSQLConfig.DBHost)
	assert.Equal(t, "secret", conf.JWTConfig.JWTSecret)
	assert.Equal(t, int64(2048), conf.FileStoreConfig.MaxUploadSize)
	assert.Equal(t, time.Duration(0), conf.FileStoreConfig.OrphanSweepInterval)
	assert.True(t, conf.SeedSampleData)
	assert.False(t, conf.PostgreSQLConfig.RunMigrations)
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("ORPHAN_SWEEP_INTERVAL", "soon")

	assert.Equal(t, 5*time.Minute, getEnvDuration("ORPHAN_SWEEP_INTERVAL", 5*time.Minute))
}
