package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("ORDER_ADMIN_INT", "42")
	t.Setenv("ORDER_ADMIN_BAD_INT", "x")
	t.Setenv("ORDER_ADMIN_BOOL", "true")

	assert.Equal(t, 42, EnvIntDefault("ORDER_ADMIN_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("ORDER_ADMIN_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("ORDER_ADMIN_MISSING", 7))
	assert.True(t, EnvBoolDefault("ORDER_ADMIN_BOOL", false))
	assert.Equal(t, "def", EnvDefault("ORDER_ADMIN_MISSING", "def"))
}

func TestEnvDurationDefault(t *testing.T) {
	t.Setenv("ORDER_ADMIN_DUR", "90s")
	t.Setenv("ORDER_ADMIN_SECS", "5")
	t.Setenv("ORDER_ADMIN_JUNK", "soon")

	assert.Equal(t, 90*time.Second, EnvDurationDefault("ORDER_ADMIN_DUR", time.Minute))
	assert.Equal(t, 5*time.Second, EnvDurationDefault("ORDER_ADMIN_SECS", time.Minute))
	assert.Equal(t, time.Minute, EnvDurationDefault("ORDER_ADMIN_JUNK", time.Minute))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("ADMIN_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SESSION_MAX", "")

	cfg := Load()
	assert.Equal(t, "https://localhost:3010/api", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.AdminAddr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 1000, cfg.SessionMax)
	assert.Zero(t, cfg.APITimeout)
}

func TestLoadDevAPI_Defaults(t *testing.T) {
	t.Setenv("DEVAPI_SQLITE", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := LoadDevAPI()
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}
