package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_ADDR", "STORE_PATH", "ACCESS_TOKEN_TTL_MIN", "MIN_SEAT_AREA", "RABBITMQ_URL", "AMQP_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "127.0.0.1:7420", cfg.Addr)
	assert.Equal(t, 720, cfg.AccessTTLMin)
	assert.Equal(t, 512.0, cfg.MinSeatArea)
	assert.Equal(t, "", cfg.AMQPURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_PATH", "/tmp/gala.seatplan")
	t.Setenv("MIN_SEAT_AREA", "100.5")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "not-a-number")
	t.Setenv("AMQP_URL", "amqp://a")
	t.Setenv("RABBITMQ_URL", "amqp://b")
	t.Setenv("SHUTDOWN_WAIT", "2s")
	cfg := Load()

	assert.Equal(t, "/tmp/gala.seatplan", cfg.StorePath)
	assert.Equal(t, 100.5, cfg.MinSeatArea)
	assert.Equal(t, 720, cfg.AccessTTLMin)
	assert.Equal(t, "amqp://b", cfg.AMQPURL)
	assert.Equal(t, 2*time.Second, cfg.ShutdownWait)
}

func TestOpenSettings_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seatplan.yaml")

	sf, err := OpenSettings(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), sf.Get())

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults are written to disk")
}

func TestOpenSettings_FillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nlanguage: de\n"), 0o644))

	sf, err := OpenSettings(path)
	require.NoError(t, err)
	s := sf.Get()
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, 6, s.DefaultSeatCapacity)
}

func TestOpenSettings_RefusesNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 9\nlanguage: en\n"), 0o644))

	_, err := OpenSettings(path)
	assert.ErrorIs(t, err, ErrNewerSettings)
}

func TestOpenSettings_InvalidSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: [en"), 0o644))

	_, err := OpenSettings(path)
	assert.Error(t, err)
}

func TestSettingsUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seatplan.yaml")
	sf, err := OpenSettings(path)
	require.NoError(t, err)

	s := sf.Get()
	s.Theme = "light"
	s.DefaultSeatCapacity = 10
	require.NoError(t, sf.Update(s))

	reopened, err := OpenSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "light", reopened.Get().Theme)
	assert.Equal(t, 10, reopened.Get().DefaultSeatCapacity)

	s.Language = "fr"
	assert.Error(t, sf.Update(s))
	assert.Equal(t, "en", sf.Get().Language, "rejected update leaves settings unchanged")
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")
	rc := LoadRedisConfig()
	assert.Equal(t, RedisConfig{Addr: "cache:6379", DB: 2, TLS: true}, rc)

	t.Setenv("REDIS_HOST", "10.0.0.5")
	t.Setenv("REDIS_PORT", "6380")
	assert.Equal(t, "10.0.0.5:6380", LoadRedisConfig().Addr)
}

func TestNewRedisClient_NoAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient(context.Background(), RedisConfig{}))
}
