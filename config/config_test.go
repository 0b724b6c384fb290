package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, time.UTC, cfg.App.Timezone)
	assert.Equal(t, 30*time.Second, cfg.App.SlotCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Admin.Email)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{
		"JWT_SECRET":           "s",
		"JWT_ACCESS_EXPIRY":    "5m",
		"SLOT_CACHE_TTL":       "1m",
		"APP_TIMEZONE":         "Asia/Jakarta",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"DB_MAX_OPEN_CONNS":    "25",
		"ADMIN_EMAIL":          "admin@medimeet.test",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, time.Minute, cfg.App.SlotCacheTTL)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, "admin@medimeet.test", cfg.Admin.Email)
}

func TestFromViper_Errors(t *testing.T) {
	_, err := fromViper(newViper(nil))
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	_, err = fromViper(newViper(map[string]interface{}{"JWT_SECRET": "s", "APP_TIMEZONE": "Mars/Olympus"}))
	assert.Error(t, err)
}
