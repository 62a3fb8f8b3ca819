package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RateLimitRPS)
	assert.Equal(t, "file", cfg.Tokens.Driver)
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr())
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.Mock.Port)
	assert.True(t, cfg.Mock.Seed)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_URL", "https://api.invorya.co/api/")
	v.Set("API_TIMEOUT_SECONDS", "45")
	v.Set("API_RATE_LIMIT_RPS", "2.5")
	v.Set("TOKEN_STORE", "redis")
	v.Set("HTTP_PORT", 9090)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.invorya.co/api", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 45*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.5, cfg.API.RateLimitRPS)
	assert.Equal(t, "redis", cfg.Tokens.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_InvalidTimeout(t *testing.T) {
	v := viper.New()
	v.Set("API_TIMEOUT_SECONDS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_MockSeedInvalidoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("MOCKAPI_SEED", "tal vez")
	v.Set("MOCKAPI_PORT", "9999")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.Mock.Seed)
	assert.Equal(t, 9999, cfg.Mock.Port)
}
