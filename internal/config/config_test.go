package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err, "a missing signing secret must fail at startup, not at first use")
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "some-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "taskmanagerappbe", cfg.Auth.JWTIssuer)
	assert.Equal(t, "localhost:5000", cfg.Auth.JWTAudience)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "some-secret")
	t.Setenv("AUTH_JWT_AUDIENCE", "example.com")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "1")
	t.Setenv("APP_PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Auth.JWTAudience)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestAuthConfigValidate(t *testing.T) {
	cfg := AuthConfig{JWTSecret: "s", TokenTTLHours: 12}
	assert.NoError(t, cfg.Validate())

	cfg.TokenTTLHours = 0
	assert.Error(t, cfg.Validate())
}
