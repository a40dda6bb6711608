package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	assert.NoError(t, err, "a missing config file is fine, the environment can supply everything")
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://accounts.zoho.in", cfg.Zoho.AccountsURL)
	assert.Equal(t, "http://localhost:8080/callback", cfg.Zoho.RedirectURI)
	assert.Equal(t, "tokens.json", cfg.TokenFile)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ZOHO_CLIENT_ID", "env-client-id")
	t.Setenv("ZOHO_CLIENT_SECRET", "env-client-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_FILE", "/tmp/tokens.json")

	cfg, err := Load(t.TempDir())

	assert.NoError(t, err)
	assert.Equal(t, "env-client-id", cfg.Zoho.ClientID)
	assert.Equal(t, "env-client-secret", cfg.Zoho.ClientSecret)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/tokens.json", cfg.TokenFile)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("CLIENT_ID", "legacy-id")
	t.Setenv("CLIENT_SECRET", "legacy-secret")

	cfg, err := Load(t.TempDir())

	assert.NoError(t, err)
	assert.Equal(t, "legacy-id", cfg.Zoho.ClientID)
	assert.Equal(t, "legacy-secret", cfg.Zoho.ClientSecret)
}
