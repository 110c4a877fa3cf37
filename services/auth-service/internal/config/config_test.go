package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("STATE_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "social_login", cfg.MongoDatabase)
	assert.Equal(t, "social-login-api", cfg.StateIssuer)
	assert.Equal(t, 10*time.Minute, cfg.StateTTL)
}

func TestLoad_ParsesProviderBlocks(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("STATE_SECRET", "secret")
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
	t.Setenv("GITHUB_CALLBACK_URL", "https://example.com/auth/github/callback")
	t.Setenv("GOOGLE_CLIENT_ID", "g-id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gh-id", cfg.Github.ClientID)
	assert.Equal(t, "gh-secret", cfg.Github.ClientSecret)
	assert.Equal(t, "g-id", cfg.Google.ClientID)
	assert.Empty(t, cfg.Google.ClientSecret, "partial provider config is allowed at load time")
}

func TestLoad_MissingRequiredSettings(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("STATE_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "required")
}

func TestSMTPConfig_Complete(t *testing.T) {
	complete := SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "noreply@example.com",
	}
	assert.True(t, complete.Complete())

	partial := complete
	partial.Password = ""
	assert.False(t, partial.Complete())

	assert.False(t, SMTPConfig{}.Complete())
}
