package provider

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

type recordedStrategy struct {
	name   string
	config Config
	oauth  CompletionFunc
}

func (s *recordedStrategy) Name() string { return s.name }

func (s *recordedStrategy) AuthURL(string) string { return "" }

func (s *recordedStrategy) Callback(context.Context, string) (*model.User, error) {
	return nil, nil
}

func TestSetup_RegistersStrategyWhenConfigComplete(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	registry := NewRegistry()
	oauth := func(context.Context, Credentials, *Profile) (*model.User, error) { return nil, nil }

	var builds int
	cfg := Config{ClientID: "id", ClientSecret: "secret", CallbackURL: "https://example.com/cb"}

	Setup(&log, SetupParams{
		Provider: "github",
		Build: func(c Config, fn CompletionFunc) Strategy {
			builds++
			return &recordedStrategy{name: "github", config: c, oauth: fn}
		},
		Config:   cfg,
		OAuth:    oauth,
		Registry: registry,
	})

	assert.Equal(t, 1, builds)

	s, err := registry.Get("github")
	require.NoError(t, err)

	recorded := s.(*recordedStrategy)
	assert.Equal(t, cfg, recorded.config)
	assert.NotNil(t, recorded.oauth)
	assert.Contains(t, buf.String(), "initializing provider")
}

func TestSetup_SkipsProviderWithMissingSettings(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	registry := NewRegistry()

	Setup(&log, SetupParams{
		Provider: "github",
		Build: func(Config, CompletionFunc) Strategy {
			t.Fatal("build must not be called for a misconfigured provider")
			return nil
		},
		Config:   Config{ClientID: "id"},
		Registry: registry,
	})

	_, err := registry.Get("github")
	assert.Error(t, err)

	logs := buf.String()
	assert.Equal(t, 2, strings.Count(logs, "missing provider setting"), "one line per missing setting")
	assert.Contains(t, logs, "client secret")
	assert.Contains(t, logs, "callback url")
	assert.Contains(t, logs, "provider will not initialize")
}

func TestSetup_LogsEveryMissingSetting(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	Setup(&log, SetupParams{
		Provider: "facebook",
		Build:    func(Config, CompletionFunc) Strategy { return nil },
		Config:   Config{},
		Registry: NewRegistry(),
	})

	logs := buf.String()
	assert.Equal(t, 3, strings.Count(logs, "missing provider setting"))
	assert.Contains(t, logs, "client id")
}
