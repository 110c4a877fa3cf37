package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/social-login-api/shared/validation"
)

// Config holds the auth service configuration. Provider and SMTP settings are
// optional; a provider with incomplete settings is skipped at startup and an
// incomplete SMTP block disables the welcome mailer.
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR"      envDefault:":8080"`
	MongoURI      string        `env:"MONGO_URI"                                  validate:"required"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"social_login"`
	StateSecret   string        `env:"STATE_SECRET"                               validate:"required"`
	StateIssuer   string        `env:"STATE_ISSUER"   envDefault:"social-login-api"`
	StateTTL      time.Duration `env:"STATE_TTL"      envDefault:"10m"`

	Github   ProviderConfig `envPrefix:"GITHUB_"`
	Google   ProviderConfig `envPrefix:"GOOGLE_"`
	Facebook ProviderConfig `envPrefix:"FACEBOOK_"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
}

// ProviderConfig carries one provider's OAuth application credentials.
type ProviderConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"`
}

// SMTPConfig carries the optional SMTP settings for the welcome mailer.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Complete reports whether every SMTP setting is present.
func (c SMTPConfig) Complete() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" && c.Password != "" && c.From != ""
}

// Load parses the configuration from environment variables and validates the
// required fields.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	v, err := validation.New()
	if err != nil {
		return nil, err
	}

	if messages := v.Struct(cfg); messages != nil {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}

	return &cfg, nil
}
