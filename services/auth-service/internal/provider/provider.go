package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

// Profile is the normalized profile a strategy extracts from a provider
// response. Raw holds the full payload exactly as the provider returned it.
type Profile struct {
	Provider    string
	ID          string
	DisplayName string
	Email       string
	AvatarURL   string
	Raw         map[string]any
}

// Credentials carries the provider-issued credentials for a completed login.
// AccessToken and RefreshToken come from OAuth2 providers; Token and
// TokenSecret from OAuth1 providers.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Token        string
	TokenSecret  string
}

// CompletionFunc finishes a login once a strategy has verified the external
// account. It returns the local user now linked to the profile's
// (provider, uid) pair; success and error are mutually exclusive.
type CompletionFunc func(ctx context.Context, creds Credentials, profile *Profile) (*model.User, error)

// Strategy implements one identity provider's login protocol. Implementations
// return identity facts and delegate all user creation and linking to the
// completion callback they were constructed with.
type Strategy interface {
	// Name returns the provider identifier (e.g. "github", "google").
	Name() string

	// AuthURL returns the provider authorization URL carrying the given state.
	AuthURL(state string) string

	// Callback exchanges the authorization code, fetches the profile and runs
	// the bound completion callback.
	Callback(ctx context.Context, code string) (*model.User, error)
}

// Config holds the environment-derived settings a provider strategy needs.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type setting struct {
	name  string
	value string
}

// settings declares the required settings in a fixed order so Setup can
// report each missing one by name.
func (c Config) settings() []setting {
	return []setting{
		{"client id", c.ClientID},
		{"client secret", c.ClientSecret},
		{"callback url", c.CallbackURL},
	}
}

func fetchJSON(ctx context.Context, client *http.Client, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code is not OK: %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return payload, nil
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}
