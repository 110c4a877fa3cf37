package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

const (
	facebookProviderName = "facebook"
	facebookMeEndpoint   = "https://graph.facebook.com/v19.0/me?fields=id,name,email,picture"
)

type FacebookStrategy struct {
	oauthConfig *oauth2.Config
	oauth       CompletionFunc
}

func NewFacebookStrategy(cfg Config, oauth CompletionFunc) Strategy {
	return &FacebookStrategy{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     facebook.Endpoint,
			Scopes:       []string{"public_profile", "email"},
		},
		oauth: oauth,
	}
}

func (s *FacebookStrategy) Name() string {
	return facebookProviderName
}

func (s *FacebookStrategy) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

func (s *FacebookStrategy) Callback(ctx context.Context, code string) (*model.User, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("facebook token exchange failed: %w", err)
	}

	raw, err := fetchJSON(ctx, s.oauthConfig.Client(ctx, token), facebookMeEndpoint)
	if err != nil {
		return nil, fmt.Errorf("facebook profile fetch failed: %w", err)
	}

	id := stringField(raw, "id")
	if id == "" {
		return nil, errors.New("facebook profile missing id")
	}

	profile := &Profile{
		Provider:    facebookProviderName,
		ID:          id,
		DisplayName: stringField(raw, "name"),
		Email:       stringField(raw, "email"),
		Raw:         raw,
	}

	if picture, ok := raw["picture"].(map[string]any); ok {
		if data, ok := picture["data"].(map[string]any); ok {
			profile.AvatarURL = stringField(data, "url")
		}
	}

	return s.oauth(ctx, Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, profile)
}
