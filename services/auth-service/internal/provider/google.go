package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

const googleProviderName = "google"

type GoogleStrategy struct {
	oauthConfig *oauth2.Config
	oauth       CompletionFunc
}

func NewGoogleStrategy(cfg Config, oauth CompletionFunc) Strategy {
	return &GoogleStrategy{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		oauth: oauth,
	}
}

func (s *GoogleStrategy) Name() string {
	return googleProviderName
}

func (s *GoogleStrategy) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *GoogleStrategy) Callback(ctx context.Context, code string) (*model.User, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	oauth2Service, err := oauth2api.NewService(ctx, option.WithHTTPClient(s.oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, err
	}

	userInfo, err := oauth2Service.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch failed: %w", err)
	}

	if userInfo.Id == "" {
		return nil, errors.New("google userinfo missing id")
	}

	data, err := userInfo.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	profile := &Profile{
		Provider:    googleProviderName,
		ID:          userInfo.Id,
		DisplayName: userInfo.Name,
		Email:       userInfo.Email,
		AvatarURL:   userInfo.Picture,
		Raw:         raw,
	}

	return s.oauth(ctx, Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, profile)
}
