package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
)

const (
	githubProviderName = "github"
	githubUserEndpoint = "https://api.github.com/user"
)

type GithubStrategy struct {
	oauthConfig *oauth2.Config
	oauth       CompletionFunc
}

func NewGithubStrategy(cfg Config, oauth CompletionFunc) Strategy {
	return &GithubStrategy{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		oauth: oauth,
	}
}

func (s *GithubStrategy) Name() string {
	return githubProviderName
}

func (s *GithubStrategy) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

func (s *GithubStrategy) Callback(ctx context.Context, code string) (*model.User, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github token exchange failed: %w", err)
	}

	raw, err := fetchJSON(ctx, s.oauthConfig.Client(ctx, token), githubUserEndpoint)
	if err != nil {
		return nil, fmt.Errorf("github profile fetch failed: %w", err)
	}

	// The GitHub API returns the numeric account id as a JSON number.
	id, ok := raw["id"].(float64)
	if !ok {
		return nil, errors.New("github profile missing id")
	}

	profile := &Profile{
		Provider:    githubProviderName,
		ID:          strconv.FormatInt(int64(id), 10),
		DisplayName: stringField(raw, "name"),
		Email:       stringField(raw, "email"),
		AvatarURL:   stringField(raw, "avatar_url"),
		Raw:         raw,
	}
	if profile.DisplayName == "" {
		profile.DisplayName = stringField(raw, "login")
	}

	return s.oauth(ctx, Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, profile)
}
