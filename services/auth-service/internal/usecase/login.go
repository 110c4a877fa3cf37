package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/provider"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/repository"
)

// LoginUsecase defines the interface for social-login use cases.
type LoginUsecase interface {
	CompleteLogin(ctx context.Context, params CompleteLoginParams) (*model.User, error)
}

// CompleteLoginParams defines the parameters for completing a social login.
type CompleteLoginParams struct {
	Credentials provider.Credentials
	Profile     provider.Profile
}

var (
	ErrProfileIncomplete = errors.New("profile is missing provider or external id")
)

// WelcomeMailer greets newly created users. Implementations must be safe for
// concurrent use.
type WelcomeMailer interface {
	SendWelcome(name string, email string) error
}

type loginUsecase struct {
	identityRepo repository.OAuthIdentityRepository
	userRepo     repository.UserRepository
	mailer       WelcomeMailer
	logger       *zerolog.Logger
}

// NewLoginUsecase creates the login use case. mailer may be nil when no mail
// transport is configured.
func NewLoginUsecase(
	identityRepo repository.OAuthIdentityRepository,
	userRepo repository.UserRepository,
	mailer WelcomeMailer,
	logger *zerolog.Logger,
) LoginUsecase {
	return &loginUsecase{
		identityRepo: identityRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

// CompleteLogin resolves the identity record for the profile's
// (provider, uid) pair, refreshes its credentials and profile snapshot, and
// returns the linked user, creating and linking one on the first login.
func (u *loginUsecase) CompleteLogin(ctx context.Context, params CompleteLoginParams) (*model.User, error) {
	profile := params.Profile
	if profile.Provider == "" || profile.ID == "" {
		return nil, ErrProfileIncomplete
	}

	u.logger.Info().
		Str("provider", profile.Provider).
		Str("uid", profile.ID).
		Str("display_name", profile.DisplayName).
		Msg("received profile")

	identity, err := u.identityRepo.FindOrCreateIdentity(ctx, profile.Provider, profile.ID)
	if err != nil {
		return nil, err
	}

	update := repository.UpdateIdentityParams{Profile: bson.M(profile.Raw)}
	if params.Credentials.AccessToken != "" {
		update.AccessToken = &params.Credentials.AccessToken
	}
	if params.Credentials.RefreshToken != "" {
		update.RefreshToken = &params.Credentials.RefreshToken
	}
	if params.Credentials.Token != "" {
		update.Token = &params.Credentials.Token
	}
	if params.Credentials.TokenSecret != "" {
		update.TokenSecret = &params.Credentials.TokenSecret
	}

	// Loading the linked user and persisting the refreshed identity touch
	// independent state; both must finish before the first-login decision.
	var linked *model.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if identity.UserID == "" {
			return nil
		}

		user, err := u.userRepo.GetUser(gctx, identity.UserID)
		if err != nil {
			return err
		}

		linked = user
		return nil
	})
	g.Go(func() error {
		_, err := u.identityRepo.UpdateIdentity(gctx, identity.ID.Hex(), update)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if linked != nil {
		u.logger.Info().
			Str("provider", profile.Provider).
			Str("uid", profile.ID).
			Str("user_id", linked.ID.Hex()).
			Msg("login")
		return linked, nil
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:      profile.DisplayName,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	if err := u.identityRepo.LinkUser(ctx, identity.ID.Hex(), user.ID.Hex()); err != nil {
		if errors.Is(err, repository.ErrIdentityAlreadyLinked) {
			// Lost the race against a concurrent first login from the same
			// account; return the user the winner linked.
			return u.linkedUser(ctx, profile.Provider, profile.ID)
		}
		return nil, err
	}

	u.logger.Info().
		Str("provider", profile.Provider).
		Str("uid", profile.ID).
		Str("user_id", user.ID.Hex()).
		Msg("login")

	if u.mailer != nil && user.Email != "" {
		if err := u.mailer.SendWelcome(user.Name, user.Email); err != nil {
			u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send welcome email")
		}
	}

	return user, nil
}

func (u *loginUsecase) linkedUser(ctx context.Context, providerName, uid string) (*model.User, error) {
	identity, err := u.identityRepo.GetIdentityByProvider(ctx, providerName, uid)
	if err != nil {
		return nil, err
	}

	return u.userRepo.GetUser(ctx, identity.UserID)
}
