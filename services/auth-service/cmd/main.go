package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/config"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/handler"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/model"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/provider"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/repository"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/usecase"
	"github.com/vasapolrittideah/social-login-api/shared/auth"
	"github.com/vasapolrittideah/social-login-api/shared/logger"
	"github.com/vasapolrittideah/social-login-api/shared/mailer"
	"github.com/vasapolrittideah/social-login-api/shared/mongodb"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logger.New("auth-service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	db := client.Database(cfg.MongoDatabase)

	identityRepo := repository.NewOAuthIdentityMongoRepository(ctx, log, db)
	userRepo := repository.NewUserMongoRepository(db)

	var welcomeMailer usecase.WelcomeMailer
	if cfg.SMTP.Complete() {
		welcomeMailer = mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Info().Msg("smtp settings incomplete, welcome mail disabled")
	}

	loginUsecase := usecase.NewLoginUsecase(identityRepo, userRepo, welcomeMailer, log)

	// Default completion callback bound into every strategy.
	completeLogin := func(ctx context.Context, creds provider.Credentials, profile *provider.Profile) (*model.User, error) {
		return loginUsecase.CompleteLogin(ctx, usecase.CompleteLoginParams{
			Credentials: creds,
			Profile:     *profile,
		})
	}

	registry := provider.NewRegistry()

	for _, params := range []provider.SetupParams{
		{Provider: "github", Build: provider.NewGithubStrategy, Config: providerConfig(cfg.Github)},
		{Provider: "google", Build: provider.NewGoogleStrategy, Config: providerConfig(cfg.Google)},
		{Provider: "facebook", Build: provider.NewFacebookStrategy, Config: providerConfig(cfg.Facebook)},
	} {
		params.OAuth = completeLogin
		params.Registry = registry
		provider.Setup(log, params)
	}

	stateSigner := auth.NewStateSigner(cfg.StateSecret, cfg.StateIssuer, cfg.StateTTL)
	authHandler := handler.NewAuthHTTPHandler(registry, identityRepo, stateSigner, log)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           authHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Strs("providers", registry.Names()).
			Msg("starting http server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}
}

func providerConfig(cfg config.ProviderConfig) provider.Config {
	return provider.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURL:  cfg.CallbackURL,
	}
}
