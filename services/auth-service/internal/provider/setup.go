package provider

import "github.com/rs/zerolog"

// SetupParams defines the parameters for registering a provider strategy.
type SetupParams struct {
	// Provider is the display name used in log lines.
	Provider string

	// Build constructs the strategy from the config and completion callback.
	Build func(Config, CompletionFunc) Strategy

	// Config carries the environment-derived credentials for the provider.
	Config Config

	// OAuth is the completion callback bound into the strategy.
	OAuth CompletionFunc

	// Registry receives the built strategy.
	Registry *Registry
}

// Setup registers the strategy built from params when every required setting
// is present. A provider with any missing setting is skipped without error,
// which lets the host declare many optional providers and have only the
// configured ones become active.
func Setup(logger *zerolog.Logger, params SetupParams) {
	var missing bool
	for _, s := range params.Config.settings() {
		if s.value == "" {
			missing = true
			logger.Info().
				Str("provider", params.Provider).
				Str("setting", s.name).
				Msg("missing provider setting")
		}
	}

	if missing {
		logger.Info().Str("provider", params.Provider).Msg("provider will not initialize")
		return
	}

	logger.Info().Str("provider", params.Provider).Msg("initializing provider")

	params.Registry.Register(params.Build(params.Config, params.OAuth))
}
