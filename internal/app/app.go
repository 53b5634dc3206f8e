package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"healthassist/backend/internal/api"
	"healthassist/backend/internal/config"
	"healthassist/backend/internal/llm"
	"healthassist/backend/internal/render"
	"healthassist/backend/internal/repository"
	"healthassist/backend/internal/service"
)

// App holds the wired server and the dependencies it owns.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Repo   repository.Repository
	Server *http.Server

	// Configured is false when no API key was supplied; the server still
	// runs and AI-backed endpoints answer with the missing-key banner.
	Configured bool
}

// NewApp wires every layer from cfg. A missing API key is not an error.
func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	var provider llm.Provider
	configured := true
	if err := cfg.Validate(); err != nil {
		configured = false
		logger.Error().Err(err).Msg(config.MissingAPIKeyBanner)
	} else {
		p, err := llm.NewProvider(llm.Options{
			Provider: cfg.LLMProvider,
			BaseURL:  cfg.LLMBaseURL,
			APIKey:   cfg.APIKey,
			Model:    cfg.LLMModel,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create language model provider: %w", err)
		}
		provider = p
	}

	repo := repository.NewMemoryRepository()
	renderer := render.NewRenderer()

	authService := service.NewAuthService(repo, logger)
	chatService := service.NewChatService(repo, provider, renderer, logger)
	searchService := service.NewSearchService(provider, renderer, logger)

	router := api.NewRouter(logger, cfg, authService, api.Handlers{
		Auth:   api.NewAuthHandler(authService),
		Chat:   api.NewChatHandler(chatService),
		Search: api.NewSearchHandler(searchService),
		Status: api.NewStatusHandler(cfg),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Repo:       repo,
		Server:     server,
		Configured: configured,
	}, nil
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", ln.Addr().String()).
			Str("env", a.Config.AppEnv).
			Str("provider", a.Config.LLMProvider).
			Bool("configured", a.Configured).
			Msg("starting server")
		errc <- a.Server.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Logger.Info().Msg("server stopped")
	return nil
}

// Run loads the configuration, serves until SIGINT or SIGTERM and returns the
// process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger is not configured yet.
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Error().Err(err).Msg("failed to load configuration")
		return 1
	}

	logger := newLogger(cfg)
	logConfigSource(logger, cfg)

	a, err := NewApp(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		return 1
	}

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		logger.Error().Err(err).Str("addr", a.Server.Addr).Msg("failed to listen")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx, ln); err != nil {
		logger.Error().Err(err).Msg("server failed")
		return 1
	}
	return 0
}

func logConfigSource(logger zerolog.Logger, cfg *config.Config) {
	if cfg.Source != "" {
		logger.Info().Str("file", cfg.Source).Msg("loaded configuration from file")
	} else {
		logger.Info().Msg("configuration file not found, using environment variables and defaults")
	}
}

// newLogger returns a console logger in development and a JSON logger
// otherwise, filtered at LOG_LEVEL.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
