package cli

import (
	"cipherstudio/internal/config"
	apihttp "cipherstudio/internal/http"
	"cipherstudio/internal/projects"
	"cipherstudio/internal/repository"
	"cipherstudio/pkg/logger"
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	serverAddrPrefix = ":"
	signalBufferSize = 1

	errFailedConnectDatabaseFmt = "failed to connect to database: %w"
	errServerFmt                = "server error: %w"
	errForcedShutdownFmt        = "server forced to shutdown: %w"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the project REST API",
		Args:  cobra.NoArgs,
		RunE:  app.runServe,
	}
}

// openRepository connects to the configured database. Outside production a
// failed connection degrades to a server whose data routes answer 500.
func openRepository(ctx context.Context, cfg *config.Config) (repository.ProjectRepository, error) {
	dbURL := logger.SanitizeURI(cfg.Database.URL)

	repo, err := repository.Open(ctx, repository.OpenOptions{
		URL:            cfg.Database.URL,
		DatabaseName:   cfg.Database.Name,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		if cfg.App.IsProduction() {
			return nil, fmt.Errorf(errFailedConnectDatabaseFmt, err)
		}
		log.Warn().Err(err).Str("url", dbURL).Msg("database unavailable, serving without storage")
		return repository.Unavailable{}, nil
	}

	if cfg.Database.URL == "" {
		log.Warn().Msg("DATABASE_URL not set, serving without storage")
	} else {
		log.Info().Str("url", dbURL).Msg("Database connection established")
	}

	return repo, nil
}

func (a *App) runServe(cmd *cobra.Command, _ []string) error {
	cfg := a.cfg
	ctx := cmd.Context()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close repository")
		}
	}()

	server := apihttp.NewServer(&apihttp.ServerDependencies{
		Config:   cfg,
		Projects: projects.NewService(repo, projects.WithListLimit(cfg.App.ProjectListLimit)),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("environment", cfg.App.Environment).Msg("Starting HTTP server")
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf(errServerFmt, err)
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf(errForcedShutdownFmt, err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
