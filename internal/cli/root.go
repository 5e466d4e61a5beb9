package cli

import (
	"cipherstudio/internal/config"
	"cipherstudio/pkg/logger"
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	envFilePath = ".env"

	flagAPIURL     = "api-url"
	flagLocalStore = "local-store"
	flagOutput     = "output"
	flagDebug      = "debug"
	flagOffline    = "offline"

	debugLevel = "debug"

	errFailedLoadConfigFmt = "failed to load configuration: %w"
	errUnknownOutputFmt    = "unknown output format %q, expected json, yaml or table"
)

// App carries the state shared by every command: parsed global flags and
// the configuration loaded before the command runs.
type App struct {
	cfg *config.Config

	apiURL     string
	localStore string
	output     string
	debug      bool
	offline    bool
}

func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "cipherstudio",
		Short: "CipherStudio project store",
		Long: `CipherStudio stores browser-IDE projects: a REST service backed by MongoDB or
PostgreSQL, and a client that keeps a local copy of every project it opens.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.apiURL, flagAPIURL, "", "Override the project API base URL")
	flags.StringVar(&app.localStore, flagLocalStore, "", "Override the local store URL (memory://, sqlite://, redis://, s3://)")
	flags.StringVarP(&app.output, flagOutput, "o", outputTable, "Output format: json, yaml or table")
	flags.BoolVar(&app.debug, flagDebug, false, "Enable debug logging")
	flags.BoolVar(&app.offline, flagOffline, false, "Use the local store only")

	rootCmd.AddCommand(
		newServeCommand(app),
		newProjectCommand(app),
		newFileCommand(app),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load(envFilePath)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf(errFailedLoadConfigFmt, err)
	}

	if cmd.Flags().Changed(flagAPIURL) {
		cfg.Client.APIURL = a.apiURL
	}
	if cmd.Flags().Changed(flagLocalStore) {
		cfg.Client.LocalStore = a.localStore
	}
	if a.debug {
		cfg.App.LogLevel = debugLevel
	}

	switch a.output {
	case outputJSON, outputYAML, outputTable:
	default:
		return fmt.Errorf(errUnknownOutputFmt, a.output)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	a.cfg = cfg
	return nil
}
