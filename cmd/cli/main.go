package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/cmd/cli/commands"
	"github.com/acganger/ganger-platform-sub011/internal/config"
	"github.com/acganger/ganger-platform-sub011/pkg/clients/sheetsclient"
	"github.com/acganger/ganger-platform-sub011/pkg/fixtures"
	"github.com/acganger/ganger-platform-sub011/pkg/metrics"
	"github.com/acganger/ganger-platform-sub011/pkg/postgres"
	"github.com/acganger/ganger-platform-sub011/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
	stop       context.CancelFunc
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "staffing",
		Short: "Cross-location staffing optimizer",
		Long:  `A CLI tool that fills coverage gaps across locations by assigning staff who can travel.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
		SilenceUsage: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default staffing_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.OptimizeCmd(app))
	rootCmd.AddCommand(commands.GapsCmd(app))
	rootCmd.AddCommand(commands.TravelOptionsCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config, stores and metrics
func initApp() error {
	var err error
	app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	var logFile string
	app.Logger, logFile, err = logging.InitLogger(env, logging.Options{Dir: app.Cfg.LogDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("data_source", app.Cfg.DataSource),
		zap.String("registry_source", app.Cfg.RegistrySource),
		zap.String("log_file", logFile))

	app.Recorder = metrics.NewRecorder()

	cfg := app.Cfg
	var fixtureStore *fixtures.Store
	if cfg.DataSource == config.SourceFile || cfg.RegistrySource == config.SourceFile {
		app.Logger.Debug("Loading data file", zap.String("path", cfg.DataFile))
		fixtureStore, err = fixtures.Load(cfg.DataFile)
		if err != nil {
			return fmt.Errorf("failed to load data file: %w", err)
		}
	}
	if cfg.DataSource == config.SourcePostgres || cfg.RegistrySource == config.SourcePostgres {
		app.Logger.Info("Connecting to database")
		app.Postgres, err = postgres.NewDB(app.Ctx, cfg.DatabaseURL, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	switch cfg.DataSource {
	case config.SourcePostgres:
		app.Stores.Coverage = app.Postgres
		app.Stores.Runs = app.Postgres
	case config.SourceFile:
		app.Stores.Coverage = fixtureStore
		app.Stores.Runs = fixtureStore
	}

	switch cfg.RegistrySource {
	case config.SourcePostgres:
		app.Stores.Registry = app.Postgres
	case config.SourceFile:
		app.Stores.Registry = fixtureStore
	case config.SourceSheets:
		app.Logger.Info("Initializing sheets client", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
		client, err := sheetsclient.NewClient(app.Ctx, cfg.Sheets)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Stores.Registry = client
	}

	return nil
}

func closeApp() {
	if app.Postgres != nil {
		app.Postgres.Close()
		app.Postgres = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
	if stop != nil {
		stop()
	}
}
