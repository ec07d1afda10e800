// Package cli provides the command-line interface for the performance
// tracker.
package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fig-tracker/internal/advisor"
	"fig-tracker/internal/auth"
	"fig-tracker/internal/calendar"
	"fig-tracker/internal/config"
	"fig-tracker/internal/feed"
	"fig-tracker/internal/journal"
	"fig-tracker/internal/logging"
	"fig-tracker/internal/session"
	"fig-tracker/internal/store"
	"fig-tracker/internal/tape"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	ConfigDir string
	Logger    zerolog.Logger
	Store     store.JournalStore
	Journal   *journal.Store
	Auth      *auth.Service
	Session   *session.Controller
	Records   feed.Source
	Capital   feed.CapitalSource
	Advisor   *advisor.Advisor
	Tape      *tape.Generator
}

// sessionPath is where the active view survives between invocations.
func (a *App) sessionPath() string {
	return filepath.Join(config.DataDir(a.ConfigDir), "session.json")
}

// saveSession persists the controller state, logging instead of failing.
func (a *App) saveSession() {
	if err := a.Session.Save(a.sessionPath()); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to persist session")
	}
}

// initialCapital resolves the starting balance: capital feed first, then
// the stored value, then the configured default. A successful fetch is
// authoritative even when the cell holds zero; only fetch failures fall
// through.
func (a *App) initialCapital(ctx context.Context) float64 {
	if a.Capital != nil {
		if v, err := a.Capital.FetchCapital(ctx); err == nil {
			if a.Store != nil {
				if err := a.Store.SetInitialCapital(ctx, v); err != nil {
					a.Logger.Warn().Err(err).Msg("Failed to cache initial capital")
				}
			}
			return v
		}
	}
	if a.Store != nil {
		if v, ok, err := a.Store.GetInitialCapital(ctx); err == nil && ok {
			return v
		}
	}
	return a.Config.Capital.Initial
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, configDir string, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		Logger:    logger,
	}

	// Initialize SQLite store
	dbPath := filepath.Join(config.DataDir(configDir), "figtrack.db")
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	// Initialize remote feeds when configured
	client := feed.NewClient(cfg.Feed.Timeout)
	var credentialFeed feed.CredentialSource
	if cfg.Feed.CredentialsURL != "" {
		credentialFeed = feed.NewCredentialCSV(client, cfg.Feed.CredentialsURL)
	}
	if cfg.Feed.CapitalURL != "" {
		app.Capital = feed.NewCapitalCSV(client, cfg.Feed.CapitalURL)
	}
	switch cfg.Feed.Mode {
	case "csv":
		app.Records = feed.NewCSVSource(client, cfg.Feed.RecordsURL)
	case "json":
		app.Records = feed.NewJSONSource(client, cfg.Feed.RecordsURL)
	}

	// Journal over the trading-day calendar
	gen := calendar.New(cfg.Cycle.Holidays...)
	app.Journal = journal.NewStore(gen, app.Store, journal.Config{
		Policy:        calendar.Policy(cfg.Cycle.Policy),
		Year:          cfg.Cycle.Year,
		Month:         time.Month(cfg.Cycle.Month),
		Start:         cfg.CycleStart(),
		Count:         cfg.Cycle.Count,
		ResetPassword: cfg.Access.ResetPassword,
	}, logger)

	app.Auth = auth.NewService(app.Store, credentialFeed,
		cfg.Access.AdminLogin, cfg.Access.AdminPassword, logger)
	if err := app.Auth.EnsurePermanentOperator(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed permanent operator")
	}
	app.Session = session.NewController(app.Auth, cfg.Access.ErrorTTL, logger)
	app.Tape = tape.NewGenerator(cfg.UI.TapeInterval, logger)

	// LLM advisor when an API key is available
	var llm advisor.LLMClient
	if cfg.Credentials.OpenAI.APIKey != "" {
		llm = advisor.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Credentials.OpenAI.Model)
		logger.Debug().Msg("OpenAI advisor initialized")
	}
	app.Advisor = advisor.New(llm, logger)

	rootCmd := &cobra.Command{
		Use:   "figtrack",
		Short: "Fig Tracker - day trading performance journal",
		Long: `Fig Tracker is a trading-day performance journal for the terminal.

It lays out the trading days of a cycle, records daily results with
sentiment and discipline ratings, and aggregates them into a performance
dashboard with fee-adjusted totals.

Use 'figtrack help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			app.Session.Restore(app.sessionPath())
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/figtrack)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addAuthCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addEntryCommands(rootCmd, app)
	addCycleCommands(rootCmd, app)
	addSyncCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addAdminCommands(rootCmd, app)
	addAnalyzeCommands(rootCmd, app)
	addTapeCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Fig Tracker v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Cycle Configuration")
	output.Printf("  Policy:          %s\n", cfg.Cycle.Policy)
	output.Printf("  Year/Month:      %04d-%02d\n", cfg.Cycle.Year, cfg.Cycle.Month)
	if cfg.Cycle.Policy == "count" {
		output.Printf("  Start:           %s\n", cfg.CycleStart().Format("2006-01-02"))
		output.Printf("  Count:           %d\n", cfg.Cycle.Count)
	}
	output.Printf("  Extra Holidays:  %d\n", len(cfg.Cycle.Holidays))
	output.Println()

	output.Bold("Feed Configuration")
	output.Printf("  Mode:            %s\n", cfg.Feed.Mode)
	if cfg.UsesRemoteFeed() {
		output.Printf("  Records URL:     %s\n", cfg.Feed.RecordsURL)
	}
	output.Printf("  Timeout:         %s\n", cfg.Feed.Timeout)
	output.Println()

	output.Bold("Access")
	output.Printf("  Admin Login:     %s\n", cfg.Access.AdminLogin)
	output.Printf("  Reset Enabled:   %v\n", cfg.Access.ResetPassword != "")
	output.Printf("  Error TTL:       %s\n", cfg.Access.ErrorTTL)

	return nil
}
