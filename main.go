package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tirewriter/backend/internal/config"
	"tirewriter/backend/internal/logger"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

var (
	// Global flags
	verbose      bool
	port         string
	pacingFactor float64

	cfg           *config.Config
	sentryEnabled bool
)

// rootCmd starts the HTTP API when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "tirewriter",
	Short: "Tire manufacturing technical writing demo",
	Long: `tirewriter serves the six demo modules of the tire manufacturing
technical writing assistant: environment check, case library, instruction
typing, LoRA fine-tuning, evaluation and output.

Every model result is canned and every wait is simulated. Run without
arguments to start the HTTP API, or use "tirewriter tui" for the terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		cfg = config.Load()
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("pacing") {
			cfg.PacingFactor = pacingFactor
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}

		if _, err := logger.Init(level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if envErr != nil {
			logger.Debug("No .env file found, using environment variables", nil)
		}

		initSentry(cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if sentryEnabled {
			sentry.Flush(sentryFlushTimeout)
		}
		logger.Sync()
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "HTTP port (overrides PORT)")
	rootCmd.PersistentFlags().Float64Var(&pacingFactor, "pacing", 1, "Multiplier for simulated delays, 0 disables them (overrides PACING_FACTOR)")

	tuiCmd.Flags().StringVar(&tuiSessionID, "session", "", "Resume an existing session ID (default: new session)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.Version = releaseVersion
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initSentry(cfg *config.Config) {
	if cfg.SentryDSN == "" {
		logger.Debug("Sentry not configured (SENTRY_DSN not set)", nil)
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "tirewriter@" + releaseVersion,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	})
	if err != nil {
		logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		return
	}
	sentryEnabled = true
	logger.Info("Sentry initialized", logger.Fields{
		"environment": cfg.Environment,
		"release":     releaseVersion,
	})
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
		"x-session-id":  true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
