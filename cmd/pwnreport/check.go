package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/initstring/pwnreport/internal/config"
	"github.com/initstring/pwnreport/internal/database"
	"github.com/initstring/pwnreport/internal/hibp"
	"github.com/initstring/pwnreport/internal/log"
	"github.com/initstring/pwnreport/internal/model"
	"github.com/initstring/pwnreport/internal/pipeline"
	"github.com/initstring/pwnreport/internal/progress"
	"github.com/initstring/pwnreport/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check email addresses in a file against the breach database",
		Long: `Check extracts email addresses from a text file and queries the
haveibeenpwned.com API for each one, in order, with a delay between
requests to respect the provider's rate limit.

The input can be any text file (a dump, a log, an export); addresses are
found by pattern matching, so surrounding content does not matter.

Examples:
  # Check all addresses found in a file
  pwnreport check -a <api-key> -f emails.txt

  # Read the API key from the environment or a .env file
  export HIBP_API_KEY=<api-key>
  pwnreport check -f emails.txt

  # Slow down for a stricter rate limit
  pwnreport check -f emails.txt -s 2.5

  # Deduplicate addresses before querying
  pwnreport check -f emails.txt --unique

  # Markdown report instead of the default text format
  pwnreport check -f emails.txt --markdown -o report.md

Configuration file (.pwnreport) example:
  apikey: "0123456789abcdef0123456789abcdef"
  sleep: 2s
  outfile: "results.txt"`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	// API flags
	cmd.Flags().StringP("apikey", "a", "",
		"haveibeenpwned.com API key (default: HIBP_API_KEY environment variable)")
	cmd.Flags().Float64P("sleep", "s", config.DefaultSleep.Seconds(),
		"Seconds to sleep between API requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each API request")

	// Input/output flags
	cmd.Flags().StringP("infile", "f", "",
		"Text file to extract email addresses from")
	cmd.Flags().StringP("outfile", "o", config.DefaultOutFile,
		"Report output file path")
	cmd.Flags().BoolP("unique", "u", false,
		"Deduplicate extracted addresses before querying")

	// Report format flags
	cmd.Flags().BoolP("json", "j", false,
		"Write a JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a Markdown report (mutually exclusive with --json)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pwnreport in current or home directory)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	// Build config from flags, config file, and environment
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Probe the input file before any network activity. A typo'd path
	// should fail here, not after the user has waited through API calls.
	f, err := os.Open(cfg.InFile) //nolint:gosec // User-provided input path is the point
	if err != nil {
		return fmt.Errorf("cannot read input file %s: %w", cfg.InFile, err)
	}
	_ = f.Close() //nolint:errcheck // Opened only to probe readability

	// Set up structured logging with credential masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, the optional
// configuration file, and the environment. Precedence: flags win over the
// file, the file wins over defaults; the API key additionally falls back
// to the environment.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.APIKey, err = cmd.Flags().GetString("apikey")
	if err != nil {
		return nil, err
	}

	cfg.InFile, err = cmd.Flags().GetString("infile")
	if err != nil {
		return nil, err
	}

	cfg.OutFile, err = cmd.Flags().GetString("outfile")
	if err != nil {
		return nil, err
	}

	sleepSeconds, err := cmd.Flags().GetFloat64("sleep")
	if err != nil {
		return nil, err
	}
	cfg.Sleep = time.Duration(sleepSeconds * float64(time.Second))

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Unique, err = cmd.Flags().GetBool("unique")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the configuration file for values the user did not set on the
	// command line. If the user explicitly specified a path, error if it
	// is missing; an absent default file is simply skipped.
	foundPath := config.FindConfigFile(configPath)
	if foundPath != "" {
		cf, err := config.LoadConfigFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
		}
		cfg.Merge(cf, cmd.Flags().Changed)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	// Last resort for the credential: environment, including a .env file.
	if cfg.APIKey == "" {
		cfg.APIKey = config.APIKeyFromEnv()
	}

	return cfg, nil
}

// runCheck executes the check pipeline.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting check",
		"infile", cfg.InFile,
		"outfile", cfg.OutFile,
		"sleep", cfg.Sleep,
		"saveToDB", cfg.SaveToDB,
	)

	client, err := hibp.NewClient(cfg.APIKey,
		hibp.WithBaseURL(cfg.APIURL),
		hibp.WithUserAgent(cfg.UserAgent),
		hibp.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// The progress bar starts with an unknown total; the collector sets it
	// once extraction has produced the address count.
	collector := hibp.NewCollector(client,
		hibp.WithDelay(cfg.Sleep),
		hibp.WithFailureThreshold(cfg.FailureThreshold),
		hibp.WithProgress(progress.NewBarReporter(0, "Checking accounts")),
		hibp.WithCollectorLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewExtractStep(pipeline.WithUnique(cfg.Unique)),
		pipeline.NewCollectStep(collector),
		pipeline.NewFormatStep(),
		pipeline.NewWriteStep(cfg.OutFile,
			pipeline.WithWriterFactory(reportWriterFactory(cfg)),
		),
	)

	checkReport := model.NewCheckReport(cfg.InFile)

	startTime := time.Now()
	if err := p.Execute(ctx, checkReport); err != nil {
		return err
	}
	logger.Info("check completed",
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"pwnedAccounts", checkReport.PwnedAccountCount(),
		"breaches", checkReport.BreachCount(),
	)

	// Record the run. History is a convenience; a storage problem must not
	// turn a completed check into a failure.
	if cfg.SaveToDB {
		if err := saveCheckReport(ctx, cfg, checkReport, logger); err != nil {
			logger.Error("failed to save run to history", "error", err)
		}
	}

	return nil
}

// reportWriterFactory returns the writer constructor for the configured
// report format. The classic text format is the default.
func reportWriterFactory(cfg *config.Config) func(io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return func(w io.Writer) report.Writer {
			return report.NewJSONWriter(w, report.WithPrettyPrint())
		}
	case cfg.MarkdownReport:
		return func(w io.Writer) report.Writer {
			return report.NewMarkdownWriter(w)
		}
	default:
		return func(w io.Writer) report.Writer {
			return report.NewPwnedWriter(w)
		}
	}
}

// saveCheckReport records a completed run in the history database.
func saveCheckReport(ctx context.Context, cfg *config.Config, checkReport *model.CheckReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, checkReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "runID", runID, "db", db.Path())
	return nil
}
