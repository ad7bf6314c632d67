// ABOUTME: Root command for the faris CLI
// ABOUTME: Handles global flags and wires configuration, state and the session core

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/config"
	"github.com/Moshe-ship/faris-ai-saas/internal/gateway"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/logger"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/recent"
	"github.com/Moshe-ship/faris-ai-saas/internal/session"
	"github.com/Moshe-ship/faris-ai-saas/internal/statefile"
	"github.com/Moshe-ship/faris-ai-saas/internal/tokenstore"
)

var (
	cfgFile    string
	apiURL     string
	jsonOutput bool
	verbose    bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "faris",
	Short: "Terminal client for the Faris AI sales platform",
	Long: `faris signs in to the Faris AI lead-generation platform and browses
leads, campaigns and dashboard metrics from the terminal.

Run 'faris tui' for the interactive dashboard.

Environment Variables:
  FARIS_API_URL        Backend URL (default: http://localhost:8000)
  FARIS_API_TIMEOUT    Per-request timeout (default: 30s)
  FARIS_STATE_DIR      Where the session and language are kept
  FARIS_LOGGING_LEVEL  debug, info, warn or error`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/faris/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend URL (overrides FARIS_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// env is everything a command needs, built from configuration
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
	state   *statefile.File
	tokens  *tokenstore.Store
	locale  *locale.Store
	recent  *recent.Emails
	client  *client.Client
	session *session.Store
}

// envOptions overrides where an env writes
type envOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	// Log receives log records; defaults to Stderr
	Log io.Writer
	// Navigator is told about rejected credentials; defaults to a log record
	Navigator gateway.Navigator
}

// newEnv loads configuration and builds the session core on top of it
func newEnv(opts envOptions) (*env, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = opts.Stderr
	}

	cfg, err := config.Load(cfgFile, apiURL)
	if err != nil {
		return nil, &output.CLIError{
			Summary:    "Invalid configuration",
			Detail:     err.Error(),
			Suggestion: "Check your config file and FARIS_* environment variables",
			ExitCode:   output.ExitFailure,
			Err:        err,
		}
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(opts.Log, level, cfg.Logging.Format)

	e := &env{
		cfg:    cfg,
		logger: log,
		printer: output.NewPrinter(output.PrinterOptions{
			Out:    opts.Stdout,
			Err:    opts.Stderr,
			Colors: cfg.Output.Colors,
			JSON:   jsonOutput,
		}),
		state: statefile.New(cfg.State.Dir, log),
	}
	e.tokens = tokenstore.New(e.state, log)
	e.locale = locale.Open(e.state, nil, log)
	e.recent = recent.New(e.state, log)

	nav := opts.Navigator
	if nav == nil {
		// commands report the rejection themselves through fail
		nav = gateway.NavigatorFunc(func() {
			log.Info("Backend rejected the credential, stored session cleared")
		})
	}

	gw := gateway.New(gateway.Options{
		BaseURL:   cfg.API.URL,
		Timeout:   cfg.API.Timeout,
		Tokens:    e.tokens,
		Navigator: nav,
		Logger:    log,
		Language:  func() string { return e.locale.Current().String() },
	})
	e.client = client.New(gw)
	e.session = session.New(e.client, e.tokens, session.Options{
		Logger:    log,
		Translate: e.locale.T,
	})
	return e, nil
}

// fail prints err and returns the matching exit code
func (e *env) fail(summary string, err error) int {
	cliErr := &output.CLIError{
		Summary:  summary,
		Detail:   gateway.Message(err, err.Error()),
		ExitCode: output.ExitFailure,
		Err:      err,
	}

	var netErr *gateway.NetworkError
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		cliErr.ExitCode = output.ExitUnauthorized
		cliErr.Suggestion = "Run 'faris login' to sign in"
	case errors.As(err, &netErr):
		cliErr.Suggestion = "Check that the backend is running at " + e.cfg.API.URL
	}

	e.logger.Debug("Command failed", "summary", summary, "error", err)
	e.printer.FormatError(cliErr)
	return cliErr.ExitCode
}

// remember records email as the latest sign-in
func (e *env) remember(email string) {
	if err := e.recent.Add(email); err != nil {
		e.logger.Warn("Failed to remember email", "error", err)
	}
}

// requireSession resolves the stored credential against the backend.
// It returns a non-zero exit code when nobody is signed in.
func (e *env) requireSession(ctx context.Context) int {
	if !e.session.HasCredential() {
		e.printer.FormatError(&output.CLIError{
			Summary:    "Not logged in",
			Suggestion: "Run 'faris login' to sign in",
			ExitCode:   output.ExitUnauthorized,
		})
		return output.ExitUnauthorized
	}

	e.session.CheckAuth(ctx)
	if !e.session.Authenticated() {
		// the backend may have refused the credential or been unreachable
		e.printer.FormatError(&output.CLIError{
			Summary:    "Could not confirm the stored session",
			Detail:     "The stored session was cleared",
			Suggestion: "Check that the backend is running at " + e.cfg.API.URL + ", then run 'faris login'",
			ExitCode:   output.ExitUnauthorized,
		})
		return output.ExitUnauthorized
	}
	return output.ExitSuccess
}

// runWithEnv is the shared Run body: it builds an env, runs fn under a
// signal-aware context and exits with fn's code.
func runWithEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	e, err := newEnv(envOptions{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()})
	if err != nil {
		printConfigError(cmd.ErrOrStderr(), err)
		os.Exit(output.ExitCode(err))
	}

	exitCode := fn(ctx, e)
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

func printConfigError(w io.Writer, err error) {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		output.NewPrinter(output.PrinterOptions{Err: w, Colors: true}).FormatError(cliErr)
		return
	}
	output.NewPrinter(output.PrinterOptions{Err: w, Colors: true}).Error("%v", err)
}
