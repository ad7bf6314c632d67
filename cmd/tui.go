// ABOUTME: TUI command for the faris CLI
// ABOUTME: Launches the interactive dashboard with logs redirected to a file

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/config"
	"github.com/Moshe-ship/faris-ai-saas/internal/logger"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard. Protected screens appear only once the
stored session has been confirmed by the backend; otherwise the login form
is shown. Logs go to debug.log in the state directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command) error {
	// the terminal belongs to the TUI, so logs need a file before the env exists
	cfg, err := config.Load(cfgFile, apiURL)
	if err != nil {
		return &output.CLIError{Summary: "Invalid configuration", Detail: err.Error(), ExitCode: output.ExitFailure, Err: err}
	}
	logFile, err := logger.OpenDebugFile(cfg.State.Dir)
	if err != nil {
		return &output.CLIError{Summary: "Cannot open debug log", Detail: err.Error(), ExitCode: output.ExitFailure, Err: err}
	}
	defer logFile.Close()

	redirector := &tui.Redirector{}
	e, err := newEnv(envOptions{
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Log:       logFile,
		Navigator: redirector,
	})
	if err != nil {
		return err
	}

	e.logger.Info("Starting TUI", "backend", e.cfg.API.URL)
	err = tui.Run(tui.Options{
		API:     e.client,
		Session: e.session,
		Locale:  e.locale,
		Recent:  e.recent,
		Logger:  e.logger,
	}, redirector)
	if err != nil {
		return &output.CLIError{Summary: "TUI exited with an error", Detail: err.Error(), ExitCode: output.ExitFailure, Err: err}
	}
	return nil
}
