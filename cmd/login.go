// ABOUTME: Login and logout commands for the faris CLI
// ABOUTME: Prompts for credentials when flags are not given and stores the session

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/session"
)

var (
	loginEmail    string
	passwordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Faris AI",
	Long: `Sign in with email and password. The session is kept in the state
directory until 'faris logout' or until the backend rejects it.

Without --email the command prompts interactively. Use --password-stdin
to pipe the password in scripts.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			creds := credentials{email: loginEmail}
			if err := creds.complete(e, cmd.InOrStdin(), false); err != nil {
				return e.fail("Could not read credentials", err)
			}
			return runLogin(ctx, e, creds)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(_ context.Context, e *env) int {
			return runLogout(e)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// credentials collects what login and register need
type credentials struct {
	email       string
	password    string
	name        string
	companyName string
}

// complete fills in missing fields from stdin or an interactive prompt
func (c *credentials) complete(e *env, stdin io.Reader, register bool) error {
	if passwordStdin {
		password, err := readPassword(stdin)
		if err != nil {
			return err
		}
		c.password = password
	}
	if c.email != "" && c.password != "" && (!register || c.name != "") {
		return nil
	}
	if !interactive() {
		return fmt.Errorf("missing credentials: pass --email and --password-stdin")
	}
	if c.email == "" && !register {
		c.email = e.recent.Latest()
	}
	return c.prompt(e.locale.T, register)
}

func (c *credentials) prompt(t func(string) string, register bool) error {
	var fields []huh.Field
	if register {
		fields = append(fields,
			huh.NewInput().Title(t("auth.name")).Value(&c.name).Validate(required),
			huh.NewInput().Title(t("auth.companyName")).Value(&c.companyName),
		)
	}
	fields = append(fields, huh.NewInput().Title(t("auth.email")).Value(&c.email).Validate(required))
	if c.password == "" {
		fields = append(fields, huh.NewInput().
			Title(t("auth.password")).
			EchoMode(huh.EchoModePassword).
			Value(&c.password).
			Validate(required))
	}

	title := t("auth.login")
	if register {
		title = t("auth.register")
	}
	form := huh.NewForm(huh.NewGroup(fields...).Title(title)).WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		return err
	}
	c.email = strings.TrimSpace(c.email)
	c.name = strings.TrimSpace(c.name)
	c.companyName = strings.TrimSpace(c.companyName)
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// readPassword reads the first line of r
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password on stdin")
	}
	return password, nil
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, e *env, c credentials) int {
	if err := e.session.Login(ctx, c.email, c.password); err != nil {
		return e.fail(e.locale.T(session.KeyLoginFailed), err)
	}
	e.remember(c.email)
	return printSignedIn(e, e.session.Identity())
}

// runLogout clears the session and returns exit code
func runLogout(e *env) int {
	had := e.session.HasCredential()
	e.session.Logout()

	if e.printer.JSONMode() {
		if err := e.printer.JSON(map[string]bool{"logged_out": had}); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	if had {
		e.printer.Success("%s", e.locale.T("auth.loggedOut"))
	} else {
		e.printer.Info("Not logged in")
	}
	return output.ExitSuccess
}

func printSignedIn(e *env, id *session.Identity) int {
	if id == nil {
		return e.fail("Sign-in did not complete", fmt.Errorf("no identity"))
	}
	if e.printer.JSONMode() {
		if err := e.printer.JSON(id); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Success("Logged in as %s", id.Email)
	return output.ExitSuccess
}

// interactive reports whether stdin is a terminal
func interactive() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
