// ABOUTME: Register command for the faris CLI
// ABOUTME: Creates an account and signs into it

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/session"
)

var (
	registerEmail   string
	registerName    string
	registerCompany string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Faris AI account",
	Long: `Create an account and sign into it. Missing fields are prompted for
interactively; use --password-stdin to pipe the password.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			creds := credentials{email: registerEmail, name: registerName, companyName: registerCompany}
			if err := creds.complete(e, cmd.InOrStdin(), true); err != nil {
				return e.fail("Could not read account details", err)
			}
			return runRegister(ctx, e, creds)
		})
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerCompany, "company", "", "Company name")
	registerCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	rootCmd.AddCommand(registerCmd)
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, e *env, c credentials) int {
	if err := e.session.Register(ctx, c.email, c.password, c.name, c.companyName); err != nil {
		return e.fail(e.locale.T(session.KeyRegisterFailed), err)
	}
	e.remember(c.email)
	return printSignedIn(e, e.session.Identity())
}
