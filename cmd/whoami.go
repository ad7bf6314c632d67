// ABOUTME: Whoami command for the faris CLI
// ABOUTME: Resolves the stored session against the backend and prints the identity

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runWhoami)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami checks the session and returns exit code
func runWhoami(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}
	id := e.session.Identity()

	if e.printer.JSONMode() {
		if err := e.printer.JSON(id); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	fmt.Fprintln(e.printer.Out(), formatIdentityHuman(id))
	return output.ExitSuccess
}

// formatIdentityHuman formats an identity for human readability
func formatIdentityHuman(id *session.Identity) string {
	out := fmt.Sprintf(`Name:   %s
Email:  %s
Role:   %s
Org:    %s`, id.Name, id.Email, id.Role, id.OrgID)
	if id.CreatedAt != "" {
		out += "\nSince:  " + id.CreatedAt
	}
	return out
}
