// ABOUTME: Status command for the faris CLI
// ABOUTME: Summarizes the backend, language and session including credential expiry

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status",
	Long: `Display the backend URL, the active language and the state of the stored
session. The session is resolved against the backend, so a credential that
cannot be confirmed is reported (and forgotten) here.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runStatus(ctx, e, time.Now())
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// sessionStatus is the status command's report
type sessionStatus struct {
	Backend       string     `json:"backend"`
	Language      string     `json:"language"`
	Direction     string     `json:"direction"`
	StateFile     string     `json:"state_file"`
	LoggedIn      bool       `json:"logged_in"`
	Email         string     `json:"email,omitempty"`
	Name          string     `json:"name,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ExpiresIn     string     `json:"expires_in,omitempty"`
	CredentialErr string     `json:"error,omitempty"`
}

// runStatus reports session status and returns exit code.
// A missing or unconfirmed session exits with ExitUnauthorized.
func runStatus(ctx context.Context, e *env, now time.Time) int {
	st := sessionStatus{
		Backend:   e.cfg.API.URL,
		Language:  e.locale.Current().String(),
		Direction: string(e.locale.Direction()),
		StateFile: e.state.Path(),
	}

	hadCredential := e.session.HasCredential()
	if exp, ok := e.session.Expiry(); ok {
		exp = exp.Local()
		st.ExpiresAt = &exp
		st.ExpiresIn = formatRemaining(exp.Sub(now))
	}
	if hadCredential {
		e.session.CheckAuth(ctx)
	}
	if id := e.session.Identity(); id != nil {
		st.LoggedIn = true
		st.Email = id.Email
		st.Name = id.Name
	} else if hadCredential {
		st.CredentialErr = "stored session could not be confirmed"
		st.ExpiresAt = nil
		st.ExpiresIn = ""
	}

	if e.printer.JSONMode() {
		fmt.Fprintln(e.printer.Out(), formatStatusJSON(&st))
	} else {
		fmt.Fprintln(e.printer.Out(), formatStatusHuman(&st))
	}

	if !st.LoggedIn {
		return output.ExitUnauthorized
	}
	return output.ExitSuccess
}

// formatStatusHuman formats the status for human readability
func formatStatusHuman(st *sessionStatus) string {
	session := "not logged in"
	switch {
	case st.LoggedIn && st.Name != "":
		session = fmt.Sprintf("%s <%s>", st.Name, st.Email)
	case st.LoggedIn:
		session = st.Email
	case st.CredentialErr != "":
		session = "not logged in (" + st.CredentialErr + ")"
	}

	out := fmt.Sprintf(`Backend:   %s
Language:  %s (%s)
State:     %s
Session:   %s`, st.Backend, st.Language, st.Direction, st.StateFile, session)

	if st.ExpiresAt != nil {
		out += fmt.Sprintf("\nExpires:   %s (%s)", st.ExpiresAt.Format(time.RFC3339), st.ExpiresIn)
	}
	return out
}

// formatStatusJSON formats the status as JSON
func formatStatusJSON(st *sessionStatus) string {
	data, _ := json.MarshalIndent(st, "", "  ")
	return string(data)
}

// formatRemaining renders time left on a credential
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	d = d.Round(time.Minute)
	if d < time.Hour {
		return fmt.Sprintf("in %dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if hours >= 48 {
		return fmt.Sprintf("in %dd", hours/24)
	}
	if mins == 0 {
		return fmt.Sprintf("in %dh", hours)
	}
	return fmt.Sprintf("in %dh%dm", hours, mins)
}
