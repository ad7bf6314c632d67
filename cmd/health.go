// ABOUTME: Health command for the faris CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the Faris AI backend and report the status of its services.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runHealth)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, e *env) int {
	resp, err := e.client.Health(ctx)
	if err != nil {
		return e.fail("Backend is unreachable", err)
	}

	if e.printer.JSONMode() {
		fmt.Fprintln(e.printer.Out(), formatHealthJSON(e.cfg.API.URL, resp))
	} else {
		fmt.Fprintln(e.printer.Out(), formatHealthHuman(e.cfg.API.URL, resp))
	}

	if !strings.EqualFold(resp.Status, "healthy") && !strings.EqualFold(resp.Status, "ok") {
		return output.ExitFailure
	}
	return output.ExitSuccess
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Backend:  %s\nStatus:   %s", url, resp.Status)

	names := make([]string, 0, len(resp.Services))
	for name := range resp.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %-10s %s", name+":", resp.Services[name])
	}
	return sb.String()
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	report := map[string]any{
		"backend":  url,
		"status":   resp.Status,
		"services": resp.Services,
	}
	data, _ := json.MarshalIndent(report, "", "  ")
	return string(data)
}
