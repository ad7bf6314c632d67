// ABOUTME: Dashboard command for the faris CLI
// ABOUTME: Fetches stats and recent activity concurrently and prints a summary

package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show sales performance metrics",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runDashboard)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardReport is what the dashboard command prints
type dashboardReport struct {
	Stats    *client.DashboardStats `json:"stats"`
	Activity []client.ActivityItem  `json:"activity"`
}

// fetchDashboard loads stats and activity in parallel
func fetchDashboard(ctx context.Context, c *client.Client) (*dashboardReport, error) {
	var report dashboardReport
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.DashboardStats(ctx)
		report.Stats = stats
		return err
	})
	g.Go(func() error {
		activity, err := c.DashboardActivity(ctx)
		report.Activity = activity
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

// runDashboard prints the dashboard and returns exit code
func runDashboard(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	report, err := fetchDashboard(ctx, e.client)
	if err != nil {
		return e.fail("Failed to load dashboard", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(report); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	printDashboard(e, report)
	return output.ExitSuccess
}

func printDashboard(e *env, report *dashboardReport) {
	t := e.locale.T
	p := e.printer
	s := report.Stats

	p.Header(t("nav.dashboard"))
	p.Print("%-18s %d (+%d %s)", t("dashboard.leads")+":", s.TotalLeads, s.LeadsThisMonth, t("dashboard.thisMonth"))
	p.Print("%-18s %d", t("dashboard.messagesSent")+":", s.MessagesSent)
	p.Print("%-18s %d", t("dashboard.replies")+":", s.RepliesReceived)
	p.Print("%-18s %.1f%%", t("dashboard.replyRate")+":", s.ReplyRate)
	p.Print("%-18s %d", t("dashboard.activeCampaigns")+":", s.ActiveCampaigns)

	if len(s.LeadsByStatus) > 0 {
		p.Header(t("dashboard.leadsByStatus"))
		for _, status := range sortedKeys(s.LeadsByStatus) {
			p.Print("%s %-12s %d", p.StatusBadge(status), t("status."+status), s.LeadsByStatus[status])
		}
	}

	if len(report.Activity) > 0 {
		p.Header(t("dashboard.activity"))
		for _, item := range report.Activity {
			line := item.Action
			if item.EntityType != "" {
				line = fmt.Sprintf("%s (%s)", item.Action, item.EntityType)
			}
			p.Print("%s  %s", p.Dim(item.CreatedAt), line)
		}
	}
}

// sortedKeys returns keys ordered by descending count, then name
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
