// ABOUTME: Leads commands for the faris CLI
// ABOUTME: Lists, shows, updates and AI-scores leads

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var leadFilter client.LeadFilter

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List leads",
	Long: `List leads one page at a time. Filters combine:

  faris leads --status new --min-score 7
  faris leads --industry fintech --search riyadh --page 2`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runLeads(ctx, e, leadFilter)
		})
	},
}

var leadShowCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Show one lead",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runLeadShow(ctx, e, args[0])
		})
	},
}

var leadScoreCmd = &cobra.Command{
	Use:   "score <lead-id>",
	Short: "Score a lead with AI",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runLeadScore(ctx, e, args[0])
		})
	},
}

var leadUpdateCmd = &cobra.Command{
	Use:   "update <lead-id>",
	Short: "Change a lead's status, notes or tags",
	Long: `Change pipeline fields on one lead. Only the flags you pass are sent:

  faris leads update 3f2a --status contacted
  faris leads update 3f2a --notes "Call back Sunday" --tag vip --tag riyadh`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var update client.LeadUpdate
		flags := cmd.Flags()
		if flags.Changed("status") {
			status, _ := flags.GetString("status")
			update.Status = &status
		}
		if flags.Changed("notes") {
			notes, _ := flags.GetString("notes")
			update.Notes = &notes
		}
		if flags.Changed("tag") {
			update.Tags, _ = flags.GetStringSlice("tag")
		}
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runLeadUpdate(ctx, e, args[0], update)
		})
	},
}

func init() {
	leadUpdateCmd.Flags().String("status", "", "New status ("+strings.Join(client.LeadStatuses, ", ")+")")
	leadUpdateCmd.Flags().String("notes", "", "Replace the lead's notes")
	leadUpdateCmd.Flags().StringSlice("tag", nil, "Replace the lead's tags (repeatable)")

	leadsCmd.Flags().IntVar(&leadFilter.Page, "page", 1, "Page number")
	leadsCmd.Flags().StringVar(&leadFilter.Status, "status", "", "Filter by status ("+strings.Join(client.LeadStatuses, ", ")+")")
	leadsCmd.Flags().StringVar(&leadFilter.Industry, "industry", "", "Filter by industry")
	leadsCmd.Flags().IntVar(&leadFilter.MinScore, "min-score", 0, "Only leads scoring at least this (0-10)")
	leadsCmd.Flags().StringVar(&leadFilter.Search, "search", "", "Search company and contact names")
	leadsCmd.AddCommand(leadShowCmd)
	leadsCmd.AddCommand(leadScoreCmd)
	leadsCmd.AddCommand(leadUpdateCmd)
	rootCmd.AddCommand(leadsCmd)
}

// runLeads lists one page of leads and returns exit code
func runLeads(ctx context.Context, e *env, filter client.LeadFilter) int {
	if filter.MinScore < 0 || filter.MinScore > 10 {
		return e.fail("Invalid filter", fmt.Errorf("--min-score must be between 0 and 10"))
	}
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	page, err := e.client.ListLeads(ctx, filter)
	if err != nil {
		return e.fail("Failed to list leads", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(page); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	t := e.locale.T
	if len(page.Leads) == 0 {
		e.printer.Info("%s", t("leads.noLeads"))
		return output.ExitSuccess
	}

	rtl := e.locale.Direction() == locale.RTL
	table := output.NewTable(e.printer.Out(), []string{
		"ID", t("leads.company"), t("leads.industry"), t("leads.score"), t("leads.status"),
	}, rtl)
	for _, lead := range page.Leads {
		name := lead.CompanyName
		if rtl && lead.CompanyNameAr != "" {
			name = lead.CompanyNameAr
		}
		table.AddRow(lead.ID, name, lead.Industry, strconv.Itoa(lead.Score)+"/10",
			e.printer.StatusBadge(lead.Status)+" "+t("status."+lead.Status))
	}
	if err := table.Render(); err != nil {
		return e.fail("Failed to render table", err)
	}

	e.printer.Print("%s %d %s %d · %d", t("leads.page"), page.Page, t("leads.of"), max(1, page.TotalPages), page.Total)
	return output.ExitSuccess
}

// runLeadShow prints one lead and returns exit code
func runLeadShow(ctx context.Context, e *env, id string) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	lead, err := e.client.GetLead(ctx, id)
	if err != nil {
		return e.fail("Failed to load lead", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(lead); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	fmt.Fprintln(e.printer.Out(), formatLeadHuman(lead, e.locale.T))
	return output.ExitSuccess
}

// formatLeadHuman formats a lead for human readability, skipping empty fields
func formatLeadHuman(lead *client.Lead, t func(string) string) string {
	fields := [][2]string{
		{t("leads.company"), lead.CompanyName},
		{"", lead.CompanyNameAr},
		{t("leads.industry"), lead.Industry},
		{t("leads.score"), strconv.Itoa(lead.Score) + "/10"},
		{t("leads.status"), t("status." + lead.Status)},
		{"Contact", strings.TrimSpace(lead.ContactName + " " + parenthesize(lead.ContactTitle))},
		{"Email", lead.Email},
		{"Phone", lead.Phone},
		{"Location", lead.Location},
		{"Website", lead.Website},
		{"Tags", strings.Join(lead.Tags, ", ")},
		{"Notes", lead.Notes},
	}

	var lines []string
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		label := f[0]
		if label != "" {
			label += ":"
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", label, f[1]))
	}
	return strings.Join(lines, "\n")
}

func parenthesize(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

// runLeadScore asks the AI to score a lead and returns exit code
func runLeadScore(ctx context.Context, e *env, id string) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	result, err := e.client.ScoreLead(ctx, id)
	if err != nil {
		return e.fail("Failed to score lead", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(result); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	e.printer.Success("%s: %d/10", e.locale.T("ai.score"), result.Score)
	for _, reason := range result.Reasons {
		e.printer.Print("  - %s", reason)
	}
	return output.ExitSuccess
}

// runLeadUpdate applies update to one lead and returns exit code
func runLeadUpdate(ctx context.Context, e *env, id string, update client.LeadUpdate) int {
	if err := update.Validate(); err != nil {
		return e.fail("Invalid update", err)
	}
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	lead, err := e.client.UpdateLead(ctx, id, update)
	if err != nil {
		return e.fail("Failed to update lead", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(lead); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Success("Updated lead %s", lead.ID)
	fmt.Fprintln(e.printer.Out(), formatLeadHuman(lead, e.locale.T))
	return output.ExitSuccess
}
