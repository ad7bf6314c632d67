// ABOUTME: Campaigns command for the faris CLI
// ABOUTME: Lists outreach campaigns and starts or pauses them

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

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List outreach campaigns",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runCampaigns)
	},
}

var campaignStartCmd = &cobra.Command{
	Use:   "start <campaign-id>",
	Short: "Start sending a campaign",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runCampaignAction(ctx, e, args[0], "start")
		})
	},
}

var campaignPauseCmd = &cobra.Command{
	Use:   "pause <campaign-id>",
	Short: "Pause a running campaign",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runCampaignAction(ctx, e, args[0], "pause")
		})
	},
}

func init() {
	campaignsCmd.AddCommand(campaignStartCmd)
	campaignsCmd.AddCommand(campaignPauseCmd)
	rootCmd.AddCommand(campaignsCmd)
}

// runCampaigns lists campaigns and returns exit code
func runCampaigns(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	campaigns, err := e.client.ListCampaigns(ctx)
	if err != nil {
		return e.fail("Failed to list campaigns", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(campaigns); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	t := e.locale.T
	if len(campaigns) == 0 {
		e.printer.Info("%s", t("campaigns.noCampaigns"))
		return output.ExitSuccess
	}

	table := output.NewTable(e.printer.Out(), []string{
		t("campaigns.title"), t("leads.status"), t("campaigns.targeted"),
		t("campaigns.replies"), t("campaigns.meetings"), "Channels",
	}, e.locale.Direction() == locale.RTL)
	for _, c := range campaigns {
		table.AddRow(
			c.Name,
			e.printer.StatusBadge(c.Status)+" "+t("campaigns."+c.Status),
			strconv.Itoa(c.LeadsContacted),
			formatReplies(c.RepliesReceived, c.LeadsContacted),
			strconv.Itoa(c.MeetingsBooked),
			strings.Join(c.Channels, ", "),
		)
	}
	if err := table.Render(); err != nil {
		return e.fail("Failed to render table", err)
	}
	return output.ExitSuccess
}

// formatReplies shows replies with their rate against contacted leads
func formatReplies(replies, contacted int) string {
	if contacted == 0 {
		return strconv.Itoa(replies)
	}
	return fmt.Sprintf("%d (%.0f%%)", replies, float64(replies)/float64(contacted)*100)
}

// runCampaignAction starts or pauses a campaign and returns exit code
func runCampaignAction(ctx context.Context, e *env, id, action string) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	var resp *client.ActionResponse
	var err error
	switch action {
	case "start":
		resp, err = e.client.StartCampaign(ctx, id)
	case "pause":
		resp, err = e.client.PauseCampaign(ctx, id)
	default:
		err = fmt.Errorf("unknown campaign action %q", action)
	}
	if err != nil {
		return e.fail("Failed to "+action+" campaign", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(resp); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Success("%s", resp.Message)
	return output.ExitSuccess
}
