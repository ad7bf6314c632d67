// ABOUTME: AI commands for the faris CLI
// ABOUTME: Drafts outreach messages for a lead on a chosen channel

package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var messageRequest client.GenerateMessageRequest

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI drafting tools",
}

var aiMessageCmd = &cobra.Command{
	Use:   "message <lead-id>",
	Short: "Draft an outreach message for a lead",
	Long: `Draft an outreach message written from your company profile:

  faris ai message 3f2a --channel linkedin
  faris ai message 3f2a --context "Met at LEAP, interested in the Riyadh pilot"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := messageRequest
		req.LeadID = args[0]
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runAIMessage(ctx, e, req)
		})
	},
}

func init() {
	aiMessageCmd.Flags().StringVar(&messageRequest.Channel, "channel", "email", "Channel ("+strings.Join(client.Channels, ", ")+")")
	aiMessageCmd.Flags().StringVar(&messageRequest.CustomContext, "context", "", "Extra context for the draft")
	aiCmd.AddCommand(aiMessageCmd)
	rootCmd.AddCommand(aiCmd)
}

// runAIMessage drafts a message and returns exit code
func runAIMessage(ctx context.Context, e *env, req client.GenerateMessageRequest) int {
	if !slices.Contains(client.Channels, req.Channel) {
		return e.fail("Invalid channel", fmt.Errorf("--channel must be one of %s", strings.Join(client.Channels, ", ")))
	}
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	msg, err := e.client.GenerateMessage(ctx, req)
	if err != nil {
		return e.fail("Failed to draft message", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(msg); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	if msg.Subject != "" {
		e.printer.Print("%s %s", e.printer.Bold("Subject:"), msg.Subject)
		e.printer.Print("")
	}
	e.printer.Print("%s", msg.Body)
	e.printer.Print("")
	e.printer.Print("%s", e.printer.Dim(fmt.Sprintf("%d tokens", msg.TokensUsed)))
	return output.ExitSuccess
}
