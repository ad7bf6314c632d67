// ABOUTME: Profile commands for the faris CLI
// ABOUTME: Shows and edits the company profile that AI drafting writes from

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the company profile",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runProfile)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit the company profile",
	Long: `Edit the company profile. Only the flags you pass are changed:

  faris profile set --company-name "Acme" --tone friendly
  faris profile set --pain-point "slow onboarding" --pain-point "manual follow-up"`,
	Run: func(cmd *cobra.Command, args []string) {
		update := profileUpdateFromFlags(cmd.Flags())
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runProfileSet(ctx, e, update)
		})
	},
}

// profileTextFlags maps flag names to the update field they set
var profileTextFlags = []struct {
	name  string
	usage string
	field func(*client.ProfileUpdate) **string
}{
	{"company-name", "Company name", func(u *client.ProfileUpdate) **string { return &u.CompanyName }},
	{"company-name-ar", "Company name in Arabic", func(u *client.ProfileUpdate) **string { return &u.CompanyNameAr }},
	{"industry", "Industry", func(u *client.ProfileUpdate) **string { return &u.Industry }},
	{"website", "Website URL", func(u *client.ProfileUpdate) **string { return &u.Website }},
	{"value-proposition", "Value proposition", func(u *client.ProfileUpdate) **string { return &u.ValueProposition }},
	{"value-proposition-ar", "Value proposition in Arabic", func(u *client.ProfileUpdate) **string { return &u.ValuePropositionAr }},
	{"target-audience", "Who you sell to", func(u *client.ProfileUpdate) **string { return &u.TargetAudience }},
	{"tone", "Message tone (" + strings.Join(client.Tones, ", ") + ")", func(u *client.ProfileUpdate) **string { return &u.Tone }},
	{"language", "Message language (" + strings.Join(client.ProfileLanguages, ", ") + ")", func(u *client.ProfileUpdate) **string { return &u.Language }},
}

func init() {
	addProfileFlags(profileSetCmd.Flags())
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func addProfileFlags(flags *pflag.FlagSet) {
	for _, f := range profileTextFlags {
		flags.String(f.name, "", f.usage)
	}
	flags.StringSlice("pain-point", nil, "Customer pain point (repeatable, replaces the list)")
	flags.StringSlice("differentiator", nil, "What sets you apart (repeatable, replaces the list)")
}

// profileUpdateFromFlags builds an update from the flags that were passed
func profileUpdateFromFlags(flags *pflag.FlagSet) client.ProfileUpdate {
	var update client.ProfileUpdate
	for _, f := range profileTextFlags {
		if !flags.Changed(f.name) {
			continue
		}
		value, _ := flags.GetString(f.name)
		*f.field(&update) = &value
	}
	if flags.Changed("pain-point") {
		update.PainPoints, _ = flags.GetStringSlice("pain-point")
	}
	if flags.Changed("differentiator") {
		update.Differentiators, _ = flags.GetStringSlice("differentiator")
	}
	return update
}

// runProfile prints the company profile and returns exit code
func runProfile(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	profile, err := e.client.GetProfile(ctx)
	if err != nil {
		return e.fail("Failed to load profile", err)
	}
	return e.printProfile(profile)
}

// runProfileSet applies update to the company profile and returns exit code
func runProfileSet(ctx context.Context, e *env, update client.ProfileUpdate) int {
	if update.Empty() {
		return e.fail("Invalid update", fmt.Errorf("pass at least one field to change"))
	}
	if err := update.Validate(); err != nil {
		return e.fail("Invalid update", err)
	}
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	profile, err := e.client.UpdateProfile(ctx, update)
	if err != nil {
		return e.fail("Failed to update profile", err)
	}
	if !e.printer.JSONMode() {
		e.printer.Success("Profile updated")
	}
	return e.printProfile(profile)
}

func (e *env) printProfile(profile *client.CompanyProfile) int {
	if e.printer.JSONMode() {
		if err := e.printer.JSON(profile); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	fmt.Fprintln(e.printer.Out(), formatProfileHuman(profile))
	return output.ExitSuccess
}

// formatProfileHuman formats a profile for human readability, skipping empty fields
func formatProfileHuman(p *client.CompanyProfile) string {
	fields := [][2]string{
		{"Company", p.CompanyName},
		{"", p.CompanyNameAr},
		{"Industry", p.Industry},
		{"Website", p.Website},
		{"Pitch", p.ValueProposition},
		{"", p.ValuePropositionAr},
		{"Audience", p.TargetAudience},
		{"Pains", strings.Join(p.PainPoints, "; ")},
		{"Edge", strings.Join(p.Differentiators, "; ")},
		{"Tone", p.Tone},
		{"Language", p.Language},
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
