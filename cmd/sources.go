// ABOUTME: Sources commands for the faris CLI
// ABOUTME: Lists enabled data sources, browses the industry catalog and enables entries

package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources leads are collected from",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runSources)
	},
}

var sourcesIndustriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "Browse the catalog of industry sources",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, runIndustrySources)
	},
}

var sourcesEnableCmd = &cobra.Command{
	Use:   "enable <industry-source-id>",
	Short: "Enable a catalog source for your organization",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(ctx context.Context, e *env) int {
			return runSourceEnable(ctx, e, args[0])
		})
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesIndustriesCmd)
	sourcesCmd.AddCommand(sourcesEnableCmd)
	rootCmd.AddCommand(sourcesCmd)
}

// runSources lists enabled data sources and returns exit code
func runSources(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	sources, err := e.client.ListDataSources(ctx)
	if err != nil {
		return e.fail("Failed to list sources", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(sources); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	if len(sources) == 0 {
		e.printer.Info("No sources enabled. Run 'faris sources industries' to browse the catalog")
		return output.ExitSuccess
	}

	table := output.NewTable(e.printer.Out(), []string{"ID", "Name", "Type", "Leads", "Last Run"},
		e.locale.Direction() == locale.RTL)
	for _, s := range sources {
		state := "active"
		if !s.IsActive {
			state = "paused"
		}
		lastRun := s.LastScrapedAt
		if lastRun == "" {
			lastRun = "never"
		}
		if s.LastError != "" {
			state = "error"
		}
		table.AddRow(s.ID, e.printer.StatusBadge(state)+" "+s.Name, s.SourceType,
			strconv.Itoa(s.LeadsCount), lastRun)
	}
	if err := table.Render(); err != nil {
		return e.fail("Failed to render table", err)
	}
	return output.ExitSuccess
}

// runIndustrySources lists the industry source catalog and returns exit code
func runIndustrySources(ctx context.Context, e *env) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	catalog, err := e.client.ListIndustrySources(ctx)
	if err != nil {
		return e.fail("Failed to list industry sources", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(catalog); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}

	t := e.locale.T
	rtl := e.locale.Direction() == locale.RTL
	table := output.NewTable(e.printer.Out(), []string{"ID", t("leads.industry"), "Name", "Type", "Region"}, rtl)
	for _, s := range catalog {
		industry, name := s.Industry, s.Name
		if rtl && s.IndustryAr != "" {
			industry = s.IndustryAr
		}
		if rtl && s.NameAr != "" {
			name = s.NameAr
		}
		table.AddRow(s.ID, industry, name, s.SourceType, s.Region)
	}
	if err := table.Render(); err != nil {
		return e.fail("Failed to render table", err)
	}
	return output.ExitSuccess
}

// runSourceEnable enables a catalog source and returns exit code
func runSourceEnable(ctx context.Context, e *env, id string) int {
	if code := e.requireSession(ctx); code != output.ExitSuccess {
		return code
	}

	source, err := e.client.EnableIndustrySource(ctx, id)
	if err != nil {
		return e.fail("Failed to enable source", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(source); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Success("Enabled %s (%s)", source.Name, source.ID)
	return output.ExitSuccess
}
