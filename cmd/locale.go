// ABOUTME: Locale commands for the faris CLI
// ABOUTME: Shows and switches the display language

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/menu"
)

var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show the display language",
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(_ context.Context, e *env) int {
			return runLocaleShow(e)
		})
	},
}

var localeSetCmd = &cobra.Command{
	Use:   "set [ar|en]",
	Short: "Switch the display language",
	Long: `Switch the display language. Arabic (ar) is the default and renders
right-to-left. Without an argument a menu is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithEnv(cmd, func(_ context.Context, e *env) int {
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else if interactive() {
				tag, err := menu.New(e.locale.T("common.language"), e.locale.Current()).Run()
				if err != nil {
					return e.fail("Language selection cancelled", err)
				}
				value = tag.String()
			} else {
				return e.fail("Missing language", fmt.Errorf("pass ar or en"))
			}
			return runLocaleSet(e, value)
		})
	},
}

func init() {
	localeCmd.AddCommand(localeSetCmd)
	rootCmd.AddCommand(localeCmd)
}

type localeReport struct {
	Language  string `json:"language"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

func reportFor(tag locale.Tag) localeReport {
	return localeReport{Language: tag.String(), Name: tag.Name(), Direction: string(tag.Direction())}
}

// runLocaleShow prints the active language and returns exit code
func runLocaleShow(e *env) int {
	tag := e.locale.Current()
	if e.printer.JSONMode() {
		if err := e.printer.JSON(reportFor(tag)); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Print("%s (%s, %s)", tag.Name(), tag, tag.Direction())
	return output.ExitSuccess
}

// runLocaleSet switches and persists the language and returns exit code
func runLocaleSet(e *env, value string) int {
	tag, err := locale.Parse(value)
	if err != nil {
		return e.fail("Unsupported language", err)
	}
	if err := e.locale.SetLocale(tag); err != nil {
		return e.fail("Failed to switch language", err)
	}

	if e.printer.JSONMode() {
		if err := e.printer.JSON(reportFor(tag)); err != nil {
			return e.fail("Failed to write output", err)
		}
		return output.ExitSuccess
	}
	e.printer.Success("%s: %s", e.locale.T("common.language"), tag.Name())
	return output.ExitSuccess
}
