// ABOUTME: Entry point for the faris CLI
// ABOUTME: Terminal client for the Faris AI lead-generation platform

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Moshe-ship/faris-ai-saas/cmd"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.NewPrinter(output.PrinterOptions{Colors: true}).FormatError(cliErr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(output.ExitCode(err))
	}
}
