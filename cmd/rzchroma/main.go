// Rzchroma is a control utility for Razer Chroma USB peripherals.
//
// It drives the RGB LED zones of supported devices (logo and scroll
// wheel) directly over USB, with an interactive wizard, one-shot set
// commands, and a local HTTP control server for scripting.
//
// Usage:
//
//	rzchroma [command] [flags]
//
// Running without arguments in a terminal launches the interactive
// wizard. See 'rzchroma --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anpep/rzchroma/internal/logging"
	"github.com/anpep/rzchroma/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rzchroma",
	Short: "Razer Chroma LED Control Utility",
	Long: `A standalone utility for controlling Razer Chroma USB peripherals.

Drives the RGB LED zones of supported devices directly over USB.
Provides an interactive wizard, one-shot set commands, and a local
HTTP control server for scripting.

If no command is specified and stdout is a terminal, the interactive
wizard launches automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when invoked interactively
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runWizard(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rzchroma %s (commit: %s)\n", version.Version, version.Commit)
	},
}
