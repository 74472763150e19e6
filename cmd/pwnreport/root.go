// Package main provides the entry point for the pwnreport CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pwnreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwnreport",
		Short: "Check email addresses against the haveibeenpwned.com breach database",
		Long: `pwnreport extracts email addresses from any text file and checks each one
against the haveibeenpwned.com API, producing a report of which accounts
appear in which data breaches.

An API key from https://haveibeenpwned.com/API/Key is required. Provide it
with --apikey, the HIBP_API_KEY environment variable, or a .pwnreport
configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
