package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/initstring/pwnreport/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/pwnreport.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pwnreport configuration file",
		Long: `Initialize creates a new .pwnreport configuration file in the current
directory.

The generated file includes:
- A place for the API key, kept out of argv and shell history
- The sleep interval between API requests
- Documentation for all available options

Examples:
  # Create .pwnreport in current directory
  pwnreport init

  # Create config file at a specific path
  pwnreport init -o myconfig.yaml

  # Force overwrite existing file
  pwnreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/pwnreport.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// The file may hold the API key, so keep it owner-readable only.
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure settings such as:")
	fmt.Println("  - The haveibeenpwned.com API key")
	fmt.Println("  - The sleep interval between API requests")
	fmt.Println("  - The default report output path")

	return nil
}
