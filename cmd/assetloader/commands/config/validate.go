package config

import (
	"fmt"
	"os"

	"github.com/playforge/assetloader/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the assetloader configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  assetloader config validate

  # Validate specific config file
  assetloader config validate --config /etc/assetloader/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	// Load and validate configuration
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional checks beyond struct validation
	var warnings []string

	if _, err := os.Stat(cfg.Bundle.Path); err != nil {
		warnings = append(warnings, fmt.Sprintf("Bundle path %q does not exist", cfg.Bundle.Path))
	}
	if cfg.Cache.MaxSize == 0 {
		warnings = append(warnings, "Cache size cap disabled - memory use is unbounded")
	}
	if cfg.Bundle.Watch && cfg.Bundle.Format == "badger" {
		warnings = append(warnings, "Bundle watching only applies to dir bundles")
	}
	if !cfg.API.Enabled && !cfg.Metrics.Enabled {
		warnings = append(warnings, "Ops API and metrics both disabled - the service cannot be observed remotely")
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}
