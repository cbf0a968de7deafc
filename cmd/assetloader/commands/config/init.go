package config

import (
	"fmt"
	"os"

	"github.com/playforge/assetloader/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with defaults",
	Long: `Create an assetloader configuration file populated with defaults.

By default, the configuration file is created at
$XDG_CONFIG_HOME/assetloader/config.yaml. Use --config to specify a
custom path.

Examples:
  # Initialize with default location
  assetloader config init

  # Initialize with custom path
  assetloader config init --config /etc/assetloader/config.yaml

  # Force overwrite existing config
  assetloader config init --force`,
	RunE: runConfigInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
	}

	if err := config.SaveConfig(config.GetDefaultConfig(), configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point bundle.path at your asset bundle")
	fmt.Println("  2. Start the server with: assetloader serve")
	fmt.Printf("  3. Or specify custom config: assetloader serve --config %s\n", configPath)

	return nil
}
