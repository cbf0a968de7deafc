package cache

import (
	"fmt"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached asset",
	Long: `Remove every asset from the service's cache.

Subsequent requests will load from the bundle again. In-flight loads are
not affected.

Examples:
  # Clear the cache with confirmation
  assetctl cache clear

  # Clear without prompting
  assetctl cache clear --force`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	return cmdutil.RunWithConfirmation("Remove every cached asset?", clearForce, func() error {
		removed, err := client.ClearCache(cmd.Context())
		if err != nil {
			return err
		}
		cmdutil.PrintSuccess(fmt.Sprintf("Removed %d cached assets", removed))
		return nil
	})
}
