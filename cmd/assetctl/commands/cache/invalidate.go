package cache

import (
	"errors"
	"fmt"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/playforge/assetloader/pkg/apiclient"
	"github.com/spf13/cobra"
)

var invalidateForce bool

var invalidateCmd = &cobra.Command{
	Use:   "invalidate KEY",
	Short: "Remove one cached asset",
	Long: `Remove a single asset from the service's cache.

The next request for the key will load it from the bundle again. Useful
after replacing an asset in a bundle that is not being watched.

Examples:
  # Invalidate a cached texture
  assetctl cache invalidate textures/hero.png

  # Invalidate without prompting
  assetctl cache invalidate textures/hero.png --force`,
	Args: cobra.ExactArgs(1),
	RunE: runInvalidate,
}

func init() {
	invalidateCmd.Flags().BoolVarP(&invalidateForce, "force", "f", false, "Skip confirmation prompt")
}

func runInvalidate(cmd *cobra.Command, args []string) error {
	key := args[0]

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	return cmdutil.RunWithConfirmation(fmt.Sprintf("Invalidate cached asset '%s'?", key), invalidateForce, func() error {
		if err := client.Invalidate(cmd.Context(), key); err != nil {
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) && apiErr.IsNotFound() {
				return fmt.Errorf("asset %q is not cached", key)
			}
			return err
		}
		cmdutil.PrintSuccess(fmt.Sprintf("Invalidated '%s'", key))
		return nil
	})
}
