package commands

import (
	"os"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/playforge/assetloader/internal/cli/output"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List cached asset keys",
	Long: `List the asset keys currently resident in the service's cache.

Examples:
  # List cached keys
  assetctl keys

  # Output as JSON
  assetctl keys -o json`,
	RunE: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	result, err := client.GetKeys(cmd.Context())
	if err != nil {
		return err
	}

	table := output.NewTableData("Key")
	for _, key := range result.Keys {
		table.AddRow(key)
	}

	return cmdutil.PrintOutput(os.Stdout, result, result.Count == 0, "No assets cached.", table)
}
