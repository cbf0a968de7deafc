// Package bundle implements asset bundle management subcommands.
package bundle

import (
	"github.com/spf13/cobra"
)

// Cmd is the bundle subcommand.
var Cmd = &cobra.Command{
	Use:   "bundle",
	Short: "Asset bundle management",
	Long: `Inspect and build asset bundles.

Subcommands:
  pack  Build a packed bundle from a directory tree
  ls    List the assets in a bundle`,
}

func init() {
	Cmd.AddCommand(packCmd)
	Cmd.AddCommand(lsCmd)
}
