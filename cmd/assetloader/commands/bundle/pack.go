package bundle

import (
	"fmt"
	"os"

	"github.com/playforge/assetloader/internal/bytesize"
	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/spf13/cobra"
)

var packForce bool

var packCmd = &cobra.Command{
	Use:   "pack SRC DEST",
	Short: "Build a packed bundle from a directory tree",
	Long: `Build a packed badger bundle at DEST from the assets under SRC.

Every regular file under SRC becomes an asset keyed by its path relative
to SRC. The packed bundle is what production deployments should serve
from; plain directories are for development.

Examples:
  # Pack the working asset tree for distribution
  assetloader bundle pack ./assets ./assets.bundle

  # Rebuild over an existing packed bundle
  assetloader bundle pack ./assets ./assets.bundle --force`,
	Args: cobra.ExactArgs(2),
	RunE: runPack,
}

func init() {
	packCmd.Flags().BoolVar(&packForce, "force", false, "Overwrite an existing bundle at DEST")
}

func runPack(cmd *cobra.Command, args []string) error {
	src, dest := args[0], args[1]

	if entries, err := os.ReadDir(dest); err == nil && len(entries) > 0 {
		if !packForce {
			return fmt.Errorf("destination %s is not empty (use --force to overwrite)", dest)
		}
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("failed to clear destination: %w", err)
		}
	}

	result, err := bundle.Pack(cmd.Context(), src, dest)
	if err != nil {
		return err
	}

	fmt.Printf("Packed %d assets (%s) into %s\n", result.Assets, bytesize.Size(result.Bytes), dest)
	return nil
}
