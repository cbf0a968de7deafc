package commands

import (
	"fmt"
	"os"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/playforge/assetloader/internal/cli/output"
	"github.com/playforge/assetloader/pkg/loader"
	"github.com/spf13/cobra"
)

var (
	warmPriority string
	warmCategory string
)

var warmCmd = &cobra.Command{
	Use:   "warm KEY...",
	Short: "Preload assets into the service's cache",
	Long: `Ask the service to load the given assets into its cache and wait
until the batch finishes.

Warming defaults to low priority so it never delays interactive loads;
use --priority to warm urgently needed assets ahead of the queue.

Examples:
  # Warm a level's assets ahead of time
  assetctl warm textures/level2/floor.png textures/level2/wall.png

  # Warm at high priority under a named category
  assetctl warm --priority high --category level-2 data/level2.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWarm,
}

func init() {
	warmCmd.Flags().StringVar(&warmPriority, "priority", "low", "Load priority (critical|high|medium|low)")
	warmCmd.Flags().StringVar(&warmCategory, "category", "warm", "Category tag recorded with the loads")
}

func runWarm(cmd *cobra.Command, args []string) error {
	if _, err := loader.ParsePriority(warmPriority); err != nil {
		return err
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	result, err := client.Warm(cmd.Context(), args, warmPriority, warmCategory)
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, result)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, result)
	default:
		if result.Failed > 0 {
			cmdutil.PrintWarning(fmt.Sprintf("Warmed %d of %d assets in %.1fms (%d failed)",
				result.Loaded, result.Requested, result.DurationMs, result.Failed))
		} else {
			cmdutil.PrintSuccess(fmt.Sprintf("Warmed %d assets in %.1fms",
				result.Loaded, result.DurationMs))
		}
		return nil
	}
}
