package commands

import (
	"fmt"
	"os"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/playforge/assetloader/internal/bytesize"
	"github.com/playforge/assetloader/internal/cli/output"
	"github.com/playforge/assetloader/pkg/loader"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show loader statistics",
	Long: `Display request counters, cache occupancy and queue depths of the
connected assetloader service.

Examples:
  # Show stats
  assetctl stats

  # Output as JSON
  assetctl stats -o json`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	snap, err := client.GetStats(cmd.Context())
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, snap)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, snap)
	default:
		return printStatsTable(snap)
	}
}

func printStatsTable(snap *loader.StatsSnapshot) error {
	pairs := [][2]string{
		{"Initialized", cmdutil.BoolToYesNo(snap.IsInitialized)},
		{"Total requests", fmt.Sprintf("%d", snap.TotalRequests)},
		{"Hits", fmt.Sprintf("%d", snap.Hits)},
		{"Misses", fmt.Sprintf("%d", snap.Misses)},
		{"Failures", fmt.Sprintf("%d", snap.Failures)},
		{"Hit rate", fmt.Sprintf("%.1f%%", snap.HitRate*100)},
		{"Cache entries", fmt.Sprintf("%d", snap.CacheEntries)},
		{"Cache size", bytesize.Size(snap.CacheBytes).String()},
		{"In flight", fmt.Sprintf("%d", snap.InFlight)},
	}
	for _, p := range loader.Priorities() {
		tier := p.String()
		pairs = append(pairs, [2]string{
			fmt.Sprintf("Queue (%s)", tier),
			fmt.Sprintf("%d", snap.QueueDepths[tier]),
		})
	}
	return output.SimpleTable(os.Stdout, pairs)
}
