// Package cache implements cache administration subcommands.
package cache

import (
	"github.com/spf13/cobra"
)

// Cmd is the cache subcommand.
var Cmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache administration",
	Long: `Administer the service's asset cache.

Subcommands:
  clear       Remove every cached asset
  invalidate  Remove one cached asset`,
}

func init() {
	Cmd.AddCommand(clearCmd)
	Cmd.AddCommand(invalidateCmd)
}
