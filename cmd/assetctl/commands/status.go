package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/playforge/assetloader/cmd/assetctl/cmdutil"
	"github.com/playforge/assetloader/internal/cli/output"
	"github.com/playforge/assetloader/internal/cli/timeutil"
	"github.com/playforge/assetloader/pkg/apiclient"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service status",
	Long: `Display the status of the connected assetloader service.

This command checks the health and readiness endpoints and displays
status, uptime and service information.

Examples:
  # Check status of the default server
  assetctl status

  # Check a specific server
  assetctl status --server http://assets.internal:8080

  # Output as JSON
  assetctl status -o json`,
	RunE: runStatus,
}

// ServerStatus represents the service status for display.
type ServerStatus struct {
	Server    string `json:"server" yaml:"server"`
	Status    string `json:"status" yaml:"status"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	Ready     bool   `json:"ready" yaml:"ready"`
	Service   string `json:"service,omitempty" yaml:"service,omitempty"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	status := ServerStatus{
		Server: cmdutil.Flags.ServerURL,
		Status: "unreachable",
	}

	info, err := client.GetHealth(ctx)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			status.Status = "unhealthy"
			status.Error = apiErr.Message
		} else {
			status.Error = err.Error()
		}
	} else {
		status.Status = "healthy"
		status.Healthy = true
		status.Service = info.Service
		status.StartedAt = info.StartedAt
		status.Uptime = info.Uptime
		status.Ready = client.Ready(ctx) == nil
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status ServerStatus) {
	fmt.Println()
	fmt.Println("AssetLoader Service Status")
	fmt.Println("==========================")
	fmt.Println()
	fmt.Printf("  Server:     %s\n", status.Server)

	if status.Healthy {
		fmt.Printf("  Status:     \033[32m● %s\033[0m\n", status.Status)
	} else if status.Status == "unreachable" {
		fmt.Printf("  Status:     \033[31m○ %s\033[0m\n", status.Status)
	} else {
		fmt.Printf("  Status:     \033[33m● %s\033[0m\n", status.Status)
	}

	if status.Service != "" {
		fmt.Printf("  Service:    %s\n", status.Service)
	}
	if status.StartedAt != "" {
		fmt.Printf("  Started:    %s\n", timeutil.FormatTime(status.StartedAt))
	}
	if status.Uptime != "" {
		fmt.Printf("  Uptime:     %s\n", timeutil.FormatUptime(status.Uptime))
	}
	if status.Healthy {
		fmt.Printf("  Ready:      %s\n", cmdutil.BoolToYesNo(status.Ready))
	}
	if status.Error != "" {
		fmt.Printf("  Error:      %s\n", status.Error)
	}
	fmt.Println()
}
