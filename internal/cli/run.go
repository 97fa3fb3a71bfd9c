package cli

import (
	"github.com/spf13/cobra"

	"trafficgen/internal/modes"
)

// newRunCmd creates the command that starts the generator itself
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the traffic generator",
		Long: `Start the traffic generator.

Rotates the configured adapter to a spoofed identity, then runs the
virtual browsing users and the rotation schedule until interrupted.
The adapter's original configuration is restored on exit.

Examples:
  # Run with the default configuration search path
  trafficgen run

  # Run with an explicit configuration file
  trafficgen run --config /etc/trafficgen/trafficgen-config.yml`,
		RunE: runGenerator,
	}

	return cmd
}

func runGenerator(cmd *cobra.Command, args []string) error {
	return modes.RunGenerator(cfg)
}
