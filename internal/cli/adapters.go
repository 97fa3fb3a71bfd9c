package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trafficgen/internal/trafficgen/network"
	"trafficgen/pkg/platform"
)

// newAdaptersCmd creates the command that lists usable rotation targets
func newAdaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "List usable network adapters",
		Long: `List the network adapters the generator can rotate.

Loopback, bridge and virtual interfaces are excluded.`,
		RunE: runAdapters,
	}

	return cmd
}

func runAdapters(cmd *cobra.Command, args []string) error {
	manager := network.NewManager(platform.NewPlatform())
	adapters, err := manager.ListAdapters()
	if err != nil {
		return fmt.Errorf("failed to list adapters: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMAC\tSTATE")
	for _, a := range adapters {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, a.HardwareAddr, a.State)
	}
	return w.Flush()
}
