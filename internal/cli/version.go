package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trafficgen/pkg/version"
)

// newVersionCmd creates the command that prints build information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(version.GetLongVersion())
		},
	}
}
