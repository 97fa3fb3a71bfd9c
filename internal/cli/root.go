// Package cli implements the trafficgen command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trafficgen/pkg/config"
	"trafficgen/pkg/logger"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "trafficgen",
	Short: "Traffic generator for training ranges",
	Long: "trafficgen keeps an isolated network looking lived-in: it rotates the\n" +
		"machine's network identity on a schedule and runs simulated users that\n" +
		"browse the configured sites.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// version and adapters work without a configuration file
		if cmd.Name() != "run" {
			return
		}

		if configPath != "" {
			os.Setenv("TRAFFICGEN_CONFIG_PATH", configPath)
		}

		loaded, source, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded

		if level, err := logger.ParseLevel(cfg.Logging.Level); err == nil {
			logger.SetLevel(level)
		}
		logger.Debug("configuration loaded", "source", source)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file (searches common locations if not specified)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newAdaptersCmd())
	rootCmd.AddCommand(newVersionCmd())
}
