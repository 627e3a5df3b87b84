package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blueql-db/blueql/config"
)

var (
	rootCmd = &cobra.Command{
		Use:          "blueql",
		Short:        "blueql",
		SilenceUsage: true,
		Long:         `Developer tooling for the BlueQL query pipeline and SDSS v1 files: tokenize and compile queries, inspect file headers, and poke at a query interactively.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	logLevel   string
	configPath string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "blueql.yaml", "path to the host settings file")
	return rootCmd.Execute()
}

// bootstrapConfig loads the host settings, creating them with defaults
// on first use, and bumps the persisted startup counter. The interactive
// REPL calls it at session start.
func bootstrapConfig() (config.Config, error) {
	return config.Bootstrap(configPath)
}

func init() {
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(replCmd)
}
