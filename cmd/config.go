package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/roleta/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after defaults, the config file and ROLETA_* environment overrides are applied.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	source := cfgPath
	if source == "" {
		source = "defaults (no config file)"
	}
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "# source: %s\n", source); err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
