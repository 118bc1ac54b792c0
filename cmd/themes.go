package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/roleta/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme presets",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	names := styles.PresetNames()
	maxLen := 0
	for _, n := range names {
		maxLen = max(maxLen, len(n))
	}

	w := cmd.OutOrStdout()
	for _, n := range names {
		marker := " "
		if n == cfg.Theme.Preset || (cfg.Theme.Preset == "" && n == "default") {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %-*s  %s\n", marker, maxLen, n, styles.Presets[n].Description); err != nil {
			return err
		}
	}
	return nil
}
