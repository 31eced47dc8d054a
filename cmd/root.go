package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "boop-gtk",
	Short: "boop-gtk is a scriptable text-transform scratchpad",
	Long:  "boop-gtk runs small sandboxed scripts over text: pipe text through them on the command line or use the interactive scratchpad",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			_ = os.Setenv(config.EnvBoopDebug, "1")
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
