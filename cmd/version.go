package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("boop-gtk %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
