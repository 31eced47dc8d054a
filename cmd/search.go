package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search scripts by name, identifier or tag",
	Long:  "Fuzzy-search scripts by name, identifier or tag. Example:\n  boop-gtk search b64",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(false)
		if err != nil {
			return err
		}
		defer env.close()

		query := strings.Join(args, " ")
		for _, d := range env.registry.Search(query) {
			fmt.Printf("- %s (%s)\n", d.Name, d.Identifier)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
