package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

var describeCmd = &cobra.Command{
	Use:   "describe <script>",
	Short: "Show a script's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(false)
		if err != nil {
			return err
		}
		defer env.close()

		d := env.registry.FindByIdentifier(args[0])
		if d == nil {
			return scripting.NewError(scripting.KindUnknownScript, args[0], "no script with this identifier", nil)
		}

		fmt.Printf("Name:        %s\n", d.Name)
		fmt.Printf("Identifier:  %s\n", d.Identifier)
		if d.Description != "" {
			fmt.Printf("Description: %s\n", d.Description)
		}
		if len(d.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(d.Tags, ", "))
		}
		if d.Shortcut != "" {
			fmt.Printf("Shortcut:    %s\n", d.Shortcut)
		}
		fmt.Printf("API:         %d\n", d.API)
		fmt.Printf("Path:        %s\n", d.Path)

		if showSource, _ := cmd.Flags().GetBool("source"); showSource {
			fmt.Println()
			fmt.Println(d.Source)
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().Bool("source", false, "Also print the script body")
	rootCmd.AddCommand(describeCmd)
}
