package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scripts",
	Long:  "List available scripts. Example:\n  boop-gtk list --tag json",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := openEnv(false)
		if err != nil {
			return err
		}
		defer env.close()

		tagFilter, _ := cmd.Flags().GetString("tag")
		scripts := env.registry.All()
		for _, d := range scripts {
			if tagFilter != "" && !hasTag(d, tagFilter) {
				continue
			}
			line := fmt.Sprintf("- %s (%s)", d.Name, d.Identifier)
			if d.Shortcut != "" {
				line += "  [" + d.Shortcut + "]"
			}
			fmt.Println(line)
		}
		if len(env.report.Skipped) > 0 {
			fmt.Println(env.report.Summary())
		}
		return nil
	},
}

func hasTag(d *registry.Descriptor, tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func init() {
	listCmd.Flags().String("tag", "", "Only list scripts carrying this tag")
	rootCmd.AddCommand(listCmd)
}
