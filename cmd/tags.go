package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List script tags and how many scripts carry each",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := openEnv(false)
		if err != nil {
			return err
		}
		defer env.close()

		hist := env.registry.Tags()
		tags := make([]string, 0, len(hist))
		for tag := range hist {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("%-16s %d\n", tag, hist[tag])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
