package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent script runs",
	Long:  "Show recent script runs, newest first. Example:\n  boop-gtk history --limit 10",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		prune, _ := cmd.Flags().GetInt("prune")

		env, err := openEnv(true)
		if err != nil {
			return err
		}
		defer env.close()

		if prune > 0 {
			removed, err := env.store.Prune(prune)
			if err != nil {
				return err
			}
			fmt.Printf("pruned %d records\n", removed)
			return nil
		}

		records, err := env.store.List(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded yet")
			return nil
		}
		for _, inv := range records {
			printInvocation(inv)
		}
		return nil
	},
}

func printInvocation(inv history.Invocation) {
	when := inv.StartedAt.Local().Format(time.DateTime)
	if inv.Status == history.StatusOK {
		fmt.Printf("%s  %-20s ok      %s\n", when, inv.Script, inv.Duration.Round(time.Millisecond))
		return
	}
	fmt.Printf("%s  %-20s %s  %s\n", when, inv.Script, inv.ErrorKind, inv.Message)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 for all)")
	historyCmd.Flags().Int("prune", 0, "Delete all but the newest N records instead of listing")
	rootCmd.AddCommand(historyCmd)
}
