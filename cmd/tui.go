package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/tui"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive scratchpad",
	Long: "Open the interactive scratchpad. Scripts edited on disk while the\n" +
		"scratchpad is open are picked up automatically.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := openEnv(true)
		if err != nil {
			return err
		}
		defer env.close()

		scriptsDir, err := userScriptsDir(env.settings)
		if err != nil {
			return err
		}
		w, err := watcher.New(scriptsDir, env.registry, env.runner, env.log)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		p := tui.NewProgram(env.registry, env.engine)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
