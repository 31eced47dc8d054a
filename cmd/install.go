package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/builtins"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/utils"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install editable copies of the built-in scripts",
	Long: "Install editable copies of the built-in scripts into the user scripts\n" +
		"directory. Existing files are kept unless --force is given.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")

		env, err := openEnv(false)
		if err != nil {
			return err
		}
		defer env.close()

		dir, err := userScriptsDir(env.settings)
		if err != nil {
			return err
		}

		if force && !yes {
			if !utils.Confirm(fmt.Sprintf("Overwrite edited scripts in %s?", dir)) {
				fmt.Println("aborted")
				return nil
			}
		}

		written, err := builtins.Install(dir, force)
		if err != nil {
			return err
		}
		if len(written) == 0 {
			fmt.Println("all built-in scripts already installed")
			return nil
		}
		for _, path := range written {
			fmt.Printf("installed %s\n", path)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().Bool("force", false, "Overwrite existing script files")
	installCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(installCmd)
}
