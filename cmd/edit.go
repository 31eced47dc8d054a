package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/loader"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/utils"
)

var editCmd = &cobra.Command{
	Use:   "edit <script>",
	Short: "Edit a script in $EDITOR",
	Long: "Edit a script in $EDITOR. Editing a built-in script first copies it\n" +
		"into the user scripts directory; the copy shadows the built-in from then on.",
	Args: cobra.ExactArgs(1),
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

		scriptsDir, err := userScriptsDir(env.settings)
		if err != nil {
			return err
		}
		// Built-ins carry a bare file name, not a location on disk; a
		// same-named file in the working directory must not shadow them.
		path := d.Path
		if filepath.Dir(path) == "." || !fileExists(path) {
			// Built-in: materialize an editable copy.
			if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
				return err
			}
			path = filepath.Join(scriptsDir, d.Identifier+loader.Ext)
			if !fileExists(path) {
				if err := os.WriteFile(path, []byte(d.Source), 0o644); err != nil {
					return err
				}
				fmt.Printf("copied built-in script to %s\n", path)
			}
		}

		if err := utils.OpenEditor(path); err != nil {
			return err
		}

		// Reparse so header mistakes surface immediately instead of at the
		// next startup.
		src, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		if _, err := registry.Parse(src); err != nil {
			return fmt.Errorf("saved script is invalid and will be skipped on load: %w", err)
		}
		fmt.Println("script OK")
		return nil
	},
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func init() {
	rootCmd.AddCommand(editCmd)
}
