package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/engine"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a script over text",
	Long: "Run a script over text. Reads stdin unless --in or --clipboard is given. Examples:\n" +
		"  echo 'hello world' | boop-gtk run uppercase\n" +
		"  boop-gtk run format-json --in data.json\n" +
		"  boop-gtk run uppercase --clipboard",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, _ := cmd.Flags().GetString("in")
		outFile, _ := cmd.Flags().GetString("out")
		selSpec, _ := cmd.Flags().GetString("selection")
		useClipboard, _ := cmd.Flags().GetBool("clipboard")

		env, err := openEnv(true)
		if err != nil {
			return err
		}
		defer env.close()

		text, err := readInput(inFile, useClipboard)
		if err != nil {
			return err
		}
		sel, err := parseSelection(selSpec, len(text))
		if err != nil {
			return err
		}

		out, err := env.engine.Transform(context.Background(), engine.Request{
			Identifier: args[0],
			FullText:   text,
			Selection:  sel,
		})
		printNotifications(out.Result.Notifications)
		if err != nil {
			return err
		}

		return writeOutput(out.NewText, outFile, useClipboard)
	},
}

func readInput(inFile string, useClipboard bool) (string, error) {
	if useClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	}
	if inFile != "" {
		data, err := os.ReadFile(inFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func writeOutput(text, outFile string, useClipboard bool) error {
	if useClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
		return nil
	}
	if outFile != "" {
		return os.WriteFile(outFile, []byte(text), 0o644)
	}
	_, err := fmt.Print(text)
	return err
}

// parseSelection parses "start:end" byte offsets into a range.
func parseSelection(spec string, n int) (scripting.Range, error) {
	if spec == "" {
		return scripting.Range{}, nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return scripting.Range{}, fmt.Errorf("invalid selection %q, want start:end", spec)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return scripting.Range{}, fmt.Errorf("invalid selection start %q", parts[0])
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return scripting.Range{}, fmt.Errorf("invalid selection end %q", parts[1])
	}
	if start < 0 || end < start || end > n {
		return scripting.Range{}, fmt.Errorf("selection %q out of bounds for %d bytes", spec, n)
	}
	return scripting.Range{Start: start, End: end}, nil
}

// printNotifications writes script notifications to stderr so stdout stays
// clean transformed text.
func printNotifications(notes []scripting.Notification) {
	for _, n := range notes {
		prefix := "info"
		if n.Severity == scripting.SeverityError {
			prefix = "error"
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, n.Message)
	}
}

func init() {
	runCmd.Flags().String("in", "", "Read input from a file instead of stdin")
	runCmd.Flags().String("out", "", "Write output to a file instead of stdout")
	runCmd.Flags().String("selection", "", "Apply the script to a start:end byte range")
	runCmd.Flags().Bool("clipboard", false, "Read input from and write output to the system clipboard")
	rootCmd.AddCommand(runCmd)
}
