// Command millet is the cobra-based CLI front end for the analyzer: it
// wires internal/driver's Analysis façade to internal/diagfmt's terminal,
// JSON, and msgpack renderers, grounded on the teacher's cmd/surge tree
// (main.go's root command wiring, diagnose.go's flag-reading and
// format-dispatch pattern).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "millet",
	Short: "Standard ML static analyzer",
	Long:  `millet lexes, parses, lowers, and statically elaborates Standard ML sources grouped by .cm/.mlb build descriptions.`,
}

func main() {
	rootCmd.Version = "0.1.0"

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(explainCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted but not read by any subcommand")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to print (0 = unlimited)")
	rootCmd.PersistentFlags().Int("context", 2, "lines of source context around each diagnostic")

	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func resolveColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to read color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(out), nil
	}
}
