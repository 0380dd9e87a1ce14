package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"millet/internal/diag"
)

var explainCmd = &cobra.Command{
	Use:   "explain <code>",
	Short: "Look up a diagnostic code (e.g. M1415)",
	Long:  `explain parses a diagnostic code of the form M#### and prints its documentation URL.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	code, err := parseCode(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", code.String())
	if url, ok := code.DocURL(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", url)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  no documentation is known for this code")
	}
	return nil
}

// parseCode parses the "M%04d" form diag.Code.String() produces back into
// a diag.Code.
func parseCode(s string) (diag.Code, error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "M")
	n, err := strconv.ParseUint(trimmed, 10, 16)
	if err != nil {
		return diag.UnknownCode, fmt.Errorf("%q is not a diagnostic code of the form M####: %w", s, err)
	}
	return diag.Code(n), nil
}
