package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"millet/internal/diag"
	"millet/internal/diagfmt"
	"millet/internal/driver"
	"millet/internal/paths"
	"millet/internal/project"
	"millet/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <directory>",
	Short: "Elaborate a group's files and report diagnostics",
	Long:  `check resolves a workspace's .cm/.mlb group graph, lexes/parses/lowers/elaborates every member in dependency order, and prints the resulting diagnostics.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in pretty output")
	checkCmd.Flags().Bool("summary", false, "print a boxed error/warning/note summary after pretty output")
	checkCmd.Flags().Int("jobs", 0, "max parallel group-file reads (0 = number of CPUs)")
	checkCmd.Flags().Bool("watch", false, "show an interactive spinner while analyzing (requires a terminal)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	rootDir := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	contextLines, err := cmd.Root().PersistentFlags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fsys := project.OSFileSystem{}
	abs, err := fsys.Canonicalize(rootDir)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", rootDir, err)
	}

	a := driver.NewAnalysis(fsys, paths.CanonicalPath(abs), jobs)

	var (
		results driver.Results
		topErrs *diag.Bag
		runErr  error
	)
	run := func() error {
		results, topErrs, runErr = a.GetMany(cmd.Context(), abs)
		return runErr
	}

	useColor, err := resolveColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	if watch && isTerminal(os.Stdout) {
		if err := ui.RunWithSpinner(fmt.Sprintf("analyzing %s", abs), run); err != nil {
			return err
		}
	} else if err := run(); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("analysis failed: %w", runErr)
	}

	ignore, override := diagnosticOverrides(cmd.Context(), fsys, abs)

	merged := diag.NewBag()
	merged.Merge(topErrs)
	for _, af := range results {
		merged.Merge(af.AllErrors())
	}
	merged.Filter(ignore, override)
	merged.Sort()
	merged.Truncate(maxDiagnostics)

	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   contextLines,
			PathMode:  diagfmt.PathModeAuto,
			BaseDir:   abs,
			ShowNotes: withNotes,
			Summary:   summary,
		}
		diagfmt.Pretty(os.Stdout, merged, a.FileSet, opts)
	case "json", "msgpack":
		byPath := perPathBags(a, results, topErrs, ignore, override)
		report := diagfmt.BuildReport(a.FileSet, byPath)
		if format == "json" {
			err = diagfmt.JSON(os.Stdout, report)
		} else {
			err = diagfmt.Msgpack(os.Stdout, report)
		}
		if err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if merged.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// perPathBags groups each analyzed file's errors (plus a synthetic entry
// for rootDir-level diagnostics) by display path, for the json/msgpack
// encoders which key on path rather than paths.Id.
func perPathBags(a *driver.Analysis, results driver.Results, topErrs *diag.Bag, ignore map[diag.Code]bool, override map[diag.Code]diag.Severity) map[string]*diag.Bag {
	out := make(map[string]*diag.Bag, len(results)+1)
	for _, af := range results {
		p := string(a.Store.GetPath(af.Path))
		bag := af.AllErrors()
		bag.Filter(ignore, override)
		out[p] = bag
	}
	if topErrs.Len() > 0 {
		bag := diag.NewBag()
		bag.Merge(topErrs)
		bag.Filter(ignore, override)
		out[string(a.Store.Root())] = bag
	}
	return out
}

// diagnosticOverrides loads millet.toml (if any) under rootDir and
// flattens its `[diagnostics]` table into the ignore/override maps
// diag.Bag.Filter expects.
func diagnosticOverrides(_ context.Context, fsys project.FileSystem, rootDir string) (map[diag.Code]bool, map[diag.Code]diag.Severity) {
	configPath, ok, err := project.FindConfig(fsys, rootDir)
	if err != nil || !ok {
		return nil, nil
	}
	cfg, err := project.LoadConfig(fsys, configPath)
	if err != nil {
		return nil, nil
	}
	ignore := make(map[diag.Code]bool, len(cfg.Diagnostics))
	override := make(map[diag.Code]diag.Severity, len(cfg.Diagnostics))
	for code, ov := range cfg.Diagnostics {
		if ov.Ignore {
			ignore[code] = true
			continue
		}
		override[code] = ov.Sev
	}
	return ignore, override
}
