package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"millet/internal/config"
	"millet/internal/paths"
	"millet/internal/project"
	"millet/internal/source"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <directory>",
	Short: "Print the resolved .cm/.mlb group dependency graph",
	Long:  `groups resolves the root group file under directory and lists every group it transitively depends on, sorted by path.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGroups,
}

func init() {
	groupsCmd.Flags().Int("jobs", 4, "max parallel group-file reads")
}

func runGroups(cmd *cobra.Command, args []string) error {
	rootDir := args[0]
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = 1
	}

	fsys := project.OSFileSystem{}
	abs, err := fsys.Canonicalize(rootDir)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", rootDir, err)
	}

	configPath, hasConfig, err := project.FindConfig(fsys, abs)
	if err != nil {
		return err
	}
	var cfg config.Config
	if hasConfig {
		cfg, err = project.LoadConfig(fsys, configPath)
		if err != nil {
			return err
		}
	}
	rootGroupPath, err := project.ResolveRootGroup(fsys, abs, cfg, hasConfig)
	if err != nil {
		return fmt.Errorf("failed to resolve root group: %w", err)
	}

	store := paths.NewStore(paths.CanonicalPath(abs))
	fset := source.NewFileSet()
	vars := flattenPathVars(cfg)

	graph, err := project.LoadGroup(cmd.Context(), fsys, fset, store, vars, rootGroupPath, jobs)
	if err != nil {
		return fmt.Errorf("failed to load group graph: %w", err)
	}

	ids := make([]paths.Id, 0, len(graph.Groups))
	for id := range graph.Groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return store.GetPath(ids[i]) < store.GetPath(ids[j]) })

	for _, id := range ids {
		grp := graph.Groups[id]
		fmt.Fprintf(os.Stdout, "%s (%s)\n", store.GetPath(id), grp.Kind)
		for _, dep := range grp.Dependencies {
			fmt.Fprintf(os.Stdout, "  depends on %s\n", store.GetPath(dep))
		}
		for _, m := range grp.Members {
			if m.Class == project.ClassCM {
				continue
			}
			fmt.Fprintf(os.Stdout, "  member %s\n", store.GetPath(m.Path))
		}
	}

	if graph.Errors.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// flattenPathVars mirrors internal/driver/facade.go's pathVarsFrom: only a
// literal `value` path-var kind resolves without filesystem context.
func flattenPathVars(cfg config.Config) project.PathVars {
	vars := make(project.PathVars, len(cfg.Workspace.PathVars))
	for name, entry := range cfg.Workspace.PathVars {
		if entry.Kind == config.PathVarValue {
			vars[name] = entry.Value
		}
	}
	return vars
}
