package project

import (
	"path"
	"sort"
	"strings"

	"millet/internal/config"
)

const configFileName = "millet.toml"

// FindConfig walks up from startDir looking for millet.toml, mirroring the
// teacher's own FindSurgeToml walk-up-to-root loop but routed through the
// injected FileSystem instead of os.Stat/filepath.Dir directly (spec.md §6:
// "the core never touches the OS directly").
func FindConfig(fsys FileSystem, startDir string) (configPath string, ok bool, err error) {
	dir, err := fsys.Canonicalize(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := path.Join(dir, configFileName)
		if fsys.IsFile(candidate) {
			return candidate, true, nil
		}
		parent := path.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadConfig reads and parses configPath, translating config.Load's errors
// into this package's short-circuiting RootError taxonomy.
func LoadConfig(fsys FileSystem, configPath string) (config.Config, error) {
	content, err := fsys.ReadToString(configPath)
	if err != nil {
		return config.Config{}, errCouldNotParseConfig(err.Error())
	}
	cfg, err := config.Load(content)
	if err != nil {
		if strings.Contains(err.Error(), "invalid version") {
			return config.Config{}, errInvalidConfigVersion(err.Error())
		}
		return config.Config{}, errCouldNotParseConfig(err.Error())
	}
	return cfg, nil
}

// isGroupPath reports whether path names a .cm or .mlb file by extension.
func isGroupPath(p string) bool {
	ext := path.Ext(p)
	return ext == ".cm" || ext == ".mlb"
}

// ResolveRootGroup locates the root group file under rootDir, per spec.md
// §4.2's three discovery strategies in priority order: (a) a config file
// declaring workspace.root, (b) that value evaluated as a glob, (c) the
// single .cm/.mlb file directly in rootDir when no config declares one.
func ResolveRootGroup(fsys FileSystem, rootDir string, cfg config.Config, hasConfig bool) (string, error) {
	root, err := fsys.Canonicalize(rootDir)
	if err != nil {
		return "", err
	}

	if hasConfig && len(cfg.Workspace.Members) > 0 {
		return "", errMembersUnimplemented()
	}

	if hasConfig && cfg.Workspace.RootSet {
		pattern := cfg.Workspace.Root
		if !path.IsAbs(pattern) {
			pattern = path.Join(root, pattern)
		}
		matches, err := fsys.Glob(pattern)
		if err != nil {
			return "", errGlobPattern(pattern, err.Error())
		}
		switch len(matches) {
		case 0:
			return "", errEmptyGlob(pattern)
		case 1:
			if !isGroupPath(matches[0]) {
				return "", errNotGroup(matches[0])
			}
			return matches[0], nil
		default:
			sorted := append([]string(nil), matches...)
			sort.Strings(sorted)
			return "", errMultipleRoots(sorted[0], sorted[1])
		}
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return "", err
	}
	var candidates []string
	for _, name := range entries {
		if isGroupPath(name) {
			candidates = append(candidates, path.Join(root, name))
		}
	}
	sort.Strings(candidates)
	switch len(candidates) {
	case 0:
		return "", errNoRoot(root)
	case 1:
		return candidates[0], nil
	default:
		return "", errMultipleRoots(candidates[0], candidates[1])
	}
}
