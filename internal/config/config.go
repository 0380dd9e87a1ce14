// Package config loads millet.toml (spec.md §6 "Config file"), grounded
// on the teacher's own project.LoadProjectModules/LoadModuleManifest use
// of github.com/BurntSushi/toml for a project manifest.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"millet/internal/diag"
)

// PathVarKind distinguishes how a workspace.path_vars entry resolves.
type PathVarKind uint8

const (
	// PathVarValue is a literal string substituted as-is.
	PathVarValue PathVarKind = iota
	// PathVarPath is resolved relative to the filesystem, per the host OS.
	PathVarPath
	// PathVarWorkspacePath is resolved relative to the workspace root.
	PathVarWorkspacePath
)

// PathVarEntry is one `workspace.path_vars` table value: `{value|path|
// workspace-path}` per spec.md §6.
type PathVarEntry struct {
	Kind  PathVarKind
	Value string
}

// DiagnosticOverride is one entry of the `diagnostics` map: a per-code
// severity override, or "ignore" to drop the code entirely.
type DiagnosticOverride struct {
	Ignore bool
	Sev    diag.Severity
}

// Workspace is the `[workspace]` table. Root and Members are mutually
// exclusive per spec.md §6; RootSet records whether root was actually
// present in the file, since an empty string is itself a valid glob in
// theory but an absent key is not the same as one set to "". There is no
// such flag for Members: an absent key and an empty list both leave it empty.
type Workspace struct {
	Root      string
	RootSet   bool
	Members   []string
	PathVars  map[string]PathVarEntry
}

// Config is the parsed, validated shape of millet.toml.
type Config struct {
	Version     int
	Workspace   Workspace
	Diagnostics map[diag.Code]DiagnosticOverride
}

// rawConfig mirrors millet.toml's on-disk shape for BurntSushi/toml to
// decode into, before this package's own validation and type-narrowing.
type rawConfig struct {
	Version   int `toml:"version"`
	Workspace struct {
		Root      string            `toml:"root"`
		Members   []string          `toml:"members"`
		PathVars  map[string]rawVar `toml:"path_vars"`
	} `toml:"workspace"`
	Diagnostics map[string]rawDiagOverride `toml:"diagnostics"`
}

// rawVar accepts exactly one of its three fields per spec.md §6's
// `{value|path|workspace-path}` union.
type rawVar struct {
	Value         *string `toml:"value"`
	Path          *string `toml:"path"`
	WorkspacePath *string `toml:"workspace-path"`
}

type rawDiagOverride struct {
	Severity string `toml:"severity"`
}

// ErrMultipleRootKinds is returned when both workspace.root and
// workspace.members are present (spec.md §6: "Mutually exclusive").
var ErrMultipleRootKinds = errors.New("config: workspace.root and workspace.members are mutually exclusive")

// ErrMembersUnimplemented names the unsupported workspace.members case. No
// function returns it: internal/project.ResolveRootGroup reports that case
// as a *RootError with code diag.InputMembersUnimplemented whenever
// workspace.members is non-empty.
var ErrMembersUnimplemented = errors.New("config: workspace.members is not implemented")

// Load parses and validates raw millet.toml content.
func Load(content string) (Config, error) {
	var raw rawConfig
	meta, err := toml.Decode(content, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", errCouldNotParse, err)
	}
	if !meta.IsDefined("version") {
		return Config{}, fmt.Errorf("%w: missing \"version\"", errInvalidVersion)
	}
	if raw.Version != 1 {
		return Config{}, fmt.Errorf("%w: got %d, want 1", errInvalidVersion, raw.Version)
	}

	hasRoot := meta.IsDefined("workspace", "root")
	hasMembers := meta.IsDefined("workspace", "members")
	if hasRoot && hasMembers {
		return Config{}, ErrMultipleRootKinds
	}

	pathVars := make(map[string]PathVarEntry, len(raw.Workspace.PathVars))
	for name, v := range raw.Workspace.PathVars {
		entry, err := v.resolve()
		if err != nil {
			return Config{}, fmt.Errorf("workspace.path_vars.%s: %w", name, err)
		}
		pathVars[name] = entry
	}

	diags := make(map[diag.Code]DiagnosticOverride, len(raw.Diagnostics))
	for codeStr, ov := range raw.Diagnostics {
		code, ok := parseCode(codeStr)
		if !ok {
			return Config{}, fmt.Errorf("diagnostics: unknown code %q", codeStr)
		}
		switch strings.ToLower(ov.Severity) {
		case "ignore":
			diags[code] = DiagnosticOverride{Ignore: true}
		default:
			sev, ok := diag.ParseSeverity(strings.ToLower(ov.Severity))
			if !ok {
				return Config{}, fmt.Errorf("diagnostics.%s: unknown severity %q", codeStr, ov.Severity)
			}
			diags[code] = DiagnosticOverride{Sev: sev}
		}
	}

	return Config{
		Version: raw.Version,
		Workspace: Workspace{
			Root:     raw.Workspace.Root,
			RootSet:  hasRoot,
			Members:  raw.Workspace.Members,
			PathVars: pathVars,
		},
		Diagnostics: diags,
	}, nil
}

func (v rawVar) resolve() (PathVarEntry, error) {
	set := 0
	var entry PathVarEntry
	if v.Value != nil {
		set++
		entry = PathVarEntry{Kind: PathVarValue, Value: *v.Value}
	}
	if v.Path != nil {
		set++
		entry = PathVarEntry{Kind: PathVarPath, Value: *v.Path}
	}
	if v.WorkspacePath != nil {
		set++
		entry = PathVarEntry{Kind: PathVarWorkspacePath, Value: *v.WorkspacePath}
	}
	if set != 1 {
		return PathVarEntry{}, errors.New("exactly one of value, path, workspace-path must be set")
	}
	return entry, nil
}

var (
	errCouldNotParse  = errors.New("config: could not parse millet.toml")
	errInvalidVersion = errors.New("config: invalid version")
)
