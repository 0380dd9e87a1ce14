package config

import "testing"

func TestLoadMinimalRootConfig(t *testing.T) {
	cfg, err := Load(`
version = 1

[workspace]
root = "src/sources.cm"
`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("Version = %d, want 1", cfg.Version)
	}
	if !cfg.Workspace.RootSet || cfg.Workspace.Root != "src/sources.cm" {
		t.Fatalf("Workspace.Root = %+v", cfg.Workspace)
	}
	if len(cfg.Workspace.Members) != 0 {
		t.Fatalf("Members = %v, want none", cfg.Workspace.Members)
	}
}

func TestLoadRejectsRootAndMembersTogether(t *testing.T) {
	_, err := Load(`
version = 1

[workspace]
root = "src/sources.cm"
members = ["a", "b"]
`)
	if err != ErrMultipleRootKinds {
		t.Fatalf("err = %v, want ErrMultipleRootKinds", err)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	_, err := Load(`version = 2`)
	if err == nil {
		t.Fatal("expected an error for version 2")
	}
}

func TestLoadPathVars(t *testing.T) {
	cfg, err := Load(`
version = 1

[workspace]
root = "sources.cm"

[workspace.path_vars.SMLNJ-LIB]
path = "/opt/smlnj-lib"

[workspace.path_vars.PROJ_ROOT]
workspace-path = "."
`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lib, ok := cfg.Workspace.PathVars["SMLNJ-LIB"]
	if !ok || lib.Kind != PathVarPath || lib.Value != "/opt/smlnj-lib" {
		t.Fatalf("SMLNJ-LIB = %+v", lib)
	}
	root, ok := cfg.Workspace.PathVars["PROJ_ROOT"]
	if !ok || root.Kind != PathVarWorkspacePath || root.Value != "." {
		t.Fatalf("PROJ_ROOT = %+v", root)
	}
}

func TestLoadDiagnosticsOverrides(t *testing.T) {
	cfg, err := Load(`
version = 1

[workspace]
root = "sources.cm"

[diagnostics.M1404]
severity = "warning"

[diagnostics.M1410]
severity = "ignore"
`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ov := cfg.Diagnostics[1404]; ov.Ignore || ov.Sev.String() != "warning" {
		t.Fatalf("M1404 override = %+v", ov)
	}
	if ov := cfg.Diagnostics[1410]; !ov.Ignore {
		t.Fatalf("M1410 override = %+v, want Ignore", ov)
	}
}

func TestLoadRejectsUnknownDiagnosticCode(t *testing.T) {
	_, err := Load(`
version = 1
[workspace]
root = "sources.cm"
[diagnostics.BOGUS]
severity = "warning"
`)
	if err == nil {
		t.Fatal("expected an error for an unknown diagnostic code")
	}
}
