package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

// TestRunCLI_NoManifests verifies the fatal exit path when the scan root
// holds no Cargo.toml anywhere.
func TestRunCLI_NoManifests(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	err := runCLI([]string{"rustws", "--no-interactive", "--quiet", "--root", tmp})
	if err == nil {
		t.Fatal("expected error for a manifest-less root, got nil")
	}
	if !strings.Contains(err.Error(), "no Cargo.toml") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRunCLI_GenerateSubcommand verifies the explicit subcommand reaches the
// same pipeline.
func TestRunCLI_GenerateSubcommand(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	err := runCLI([]string{"rustws", "generate", "--no-interactive", "--quiet", "--root", tmp})
	if err == nil {
		t.Fatal("expected error for a manifest-less root, got nil")
	}
}

// TestRunCLI_BadConfig verifies that an unparsable .rustws.yaml aborts the run.
func TestRunCLI_BadConfig(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".rustws.yaml"), []byte("discovery: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)

	if err := runCLI([]string{"rustws", "--no-interactive", "--root", tmp}); err == nil {
		t.Fatal("expected error for malformed config, got nil")
	}
}
