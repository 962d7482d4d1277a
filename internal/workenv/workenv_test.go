package workenv

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigRootOverride(t *testing.T) {
	if got := ConfigRoot("/opt/genie"); got != "/opt/genie" {
		t.Errorf("ConfigRoot() = %q", got)
	}
}

func TestConfigRootXDG(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG lookup only applies to unix-like systems")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, want := ConfigRoot(""), filepath.Join("/xdg", "genie"); got != want {
		t.Errorf("ConfigRoot() = %q, want %q", got, want)
	}
}

func TestRemapTablesPath(t *testing.T) {
	dir := t.TempDir()

	if got := RemapTablesPath("", dir); got != "" {
		t.Errorf("RemapTablesPath() = %q with no file present", got)
	}

	path := filepath.Join(dir, RemapTablesFile)
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := RemapTablesPath("", dir); got != path {
		t.Errorf("RemapTablesPath() = %q, want %q", got, path)
	}
	if got := RemapTablesPath("/explicit.yaml", dir); got != "/explicit.yaml" {
		t.Errorf("RemapTablesPath() = %q, want explicit path", got)
	}
}
