package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/pkg/scx/format"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GENIE_CONFIG_DIR", t.TempDir())
	t.Setenv("GENIE_LOG_LEVEL", "error")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeScenario(t *testing.T, path string) {
	t.Helper()
	s := format.NewScenario(types.HDEdition())
	s.Header.Description = format.Str("cli test")
	s.Header.PlayerCount = 2
	s.Players[0].Active = 1
	s.Map = format.NewMap(4, 4)
	s.Units[1] = []format.Unit{{UnitType: 1103, GarrisonedIn: -1}}
	if err := format.WriteFile(path, s, s.Version, hclog.NewNullLogger()); err != nil {
		t.Fatal(err)
	}
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.scx")
	writeScenario(t, path)

	out, err := run(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"HD Edition", "cli test", "4x4", "Units:       1"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.scx")
	out := filepath.Join(dir, "out.scx.bz2")
	writeScenario(t, in)

	stdout, err := run(t, "convert", in, out, "wk")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(stdout, "Conversion complete!") {
		t.Errorf("output = %q", stdout)
	}

	s, err := format.ReadFile(out, hclog.NewNullLogger())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Units[1][0].UnitType; got != 1640 {
		t.Errorf("UnitType = %d, want 1640", got)
	}
}

func TestVerifyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.scx")
	writeScenario(t, path)

	out, err := run(t, "verify", path)
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.Contains(out, "passed") {
		t.Errorf("output = %q", out)
	}
}

func TestLangCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.txt")
	if err := os.WriteFile(path, []byte("9701 \"Hello\"\nGREETING \"Hi there\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"9701", "Hello"},
		{"GREETING", "Hi there"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, err := run(t, "lang", path, tt.key)
			if err != nil {
				t.Fatalf("lang error = %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	if _, err := run(t, "lang", path, "MISSING"); err == nil {
		t.Error("expected error for missing string")
	}
}

func TestLangCommandNeedsFile(t *testing.T) {
	t.Setenv("GENIE_LANG_FILE", "")
	if _, err := run(t, "lang", "9701"); err == nil {
		t.Error("expected error without a language file")
	}
}
