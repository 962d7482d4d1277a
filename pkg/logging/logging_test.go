package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/internal/config"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	writes := []string{"first li", "ne\nsecond line\n", "partial"}
	for _, w := range writes {
		n, err := pw.Write([]byte(w))
		if err != nil {
			t.Fatalf("Write(%q) error = %v", w, err)
		}
		if n != len(w) {
			t.Errorf("Write(%q) = %d, want %d", w, n, len(w))
		}
	}

	if got, want := out.String(), "> first line\n> second line\n> partial"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := pw.Write([]byte(" done\nlast\n")); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "> first line\n> second line\n> partial done\n> last\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrefixWriterEmptyLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("# ", &out)
	if _, err := pw.Write([]byte("\n\nx\n")); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "# \n# \n# x\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]hclog.Level{
		"":       hclog.Warn,
		"bogus":  hclog.Warn,
		"trace":  hclog.Trace,
		"DEBUG":  hclog.Debug,
		" info ": hclog.Info,
		"error":  hclog.Error,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerPrefixed(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("genie", "info", false, &out)
	logger.Info("hello", "key", "value")
	logger.Debug("hidden")

	got := out.String()
	if !strings.HasPrefix(got, linePrefix) {
		t.Errorf("line %q lacks prefix", got)
	}
	if !strings.Contains(got, "hello") || strings.Contains(got, "hidden") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFromConfigJSON(t *testing.T) {
	var out bytes.Buffer
	logger := FromConfig("genie", config.Config{LogLevel: "debug", JSONLog: true}, &out)
	logger.Debug("json line", "n", 1)

	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", out.String())
	}
	if entry["@message"] != "json line" {
		t.Errorf("@message = %v", entry["@message"])
	}
}
