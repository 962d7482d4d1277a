package lang

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/hashicorp/go-hclog"
	"github.com/tc-hib/winres"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

func testLoader() *Loader {
	return NewLoader(hclog.New(&hclog.LoggerOptions{
		Name:   "lang_test",
		Level:  hclog.Trace,
		Output: &bytes.Buffer{},
	}))
}

func TestFromINI(t *testing.T) {
	text := "\n46523=The Uighurs will join if you kill Ornlu the wolf.\n; a comment\n" +
		"46524=Uighurs: key=value stays intact\nnot a pair\nabc=skipped\n9=caf\xe9\n"
	f, err := testLoader().FromINI(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromINI() error = %v", err)
	}

	tests := map[uint32]string{
		46523: "The Uighurs will join if you kill Ornlu the wolf.",
		46524: "Uighurs: key=value stays intact",
		9:     "café",
	}
	for id, want := range tests {
		if got, ok := f.Get(id); !ok || got != want {
			t.Errorf("Get(%d) = %q, %v, want %q", id, got, ok, want)
		}
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
}

func TestFromKeyVal(t *testing.T) {
	text := `
// comment
46523 "The Uighurs will join if you kill Ornlu the wolf and return to tell the tale."
46604 "Kill the traitor, Kushluk.\n\nPrevent the tent of Genghis Khan (Wonder) from being destroyed."
LOBBYBROWSER_DATMOD_TITLE_FORMAT "DatMod: \"%s\""
UNQUOTED plain value
BROKEN "bad \q escape"
lonely
`
	f, err := testLoader().FromKeyVal(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromKeyVal() error = %v", err)
	}

	if got, _ := f.Get(46523); got != "The Uighurs will join if you kill Ornlu the wolf and return to tell the tale." {
		t.Errorf("Get(46523) = %q", got)
	}
	if got, _ := f.Get(46604); !strings.Contains(got, "Kushluk.\n\nPrevent") {
		t.Errorf("Get(46604) = %q, want unescaped newlines", got)
	}

	named := map[string]string{
		"LOBBYBROWSER_DATMOD_TITLE_FORMAT": `DatMod: "%s"`,
		"UNQUOTED":                         "plain value",
		"BROKEN":                           `bad \q escape`,
	}
	for name, want := range named {
		if got, ok := f.GetNamed(name); !ok || got != want {
			t.Errorf("GetNamed(%q) = %q, %v, want %q", name, got, ok, want)
		}
	}
	if _, ok := f.GetNamed("lonely"); ok {
		t.Error("line without value was loaded")
	}
}

func TestIterationOrder(t *testing.T) {
	f, err := FromKeyVal(strings.NewReader("30 c\n10 a\n20 b\nZ z\nA a\n"))
	if err != nil {
		t.Fatal(err)
	}

	var ids []uint32
	for id := range f.All() {
		ids = append(ids, id)
	}
	if len(ids) != 3 || ids[0] != 10 || ids[1] != 20 || ids[2] != 30 {
		t.Errorf("All() ids = %v", ids)
	}

	var names []string
	for name := range f.AllNamed() {
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "A" || names[1] != "Z" {
		t.Errorf("AllNamed() names = %v", names)
	}
}

// stringBlock encodes strings the way RT_STRING resources store them.
func stringBlock(strs ...string) []byte {
	var buf bytes.Buffer
	for _, s := range strs {
		units := utf16.Encode([]rune(s))
		binary.Write(&buf, binary.LittleEndian, uint16(len(units)))
		binary.Write(&buf, binary.LittleEndian, units)
	}
	return buf.Bytes()
}

func TestLoadStringBlock(t *testing.T) {
	f := newFile()
	data := stringBlock("first", "", "Byzantines · Defensive")
	if err := testLoader().loadStringBlock(f, 32, data); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.Get(32); got != "first" {
		t.Errorf("Get(32) = %q", got)
	}
	if _, ok := f.Get(33); ok {
		t.Error("empty slot 33 was loaded")
	}
	if got, _ := f.Get(34); got != "Byzantines · Defensive" {
		t.Errorf("Get(34) = %q", got)
	}
}

func TestLoadStringBlockTruncated(t *testing.T) {
	data := stringBlock("truncated")
	if err := testLoader().loadStringBlock(newFile(), 0, data[:len(data)-2]); err == nil {
		t.Error("expected error for truncated block")
	}
}

func TestFromResources(t *testing.T) {
	rs := &winres.ResourceSet{}
	if err := rs.Set(winres.RT_STRING, winres.ID(3), 0x0409, stringBlock("a", "b")); err != nil {
		t.Fatal(err)
	}

	f, err := testLoader().fromResources(rs)
	if err != nil {
		t.Fatalf("fromResources() error = %v", err)
	}
	// Block 3 holds strings 32 to 47.
	if got, _ := f.Get(32); got != "a" {
		t.Errorf("Get(32) = %q", got)
	}
	if got, _ := f.Get(33); got != "b" {
		t.Errorf("Get(33) = %q", got)
	}
}

func TestFromResourcesMalformedBlock(t *testing.T) {
	good := stringBlock("a")
	bad := stringBlock("truncated")
	tests := map[string][]byte{
		"truncated length": {0x01},
		"runs past block":  bad[:len(bad)-2],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			rs := &winres.ResourceSet{}
			if err := rs.Set(winres.RT_STRING, winres.ID(1), 0x0409, good); err != nil {
				t.Fatal(err)
			}
			if err := rs.Set(winres.RT_STRING, winres.ID(2), 0x0409, data); err != nil {
				t.Fatal(err)
			}
			if _, err := testLoader().fromResources(rs); !errors.Is(err, scxerrors.ErrMalformedStringTable) {
				t.Errorf("fromResources() error = %v, want ErrMalformedStringTable", err)
			}
		})
	}
}

func TestFromResourcesEmpty(t *testing.T) {
	if _, err := testLoader().fromResources(&winres.ResourceSet{}); !errors.Is(err, scxerrors.ErrNoStringTable) {
		t.Errorf("fromResources() error = %v, want ErrNoStringTable", err)
	}
}

func TestFromDLLRejectsNonPE(t *testing.T) {
	if _, err := FromDLL(bytes.NewReader([]byte("not a dll"))); err == nil {
		t.Error("expected error for non-PE input")
	}
}

func TestOpenByExtension(t *testing.T) {
	dir := t.TempDir()
	ini := filepath.Join(dir, "language.ini")
	kv := filepath.Join(dir, "key-value-strings-utf8.txt")
	if err := os.WriteFile(ini, []byte("1=one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(kv, []byte("\ufeff1 \"one\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{ini, kv} {
		f, err := testLoader().Open(path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", path, err)
		}
		if got, _ := f.Get(1); got != "one" {
			t.Errorf("Open(%s).Get(1) = %q", path, got)
		}
	}

	if _, err := Open(filepath.Join(dir, "missing.ini")); !os.IsNotExist(err) {
		t.Errorf("Open(missing) error = %v", err)
	}
}
