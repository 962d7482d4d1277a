// Package lang reads Age of Empires language files into UTF-8 string tables.
// The three file types the games use are supported: PE DLLs with string
// table resources, Windows-1252 INI files, and HD Edition key-value files.
package lang

import (
	"fmt"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// File is a loaded language file. It is read-only once loaded.
type File struct {
	strings map[uint32]string
	named   map[string]string
}

func newFile() *File {
	return &File{
		strings: make(map[uint32]string),
		named:   make(map[string]string),
	}
}

// Get returns a string by its numeric ID.
func (f *File) Get(id uint32) (string, bool) {
	s, ok := f.strings[id]
	return s, ok
}

// GetNamed returns a string by name. Only HD Edition files have named strings.
func (f *File) GetNamed(name string) (string, bool) {
	s, ok := f.named[name]
	return s, ok
}

// Len is the number of numeric strings.
func (f *File) Len() int {
	return len(f.strings)
}

// All iterates over the numeric strings in ascending ID order.
func (f *File) All() iter.Seq2[uint32, string] {
	return func(yield func(uint32, string) bool) {
		for _, id := range slices.Sorted(maps.Keys(f.strings)) {
			if !yield(id, f.strings[id]) {
				return
			}
		}
	}
}

// AllNamed iterates over the named strings in name order.
func (f *File) AllNamed() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(f.named)) {
			if !yield(name, f.named[name]) {
				return
			}
		}
	}
}

// Loader reads language files, logging skipped lines and resources.
type Loader struct {
	logger hclog.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{logger: logger}
}

// Open loads a language file, choosing the parser from the extension:
// .dll for string table resources, .ini for INI files, anything else as
// an HD Edition key-value file.
func (l *Loader) Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dll":
		f, err = l.FromDLL(file)
	case ".ini":
		f, err = l.FromINI(file)
	default:
		f, err = l.FromKeyVal(file)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	l.logger.Debug("Loaded language file", "path", path, "strings", len(f.strings), "named", len(f.named))
	return f, nil
}

// Open loads a language file without logging.
func Open(path string) (*File, error) {
	return NewLoader(nil).Open(path)
}
