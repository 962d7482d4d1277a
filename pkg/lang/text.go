package lang

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/ini.v1"
)

const maxLineLength = 1 << 20

func scanLines(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}

// FromINI reads an INI language file, as used by Voobly and the
// aoc-language-ini mod. The file is decoded as Windows-1252. Lines starting
// with ';' are comments; lines that are not ID=value pairs are skipped.
func (l *Loader) FromINI(r io.Reader) (*File, error) {
	data, err := io.ReadAll(charmap.Windows1252.NewDecoder().Reader(r))
	if err != nil {
		return nil, err
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=",
	}, data)
	if err != nil {
		return nil, err
	}

	f := newFile()
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			id, err := strconv.ParseUint(key.Name(), 10, 32)
			if err != nil {
				l.logger.Debug("Skipping INI key with non-numeric ID", "section", section.Name(), "id", key.Name())
				continue
			}
			f.strings[uint32(id)] = key.Value()
		}
	}
	return f, nil
}

// FromINI reads an INI language file without logging.
func FromINI(r io.Reader) (*File, error) {
	return NewLoader(nil).FromINI(r)
}

// FromKeyVal reads an HD Edition key-value language file. Each line is an
// ID or name, a space, and a value. Quoted values are unquoted; values that
// do not unquote cleanly are kept as written. Lines starting with "//" are
// comments.
func (l *Loader) FromKeyVal(r io.Reader) (*File, error) {
	f := newFile()
	scanner := scanLines(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			l.logger.Debug("Skipping key-value line without value", "line", lineNo)
			continue
		}
		value = unquote(strings.TrimSpace(value))

		if isDigits(key) {
			id, err := strconv.ParseUint(key, 10, 32)
			if err != nil {
				l.logger.Debug("Skipping key-value line with out of range ID", "line", lineNo, "id", key)
				continue
			}
			f.strings[uint32(id)] = value
		} else {
			f.named[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// FromKeyVal reads an HD Edition key-value language file without logging.
func FromKeyVal(r io.Reader) (*File, error) {
	return NewLoader(nil).FromKeyVal(r)
}

func unquote(value string) string {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return value
	}
	if s, err := strconv.Unquote(value); err == nil {
		return s
	}
	return value[1 : len(value)-1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
