package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter writes a prefix before every line it passes through to the
// wrapped writer. Partial lines are written immediately; the prefix of the
// next line is held until that line's first byte arrives.
type PrefixWriter struct {
	mu          sync.Mutex
	prefix      []byte
	w           io.Writer
	atLineStart bool
}

// NewPrefixWriter wraps w so that every line starts with prefix.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix:      []byte(prefix),
		w:           w,
		atLineStart: true,
	}
}

// Write implements io.Writer. The returned count covers p only, never the
// prefixes added to it.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	written := 0
	for len(p) > 0 {
		if pw.atLineStart {
			if _, err := pw.w.Write(pw.prefix); err != nil {
				return written, err
			}
			pw.atLineStart = false
		}

		chunk := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			chunk = p[:i+1]
			pw.atLineStart = true
		}
		n, err := pw.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[len(chunk):]
	}
	return written, nil
}
