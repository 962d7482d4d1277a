package format

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding/charmap"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// Str returns a pointer to s, for optional string fields.
func Str(s string) *string {
	return &s
}

// ReadStr reads exactly length bytes and decodes them up to the first NUL.
// A zero-length result is reported as nil: the wire cannot tell an empty
// string from a missing one.
func ReadStr(r io.Reader, length int) (*string, error) {
	if length <= 0 {
		return nil, nil
	}
	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	if end := bytes.IndexByte(raw, 0); end >= 0 {
		raw = raw[:end]
	}
	if len(raw) == 0 {
		return nil, nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scxerrors.ErrDecodeString, err)
	}
	s := string(decoded)
	return &s, nil
}

// ReadStr16 reads a string with a little-endian 16-bit length prefix.
func ReadStr16(r io.Reader) (*string, error) {
	n, err := readLE[int16](r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: string length %d", scxerrors.ErrInvalidLength, n)
	}
	return ReadStr(r, int(n))
}

// ReadStr32 reads a string with a little-endian 32-bit length prefix.
func ReadStr32(r io.Reader) (*string, error) {
	n, err := readCount(r, "string")
	if err != nil {
		return nil, err
	}
	return ReadStr(r, n)
}

func encodeStr(s string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scxerrors.ErrEncodeString, err)
	}
	return encoded, nil
}

// WriteStr writes s with a 16-bit length prefix (byte length + 1) and a NUL
// terminator. Strings of math.MaxInt16 bytes or more cannot be represented
// and panic.
func WriteStr(w io.Writer, s string) error {
	encoded, err := encodeStr(s)
	if err != nil {
		return err
	}
	if len(encoded) >= math.MaxInt16 {
		panic(fmt.Sprintf("format: string of %d bytes exceeds 16-bit length prefix", len(encoded)))
	}
	return writePrefixed(w, int16(len(encoded)+1), encoded)
}

// WriteI32Str writes s with a 32-bit length prefix, as the newer sections do.
func WriteI32Str(w io.Writer, s string) error {
	encoded, err := encodeStr(s)
	if err != nil {
		return err
	}
	if len(encoded) >= math.MaxInt32 {
		panic(fmt.Sprintf("format: string of %d bytes exceeds 32-bit length prefix", len(encoded)))
	}
	return writePrefixed(w, int32(len(encoded)+1), encoded)
}

func writePrefixed[L int16 | int32](w io.Writer, prefix L, encoded []byte) error {
	if err := writeLE(w, prefix); err != nil {
		return err
	}
	if _, err := w.Write(encoded); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

// WriteOptStr writes s with a 16-bit prefix, or only a zero prefix when s is nil.
func WriteOptStr(w io.Writer, s *string) error {
	if s == nil {
		return writeLE(w, int16(0))
	}
	return WriteStr(w, *s)
}

// WriteOptI32Str writes s with a 32-bit prefix, or only a zero prefix when s is nil.
func WriteOptI32Str(w io.Writer, s *string) error {
	if s == nil {
		return writeLE(w, int32(0))
	}
	return WriteI32Str(w, *s)
}

// writeFixedStr writes s into a NUL-padded field of exactly size bytes. A
// string of exactly size bytes fills the field with no terminator, as
// ReadStr accepts it.
func writeFixedStr(w io.Writer, s *string, size int) error {
	field := make([]byte, size)
	if s != nil {
		encoded, err := encodeStr(*s)
		if err != nil {
			return err
		}
		if len(encoded) > size {
			return fmt.Errorf("%w: %d bytes into %d", scxerrors.ErrStringTooLong, len(encoded), size)
		}
		copy(field, encoded)
	}
	_, err := w.Write(field)
	return err
}
