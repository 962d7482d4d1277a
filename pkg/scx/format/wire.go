// Package format implements the SCX scenario codecs: strings, the embedded
// bitmap, the tile map, the trigger system and the whole-document layout.
package format

import (
	"encoding/binary"
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// sectionSeparator delimits several compressed-data sections.
const sectionSeparator int32 = -99

// readLE reads one fixed-size little-endian value.
func readLE[T any](r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// readInto reads a fixed-size value or slice in place.
func readInto(r io.Reader, data any) error {
	return binary.Read(r, binary.LittleEndian, data)
}

// writeLE writes fixed-size little-endian values in order.
func writeLE(w io.Writer, values ...any) error {
	for _, v := range values {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readBool32(r io.Reader) (bool, error) {
	v, err := readLE[uint32](r)
	return v != 0, err
}

func bool32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func bool8(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

func readSeparator(r io.Reader, section string) error {
	v, err := readLE[int32](r)
	if err != nil {
		return err
	}
	if v != sectionSeparator {
		return fmt.Errorf("%w: after %s got %d", scxerrors.ErrInvalidSeparator, section, v)
	}
	return nil
}

func writeSeparator(w io.Writer) error {
	return writeLE(w, sectionSeparator)
}

// readCount reads a signed element count, rejecting negative values.
func readCount(r io.Reader, what string) (int, error) {
	n, err := readLE[int32](r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s count %d", scxerrors.ErrInvalidLength, what, n)
	}
	return int(n), nil
}
