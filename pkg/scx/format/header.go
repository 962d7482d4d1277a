package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

const maxHeaderLength = 1 << 20

// DLCOptions is the HD Edition DLC block, present when the header version is 3 or newer.
type DLCOptions struct {
	DataSet  types.DataSet
	Packages []types.DLCPackage
}

// Header is the uncompressed scenario header.
type Header struct {
	Timestamp    uint32
	Description  *string
	AnySPVictory bool
	PlayerCount  uint32
	DLC          DLCOptions
}

// preamble is everything before the compressed data, with the versions it carries.
type preamble struct {
	format     types.FormatVersion
	header     uint32
	dlcOptions int32
	Header
}

func readPreamble(r io.Reader) (*preamble, error) {
	var raw [4]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, err
	}
	format, err := types.ParseFormatVersion(raw[:])
	if err != nil {
		return nil, err
	}

	length, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	if length > maxHeaderLength {
		return nil, fmt.Errorf("%w: header length %d", scxerrors.ErrInvalidHeader, length)
	}

	limited := &io.LimitedReader{R: r, N: int64(length)}
	p, err := readHeaderFields(limited)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: fields exceed header length %d", scxerrors.ErrInvalidHeader, length)
		}
		return nil, err
	}
	p.format = format

	// Newer headers append fields we do not know about.
	if limited.N > 0 {
		if _, err := io.Copy(io.Discard, limited); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func readHeaderFields(r io.Reader) (*preamble, error) {
	p := &preamble{dlcOptions: -1}
	var err error
	if p.header, err = readLE[uint32](r); err != nil {
		return nil, err
	}
	if p.Timestamp, err = readLE[uint32](r); err != nil {
		return nil, err
	}
	if p.Description, err = ReadStr32(r); err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	if p.AnySPVictory, err = readBool32(r); err != nil {
		return nil, err
	}
	if p.PlayerCount, err = readLE[uint32](r); err != nil {
		return nil, err
	}

	if p.header >= 3 {
		if p.dlcOptions, err = readLE[int32](r); err != nil {
			return nil, err
		}
		set, err := readLE[int32](r)
		if err != nil {
			return nil, err
		}
		if p.DLC.DataSet, err = types.ParseDataSet(set); err != nil {
			return nil, err
		}
		n, err := readLE[uint32](r)
		if err != nil {
			return nil, err
		}
		if n > uint32(len(types.AllDLCPackages))*4 {
			return nil, fmt.Errorf("%w: %d dlc packages", scxerrors.ErrInvalidLength, n)
		}
		for i := uint32(0); i < n; i++ {
			id, err := readLE[int32](r)
			if err != nil {
				return nil, err
			}
			pkg, err := types.ParseDLCPackage(id)
			if err != nil {
				return nil, err
			}
			p.DLC.Packages = append(p.DLC.Packages, pkg)
		}
	}
	return p, nil
}

func writePreamble(w io.Writer, h *Header, v types.VersionBundle) error {
	var buf bytes.Buffer
	if err := writeLE(&buf, v.Header, h.Timestamp); err != nil {
		return err
	}
	if err := WriteOptI32Str(&buf, h.Description); err != nil {
		return fmt.Errorf("writing description: %w", err)
	}
	if err := writeLE(&buf, bool32(h.AnySPVictory), h.PlayerCount); err != nil {
		return err
	}
	if v.HasDLCOptions() {
		if err := writeLE(&buf, v.DLCOptions, h.DLC.DataSet.Int32(), uint32(len(h.DLC.Packages))); err != nil {
			return err
		}
		for _, pkg := range h.DLC.Packages {
			if err := writeLE(&buf, pkg.Int32()); err != nil {
				return err
			}
		}
	}

	if _, err := w.Write(v.Format[:]); err != nil {
		return err
	}
	if err := writeLE(w, uint32(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
