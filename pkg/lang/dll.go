package lang

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tc-hib/winres"
	"golang.org/x/text/encoding/unicode"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// stringsPerBlock is the number of strings in one RT_STRING resource.
const stringsPerBlock = 16

// FromDLL reads every string table resource of a PE file.
func (l *Loader) FromDLL(r io.ReadSeeker) (*File, error) {
	rs, err := winres.LoadFromEXE(r)
	if err != nil {
		return nil, fmt.Errorf("reading resources: %w", err)
	}
	return l.fromResources(rs)
}

// FromDLL reads every string table resource of a PE file without logging.
func FromDLL(r io.ReadSeeker) (*File, error) {
	return NewLoader(nil).FromDLL(r)
}

func (l *Loader) fromResources(rs *winres.ResourceSet) (*File, error) {
	f := newFile()
	blocks := 0
	var walkErr error
	rs.WalkType(winres.RT_STRING, func(resID winres.Identifier, langID uint16, data []byte) bool {
		id, ok := resID.(winres.ID)
		if !ok || id == 0 {
			l.logger.Debug("Skipping named string table resource", "id", resID)
			return true
		}
		base := (uint32(id) - 1) * stringsPerBlock
		if err := l.loadStringBlock(f, base, data); err != nil {
			walkErr = fmt.Errorf("%w: string table block %d (lang 0x%04x): %v", scxerrors.ErrMalformedStringTable, uint16(id), langID, err)
			return false
		}
		blocks++
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if blocks == 0 {
		return nil, scxerrors.ErrNoStringTable
	}
	return f, nil
}

// loadStringBlock decodes one RT_STRING block: up to sixteen strings, each a
// u16 count of UTF-16 code units followed by the units.
func (l *Loader) loadStringBlock(f *File, id uint32, data []byte) error {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	for len(data) > 0 {
		if len(data) < 2 {
			return fmt.Errorf("truncated length at string %d", id)
		}
		n := int(binary.LittleEndian.Uint16(data)) * 2
		data = data[2:]
		if n > len(data) {
			return fmt.Errorf("string %d runs past its block", id)
		}
		if n > 0 {
			decoded, err := decoder.Bytes(data[:n])
			if err != nil {
				l.logger.Trace("Skipping undecodable string", "id", id, "error", err)
			} else {
				f.strings[id] = string(decoded)
			}
		}
		data = data[n:]
		id++
	}
	return nil
}
