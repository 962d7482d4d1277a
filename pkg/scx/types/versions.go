// Package types contains the pure SCX value types: the version bundle and the
// closed enumerations stored in scenario files. Nothing here performs I/O.
package types

import (
	"fmt"
	"strings"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// FormatVersion is the 4-byte ASCII container format token, e.g. "1.21".
type FormatVersion [4]byte

// Known container format tokens.
var (
	FormatAoE  = FormatVersion{'1', '.', '1', '0'}
	FormatRoR  = FormatVersion{'1', '.', '1', '1'}
	FormatAoK1 = FormatVersion{'1', '.', '1', '8'}
	FormatAoK2 = FormatVersion{'1', '.', '1', '9'}
	FormatAoK3 = FormatVersion{'1', '.', '2', '0'}
	FormatAoC  = FormatVersion{'1', '.', '2', '1'}
	FormatHD   = FormatVersion{'1', '.', '2', '2'}
)

var knownFormats = []FormatVersion{FormatAoE, FormatRoR, FormatAoK1, FormatAoK2, FormatAoK3, FormatAoC, FormatHD}

// ParseFormatVersion validates a raw format token against the known set.
func ParseFormatVersion(raw []byte) (FormatVersion, error) {
	var v FormatVersion
	if len(raw) != len(v) {
		return v, fmt.Errorf("%w: token %q has length %d", scxerrors.ErrInvalidFormat, raw, len(raw))
	}
	copy(v[:], raw)
	for _, known := range knownFormats {
		if v == known {
			return v, nil
		}
	}
	return v, fmt.Errorf("%w: %q", scxerrors.ErrInvalidFormat, v.String())
}

func (f FormatVersion) String() string {
	return string(f[:])
}

// VersionBundle holds every version an SCX file uses. Bundles are values:
// conversion produces a new bundle, it never edits one in place.
type VersionBundle struct {
	// Format is the version of the container file format.
	Format FormatVersion
	// Header is the version of the uncompressed header.
	Header uint32
	// DLCOptions is the version of the HD Edition DLC options, only if Header >= 3.
	DLCOptions int32
	// Data is the compressed data version.
	Data float32
	// Picture is the version of the embedded bitmap section.
	Picture uint32
	// Victory is the version of the victory conditions block.
	Victory float32
	// Triggers is the version of the trigger system.
	Triggers float64
}

// AoE would return the Age of Empires defaults. The layout is not supported.
func AoE() (VersionBundle, error) {
	return VersionBundle{}, fmt.Errorf("%w: aoe", scxerrors.ErrUnsupportedPreset)
}

// RoR would return the Rise of Rome defaults. The layout is not supported.
func RoR() (VersionBundle, error) {
	return VersionBundle{}, fmt.Errorf("%w: ror", scxerrors.ErrUnsupportedPreset)
}

// AoK would return the Age of Kings defaults. The layout is not supported.
func AoK() (VersionBundle, error) {
	return VersionBundle{}, fmt.Errorf("%w: aok", scxerrors.ErrUnsupportedPreset)
}

// AoC returns the bundle The Conquerors writes by default.
func AoC() VersionBundle {
	return VersionBundle{
		Format:     FormatAoC,
		Header:     2,
		DLCOptions: -1,
		Data:       1.22,
		Picture:    1,
		Victory:    2.0,
		Triggers:   1.6,
	}
}

// UserPatch14 returns the bundle UserPatch 1.4 writes by default.
func UserPatch14() VersionBundle {
	return AoC()
}

// UserPatch15 returns the bundle UserPatch 1.5 (and WololoKingdoms) writes by default.
func UserPatch15() VersionBundle {
	return UserPatch14()
}

// HDEdition returns the bundle HD Edition writes by default.
func HDEdition() VersionBundle {
	return VersionBundle{
		Format:     FormatAoC,
		Header:     3,
		DLCOptions: 1000,
		Data:       1.26,
		Picture:    3,
		Victory:    2.0,
		Triggers:   1.6,
	}
}

// Preset resolves a command-line preset name.
func Preset(name string) (VersionBundle, error) {
	switch strings.ToLower(name) {
	case "aoe":
		return AoE()
	case "ror":
		return RoR()
	case "aok":
		return AoK()
	case "aoc", "":
		return AoC(), nil
	case "up14":
		return UserPatch14(), nil
	case "up15", "wk":
		return UserPatch15(), nil
	case "hd":
		return HDEdition(), nil
	default:
		return VersionBundle{}, fmt.Errorf("%w: %s", scxerrors.ErrUnknownPreset, name)
	}
}

// IsAoK reports whether this version is (likely) for an AoK scenario.
func (v VersionBundle) IsAoK() bool {
	switch v.Format {
	case FormatAoK1, FormatAoK2, FormatAoK3:
		return true
	}
	return false
}

// IsAoC reports whether this version is (likely) for an AoC scenario.
func (v VersionBundle) IsAoC() bool {
	return v.Format == FormatAoC && v.Data <= 1.22
}

// IsHDEdition reports whether this version is (likely) for an HD Edition scenario.
// AoC shares the 1.21 container token, so the data version decides.
func (v VersionBundle) IsHDEdition() bool {
	return (v.Format == FormatAoC || v.Format == FormatHD) && v.Data > 1.22
}

// HasDLCOptions reports whether the header carries the DLC options block.
func (v VersionBundle) HasDLCOptions() bool {
	return v.Header >= 3
}

func (v VersionBundle) String() string {
	return fmt.Sprintf("format=%s header=%d dlc_options=%d data=%.2f picture=%d victory=%.1f triggers=%.1f",
		v.Format, v.Header, v.DLCOptions, v.Data, v.Picture, v.Victory, v.Triggers)
}
