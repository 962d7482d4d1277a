package types

import (
	"fmt"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// StartingAgeModernVersion is the first data version using the shifted
// starting age encoding that has a distinct Nomad code.
const StartingAgeModernVersion float32 = 1.25

// ParseStartingAgeError reports an unknown starting age for a data version.
type ParseStartingAgeError struct {
	Version float32
	Found   int32
}

func (e *ParseStartingAgeError) Error() string {
	expected := "-1-6"
	if e.Version < StartingAgeModernVersion {
		expected = "-1-4"
	}
	return fmt.Sprintf("invalid starting age %d (must be %s)", e.Found, expected)
}

// Is matches ErrUnrecognizedValue.
func (e *ParseStartingAgeError) Is(target error) bool {
	return target == scxerrors.ErrUnrecognizedValue
}

// StartingAge is the age a player starts in.
type StartingAge int8

const (
	// AgeDefault uses the game default.
	AgeDefault StartingAge = iota
	// AgeNomad starts in the Dark Age with Nomad resources.
	AgeNomad
	// AgeDark starts in the Dark Age.
	AgeDark
	// AgeFeudal starts in the Feudal Age.
	AgeFeudal
	// AgeCastle starts in the Castle Age.
	AgeCastle
	// AgeImperial starts in the Imperial Age.
	AgeImperial
	// AgePostImperial starts in the Imperial Age with all technologies researched.
	AgePostImperial
)

// ParseStartingAge decodes a starting age for the given data version.
func ParseStartingAge(n int32, version float32) (StartingAge, error) {
	if version < StartingAgeModernVersion {
		switch n {
		case -1:
			return AgeDefault, nil
		case 0:
			return AgeDark, nil
		case 1:
			return AgeFeudal, nil
		case 2:
			return AgeCastle, nil
		case 3:
			return AgeImperial, nil
		case 4:
			return AgePostImperial, nil
		}
		return 0, &ParseStartingAgeError{Version: version, Found: n}
	}

	switch n {
	case -1, 0:
		return AgeDefault, nil
	case 1:
		return AgeNomad, nil
	case 2:
		return AgeDark, nil
	case 3:
		return AgeFeudal, nil
	case 4:
		return AgeCastle, nil
	case 5:
		return AgeImperial, nil
	case 6:
		return AgePostImperial, nil
	}
	return 0, &ParseStartingAgeError{Version: version, Found: n}
}

// Int32 encodes the starting age for the given data version.
//
// Legacy versions have no Nomad code, so Nomad is written as the Dark Age.
func (a StartingAge) Int32(version float32) int32 {
	if version < StartingAgeModernVersion {
		switch a {
		case AgeDefault:
			return -1
		case AgeNomad, AgeDark:
			return 0
		case AgeFeudal:
			return 1
		case AgeCastle:
			return 2
		case AgeImperial:
			return 3
		case AgePostImperial:
			return 4
		}
		return -1
	}
	return int32(a)
}

func (a StartingAge) String() string {
	switch a {
	case AgeDefault:
		return "default"
	case AgeNomad:
		return "nomad"
	case AgeDark:
		return "dark"
	case AgeFeudal:
		return "feudal"
	case AgeCastle:
		return "castle"
	case AgeImperial:
		return "imperial"
	case AgePostImperial:
		return "post_imperial"
	}
	return fmt.Sprintf("age(%d)", int8(a))
}
