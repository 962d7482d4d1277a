// Package errors holds the sentinel errors shared by the SCX codecs.
package errors

import "errors"

var (
	// Container errors 📦
	ErrInvalidFormat    = errors.New("❌ unsupported SCX format version")
	ErrInvalidHeader    = errors.New("❌ malformed SCX header")
	ErrInvalidSeparator = errors.New("❌ section separator mismatch")
	ErrInvalidLength    = errors.New("❌ invalid length prefix")

	// String errors 🔤
	ErrDecodeString  = errors.New("❌ could not decode string as WINDOWS-1252")
	ErrEncodeString  = errors.New("❌ could not encode string as WINDOWS-1252")
	ErrStringTooLong = errors.New("❌ string does not fit its fixed-width field")

	// Enumeration errors 🔢
	ErrUnrecognizedValue = errors.New("❌ unrecognized enumeration value")

	// Version errors 🏷️
	ErrUnsupportedPreset = errors.New("❌ version preset not supported")
	ErrUnknownPreset     = errors.New("❌ unknown version preset")

	// Conversion errors 🔁
	ErrNoScenario = errors.New("❌ no scenario to convert")
	ErrRemapCycle = errors.New("❌ remap target is also a remap source")

	// Language file errors 🌐
	ErrNoStringTable        = errors.New("❌ no string table resources found")
	ErrMalformedStringTable = errors.New("❌ malformed string table resource")
)
