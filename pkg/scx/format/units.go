package format

import (
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

const (
	// UnitSections is the number of players with starting units: gaia and eight players.
	UnitSections = 9

	maxUnitSections = 16
	maxUnits        = 1 << 20

	dataUnitGarrison float32 = 1.13
	dataUnitFrame    float32 = 1.15
)

// Unit is a starting unit placed on the map.
type Unit struct {
	X, Y, Z      float32
	ID           int32
	UnitType     uint16
	State        uint8
	Rotation     float32
	Frame        uint16
	GarrisonedIn int32
}

func readUnit(r io.Reader, data float32) (Unit, error) {
	var u Unit
	var err error
	if u.X, err = readLE[float32](r); err != nil {
		return u, err
	}
	if u.Y, err = readLE[float32](r); err != nil {
		return u, err
	}
	if u.Z, err = readLE[float32](r); err != nil {
		return u, err
	}
	if u.ID, err = readLE[int32](r); err != nil {
		return u, err
	}
	if u.UnitType, err = readLE[uint16](r); err != nil {
		return u, err
	}
	if u.State, err = readLE[uint8](r); err != nil {
		return u, err
	}
	if u.Rotation, err = readLE[float32](r); err != nil {
		return u, err
	}
	if data >= dataUnitFrame {
		if u.Frame, err = readLE[uint16](r); err != nil {
			return u, err
		}
	}
	u.GarrisonedIn = -1
	if data >= dataUnitGarrison {
		if u.GarrisonedIn, err = readLE[int32](r); err != nil {
			return u, err
		}
	}
	return u, nil
}

func (u *Unit) encode(w io.Writer, data float32) error {
	if err := writeLE(w, u.X, u.Y, u.Z, u.ID, u.UnitType, u.State, u.Rotation); err != nil {
		return err
	}
	if data >= dataUnitFrame {
		if err := writeLE(w, u.Frame); err != nil {
			return err
		}
	}
	if data >= dataUnitGarrison {
		return writeLE(w, u.GarrisonedIn)
	}
	return nil
}

func readUnits(r io.Reader, data float32) ([][]Unit, error) {
	sections, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	if sections > maxUnitSections {
		return nil, fmt.Errorf("%w: %d unit sections", scxerrors.ErrInvalidLength, sections)
	}
	units := make([][]Unit, sections)
	for p := range units {
		n, err := readLE[uint32](r)
		if err != nil {
			return nil, err
		}
		if n > maxUnits {
			return nil, fmt.Errorf("%w: player %d has %d units", scxerrors.ErrInvalidLength, p, n)
		}
		if n == 0 {
			continue
		}
		units[p] = make([]Unit, n)
		for i := range units[p] {
			if units[p][i], err = readUnit(r, data); err != nil {
				return nil, fmt.Errorf("reading player %d unit %d: %w", p, i, err)
			}
		}
	}
	return units, nil
}

func writeUnits(w io.Writer, units [][]Unit, data float32) error {
	if err := writeLE(w, uint32(len(units))); err != nil {
		return err
	}
	for p := range units {
		if err := writeLE(w, uint32(len(units[p]))); err != nil {
			return err
		}
		for i := range units[p] {
			if err := units[p][i].encode(w, data); err != nil {
				return fmt.Errorf("writing player %d unit %d: %w", p, i, err)
			}
		}
	}
	return nil
}
