package format

import (
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

const (
	victoryPlayerEntries float32 = 2.0
	maxVictoryEntries            = 1 << 8
)

// VictoryEntry is one per-player victory condition.
type VictoryEntry struct {
	Condition    types.VictoryCondition
	Amount       int32
	Resource     int32
	SetObject    int32
	NextObject   int32
	ObjectType   int32
	SourcePlayer int32
	Technology   int32
	Timer        int32
	Trigger      int32
	AreaX1       int32
	AreaY1       int32
	AreaX2       int32
	AreaY2       int32
}

// victoryEntryWire is the fixed-size wire form of VictoryEntry.
type victoryEntryWire struct {
	Condition    int32
	Amount       int32
	Resource     int32
	SetObject    int32
	NextObject   int32
	ObjectType   int32
	SourcePlayer int32
	Technology   int32
	Timer        int32
	Trigger      int32
	AreaX1       int32
	AreaY1       int32
	AreaX2       int32
	AreaY2       int32
}

// VictoryGlobals are the scenario-wide victory settings.
type VictoryGlobals struct {
	Conquest    uint32
	Ruins       uint32
	Relics      uint32
	Discoveries uint32
	Explored    uint32
	Gold        uint32
	AllCustom   uint32
	Mode        uint32
	Score       uint32
	TimeLimit   uint32
}

// Victory is the victory conditions block.
type Victory struct {
	Globals VictoryGlobals
	Players [NumPlayers][]VictoryEntry
}

func readVictory(r io.Reader) (float32, *Victory, error) {
	version, err := readLE[float32](r)
	if err != nil {
		return 0, nil, err
	}
	v := &Victory{}
	if v.Globals, err = readLE[VictoryGlobals](r); err != nil {
		return 0, nil, err
	}
	if version < victoryPlayerEntries {
		return version, v, nil
	}

	for p := range v.Players {
		n, err := readLE[uint32](r)
		if err != nil {
			return 0, nil, err
		}
		if n > maxVictoryEntries {
			return 0, nil, fmt.Errorf("%w: player %d has %d victory entries", scxerrors.ErrInvalidLength, p, n)
		}
		if n == 0 {
			continue
		}
		wire := make([]victoryEntryWire, n)
		if err := readInto(r, wire); err != nil {
			return 0, nil, err
		}
		entries := make([]VictoryEntry, n)
		for i, e := range wire {
			cond, err := types.ParseVictoryCondition(e.Condition)
			if err != nil {
				return 0, nil, fmt.Errorf("player %d victory entry %d: %w", p, i, err)
			}
			entries[i] = VictoryEntry{
				Condition: cond, Amount: e.Amount, Resource: e.Resource,
				SetObject: e.SetObject, NextObject: e.NextObject, ObjectType: e.ObjectType,
				SourcePlayer: e.SourcePlayer, Technology: e.Technology, Timer: e.Timer,
				Trigger: e.Trigger, AreaX1: e.AreaX1, AreaY1: e.AreaY1,
				AreaX2: e.AreaX2, AreaY2: e.AreaY2,
			}
		}
		v.Players[p] = entries
	}
	return version, v, nil
}

func (v *Victory) encode(w io.Writer, version float32) error {
	if err := writeLE(w, version, v.Globals); err != nil {
		return err
	}
	if version < victoryPlayerEntries {
		return nil
	}
	for _, entries := range v.Players {
		if err := writeLE(w, uint32(len(entries))); err != nil {
			return err
		}
		for _, e := range entries {
			wire := victoryEntryWire{
				Condition: e.Condition.Int32(), Amount: e.Amount, Resource: e.Resource,
				SetObject: e.SetObject, NextObject: e.NextObject, ObjectType: e.ObjectType,
				SourcePlayer: e.SourcePlayer, Technology: e.Technology, Timer: e.Timer,
				Trigger: e.Trigger, AreaX1: e.AreaX1, AreaY1: e.AreaY1,
				AreaX2: e.AreaX2, AreaY2: e.AreaY2,
			}
			if err := writeLE(w, wire); err != nil {
				return err
			}
		}
	}
	return nil
}
