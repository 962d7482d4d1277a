// Package convert rewrites HD Edition scenarios for UserPatch and
// WololoKingdoms.
package convert

import (
	"math"

	"github.com/hashicorp/go-hclog"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/format"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

// Converter converts HD Edition scenarios to the WololoKingdoms ID space.
type Converter struct {
	tables Tables
	target types.VersionBundle
	logger hclog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTables replaces the built-in remap tables.
func WithTables(t Tables) Option {
	return func(c *Converter) {
		c.tables = t
	}
}

// WithTarget sets the bundle converted scenarios are given.
func WithTarget(v types.VersionBundle) Option {
	return func(c *Converter) {
		c.target = v
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewAutoToWK creates a converter targeting UserPatch 1.5 with the default tables.
func NewAutoToWK(opts ...Option) (*Converter, error) {
	c := &Converter{
		tables: DefaultTables(),
		target: types.UserPatch15(),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.tables.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Stats counts the IDs a conversion rewrote.
type Stats struct {
	Units          int
	VictoryEntries int
	TriggerFields  int
	Tiles          int
}

// Total is the number of rewritten IDs.
func (s Stats) Total() int {
	return s.Units + s.VictoryEntries + s.TriggerFields + s.Tiles
}

// remap is the merged view of the tables that apply to one scenario.
type remap struct {
	units    map[int32]int32
	terrains map[int8]int8
}

func (c *Converter) remapFor(s *format.Scenario) remap {
	m := remap{
		units:    make(map[int32]int32),
		terrains: make(map[int8]int8),
	}
	for _, table := range c.tables.Select(s.Header.DLC.Packages) {
		for from, to := range table.Units {
			m.units[from] = to
		}
		for from, to := range table.Terrains {
			m.terrains[from] = to
		}
	}
	return m
}

func (m remap) unit(id int32) (int32, bool) {
	to, ok := m.units[id]
	return to, ok
}

func (m remap) terrain(id int32) (int32, bool) {
	if id < math.MinInt8 || id > math.MaxInt8 {
		return id, false
	}
	to, ok := m.terrains[int8(id)]
	return int32(to), ok
}

// Convert rewrites s in place. Only HD Edition sources have their IDs
// remapped; every source gets the target version bundle. IDs without a
// table entry are left unchanged, and converting a converted scenario
// again changes nothing.
func (c *Converter) Convert(s *format.Scenario) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, scxerrors.ErrNoScenario
	}

	source := s.Version
	if !source.IsHDEdition() {
		c.logger.Debug("Source is not HD Edition, swapping version only", "version", source.String())
		s.Version = c.target
		return stats, nil
	}

	m := c.remapFor(s)
	c.logger.Debug("Selected remap tables", "packages", len(s.Header.DLC.Packages),
		"units", len(m.units), "terrains", len(m.terrains))

	stats.Units = c.convertUnits(s, m)
	stats.VictoryEntries = convertVictory(s, m)
	if s.Triggers != nil {
		stats.TriggerFields = convertTriggers(s.Triggers, m)
	}
	if s.Map != nil {
		stats.Tiles = convertMap(s.Map, m)
	}

	s.Version = c.target
	c.logger.Info("🔄 Converted scenario",
		"units", stats.Units,
		"victory_entries", stats.VictoryEntries,
		"trigger_fields", stats.TriggerFields,
		"tiles", stats.Tiles)
	return stats, nil
}

func (c *Converter) convertUnits(s *format.Scenario, m remap) int {
	n := 0
	for p := range s.Units {
		for i := range s.Units[p] {
			u := &s.Units[p][i]
			to, ok := m.unit(int32(u.UnitType))
			if !ok {
				continue
			}
			if to < 0 || to > math.MaxUint16 {
				c.logger.Warn("Remap target does not fit a unit type", "from", u.UnitType, "to", to)
				continue
			}
			u.UnitType = uint16(to)
			n++
		}
	}
	return n
}

func convertVictory(s *format.Scenario, m remap) int {
	n := 0
	for p := range s.Victory.Players {
		for i := range s.Victory.Players[p] {
			e := &s.Victory.Players[p][i]
			if to, ok := m.unit(e.ObjectType); ok {
				e.ObjectType = to
				n++
			}
		}
	}
	return n
}

// remapFields rewrites the unit and terrain slots of one field block, using
// the kinds of the layout the block was read with.
func remapFields[F interface{ Kind() format.FieldKind }](fields []int32, layout []F, m remap) int {
	n := 0
	for i, f := range layout {
		if i >= len(fields) {
			break
		}
		var to int32
		var ok bool
		switch f.Kind() {
		case format.KindUnitType:
			to, ok = m.unit(fields[i])
		case format.KindTerrain:
			to, ok = m.terrain(fields[i])
		}
		if ok {
			fields[i] = to
			n++
		}
	}
	return n
}

func convertTriggers(ts *format.TriggerSystem, m remap) int {
	effects := format.EffectLayout(ts.Version)
	conditions := format.ConditionLayout(ts.Version)

	n := 0
	for t := range ts.Triggers {
		trigger := &ts.Triggers[t]
		for i := range trigger.Effects {
			n += remapFields(trigger.Effects[i].Fields, effects, m)
		}
		for i := range trigger.Conditions {
			n += remapFields(trigger.Conditions[i].Fields, conditions, m)
		}
	}
	return n
}

func convertMap(tiles *format.Map, m remap) int {
	n := 0
	for tile := range tiles.TilesMut() {
		if to, ok := m.terrains[tile.Terrain]; ok {
			tile.Terrain = to
			n++
		}
	}
	return n
}
