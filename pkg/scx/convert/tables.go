package convert

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

// RemapTable maps HD Edition IDs introduced by one DLC package to the IDs
// UserPatch and WololoKingdoms use for the same objects.
type RemapTable struct {
	Units    map[int32]int32 `yaml:"units"`
	Terrains map[int8]int8   `yaml:"terrains"`
}

// Tables holds one remap table per source DLC package.
type Tables map[types.DLCPackage]RemapTable

// DefaultTables returns a fresh copy of the built-in HD Edition to
// WololoKingdoms tables. Unit sources are the HD-only IDs from 1000 up and
// terrain sources the HD-only terrains from 41 up; no target falls in
// either source range.
//
// The targets are placeholders: unit targets are a contiguous block from
// 1601 and terrain targets are the nearest-looking base terrains. They have
// not been checked against a WololoKingdoms data file, so real conversions
// should supply the installed mod's IDs through a remap.yaml override (see
// LoadTables).
func DefaultTables() Tables {
	return Tables{
		types.DLCTheForgotten: {
			Units: map[int32]int32{
				1103: 1640, // Fire Galley
				1104: 1641, // Demolition Raft
				1105: 1642, // Siege Tower
			},
			Terrains: map[int8]int8{
				41: 0,  // Savannah
				42: 6,  // Dirt 4
				43: 11, // Broken Road
				44: 14, // Moorland
				45: 9,  // Crack
			},
		},
		types.DLCAfricanKingdoms: {
			Units: map[int32]int32{
				1001: 1601, // Organ Gun
				1003: 1602, // Elite Organ Gun
				1004: 1603, // Caravel
				1006: 1604, // Elite Caravel
				1007: 1605, // Camel Archer
				1009: 1606, // Elite Camel Archer
				1010: 1607, // Genitour
				1012: 1608, // Elite Genitour
				1013: 1609, // Gbeto
				1015: 1610, // Elite Gbeto
				1016: 1611, // Shotel Warrior
				1018: 1612, // Elite Shotel Warrior
			},
			Terrains: map[int8]int8{
				46: 3,  // Baobab Forest
				47: 14, // Quicksand
				48: 22, // Black Terrain
			},
		},
		types.DLCRiseOfTheRajas: {
			Units: map[int32]int32{
				1120: 1620, // Ballista Elephant
				1122: 1621, // Elite Ballista Elephant
				1123: 1622, // Karambit Warrior
				1125: 1623, // Elite Karambit Warrior
				1126: 1624, // Arambai
				1128: 1625, // Elite Arambai
				1129: 1626, // Rattan Archer
				1131: 1627, // Elite Rattan Archer
				1132: 1628, // Battle Elephant
				1134: 1629, // Elite Battle Elephant
				1155: 1630, // Imperial Skirmisher
			},
			Terrains: map[int8]int8{
				49: 10, // Rainforest
				50: 1,  // Rice Farm
				51: 23, // Beach, Wet
				52: 4,  // Mangrove Shallows
				53: 20, // Mangrove Forest
				54: 13, // Palm Forest
			},
		},
	}
}

// Select returns the tables for the given packages, or every table when
// packages is empty.
func (t Tables) Select(packages []types.DLCPackage) []RemapTable {
	if len(packages) == 0 {
		packages = types.AllDLCPackages
	}
	var selected []RemapTable
	for _, pkg := range packages {
		if table, ok := t[pkg]; ok {
			selected = append(selected, table)
		}
	}
	return selected
}

// Validate checks that no target of any table is also a source in any table.
func (t Tables) Validate() error {
	units := make(map[int32]bool)
	terrains := make(map[int8]bool)
	for _, table := range t {
		for from := range table.Units {
			units[from] = true
		}
		for from := range table.Terrains {
			terrains[from] = true
		}
	}
	for pkg, table := range t {
		for from, to := range table.Units {
			if units[to] {
				return fmt.Errorf("%w: %s unit %d -> %d", scxerrors.ErrRemapCycle, pkg, from, to)
			}
		}
		for from, to := range table.Terrains {
			if terrains[to] {
				return fmt.Errorf("%w: %s terrain %d -> %d", scxerrors.ErrRemapCycle, pkg, from, to)
			}
		}
	}
	return nil
}

// Merge returns a copy of t with every entry of overrides applied on top.
func (t Tables) Merge(overrides Tables) Tables {
	merged := make(Tables, len(t))
	for pkg, table := range t {
		merged[pkg] = RemapTable{
			Units:    maps.Clone(table.Units),
			Terrains: maps.Clone(table.Terrains),
		}
	}
	for pkg, table := range overrides {
		base := merged[pkg]
		if base.Units == nil {
			base.Units = make(map[int32]int32)
		}
		if base.Terrains == nil {
			base.Terrains = make(map[int8]int8)
		}
		maps.Copy(base.Units, table.Units)
		maps.Copy(base.Terrains, table.Terrains)
		merged[pkg] = base
	}
	return merged
}

// tablesFile is the YAML form of Tables, keyed by package name:
//
//	african_kingdoms:
//	  units:
//	    1001: 1601
//	  terrains:
//	    46: 3
type tablesFile map[string]RemapTable

// LoadTables reads YAML table overrides and merges them into the defaults.
func LoadTables(r io.Reader) (Tables, error) {
	var file tablesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultTables(), nil
		}
		return nil, fmt.Errorf("decoding remap tables: %w", err)
	}

	overrides := make(Tables, len(file))
	for name, table := range file {
		pkg, err := packageByName(name)
		if err != nil {
			return nil, err
		}
		overrides[pkg] = table
	}

	tables := DefaultTables().Merge(overrides)
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

func packageByName(name string) (types.DLCPackage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, pkg := range types.AllDLCPackages {
		if pkg.String() == name {
			return pkg, nil
		}
	}
	return 0, fmt.Errorf("unknown dlc package %q in remap tables", name)
}
