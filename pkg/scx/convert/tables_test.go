package convert

import (
	"errors"
	"strings"
	"testing"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

func TestDefaultTablesDisjoint(t *testing.T) {
	tables := DefaultTables()
	if err := tables.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for pkg, table := range tables {
		for from, to := range table.Terrains {
			if from <= 40 {
				t.Errorf("%s terrain source %d is not HD-only", pkg, from)
			}
			if to < 0 || to > 40 {
				t.Errorf("%s terrain target %d is outside the base terrain range", pkg, to)
			}
		}
		for from := range table.Units {
			if from < 1000 {
				t.Errorf("%s unit source %d is not HD-only", pkg, from)
			}
		}
	}
}

func TestDefaultTablesAreCopies(t *testing.T) {
	a := DefaultTables()
	a[types.DLCAfricanKingdoms].Units[1001] = 1
	if DefaultTables()[types.DLCAfricanKingdoms].Units[1001] == 1 {
		t.Error("DefaultTables() shares maps between calls")
	}
}

func TestSelect(t *testing.T) {
	tables := DefaultTables()
	if got := len(tables.Select(nil)); got != len(tables) {
		t.Errorf("Select(nil) = %d tables, want %d", got, len(tables))
	}
	if got := len(tables.Select([]types.DLCPackage{types.DLCAgeOfKings})); got != 0 {
		t.Errorf("Select(aok) = %d tables, want 0", got)
	}
	got := tables.Select([]types.DLCPackage{types.DLCRiseOfTheRajas})
	if len(got) != 1 || got[0].Units[1155] != 1630 {
		t.Errorf("Select(rajas) = %+v", got)
	}
}

func TestLoadTables(t *testing.T) {
	yamlDoc := `
african_kingdoms:
  units:
    1001: 1700
rise_of_the_rajas:
  terrains:
    55: 2
`
	tables, err := LoadTables(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	if got := tables[types.DLCAfricanKingdoms].Units[1001]; got != 1700 {
		t.Errorf("override unit = %d, want 1700", got)
	}
	if got := tables[types.DLCAfricanKingdoms].Units[1003]; got != 1602 {
		t.Errorf("default unit lost in merge: %d", got)
	}
	if got := tables[types.DLCRiseOfTheRajas].Terrains[55]; got != 2 {
		t.Errorf("override terrain = %d, want 2", got)
	}
}

func TestLoadTablesEmpty(t *testing.T) {
	tables, err := LoadTables(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != len(DefaultTables()) {
		t.Errorf("LoadTables(empty) = %d tables", len(tables))
	}
}

func TestLoadTablesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown package", "expansion_pack:\n  units:\n    1: 2\n", nil},
		{"cycle", "the_forgotten:\n  units:\n    1200: 1001\n", scxerrors.ErrRemapCycle},
		{"malformed", "the_forgotten: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTables(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("LoadTables() error = %v, want %v", err, tt.want)
			}
		})
	}
}
