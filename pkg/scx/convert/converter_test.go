package convert

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/hashicorp/go-hclog"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
	"github.com/provide-io/genie/go/genie/pkg/scx/format"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "convert_test",
		Level:  hclog.Trace,
		Output: &bytes.Buffer{},
	})
	c, err := NewAutoToWK(append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("NewAutoToWK() error = %v", err)
	}
	return c
}

func extendedFields[F comparable](layout []F, values map[F]int32) []int32 {
	fields := make([]int32, len(layout))
	for i, f := range layout {
		fields[i] = -1
		if v, ok := values[f]; ok {
			fields[i] = v
		}
	}
	return fields
}

func hdScenario() *format.Scenario {
	s := format.NewScenario(types.HDEdition())
	s.Map = format.NewMap(2, 2)
	s.Map.TileAt(0, 0).Terrain = 41 // mapped
	s.Map.TileAt(1, 0).Terrain = 5  // not mapped
	s.Map.TileAt(0, 1).Terrain = 49 // mapped
	s.Units[1] = []format.Unit{
		{UnitType: 1001}, // mapped
		{UnitType: 83},   // not mapped
	}
	s.Victory.Players[0] = []format.VictoryEntry{{Condition: types.VictoryCreate, ObjectType: 1120}}

	s.Triggers = &format.TriggerSystem{Version: 2.0}
	s.Triggers.Triggers = []format.Trigger{{
		Effects: []format.Effect{{
			Fields: extendedFields(format.EffectLayout(2.0), map[format.EffectField]int32{
				format.EffectUnitType:     1004,
				format.EffectUnitType2:    1126,
				format.EffectTerrain:      42,
				format.EffectPlayerSource: 1001, // same value, not a unit slot
			}),
		}},
		Conditions: []format.Condition{{
			Fields: extendedFields(format.ConditionLayout(2.0), map[format.ConditionField]int32{
				format.ConditionUnitType: 1155,
				format.ConditionTerrain:  53,
				format.ConditionAmount:   41,
			}),
		}},
	}}
	return s
}

func TestConvertHDScenario(t *testing.T) {
	c := newTestConverter(t)
	s := hdScenario()

	stats, err := c.Convert(s)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if s.Version != types.UserPatch15() {
		t.Errorf("Version = %v, want UserPatch15", s.Version)
	}

	tiles := []struct {
		x, y uint32
		want int8
	}{
		{0, 0, 0},
		{1, 0, 5},
		{0, 1, 10},
		{1, 1, 0},
	}
	for _, tt := range tiles {
		if tile, _ := s.Map.Tile(tt.x, tt.y); tile.Terrain != tt.want {
			t.Errorf("tile (%d, %d) terrain = %d, want %d", tt.x, tt.y, tile.Terrain, tt.want)
		}
	}

	if got := s.Units[1][0].UnitType; got != 1601 {
		t.Errorf("unit 0 type = %d, want 1601", got)
	}
	if got := s.Units[1][1].UnitType; got != 83 {
		t.Errorf("unmapped unit type = %d, want 83", got)
	}
	if got := s.Victory.Players[0][0].ObjectType; got != 1620 {
		t.Errorf("victory object type = %d, want 1620", got)
	}

	ts := s.Triggers
	e := &ts.Triggers[0].Effects[0]
	effectChecks := map[format.EffectField]int32{
		format.EffectUnitType:     1603,
		format.EffectUnitType2:    1624,
		format.EffectTerrain:      6,
		format.EffectPlayerSource: 1001,
	}
	for f, want := range effectChecks {
		if got, _ := ts.EffectValue(e, f); got != want {
			t.Errorf("effect field %d = %d, want %d", f, got, want)
		}
	}
	cond := &ts.Triggers[0].Conditions[0]
	conditionChecks := map[format.ConditionField]int32{
		format.ConditionUnitType: 1630,
		format.ConditionTerrain:  20,
		format.ConditionAmount:   41,
	}
	for f, want := range conditionChecks {
		if got, _ := ts.ConditionValue(cond, f); got != want {
			t.Errorf("condition field %d = %d, want %d", f, got, want)
		}
	}

	want := Stats{Units: 1, VictoryEntries: 1, TriggerFields: 5, Tiles: 2}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestConvertIdempotent(t *testing.T) {
	c := newTestConverter(t)
	once := hdScenario()
	if _, err := c.Convert(once); err != nil {
		t.Fatal(err)
	}

	// Pretend the converted scenario is still HD so the tables are applied again.
	twice := hdScenario()
	if _, err := c.Convert(twice); err != nil {
		t.Fatal(err)
	}
	twice.Version = types.HDEdition()
	stats, err := c.Convert(twice)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total() != 0 {
		t.Errorf("second conversion rewrote %d IDs", stats.Total())
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("converting twice differs from converting once")
	}
}

func TestConvertLegacyTriggerLayout(t *testing.T) {
	c := newTestConverter(t)
	s := format.NewScenario(types.HDEdition())
	layout := format.EffectLayout(1.6)
	s.Triggers = &format.TriggerSystem{Version: 1.6}
	s.Triggers.Triggers = []format.Trigger{{
		Effects: []format.Effect{{
			Fields: extendedFields(layout, map[format.EffectField]int32{
				format.EffectUnitType:     1013,
				format.EffectPlayerSource: 1013,
			}),
		}},
	}}

	if _, err := c.Convert(s); err != nil {
		t.Fatal(err)
	}
	e := &s.Triggers.Triggers[0].Effects[0]
	if got, _ := s.Triggers.EffectValue(e, format.EffectUnitType); got != 1609 {
		t.Errorf("UnitType = %d, want 1609", got)
	}
	if got, _ := s.Triggers.EffectValue(e, format.EffectPlayerSource); got != 1013 {
		t.Errorf("PlayerSource = %d, want 1013", got)
	}
}

func TestConvertSelectsDeclaredPackages(t *testing.T) {
	c := newTestConverter(t)
	s := hdScenario()
	s.Header.DLC.Packages = []types.DLCPackage{types.DLCAfricanKingdoms}

	if _, err := c.Convert(s); err != nil {
		t.Fatal(err)
	}
	if tile, _ := s.Map.Tile(0, 0); tile.Terrain != 41 {
		t.Errorf("Forgotten terrain remapped without the package: %d", tile.Terrain)
	}
	if got := s.Units[1][0].UnitType; got != 1601 {
		t.Errorf("African Kingdoms unit = %d, want 1601", got)
	}
}

func TestConvertNonHDSwapsVersionOnly(t *testing.T) {
	c := newTestConverter(t)
	s := hdScenario()
	s.Version = types.AoC()

	stats, err := c.Convert(s)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total() != 0 {
		t.Errorf("non-HD conversion rewrote %d IDs", stats.Total())
	}
	if tile, _ := s.Map.Tile(0, 0); tile.Terrain != 41 {
		t.Errorf("terrain = %d, want unchanged 41", tile.Terrain)
	}
	if s.Version != types.UserPatch15() {
		t.Errorf("Version = %v", s.Version)
	}
}

func TestConvertSingleTile(t *testing.T) {
	c := newTestConverter(t)
	s := format.NewScenario(types.HDEdition())
	s.Map = format.NewMap(1, 1)
	s.Bitmap = nil

	if _, err := c.Convert(s); err != nil {
		t.Fatal(err)
	}
	if s.Version != types.UserPatch15() {
		t.Errorf("Version = %v", s.Version)
	}
	want := int8(0)
	for _, table := range DefaultTables() {
		if to, ok := table.Terrains[0]; ok {
			want = to
		}
	}
	if tile, _ := s.Map.Tile(0, 0); tile != (format.Tile{Terrain: want}) {
		t.Errorf("tile = %+v, want terrain %d", tile, want)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := format.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Version != types.UserPatch15() {
		t.Errorf("written Version = %v", got.Version)
	}
}

func TestConvertNil(t *testing.T) {
	c := newTestConverter(t)
	if _, err := c.Convert(nil); !errors.Is(err, scxerrors.ErrNoScenario) {
		t.Errorf("Convert(nil) error = %v", err)
	}
}

func TestWithTarget(t *testing.T) {
	c := newTestConverter(t, WithTarget(types.HDEdition()))
	s := format.NewScenario(types.AoC())
	if _, err := c.Convert(s); err != nil {
		t.Fatal(err)
	}
	if s.Version != types.HDEdition() {
		t.Errorf("Version = %v, want HDEdition", s.Version)
	}
}

func TestNewAutoToWKRejectsCycles(t *testing.T) {
	bad := Tables{types.DLCTheForgotten: {Units: map[int32]int32{1000: 1001, 1001: 1002}}}
	if _, err := NewAutoToWK(WithTables(bad)); !errors.Is(err, scxerrors.ErrRemapCycle) {
		t.Errorf("NewAutoToWK() error = %v, want ErrRemapCycle", err)
	}
}
