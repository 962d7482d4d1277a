package format

import (
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

const (
	maxTriggers      = 1 << 16
	maxTriggerFields = 1 << 8
	maxSelected      = 1 << 16
)

// Effect is one trigger effect. Fields are raw slots; their meaning comes
// from EffectLayout for the trigger system version.
type Effect struct {
	Type      int32
	Fields    []int32
	Text      *string
	SoundFile *string
	// Selected are the object instance IDs the effect applies to.
	Selected []int32
}

// Condition is one trigger condition. Fields are raw slots; their meaning
// comes from ConditionLayout for the trigger system version.
type Condition struct {
	Type   int32
	Fields []int32
}

// Trigger is a set of conditions and the effects they fire.
type Trigger struct {
	Enabled        bool
	Looping        bool
	IsObjective    bool
	ObjectiveOrder int32
	NameID         int32
	Description    *string
	Name           *string
	Effects        []Effect
	EffectOrder    []int32
	Conditions     []Condition
	ConditionOrder []int32
}

// TriggerSystem is the scenario's trigger section.
type TriggerSystem struct {
	// Version is the trigger system version the slots are laid out for.
	Version         float64
	ObjectivesState int8
	Triggers        []Trigger
	Order           []int32
}

// EffectValue returns the named slot of e, laid out for this system's version.
func (ts *TriggerSystem) EffectValue(e *Effect, f EffectField) (int32, bool) {
	i := indexOf(EffectLayout(ts.Version), f)
	if i < 0 || i >= len(e.Fields) {
		return 0, false
	}
	return e.Fields[i], true
}

// ConditionValue returns the named slot of c, laid out for this system's version.
func (ts *TriggerSystem) ConditionValue(c *Condition, f ConditionField) (int32, bool) {
	i := indexOf(ConditionLayout(ts.Version), f)
	if i < 0 || i >= len(c.Fields) {
		return 0, false
	}
	return c.Fields[i], true
}

func readCountMax(r io.Reader, what string, max int) (int, error) {
	n, err := readCount(r, what)
	if err != nil {
		return 0, err
	}
	if n > max {
		return 0, fmt.Errorf("%w: %s count %d", scxerrors.ErrInvalidLength, what, n)
	}
	return n, nil
}

// readInt32s reads n values. Zero values read as nil.
func readInt32s(r io.Reader, n int) ([]int32, error) {
	if n == 0 {
		return nil, nil
	}
	values := make([]int32, n)
	if err := readInto(r, values); err != nil {
		return nil, err
	}
	return values, nil
}

// ReadTriggerSystem reads a trigger section. The version is read from the stream.
func ReadTriggerSystem(r io.Reader) (*TriggerSystem, error) {
	version, err := readLE[float64](r)
	if err != nil {
		return nil, err
	}
	ts := &TriggerSystem{Version: version}
	if version >= triggersObjectives {
		if ts.ObjectivesState, err = readLE[int8](r); err != nil {
			return nil, err
		}
	}

	n, err := readCountMax(r, "trigger", maxTriggers)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		ts.Triggers = make([]Trigger, n)
	}
	for i := range ts.Triggers {
		if err := ts.readTrigger(r, &ts.Triggers[i]); err != nil {
			return nil, fmt.Errorf("reading trigger %d: %w", i, err)
		}
	}

	if version >= triggersOrder {
		if ts.Order, err = readInt32s(r, n); err != nil {
			return nil, fmt.Errorf("reading trigger order: %w", err)
		}
	}
	return ts, nil
}

func (ts *TriggerSystem) readTrigger(r io.Reader, t *Trigger) error {
	enabled, err := readLE[int32](r)
	if err != nil {
		return err
	}
	t.Enabled = enabled != 0
	looping, err := readLE[int8](r)
	if err != nil {
		return err
	}
	t.Looping = looping != 0
	objective, err := readLE[int8](r)
	if err != nil {
		return err
	}
	t.IsObjective = objective != 0
	if t.ObjectiveOrder, err = readLE[int32](r); err != nil {
		return err
	}
	t.NameID = -1
	if ts.Version >= triggersNameID {
		if t.NameID, err = readLE[int32](r); err != nil {
			return err
		}
	}
	if t.Description, err = ReadStr32(r); err != nil {
		return fmt.Errorf("reading description: %w", err)
	}
	if t.Name, err = ReadStr32(r); err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	numEffects, err := readCountMax(r, "effect", maxTriggers)
	if err != nil {
		return err
	}
	if numEffects > 0 {
		t.Effects = make([]Effect, numEffects)
	}
	for i := range t.Effects {
		if err := ts.readEffect(r, &t.Effects[i]); err != nil {
			return fmt.Errorf("reading effect %d: %w", i, err)
		}
	}
	if t.EffectOrder, err = readInt32s(r, numEffects); err != nil {
		return err
	}

	numConditions, err := readCountMax(r, "condition", maxTriggers)
	if err != nil {
		return err
	}
	if numConditions > 0 {
		t.Conditions = make([]Condition, numConditions)
	}
	for i := range t.Conditions {
		c := &t.Conditions[i]
		if c.Type, err = readLE[int32](r); err != nil {
			return err
		}
		numFields, err := readCountMax(r, "condition field", maxTriggerFields)
		if err != nil {
			return err
		}
		if c.Fields, err = readInt32s(r, numFields); err != nil {
			return fmt.Errorf("reading condition %d: %w", i, err)
		}
	}
	t.ConditionOrder, err = readInt32s(r, numConditions)
	return err
}

func (ts *TriggerSystem) readEffect(r io.Reader, e *Effect) error {
	var err error
	if e.Type, err = readLE[int32](r); err != nil {
		return err
	}
	numFields, err := readCountMax(r, "effect field", maxTriggerFields)
	if err != nil {
		return err
	}
	if e.Fields, err = readInt32s(r, numFields); err != nil {
		return err
	}
	if e.Text, err = ReadStr32(r); err != nil {
		return fmt.Errorf("reading text: %w", err)
	}
	if e.SoundFile, err = ReadStr32(r); err != nil {
		return fmt.Errorf("reading sound file: %w", err)
	}

	selected, _ := ts.EffectValue(e, EffectNumSelected)
	if selected > maxSelected {
		return fmt.Errorf("%w: %d selected objects", scxerrors.ErrInvalidLength, selected)
	}
	if selected > 0 {
		if e.Selected, err = readInt32s(r, int(selected)); err != nil {
			return fmt.Errorf("reading selected objects: %w", err)
		}
	}
	return nil
}

// Encode writes the trigger section laid out for the given trigger system
// version. Slots are moved by name when version differs from ts.Version.
func (ts *TriggerSystem) Encode(w io.Writer, version float64) error {
	if err := writeLE(w, version); err != nil {
		return err
	}
	if version >= triggersObjectives {
		if err := writeLE(w, ts.ObjectivesState); err != nil {
			return err
		}
	}
	if err := writeLE(w, int32(len(ts.Triggers))); err != nil {
		return err
	}
	for i := range ts.Triggers {
		if err := ts.encodeTrigger(w, &ts.Triggers[i], version); err != nil {
			return fmt.Errorf("writing trigger %d: %w", i, err)
		}
	}
	if version >= triggersOrder {
		return writeLE(w, orderOrIdentity(ts.Order, len(ts.Triggers)))
	}
	return nil
}

func (ts *TriggerSystem) encodeTrigger(w io.Writer, t *Trigger, version float64) error {
	if err := writeLE(w, int32(bool32(t.Enabled)), bool8(t.Looping), bool8(t.IsObjective), t.ObjectiveOrder); err != nil {
		return err
	}
	if version >= triggersNameID {
		if err := writeLE(w, t.NameID); err != nil {
			return err
		}
	}
	if err := WriteOptI32Str(w, t.Description); err != nil {
		return fmt.Errorf("writing description: %w", err)
	}
	if err := WriteOptI32Str(w, t.Name); err != nil {
		return fmt.Errorf("writing name: %w", err)
	}

	if err := writeLE(w, int32(len(t.Effects))); err != nil {
		return err
	}
	for i := range t.Effects {
		if err := ts.encodeEffect(w, &t.Effects[i], version); err != nil {
			return fmt.Errorf("writing effect %d: %w", i, err)
		}
	}
	if err := writeLE(w, orderOrIdentity(t.EffectOrder, len(t.Effects))); err != nil {
		return err
	}

	if err := writeLE(w, int32(len(t.Conditions))); err != nil {
		return err
	}
	for i := range t.Conditions {
		c := &t.Conditions[i]
		fields := c.Fields
		if version != ts.Version {
			fields = reslot(fields, ConditionLayout(ts.Version), ConditionLayout(version))
		}
		if err := writeLE(w, c.Type, int32(len(fields)), fields); err != nil {
			return err
		}
	}
	return writeLE(w, orderOrIdentity(t.ConditionOrder, len(t.Conditions)))
}

func (ts *TriggerSystem) encodeEffect(w io.Writer, e *Effect, version float64) error {
	fields := e.Fields
	layout := EffectLayout(ts.Version)
	if version != ts.Version {
		layout = EffectLayout(version)
		fields = reslot(fields, EffectLayout(ts.Version), layout)
	}
	if i := indexOf(layout, EffectNumSelected); i >= 0 && i < len(fields) {
		if len(e.Selected) > 0 || fields[i] > 0 {
			if version == ts.Version {
				fields = append([]int32(nil), fields...)
			}
			fields[i] = int32(len(e.Selected))
		}
	}

	if err := writeLE(w, e.Type, int32(len(fields)), fields); err != nil {
		return err
	}
	if err := WriteOptI32Str(w, e.Text); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	if err := WriteOptI32Str(w, e.SoundFile); err != nil {
		return fmt.Errorf("writing sound file: %w", err)
	}
	if len(e.Selected) > 0 {
		return writeLE(w, e.Selected)
	}
	return nil
}

// orderOrIdentity returns order if it covers n entries, else 0..n-1.
func orderOrIdentity(order []int32, n int) []int32 {
	if len(order) == n {
		return order
	}
	identity := make([]int32, n)
	for i := range identity {
		identity[i] = int32(i)
	}
	return identity
}
