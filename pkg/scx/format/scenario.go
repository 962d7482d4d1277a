package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/pkg/scx/operations/compress"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

// NumPlayers is the number of player slots in player-indexed arrays.
const NumPlayers = 16

const playerNameSize = 256

// Data versions where the compressed layout changes.
const (
	dataStartingAges float32 = 1.12
	dataTriggers     float32 = 1.14
	dataStringIDs    float32 = 1.16
	dataOre          float32 = 1.17
	dataCamera       float32 = 1.19
	dataMapType      float32 = 1.21
	dataScouts       float32 = 1.22
	dataPicture      float32 = 1.24
)

// PlayerBase holds the per-player base properties.
type PlayerBase struct {
	Active       uint32
	Human        uint32
	Civilization uint32
	Posture      uint32
}

// Messages are the scenario instruction texts and their string table IDs.
type Messages struct {
	Objectives *string
	Hints      *string
	Victory    *string
	Loss       *string
	History    *string
	Scouts     *string

	ObjectivesID int32
	HintsID      int32
	VictoryID    int32
	LossID       int32
	HistoryID    int32
	ScoutsID     int32
}

// Cinematics are the file names of the scenario movies and background.
type Cinematics struct {
	Pregame    *string
	Victory    *string
	Loss       *string
	Background *string
}

// Resources are a player's starting resources.
type Resources struct {
	Food  int32
	Wood  int32
	Gold  int32
	Stone int32
	Ore   int32
}

// Scenario is a whole SCX document.
type Scenario struct {
	// Version is the bundle the document was read with, or chosen at creation.
	Version types.VersionBundle
	Header  Header

	NextObjectID     uint32
	PlayerNames      [NumPlayers]*string
	PlayerNameIDs    [NumPlayers]int32
	Players          [NumPlayers]PlayerBase
	OriginalFilename *string
	Messages         Messages
	Cinematics       Cinematics
	// Bitmap is the embedded thumbnail, nil when the scenario has none.
	Bitmap *Bitmap

	AINames   [NumPlayers]*string
	AIScripts [NumPlayers]*string
	AITypes   [NumPlayers]uint8

	Resources     [NumPlayers]Resources
	Victory       Victory
	Diplomacy     [NumPlayers][NumPlayers]types.DiplomaticStance
	AlliedVictory [NumPlayers]bool
	StartingAges  [NumPlayers]types.StartingAge

	CameraX int32
	CameraY int32
	MapType int32
	Map     *Map
	// Units holds the starting units of gaia and each player.
	Units [][]Unit
	// Triggers is nil for data versions without a trigger section.
	Triggers *TriggerSystem
}

// NewScenario creates an empty scenario for the given version.
func NewScenario(version types.VersionBundle) *Scenario {
	s := &Scenario{
		Version: version,
		Map:     NewMap(0, 0),
		Units:   make([][]Unit, UnitSections),
		MapType: -1,
		Triggers: &TriggerSystem{
			Version: version.Triggers,
		},
	}
	for i := range s.PlayerNameIDs {
		s.PlayerNameIDs[i] = -1
	}
	s.Messages.ObjectivesID = -1
	s.Messages.HintsID = -1
	s.Messages.VictoryID = -1
	s.Messages.LossID = -1
	s.Messages.HistoryID = -1
	s.Messages.ScoutsID = -1
	return s
}

// Read decodes a whole scenario and detects its version bundle.
func Read(r io.Reader) (*Scenario, error) {
	return ReadWithLogger(r, hclog.NewNullLogger())
}

// ReadWithLogger decodes a whole scenario, logging section boundaries.
func ReadWithLogger(r io.Reader, logger hclog.Logger) (*Scenario, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	p, err := readPreamble(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	logger.Debug("Read header", "format", p.format.String(), "header", p.header, "dlc_options", p.dlcOptions)

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading compressed data: %w", err)
	}
	raw, err := compress.NewDeflateOperation().Reverse(compressed)
	if err != nil {
		return nil, fmt.Errorf("inflating compressed data: %w", err)
	}
	logger.Debug("Inflated compressed data", "compressed_size", len(compressed), "size", len(raw))

	s := &Scenario{Header: p.Header}
	s.Version.Format = p.format
	s.Version.Header = p.header
	s.Version.DLCOptions = p.dlcOptions

	body := bytes.NewReader(raw)
	if err := s.readBody(body, logger); err != nil {
		return nil, err
	}
	if body.Len() > 0 {
		logger.Debug("Ignoring trailing compressed data", "bytes", body.Len())
	}
	return s, nil
}

type section struct {
	name string
	read func(r io.Reader) error
}

func (s *Scenario) readBody(r io.Reader, logger hclog.Logger) error {
	sections := []section{
		{"data version", s.readDataVersion},
		{"player names", s.readPlayerNames},
		{"player base", func(r io.Reader) error { return readInto(r, &s.Players) }},
		{"messages", s.readMessages},
		{"picture", s.readPicture},
		{"ai", s.readAI},
		{"resources", s.readResources},
		{"victory", s.readVictory},
		{"diplomacy", s.readDiplomacy},
		{"starting ages", s.readStartingAges},
		{"map", s.readMap},
		{"units", func(r io.Reader) (err error) {
			s.Units, err = readUnits(r, s.Version.Data)
			return err
		}},
		{"triggers", s.readTriggers},
	}
	for _, sec := range sections {
		if err := sec.read(r); err != nil {
			return fmt.Errorf("reading %s: %w", sec.name, err)
		}
		logger.Trace("Read section", "section", sec.name)
	}
	return nil
}

func (s *Scenario) readDataVersion(r io.Reader) error {
	var err error
	if s.NextObjectID, err = readLE[uint32](r); err != nil {
		return err
	}
	s.Version.Data, err = readLE[float32](r)
	return err
}

func (s *Scenario) readPlayerNames(r io.Reader) error {
	for i := range s.PlayerNames {
		name, err := ReadStr(r, playerNameSize)
		if err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
		s.PlayerNames[i] = name
	}
	for i := range s.PlayerNameIDs {
		s.PlayerNameIDs[i] = -1
	}
	if s.Version.Data >= dataStringIDs {
		return readInto(r, &s.PlayerNameIDs)
	}
	return nil
}

func (s *Scenario) readMessages(r io.Reader) error {
	var err error
	if s.OriginalFilename, err = ReadStr16(r); err != nil {
		return fmt.Errorf("original filename: %w", err)
	}

	m := &s.Messages
	ids := []*int32{&m.ObjectivesID, &m.HintsID, &m.VictoryID, &m.LossID, &m.HistoryID}
	texts := []**string{&m.Objectives, &m.Hints, &m.Victory, &m.Loss, &m.History}
	if s.Version.Data >= dataScouts {
		ids = append(ids, &m.ScoutsID)
		texts = append(texts, &m.Scouts)
	}
	m.ScoutsID = -1
	for _, id := range ids {
		*id = -1
		if s.Version.Data >= dataStringIDs {
			if *id, err = readLE[int32](r); err != nil {
				return err
			}
		}
	}
	for _, text := range texts {
		if *text, err = ReadStr16(r); err != nil {
			return err
		}
	}

	c := &s.Cinematics
	for _, name := range []**string{&c.Pregame, &c.Victory, &c.Loss, &c.Background} {
		if *name, err = ReadStr16(r); err != nil {
			return fmt.Errorf("cinematics: %w", err)
		}
	}
	return nil
}

func (s *Scenario) readPicture(r io.Reader) error {
	s.Version.Picture = 1
	if s.Version.Data >= dataPicture {
		var err error
		if s.Version.Picture, err = readLE[uint32](r); err != nil {
			return err
		}
	}
	if s.Version.Picture == 0 {
		return nil
	}
	bitmap, err := ReadBitmap(r)
	if err != nil {
		return err
	}
	s.Bitmap = bitmap
	return nil
}

func (s *Scenario) readAI(r io.Reader) error {
	var err error
	for i := range s.AINames {
		if s.AINames[i], err = ReadStr16(r); err != nil {
			return fmt.Errorf("player %d ai name: %w", i, err)
		}
	}
	for i := range s.AIScripts {
		if s.AIScripts[i], err = ReadStr32(r); err != nil {
			return fmt.Errorf("player %d ai script: %w", i, err)
		}
	}
	if err := readInto(r, &s.AITypes); err != nil {
		return err
	}
	return readSeparator(r, "ai")
}

func (s *Scenario) readResources(r io.Reader) error {
	for i := range s.Resources {
		res := &s.Resources[i]
		for _, v := range []*int32{&res.Food, &res.Wood, &res.Gold, &res.Stone} {
			var err error
			if *v, err = readLE[int32](r); err != nil {
				return err
			}
		}
		if s.Version.Data >= dataOre {
			var err error
			if res.Ore, err = readLE[int32](r); err != nil {
				return err
			}
		}
	}
	return readSeparator(r, "resources")
}

func (s *Scenario) readVictory(r io.Reader) error {
	version, victory, err := readVictory(r)
	if err != nil {
		return err
	}
	s.Version.Victory = version
	s.Victory = *victory
	return nil
}

func (s *Scenario) readDiplomacy(r io.Reader) error {
	var raw [NumPlayers][NumPlayers]int32
	if err := readInto(r, &raw); err != nil {
		return err
	}
	for i := range raw {
		for j, n := range raw[i] {
			stance, err := types.ParseDiplomaticStance(n)
			if err != nil {
				return fmt.Errorf("player %d toward %d: %w", i, j, err)
			}
			s.Diplomacy[i][j] = stance
		}
	}

	var allied [NumPlayers]uint32
	if err := readInto(r, &allied); err != nil {
		return err
	}
	for i, v := range allied {
		s.AlliedVictory[i] = v != 0
	}
	return readSeparator(r, "diplomacy")
}

func (s *Scenario) readStartingAges(r io.Reader) error {
	if s.Version.Data >= dataStartingAges {
		var raw [NumPlayers]int32
		if err := readInto(r, &raw); err != nil {
			return err
		}
		for i, n := range raw {
			age, err := types.ParseStartingAge(n, s.Version.Data)
			if err != nil {
				return fmt.Errorf("player %d: %w", i, err)
			}
			s.StartingAges[i] = age
		}
	}
	return readSeparator(r, "starting ages")
}

func (s *Scenario) readMap(r io.Reader) error {
	var err error
	if s.Version.Data >= dataCamera {
		if s.CameraX, err = readLE[int32](r); err != nil {
			return err
		}
		if s.CameraY, err = readLE[int32](r); err != nil {
			return err
		}
	}
	s.MapType = -1
	if s.Version.Data >= dataMapType {
		if s.MapType, err = readLE[int32](r); err != nil {
			return err
		}
	}
	s.Map, err = ReadMap(r)
	return err
}

func (s *Scenario) readTriggers(r io.Reader) error {
	if s.Version.Data < dataTriggers {
		return nil
	}
	ts, err := ReadTriggerSystem(r)
	if err != nil {
		return err
	}
	s.Triggers = ts
	s.Version.Triggers = ts.Version
	return nil
}

// Write writes the scenario using its own version bundle.
func (s *Scenario) Write(w io.Writer) error {
	return s.WriteToVersion(w, s.Version)
}

// WriteToVersion writes the scenario laid out for the given version bundle.
// Output is streamed: on error, w may hold a partial document.
func (s *Scenario) WriteToVersion(w io.Writer, v types.VersionBundle) error {
	if err := writePreamble(w, &s.Header, v); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var body bytes.Buffer
	if err := s.writeBody(&body, v); err != nil {
		return err
	}
	compressed, err := compress.NewDeflateOperation().Apply(body.Bytes())
	if err != nil {
		return fmt.Errorf("deflating compressed data: %w", err)
	}
	_, err = w.Write(compressed)
	return err
}

type sectionWriter struct {
	name  string
	write func(w io.Writer, v types.VersionBundle) error
}

func (s *Scenario) writeBody(w io.Writer, v types.VersionBundle) error {
	sections := []sectionWriter{
		{"data version", func(w io.Writer, v types.VersionBundle) error {
			return writeLE(w, s.NextObjectID, v.Data)
		}},
		{"player names", s.writePlayerNames},
		{"player base", func(w io.Writer, _ types.VersionBundle) error { return writeLE(w, s.Players) }},
		{"messages", s.writeMessages},
		{"picture", s.writePicture},
		{"ai", s.writeAI},
		{"resources", s.writeResources},
		{"victory", func(w io.Writer, v types.VersionBundle) error { return s.Victory.encode(w, v.Victory) }},
		{"diplomacy", s.writeDiplomacy},
		{"starting ages", s.writeStartingAges},
		{"map", s.writeMap},
		{"units", func(w io.Writer, v types.VersionBundle) error { return writeUnits(w, s.Units, v.Data) }},
		{"triggers", s.writeTriggers},
	}
	for _, sec := range sections {
		if err := sec.write(w, v); err != nil {
			return fmt.Errorf("writing %s: %w", sec.name, err)
		}
	}
	return nil
}

func (s *Scenario) writePlayerNames(w io.Writer, v types.VersionBundle) error {
	for i, name := range s.PlayerNames {
		if err := writeFixedStr(w, name, playerNameSize); err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
	}
	if v.Data >= dataStringIDs {
		return writeLE(w, s.PlayerNameIDs)
	}
	return nil
}

func (s *Scenario) writeMessages(w io.Writer, v types.VersionBundle) error {
	if err := WriteOptStr(w, s.OriginalFilename); err != nil {
		return fmt.Errorf("original filename: %w", err)
	}

	m := &s.Messages
	ids := []int32{m.ObjectivesID, m.HintsID, m.VictoryID, m.LossID, m.HistoryID}
	texts := []*string{m.Objectives, m.Hints, m.Victory, m.Loss, m.History}
	if v.Data >= dataScouts {
		ids = append(ids, m.ScoutsID)
		texts = append(texts, m.Scouts)
	}
	if v.Data >= dataStringIDs {
		if err := writeLE(w, ids); err != nil {
			return err
		}
	}
	for _, text := range texts {
		if err := WriteOptStr(w, text); err != nil {
			return err
		}
	}

	c := &s.Cinematics
	for _, name := range []*string{c.Pregame, c.Victory, c.Loss, c.Background} {
		if err := WriteOptStr(w, name); err != nil {
			return fmt.Errorf("cinematics: %w", err)
		}
	}
	return nil
}

func (s *Scenario) writePicture(w io.Writer, v types.VersionBundle) error {
	picture := uint32(1)
	if v.Data >= dataPicture {
		picture = v.Picture
		if err := writeLE(w, picture); err != nil {
			return err
		}
	}
	if picture == 0 {
		return nil
	}
	return writeOptBitmap(w, s.Bitmap)
}

func (s *Scenario) writeAI(w io.Writer, _ types.VersionBundle) error {
	for i, name := range s.AINames {
		if err := WriteOptStr(w, name); err != nil {
			return fmt.Errorf("player %d ai name: %w", i, err)
		}
	}
	for i, script := range s.AIScripts {
		if err := WriteOptI32Str(w, script); err != nil {
			return fmt.Errorf("player %d ai script: %w", i, err)
		}
	}
	if err := writeLE(w, s.AITypes); err != nil {
		return err
	}
	return writeSeparator(w)
}

func (s *Scenario) writeResources(w io.Writer, v types.VersionBundle) error {
	for _, res := range s.Resources {
		if err := writeLE(w, res.Food, res.Wood, res.Gold, res.Stone); err != nil {
			return err
		}
		if v.Data >= dataOre {
			if err := writeLE(w, res.Ore); err != nil {
				return err
			}
		}
	}
	return writeSeparator(w)
}

func (s *Scenario) writeDiplomacy(w io.Writer, _ types.VersionBundle) error {
	var raw [NumPlayers][NumPlayers]int32
	for i := range s.Diplomacy {
		for j, stance := range s.Diplomacy[i] {
			raw[i][j] = stance.Int32()
		}
	}
	var allied [NumPlayers]uint32
	for i, v := range s.AlliedVictory {
		allied[i] = bool32(v)
	}
	if err := writeLE(w, raw, allied); err != nil {
		return err
	}
	return writeSeparator(w)
}

func (s *Scenario) writeStartingAges(w io.Writer, v types.VersionBundle) error {
	if v.Data >= dataStartingAges {
		var raw [NumPlayers]int32
		for i, age := range s.StartingAges {
			raw[i] = age.Int32(v.Data)
		}
		if err := writeLE(w, raw); err != nil {
			return err
		}
	}
	return writeSeparator(w)
}

func (s *Scenario) writeMap(w io.Writer, v types.VersionBundle) error {
	if v.Data >= dataCamera {
		if err := writeLE(w, s.CameraX, s.CameraY); err != nil {
			return err
		}
	}
	if v.Data >= dataMapType {
		if err := writeLE(w, s.MapType); err != nil {
			return err
		}
	}
	m := s.Map
	if m == nil {
		m = NewMap(0, 0)
	}
	return m.Encode(w)
}

func (s *Scenario) writeTriggers(w io.Writer, v types.VersionBundle) error {
	if v.Data < dataTriggers {
		return nil
	}
	ts := s.Triggers
	if ts == nil {
		ts = &TriggerSystem{Version: v.Triggers}
	}
	return ts.Encode(w, v.Triggers)
}
