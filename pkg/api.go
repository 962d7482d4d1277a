// Package pkg holds the file-level entry points behind the genie-scx commands.
package pkg

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/pkg/scx/convert"
	"github.com/provide-io/genie/go/genie/pkg/scx/format"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

// ConvertOptions controls ConvertFile.
type ConvertOptions struct {
	// Preset names the output version: aoc, hd, up14, up15 or wk.
	Preset string
	// RemapTables is an optional YAML override file for the remap tables.
	RemapTables string
	Logger      hclog.Logger
}

// ConvertFile reads input, converts it to the preset version and writes it
// to output. The "wk" preset also remaps HD Edition unit and terrain IDs.
func ConvertFile(input, output string, opts ConvertOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	version, err := types.Preset(opts.Preset)
	if err != nil {
		return err
	}

	s, err := format.ReadFile(input, logger)
	if err != nil {
		return err
	}

	if strings.EqualFold(opts.Preset, "wk") {
		logger.Info("Applying WololoKingdoms conversion")
		tables, err := loadTables(opts.RemapTables)
		if err != nil {
			return err
		}
		converter, err := convert.NewAutoToWK(
			convert.WithTables(tables),
			convert.WithTarget(version),
			convert.WithLogger(logger.Named("convert")),
		)
		if err != nil {
			return err
		}
		if _, err := converter.Convert(s); err != nil {
			return err
		}
	}

	return format.WriteFile(output, s, version, logger)
}

func loadTables(path string) (convert.Tables, error) {
	if path == "" {
		return convert.DefaultTables(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening remap tables: %w", err)
	}
	defer f.Close()
	return convert.LoadTables(f)
}

// Summary describes a scenario for display.
type Summary struct {
	Version       types.VersionBundle
	Description   string
	PlayerCount   uint32
	ActivePlayers int
	DLC           []types.DLCPackage
	MapWidth      uint32
	MapHeight     uint32
	Units         int
	Triggers      int
	HasBitmap     bool
	BitmapWidth   uint32
	BitmapHeight  uint32
}

// InspectFile reads a scenario and summarizes it.
func InspectFile(path string, logger hclog.Logger) (*Summary, error) {
	s, err := format.ReadFile(path, logger)
	if err != nil {
		return nil, err
	}
	return Summarize(s), nil
}

// Summarize describes s.
func Summarize(s *format.Scenario) *Summary {
	sum := &Summary{
		Version:     s.Version,
		PlayerCount: s.Header.PlayerCount,
		DLC:         s.Header.DLC.Packages,
	}
	if s.Header.Description != nil {
		sum.Description = *s.Header.Description
	}
	for _, p := range s.Players {
		if p.Active != 0 {
			sum.ActivePlayers++
		}
	}
	if s.Map != nil {
		sum.MapWidth, sum.MapHeight = s.Map.Width(), s.Map.Height()
	}
	for _, units := range s.Units {
		sum.Units += len(units)
	}
	if s.Triggers != nil {
		sum.Triggers = len(s.Triggers.Triggers)
	}
	if s.Bitmap != nil {
		sum.HasBitmap = true
		sum.BitmapWidth, sum.BitmapHeight = s.Bitmap.Width, s.Bitmap.Height
	}
	return sum
}
