package format

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/pkg/scx/operations"
	"github.com/provide-io/genie/go/genie/pkg/scx/types"
)

// Reader reads scenario files, unwrapping .bz2 and .gz archives.
type Reader struct {
	path     string
	file     *os.File
	scenario *Scenario
	logger   hclog.Logger
}

// NewReader creates a new scenario file reader
func NewReader(path string) (*Reader, error) {
	return NewReaderWithLogger(path, hclog.NewNullLogger())
}

// NewReaderWithLogger creates a new scenario file reader with a custom logger
func NewReaderWithLogger(path string, logger hclog.Logger) (*Reader, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reader{
		path:   path,
		logger: logger.With("file", path),
	}, nil
}

// Open opens the scenario file
func (r *Reader) Open() error {
	if r.file != nil {
		return nil
	}

	file, err := os.Open(r.path)
	if err != nil {
		return err
	}

	r.file = file
	return nil
}

// Close closes the scenario file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// ReadScenario decodes the file. The result is cached.
func (r *Reader) ReadScenario() (*Scenario, error) {
	if r.scenario != nil {
		return r.scenario, nil
	}
	if err := r.Open(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r.file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	if chain := operations.ChainForPath(r.path); len(chain) > 0 {
		r.logger.Debug("Unwrapping archive", "operations", describeChain(chain))
		if data, err = operations.ReverseChain(data, chain); err != nil {
			return nil, fmt.Errorf("unwrapping %s: %w", r.path, err)
		}
	}

	s, err := ReadWithLogger(bytes.NewReader(data), r.logger)
	if err != nil {
		return nil, err
	}
	r.logger.Info("📖 Read scenario", "version", s.Version.String())
	r.scenario = s
	return s, nil
}

// ReadFile reads the scenario at path.
func ReadFile(path string, logger hclog.Logger) (*Scenario, error) {
	r, err := NewReaderWithLogger(path, logger)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadScenario()
}

// WriteFile writes s to path laid out for version v, wrapping it in an
// archive when the extension asks for one. The file is written in place,
// so a failed write can leave a truncated file behind.
func WriteFile(path string, s *Scenario, v types.VersionBundle, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var buf bytes.Buffer
	if err := s.WriteToVersion(&buf, v); err != nil {
		return err
	}

	data := buf.Bytes()
	if chain := operations.ChainForPath(path); len(chain) > 0 {
		var err error
		if data, err = operations.ApplyChain(data, chain); err != nil {
			return fmt.Errorf("wrapping %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("💾 Wrote scenario", "file", path, "version", v.String(), "size", len(data))
	return nil
}

func describeChain(chain []uint8) string {
	packed, err := operations.PackOperations(chain)
	if err != nil {
		return "invalid"
	}
	return operations.OperationsToString(packed)
}
