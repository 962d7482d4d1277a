package pkg

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/pkg/scx/format"
)

// VerificationReport lists the problems VerifyScenario found.
type VerificationReport struct {
	Path     string
	Problems []string
	Warnings []string
}

// OK reports whether verification found no problems.
func (r *VerificationReport) OK() bool {
	return len(r.Problems) == 0
}

func (r *VerificationReport) problem(msg string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(msg, args...))
}

func (r *VerificationReport) warn(msg string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(msg, args...))
}

// VerifyScenario decodes a scenario, re-encodes it at the detected version,
// decodes the result and re-encodes once more. Both encodings must be
// identical. It also checks the structure for inconsistencies the codecs
// tolerate. A non-nil error means the file could not be read at all; a
// failed check is returned in the report, with ErrVerificationFailed.
func VerifyScenario(path string, logger hclog.Logger) (*VerificationReport, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	report := &VerificationReport{Path: path}

	s, err := format.ReadFile(path, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("✓ Scenario decoded", "version", s.Version.String())

	first, err := encode(s)
	if err != nil {
		report.problem("re-encoding failed: %v", err)
		return report, finish(report, logger)
	}
	logger.Info("✓ Scenario re-encoded", "size", len(first))

	again, err := format.Read(bytes.NewReader(first))
	if err != nil {
		report.problem("decoding re-encoded scenario failed: %v", err)
		return report, finish(report, logger)
	}
	if again.Version != s.Version {
		report.problem("version changed across round trip: %s -> %s", s.Version, again.Version)
	}

	second, err := encode(again)
	switch {
	case err != nil:
		report.problem("second re-encoding failed: %v", err)
	case !bytes.Equal(first, second):
		report.problem("re-encoded scenario is not stable (%d vs %d bytes)", len(first), len(second))
	default:
		logger.Info("✓ Round trip stable")
	}

	checkStructure(s, report)
	return report, finish(report, logger)
}

func encode(s *format.Scenario) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkStructure(s *format.Scenario, report *VerificationReport) {
	if len(s.Units) != format.UnitSections {
		report.warn("%d unit sections, expected %d", len(s.Units), format.UnitSections)
	}
	if s.Header.PlayerCount > format.NumPlayers {
		report.problem("header declares %d players", s.Header.PlayerCount)
	}

	ts := s.Triggers
	if ts == nil {
		return
	}
	if !isPermutation(ts.Order, len(ts.Triggers)) {
		report.warn("trigger order is not a permutation of %d triggers", len(ts.Triggers))
	}
	effectFields := len(format.EffectLayout(ts.Version))
	conditionFields := len(format.ConditionLayout(ts.Version))
	for i, t := range ts.Triggers {
		for j, e := range t.Effects {
			if len(e.Fields) != effectFields {
				report.warn("trigger %d effect %d has %d fields, layout has %d", i, j, len(e.Fields), effectFields)
			}
		}
		for j, c := range t.Conditions {
			if len(c.Fields) != conditionFields {
				report.warn("trigger %d condition %d has %d fields, layout has %d", i, j, len(c.Fields), conditionFields)
			}
		}
	}
}

func isPermutation(order []int32, n int) bool {
	if len(order) != n {
		return n == 0
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || int(v) >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func finish(report *VerificationReport, logger hclog.Logger) error {
	for _, w := range report.Warnings {
		logger.Warn("  Verification warning", "details", w)
	}
	if report.OK() {
		logger.Info("✓ Scenario verification passed")
		return nil
	}
	logger.Error("✗ Scenario verification failed", "error_count", len(report.Problems))
	for _, p := range report.Problems {
		logger.Error("  Verification error", "details", p)
	}
	return ErrVerificationFailed
}
