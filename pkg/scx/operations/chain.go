package operations

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PackOperations packs a list of operations into a 64-bit integer.
// Each operation takes 8 bits, allowing up to 8 operations in the chain.
// Operations are packed in execution order (first operation in LSB).
func PackOperations(operations []uint8) (uint64, error) {
	if len(operations) > 8 {
		return 0, fmt.Errorf("maximum 8 operations allowed, got %d", len(operations))
	}

	var packed uint64
	for i, op := range operations {
		packed |= uint64(op) << (i * 8)
	}

	return packed, nil
}

// UnpackOperations unpacks a 64-bit integer into a list of operations.
func UnpackOperations(packed uint64) []uint8 {
	var operations []uint8

	for i := 0; i < 8; i++ {
		op := uint8((packed >> (i * 8)) & 0xFF)
		if op == OP_NONE {
			break
		}
		operations = append(operations, op)
	}

	return operations
}

// OperationsToString converts packed operations to a human-readable string.
func OperationsToString(packed uint64) string {
	if packed == 0 {
		return "raw"
	}

	var names []string
	for _, op := range UnpackOperations(packed) {
		names = append(names, strings.ToLower(GetName(op)))
	}
	return strings.Join(names, "|")
}

// StringToOperations parses an operation string such as "bzip2" or
// "deflate|gzip" into packed operations.
func StringToOperations(opString string) (uint64, error) {
	opString = strings.ToLower(strings.TrimSpace(opString))
	if opString == "" || opString == "raw" || opString == "none" {
		return 0, nil
	}

	var operations []uint8
	for _, part := range strings.Split(opString, "|") {
		part = strings.TrimSpace(strings.ToUpper(part))
		if part == "" {
			continue
		}

		op, ok := namedOperations[part]
		if !ok {
			return 0, fmt.Errorf("unsupported operation: %s", part)
		}
		operations = append(operations, op)
	}
	return PackOperations(operations)
}

var namedOperations = map[string]uint8{
	"GZIP":    OP_GZIP,
	"GZ":      OP_GZIP,
	"DEFLATE": OP_DEFLATE,
	"BZIP2":   OP_BZIP2,
	"BZ2":     OP_BZIP2,
}

// archiveExtensions maps outer file extensions to the operation that wraps
// the whole file.
var archiveExtensions = map[string]uint8{
	".bz2": OP_BZIP2,
	".gz":  OP_GZIP,
}

// ChainForPath returns the operations wrapping a file, judged by its
// extension. Plain files have an empty chain.
func ChainForPath(path string) []uint8 {
	if op, ok := archiveExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return []uint8{op}
	}
	return nil
}

// ApplyChain applies a chain of operations to data
func ApplyChain(data []byte, operations []uint8) ([]byte, error) {
	current := data

	for _, opID := range operations {
		op, err := Get(opID)
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", opID, err)
		}

		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ReverseChain reverses a chain of operations on data
func ReverseChain(data []byte, operations []uint8) ([]byte, error) {
	current := data

	for i := len(operations) - 1; i >= 0; i-- {
		opID := operations[i]
		op, err := Get(opID)
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", opID, err)
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}
