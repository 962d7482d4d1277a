// Package operations is the registry of reversible byte transformations
// applied to scenario data: the raw DEFLATE body and whole-file archives.
package operations

import (
	"fmt"
	"io"
	"sync"
)

// Operation IDs. They are stable, since packed chains store them.
const (
	OP_NONE = 0x00

	OP_GZIP    = 0x10 // .gz archives
	OP_DEFLATE = 0x11 // raw DEFLATE scenario body
	OP_BZIP2   = 0x13 // .bz2 archives
)

var opNames = map[uint8]string{
	OP_NONE:    "NONE",
	OP_GZIP:    "GZIP",
	OP_DEFLATE: "DEFLATE",
	OP_BZIP2:   "BZIP2",
}

// Operation is a byte transformation together with its inverse.
type Operation interface {
	ID() uint8
	Name() string

	// Apply transforms input, e.g. compresses it.
	Apply(input []byte) ([]byte, error)
	ApplyStream(input io.Reader, output io.Writer) error

	// Reverse undoes Apply.
	Reverse(input []byte) ([]byte, error)
	ReverseStream(input io.Reader, output io.Writer) error
}

// BaseOperation carries the identity of an operation. Implementations embed it.
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o BaseOperation) ID() uint8 {
	return o.OpID
}

func (o BaseOperation) Name() string {
	return o.OpName
}

var (
	registryMu sync.RWMutex
	registry   = make(map[uint8]Operation)
)

// Register makes op available to Get, replacing any operation with the same ID.
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.ID()] = op
}

// Get returns the registered operation for id.
func Get(id uint8) (Operation, error) {
	registryMu.RLock()
	op, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown operation: 0x%02x", id)
	}
	return op, nil
}

// GetName returns the name of an operation ID, registered or not.
func GetName(id uint8) string {
	if name, ok := opNames[id]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%02x", id)
}
