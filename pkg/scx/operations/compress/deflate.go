package compress

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/provide-io/genie/go/genie/pkg/scx/operations"
)

func init() {
	operations.Register(NewDeflateOperation())
}

// DeflateOperation implements raw DEFLATE (RFC 1951) with no container
// header or checksum.
type DeflateOperation struct {
	operations.BaseOperation
	Level int
}

// NewDeflateOperation creates a new DEFLATE operation at best compression
func NewDeflateOperation() *DeflateOperation {
	return &DeflateOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_DEFLATE,
			OpName: "DEFLATE",
		},
		Level: flate.BestCompression,
	}
}

// Apply compresses data using DEFLATE
func (o *DeflateOperation) Apply(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := o.ApplyStream(bytes.NewReader(input), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplyStream compresses a stream using DEFLATE
func (o *DeflateOperation) ApplyStream(input io.Reader, output io.Writer) error {
	fw, err := flate.NewWriter(output, o.Level)
	if err != nil {
		return fmt.Errorf("creating deflate writer: %w", err)
	}

	if _, err := io.Copy(fw, input); err != nil {
		fw.Close()
		return fmt.Errorf("compressing stream: %w", err)
	}

	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing deflate writer: %w", err)
	}
	return nil
}

// Reverse decompresses DEFLATE data
func (o *DeflateOperation) Reverse(input []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(input))
	defer fr.Close()

	data, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("reading deflate data: %w", err)
	}
	return data, nil
}

// ReverseStream decompresses a DEFLATE stream
func (o *DeflateOperation) ReverseStream(input io.Reader, output io.Writer) error {
	fr := flate.NewReader(input)
	defer fr.Close()

	if _, err := io.Copy(output, fr); err != nil {
		return fmt.Errorf("decompressing stream: %w", err)
	}
	return nil
}
