package compress

import (
	"bytes"
	"testing"

	"github.com/provide-io/genie/go/genie/pkg/scx/operations"
)

func TestOperationsRoundTrip(t *testing.T) {
	input := bytes.Repeat([]byte("genie scenario body \x00\x00\x00\x00"), 512)

	tests := []struct {
		name string
		op   operations.Operation
	}{
		{"deflate", NewDeflateOperation()},
		{"bzip2", NewBzip2Operation()},
		{"gzip", NewGzipOperation()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.op.Apply(input)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if len(compressed) >= len(input) {
				t.Errorf("compressed size %d not smaller than input %d", len(compressed), len(input))
			}

			output, err := tt.op.Reverse(compressed)
			if err != nil {
				t.Fatalf("Reverse() error = %v", err)
			}
			if !bytes.Equal(output, input) {
				t.Error("Reverse(Apply(x)) != x")
			}

			var streamed bytes.Buffer
			if err := tt.op.ApplyStream(bytes.NewReader(input), &streamed); err != nil {
				t.Fatalf("ApplyStream() error = %v", err)
			}
			var restored bytes.Buffer
			if err := tt.op.ReverseStream(&streamed, &restored); err != nil {
				t.Fatalf("ReverseStream() error = %v", err)
			}
			if !bytes.Equal(restored.Bytes(), input) {
				t.Error("stream round trip mismatch")
			}
		})
	}
}

func TestDeflateIsRaw(t *testing.T) {
	compressed, err := NewDeflateOperation().Apply([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	// zlib and gzip containers start with 0x78 and 0x1f respectively
	if compressed[0] == 0x78 || compressed[0] == 0x1f {
		t.Errorf("deflate output has a container header: % x", compressed[:2])
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []uint8{operations.OP_DEFLATE, operations.OP_BZIP2, operations.OP_GZIP} {
		op, err := operations.Get(id)
		if err != nil {
			t.Fatalf("Get(0x%02x) error = %v", id, err)
		}
		if op.ID() != id {
			t.Errorf("Get(0x%02x).ID() = 0x%02x", id, op.ID())
		}
	}
}

func TestChainRoundTrip(t *testing.T) {
	input := []byte("chain payload chain payload chain payload")
	chain := []uint8{operations.OP_DEFLATE, operations.OP_BZIP2}

	packed, err := operations.PackOperations(chain)
	if err != nil {
		t.Fatal(err)
	}
	if got := operations.OperationsToString(packed); got != "deflate|bzip2" {
		t.Errorf("OperationsToString() = %q", got)
	}

	applied, err := operations.ApplyChain(input, chain)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := operations.ReverseChain(applied, chain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, input) {
		t.Error("ReverseChain(ApplyChain(x)) != x")
	}
}

func TestBzip2Level(t *testing.T) {
	input := bytes.Repeat([]byte("level "), 1024)
	op := NewBzip2Operation()
	op.Level = 1
	compressed, err := op.Apply(input)
	if err != nil {
		t.Fatal(err)
	}
	// bzip2 level is the block size digit after the "BZh" magic
	if !bytes.HasPrefix(compressed, []byte("BZh1")) {
		t.Errorf("header = %q, want BZh1", compressed[:4])
	}
	restored, err := NewBzip2Operation().Reverse(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, input) {
		t.Error("round trip mismatch")
	}
}
