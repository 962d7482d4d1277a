package format

import (
	"fmt"
	"io"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

const (
	// PaletteSize is the fixed number of palette entries in an embedded bitmap.
	PaletteSize = 256

	bitmapInfoHeaderSize = 40
	maxBitmapPixels      = 1 << 26
)

// BitmapColor is one palette entry: red, green, blue and a reserved byte.
type BitmapColor struct {
	R, G, B  uint8
	Reserved uint8
}

// bitmapInfoHeader is the scalar part of a BITMAPINFOHEADER.
type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapPalette [PaletteSize]BitmapColor

// BitmapInfo is the DIB header followed by its palette.
type BitmapInfo struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
	Colors        []BitmapColor
}

func readBitmapInfo(r io.Reader) (BitmapInfo, error) {
	hdr, err := readLE[bitmapInfoHeader](r)
	if err != nil {
		return BitmapInfo{}, err
	}
	palette, err := readLE[bitmapPalette](r)
	if err != nil {
		return BitmapInfo{}, err
	}
	return BitmapInfo{
		Size:          hdr.Size,
		Width:         hdr.Width,
		Height:        hdr.Height,
		Planes:        hdr.Planes,
		BitCount:      hdr.BitCount,
		Compression:   hdr.Compression,
		SizeImage:     hdr.SizeImage,
		XPelsPerMeter: hdr.XPelsPerMeter,
		YPelsPerMeter: hdr.YPelsPerMeter,
		ClrUsed:       hdr.ClrUsed,
		ClrImportant:  hdr.ClrImportant,
		Colors:        palette[:],
	}, nil
}

func (info *BitmapInfo) encode(w io.Writer) error {
	if len(info.Colors) != PaletteSize {
		panic(fmt.Sprintf("format: bitmap palette has %d entries, want %d", len(info.Colors), PaletteSize))
	}
	hdr := bitmapInfoHeader{
		Size:          info.Size,
		Width:         info.Width,
		Height:        info.Height,
		Planes:        info.Planes,
		BitCount:      info.BitCount,
		Compression:   info.Compression,
		SizeImage:     info.SizeImage,
		XPelsPerMeter: info.XPelsPerMeter,
		YPelsPerMeter: info.YPelsPerMeter,
		ClrUsed:       info.ClrUsed,
		ClrImportant:  info.ClrImportant,
	}
	return writeLE(w, hdr, info.Colors)
}

// Bitmap is a Genie-style embedded bitmap: a palette BMP with some metadata.
type Bitmap struct {
	OwnMemory   uint32
	Width       uint32
	Height      uint32
	Orientation uint16
	Info        BitmapInfo
	// Pixels holds Height rows of AlignedWidth bytes.
	Pixels []byte
}

// AlignedWidth rounds a row width up to the 4-byte DIB row alignment.
func AlignedWidth(width uint32) uint32 {
	return (width + 3) &^ 3
}

// NewBitmap creates an 8-bit palette bitmap with a zeroed palette and pixel buffer.
func NewBitmap(width, height uint32) *Bitmap {
	size := AlignedWidth(width) * height
	return &Bitmap{
		OwnMemory: 1,
		Width:     width,
		Height:    height,
		Info: BitmapInfo{
			Size:      bitmapInfoHeaderSize,
			Width:     int32(width),
			Height:    int32(height),
			Planes:    1,
			BitCount:  8,
			SizeImage: size,
			ClrUsed:   PaletteSize,
			Colors:    make([]BitmapColor, PaletteSize),
		},
		Pixels: make([]byte, size),
	}
}

// ReadBitmap reads an embedded bitmap. It returns nil, nil when either
// dimension is zero: that is the wire form of "no bitmap", and only the
// four leading fields are present.
func ReadBitmap(r io.Reader) (*Bitmap, error) {
	ownMemory, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	width, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	height, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	orientation, err := readLE[uint16](r)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return nil, nil
	}

	info, err := readBitmapInfo(r)
	if err != nil {
		return nil, fmt.Errorf("reading bitmap header: %w", err)
	}

	size := uint64(AlignedWidth(width)) * uint64(height)
	if size > maxBitmapPixels {
		return nil, fmt.Errorf("%w: bitmap %dx%d too large", scxerrors.ErrInvalidLength, width, height)
	}
	pixels := make([]byte, size)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, fmt.Errorf("reading bitmap pixels: %w", err)
	}

	return &Bitmap{
		OwnMemory:   ownMemory,
		Width:       width,
		Height:      height,
		Orientation: orientation,
		Info:        info,
		Pixels:      pixels,
	}, nil
}

// Encode writes the bitmap. The palette must have exactly PaletteSize
// entries and the pixel buffer must match the dimensions.
func (b *Bitmap) Encode(w io.Writer) error {
	if want := uint64(AlignedWidth(b.Width)) * uint64(b.Height); uint64(len(b.Pixels)) != want {
		panic(fmt.Sprintf("format: bitmap pixel buffer has %d bytes, want %d", len(b.Pixels), want))
	}
	if err := writeLE(w, b.OwnMemory, b.Width, b.Height, b.Orientation); err != nil {
		return err
	}
	if err := b.Info.encode(w); err != nil {
		return err
	}
	_, err := w.Write(b.Pixels)
	return err
}

// WriteEmptyBitmap writes the "no bitmap" form: four zero leading fields.
func WriteEmptyBitmap(w io.Writer) error {
	return writeLE(w, uint32(0), uint32(0), uint32(0), uint16(0))
}

// writeOptBitmap writes b, or the empty form when b is nil.
func writeOptBitmap(w io.Writer, b *Bitmap) error {
	if b == nil {
		return WriteEmptyBitmap(w)
	}
	return b.Encode(w)
}
