// Package frame defines the raster buffer that flows between the player
// and the sender.
package frame

import "errors"

// Width is the sign's pixel width.
const Width = 320

// Height is the sign's pixel height.
const Height = 64

// BytesPerPixel is the number of bytes used per BGRA pixel.
const BytesPerPixel = 4

// ByteLength is the size in bytes of a valid [Frame].
const ByteLength = Width * Height * BytesPerPixel

// ErrSize indicates a frame does not have the expected byte length. The
// sender treats this as a protocol violation: log and drop.
var ErrSize = errors.New("ledsign: frame: size mismatch")

// Frame is a contiguous BGRA buffer in canvas scan order (row-major, top
// to bottom). A valid Frame for the canonical 320x64 sign always has
// length [ByteLength]; [Frame.Validate] accepts the expected geometry
// explicitly so the same type serves any transport configured for a
// different sign size.
type Frame []byte

// Validate returns [ErrSize] if f's length does not equal
// width*height*BytesPerPixel.
func (f Frame) Validate(width, height int) error {
	if len(f) != width*height*BytesPerPixel {
		return ErrSize
	}
	return nil
}

// At returns the BGRA bytes for pixel index i (0 <= i < Width*Height).
func (f Frame) At(i int) (b, g, r, a byte) {
	off := i * BytesPerPixel
	return f[off], f[off+1], f[off+2], f[off+3]
}
