package frame

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Run("correct size", func(t *testing.T) {
		f := make(Frame, ByteLength)
		if err := f.Validate(Width, Height); err != nil {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("wrong size", func(t *testing.T) {
		f := make(Frame, ByteLength-1)
		if err := f.Validate(Width, Height); !errors.Is(err, ErrSize) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestAt(t *testing.T) {
	f := make(Frame, ByteLength)
	f[0], f[1], f[2], f[3] = 0x11, 0x22, 0x33, 0xff
	b, g, r, a := f.At(0)
	if b != 0x11 || g != 0x22 || r != 0x33 || a != 0xff {
		t.Fatal("unexpected pixel", b, g, r, a)
	}
}
