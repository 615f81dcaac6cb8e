// Package sender implements the Transport: a hard-real-time frame pump
// that repackages BGRA frames into the FPGA's row and commit packets and
// emits them on a raw Layer-2 socket on a 240Hz deadline.
package sender

import (
	"net"

	"github.com/basso-labs/ledsign/frame"
)

// EtherType values used by the FPGA's proprietary Layer-2 protocol
// (spec.md §4.1, §6).
const (
	EtherTypeRow    = 0x5500
	EtherTypeCommit = 0x0107
)

// DestMAC is the FPGA receiver card's fixed hardware address.
var DestMAC = net.HardwareAddr{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}

// Rows is the number of row packets emitted per frame on the canonical
// 320x64 sign; a [Sender] emits one row packet per row of its configured
// height.
const Rows = frame.Height

// rowHeaderLen is the length of the fixed row-packet header.
const rowHeaderLen = 7

// commitPayloadLen is the length of the commit packet's payload.
const commitPayloadLen = 98

// commit packet byte offsets (spec.md §4.1).
const (
	commitOffsetBrightness      = 21
	commitOffsetGammaFlag       = 22
	commitOffsetBrightnessRed   = 24
	commitOffsetBrightnessGreen = 25
	commitOffsetBrightnessBlue  = 26
)

// commitGammaFlag is a constant value the FPGA protocol requires at
// commitOffsetGammaFlag.
const commitGammaFlag = 5

// rowPayloadLen returns the length of a row packet's payload for the
// given pixel width.
func rowPayloadLen(width int) int {
	return rowHeaderLen + width*3
}

// buildRowHeader writes the 7-byte row header into buf[:7]: row index,
// two reserved zero bytes, big-endian width, and the fixed trailer
// 0x08, 0x88.
func buildRowHeader(buf []byte, row, width int) {
	buf[0] = byte(row)
	buf[1] = 0
	buf[2] = 0
	buf[3] = byte(width >> 8)
	buf[4] = byte(width)
	buf[5] = 0x08
	buf[6] = 0x88
}

// fillRowPixels copies one scanline of f (BGRA) into buf starting at
// rowHeaderLen, reordering each pixel to packed RGB and dropping alpha.
func fillRowPixels(buf []byte, f frame.Frame, row, width int) {
	rowStart := row * width * frame.BytesPerPixel
	out := rowHeaderLen
	for x := 0; x < width; x++ {
		off := rowStart + x*frame.BytesPerPixel
		b, g, r := f[off], f[off+1], f[off+2]
		buf[out] = r
		buf[out+1] = g
		buf[out+2] = b
		out += 3
	}
}

// buildCommitPayload zero-fills buf (which must be commitPayloadLen
// bytes) and sets the brightness and gamma-flag fields.
func buildCommitPayload(buf []byte, hardwareBrightness int) {
	for i := range buf {
		buf[i] = 0
	}
	b := byte(hardwareBrightness)
	buf[commitOffsetBrightness] = b
	buf[commitOffsetGammaFlag] = commitGammaFlag
	buf[commitOffsetBrightnessRed] = b
	buf[commitOffsetBrightnessGreen] = b
	buf[commitOffsetBrightnessBlue] = b
}
