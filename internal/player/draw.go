package player

import (
	"github.com/basso-labs/ledsign/brightness"
	"github.com/basso-labs/ledsign/timeline"
)

// drawAnimation renders one active animation onto canvas within a
// save/restore pair, applying perceptual brightness compensation to its
// fill color first.
func drawAnimation(canvas Canvas, a *timeline.Animation, renderBrightness int) {
	canvas.Save()
	defer canvas.Restore()

	switch a.Descriptor.Kind {
	case timeline.KindRectangle:
		drawRectangle(canvas, a, renderBrightness)
	case timeline.KindText:
		drawText(canvas, a, renderBrightness)
	}
}

func drawRectangle(canvas Canvas, a *timeline.Animation, renderBrightness int) {
	alpha := attrFloat(a, "alpha", 1)
	fill := attrString(a, "fill", "#000000")
	x := attrFloat(a, "x", 0)
	y := attrFloat(a, "y", 0)
	width := attrFloat(a, "width", 0)
	height := attrFloat(a, "height", 0)

	canvas.FillRect(x, y, width, height, adjustedHex(fill, renderBrightness), alpha)
}

func drawText(canvas Canvas, a *timeline.Animation, renderBrightness int) {
	alpha := attrFloat(a, "alpha", 1)
	fill := attrString(a, "fill", "#000000")
	font := attrString(a, "font", "sans-serif")
	fontSize := attrFloat(a, "fontSize", 16)
	fontWeight := attrString(a, "fontWeight", "normal")
	text := attrString(a, "text", "")
	textAlign := attrString(a, "textAlign", "left")
	textBaseline := attrString(a, "textBaseline", "alphabetic")
	x := attrFloat(a, "x", 0)
	y := attrFloat(a, "y", 0)

	canvas.FillText(text, x, y, font, fontSize, fontWeight, textAlign, textBaseline, adjustedHex(fill, renderBrightness), alpha)
}

// adjustedHex applies the brightness-compensation transform to a hex
// fill color.
func adjustedHex(hex string, renderBrightness int) string {
	r, g, b := parseHexColor(hex)
	r, g, b = brightness.Adjust(r, g, b, renderBrightness)
	return formatHexColor(r, g, b)
}

func attrFloat(a *timeline.Animation, name string, fallback float64) float64 {
	v, ok := a.Attr(name)
	if !ok {
		return fallback
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	default:
		return fallback
	}
}

func attrString(a *timeline.Animation, name string, fallback string) string {
	v, ok := a.Attr(name)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}
