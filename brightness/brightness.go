// Package brightness holds the two independent brightness scales used
// by the sign: a 1-100 perceptual target consumed by the player, and a
// 0-255 hardware target consumed by the sender. The two scales are
// unrelated; nothing in this module converts one into the other.
package brightness

// ClampRender clamps v into the player's perceptual brightness range,
// [1, 100].
func ClampRender(v int) int {
	switch {
	case v < 1:
		return 1
	case v > 100:
		return 100
	default:
		return v
	}
}

// ClampHardware clamps v into the sender's hardware brightness range,
// [0, 255].
func ClampHardware(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}

// Adjust applies the perceptual brightness-compensation transform to an
// RGB color, boosting dark tones when the render brightness is below
// 100. At brightness 100 the color is returned unchanged.
//
//	scale      = 1 - 0.7*(1 - brightness/100)
//	avgChannel = (r+g+b)/3
//	darkBoost  = avgChannel < 100 ? (1 - avgChannel/100) * 0.1 : 0
//	scale'     = scale + darkBoost
//	r',g',b'   = min(255, round(channel * scale'))
//
// The 0.7 and 0.1 constants are tuned to the panel's observed crush at
// low hardware brightness; they are not derived from a model.
func Adjust(r, g, b uint8, renderBrightness int) (uint8, uint8, uint8) {
	if renderBrightness >= 100 {
		return r, g, b
	}

	bf := float64(renderBrightness) / 100
	scale := 1 - 0.7*(1-bf)

	avg := (float64(r) + float64(g) + float64(b)) / 3
	darkBoost := 0.0
	if avg < 100 {
		darkBoost = (1 - avg/100) * 0.1
	}
	scale += darkBoost

	return scaleChannel(r, scale), scaleChannel(g, scale), scaleChannel(b, scale)
}

func scaleChannel(c uint8, scale float64) uint8 {
	v := roundHalfAwayFromZero(float64(c) * scale)
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
