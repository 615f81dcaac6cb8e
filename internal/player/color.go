package player

import "fmt"

// parseHexColor parses a "#rrggbb" string into its three channels. A
// malformed string is treated as black, matching a canvas's own
// leniency toward bad CSS color values rather than failing a frame.
func parseHexColor(s string) (r, g, b uint8) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0
	}
	return uint8(ri), uint8(gi), uint8(bi)
}

// formatHexColor renders r, g, b back into a "#rrggbb" string.
func formatHexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
