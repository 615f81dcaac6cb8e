// Package player implements the Renderer: it compiles a movie into a
// compiled timeline and produces one raster frame per Play call.
package player

// Canvas is the off-screen drawing surface the player renders onto. The
// concrete rasterizer is an external collaborator (spec.md §1); this
// module only consumes it.
type Canvas interface {
	// Clear erases the canvas to its background.
	Clear()

	// Save pushes the current drawing state.
	Save()

	// Restore pops the most recently saved drawing state.
	Restore()

	// FillRect draws a filled rectangle at (x, y) with the given size
	// and fill color (a "#rrggbb" hex string) and alpha in [0,1].
	FillRect(x, y, width, height float64, fillHex string, alpha float64)

	// FillText draws filled text with the given font properties.
	FillText(text string, x, y float64, font string, fontSize float64, fontWeight string, textAlign, textBaseline, fillHex string, alpha float64)

	// ImageData returns the canvas' raw pixel buffer in BGRA order,
	// row-major top to bottom, length width*height*4.
	ImageData() []byte
}
