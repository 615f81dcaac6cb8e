package player

// fakeCanvas is a [Canvas] that records draw calls instead of
// rasterizing, for tests.
type fakeCanvas struct {
	width, height int
	cleared       int
	rects         int
	texts         int
	saves         int
	restores      int
	buf           []byte
}

func newFakeCanvas(width, height int) *fakeCanvas {
	return &fakeCanvas{width: width, height: height, buf: make([]byte, width*height*4)}
}

func (c *fakeCanvas) Clear() {
	c.cleared++
}

func (c *fakeCanvas) Save() {
	c.saves++
}

func (c *fakeCanvas) Restore() {
	c.restores++
}

func (c *fakeCanvas) FillRect(x, y, width, height float64, fillHex string, alpha float64) {
	c.rects++
}

func (c *fakeCanvas) FillText(text string, x, y float64, font string, fontSize float64, fontWeight string, textAlign, textBaseline, fillHex string, alpha float64) {
	c.texts++
}

func (c *fakeCanvas) ImageData() []byte {
	return c.buf
}
