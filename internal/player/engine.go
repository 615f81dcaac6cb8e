package player

import (
	"math"
	"sync/atomic"

	"github.com/basso-labs/ledsign/brightness"
	"github.com/basso-labs/ledsign/movie"
	"github.com/basso-labs/ledsign/timeline"
)

// Engine is the Renderer: it compiles a [movie.Movie] into a
// [timeline.Compiled] master timeline and produces one raster frame per
// [Engine.Play] call.
type Engine struct {
	canvas   Canvas
	registry *timeline.Registry

	original movie.Movie
	compiled *timeline.Compiled

	fps    int
	frames int
	frame  int
	cycle  int

	// brightness is the current perceptual render brightness, in
	// [1,100]. It is updated from a separate goroutine as brightness
	// updates arrive from the broker's pub/sub subscription, so it is
	// held in an atomic rather than a plain field.
	brightness atomic.Int32
}

// New constructs an [Engine] bound to canvas, with fps as the default
// frame rate used when a movie's Sign does not override it.
func New(canvas Canvas, registry *timeline.Registry, fps int) *Engine {
	e := &Engine{
		canvas:   canvas,
		registry: registry,
		fps:      fps,
	}
	e.brightness.Store(100)
	return e
}

// Load compiles m for cycle 0. It deep-copies m first: timeline
// functions and the tween engine may mutate keyframe-derived state in
// place, and Reload must see pristine input every time.
func (e *Engine) Load(m movie.Movie) error {
	e.original = m.Clone()
	return e.compile(0)
}

// Reload recompiles the movie most recently passed to Load, restoring
// its tween state to keyframe zero exactly (invariant 5).
func (e *Engine) Reload() error {
	return e.compile(0)
}

func (e *Engine) compile(cycle int) error {
	c, err := timeline.Load(e.original.Clone(), e.registry, cycle)
	if err != nil {
		return err
	}

	fps := e.fps
	if e.original.Sign.FPS > 0 {
		fps = e.original.Sign.FPS
	}

	e.compiled = c
	e.cycle = cycle
	e.frame = 0
	e.frames = int(math.Ceil(c.Duration * float64(fps)))
	if e.frames < 1 {
		e.frames = 1
	}
	return nil
}

// Play advances the playhead by one frame and draws it, returning
// whether this call wrapped the movie back to frame zero (and therefore
// incremented Cycle).
func (e *Engine) Play() (wrapped bool) {
	for attempt := 0; attempt < e.frames; attempt++ {
		drewAny := e.renderCurrentFrame()
		wrapped = e.advanceFrame()
		if drewAny {
			return wrapped
		}
		if wrapped {
			// A full revolution produced no visible content; stop
			// retrying so an empty movie cannot spin forever.
			return wrapped
		}
	}
	return wrapped
}

// renderCurrentFrame seeks the compiled timeline to the current frame's
// time and draws every active animation in layer order. It reports
// whether any animation was active (drew something).
func (e *Engine) renderCurrentFrame() bool {
	denom := e.frames - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(e.frame) / float64(denom)
	t := e.compiled.Duration * progress

	e.compiled.Seek(t)
	e.canvas.Clear()

	drewAny := false
	for _, anim := range e.compiled.Animations() {
		if !anim.State.Active {
			continue
		}
		drawAnimation(e.canvas, anim, brightness.ClampRender(int(e.brightness.Load())))
		drewAny = true
	}
	return drewAny
}

// advanceFrame increments the playhead, wrapping to frame zero and
// incrementing Cycle when it reaches the end. On a wrap the movie is
// recompiled for the new cycle so timeline functions run once per cycle;
// if that recompilation fails, the previous compiled timeline is kept.
func (e *Engine) advanceFrame() (wrapped bool) {
	e.frame++
	if e.frame >= e.frames {
		e.frame = 0
		e.cycle++
		_ = e.compile(e.cycle)
		return true
	}
	return false
}

// GetImageData returns the canvas' current raw pixel buffer.
func (e *Engine) GetImageData() []byte {
	return e.canvas.ImageData()
}

// Cycle returns the number of full timeline traversals completed.
func (e *Engine) Cycle() int {
	return e.cycle
}

// Frames returns the total number of frames in the currently loaded
// movie.
func (e *Engine) Frames() int {
	return e.frames
}

// SetBrightness updates the perceptual render brightness, clamping it
// into [1,100]. It takes effect on the next Play call.
func (e *Engine) SetBrightness(v int) {
	e.brightness.Store(int32(brightness.ClampRender(v)))
}

// GetBrightness returns the current perceptual render brightness.
func (e *Engine) GetBrightness() int {
	return int(e.brightness.Load())
}
