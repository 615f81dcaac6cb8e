package timeline

import (
	"sort"

	"github.com/basso-labs/ledsign/movie"
)

// Scene is a sub-timeline compiled from one screenplay entry: a start
// offset within the master timeline, plus the animations it produced.
type Scene struct {
	Start      float64
	Animations []*Animation
	Duration   float64
}

// Compiled is a master timeline spanning [0, Duration], composed of
// per-scene sub-timelines. Seek updates every animation's tween state to
// its interpolated value at the given time.
type Compiled struct {
	Scenes   []*Scene
	Duration float64

	// ordered is every animation across every scene, sorted ascending by
	// layer for painter's-order drawing.
	ordered []*Animation
}

// Load compiles m into a [Compiled] master timeline. It does not mutate
// m: callers that need immutable reloads should keep their own pristine
// copy and call Load again rather than reusing a Compiled's internals.
func Load(m movie.Movie, reg *Registry, cycle int) (*Compiled, error) {
	c := &Compiled{}

	for _, entry := range m.Screenplay {
		fn, err := reg.Lookup(entry.Timeline)
		if err != nil {
			return nil, err
		}

		descriptors := fn(m.Sign, entry.Params, m.Data, cycle)

		scene := &Scene{Start: entry.Start}
		for _, d := range descriptors {
			anim, err := newAnimation(d)
			if err != nil {
				return nil, err
			}
			scene.Animations = append(scene.Animations, anim)
			if anim.unbounded {
				continue
			}
			end := anim.Descriptor.Start + anim.duration.Seconds()
			if end > scene.Duration {
				scene.Duration = end
			}
		}

		c.Scenes = append(c.Scenes, scene)
		c.ordered = append(c.ordered, scene.Animations...)

		end := entry.Start + scene.Duration
		if end > c.Duration {
			c.Duration = end
		}
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		return c.ordered[i].Descriptor.Layer < c.ordered[j].Descriptor.Layer
	})

	return c, nil
}

// Seek updates every animation's tween state and active flag to its
// interpolated value at time t (seconds since the master timeline's
// start).
func (c *Compiled) Seek(t float64) {
	for _, scene := range c.Scenes {
		localT := t - scene.Start
		for _, anim := range scene.Animations {
			anim.seek(localT - anim.Descriptor.Start)
		}
	}
}

// Animations returns every animation in the compiled movie, in
// non-decreasing layer order.
func (c *Compiled) Animations() []*Animation {
	return c.ordered
}
