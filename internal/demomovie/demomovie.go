// Package demomovie provides the default "Hello, World!" movie used by
// cmd/director and cmd/player when no other movie is configured,
// exercising the end-to-end path described in spec.md §8 scenario 1.
package demomovie

import (
	"time"

	"github.com/basso-labs/ledsign/internal/config"
	"github.com/basso-labs/ledsign/movie"
	"github.com/basso-labs/ledsign/timeline"
)

// Duration is how long the default movie's single scene runs before
// looping.
const Duration = 4 * time.Second

// Registry returns a [timeline.Registry] with the "hello" timeline
// function registered.
func Registry() *timeline.Registry {
	reg := timeline.NewRegistry()
	reg.Register("hello", helloTimeline)
	return reg
}

// Movie returns the default single-scene movie: white "Hello, World!"
// text, fading in over the first half second and holding for the rest
// of the cycle.
func Movie() movie.Movie {
	return movie.Movie{
		Sign: movie.Sign{
			Width:  config.DefaultWidth,
			Height: config.DefaultHeight,
			Theme:  "default",
			FPS:    config.DefaultFPS,
		},
		Screenplay: []movie.ScreenplayEntry{
			{Timeline: "hello", Start: 0},
		},
	}
}

func helloTimeline(sign movie.Sign, params, data map[string]any, cycle int) []timeline.AnimationDescriptor {
	return []timeline.AnimationDescriptor{
		{
			Kind:  timeline.KindText,
			Layer: 0,
			Start: 0,
			Props: map[string]any{
				"text":         "Hello, World!",
				"font":         "monospace",
				"fontWeight":   "bold",
				"textAlign":    "center",
				"textBaseline": "middle",
				"fill":         "#ffffff",
			},
			Keyframes: []timeline.Keyframe{
				{Attrs: map[string]any{
					"x": float64(sign.Width) / 2, "y": float64(sign.Height) / 2,
					"fontSize": 0.0, "alpha": 0.0,
				}},
				{Duration: 500 * time.Millisecond, Attrs: map[string]any{
					"x": float64(sign.Width) / 2, "y": float64(sign.Height) / 2,
					"fontSize": 14.0, "alpha": 1.0,
				}},
				{Duration: Duration - 500*time.Millisecond, Attrs: map[string]any{
					"x": float64(sign.Width) / 2, "y": float64(sign.Height) / 2,
					"fontSize": 14.0, "alpha": 1.0,
				}},
			},
		},
	}
}
