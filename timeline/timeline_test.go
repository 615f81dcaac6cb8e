package timeline

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/basso-labs/ledsign/movie"
)

func textFunc(sign movie.Sign, params map[string]any, data map[string]any, cycle int) []AnimationDescriptor {
	return []AnimationDescriptor{
		{
			Kind:  KindText,
			Layer: 0,
			Start: 0,
			Props: map[string]any{"fill": "#ffffff", "text": params["text"]},
			Keyframes: []Keyframe{
				{Attrs: map[string]any{"alpha": 0.0, "x": 0.0}},
				{Duration: time.Second, Attrs: map[string]any{"alpha": 1.0, "x": 100.0}},
			},
		},
	}
}

func newRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("text", textFunc)
	return reg
}

func loadTestMovie(t *testing.T) (movie.Movie, *Compiled) {
	t.Helper()
	m := movie.Movie{
		Sign:       movie.Sign{Width: 320, Height: 64},
		Screenplay: []movie.ScreenplayEntry{{Timeline: "text", Start: 0, Params: map[string]any{"text": "hi"}}},
	}
	c, err := Load(m, newRegistry(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return m, c
}

func TestLoadInitialStateMatchesKeyframeZero(t *testing.T) {
	_, c := loadTestMovie(t)
	c.Seek(0)

	anims := c.Animations()
	if len(anims) != 1 {
		t.Fatalf("expected 1 animation, got %d", len(anims))
	}
	alpha, _ := anims[0].Attr("alpha")
	x, _ := anims[0].Attr("x")
	if alpha != 0.0 || x != 0.0 {
		t.Fatalf("unexpected initial state: alpha=%v x=%v", alpha, x)
	}
}

// TestReloadRestoresInitialStateExactly implements spec.md §8 invariant
// 5: the tween state at t=0 must deep-equal keyframe zero's attributes,
// even after a prior Seek mutated the compiled timeline and the movie
// was reloaded from scratch. go-cmp diffs the whole state map rather
// than checking one field, to catch in-place mutation leaking through
// any attribute, not just the one a hand-picked assertion happens to
// read.
func TestReloadRestoresInitialStateExactly(t *testing.T) {
	m, c := loadTestMovie(t)
	c.Seek(0)
	keyframeZero := snapshotAttrs(c.Animations()[0].State.Attrs)

	c.Seek(1.0) // advance past the tween
	advanced := c.Animations()[0].State.Attrs
	if diff := cmp.Diff(keyframeZero, advanced); diff == "" {
		t.Fatal("test setup broken: animation state did not advance past keyframe zero")
	}

	reloaded, err := Load(m, newRegistry(), 0)
	if err != nil {
		t.Fatal(err)
	}
	reloaded.Seek(0)

	got := reloaded.Animations()[0].State.Attrs
	if diff := cmp.Diff(keyframeZero, got); diff != "" {
		t.Fatalf("reload did not restore keyframe zero exactly (-want +got):\n%s", diff)
	}
}

func snapshotAttrs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func TestSeekInterpolatesLinearly(t *testing.T) {
	_, c := loadTestMovie(t)
	c.Seek(0.5)

	alpha, _ := c.Animations()[0].Attr("alpha")
	if alpha.(float64) < 0.49 || alpha.(float64) > 0.51 {
		t.Fatalf("expected alpha ~0.5 at midpoint, got %v", alpha)
	}
}

func TestAnimationInactiveBeforeStartAndAfterCompletion(t *testing.T) {
	_, c := loadTestMovie(t)

	c.Seek(-1)
	if c.Animations()[0].State.Active {
		t.Fatal("expected inactive before start")
	}

	c.Seek(0.5)
	if !c.Animations()[0].State.Active {
		t.Fatal("expected active during tween")
	}

	c.Seek(2.0)
	if c.Animations()[0].State.Active {
		t.Fatal("expected inactive after completion")
	}
}

func TestAnimationsSortedByLayer(t *testing.T) {
	reg := NewRegistry()
	reg.Register("layered", func(sign movie.Sign, params map[string]any, data map[string]any, cycle int) []AnimationDescriptor {
		return []AnimationDescriptor{
			{Kind: KindRectangle, Layer: 2, Keyframes: []Keyframe{{Attrs: map[string]any{}}}},
			{Kind: KindRectangle, Layer: 0, Keyframes: []Keyframe{{Attrs: map[string]any{}}}},
			{Kind: KindRectangle, Layer: 1, Keyframes: []Keyframe{{Attrs: map[string]any{}}}},
		}
	})
	m := movie.Movie{Screenplay: []movie.ScreenplayEntry{{Timeline: "layered"}}}
	c, err := Load(m, reg, 0)
	if err != nil {
		t.Fatal(err)
	}
	anims := c.Animations()
	for i := 1; i < len(anims); i++ {
		if anims[i-1].Descriptor.Layer > anims[i].Descriptor.Layer {
			t.Fatal("animations not sorted by ascending layer")
		}
	}
}

func TestLoadUnknownTimelineFunction(t *testing.T) {
	m := movie.Movie{Screenplay: []movie.ScreenplayEntry{{Timeline: "does-not-exist"}}}
	if _, err := Load(m, NewRegistry(), 0); err != ErrUnknownFunc {
		t.Fatalf("expected ErrUnknownFunc, got %v", err)
	}
}
