package timeline

import "time"

// TweenState is an animation's mutable interpolated state: the current
// value of each tweened attribute, plus the Active flag toggled by
// segment enter/exit.
type TweenState struct {
	Attrs  map[string]any
	Active bool
}

// segment is one (previous keyframe -> keyframe) span of an animation's
// tween track, expressed as cumulative offsets from the animation's own
// start.
type segment struct {
	startOffset time.Duration
	endOffset   time.Duration
	from        map[string]any
	to          map[string]any
}

// Animation is a compiled tween track for one [AnimationDescriptor]: its
// static props, its segments, and its current [TweenState].
type Animation struct {
	Descriptor AnimationDescriptor
	State      TweenState

	segments []segment
	// unbounded is true when the descriptor has a single keyframe and
	// therefore never completes: once reached it stays active until the
	// end of the movie, including while later scenes play.
	unbounded bool
	// duration is the total span of the tween track, zero when unbounded.
	duration time.Duration
}

// newAnimation compiles an [AnimationDescriptor] into an [Animation].
// The initial state is a deep copy of keyframe zero's attributes, with
// duration stripped, guarding against in-place mutation by later seeks.
func newAnimation(d AnimationDescriptor) (*Animation, error) {
	if len(d.Keyframes) == 0 {
		return nil, ErrNoKeyframes
	}

	initial := cloneAttrs(d.Keyframes[0].Attrs)

	a := &Animation{
		Descriptor: d,
		State: TweenState{
			Attrs:  cloneAttrs(initial),
			Active: false,
		},
	}

	if len(d.Keyframes) == 1 {
		a.unbounded = true
		return a, nil
	}

	prev := initial
	var cursor time.Duration
	for _, kf := range d.Keyframes[1:] {
		next := cursor + kf.Duration
		a.segments = append(a.segments, segment{
			startOffset: cursor,
			endOffset:   next,
			from:        prev,
			to:          kf.Attrs,
		})
		cursor = next
		prev = mergeAttrs(prev, kf.Attrs)
	}
	a.duration = cursor
	return a, nil
}

// seek updates a's tween state and active flag for local time lt
// (seconds elapsed since the animation's own start, which may be
// negative before the animation begins).
func (a *Animation) seek(lt float64) {
	if lt < 0 {
		a.State.Active = false
		return
	}

	if a.unbounded {
		a.State.Active = true
		return
	}

	total := a.duration.Seconds()
	if lt > total {
		a.State.Active = false
		return
	}

	a.State.Active = true
	if len(a.segments) == 0 {
		return
	}

	ltDur := time.Duration(lt * float64(time.Second))
	seg := a.segments[len(a.segments)-1]
	for _, s := range a.segments {
		if ltDur <= s.endOffset {
			seg = s
			break
		}
	}

	span := seg.endOffset - seg.startOffset
	var progress float64
	if span > 0 {
		progress = float64(ltDur-seg.startOffset) / float64(span)
	} else {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	a.State.Attrs = interpolateAttrs(seg.from, seg.to, progress)
}

// Attr resolves an attribute by name, checking the tween state first and
// falling back to the animation's static props. This lets keyframes
// tween a subset of attributes while leaving the rest fixed.
func (a *Animation) Attr(name string) (any, bool) {
	if v, ok := a.State.Attrs[name]; ok {
		return v, true
	}
	v, ok := a.Descriptor.Props[name]
	return v, ok
}

func cloneAttrs(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// mergeAttrs overlays changed on top of base, returning a new map.
func mergeAttrs(base, changed map[string]any) map[string]any {
	out := cloneAttrs(base)
	for k, v := range changed {
		out[k] = v
	}
	return out
}

// interpolateAttrs tweens numeric attributes linearly between from and
// to at the given progress in [0,1]. Non-numeric attributes (colors
// expressed as hex strings, text content, alignment keywords, ...) are
// not interpolated: the target value takes effect once progress reaches
// 1, matching a discrete "step" tween.
func interpolateAttrs(from, to map[string]any, progress float64) map[string]any {
	out := cloneAttrs(from)
	for k, tv := range to {
		fv, ok := from[k]
		if !ok {
			out[k] = tv
			continue
		}
		tf, tok := toFloat(tv)
		ff, fok := toFloat(fv)
		if !tok || !fok {
			if progress >= 1 {
				out[k] = tv
			}
			continue
		}
		out[k] = ff + (tf-ff)*progress
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
