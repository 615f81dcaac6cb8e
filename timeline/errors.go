package timeline

import "errors"

// ErrUnknownFunc indicates a screenplay entry names a timeline function
// that was never registered. This is a logic error: it is surfaced at
// load time and the caller must refuse to switch to the offending movie.
var ErrUnknownFunc = errors.New("ledsign: timeline: unknown timeline function")

// ErrNoKeyframes indicates an [AnimationDescriptor] was returned with an
// empty Keyframes slice, which violates the "keyframe zero is the
// initial state" contract.
var ErrNoKeyframes = errors.New("ledsign: timeline: animation has no keyframes")
