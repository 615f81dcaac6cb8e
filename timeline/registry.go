package timeline

import "github.com/basso-labs/ledsign/movie"

// Func is a pure timeline function: given the sign, the screenplay
// entry's params, the movie's data bag, and the current cycle index, it
// returns the animations active for one invocation of its scene. It is
// invoked once per cycle, so content may legitimately vary between
// loops (e.g. a theme color rotation keyed by cycle).
type Func func(sign movie.Sign, params map[string]any, data map[string]any, cycle int) []AnimationDescriptor

// Registry is a static, string-keyed lookup table of timeline functions.
// Dynamic loading is not required: a package-level registry populated at
// startup is sufficient.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{}}
}

// Register adds fn under name, replacing any previous registration.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the function registered under name, or [ErrUnknownFunc].
func (r *Registry) Lookup(name string) (Func, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, ErrUnknownFunc
	}
	return fn, nil
}
