/*
Package helpers defines the helper call contract (spec.md §4.3.6) and
the registry of built-in helpers every interpreter starts with. The
registry follows the shape of go-mix's objects.Builtins: a flat,
name-keyed table populated at construction time rather than assembled
through reflection, so looking a helper up is a single map access.
*/
package helpers

import "github.com/akashmaji946/gostache/runtime"

// Options is the second argument every helper receives: the block
// bodies it can render (for block helpers; both nil for a value
// helper), its hash arguments, and the callbacks it uses to evaluate
// those bodies against a given context.
type Options struct {
	Hash map[string]runtime.Value

	// HasProgram/HasInverse report whether the {{#helper}}...{{/helper}}
	// call site supplied a main/else branch at all, independent of
	// whether that branch is non-empty, so a helper like {{#if}} can
	// tell "no else given" apart from "else given but empty".
	HasProgram bool
	HasInverse bool

	// Fn renders the main branch. A nil ctx renders against whatever
	// context is already in effect, without pushing a new frame (what
	// {{#if}}/{{#unless}} want); a non-nil ctx is pushed as the current
	// context before rendering and popped after. data, if non-nil,
	// becomes a new @-data frame for the duration of that render (what
	// {{#each}} uses for @index/@key/@first/@last).
	Fn func(ctx runtime.Value, data map[string]runtime.Value) (string, error)

	// Inverse renders the {{else}} branch the same way Fn renders the
	// main one.
	Inverse func(ctx runtime.Value, data map[string]runtime.Value) (string, error)
}

// Func is the signature every helper, block or value, implements:
// positional parameters already resolved to runtime.Values, plus
// Options. A value helper ignores Fn/Inverse/HasProgram/HasInverse; a
// block helper typically ignores nothing.
type Func func(args []runtime.Value, opts Options) (runtime.Value, error)

// Registry is a name -> Func table. It carries no other state: helper
// functions close over whatever they need, the same way go-mix's
// Builtin.Callback values do.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry pre-populated with every built-in
// helper (spec.md §4.3's if/unless/with/each and the comparison/
// logic/lookup value helpers).
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	registerBlockHelpers(r)
	registerValueHelpers(r)
	return r
}

// Register adds or replaces the helper called name. A host embedding
// this package to add its own helpers (out of this module's scope,
// spec.md §1) would do so through this method.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the helper called name and whether it exists.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns every registered helper name, used by the interpreter
// to build "did you mean" suggestions on a lookup miss.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}
