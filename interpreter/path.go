package interpreter

import (
	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/runtime"
)

// resolvePath walks a PathExpression against the current context/data
// stacks (spec.md §4.3.3, points 1-3 and 5; the ambiguous-mustache
// point 4 is handled one level up, in evalMustacheValue, since it only
// applies to a whole bare mustache, never to a path used as a param).
func (in *Interpreter) resolvePath(path *ast.PathExpression) (runtime.Value, error) {
	if path.Data {
		frame := in.data.GetAtDepth(path.Depth)
		if len(path.Parts) == 0 {
			return runtime.Undefined{}, nil
		}
		v, ok := frame[path.Parts[0]]
		if !ok {
			return runtime.Undefined{}, nil
		}
		return in.callIfFunction(runtime.GetPath(v, path.Parts[1:]))
	}

	base := in.ctx.Current()
	if path.Depth > 0 {
		base = in.ctx.GetAtDepth(path.Depth)
	}
	return in.callIfFunction(runtime.GetPath(base, path.Parts))
}

// callIfFunction implements spec.md §4.3.3's closing rule: a path that
// resolves to a callable is invoked with no arguments and the call's
// return value is used in its place. Function.Call receives no context,
// so the callable is not bound to the object it was found on. Every
// other kind of value passes through unchanged.
func (in *Interpreter) callIfFunction(v runtime.Value) (runtime.Value, error) {
	fn, ok := v.(runtime.Function)
	if !ok {
		return v, nil
	}
	return fn.Call(nil, nil)
}

// isAmbiguousCandidate reports whether path is eligible for the
// helper-vs-property ambiguity check (spec.md §4.3.3 point 4, §9):
// a plain, undotted, unslashed, non-data, depth-zero single segment.
// "this", ".", "../x", "@x", and "a.b" are never candidates: each
// already has an unambiguous resolution rule of its own.
func isAmbiguousCandidate(path *ast.PathExpression) bool {
	return !path.Data && path.Depth == 0 && len(path.Parts) == 1 && path.Original == path.Parts[0]
}
