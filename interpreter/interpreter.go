/*
Package interpreter walks a parsed Program and renders it to a string
against a runtime context, following the shape of go-mix's eval
package (an Evaluator struct holding the pieces a tree-walk needs,
dispatched by a type switch over AST node types) adapted to
Handlebars' own evaluation rules: a context/data stack pair instead of
go-mix's single scope chain, and helper dispatch instead of function
calls resolved through a scope.
*/
package interpreter

import (
	"fmt"
	"strings"

	"github.com/krotik/common/errorutil"

	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/helpers"
	"github.com/akashmaji946/gostache/runtime"
)

// Options configures an Interpreter (spec.md §4.3.1's "options {
// helpers, initialData }"). A nil Helpers registry falls back to
// built-ins only; a caller that wants to add helpers without losing
// the built-ins should start from helpers.NewRegistry() and Register
// onto it before constructing the Interpreter.
type Options struct {
	Helpers     *helpers.Registry
	InitialData map[string]runtime.Value
}

// Interpreter renders one parsed Program. It may be reused across
// multiple Evaluate calls (spec.md §4.3): each call builds fresh
// context/data stacks, so no state leaks between evaluations.
type Interpreter struct {
	program     *ast.Program
	registry    *helpers.Registry
	initialData map[string]runtime.Value

	ctx  *runtime.ContextStack
	data *runtime.DataStack
}

// New returns an Interpreter ready to render program under opts.
func New(program *ast.Program, opts Options) *Interpreter {
	registry := opts.Helpers
	if registry == nil {
		registry = helpers.NewRegistry()
	}
	return &Interpreter{
		program:     program,
		registry:    registry,
		initialData: opts.InitialData,
	}
}

// Evaluate renders the interpreter's Program against root, returning
// the output or the first error encountered (spec.md §4.3.1, §7: no
// partial-output guarantee on error).
func (in *Interpreter) Evaluate(root runtime.Value) (string, error) {
	in.ctx = runtime.NewContextStack(root)
	rootData := runtime.DataFrame{}
	for k, v := range in.initialData {
		rootData[k] = v
	}
	rootData["root"] = root
	in.data = runtime.NewDataStack(rootData)

	out, err := in.evalProgram(in.program.Body)

	errorutil.AssertTrue(in.ctx.Depth() == 1,
		fmt.Sprintf("gostache interpreter: context stack imbalance after Evaluate (depth %d)", in.ctx.Depth()))
	errorutil.AssertTrue(in.data.Depth() == 1,
		fmt.Sprintf("gostache interpreter: data stack imbalance after Evaluate (depth %d)", in.data.Depth()))

	return out, err
}

func (in *Interpreter) evalProgram(body []ast.Statement) (string, error) {
	var sb strings.Builder
	for _, stmt := range body {
		out, err := in.evalStatement(stmt)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func (in *Interpreter) evalStatement(stmt ast.Statement) (string, error) {
	switch s := stmt.(type) {
	case *ast.Content:
		return s.Value, nil
	case *ast.Comment:
		return "", nil
	case *ast.Mustache:
		return in.evalMustacheStatement(s)
	case *ast.Block:
		return in.evalBlock(s)
	default:
		return "", fmt.Errorf("interpreter: unhandled statement type %T", stmt)
	}
}

// evalMustacheStatement renders one `{{...}}`/`{{{...}}}` statement:
// resolve its value, then stringify and HTML-escape it unless the
// mustache is unescaped or the value is already a SafeString
// (spec.md §4.3.2, §4.3.7).
func (in *Interpreter) evalMustacheStatement(m *ast.Mustache) (string, error) {
	val, err := in.evalMustacheValue(m)
	if err != nil {
		return "", err
	}
	return in.stringifyAndEscape(val, m.Escaped), nil
}

// evalMustacheValue implements spec.md §4.3.2's dispatch: no
// params/hash means the mustache might be a no-arg helper invocation
// or a property lookup (the ambiguity of §4.3.3 point 4); any param
// or hash present means it is unambiguously a helper invocation.
func (in *Interpreter) evalMustacheValue(m *ast.Mustache) (runtime.Value, error) {
	path, ok := m.Path.(*ast.PathExpression)
	if !ok {
		return nil, fmt.Errorf("interpreter: mustache callee is not a path (%T)", m.Path)
	}

	if len(m.Params) == 0 && hashLen(m.Hash) == 0 {
		if isAmbiguousCandidate(path) {
			if fn, found := in.registry.Lookup(path.Parts[0]); found {
				return fn(nil, helpers.Options{Hash: map[string]runtime.Value{}})
			}
		}
		return in.resolvePath(path)
	}

	name := helperCalleeName(path)
	fn, found := in.registry.Lookup(name)
	if !found {
		return nil, errMissingHelper(name, in.registry.Names())
	}
	args, err := in.evalParams(m.Params)
	if err != nil {
		return nil, err
	}
	hashVals, err := in.evalHash(m.Hash)
	if err != nil {
		return nil, err
	}
	return fn(args, helpers.Options{Hash: hashVals})
}

// evalBlock dispatches a `{{#name ...}}...{{/name}}` statement to its
// helper (spec.md §4.3.4): a block's callee is never ambiguous, it is
// always resolved as a helper by name.
func (in *Interpreter) evalBlock(b *ast.Block) (string, error) {
	name := helperCalleeName(b.Path)
	fn, found := in.registry.Lookup(name)
	if !found {
		return "", errMissingHelper(name, in.registry.Names())
	}
	args, err := in.evalParams(b.Params)
	if err != nil {
		return "", err
	}
	hashVals, err := in.evalHash(b.Hash)
	if err != nil {
		return "", err
	}

	opts := helpers.Options{
		Hash:       hashVals,
		HasProgram: b.Program != nil,
		HasInverse: b.Inverse != nil,
		Fn:         in.branchRenderer(b.Program),
	}
	if b.Inverse != nil {
		opts.Inverse = in.branchRenderer(b.Inverse)
	}

	val, err := fn(args, opts)
	if err != nil {
		return "", err
	}
	// A block's return value is escaped the same way a plain escaped
	// mustache would be; built-in block helpers always return a
	// SafeString (their branches already escaped their own leaf
	// mustaches), so this only bites a user helper returning raw text.
	return in.stringifyAndEscape(val, true), nil
}

// branchRenderer builds the options.Fn/options.Inverse callback for
// prog (spec.md §4.3.6): a nil ctx renders without pushing a context
// frame, a non-nil one pushes and pops around the render; a non-nil
// data map becomes a new data frame that otherwise inherits whatever
// is already visible (spec.md §3.4's "data variables inherit downward
// unless explicitly overridden").
func (in *Interpreter) branchRenderer(prog *ast.Program) func(runtime.Value, map[string]runtime.Value) (string, error) {
	return func(ctx runtime.Value, data map[string]runtime.Value) (string, error) {
		ctxPushed := false
		if ctx != nil {
			in.ctx.Push(ctx)
			ctxPushed = true
		}
		dataPushed := false
		if data != nil {
			frame := runtime.DataFrame{}
			for k, v := range in.data.Current() {
				frame[k] = v
			}
			for k, v := range data {
				frame[k] = v
			}
			in.data.Push(frame)
			dataPushed = true
		}

		out, err := in.evalProgram(prog.Body)

		if dataPushed {
			in.data.Pop()
		}
		if ctxPushed {
			in.ctx.Pop()
		}
		return out, err
	}
}

func (in *Interpreter) evalParams(params []ast.Expression) ([]runtime.Value, error) {
	if len(params) == 0 {
		return nil, nil
	}
	out := make([]runtime.Value, len(params))
	for i, p := range params {
		v, err := in.evalExpression(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) evalHash(hash *ast.Hash) (map[string]runtime.Value, error) {
	out := make(map[string]runtime.Value)
	if hash == nil {
		return out, nil
	}
	for _, key := range hash.Keys {
		v, err := in.evalExpression(hash.Values[key])
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// evalExpression resolves one param/hash-value/sub-expression-argument
// position to a runtime.Value (spec.md §3.3).
func (in *Interpreter) evalExpression(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return runtime.String(e.Value), nil
	case *ast.NumberLiteral:
		return runtime.Number(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Bool(e.Value), nil
	case *ast.NullLiteral:
		return runtime.Null{}, nil
	case *ast.UndefinedLiteral:
		return runtime.Undefined{}, nil
	case *ast.PathExpression:
		return in.resolvePath(e)
	case *ast.SubExpression:
		return in.evalSubExpression(e)
	default:
		return nil, fmt.Errorf("interpreter: unhandled expression type %T", expr)
	}
}

// evalSubExpression evaluates a parenthesized helper call in
// expression position (spec.md §4.3.5): its own params are evaluated
// left-to-right before the call, and an unresolved name raises the
// sub-expression-specific "Unknown helper" error rather than the
// mustache/block "Missing helper" one.
func (in *Interpreter) evalSubExpression(e *ast.SubExpression) (runtime.Value, error) {
	name := helperCalleeName(e.Path)
	fn, found := in.registry.Lookup(name)
	if !found {
		return nil, errUnknownHelper(name, in.registry.Names())
	}
	args, err := in.evalParams(e.Params)
	if err != nil {
		return nil, err
	}
	hashVals, err := in.evalHash(e.Hash)
	if err != nil {
		return nil, err
	}
	return fn(args, helpers.Options{Hash: hashVals})
}

// stringifyAndEscape implements spec.md §4.3.2/§4.3.7's coercion and
// escaping rule for a resolved value.
func (in *Interpreter) stringifyAndEscape(val runtime.Value, escaped bool) string {
	if !escaped {
		return stringifyValue(val)
	}
	if ss, ok := val.(runtime.SafeString); ok {
		return string(ss)
	}
	return escapeHTML(stringifyValue(val))
}

// stringifyValue coerces a resolved Value to display text (spec.md
// §4.3.2): null/undefined vanish, booleans and numbers print their
// literal form, an array joins its elements the way JavaScript's
// default Array.prototype.toString would, and a bare map falls back
// to the same "[object Object]" a host's default object
// stringification would produce.
func stringifyValue(v runtime.Value) string {
	switch x := v.(type) {
	case nil, runtime.Undefined, runtime.Null:
		return ""
	case runtime.Bool:
		if x {
			return "true"
		}
		return "false"
	case runtime.Number:
		return runtime.FormatNumber(float64(x))
	case runtime.String:
		return string(x)
	case runtime.SafeString:
		return string(x)
	case runtime.Array:
		parts := make([]string, len(x))
		for i, elem := range x {
			parts[i] = stringifyValue(elem)
		}
		return strings.Join(parts, ",")
	case *runtime.Map:
		return "[object Object]"
	default:
		return ""
	}
}

// helperCalleeName extracts the registry key a block/mustache/
// sub-expression callee resolves under. Handlebars helper names are
// always simple identifiers; a multi-segment or depth-relative path
// in callee position can never name a helper, so it falls back to the
// path's literal text (which will then simply fail registry lookup).
func helperCalleeName(path *ast.PathExpression) string {
	if !path.Data && path.Depth == 0 && len(path.Parts) == 1 {
		return path.Parts[0]
	}
	return path.Original
}

func hashLen(h *ast.Hash) int {
	if h == nil {
		return 0
	}
	return len(h.Keys)
}
