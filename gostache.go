/*
Package gostache is the public entry point for the template engine:
the three operations spec.md §6 names at the API boundary, each a thin
wrapper over the lexer/parser/interpreter packages so a caller never
needs to import those directly for ordinary use.
*/
package gostache

import (
	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/helpers"
	"github.com/akashmaji946/gostache/interpreter"
	"github.com/akashmaji946/gostache/lexer"
	"github.com/akashmaji946/gostache/parser"
	"github.com/akashmaji946/gostache/runtime"
	"github.com/akashmaji946/gostache/token"
)

// RuntimeOptions configures an Evaluate call (spec.md §6): caller
// helpers override built-ins of the same name, and initialData seeds
// the @-data frame visible before any block pushes its own.
// CompileOptions is accepted for forward-compatibility with the
// convenience wrappers spec.md §1 keeps out of this core's scope
// (knownHelpers, Mustache-compat mode); it is unused by Evaluate
// itself today.
type RuntimeOptions struct {
	Helpers        map[string]helpers.Func
	InitialData    map[string]any
	CompileOptions map[string]any
}

// Tokenize runs the lexer to completion over source, returning every
// token including the terminal EOF.
func Tokenize(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse tokenizes and parses source into a Program AST.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// Evaluate renders program against root (a plain Go value: nil, bool,
// numeric, string, []interface{}, map[string]interface{}, or an
// already-built runtime.Value) using opts' helpers and initial data.
func Evaluate(program *ast.Program, root any, opts RuntimeOptions) (string, error) {
	registry := helpers.NewRegistry()
	for name, fn := range opts.Helpers {
		registry.Register(name, fn)
	}

	initialData := make(map[string]runtime.Value, len(opts.InitialData))
	for k, v := range opts.InitialData {
		initialData[k] = runtime.FromGo(v)
	}

	interp := interpreter.New(program, interpreter.Options{
		Helpers:     registry,
		InitialData: initialData,
	})
	return interp.Evaluate(runtime.FromGo(root))
}

// Render is a convenience that compiles source and evaluates it in one
// call, the shape spec.md §1 names as an external collaborator
// ("compile, render") rather than part of the specified core; it is
// provided here only because the root package is the natural seam for
// it once Tokenize/Parse/Evaluate already exist.
func Render(source string, root any, opts RuntimeOptions) (string, error) {
	program, err := Parse(source)
	if err != nil {
		return "", err
	}
	return Evaluate(program, root, opts)
}
