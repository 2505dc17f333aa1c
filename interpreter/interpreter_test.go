package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gostache/lexer"
	"github.com/akashmaji946/gostache/parser"
	"github.com/akashmaji946/gostache/runtime"
)

// render is the test-local equivalent of the root package's Render:
// tokenize, parse, and run, in one call.
func render(t *testing.T, tmpl string, root any, opts Options) string {
	t.Helper()
	toks, err := lexer.Tokenize(tmpl)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, opts)
	out, err := interp.Evaluate(runtime.FromGo(root))
	require.NoError(t, err)
	return out
}

func TestEvaluate_PlainTextRoundTrips(t *testing.T) {
	assert.Equal(t, "plain text", render(t, "plain text", nil, Options{}))
}

func TestEvaluate_EscapesByDefault(t *testing.T) {
	out := render(t, "{{x}}", map[string]any{"x": "<a>"}, Options{})
	assert.Equal(t, "&lt;a&gt;", out)
}

func TestEvaluate_TripleStacheIsUnescaped(t *testing.T) {
	out := render(t, "{{{x}}}", map[string]any{"x": "<a>"}, Options{})
	assert.Equal(t, "<a>", out)
}

func TestEvaluate_SimpleInterpolation(t *testing.T) {
	out := render(t, "Hello {{name}}!", map[string]any{"name": "World"}, Options{})
	assert.Equal(t, "Hello World!", out)
}

func TestEvaluate_DottedPath(t *testing.T) {
	out := render(t, "{{user.profile.name}}", map[string]any{
		"user": map[string]any{"profile": map[string]any{"name": "Alice"}},
	}, Options{})
	assert.Equal(t, "Alice", out)
}

func TestEvaluate_IfElseOnEmptyArray(t *testing.T) {
	out := render(t, "{{#if xs}}yes{{else}}no{{/if}}", map[string]any{"xs": []any{}}, Options{})
	assert.Equal(t, "no", out)
}

func TestEvaluate_EachWithIndex(t *testing.T) {
	out := render(t, "{{#each xs}}{{@index}}:{{this}} {{/each}}", map[string]any{"xs": []any{"a", "b"}}, Options{})
	assert.Equal(t, "0:a 1:b ", out)
}

func TestEvaluate_With(t *testing.T) {
	out := render(t, "{{#with u}}{{name}}{{/with}}", map[string]any{"u": map[string]any{"name": "Eve"}}, Options{})
	assert.Equal(t, "Eve", out)
}

func TestEvaluate_SubExpressionComparison(t *testing.T) {
	tmpl := "{{#if (gt n 5)}}big{{else}}small{{/if}}"
	assert.Equal(t, "big", render(t, tmpl, map[string]any{"n": 7}, Options{}))
	assert.Equal(t, "small", render(t, tmpl, map[string]any{"n": 3}, Options{}))
}

func TestEvaluate_ParentPathInsideEach(t *testing.T) {
	out := render(t, "{{#each xs}}{{../name}}{{/each}}", map[string]any{"name": "Alan", "xs": []any{1}}, Options{})
	assert.Equal(t, "Alan", out)
}

func TestEvaluate_RootData(t *testing.T) {
	out := render(t, "{{@root.foo}}", map[string]any{"foo": "hello"}, Options{})
	assert.Equal(t, "hello", out)
}

func TestEvaluate_MissingHelperError(t *testing.T) {
	toks, err := lexer.Tokenize("{{frobnicate a b}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})
	_, err = interp.Evaluate(runtime.FromGo(map[string]any{"a": 1, "b": 2}))
	require.Error(t, err)
	assert.Regexp(t, `Missing helper: "frobnicate"`, err.Error())
}

func TestEvaluate_IfArityErrorAtRenderTime(t *testing.T) {
	toks, err := lexer.Tokenize("{{#if}}{{/if}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})
	_, err = interp.Evaluate(runtime.FromGo(nil))
	require.Error(t, err)
	assert.Regexp(t, "#if requires exactly one argument", err.Error())
}

func TestEvaluate_UnknownHelperInSubExpression(t *testing.T) {
	toks, err := lexer.Tokenize("{{#if (bogus 1)}}x{{/if}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})
	_, err = interp.Evaluate(runtime.FromGo(nil))
	require.Error(t, err)
	assert.Regexp(t, "(?i)unknown helper", err.Error())
}

func TestEvaluate_AmbiguousMustacheResolvesHelperOverProperty(t *testing.T) {
	// "this" has no property named "eq", so the bare mustache resolves
	// to undefined unless the ambiguity check finds the built-in helper
	// first; a call with zero args to a two-arg helper errors instead
	// of silently rendering "", demonstrating the helper branch fired.
	toks, err := lexer.Tokenize("{{eq}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})
	_, err = interp.Evaluate(runtime.FromGo(nil))
	require.Error(t, err, "bare {{eq}} should invoke the eq helper with 0 args and fail its arity check")
}

func TestEvaluate_DottedNameIsNeverAmbiguous(t *testing.T) {
	// "this.eq" must be read as a property, never as a helper call,
	// even though "eq" is registered.
	out := render(t, "[{{this.eq}}]", map[string]any{"eq": "prop"}, Options{})
	assert.Equal(t, "[prop]", out)
}

func TestEvaluate_ReusableAcrossCalls(t *testing.T) {
	toks, err := lexer.Tokenize("{{x}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})

	out1, err := interp.Evaluate(runtime.FromGo(map[string]any{"x": "first"}))
	require.NoError(t, err)
	assert.Equal(t, "first", out1)

	out2, err := interp.Evaluate(runtime.FromGo(map[string]any{"x": "second"}))
	require.NoError(t, err)
	assert.Equal(t, "second", out2)
}

func TestEvaluate_CommentProducesNoOutput(t *testing.T) {
	out := render(t, "a{{! hidden }}b", nil, Options{})
	assert.Equal(t, "ab", out)
}

func TestEvaluate_LambdaAtLeafIsInvoked(t *testing.T) {
	called := false
	fn := runtime.Function{
		Name: "greeting",
		Call: func(args []runtime.Value, hash map[string]runtime.Value) (runtime.Value, error) {
			called = true
			return runtime.String("hi"), nil
		},
	}
	m := runtime.NewMap()
	m.Set("greeting", fn)
	toks, err := lexer.Tokenize("{{greeting}}")
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	interp := New(prog, Options{})
	out, err := interp.Evaluate(m)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.True(t, called)
}
