package gostache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gostache/helpers"
	"github.com/akashmaji946/gostache/runtime"
)

func TestRender_BasicScenarios(t *testing.T) {
	out, err := Render("Hello {{name}}!", map[string]any{"name": "World"}, RuntimeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", out)
}

func TestRender_CustomHelperIsInvoked(t *testing.T) {
	opts := RuntimeOptions{
		Helpers: map[string]helpers.Func{
			"shout": func(args []runtime.Value, _ helpers.Options) (runtime.Value, error) {
				return runtime.SafeString(args[0].(runtime.String) + "!!!"), nil
			},
		},
	}
	out, err := Render("{{shout greeting}}", map[string]any{"greeting": "hi"}, opts)
	require.NoError(t, err)
	assert.Equal(t, "hi!!!", out)
}

func TestTokenizeAndParse_ExposedDirectly(t *testing.T) {
	toks, err := Tokenize("{{x}}")
	require.NoError(t, err)
	require.NotEmpty(t, toks)

	prog, err := Parse("{{x}}")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
}

func TestEvaluate_InitialData(t *testing.T) {
	prog, err := Parse("{{@greeting}}")
	require.NoError(t, err)
	out, err := Evaluate(prog, nil, RuntimeOptions{InitialData: map[string]any{"greeting": "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
