package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFiles(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "greeting.hbs")
	ctxPath := filepath.Join(dir, "ctx.json")

	require.NoError(t, os.WriteFile(tmplPath, []byte("Hello {{name}}!"), 0o644))
	require.NoError(t, os.WriteFile(ctxPath, []byte(`{"name": "World"}`), 0o644))

	out, err := renderFiles(tmplPath, ctxPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", out)
}

func TestRenderFiles_NoContext(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "plain.hbs")
	require.NoError(t, os.WriteFile(tmplPath, []byte("just text"), 0o644))

	out, err := renderFiles(tmplPath, "")
	require.NoError(t, err)
	assert.Equal(t, "just text", out)
}

func TestRootCmd_TokenizeSubcommand(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "greeting.hbs")
	require.NoError(t, os.WriteFile(tmplPath, []byte("Hi {{who}}"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"tokenize", tmplPath})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "CONTENT")
}

func TestRootCmd_ParseSubcommandProducesJSON(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "greeting.hbs")
	require.NoError(t, os.WriteFile(tmplPath, []byte("{{x}}"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"parse", tmplPath})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "\"Body\"")
}
