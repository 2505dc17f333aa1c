package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gostache/token"
)

type kindLit struct {
	Kind    token.Kind
	Literal string
}

func kinds(tokens []token.Token) []kindLit {
	out := make([]kindLit, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, kindLit{tok.Kind, tok.Literal})
	}
	return out
}

func TestTokenize_PlainContent(t *testing.T) {
	toks, err := Tokenize("Hello world")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.CONTENT, "Hello world"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_SimpleMustache(t *testing.T) {
	toks, err := Tokenize("Hello {{name}}!")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.CONTENT, "Hello "},
		{token.OPEN, "{{"},
		{token.ID, "name"},
		{token.CLOSE, "}}"},
		{token.CONTENT, "!"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_UnescapedMustache(t *testing.T) {
	toks, err := Tokenize("{{{raw}}}")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.OPEN_UNESCAPED, "{{{"},
		{token.ID, "raw"},
		{token.CLOSE_UNESCAPED, "}}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_BlockOpenClose(t *testing.T) {
	toks, err := Tokenize("{{#if x}}y{{/if}}")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.OPEN_BLOCK, "{{#"},
		{token.ID, "if"},
		{token.ID, "x"},
		{token.CLOSE, "}}"},
		{token.CONTENT, "y"},
		{token.OPEN_ENDBLOCK, "{{/"},
		{token.ID, "if"},
		{token.CLOSE, "}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_InverseBlock(t *testing.T) {
	toks, err := Tokenize("{{^foo}}x{{/foo}}")
	require.NoError(t, err)
	assert.Equal(t, token.OPEN_INVERSE, toks[0].Kind)
	assert.Equal(t, "{{^", toks[0].Literal)
}

func TestTokenize_Comment(t *testing.T) {
	toks, err := Tokenize("a{{! just a note }}b")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.CONTENT, "a"},
		{token.COMMENT, " just a note "},
		{token.CONTENT, "b"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_DashComment_AllowsBraces(t *testing.T) {
	toks, err := Tokenize("{{!-- has }} inside --}}")
	require.NoError(t, err)
	assert.Equal(t, token.COMMENT, toks[0].Kind)
	assert.Equal(t, " has }} inside ", toks[0].Literal)
}

func TestTokenize_UnterminatedComment(t *testing.T) {
	_, err := Tokenize("{{! oops")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Position.Line)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`{{helper "oops}}`)
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "unterminated_string", lexErr.Kind)
}

func TestTokenize_EscapedDelimiterIsLiteral(t *testing.T) {
	toks, err := Tokenize(`\{{not a mustache}}`)
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.CONTENT, "{{not a mustache}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_DoubleEscapedBackslashKeepsDelimiterActive(t *testing.T) {
	toks, err := Tokenize(`\\{{x}}`)
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.CONTENT, `\`},
		{token.OPEN, "{{"},
		{token.ID, "x"},
		{token.CLOSE, "}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_PathSeparatorsAndDots(t *testing.T) {
	toks, err := Tokenize("{{a.b}}{{../c}}{{.}}{{..}}")
	require.NoError(t, err)
	var got []kindLit
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			got = append(got, kindLit{tok.Kind, tok.Literal})
		}
	}
	assert.Equal(t, []kindLit{
		{token.OPEN, "{{"}, {token.ID, "a"}, {token.SEP, "."}, {token.ID, "b"}, {token.CLOSE, "}}"},
		{token.OPEN, "{{"}, {token.ID, ".."}, {token.SEP, "/"}, {token.ID, "c"}, {token.CLOSE, "}}"},
		{token.OPEN, "{{"}, {token.ID, "."}, {token.CLOSE, "}}"},
		{token.OPEN, "{{"}, {token.ID, ".."}, {token.CLOSE, "}}"},
	}, got)
}

func TestTokenize_DataVariable(t *testing.T) {
	toks, err := Tokenize("{{@index}}")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.OPEN, "{{"},
		{token.DATA, "@"},
		{token.ID, "index"},
		{token.CLOSE, "}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_Literals(t *testing.T) {
	toks, err := Tokenize(`{{f "a\"b" 'c' -3.5 true false null undefined}}`)
	require.NoError(t, err)
	var got []kindLit
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			got = append(got, kindLit{tok.Kind, tok.Literal})
		}
	}
	assert.Equal(t, []kindLit{
		{token.OPEN, "{{"},
		{token.ID, "f"},
		{token.STRING, `a"b`},
		{token.STRING, "c"},
		{token.NUMBER, "-3.5"},
		{token.BOOLEAN, "true"},
		{token.BOOLEAN, "false"},
		{token.NULL, "null"},
		{token.UNDEFINED, "undefined"},
		{token.CLOSE, "}}"},
	}, got)
}

func TestTokenize_BareElseBecomesInverseKeyword(t *testing.T) {
	toks, err := Tokenize("{{#if x}}a{{else}}b{{/if}}")
	require.NoError(t, err)
	var sawInverse bool
	for _, tok := range toks {
		if tok.Kind == token.INVERSE {
			sawInverse = true
		}
	}
	assert.True(t, sawInverse)
}

func TestTokenize_ChainedElseKeepsHelperAsID(t *testing.T) {
	toks, err := Tokenize("{{else foo}}")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.OPEN, "{{"},
		{token.INVERSE, "else"},
		{token.ID, "foo"},
		{token.CLOSE, "}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

func TestTokenize_SubExpression(t *testing.T) {
	toks, err := Tokenize("{{#if (gt n 5)}}{{/if}}")
	require.NoError(t, err)
	assert.Equal(t, []kindLit{
		{token.OPEN_BLOCK, "{{#"},
		{token.ID, "if"},
		{token.OPEN_SEXPR, "("},
		{token.ID, "gt"},
		{token.ID, "n"},
		{token.NUMBER, "5"},
		{token.CLOSE_SEXPR, ")"},
		{token.CLOSE, "}}"},
		{token.OPEN_ENDBLOCK, "{{/"},
		{token.ID, "if"},
		{token.CLOSE, "}}"},
		{token.EOF, ""},
	}, kinds(toks))
}

// Whitespace between tokens inside a mustache is skipped the same way
// comment delimiters are elided, so the round-trip invariant (spec.md
// §8) is checked here against a template with no internal mustache
// whitespace to keep the comparison exact.
func TestTokenize_RoundTripsLiteralTextExcludingComments(t *testing.T) {
	src := "Hello {{name}}!{{#if}}yes{{else}}no{{/if}}"
	toks, err := Tokenize(src)
	require.NoError(t, err)
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		rebuilt += tok.Literal
	}
	assert.Equal(t, src, rebuilt)
}

func TestTokenize_PositionsAreMonotonic(t *testing.T) {
	toks, err := Tokenize("a\n{{b}}\nc")
	require.NoError(t, err)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		assert.True(t, cur.Location.Start.Index >= prev.Location.End.Index,
			"token %d starts before token %d ends", i, i-1)
	}
}
