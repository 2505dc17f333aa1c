/*
Package token defines the source-position and lexical-token types shared
by the lexer, parser, and interpreter. It sits at the bottom of the
dependency chain: every other package in this module imports it, and it
imports nothing from them.
*/
package token

import "fmt"

// tabWidth is the fixed column advance used for a tab character. The
// lexer never attempts to read a terminal's actual tab stops; a fixed
// width keeps position reporting deterministic across runs.
const tabWidth = 4

// Position is a single point in a source string, tracked three ways at
// once so callers can pick whichever is convenient: Line/Column for
// human-facing error messages, Index for byte-accurate slicing.
type Position struct {
	Line   int // 1-indexed
	Column int // 0-indexed
	Index  int // 0-indexed byte offset into the source
}

// String renders a position as "line:column", the form error messages
// in this package interpolate.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position reached after consuming r, which must be
// the rune found at the receiver's Index in the originating source.
// Newlines roll the line counter and reset the column; tabs advance the
// column by tabWidth; everything else advances the column by one.
func (p Position) Advance(r rune) Position {
	next := Position{Line: p.Line, Column: p.Column, Index: p.Index + len(string(r))}
	switch r {
	case '\n':
		next.Line++
		next.Column = 0
	case '\t':
		next.Column += tabWidth
	default:
		next.Column++
	}
	return next
}

// SourceLocation is a half-open span: the byte immediately past the
// last character of the spanned text is End.Index. Start and End always satisfy End.Index >= Start.Index.
type SourceLocation struct {
	Start Position
	End   Position
}

// None is the zero SourceLocation, for nodes that do not correspond to
// a literal span of the source text. The parser does not use it: even
// the nested block a chained {{else}} desugars to gets a real span.
var None = SourceLocation{}
