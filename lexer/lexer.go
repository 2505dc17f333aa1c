/*
Package lexer implements the Handlebars scanner: a two-state machine
that is either reading raw template text ("content" state) or reading
the inside of a `{{ ... }}` mustache ("mustache" state). It mirrors the
structure of go-mix's own lexer (a cursor over a string with Line/
Column/Position bookkeeping and a byte-dispatch NextToken), adapted to
a stateful scan instead of a flat one.
*/
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/akashmaji946/gostache/token"
)

// state tracks which half of the two-state machine the lexer is in.
type state int

const (
	stateContent state = iota
	stateMustache
)

// delimiters recognized inside content text, longest first so "{{{"
// matches before "{{" and "}}}" before "}}". The escape handling in
// §4.1.3 consults this list to decide whether a backslash precedes a
// delimiter; the content scanner itself stops only at "{{".
var delimiters = []string{"{{{", "{{", "}}}", "}}"}

// keywords recognized only while inside a mustache (§4.1.2: outside a
// mustache, "true", "null", etc. are plain content).
var keywords = map[string]token.Kind{
	"true":      token.BOOLEAN,
	"false":     token.BOOLEAN,
	"null":      token.NULL,
	"undefined": token.UNDEFINED,
	"else":      token.INVERSE,
}

// Error is a typed lexer error: an unterminated string or an
// unterminated comment, carrying the position where the construct
// opened (spec.md §4.1.5, §7).
type Error struct {
	Kind     string
	Message  string
	Position token.Position
}

func (e *Error) Error() string { return e.Message }

// Lexer is a single-pass, single-use scanner over one source string.
// Re-running a template requires a fresh Lexer (or New via Reset);
// there is no shared mutable state between instances.
type Lexer struct {
	src   string
	pos   int // byte offset of the cursor
	at    token.Position
	state state
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, at: token.Position{Line: 1, Column: 0, Index: 0}, state: stateContent}
}

// Reset rewinds the lexer to scan a new source string from the start,
// equivalent to discarding it and calling New again but without an
// allocation. It is the "setInput" half of the streaming contract in
// spec.md §4.1's Contract paragraph.
func (l *Lexer) Reset(src string) {
	l.src = src
	l.pos = 0
	l.at = token.Position{Line: 1, Column: 0, Index: 0}
	l.state = stateContent
}

// Tokenize runs the lexer to completion and returns every token,
// including the final EOF. It is defined as repeated calls to Lex, as
// required by spec.md §4.1's Contract.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var tokens []token.Token
	for {
		tok, err := l.Lex()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Lex scans and returns the next token, or a typed *Error if the source
// contains an unterminated string or comment.
func (l *Lexer) Lex() (token.Token, error) {
	if l.state == stateMustache {
		return l.lexMustache()
	}
	return l.lexContent()
}

// --- cursor primitives -----------------------------------------------------

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) rest() string { return l.src[l.pos:] }

// hasPrefixAt reports whether s occurs at byte offset off from the
// cursor.
func (l *Lexer) hasPrefixAt(off int, s string) bool {
	if l.pos+off > len(l.src) {
		return false
	}
	return strings.HasPrefix(l.src[l.pos+off:], s)
}

// delimAt returns whichever recognized delimiter starts at byte offset
// off from the cursor, or "" if none does.
func (l *Lexer) delimAt(off int) string {
	for _, d := range delimiters {
		if l.hasPrefixAt(off, d) {
			return d
		}
	}
	return ""
}

// advanceBytes steps the cursor forward n raw bytes. It is only used
// for delimiter and escape sequences, which are always pure ASCII, so
// treating each byte as its own rune for position bookkeeping is exact.
func (l *Lexer) advanceBytes(n int) {
	for i := 0; i < n; i++ {
		l.at = l.at.Advance(rune(l.src[l.pos+i]))
	}
	l.pos += n
}

// advanceRune decodes and consumes one full (possibly multi-byte) rune,
// returning it.
func (l *Lexer) advanceRune() rune {
	r, w := utf8.DecodeRuneInString(l.rest())
	l.at = l.at.Advance(r)
	l.pos += w
	return r
}

func (l *Lexer) peekRune() rune {
	if l.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.rest())
	return r
}

func (l *Lexer) makeToken(kind token.Kind, literal string, start token.Position) token.Token {
	return token.Token{Kind: kind, Literal: literal, Location: token.SourceLocation{Start: start, End: l.at}}
}

// --- content state ----------------------------------------------------------

func (l *Lexer) lexContent() (token.Token, error) {
	start := l.at
	if l.eof() {
		return l.makeToken(token.EOF, "", start), nil
	}
	if l.hasPrefixAt(0, "{{") {
		return l.lexOpenDelimiterOrComment()
	}
	return l.scanContentText(start)
}

// scanContentText consumes raw text up to (but not including) the next
// unescaped opening delimiter or EOF, applying the backslash-escape
// rules of spec.md §4.1.3 along the way.
func (l *Lexer) scanContentText(start token.Position) (token.Token, error) {
	var sb strings.Builder
	for !l.eof() {
		if l.src[l.pos] == '\\' {
			// \\{{  or  \\}}  etc: an escaped backslash followed by an
			// active delimiter. Emit one '\' and leave the delimiter
			// itself for normal handling on the next call.
			if l.hasPrefixAt(1, "\\") && l.delimAt(2) != "" {
				sb.WriteByte('\\')
				l.advanceBytes(2)
				continue
			}
			// \{{  or  \}}  etc: the backslash escapes the delimiter,
			// which becomes literal content; the mustache is not
			// entered.
			if d := l.delimAt(1); d != "" {
				sb.WriteString(d)
				l.advanceBytes(1 + len(d))
				continue
			}
			// A lone backslash not followed by a delimiter is plain text.
		}
		if l.hasPrefixAt(0, "{{") {
			break
		}
		sb.WriteRune(l.advanceRune())
	}
	return l.makeToken(token.CONTENT, sb.String(), start), nil
}

// lexOpenDelimiterOrComment is entered once the cursor is known to sit
// on an unescaped "{{". It classifies the specific opening delimiter,
// or scans a full comment body (which never leaves content state: a
// comment is a single token, start to finish).
func (l *Lexer) lexOpenDelimiterOrComment() (token.Token, error) {
	start := l.at
	switch {
	case l.hasPrefixAt(0, "{{!--"):
		return l.scanComment(start, "{{!--", "--}}")
	case l.hasPrefixAt(0, "{{!"):
		return l.scanComment(start, "{{!", "}}")
	case l.hasPrefixAt(0, "{{{"):
		l.advanceBytes(3)
		l.state = stateMustache
		return l.makeToken(token.OPEN_UNESCAPED, "{{{", start), nil
	case l.hasPrefixAt(0, "{{#"):
		l.advanceBytes(3)
		l.state = stateMustache
		return l.makeToken(token.OPEN_BLOCK, "{{#", start), nil
	case l.hasPrefixAt(0, "{{/"):
		l.advanceBytes(3)
		l.state = stateMustache
		return l.makeToken(token.OPEN_ENDBLOCK, "{{/", start), nil
	case l.hasPrefixAt(0, "{{^"):
		l.advanceBytes(3)
		l.state = stateMustache
		return l.makeToken(token.OPEN_INVERSE, "{{^", start), nil
	default:
		l.advanceBytes(2)
		l.state = stateMustache
		return l.makeToken(token.OPEN, "{{", start), nil
	}
}

// scanComment consumes from the comment opener through closer
// (inclusive of both delimiters) and emits a single COMMENT token
// whose literal is the inner text. Reaching EOF first is an unterminated-
// comment lexer error carrying the opener's position (§4.1.4, §4.1.5).
func (l *Lexer) scanComment(start token.Position, opener, closer string) (token.Token, error) {
	l.advanceBytes(len(opener))
	bodyStart := l.pos
	for {
		if l.eof() {
			return token.Token{}, &Error{
				Kind:     "unterminated_comment",
				Message:  "unterminated comment starting at " + start.String(),
				Position: start,
			}
		}
		if l.hasPrefixAt(0, closer) {
			body := l.src[bodyStart:l.pos]
			l.advanceBytes(len(closer))
			return l.makeToken(token.COMMENT, body, start), nil
		}
		l.advanceRune()
	}
}
