package lexer

import (
	"unicode/utf8"

	"github.com/akashmaji946/gostache/token"
)

// dotLookahead is the set of runes that may immediately follow a lone
// "." for it to be classified as ID rather than SEP: end of mustache,
// whitespace, or the start of another path separator. This mirrors the
// handlebars.l grammar's lookahead on the bare "." production (see
// _examples/other_examples' raymond lexer, which cites the same
// upstream .l file) rather than raymond's own simplified per-rune SEP
// handling, since spec.md §4.1.1 requires ".." and a standalone "." to
// lex as ID, not as two SEP tokens.
func isDotLookahead(r rune) bool {
	switch r {
	case 0, '}', '=', '/', '.', ' ', '\t', '\n', '\r', ')':
		return true
	default:
		return false
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isMustacheSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// lexMustache scans one token from inside a `{{ ... }}`. Whitespace
// between tokens is skipped silently (spec.md §4.1's mustache-state
// description).
func (l *Lexer) lexMustache() (token.Token, error) {
	for !l.eof() && isMustacheSpace(l.peekRune()) {
		l.advanceRune()
	}
	start := l.at
	if l.eof() {
		return l.makeToken(token.EOF, "", start), nil
	}

	switch {
	case l.hasPrefixAt(0, "}}}"):
		l.advanceBytes(3)
		l.state = stateContent
		return l.makeToken(token.CLOSE_UNESCAPED, "}}}", start), nil
	case l.hasPrefixAt(0, "}}"):
		l.advanceBytes(2)
		l.state = stateContent
		return l.makeToken(token.CLOSE, "}}", start), nil
	case l.src[l.pos] == '(':
		l.advanceBytes(1)
		return l.makeToken(token.OPEN_SEXPR, "(", start), nil
	case l.src[l.pos] == ')':
		l.advanceBytes(1)
		return l.makeToken(token.CLOSE_SEXPR, ")", start), nil
	case l.src[l.pos] == '@':
		l.advanceBytes(1)
		return l.makeToken(token.DATA, "@", start), nil
	case l.src[l.pos] == '"' || l.src[l.pos] == '\'':
		return l.scanString(start)
	case l.hasPrefixAt(0, ".."):
		l.advanceBytes(2)
		return l.makeToken(token.ID, "..", start), nil
	case l.src[l.pos] == '.' && isDotLookahead(runeAt(l.rest(), 1)):
		l.advanceBytes(1)
		return l.makeToken(token.ID, ".", start), nil
	case l.src[l.pos] == '.' || l.src[l.pos] == '/':
		lit := string(l.advanceRune())
		return l.makeToken(token.SEP, lit, start), nil
	case l.src[l.pos] == '-' || isDigit(rune(l.src[l.pos])):
		return l.scanNumber(start)
	case isIdentStart(rune(l.src[l.pos])):
		return l.scanIdentifier(start)
	default:
		r := l.advanceRune()
		return l.makeToken(token.ID, string(r), start), nil
	}
}

// runeAt returns the rune at byte offset off in s, or 0 past the end.
// Used for a single-rune lookahead without consuming the cursor.
func runeAt(s string, off int) rune {
	if off >= len(s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s[off:])
	return r
}

// scanString reads a quoted literal with \", \', \\ escapes (spec.md
// §4.1.1). Reaching EOF before the matching quote is an
// unterminated-string lexer error carrying the opening quote's position;
// a newline inside the quotes is kept as part of the value.
func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	quote := l.src[l.pos]
	l.advanceBytes(1)
	var sb []rune
	for {
		if l.eof() {
			return token.Token{}, &Error{
				Kind:     "unterminated_string",
				Message:  "unterminated string starting at " + start.String(),
				Position: start,
			}
		}
		r := l.peekRune()
		if r == '\\' {
			l.advanceRune()
			if l.eof() {
				return token.Token{}, &Error{
					Kind:     "unterminated_string",
					Message:  "unterminated string starting at " + start.String(),
					Position: start,
				}
			}
			esc := l.advanceRune()
			switch esc {
			case '"', '\'', '\\':
				sb = append(sb, esc)
			default:
				sb = append(sb, '\\', esc)
			}
			continue
		}
		if byte(r) == quote && r < 0x80 {
			l.advanceRune()
			return l.makeToken(token.STRING, string(sb), start), nil
		}
		sb = append(sb, l.advanceRune())
	}
}

// scanNumber reads an optional leading '-', one or more digits, and an
// optional fractional part (spec.md §4.1.1's NUMBER production).
func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	var sb []rune
	if l.src[l.pos] == '-' {
		sb = append(sb, l.advanceRune())
	}
	for !l.eof() && isDigit(l.peekRune()) {
		sb = append(sb, l.advanceRune())
	}
	if !l.eof() && l.peekRune() == '.' && isDigit(runeAt(l.rest(), 1)) {
		sb = append(sb, l.advanceRune())
		for !l.eof() && isDigit(l.peekRune()) {
			sb = append(sb, l.advanceRune())
		}
	}
	return l.makeToken(token.NUMBER, string(sb), start), nil
}

// scanIdentifier reads an identifier and reclassifies it as a keyword
// token (BOOLEAN, NULL, UNDEFINED, or the bare-else INVERSE) when its
// text matches one exactly (spec.md §4.1.1/§4.1.2).
func (l *Lexer) scanIdentifier(start token.Position) (token.Token, error) {
	var sb []rune
	for !l.eof() && isIdentPart(l.peekRune()) {
		sb = append(sb, l.advanceRune())
	}
	lit := string(sb)
	if kind, ok := keywords[lit]; ok {
		return l.makeToken(kind, lit, start), nil
	}
	return l.makeToken(token.ID, lit, start), nil
}
