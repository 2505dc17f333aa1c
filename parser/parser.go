/*
Package parser turns a token stream from the lexer into an *ast.Program
by recursive descent, following the shape of go-mix's own parser
package (a cursor over tokens with current/peek lookahead and one
parseX method per grammar production) adapted to Handlebars' grammar:
content/comment/mustache/block dispatch at statement level, and
path/literal/sub-expression dispatch at expression level.

Unlike go-mix's parser, which accumulates every error it finds into a
slice and keeps going, this parser aborts at the first error: spec.md
§7 requires a single positioned *ParseError per call, not a batch.
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/token"
)

// terminator reports why a run of statements ended, so the caller
// (top-level Parse or a block body) can decide whether that ending was
// legal in its context.
type terminator int

const (
	termEOF terminator = iota
	termElse
	termClose
)

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse tokenizes nothing itself: tokens must already come from
// lexer.Tokenize. It returns the parsed program, or the first
// *ParseError encountered.
func Parse(tokens []token.Token) (*ast.Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF})
	}
	p := &parser{tokens: tokens}
	body, term, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	switch term {
	case termElse:
		return nil, errElseOutsideBlock(p.current())
	case termClose:
		return nil, errStrayEndBlock(p.peekAfterOpenEndBlockName())
	}
	loc := token.SourceLocation{}
	if len(body) > 0 {
		loc = token.SourceLocation{Start: body[0].Location().Start, End: body[len(body)-1].Location().End}
	}
	prog := &ast.Program{Body: body, Loc: loc}
	trimStandalone(prog)
	return prog, nil
}

// peekAfterOpenEndBlockName returns the name token following a stray
// OPEN_ENDBLOCK, for use in the "stray {{/...}}" error message.
func (p *parser) peekAfterOpenEndBlockName() token.Token {
	if p.peek(1).Kind == token.ID {
		return p.peek(1)
	}
	return p.current()
}

func (p *parser) current() token.Token { return p.tokens[p.pos] }

func (p *parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// isBareInverseMarker reports whether the cursor sits on a standalone
// "{{^}}" used as a block's else branch, as opposed to "{{^name}}"
// opening an inverted block.
func (p *parser) isBareInverseMarker() bool {
	return p.current().Kind == token.OPEN_INVERSE && p.peek(1).Kind == token.CLOSE
}

// parseStatements consumes statements until EOF, an {{else ...}}/{{^}},
// or an {{/...}}, whichever comes first, without consuming that
// terminating token (for {{else ...}}, the leading "{{" is consumed so
// the cursor rests on its INVERSE token). enclosing is nil at the top
// level and non-nil inside a block body, which changes whether EOF is
// a valid ending.
func (p *parser) parseStatements(enclosing *blockOpen) ([]ast.Statement, terminator, error) {
	var body []ast.Statement
	for {
		tok := p.current()
		switch tok.Kind {
		case token.EOF:
			if enclosing != nil {
				return nil, 0, errUnclosedBlock(enclosing.name, enclosing.openStart)
			}
			return body, termEOF, nil
		case token.OPEN_ENDBLOCK:
			return body, termClose, nil
		case token.INVERSE:
			return body, termElse, nil
		case token.OPEN_INVERSE:
			if p.isBareInverseMarker() {
				return body, termElse, nil
			}
			stmt, err := p.parseBlock(true)
			if err != nil {
				return nil, 0, err
			}
			body = append(body, stmt)
		case token.CONTENT:
			p.advance()
			body = append(body, &ast.Content{Value: tok.Literal, Original: tok.Literal, Loc: tok.Location})
		case token.COMMENT:
			p.advance()
			body = append(body, &ast.Comment{Value: tok.Literal, Loc: tok.Location})
		case token.OPEN, token.OPEN_UNESCAPED:
			if tok.Kind == token.OPEN && p.peek(1).Kind == token.INVERSE {
				p.advance() // "{{" of an {{else ...}}
				return body, termElse, nil
			}
			stmt, err := p.parseMustache()
			if err != nil {
				return nil, 0, err
			}
			body = append(body, stmt)
		case token.OPEN_BLOCK:
			stmt, err := p.parseBlock(false)
			if err != nil {
				return nil, 0, err
			}
			body = append(body, stmt)
		default:
			return nil, 0, errUnexpectedToken(tok, "at statement position")
		}
	}
}

// parseMustache parses a `{{...}}` or `{{{...}}}` value/helper
// interpolation (spec.md §4.2.3): cursor starts on OPEN/OPEN_UNESCAPED.
func (p *parser) parseMustache() (*ast.Mustache, error) {
	open := p.advance()
	escaped := open.Kind != token.OPEN_UNESCAPED
	closeKind := token.CLOSE
	if !escaped {
		closeKind = token.CLOSE_UNESCAPED
	}

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	params, hash, err := p.parseParamsAndHash(closeKind)
	if err != nil {
		return nil, err
	}
	closeTok := p.current()
	if closeTok.Kind != closeKind {
		return nil, errUnexpectedToken(closeTok, "expected end of mustache")
	}
	p.advance()
	return &ast.Mustache{
		Path:    path,
		Params:  params,
		Hash:    hash,
		Escaped: escaped,
		Loc:     token.SourceLocation{Start: open.Location.Start, End: closeTok.Location.End},
	}, nil
}

// parseParamsAndHash consumes positional parameters and `key=value`
// hash pairs until closeKind, implementing the hash grammar as an
// Open Question resolution: the lexer has no dedicated "=" token kind
// (spec.md §9), so a hash pair is recognized here as the two-token
// pattern ID("key") ID("=") followed by an expression, with "=" lexed
// like any other single-character fallback identifier.
func (p *parser) parseParamsAndHash(closeKind token.Kind) ([]ast.Expression, *ast.Hash, error) {
	var params []ast.Expression
	hash := ast.NewHash()
	for {
		tok := p.current()
		if tok.Kind == closeKind || tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.ID && p.peek(1).Kind == token.ID && p.peek(1).Literal == "=" {
			key := p.advance().Literal
			p.advance() // consume "="
			val, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			hash.Set(key, val)
			continue
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
		params = append(params, val)
	}
	return params, hash, nil
}

// parseExpression parses one param/hash-value position: a literal, a
// path, or a parenthesized sub-expression (spec.md §3.3, §4.2.3).
func (p *parser) parseExpression() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal, Original: tok.Literal, Loc: tok.Location}, nil
	case token.NUMBER:
		p.advance()
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, errUnexpectedToken(tok, "invalid number literal")
		}
		return &ast.NumberLiteral{Value: val, Original: tok.Literal, Loc: tok.Location}, nil
	case token.BOOLEAN:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Literal == "true", Original: tok.Literal, Loc: tok.Location}, nil
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Loc: tok.Location}, nil
	case token.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Loc: tok.Location}, nil
	case token.OPEN_SEXPR:
		return p.parseSubExpression()
	case token.ID, token.DATA:
		return p.parsePath()
	default:
		return nil, errUnexpectedToken(tok, "expected a parameter")
	}
}

// parseSubExpression parses a parenthesized helper call in expression
// position, e.g. the `(gt n 5)` inside `{{#if (gt n 5)}}` (spec.md §3.3).
func (p *parser) parseSubExpression() (*ast.SubExpression, error) {
	open := p.advance() // OPEN_SEXPR
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	params, hash, err := p.parseParamsAndHash(token.CLOSE_SEXPR)
	if err != nil {
		return nil, err
	}
	closeTok := p.current()
	if closeTok.Kind != token.CLOSE_SEXPR {
		return nil, errUnexpectedToken(closeTok, "expected ')'")
	}
	p.advance()
	return &ast.SubExpression{
		Path:   path,
		Params: params,
		Hash:   hash,
		Loc:    token.SourceLocation{Start: open.Location.Start, End: closeTok.Location.End},
	}, nil
}
