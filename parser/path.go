package parser

import (
	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/token"
)

// parsePath parses a path expression (spec.md §3.3, §4.2.2): an
// optional leading "@" (data), then "this"/"."/".."-or-an-identifier,
// then zero or more SEP-joined segments. "this" and a lone "." both
// denote the current context and contribute no Parts; each leading
// ".." increments Depth instead of becoming a Part ("../../x" is
// Depth=2, Parts=["x"]); everything else accumulates into Parts.
//
// Original is reconstructed by concatenating the literal text of every
// token the path consumes, in order. Since a path never contains
// internal whitespace (the mustache-state lexer only skips whitespace
// between distinct tokens, never within one), that concatenation is
// byte-identical to the source span the path occupies — simpler, and
// more literally faithful, than separately renormalizing "/" against
// "." by segment position.
func (p *parser) parsePath() (*ast.PathExpression, error) {
	start := p.current().Location.Start
	data := false
	original := ""

	if p.current().Kind == token.DATA {
		tok := p.advance()
		data = true
		original += tok.Literal
		if p.current().Kind != token.ID {
			return nil, errDanglingData(p.current())
		}
	}

	leadTok := p.current()
	if leadTok.Kind != token.ID {
		return nil, errEmptyPath(leadTok)
	}
	p.advance()
	original += leadTok.Literal

	var parts []string
	depth := 0
	leadingDepthPhase := false
	switch leadTok.Literal {
	case "..":
		depth = 1
		leadingDepthPhase = true
		if isPathContinuation(p.current().Kind) {
			return nil, errParentRefNotSeparated(p.current())
		}
	case "this", ".":
		// contributes no Part; depth-chaining may not continue past it.
	default:
		parts = append(parts, leadTok.Literal)
	}

	for p.current().Kind == token.SEP {
		sepTok := p.advance()
		original += sepTok.Literal

		segTok := p.current()
		if segTok.Kind == token.SEP {
			return nil, errConsecutiveSeparators(segTok)
		}
		if segTok.Kind != token.ID && segTok.Kind != token.NUMBER {
			return nil, errTrailingSeparator(sepTok)
		}
		p.advance()
		original += segTok.Literal

		if segTok.Literal == ".." {
			if !leadingDepthPhase {
				return nil, errParentRefNotLeading(segTok)
			}
			depth++
			if isPathContinuation(p.current().Kind) {
				return nil, errParentRefNotSeparated(p.current())
			}
			continue
		}
		leadingDepthPhase = false
		parts = append(parts, segTok.Literal)
	}

	end := p.tokens[p.pos-1].Location.End
	return &ast.PathExpression{
		Data:     data,
		Depth:    depth,
		Parts:    parts,
		Original: original,
		Loc:      token.SourceLocation{Start: start, End: end},
	}, nil
}

// isPathContinuation reports whether kind is a token that could only
// appear immediately after a bare ".." if the source meant it to chain
// onto that ".." as a path segment (spec.md §4.2.2: "a bare `..`
// followed immediately by a non-SEP non-delimiter" is an error). The
// lexer never emits a SEP between ".." and an adjacent identifier/
// number/"@" with no "." or "/" in between, so without this check that
// adjacency would silently fall out of the path as a separate param
// instead of being rejected.
func isPathContinuation(kind token.Kind) bool {
	return kind == token.ID || kind == token.NUMBER || kind == token.DATA
}
