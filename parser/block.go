package parser

import (
	"github.com/akashmaji946/gostache/ast"
	"github.com/akashmaji946/gostache/token"
)

// blockOpen records a block's opening tag while its body is being
// parsed, so an unclosed-block or closing-tag-mismatch error can cite
// exactly where the block started (spec.md §4.2.4, §7).
type blockOpen struct {
	name      string
	openStart token.Position
}

// parseBlock parses `{{#name ...}}body{{else}}inverse{{/name}}` (or,
// when inverted is true, the `{{^name ...}}` form whose roles are
// swapped per spec.md §4.2.4: its primary branch is the Inverse slot
// and what follows an {{else}} becomes Program).
func (p *parser) parseBlock(inverted bool) (*ast.Block, error) {
	open := p.advance() // OPEN_BLOCK or OPEN_INVERSE
	pathTok := p.current()
	if pathTok.Kind != token.ID && pathTok.Kind != token.DATA {
		return nil, errEmptyBlockName(pathTok)
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	params, hash, err := p.parseParamsAndHash(token.CLOSE)
	if err != nil {
		return nil, err
	}
	openEndTok := p.current()
	if openEndTok.Kind != token.CLOSE {
		return nil, errUnexpectedToken(openEndTok, "expected '}}' to close block opening tag")
	}
	p.advance()

	name := path.Original
	opening := &blockOpen{name: name, openStart: open.Location.Start}

	firstBody, term, err := p.parseStatements(opening)
	if err != nil {
		return nil, err
	}

	var mainBody, elseBody []ast.Statement
	mainBody = firstBody
	switch term {
	case termClose:
		// no else branch
	case termElse:
		elseBody, err = p.parseElseChain(opening)
		if err != nil {
			return nil, err
		}
	}

	p.advance() // OPEN_ENDBLOCK
	closeNameTok := p.current()
	if closeNameTok.Kind != token.ID && closeNameTok.Kind != token.DATA {
		return nil, errEmptyBlockName(closeNameTok)
	}
	closePath, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if closePath.Original != name {
		return nil, errClosingTagMismatch(name, open.Location.Start, closePath.Original, closeNameTok)
	}
	closeEndTok := p.current()
	if closeEndTok.Kind != token.CLOSE {
		return nil, errUnexpectedToken(closeEndTok, "expected '}}' to close block ending tag")
	}
	p.advance()

	program := &ast.Program{Body: mainBody, Loc: spanOf(mainBody)}
	var inverse *ast.Program
	if term == termElse {
		inverse = &ast.Program{Body: elseBody, Loc: spanOf(elseBody)}
	}
	if inverted {
		program, inverse = inverse, program
		if program == nil {
			program = &ast.Program{}
		}
	}

	return &ast.Block{
		Path:      path,
		Params:    params,
		Hash:      hash,
		Program:   program,
		Inverse:   inverse,
		Loc:       token.SourceLocation{Start: open.Location.Start, End: closeEndTok.Location.End},
		OpenStart: open.Location.Start,
		OpenEnd:   openEndTok.Location.End,
	}, nil
}

// parseElseChain parses everything from the cursor sitting on the
// {{else}}/{{^}} token through (but not including) the matching
// {{/name}}, handling both a bare else and a chained
// "{{else helperName ...}}" (spec.md §4.2.5), which desugars to a
// single nested block occupying the whole inverse branch.
func (p *parser) parseElseChain(opening *blockOpen) ([]ast.Statement, error) {
	elseTok := p.advance() // INVERSE or OPEN_INVERSE
	if elseTok.Kind == token.OPEN_INVERSE {
		// bare "{{^}}": isBareInverseMarker guaranteed CLOSE is next.
		p.advance() // CLOSE
		body, term, err := p.parseStatements(opening)
		if err != nil {
			return nil, err
		}
		if term == termElse {
			return nil, errMultipleElse(p.current())
		}
		return body, nil
	}

	// elseTok.Kind == token.INVERSE
	if p.current().Kind == token.CLOSE {
		p.advance()
		body, term, err := p.parseStatements(opening)
		if err != nil {
			return nil, err
		}
		if term == termElse {
			return nil, errMultipleElse(p.current())
		}
		return body, nil
	}

	// Chained "{{else name ...}}": synthesize a nested block whose open
	// tag is this else clause and whose close is the enclosing block's,
	// so `{{#if a}}x{{else if b}}y{{else}}z{{/if}}` parses as one extra
	// level of nesting per branch, matching how Handlebars.js desugars it.
	nestedOpen := &blockOpen{name: "", openStart: elseTok.Location.Start}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	nestedOpen.name = path.Original
	params, hash, err := p.parseParamsAndHash(token.CLOSE)
	if err != nil {
		return nil, err
	}
	openEndTok := p.current()
	if openEndTok.Kind != token.CLOSE {
		return nil, errUnexpectedToken(openEndTok, "expected '}}' to close chained else")
	}
	p.advance()

	nestedBody, term, err := p.parseStatements(nestedOpen)
	if err != nil {
		return nil, err
	}
	var nestedElseBody []ast.Statement
	if term == termElse {
		nestedElseBody, err = p.parseElseChain(opening)
		if err != nil {
			return nil, err
		}
	}
	nestedProgram := &ast.Program{Body: nestedBody, Loc: spanOf(nestedBody)}
	var nestedInverse *ast.Program
	if term == termElse {
		nestedInverse = &ast.Program{Body: nestedElseBody, Loc: spanOf(nestedElseBody)}
	}
	end := openEndTok.Location.End
	if nestedInverse != nil && len(nestedInverse.Body) > 0 {
		end = nestedInverse.Body[len(nestedInverse.Body)-1].Location().End
	} else if len(nestedProgram.Body) > 0 {
		end = nestedProgram.Body[len(nestedProgram.Body)-1].Location().End
	}
	nested := &ast.Block{
		Path:      path,
		Params:    params,
		Hash:      hash,
		Program:   nestedProgram,
		Inverse:   nestedInverse,
		Loc:       token.SourceLocation{Start: elseTok.Location.Start, End: end},
		OpenStart: elseTok.Location.Start,
		OpenEnd:   openEndTok.Location.End,
	}
	return []ast.Statement{nested}, nil
}

func spanOf(body []ast.Statement) token.SourceLocation {
	if len(body) == 0 {
		return token.SourceLocation{}
	}
	return token.SourceLocation{Start: body[0].Location().Start, End: body[len(body)-1].Location().End}
}
