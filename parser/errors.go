package parser

import (
	"fmt"

	"github.com/akashmaji946/gostache/token"
)

// ParseError is the parser's single error type (spec.md §7): a kind, a
// message already formatted for display, and the offending token's
// position. Unclosed-block errors additionally carry the position
// where the block was opened.
type ParseError struct {
	Kind     string
	Message  string
	Position token.Position
	OpenedAt *token.Position
}

func (e *ParseError) Error() string { return e.Message }

func errUnexpectedToken(tok token.Token, context string) error {
	return &ParseError{
		Kind:     "unexpected_token",
		Message:  fmt.Sprintf("unexpected token %s (%q) %s at %s", tok.Kind, tok.Literal, context, tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errEmptyPath(tok token.Token) error {
	return &ParseError{
		Kind:     "empty_path",
		Message:  fmt.Sprintf("empty path in mustache at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errTrailingSeparator(tok token.Token) error {
	return &ParseError{
		Kind:     "trailing_separator",
		Message:  fmt.Sprintf("trailing separator in path at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errConsecutiveSeparators(tok token.Token) error {
	return &ParseError{
		Kind:     "consecutive_separators",
		Message:  fmt.Sprintf("consecutive separators in path at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errDanglingData(tok token.Token) error {
	return &ParseError{
		Kind:     "dangling_data",
		Message:  fmt.Sprintf("'@' not followed by an identifier at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errParentRefNotLeading(tok token.Token) error {
	return &ParseError{
		Kind:     "parent_ref_not_leading",
		Message:  fmt.Sprintf("'..' is only allowed as a leading path segment, at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errParentRefNotSeparated(tok token.Token) error {
	return &ParseError{
		Kind:     "parent_ref_not_separated",
		Message:  fmt.Sprintf("'..' must be followed by a separator, not %s (%q), at %s", tok.Kind, tok.Literal, tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errEmptyBlockName(tok token.Token) error {
	return &ParseError{
		Kind:     "empty_block_name",
		Message:  fmt.Sprintf("empty block name at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errElseOutsideBlock(tok token.Token) error {
	return &ParseError{
		Kind:     "else_outside_block",
		Message:  fmt.Sprintf("{{else}} outside any block at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errMultipleElse(tok token.Token) error {
	return &ParseError{
		Kind:     "multiple_else",
		Message:  fmt.Sprintf("multiple {{else}} in the same block at %s", tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errStrayEndBlock(tok token.Token) error {
	return &ParseError{
		Kind:     "stray_endblock",
		Message:  fmt.Sprintf("{{/%s}} without a matching {{#%s}} at %s", tok.Literal, tok.Literal, tok.Location.Start),
		Position: tok.Location.Start,
	}
}

func errClosingTagMismatch(openName string, openAt token.Position, gotName string, gotAt token.Token) error {
	open := openAt
	return &ParseError{
		Kind:     "closing_tag_mismatch",
		Message:  fmt.Sprintf("closing tag mismatch: {{/%s}} does not match {{#%s}} opened at %s (got %s)", gotName, openName, openAt, gotAt.Location.Start),
		Position: gotAt.Location.Start,
		OpenedAt: &open,
	}
}

func errUnclosedBlock(name string, openAt token.Position) error {
	open := openAt
	return &ParseError{
		Kind:     "unclosed_block",
		Message:  fmt.Sprintf("unclosed block '%s' opened at line %d, column %d", name, openAt.Line, openAt.Column),
		Position: openAt,
		OpenedAt: &open,
	}
}
