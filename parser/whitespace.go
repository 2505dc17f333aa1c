package parser

import "github.com/akashmaji946/gostache/ast"

// trimStandalone implements the standalone-whitespace pass (spec.md
// §4.2.6): a structural tag (block open/close/else, or a comment) that
// is the only non-whitespace thing on its source line has that line's
// surrounding whitespace, and the line's own trailing newline, removed
// from the Content nodes on either side of it. A plain value mustache
// is never standalone-trimmed, matching ordinary Handlebars behavior.
func trimStandalone(prog *ast.Program) {
	trimBody(prog.Body)
}

func trimBody(body []ast.Statement) {
	for i, stmt := range body {
		switch s := stmt.(type) {
		case *ast.Comment:
			left := contentBefore(body, i)
			right := contentAfter(body, i)
			applyStandalone(left, right)
		case *ast.Block:
			trimBlock(body, i, s)
		}
	}
}

// trimBlock recurses into a block's branches and trims around its
// three tag boundaries: the opening tag (against the outer sibling
// before it and the first line inside Program, or Inverse if Program
// is empty), the else tag if present (between Program and Inverse),
// and the closing tag (against the last line inside whichever branch
// runs last and the outer sibling after it).
func trimBlock(body []ast.Statement, i int, b *ast.Block) {
	if b.Program != nil {
		trimBody(b.Program.Body)
	}
	if b.Inverse != nil {
		trimBody(b.Inverse.Body)
	}

	outerLeft := contentBefore(body, i)
	outerRight := contentAfter(body, i)

	innerFirst := firstContent(b.Program)
	if innerFirst == nil {
		innerFirst = firstContent(b.Inverse)
	}
	applyStandalone(outerLeft, innerFirst)

	if b.Inverse != nil {
		elseLeft := lastContent(b.Program)
		elseRight := firstContent(b.Inverse)
		applyStandalone(elseLeft, elseRight)
	}

	var closeLeft *ast.Content
	if b.Inverse != nil {
		closeLeft = lastContent(b.Inverse)
	} else {
		closeLeft = lastContent(b.Program)
	}
	applyStandalone(closeLeft, outerRight)
}

// notContent stands in for a neighbouring statement that is not Content
// (another mustache, block, or comment on the same line); it never
// qualifies as standalone whitespace and is never rewritten.
var notContent = &ast.Content{Value: "\x00"}

func contentBefore(body []ast.Statement, i int) *ast.Content {
	if i == 0 {
		return nil
	}
	if c, ok := body[i-1].(*ast.Content); ok {
		return c
	}
	return notContent
}

func contentAfter(body []ast.Statement, i int) *ast.Content {
	if i+1 >= len(body) {
		return nil
	}
	if c, ok := body[i+1].(*ast.Content); ok {
		return c
	}
	return notContent
}

func firstContent(prog *ast.Program) *ast.Content {
	if prog == nil || len(prog.Body) == 0 {
		return nil
	}
	if c, ok := prog.Body[0].(*ast.Content); ok {
		return c
	}
	return notContent
}

func lastContent(prog *ast.Program) *ast.Content {
	if prog == nil || len(prog.Body) == 0 {
		return nil
	}
	if c, ok := prog.Body[len(prog.Body)-1].(*ast.Content); ok {
		return c
	}
	return notContent
}

// applyStandalone trims left's trailing line-whitespace and right's
// leading line-whitespace-plus-newline, but only if both sides (those
// present; a missing side, meaning start/end of its list, trivially
// qualifies) agree that the tag sits alone on its line. A whitespace-
// only side with no newline qualifies only if it starts the template
// (left) or was already cut back to a line boundary by an earlier trim.
func applyStandalone(left, right *ast.Content) {
	leftOK, leftTrimmed := standaloneLeft(left)
	rightOK, rightTrimmed := standaloneRight(right)
	if !leftOK || !rightOK {
		return
	}
	if left != nil {
		left.Value = leftTrimmed
	}
	if right != nil {
		right.Value = rightTrimmed
	}
}

func standaloneLeft(c *ast.Content) (bool, string) {
	if c == nil {
		return true, ""
	}
	s := c.Value
	idx := lastNewline(s)
	if idx == -1 {
		if isAllHorizontalSpace(s) && (c.Loc.Start.Index == 0 || s != c.Original) {
			return true, ""
		}
		return false, s
	}
	if isAllHorizontalSpace(s[idx+1:]) {
		return true, s[:idx+1]
	}
	return false, s
}

func standaloneRight(c *ast.Content) (bool, string) {
	if c == nil {
		return true, ""
	}
	s := c.Value
	idx := firstNewline(s)
	if idx == -1 {
		if isAllHorizontalSpace(s) && s != c.Original {
			return true, ""
		}
		return false, s
	}
	if isAllHorizontalSpace(s[:idx]) {
		return true, s[idx+1:]
	}
	return false, s
}

func lastNewline(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}

func firstNewline(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}

func isAllHorizontalSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\r' {
			return false
		}
	}
	return true
}
