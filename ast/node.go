/*
Package ast defines the tagged statement/expression tree the parser
builds and the interpreter walks. Nodes are plain structs rather than
an interface-with-visitor hierarchy: go-mix's parser package takes the
visitor-pattern route (see its node.go Accept methods) because its AST
has dozens of expression forms with uniform shape; Handlebars' AST is
small and each node kind has a distinct evaluation rule, so a sum type
dispatched with a type switch in the interpreter reads more directly
than an extra visitor layer.
*/
package ast

import "github.com/akashmaji946/gostache/token"

// Statement is implemented by every node that can appear in a
// Program's or Block's body: Content, Comment, Mustache, Block.
type Statement interface {
	statementNode()
	Location() token.SourceLocation
}

// Expression is implemented by every node that can appear as a
// mustache/block parameter, hash value, or sub-expression argument.
type Expression interface {
	expressionNode()
	Location() token.SourceLocation
}

// Program is the root of a parsed template: an ordered list of
// statements with no scope of its own (the bottom of both stacks
// belongs to the interpreter, not to this node).
type Program struct {
	Body []Statement
	Loc  token.SourceLocation
}

func (p *Program) Location() token.SourceLocation { return p.Loc }

// --- statements --------------------------------------------------------

// Content is a run of raw template text between mustaches. Original is
// kept distinct from Value so that standalone-whitespace trimming
// (spec.md §4.2.6) can rewrite Value while Original still reflects the
// untouched source span if a caller ever needs it.
type Content struct {
	Value    string
	Original string
	Loc      token.SourceLocation
}

func (*Content) statementNode()                   {}
func (c *Content) Location() token.SourceLocation { return c.Loc }

// Comment produces no output; Value is the inner text with delimiters
// stripped.
type Comment struct {
	Value string
	Loc   token.SourceLocation
}

func (*Comment) statementNode()                   {}
func (c *Comment) Location() token.SourceLocation { return c.Loc }

// Mustache is a value or helper interpolation. Escaped is false for a
// triple-brace `{{{ ... }}}`.
type Mustache struct {
	Path    Expression // almost always a *PathExpression
	Params  []Expression
	Hash    *Hash
	Escaped bool
	Loc     token.SourceLocation
}

func (*Mustache) statementNode()                   {}
func (m *Mustache) Location() token.SourceLocation { return m.Loc }

// Block is a block-helper invocation. Program is the main branch,
// Inverse is the `{{else}}` branch; either may be nil (absent) or have
// an empty Body (present but empty) per spec.md §8's invariant that at
// least one of the two is present.
type Block struct {
	Path    *PathExpression
	Params  []Expression
	Hash    *Hash
	Program *Program
	Inverse *Program
	Loc     token.SourceLocation

	// OpenStart/OpenEnd record the opening tag's own span, independent
	// of Loc (which spans the whole block including its body).
	OpenStart token.Position
	OpenEnd   token.Position
}

func (*Block) statementNode()                   {}
func (b *Block) Location() token.SourceLocation { return b.Loc }

// --- expressions ---------------------------------------------------------

// PathExpression names a value to resolve against the context/data
// stacks: a property path, optionally depth-relative (../) or
// data-relative (@).
type PathExpression struct {
	Data     bool
	Depth    int
	Parts    []string
	Original string
	Loc      token.SourceLocation
}

func (*PathExpression) expressionNode()                   {}
func (p *PathExpression) Location() token.SourceLocation { return p.Loc }

// StringLiteral, NumberLiteral, BooleanLiteral, NullLiteral, and
// UndefinedLiteral are the literal expression forms a mustache/block
// parameter or hash value may take besides a path or sub-expression.
type StringLiteral struct {
	Value    string
	Original string
	Loc      token.SourceLocation
}

func (*StringLiteral) expressionNode()                   {}
func (s *StringLiteral) Location() token.SourceLocation { return s.Loc }

type NumberLiteral struct {
	Value    float64
	Original string
	Loc      token.SourceLocation
}

func (*NumberLiteral) expressionNode()                   {}
func (n *NumberLiteral) Location() token.SourceLocation { return n.Loc }

type BooleanLiteral struct {
	Value    bool
	Original string
	Loc      token.SourceLocation
}

func (*BooleanLiteral) expressionNode()                   {}
func (b *BooleanLiteral) Location() token.SourceLocation { return b.Loc }

type NullLiteral struct {
	Loc token.SourceLocation
}

func (*NullLiteral) expressionNode()                   {}
func (n *NullLiteral) Location() token.SourceLocation { return n.Loc }

type UndefinedLiteral struct {
	Loc token.SourceLocation
}

func (*UndefinedLiteral) expressionNode()                   {}
func (u *UndefinedLiteral) Location() token.SourceLocation { return u.Loc }

// SubExpression is a parenthesized helper call in expression position,
// e.g. the `(gt n 5)` inside `{{#if (gt n 5)}}`.
type SubExpression struct {
	Path   *PathExpression
	Params []Expression
	Hash   *Hash
	Loc    token.SourceLocation
}

func (*SubExpression) expressionNode()                   {}
func (s *SubExpression) Location() token.SourceLocation { return s.Loc }

// Hash is an ordered key/expression mapping; Keys preserves insertion
// order (needed because duplicate keys resolve to the last occurrence,
// and because a stable iteration order makes the interpreter's
// evaluate-left-to-right guarantee, spec.md §5, observable).
type Hash struct {
	Keys   []string
	Values map[string]Expression
}

// NewHash returns an empty, ready-to-use Hash. Mustache and Block nodes
// always carry one, possibly empty, per spec.md §9.
func NewHash() *Hash {
	return &Hash{Values: make(map[string]Expression)}
}

// Set records key=expr, overwriting an earlier value for the same key
// in place (so Keys gains no duplicate entry) to implement the
// "duplicate keys resolve to the last occurrence" rule.
func (h *Hash) Set(key string, expr Expression) {
	if _, exists := h.Values[key]; !exists {
		h.Keys = append(h.Keys, key)
	}
	h.Values[key] = expr
}
