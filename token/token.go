package token

// Kind identifies the lexical class of a Token. Handlebars' grammar is
// small enough that a flat string-backed enum (the same approach
// go-mix's lexer takes for its TokenType) reads better than a parser
// generator's integer constants.
type Kind string

const (
	// Delimiters. Each opening delimiter also switches the lexer into
	// mustache state; see lexer.Lexer for the state machine.
	OPEN             Kind = "OPEN"             // {{
	CLOSE            Kind = "CLOSE"            // }}
	OPEN_UNESCAPED   Kind = "OPEN_UNESCAPED"   // {{{
	CLOSE_UNESCAPED  Kind = "CLOSE_UNESCAPED"  // }}}
	OPEN_BLOCK       Kind = "OPEN_BLOCK"       // {{#
	OPEN_ENDBLOCK    Kind = "OPEN_ENDBLOCK"    // {{/
	OPEN_INVERSE     Kind = "OPEN_INVERSE"     // {{^
	OPEN_SEXPR       Kind = "OPEN_SEXPR"       // (
	CLOSE_SEXPR      Kind = "CLOSE_SEXPR"      // )


	// INVERSE is the "else" keyword inside a mustache, both in a bare
	// {{else}} and in a chained {{else name ...}}.
	INVERSE Kind = "INVERSE"

	COMMENT Kind = "COMMENT"
	CONTENT Kind = "CONTENT"

	STRING    Kind = "STRING"
	NUMBER    Kind = "NUMBER"
	BOOLEAN   Kind = "BOOLEAN"
	NULL      Kind = "NULL"
	UNDEFINED Kind = "UNDEFINED"

	ID  Kind = "ID"  // identifiers (including "this"), ".", ".."
	SEP Kind = "SEP" // "." or "/" joining path segments
	DATA Kind = "DATA" // "@"

	EOF Kind = "EOF"
)

// Token is the atomic unit the lexer produces and the parser consumes:
// a classified span of literal source text.
type Token struct {
	Kind     Kind
	Literal  string
	Location SourceLocation
}

// End is a convenience accessor the parser uses when it needs to seed a
// synthesized node's location from the last token it consumed.
func (t Token) End() Position { return t.Location.End }

// Start is the mirror of End, used when seeding a node's location from
// the first token of a construct.
func (t Token) Start() Position { return t.Location.Start }
