package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	PLUS
	MINUS
	STAR
	SLASH
	EQUAL
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	SEMICOLON
	COMMA
	DOT

	// Literals and identifiers.
	IDENT
	NUMBER

	// Keywords.
	SHADER
	VERTEX
	FRAGMENT
	INPUT
	OUTPUT
	UNIFORM
	MAIN

	// Type names.
	VEC2
	VEC3
	VEC4
	MAT4
	FLOAT
	INT
)

var keywords = map[string]Kind{
	"shader":   SHADER,
	"vertex":   VERTEX,
	"fragment": FRAGMENT,
	"input":    INPUT,
	"output":   OUTPUT,
	"uniform":  UNIFORM,
	"main":     MAIN,
	"vec2":     VEC2,
	"vec3":     VEC3,
	"vec4":     VEC4,
	"mat4":     MAT4,
	"float":    FLOAT,
	"int":      INT,
}

// Keyword reports whether lexeme is a reserved word and returns its kind.
func Keyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	return k, ok
}

// IsType reports whether k is one of the type-name kinds.
// Type names double as constructor functions in expressions.
func (k Kind) IsType() bool {
	return k >= VEC2 && k <= INT
}

// Token is a single lexical unit. Line and Column are 1-based and point at
// the first character of the lexeme.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d:%d}", t.Kind, t.Lexeme, t.Line, t.Column)
}
