package lexer_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/lexer"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/token"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/utils"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)

		return
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)

			return
		}

		tokens, err := lexer.Lex(string(source))
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)

			return
		}

		var builder strings.Builder
		for _, tok := range tokens {
			builder.WriteString(tok.String())
			builder.WriteString("\n")
		}

		g := goldie.New(t, goldie.WithFixtureDir(""))
		g.Assert(t, testfile, []byte(builder.String()))
	}
}

type tokenCase struct {
	kind   token.Kind
	lexeme string
}

func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()

	tokens, err := lexer.Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", input, err)
	}

	if len(tokens) != len(want)+1 {
		t.Fatalf("Lex(%q) returned %d tokens, want %d plus EOF", input, len(tokens), len(want))
	}
	for i, tc := range want {
		if tokens[i].Kind != tc.kind {
			t.Errorf("token %d: kind %v, want %v (lexeme %q)", i, tokens[i].Kind, tc.kind, tokens[i].Lexeme)
		}
		if tokens[i].Lexeme != tc.lexeme {
			t.Errorf("token %d: lexeme %q, want %q", i, tokens[i].Lexeme, tc.lexeme)
		}
	}
	if last := tokens[len(tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token is %v, want EOF", last.Kind)
	}
}

func TestKeywordsAndTypes(t *testing.T) {
	t.Parallel()

	runCases(t, "shader vertex fragment input output uniform main vec2 vec3 vec4 mat4 float int", []tokenCase{
		{token.SHADER, "shader"},
		{token.VERTEX, "vertex"},
		{token.FRAGMENT, "fragment"},
		{token.INPUT, "input"},
		{token.OUTPUT, "output"},
		{token.UNIFORM, "uniform"},
		{token.MAIN, "main"},
		{token.VEC2, "vec2"},
		{token.VEC3, "vec3"},
		{token.VEC4, "vec4"},
		{token.MAT4, "mat4"},
		{token.FLOAT, "float"},
		{token.INT, "int"},
	})
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	runCases(t, "gl_Position shaderish _tmp x2", []tokenCase{
		{token.IDENT, "gl_Position"},
		{token.IDENT, "shaderish"},
		{token.IDENT, "_tmp"},
		{token.IDENT, "x2"},
	})
}

func TestNumbers(t *testing.T) {
	t.Parallel()

	runCases(t, "0 42 1.0 0.5 .5 3.", []tokenCase{
		{token.NUMBER, "0"},
		{token.NUMBER, "42"},
		{token.NUMBER, "1.0"},
		{token.NUMBER, "0.5"},
		{token.NUMBER, ".5"},
		{token.NUMBER, "3."},
	})
}

func TestNumberStopsAtSecondDot(t *testing.T) {
	t.Parallel()

	// A second decimal point ends the literal; the rest scans on its own.
	runCases(t, "1.2.3", []tokenCase{
		{token.NUMBER, "1.2"},
		{token.NUMBER, ".3"},
	})
}

func TestPunctuation(t *testing.T) {
	t.Parallel()

	runCases(t, "+ - * / = ( ) { } ; , .", []tokenCase{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.EQUAL, "="},
		{token.LEFTPAREN, "("},
		{token.RIGHTPAREN, ")"},
		{token.LEFTBRACE, "{"},
		{token.RIGHTBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.COMMA, ","},
		{token.DOT, "."},
	})
}

func TestComments(t *testing.T) {
	t.Parallel()

	runCases(t, "a // rest of line ignored\nb / c", []tokenCase{
		{token.IDENT, "a"},
		{token.IDENT, "b"},
		{token.SLASH, "/"},
		{token.IDENT, "c"},
	})
}

func TestPositions(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("ab cd\n  ef")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	want := []struct {
		line, column int
	}{
		{1, 1}, // ab
		{1, 4}, // cd
		{2, 3}, // ef
		{2, 5}, // EOF
	}
	for i, w := range want {
		if tokens[i].Line != w.line || tokens[i].Column != w.column {
			t.Errorf("token %d at %d:%d, want %d:%d", i, tokens[i].Line, tokens[i].Column, w.line, w.column)
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex("x = 1.0;\ny @ 2.0;")
	if err == nil {
		t.Fatal("Lex accepted an unexpected character")
	}

	var charErr lexer.UnexpectedCharacterError
	if !errors.As(err, &charErr) {
		t.Fatalf("error is %T, want UnexpectedCharacterError", err)
	}
	if charErr.Line != 2 || charErr.Column != 3 {
		t.Errorf("error at %d:%d, want 2:3", charErr.Line, charErr.Column)
	}
	if charErr.Char != '@' {
		t.Errorf("error char %q, want '@'", charErr.Char)
	}
}
