// Package parser is a recursive-descent parser for the shader DSL.
package parser

import (
	"errors"
	"fmt"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/token"
	"github.com/jamesgrm-mccallum/vulkan-shader-complier/utils"
)

type Parser struct {
	tokens  []token.Token
	current int
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, current: 0}
}

// Parse consumes the whole token sequence and returns the program.
// The first syntax error terminates parsing; nothing partial is returned.
//
// program = shaderDecl* ;
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.isAtEnd() {
		shader, err := p.shaderDecl()
		if err != nil {
			return nil, err
		}
		program.Shaders = append(program.Shaders, shader)
	}

	return program, nil
}

// shaderDecl = "shader" ("vertex" | "fragment") "{" shaderBody "}" ;
func (p *Parser) shaderDecl() (*ast.ShaderDecl, error) {
	if _, err := p.consume(token.SHADER, "expected `shader`"); err != nil {
		return nil, err
	}

	shader := &ast.ShaderDecl{}
	switch {
	case p.match(token.VERTEX):
		shader.Stage = ast.Vertex
		p.advance()
	case p.match(token.FRAGMENT):
		shader.Stage = ast.Fragment
		p.advance()
	default:
		return nil, p.errorAt(p.peek(), "expected `vertex` or `fragment`")
	}

	if _, err := p.consume(token.LEFTBRACE, "expected `{` after shader stage"); err != nil {
		return nil, err
	}

	// shaderBody = (inputDecl | outputDecl | mainBlock)* ;
	for !p.match(token.RIGHTBRACE) && !p.isAtEnd() {
		switch {
		case p.match(token.INPUT):
			p.advance()
			decl, err := p.varDecl(shader)
			if err != nil {
				return nil, err
			}
			shader.Inputs = append(shader.Inputs, decl)
		case p.match(token.OUTPUT):
			p.advance()
			decl, err := p.varDecl(shader)
			if err != nil {
				return nil, err
			}
			shader.Outputs = append(shader.Outputs, decl)
		case p.match(token.MAIN):
			p.advance()
			if err := p.mainBlock(shader); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorAt(p.peek(), "expected `input`, `output`, or `main`")
		}
	}

	if _, err := p.consume(token.RIGHTBRACE, "expected `}` at end of shader declaration"); err != nil {
		return nil, err
	}

	return shader, nil
}

// varDecl = type token.IDENT ";" ;
func (p *Parser) varDecl(shader *ast.ShaderDecl) (*ast.VarDecl, error) {
	typ, err := p.typeName()
	if err != nil {
		return nil, err
	}

	name, err := p.consume(token.IDENT, "expected identifier after type")
	if err != nil {
		return nil, err
	}

	// Input and output names share one namespace within a shader declaration.
	for _, decl := range shader.Inputs {
		if decl.Name == name.Lexeme {
			return nil, p.errorAt(name, fmt.Sprintf("duplicate declaration of `%s`", name.Lexeme))
		}
	}
	for _, decl := range shader.Outputs {
		if decl.Name == name.Lexeme {
			return nil, p.errorAt(name, fmt.Sprintf("duplicate declaration of `%s`", name.Lexeme))
		}
	}

	if _, err := p.consume(token.SEMICOLON, "expected `;` after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarDecl{Type: typ, Name: name.Lexeme}, nil
}

// mainBlock = "main" "{" statement* "}" ;
func (p *Parser) mainBlock(shader *ast.ShaderDecl) error {
	if _, err := p.consume(token.LEFTBRACE, "expected `{` after `main`"); err != nil {
		return err
	}

	for !p.match(token.RIGHTBRACE) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return err
		}
		shader.Statements = append(shader.Statements, stmt)
	}

	_, err := p.consume(token.RIGHTBRACE, "expected `}` after main block")

	return err
}

// statement = primary "=" expression ";" ;
func (p *Parser) statement() (*ast.Assignment, error) {
	targetToken := p.peek()
	target, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !isLValue(target) {
		return nil, p.errorAt(targetToken, "expected assignable expression")
	}

	if _, err := p.consume(token.EQUAL, "expected `=` in assignment"); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.SEMICOLON, "expected `;` after statement"); err != nil {
		return nil, err
	}

	return &ast.Assignment{Target: target, Value: value}, nil
}

// isLValue reports whether expr may stand on the left of an assignment:
// an identifier, or a member access rooted at an identifier.
func isLValue(expr ast.Expr) bool {
	switch expr := expr.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberAccess:
		_, ok := expr.Object.(*ast.Identifier)

		return ok
	}

	return false
}

// expression = term (("+" | "-") term)* ;
func (p *Parser) expression() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(token.PLUS) || p.match(token.MINUS) {
		op := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}

	return left, nil
}

// term = factor (("*" | "/") factor)* ;
func (p *Parser) term() (ast.Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.match(token.STAR) || p.match(token.SLASH) {
		op := p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}

	return left, nil
}

// factor = primary ;
func (p *Parser) factor() (ast.Expr, error) {
	return p.primary()
}

// primary = token.NUMBER | type "(" argList? ")" | token.IDENT ("." token.IDENT | "(" argList? ")")? | "(" expression ")" ;
func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.NUMBER):
		literal := p.advance()

		return &ast.Literal{Value: literal.Lexeme}, nil
	case p.peek().Kind.IsType():
		// Type names in expressions are constructor calls: vec4(…).
		name := p.advance()
		if !p.match(token.LEFTPAREN) {
			return nil, p.errorAt(p.peek(), fmt.Sprintf("expected `(` after type constructor `%s`", name.Lexeme))
		}

		return p.functionCall(name.Lexeme)
	case p.match(token.IDENT):
		name := p.advance()
		switch {
		case p.match(token.DOT):
			p.advance()
			member, err := p.consume(token.IDENT, "expected member name after `.`")
			if err != nil {
				return nil, err
			}

			return &ast.MemberAccess{Object: &ast.Identifier{Name: name.Lexeme}, Member: member.Lexeme}, nil
		case p.match(token.LEFTPAREN):
			return p.functionCall(name.Lexeme)
		default:
			return &ast.Identifier{Name: name.Lexeme}, nil
		}
	case p.match(token.LEFTPAREN):
		// Grouping only; no node is created.
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "expected `)` after expression"); err != nil {
			return nil, err
		}

		return expr, nil
	}

	return nil, p.errorAt(p.peek(), "expected expression")
}

// functionCall = "(" argList? ")" ;
// argList = expression ("," expression)* ;
func (p *Parser) functionCall(name string) (ast.Expr, error) {
	if _, err := p.consume(token.LEFTPAREN, "expected `(` after function name"); err != nil {
		return nil, err
	}

	call := &ast.FunctionCall{Name: name}
	if !p.match(token.RIGHTPAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.match(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	if _, err := p.consume(token.RIGHTPAREN, "expected `)` after function arguments"); err != nil {
		return nil, err
	}

	return call, nil
}

// typeName = "vec2" | "vec3" | "vec4" | "mat4" | "float" | "int" ;
func (p *Parser) typeName() (string, error) {
	if !p.peek().Kind.IsType() {
		return "", p.errorAt(p.peek(), "expected type specifier")
	}

	return p.advance().Lexeme, nil
}

func (p *Parser) errorAt(where token.Token, message string) error {
	return utils.ErrorAt{Where: where, Err: errors.New(message)}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.match(kind) {
		return p.advance(), nil
	}

	return p.peek(), p.errorAt(p.peek(), message)
}
