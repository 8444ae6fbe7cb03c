// Package codegen lowers an optimized program to GLSL 4.50 text and drives
// the external GLSL-to-SPIR-V translator.
package codegen

import (
	"fmt"
	"strings"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
)

// GenerateGLSL renders the shader declaration matching stage as GLSL 4.50
// text. When the program has several declarations for the stage, the first
// one wins.
func GenerateGLSL(program *ast.Program, stage ast.Stage) (string, error) {
	var target *ast.ShaderDecl
	for _, shader := range program.Shaders {
		if shader.Stage == stage {
			target = shader

			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("no shader declaration found for stage %q", stage)
	}

	var builder strings.Builder
	builder.WriteString("#version 450\n\n")
	writeIODecls(&builder, target.Inputs, "in")
	writeIODecls(&builder, target.Outputs, "out")
	writeMain(&builder, target.Statements)

	return builder.String(), nil
}

// writeIODecls emits one layout declaration per variable. Locations count
// from 0 in declaration order, independently for inputs and outputs.
func writeIODecls(builder *strings.Builder, decls []*ast.VarDecl, direction string) {
	for location, decl := range decls {
		fmt.Fprintf(builder, "layout(location = %d) %s %s %s;\n", location, direction, mapType(decl.Type), decl.Name)
	}
	if len(decls) > 0 {
		builder.WriteString("\n")
	}
}

func writeMain(builder *strings.Builder, statements []*ast.Assignment) {
	builder.WriteString("void main() {\n")
	for _, stmt := range statements {
		builder.WriteString("    ")
		builder.WriteString(writeExpr(stmt.Target))
		builder.WriteString(" = ")
		builder.WriteString(writeExpr(stmt.Value))
		builder.WriteString(";\n")
	}
	builder.WriteString("}\n")
}

func writeExpr(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.BinaryOp:
		// Parentheses always, so associativity survives without any
		// precedence reasoning on the output side.
		return "(" + writeExpr(expr.Left) + " " + expr.Op + " " + writeExpr(expr.Right) + ")"
	case *ast.Identifier:
		return expr.Name
	case *ast.Literal:
		return expr.Value
	case *ast.MemberAccess:
		return writeExpr(expr.Object) + "." + expr.Member
	case *ast.FunctionCall:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = writeExpr(arg)
		}

		return expr.Name + "(" + strings.Join(args, ", ") + ")"
	}

	panic(fmt.Sprintf("codegen: unsupported expression %T", expr))
}

// mapType translates a DSL type name to its GLSL spelling. The known names
// are spelled identically; unknown names pass through unchanged.
func mapType(typeName string) string {
	switch typeName {
	case "vec2", "vec3", "vec4", "mat4", "float", "int":
		return typeName
	}

	return typeName
}
