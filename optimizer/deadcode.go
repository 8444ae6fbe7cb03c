package optimizer

import "github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"

// Built-in targets that are observable outside the shader and therefore
// always live.
var builtinOutputs = map[string]bool{
	"gl_Position":  true,
	"gl_FragColor": true,
	"gl_FragDepth": true,
}

// eliminateDeadCode removes assignments whose target is never read, is not a
// declared output, and is not a built-in output. Surviving statements keep
// their relative order.
func (o *Optimizer) eliminateDeadCode(shader *ast.ShaderDecl) bool {
	read := make(map[string]bool)
	for _, stmt := range shader.Statements {
		ast.Walk(stmt.Value, func(expr ast.Expr) {
			if ident, ok := expr.(*ast.Identifier); ok {
				read[ident.Name] = true
			}
		})
	}
	for _, out := range shader.Outputs {
		read[out.Name] = true
	}

	kept := shader.Statements[:0]
	removed := 0
	for _, stmt := range shader.Statements {
		name := targetBaseName(stmt.Target)
		if read[name] || builtinOutputs[name] {
			kept = append(kept, stmt)
		} else {
			removed++
		}
	}
	shader.Statements = kept

	o.stats.DeadCodeRemoved += removed

	return removed > 0
}

// targetBaseName returns the identifier an assignment writes through: the
// identifier itself, or the identifier rooting a member access. The parser
// guarantees no other shape reaches here.
func targetBaseName(target ast.Expr) string {
	switch target := target.(type) {
	case *ast.Identifier:
		return target.Name
	case *ast.MemberAccess:
		return target.Object.(*ast.Identifier).Name
	}

	panic("optimizer: assignment target is not an lvalue")
}
