package optimizer

import "github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"

// foldConstants replaces every binary operation on two literals with the
// binary32 result. Children fold before parents, so literal subtrees created
// lower in the tree become foldable at their parent within one pass.
func (o *Optimizer) foldConstants(shader *ast.ShaderDecl) bool {
	changed := false
	for _, stmt := range shader.Statements {
		stmt.Value = ast.Transform(stmt.Value, func(expr ast.Expr) ast.Expr {
			binOp, ok := expr.(*ast.BinaryOp)
			if !ok || !isLiteral(binOp.Left) || !isLiteral(binOp.Right) {
				return expr
			}

			folded, ok := foldBinaryOp(binOp.Op, literalValue(binOp.Left), literalValue(binOp.Right))
			if !ok {
				return expr
			}

			o.stats.ConstantsFolded++
			changed = true

			return &ast.Literal{Value: folded}
		})
	}

	return changed
}

// foldBinaryOp evaluates op on two binary32 operands. Division does not fold
// when the divisor magnitude is below epsilon.
func foldBinaryOp(op string, left, right float32) (string, bool) {
	var result float32
	switch op {
	case "+":
		result = left + right
	case "-":
		result = left - right
	case "*":
		result = left * right
	case "/":
		if isNearZero(right) {
			return "", false
		}
		result = left / right
	default:
		return "", false
	}

	return renderLiteral(result), true
}

func isNearZero(value float32) bool {
	if value < 0 {
		value = -value
	}

	return value < epsilon
}
