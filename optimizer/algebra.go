package optimizer

import "github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"

// simplifyAlgebra applies the identity and constant-chain rewrites to every
// binary operation. Children are simplified before their parent, and each
// rewrite builds a fresh subtree that the traversal installs in place.
func (o *Optimizer) simplifyAlgebra(shader *ast.ShaderDecl) bool {
	changed := false
	for _, stmt := range shader.Statements {
		stmt.Value = ast.Transform(stmt.Value, func(expr ast.Expr) ast.Expr {
			binOp, ok := expr.(*ast.BinaryOp)
			if !ok {
				return expr
			}

			if simplified := o.rewriteBinaryOp(binOp); simplified != nil {
				changed = true

				return simplified
			}

			return expr
		})
	}

	return changed
}

// rewriteBinaryOp returns the replacement subtree, or nil when no rule
// matches.
func (o *Optimizer) rewriteBinaryOp(node *ast.BinaryOp) ast.Expr {
	// Combine adjacent literals in associative chains: ((x * c1) * c2)
	// becomes (x * c1c2), likewise for +. The combined constant lets the
	// folding pass finish chains that grew from either end.
	if node.Op == "*" || node.Op == "+" {
		// ((x op c1) op c2)
		if isLiteral(node.Right) {
			if inner, ok := node.Left.(*ast.BinaryOp); ok && inner.Op == node.Op && isLiteral(inner.Right) {
				return o.combineConstants(node.Op, inner.Left, literalValue(inner.Right), literalValue(node.Right))
			}
		}
		// (c1 op (x op c2))
		if isLiteral(node.Left) {
			if inner, ok := node.Right.(*ast.BinaryOp); ok && inner.Op == node.Op && isLiteral(inner.Right) {
				return o.combineConstants(node.Op, inner.Left, literalValue(node.Left), literalValue(inner.Right))
			}
		}
	}

	switch node.Op {
	case "*":
		// x * 1 -> x
		if isLiteralValue(node.Right, 1) {
			return o.keep(node.Left)
		}
		// 1 * x -> x
		if isLiteralValue(node.Left, 1) {
			return o.keep(node.Right)
		}
		// x * 0 -> 0, 0 * x -> 0
		if isLiteralValue(node.Right, 0) || isLiteralValue(node.Left, 0) {
			o.stats.AlgebraicSimplifications++

			return &ast.Literal{Value: "0.0"}
		}
	case "+":
		// x + 0 -> x
		if isLiteralValue(node.Right, 0) {
			return o.keep(node.Left)
		}
		// 0 + x -> x
		if isLiteralValue(node.Left, 0) {
			return o.keep(node.Right)
		}
	case "-":
		// x - 0 -> x
		if isLiteralValue(node.Right, 0) {
			return o.keep(node.Left)
		}
	case "/":
		// x / 1 -> x
		if isLiteralValue(node.Right, 1) {
			return o.keep(node.Left)
		}
	}

	return nil
}

// combineConstants builds (x op c1c2) with the constants pre-combined in
// binary32. Counts as both an algebraic rewrite and a fold.
func (o *Optimizer) combineConstants(op string, x ast.Expr, c1, c2 float32) ast.Expr {
	var combined float32
	if op == "*" {
		combined = c1 * c2
	} else {
		combined = c1 + c2
	}

	o.stats.AlgebraicSimplifications++
	o.stats.ConstantsFolded++

	return &ast.BinaryOp{
		Op:    op,
		Left:  ast.Clone(x),
		Right: &ast.Literal{Value: renderLiteral(combined)},
	}
}

// keep clones the surviving operand of a discarded binary operation.
func (o *Optimizer) keep(expr ast.Expr) ast.Expr {
	o.stats.AlgebraicSimplifications++

	return ast.Clone(expr)
}
