package ast

// Transform rewrites expr in depth-first order: children are rewritten before
// f is applied to their parent, and the result f returns replaces the node in
// its parent's slot.
func Transform(expr Expr, f func(Expr) Expr) Expr {
	switch expr := expr.(type) {
	case *BinaryOp:
		expr.Left = Transform(expr.Left, f)
		expr.Right = Transform(expr.Right, f)
	case *MemberAccess:
		expr.Object = Transform(expr.Object, f)
	case *FunctionCall:
		for i, arg := range expr.Args {
			expr.Args[i] = Transform(arg, f)
		}
	}

	return f(expr)
}

// Walk visits expr and every descendant in document order.
func Walk(expr Expr, f func(Expr)) {
	f(expr)
	switch expr := expr.(type) {
	case *BinaryOp:
		Walk(expr.Left, f)
		Walk(expr.Right, f)
	case *MemberAccess:
		Walk(expr.Object, f)
	case *FunctionCall:
		for _, arg := range expr.Args {
			Walk(arg, f)
		}
	}
}

// Clone deep-copies an expression subtree. Rewrites that reuse an operand of
// a replaced node install a clone, keeping every child uniquely owned.
func Clone(expr Expr) Expr {
	switch expr := expr.(type) {
	case *BinaryOp:
		return &BinaryOp{Op: expr.Op, Left: Clone(expr.Left), Right: Clone(expr.Right)}
	case *Identifier:
		return &Identifier{Name: expr.Name}
	case *Literal:
		return &Literal{Value: expr.Value}
	case *MemberAccess:
		return &MemberAccess{Object: Clone(expr.Object), Member: expr.Member}
	case *FunctionCall:
		args := make([]Expr, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = Clone(arg)
		}

		return &FunctionCall{Name: expr.Name, Args: args}
	}

	return expr
}

// Count returns the number of nodes in the program, declarations and
// statements included.
func Count(program *Program) int {
	count := 1
	for _, shader := range program.Shaders {
		count++
		count += len(shader.Inputs) + len(shader.Outputs)
		for _, stmt := range shader.Statements {
			count++
			Walk(stmt.Target, func(Expr) { count++ })
			Walk(stmt.Value, func(Expr) { count++ })
		}
	}

	return count
}

// CountStatements returns the number of main-block statements across every
// shader declaration.
func CountStatements(program *Program) int {
	count := 0
	for _, shader := range program.Shaders {
		count += len(shader.Statements)
	}

	return count
}
