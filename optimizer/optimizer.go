// Package optimizer rewrites the syntax tree in place: constant folding,
// algebraic simplification, and dead-code elimination, repeated to a fixed
// point.
package optimizer

import (
	"math"
	"strconv"

	"github.com/jamesgrm-mccallum/vulkan-shader-complier/ast"
)

// maxPasses caps the fixed-point loop. Hitting the cap is not an error; the
// tree is still well-formed, just not a proven fixed point.
const maxPasses = 10

// epsilon is the absolute tolerance for literal comparison and for the
// division-fold guard.
const epsilon = 1e-4

// Stats counts what the passes did during one Optimize call.
type Stats struct {
	ConstantsFolded          int
	AlgebraicSimplifications int
	DeadCodeRemoved          int
	TotalPasses              int
}

type Optimizer struct {
	stats Stats
}

func New() *Optimizer {
	return &Optimizer{}
}

func (o *Optimizer) Stats() Stats {
	return o.stats
}

// Optimize runs the three passes over every shader declaration until an
// iteration reports no change or the pass cap is reached. Passes traverse in
// document order, so the result is deterministic for a given input.
func (o *Optimizer) Optimize(program *ast.Program) {
	o.stats = Stats{}
	for o.stats.TotalPasses < maxPasses {
		o.stats.TotalPasses++

		changed := false
		for _, shader := range program.Shaders {
			if o.foldConstants(shader) {
				changed = true
			}
		}
		for _, shader := range program.Shaders {
			if o.simplifyAlgebra(shader) {
				changed = true
			}
		}
		for _, shader := range program.Shaders {
			if o.eliminateDeadCode(shader) {
				changed = true
			}
		}

		if !changed {
			break
		}
	}
}

func isLiteral(expr ast.Expr) bool {
	_, ok := expr.(*ast.Literal)

	return ok
}

// literalValue interprets a literal lexeme as binary32. Lexemes come from the
// lexer's number scanner or from renderLiteral, so failure is a programmer
// error.
func literalValue(expr ast.Expr) float32 {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		panic("optimizer: expression is not a literal")
	}
	value, err := strconv.ParseFloat(lit.Value, 32)
	if err != nil {
		panic("optimizer: unparsable literal " + lit.Value)
	}

	return float32(value)
}

// isLiteralValue reports whether expr is a literal within epsilon of value.
func isLiteralValue(expr ast.Expr, value float32) bool {
	if !isLiteral(expr) {
		return false
	}

	return math.Abs(float64(literalValue(expr)-value)) < epsilon
}

// renderLiteral is the canonical binary32 formatter: shortest form that
// round-trips, identical bytes for identical values.
func renderLiteral(value float32) string {
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}
