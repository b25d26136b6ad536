package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
)

// ConstEvaluator is the narrow external collaborator spec §1 scopes the
// constant-expression evaluator's arithmetic out to: array sizes and
// bit-field widths need a non-negative integer literal result, and CI
// only needs to ask for one, not own the arithmetic.
type ConstEvaluator interface {
	// EvalInt evaluates a constant integer expression, returning its
	// value and whether evaluation succeeded.
	EvalInt(expr Expr) (value int64, ok bool)
}

// TypeInferrer is the narrow external collaborator spec §1 scopes
// typeof/typeof_unqual resolution out to.
type TypeInferrer interface {
	InferType(expr Expr, unqual bool) (ast.DataType, bool)
}

// FailingConstEvaluator is the default: every evaluation fails, forcing a
// caller who needs real arithmetic to inject one (spec §9 "CI supplies a
// default always-fail stub").
type FailingConstEvaluator struct{}

func (FailingConstEvaluator) EvalInt(Expr) (int64, bool) { return 0, false }

// LiteralConstEvaluator is the degenerate literal-only evaluator spec §9
// allows for tests: it only resolves a bare IntLit, nothing more.
type LiteralConstEvaluator struct{}

func (LiteralConstEvaluator) EvalInt(expr Expr) (int64, bool) {
	if lit, ok := expr.(*IntLit); ok {
		return lit.Value, true
	}
	return 0, false
}

// FailingTypeInferrer is the default stub for TypeInferrer.
type FailingTypeInferrer struct{}

func (FailingTypeInferrer) InferType(Expr, bool) (ast.DataType, bool) { return nil, false }
