package symeval

import (
	"fmt"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
)

// buildOperand lifts an irmodel.Operand into an expression: a named SSA
// value resolves through the store (or becomes a fresh InputExpr free
// variable if never bound, e.g. an unbound function parameter); a constant
// resolves to a literal, undef, or an opaque GEP placeholder directly.
func (s *SymbolicState) buildOperand(op irmodel.Operand) exprlang.Build {
	if op == nil {
		return exprlang.BuildErr(fmt.Errorf("nil operand"))
	}

	if ident, ok := op.(irmodel.IdentOperand); ok {
		loc := addr.IdLoc(funcName(s.Function), ident.Ident())
		if info, ok := s.Info[loc]; ok {
			return exprlang.Ok(info.Expr)
		}
		return exprlang.Ok(exprlang.NewInput(op.Type(), loc))
	}

	if cst, ok := op.(irmodel.ConstOperand); ok {
		if cst.IsUndef() {
			return exprlang.Ok(exprlang.NewUndefined(op.Type()))
		}
		if v, ok := cst.IntValue(); ok {
			return exprlang.Ok(exprlang.NewILit(op.Type(), v))
		}
		if v, ok := cst.FloatValue(); ok {
			return exprlang.Ok(exprlang.NewFLit(op.Type(), v))
		}
		if _, ok := cst.InnerInst(); ok {
			return exprlang.Ok(exprlang.GEP)
		}
		return exprlang.BuildErr(fmt.Errorf("constant operand with no recognized value shape"))
	}

	return exprlang.BuildErr(fmt.Errorf("operand is neither an identifier nor a constant"))
}

func funcName(fn irmodel.Function) string {
	if fn == nil {
		return "<unknown>"
	}
	return fn.Name()
}

// originExpr derives the "origin" expression message field the
// specification attaches to Load/Store messages: the value currently bound
// at loc, stripped of one outer IntToPtr cast if present.
// The specification names this "the address value"; since irmodel exposes
// no pointer operand for Load (the dynamic address is trace-supplied, not
// IR-supplied — see irmodel.LoadInst's doc comment), the closest available
// proxy is the location's own bound expression, which is what carries any
// IntToPtr cast history this store/load chain produced.
func (s *SymbolicState) originExpr(loc addr.Loc) (exprlang.Expr, bool) {
	info, ok := s.Info[loc]
	if !ok {
		return nil, false
	}
	return stripOuterIntToPtr(info.Expr), true
}

func stripOuterIntToPtr(e exprlang.Expr) exprlang.Expr {
	if cast, ok := e.(exprlang.CastOp); ok && cast.Kind == exprlang.OpIntToPtr {
		return cast.X
	}
	return e
}
