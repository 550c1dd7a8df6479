package symeval

import (
	"fmt"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
	"github.com/sarchlab/symtrace/tracelog"
)

// exprUpdate is the "expression update" stage of spec.md §4.4: it builds
// the Expr for an SSA-producing instruction. A returned error is fatal
// (only buildPhi can produce one); an Err-kind Build means this stage does
// not recognize inst and the caller should fall through to otherUpdate.
func (s *SymbolicState) exprUpdate(inst irmodel.Instruction, ev *assoc.Event) (exprlang.Build, error) {
	switch {
	case isBinaryOpcode(inst.Opcode()):
		bin := inst.(irmodel.BinaryInst)
		kind := binOpKindOf(inst.Opcode())
		l := s.buildOperand(bin.LHS())
		r := s.buildOperand(bin.RHS())
		return exprlang.Map2(l, r, func(x, y exprlang.Expr) exprlang.Expr {
			return exprlang.Simplify(exprlang.NewBinOp(kind, inst.ResultType(), x, y))
		}), nil

	case isCastOpcode(inst.Opcode()):
		cast := inst.(irmodel.CastInst)
		kind := castKindOf(inst.Opcode())
		x := s.buildOperand(cast.Operand())
		return exprlang.Map(x, func(v exprlang.Expr) exprlang.Expr {
			return exprlang.Simplify(exprlang.NewCastOp(kind, inst.ResultType(), v))
		}), nil
	}

	switch inst.Opcode() {
	case irmodel.OpPhi:
		return s.buildPhi(inst.(irmodel.PhiInst))

	case irmodel.OpGetElementPtr:
		return exprlang.Ok(exprlang.GEP), nil

	case irmodel.OpInsertValue:
		return s.buildInsertValue(inst.(irmodel.InsertValueInst)), nil

	case irmodel.OpExtractValue:
		return s.buildExtractValue(inst.(irmodel.ExtractValueInst)), nil

	case irmodel.OpICmp:
		return s.buildICmp(inst.(irmodel.ICmpInst)), nil

	case irmodel.OpLoad:
		return s.buildLoad(inst.(irmodel.LoadInst), ev), nil

	case irmodel.OpCall:
		return s.buildIntrinsicCall(inst.(irmodel.CallInst)), nil

	default:
		return exprlang.BuildErr(errNotExprUpdate), nil
	}
}

var errNotExprUpdate = fmt.Errorf("symeval: opcode not handled by expression update")

// buildPhi selects the incoming value whose source block equals
// previousBlock. Reaching a Phi with no previous block, or one whose
// incoming edges don't cover previousBlock, is a contract violation the
// associator's output should make impossible.
func (s *SymbolicState) buildPhi(inst irmodel.PhiInst) (exprlang.Build, error) {
	if s.PreviousBlock == nil {
		return exprlang.Build{}, &ContractError{
			Function: funcName(s.Function),
			Reason:   "phi instruction reached with no previous block",
		}
	}
	for _, edge := range inst.Incoming() {
		if edge.Block == s.PreviousBlock {
			return s.buildOperand(edge.Value), nil
		}
	}
	return exprlang.Build{}, &ContractError{
		Function: funcName(s.Function),
		Reason:   fmt.Sprintf("phi has no incoming edge from block %q", s.PreviousBlock.Label()),
	}
}

func (s *SymbolicState) buildInsertValue(inst irmodel.InsertValueInst) exprlang.Build {
	aggB := s.buildOperand(inst.Aggregate())
	if aggB.IsErr() {
		return aggB
	}
	valB := s.buildOperand(inst.Value())
	if valB.IsErr() {
		return valB
	}
	if aggB.IsIrrelevant() || valB.IsIrrelevant() {
		return exprlang.BuildIrrelevant()
	}

	idxs := inst.Indices()
	if len(idxs) != 1 {
		return exprlang.BuildErr(fmt.Errorf("insertvalue with unsupported index depth %d", len(idxs)))
	}
	idx := idxs[0]

	switch agg := aggB.Expr().(type) {
	case exprlang.UndefinedExpr:
		fields := make([]exprlang.Expr, idx+1)
		for i := range fields {
			fields[i] = exprlang.NewUndefined(agg.T)
		}
		fields[idx] = valB.Expr()
		return exprlang.Ok(exprlang.NewStruct(agg.T, fields))

	case exprlang.StructExpr:
		fields := append([]exprlang.Expr(nil), agg.Fields...)
		if idx >= len(fields) {
			grown := make([]exprlang.Expr, idx+1)
			copy(grown, fields)
			for i := len(fields); i < len(grown); i++ {
				grown[i] = exprlang.NewUndefined(agg.T)
			}
			fields = grown
		}
		fields[idx] = valB.Expr()
		return exprlang.Ok(exprlang.NewStruct(agg.T, fields))

	default:
		return exprlang.BuildErr(fmt.Errorf("insertvalue into non-aggregate shape %s", agg))
	}
}

func (s *SymbolicState) buildExtractValue(inst irmodel.ExtractValueInst) exprlang.Build {
	aggB := s.buildOperand(inst.Aggregate())
	if !aggB.IsJust() {
		return aggB
	}
	idxs := inst.Indices()
	if len(idxs) != 1 {
		return exprlang.BuildErr(fmt.Errorf("extractvalue with unsupported index depth %d", len(idxs)))
	}
	return exprlang.Ok(exprlang.Simplify(exprlang.NewExtract(inst.ResultType(), idxs[0], aggB.Expr())))
}

func (s *SymbolicState) buildICmp(inst irmodel.ICmpInst) exprlang.Build {
	l := s.buildOperand(inst.LHS())
	r := s.buildOperand(inst.RHS())
	return exprlang.Map2(l, r, func(x, y exprlang.Expr) exprlang.Expr {
		return exprlang.Simplify(exprlang.NewICmp(inst.Pred(), x, y))
	})
}

// buildLoad looks up MemLoc(a) in info; on first access it synthesizes a
// fresh free-variable LoadExpr and registers its name, per spec.md §4.4.
func (s *SymbolicState) buildLoad(inst irmodel.LoadInst, ev *assoc.Event) exprlang.Build {
	if ev == nil || ev.Kind() != assoc.KindAddr {
		return exprlang.BuildErr(fmt.Errorf("load instruction without an address event"))
	}
	_, a := ev.Addr()
	loc := addr.MemLoc(a)
	t := inst.(irmodel.Instruction).ResultType()

	info, ok := s.Info[loc]
	var expr exprlang.Expr
	if ok {
		expr = info.Expr
	} else {
		name, hasName := s.freshName(t, a)
		var namePtr *string
		if hasName {
			namePtr = &name
		}
		expr = exprlang.NewLoad(t, a, namePtr)
		s.Info[loc] = LocInfo{Expr: expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
	}

	if a.Interesting() {
		origin, hasOrigin := s.originExpr(loc)
		s.appendMessage(MemoryMessage{Op: tracelog.Load, Pretty: a.Pretty(), Value: expr, Origin: origin, HasOrigin: hasOrigin})
	}
	return exprlang.Ok(expr)
}

// buildIntrinsicCall handles a Call to a general recognized intrinsic.
// memset, memcpy, and log_dynval are handled by otherUpdate instead (they
// are non-SSA effects, or no-ops); this stage declines them so dispatch
// falls through correctly.
func (s *SymbolicState) buildIntrinsicCall(call irmodel.CallInst) exprlang.Build {
	name := call.CalleeName()
	if !call.IsIntrinsic() || isEffectOnlyIntrinsic(name) {
		return exprlang.BuildErr(errNotExprUpdate)
	}

	rawArgs := call.Args()
	args := make([]exprlang.Expr, 0, len(rawArgs))
	for _, a := range rawArgs {
		b := s.buildOperand(a)
		if b.IsErr() {
			return b
		}
		if b.IsIrrelevant() {
			return exprlang.BuildIrrelevant()
		}
		args = append(args, b.Expr())
	}
	return exprlang.Ok(exprlang.NewIntrinsic(name, call.ResultType(), args))
}

func isEffectOnlyIntrinsic(name string) bool {
	switch name {
	case "memset", "llvm.memset", "memcpy", "llvm.memcpy", "log_dynval":
		return true
	default:
		return false
	}
}
