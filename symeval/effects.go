package symeval

import (
	"fmt"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
	"github.com/sarchlab/symtrace/tracelog"
)

// otherUpdate is the "other update" stage of spec.md §4.4: non-SSA-
// producing effects. An Err-kind Build means inst matched nothing here
// either, and the caller should emit a generic warning.
func (s *SymbolicState) otherUpdate(inst irmodel.Instruction, ev *assoc.Event) (exprlang.Build, error) {
	switch inst.Opcode() {
	case irmodel.OpAlloca:
		return exprlang.BuildIrrelevant(), nil

	case irmodel.OpStore:
		store := inst.(irmodel.StoreInst)
		if store.Volatile() {
			return s.storeVolatileIP(store), nil
		}
		return s.storeNonVolatile(store, ev), nil

	case irmodel.OpRet:
		return s.doRet(inst.(irmodel.RetInst))

	case irmodel.OpBr:
		return s.doBranch(inst.(irmodel.BranchInst), ev), nil

	case irmodel.OpSwitch:
		return exprlang.BuildIrrelevant(), nil

	case irmodel.OpUnreachable:
		s.warn("UNREACHABLE INSTRUCTION!")
		return exprlang.BuildIrrelevant(), nil

	case irmodel.OpCall:
		return s.otherCall(inst.(irmodel.CallInst), ev), nil

	default:
		return exprlang.BuildErr(errNotOtherUpdate), nil
	}
}

var errNotOtherUpdate = fmt.Errorf("symeval: opcode not handled by other update")

// storeVolatileIP treats every volatile store as a write to the guest IP
// slot: this IR only ever emits a volatile store for that one purpose, and
// the compiler emits it twice per guest instruction — both writes go
// through the same setter, so the second (last) one committed wins.
func (s *SymbolicState) storeVolatileIP(store irmodel.StoreInst) exprlang.Build {
	valB := s.buildOperand(store.Value())
	if !valB.IsJust() {
		s.warn("volatile IP store operand did not resolve to a value")
		return exprlang.BuildIrrelevant()
	}
	lit, ok := valB.Expr().(exprlang.ILitExpr)
	if !ok {
		s.warn("volatile IP store did not resolve to a constant integer")
		return exprlang.BuildIrrelevant()
	}
	s.CurrentIP = uint64(lit.Value)
	s.HasCurrentIP = true
	return exprlang.BuildIrrelevant()
}

func (s *SymbolicState) storeNonVolatile(store irmodel.StoreInst, ev *assoc.Event) exprlang.Build {
	if ev == nil || ev.Kind() != assoc.KindAddr {
		return exprlang.BuildErr(fmt.Errorf("non-volatile store without an address event"))
	}
	_, a := ev.Addr()

	valB := s.buildOperand(store.Value())
	if valB.IsErr() {
		return valB
	}

	var expr exprlang.Expr = exprlang.Irrelevant
	if valB.IsJust() {
		expr = exprlang.Simplify(valB.Expr())
	}

	loc := addr.MemLoc(a)
	s.Info[loc] = LocInfo{Expr: expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}

	if a.Interesting() {
		origin, hasOrigin := s.originExpr(loc)
		s.appendMessage(MemoryMessage{Op: tracelog.Store, Pretty: a.Pretty(), Value: expr, Origin: origin, HasOrigin: hasOrigin})
	}
	return exprlang.BuildIrrelevant()
}

func (s *SymbolicState) doRet(ret irmodel.RetInst) (exprlang.Build, error) {
	val, ok := ret.Value()
	if !ok {
		s.RetVal = nil
		return exprlang.BuildIrrelevant(), nil
	}
	b := s.buildOperand(val)
	if b.IsErr() {
		return b, nil
	}
	if b.IsJust() {
		s.RetVal = exprlang.Simplify(b.Expr())
	} else {
		s.RetVal = exprlang.Irrelevant
	}
	return exprlang.BuildIrrelevant(), nil
}

func (s *SymbolicState) doBranch(br irmodel.BranchInst, ev *assoc.Event) exprlang.Build {
	if ev == nil || ev.Kind() != assoc.KindBranch {
		return exprlang.BuildErr(fmt.Errorf("branch without a branch event"))
	}
	if !br.Conditional() {
		s.appendMessage(UnconditionalBranchMessage{})
		return exprlang.BuildIrrelevant()
	}

	var condExpr exprlang.Expr = exprlang.Irrelevant
	if condB := s.buildOperand(br.Cond()); condB.IsJust() {
		condExpr = exprlang.Simplify(condB.Expr())
	}
	s.appendMessage(BranchMessage{Cond: condExpr, Taken: ev.BranchTaken()})
	return exprlang.BuildIrrelevant()
}

func (s *SymbolicState) otherCall(call irmodel.CallInst, ev *assoc.Event) exprlang.Build {
	name := call.CalleeName()

	switch {
	case name == "log_dynval":
		return exprlang.BuildIrrelevant()

	case ev != nil && ev.Kind() == assoc.KindMemset:
		return s.doMemset(call, ev)

	case ev != nil && ev.Kind() == assoc.KindMemcpy:
		return s.doMemcpy(call, ev)

	case call.IsNoReturn() || name == "cpu_loop_exit":
		s.SkipRest = true
		return exprlang.BuildIrrelevant()

	default:
		return exprlang.BuildErr(fmt.Errorf("call to %q not handled by other update", name))
	}
}

// doMemset binds the fill-value expression at the target address and warns
// if the length argument (conventionally memset's third argument) is not a
// literal, or exceeds 16 bytes.
func (s *SymbolicState) doMemset(call irmodel.CallInst, ev *assoc.Event) exprlang.Build {
	a := ev.MemsetAddr()
	args := call.Args()

	var expr exprlang.Expr = exprlang.Irrelevant
	if len(args) >= 2 {
		if b := s.buildOperand(args[1]); b.IsJust() {
			expr = b.Expr()
		}
	}
	s.Info[addr.MemLoc(a)] = LocInfo{Expr: expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}

	length, lengthOK := constIntArg(args, 2)
	switch {
	case !lengthOK:
		s.warn("memset length could not be extracted as a literal")
	case length > 16:
		s.warn("memset length %d exceeds 16 bytes", length)
	}
	return exprlang.BuildIrrelevant()
}

// doMemcpy copies the source location's current expression to the
// destination location. The specification's "unless target is a struct"
// qualifier on the length warning can't be evaluated here: irmodel exposes
// no aggregate-type introspection on a raw memory destination, so the
// warning fires on length alone (see DESIGN.md).
func (s *SymbolicState) doMemcpy(call irmodel.CallInst, ev *assoc.Event) exprlang.Build {
	src, dst := ev.MemcpyAddrs()
	srcLoc, dstLoc := addr.MemLoc(src), addr.MemLoc(dst)

	if info, ok := s.Info[srcLoc]; ok {
		s.Info[dstLoc] = LocInfo{Expr: info.Expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
	} else {
		s.Info[dstLoc] = LocInfo{Expr: exprlang.Irrelevant, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
	}

	if length, ok := constIntArg(call.Args(), 2); ok && length > 16 {
		s.warn("memcpy length %d exceeds 16 bytes", length)
	}
	return exprlang.BuildIrrelevant()
}

func constIntArg(args []irmodel.Operand, idx int) (int64, bool) {
	if idx >= len(args) {
		return 0, false
	}
	cst, ok := args[idx].(irmodel.ConstOperand)
	if !ok {
		return 0, false
	}
	return cst.IntValue()
}
