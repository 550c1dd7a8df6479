package symeval

import (
	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
)

// helperUpdate implements spec.md §4.4's "Helper-function update": a Call
// paired with a HelperFunc event recurses into the callee's sub-memlog,
// binding arguments to its formal parameters first and the call's result
// (if any) from its return expression afterward. Only `function` is saved
// and restored; `info` is shared throughout, since helpers legitimately
// alter caller-visible memory (spec.md §9).
func (s *SymbolicState) helperUpdate(call irmodel.CallInst, ev *assoc.Event) error {
	callee, ok := call.Callee()
	if !ok {
		return &ContractError{
			Function: funcName(s.Function),
			Reason:   "helper event paired with a call whose callee is not a module-defined function",
		}
	}

	caller := s.Function
	s.bindHelperArgs(callee, call.Args())

	s.Function = callee
	if err := s.runBlocks(ev.Helper()); err != nil {
		s.Function = caller
		return err
	}
	ret := s.RetVal
	s.Function = caller

	if name, ok := call.Ident(); ok && ret != nil {
		loc := addr.IdLoc(funcName(s.Function), name)
		s.Info[loc] = LocInfo{Expr: ret, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
	}
	return nil
}

func (s *SymbolicState) bindHelperArgs(callee irmodel.Function, args []irmodel.Operand) {
	params := callee.Params()
	for i, p := range params {
		if i >= len(args) {
			break
		}
		ident, ok := p.(irmodel.IdentOperand)
		if !ok {
			continue
		}
		var expr exprlang.Expr = exprlang.Irrelevant
		if b := s.buildOperand(args[i]); b.IsJust() {
			expr = b.Expr()
		}
		loc := addr.IdLoc(callee.Name(), ident.Ident())
		s.Info[loc] = LocInfo{Expr: expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
	}
}
