// Package symeval is the symbolic evaluator: it interprets an associator-
// produced MemlogList over an abstract machine state, producing expressions,
// interesting-event messages, and warnings, queryable by guest IP.
package symeval

import (
	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
	"github.com/sarchlab/symtrace/tlog"
	"github.com/sarchlab/symtrace/traceopts"
)

// Run evaluates list from a freshly created SymbolicState and returns it.
func Run(list assoc.MemlogList, opts traceopts.Options) (*SymbolicState, error) {
	s := New(opts)
	s.FuncsTotal = countDistinctFuncs(list)
	if err := s.runBlocks(list); err != nil {
		return s, err
	}
	return s, nil
}

func countDistinctFuncs(list assoc.MemlogList) int {
	seen := make(map[irmodel.Function]bool)
	for _, run := range list.Blocks {
		seen[run.Block.Function()] = true
	}
	return len(seen)
}

// runBlocks is the entry point of spec.md §4.4: it iterates each
// (block, instructions) pair, resetting skip_rest and ret_val at the start
// of every block and recording the block as previous_block once its
// instructions are all processed. It returns the error from the first
// fatal contract/alignment violation encountered, if any.
func (s *SymbolicState) runBlocks(list assoc.MemlogList) error {
	for _, run := range list.Blocks {
		s.Function = run.Block.Function()
		s.SkipRest = false
		s.RetVal = nil

		if s.Function != s.lastFunc {
			s.FuncsProcessed++
			s.lastFunc = s.Function
			s.reportProgress()
		}

		for _, p := range run.Instructions {
			if err := s.processInst(p.Inst, p.Event); err != nil {
				return err
			}
		}
		s.PreviousBlock = run.Block
	}
	return nil
}

// processInst implements the per-instruction dispatch of spec.md §4.4:
// if skip_rest is set, do nothing; otherwise try, in order, helper-call
// update, expression update, other update, and finally a generic warning.
func (s *SymbolicState) processInst(inst irmodel.Instruction, ev *assoc.Event) error {
	if s.SkipRest {
		return nil
	}

	debug := s.debugMatches()
	msgsBefore := len(s.Messages)

	if call, ok := inst.(irmodel.CallInst); ok && ev != nil && ev.Kind() == assoc.KindHelperFunc {
		if err := s.helperUpdate(call, ev); err != nil {
			return err
		}
		s.mirrorDebug(debug, inst, ev, msgsBefore)
		return nil
	}

	build, fatal := s.exprUpdate(inst, ev)
	if fatal != nil {
		return fatal
	}
	if !build.IsErr() {
		s.bindResult(inst, build)
		s.mirrorDebug(debug, inst, ev, msgsBefore)
		return nil
	}

	build, fatal = s.otherUpdate(inst, ev)
	if fatal != nil {
		return fatal
	}
	if !build.IsErr() {
		s.mirrorDebug(debug, inst, ev, msgsBefore)
		return nil
	}

	s.warn("Couldn't process inst '%s' with op %s", instLabel(inst), inst.Opcode())
	s.mirrorDebug(debug, inst, ev, msgsBefore)
	return nil
}

// bindResult inserts build's expression at IdLoc(function, name) if inst
// has an SSA name — an instruction with none produces no info insertion
// regardless of builder success. Inserting always records current_ip as
// that location's origin.
func (s *SymbolicState) bindResult(inst irmodel.Instruction, build exprlang.Build) {
	name, ok := inst.Ident()
	if !ok {
		return
	}

	var expr exprlang.Expr = exprlang.Irrelevant
	if build.IsJust() {
		expr = build.Expr()
	}

	loc := addr.IdLoc(funcName(s.Function), name)
	s.Info[loc] = LocInfo{Expr: expr, Origin: s.CurrentIP, HasOrigin: s.HasCurrentIP}
}

// reportProgress logs a trace-level line roughly every one percent of
// funcs_total, matching spec.md §5's structured-output-friendly progress
// reporting.
func (s *SymbolicState) reportProgress() {
	if s.FuncsTotal <= 0 {
		return
	}
	step := s.FuncsTotal / 100
	if step == 0 || s.FuncsProcessed%step == 0 {
		tlog.Tracef("processed %d/%d functions", s.FuncsProcessed, s.FuncsTotal)
	}
}

func instLabel(inst irmodel.Instruction) string {
	if name, ok := inst.Ident(); ok {
		return name
	}
	return string(inst.Opcode())
}

// debugMatches reports whether the configured debug IP equals current_ip —
// spec.md §4.4's "Debug-IP tracing".
func (s *SymbolicState) debugMatches() bool {
	ip, ok := s.Options.DebugIP()
	return ok && s.HasCurrentIP && s.CurrentIP == ip
}

// mirrorDebug logs the processed (instruction, event) pair and mirrors any
// messages it emitted, when debug-IP tracing is active.
func (s *SymbolicState) mirrorDebug(active bool, inst irmodel.Instruction, ev *assoc.Event, msgsBefore int) {
	if !active {
		return
	}
	tlog.Tracef("debug-ip: processed %s (event=%v)", instLabel(inst), ev != nil)
	for _, m := range s.Messages[msgsBefore:] {
		tlog.Tracef("debug-ip: message %s", m.Message)
	}
}
