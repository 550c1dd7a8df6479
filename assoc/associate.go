package assoc

import (
	"github.com/sarchlab/symtrace/irmodel"
	"github.com/sarchlab/symtrace/tracelog"
)

// cursor walks the flat op stream shared by every function activation,
// including nested helper calls — the associator equivalent of the PC
// that core.Core.Tick advances one instruction at a time in the teacher,
// generalized so that popping an event and advancing to the next basic
// block are independent steps.
type cursor struct {
	ops []tracelog.Op
	pos int
}

func (c *cursor) pop() (tracelog.Op, bool) {
	if c.pos >= len(c.ops) {
		return tracelog.Op{}, false
	}
	op := c.ops[c.pos]
	c.pos++
	return op, true
}

// Associate walks entryCalls — the dynamic, top-level call list — against
// module, popping events from ops in lock-step and filtering the emitted
// blocks down to those belonging to a function named in interesting.
// Non-interesting blocks still consume their events; they are simply
// dropped from the result, letting the caller analyze only a window of the
// trace while correctly advancing the cursor. A nil interesting map means no
// filtering at all: every function's blocks are emitted.
func Associate(
	module irmodel.Module,
	entryCalls []string,
	ops []tracelog.Op,
	interesting map[string]bool,
) (MemlogList, error) {
	c := &cursor{ops: ops}

	var result MemlogList
	for _, name := range entryCalls {
		fn, ok := module.Function(name)
		if !ok {
			return MemlogList{}, &AlignmentError{Function: name, Reason: "entry function not found in module"}
		}
		sub, err := associateFunction(module, fn, c, interesting)
		if err != nil {
			return MemlogList{}, err
		}
		result.Blocks = append(result.Blocks, sub.Blocks...)
		result.InstCount += sub.InstCount
	}
	return result, nil
}

// associateFunction walks one activation of fn from its entry block to its
// Ret, advancing c and returning the (filtered) blocks it walked along
// with the total instruction count it aligned.
func associateFunction(
	module irmodel.Module,
	fn irmodel.Function,
	c *cursor,
	interesting map[string]bool,
) (MemlogList, error) {
	blocks := fn.BasicBlocks()
	if len(blocks) == 0 {
		return MemlogList{}, &AlignmentError{Function: fn.Name(), Reason: "function has no basic blocks"}
	}

	emit := interesting == nil || interesting[fn.Name()]
	var result MemlogList

	block := blocks[0]
	for {
		run, next, terminal, err := associateBlock(module, fn, block, c, interesting)
		if err != nil {
			return MemlogList{}, err
		}
		result.InstCount += len(run.Instructions)
		if emit {
			result.Blocks = append(result.Blocks, run)
		}
		if terminal {
			return result, nil
		}
		block = next
	}
}

// associateBlock walks one basic block's instructions, popping events from
// c as dictated by each instruction's opcode, and reports the next block
// to visit (or terminal=true if the block ended in a Ret).
func associateBlock(
	module irmodel.Module,
	fn irmodel.Function,
	block irmodel.BasicBlock,
	c *cursor,
	interesting map[string]bool,
) (run BlockRun, next irmodel.BasicBlock, terminal bool, err error) {
	run.Block = block

	insts := block.Instructions()
	for i, inst := range insts {
		ev, nextBlock, isTerminal, perr := associateInst(module, fn, block, i, inst, c, interesting)
		if perr != nil {
			return BlockRun{}, nil, false, perr
		}
		run.Instructions = append(run.Instructions, Paired{Inst: inst, Event: ev})

		if isTerminal {
			return run, nil, true, nil
		}
		if nextBlock != nil {
			return run, nextBlock, false, nil
		}
	}
	return run, nil, false, nil
}

func alignErr(fn irmodel.Function, block irmodel.BasicBlock, idx int, reason string) error {
	return &AlignmentError{Function: fn.Name(), Block: block.Label(), InstIndex: idx, Reason: reason}
}

// associateInst dispatches on inst's opcode per the table in the
// specification: how many events it pops (zero or one, except a memcpy
// call, which pops two Addr records for source and destination, and a
// helper call, which brackets an entire nested sub-memlog), and what that implies
// for the next basic block to visit.
func associateInst(
	module irmodel.Module,
	fn irmodel.Function,
	block irmodel.BasicBlock,
	idx int,
	inst irmodel.Instruction,
	c *cursor,
	interesting map[string]bool,
) (ev *Event, next irmodel.BasicBlock, terminal bool, err error) {
	switch inst.Opcode() {
	case irmodel.OpLoad:
		op, ok := c.pop()
		if !ok || !op.IsAddr(tracelog.Load) {
			return nil, nil, false, alignErr(fn, block, idx, "expected Addr(Load, _) event")
		}
		return &Event{kind: KindAddr, addrOp: tracelog.Load, addrEntry: op.AddrEntry}, nil, false, nil

	case irmodel.OpStore:
		store := inst.(irmodel.StoreInst)
		if store.Volatile() {
			return nil, nil, false, nil
		}
		op, ok := c.pop()
		if !ok || !op.IsAddr(tracelog.Store) {
			return nil, nil, false, alignErr(fn, block, idx, "expected Addr(Store, _) event")
		}
		return &Event{kind: KindAddr, addrOp: tracelog.Store, addrEntry: op.AddrEntry}, nil, false, nil

	case irmodel.OpBr:
		br := inst.(irmodel.BranchInst)
		op, ok := c.pop()
		if !ok || op.Type != tracelog.EntryBranch {
			return nil, nil, false, alignErr(fn, block, idx, "expected Branch event")
		}
		if br.Conditional() {
			taken := op.BranchTaken == 0
			ev := &Event{kind: KindBranch, branchTrue: taken}
			if taken {
				return ev, br.TrueTarget(), false, nil
			}
			return ev, br.FalseTarget(), false, nil
		}
		return &Event{kind: KindBranch, branchTrue: true}, br.Target(), false, nil

	case irmodel.OpRet:
		return nil, nil, true, nil

	case irmodel.OpSelect:
		op, ok := c.pop()
		if !ok || op.Type != tracelog.EntrySelect {
			return nil, nil, false, alignErr(fn, block, idx, "expected Select event")
		}
		return &Event{kind: KindSelect, selectIndex: op.SelectValue}, nil, false, nil

	case irmodel.OpCall:
		return associateCall(module, fn, block, idx, inst.(irmodel.CallInst), c, interesting)

	default:
		return nil, nil, false, nil
	}
}

func associateCall(
	module irmodel.Module,
	fn irmodel.Function,
	block irmodel.BasicBlock,
	idx int,
	call irmodel.CallInst,
	c *cursor,
	interesting map[string]bool,
) (*Event, irmodel.BasicBlock, bool, error) {
	name := call.CalleeName()

	if call.IsIntrinsic() {
		switch name {
		case "memset", "llvm.memset":
			op, ok := c.pop()
			if !ok || op.Type != tracelog.EntryAddr {
				return nil, nil, false, alignErr(fn, block, idx, "expected Addr event for memset")
			}
			return &Event{kind: KindMemset, memsetAddr: op.AddrEntry}, nil, false, nil
		case "memcpy", "llvm.memcpy":
			srcOp, ok := c.pop()
			if !ok || srcOp.Type != tracelog.EntryAddr {
				return nil, nil, false, alignErr(fn, block, idx, "expected Addr event for memcpy source")
			}
			dstOp, ok := c.pop()
			if !ok || dstOp.Type != tracelog.EntryAddr {
				return nil, nil, false, alignErr(fn, block, idx, "expected Addr event for memcpy destination")
			}
			return &Event{kind: KindMemcpy, memcpySrc: srcOp.AddrEntry, memcpyDst: dstOp.AddrEntry}, nil, false, nil
		}
		return nil, nil, false, nil
	}

	callee, isHelper := call.Callee()
	if !isHelper {
		return nil, nil, false, nil
	}

	sub, err := associateFunction(module, callee, c, interesting)
	if err != nil {
		return nil, nil, false, err
	}
	return &Event{kind: KindHelperFunc, helper: sub}, nil, false, nil
}
