package assoc

import "github.com/sarchlab/symtrace/irmodel"

// Paired is one instruction together with the event (if any) the
// associator attached to it.
type Paired struct {
	Inst  irmodel.Instruction
	Event *Event // nil if no event was attached.
}

// BlockRun is one basic block's instructions in the order they executed
// dynamically, each paired with its event.
type BlockRun struct {
	Block        irmodel.BasicBlock
	Instructions []Paired
}

// MemlogList is the associator's output: the dynamic execution path as an
// ordered list of basic blocks, each with its paired instructions, plus
// the total instruction count aligned (interesting or not) for progress
// reporting.
type MemlogList struct {
	Blocks    []BlockRun
	InstCount int
}
