package irfake

import (
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
)

// base is embedded by every fake instruction type, providing the common
// irmodel.Instruction surface plus the setBlock hook Block.Add uses to wire
// the back-pointer at insertion time.
type base struct {
	opcode     irmodel.Opcode
	ident      string
	hasIdent   bool
	resultType exprlang.ExprT
	block      *Block
}

func (b *base) Opcode() irmodel.Opcode       { return b.opcode }
func (b *base) Ident() (string, bool)        { return b.ident, b.hasIdent }
func (b *base) BasicBlock() irmodel.BasicBlock { return b.block }
func (b *base) ResultType() exprlang.ExprT   { return b.resultType }
func (b *base) setBlock(blk *Block)          { b.block = blk }

func namedBase(opcode irmodel.Opcode, ident string, t exprlang.ExprT) base {
	return base{opcode: opcode, ident: ident, hasIdent: true, resultType: t}
}

func voidBase(opcode irmodel.Opcode) base {
	return base{opcode: opcode, resultType: exprlang.Void}
}

// Binary is a fake irmodel.BinaryInst.
type Binary struct {
	base
	lhs, rhs irmodel.Operand
}

// NewBinary builds a binary instruction (add, sub, and, ...).
func NewBinary(opcode irmodel.Opcode, ident string, t exprlang.ExprT, lhs, rhs irmodel.Operand) *Binary {
	return &Binary{base: namedBase(opcode, ident, t), lhs: lhs, rhs: rhs}
}

func (i *Binary) LHS() irmodel.Operand { return i.lhs }
func (i *Binary) RHS() irmodel.Operand { return i.rhs }

// Cast is a fake irmodel.CastInst.
type Cast struct {
	base
	operand irmodel.Operand
}

// NewCast builds a unary cast instruction (trunc, zext, bitcast, ...).
func NewCast(opcode irmodel.Opcode, ident string, t exprlang.ExprT, operand irmodel.Operand) *Cast {
	return &Cast{base: namedBase(opcode, ident, t), operand: operand}
}

func (i *Cast) Operand() irmodel.Operand { return i.operand }

// Load is a fake irmodel.LoadInst.
type Load struct {
	base
}

// NewLoad builds a load instruction.
func NewLoad(ident string, t exprlang.ExprT) *Load {
	return &Load{base: namedBase(irmodel.OpLoad, ident, t)}
}

// Store is a fake irmodel.StoreInst.
type Store struct {
	base
	value    irmodel.Operand
	volatile bool
}

// NewStore builds a store instruction.
func NewStore(value irmodel.Operand, volatile bool) *Store {
	return &Store{base: voidBase(irmodel.OpStore), value: value, volatile: volatile}
}

func (i *Store) Value() irmodel.Operand { return i.value }
func (i *Store) Volatile() bool         { return i.volatile }

// Call is a fake irmodel.CallInst.
type Call struct {
	base
	callee      *Function
	calleeName  string
	args        []irmodel.Operand
	isIntrinsic bool
	isNoReturn  bool
}

// NewCall builds a call instruction. Pass callee=nil for an external call
// (one not defined in this module); ident="" for a void call.
func NewCall(ident string, t exprlang.ExprT, callee *Function, calleeName string, args []irmodel.Operand, isIntrinsic, isNoReturn bool) *Call {
	var b base
	if ident == "" {
		b = voidBase(irmodel.OpCall)
	} else {
		b = namedBase(irmodel.OpCall, ident, t)
	}
	return &Call{base: b, callee: callee, calleeName: calleeName, args: args, isIntrinsic: isIntrinsic, isNoReturn: isNoReturn}
}

func (i *Call) Callee() (irmodel.Function, bool) {
	if i.callee == nil {
		return nil, false
	}
	return i.callee, true
}
func (i *Call) CalleeName() string      { return i.calleeName }
func (i *Call) Args() []irmodel.Operand { return i.args }
func (i *Call) IsIntrinsic() bool       { return i.isIntrinsic }
func (i *Call) IsNoReturn() bool        { return i.isNoReturn }

// Branch is a fake irmodel.BranchInst.
type Branch struct {
	base
	conditional          bool
	cond                 irmodel.Operand
	trueTarget, falseTarget, target *Block
}

// NewCondBranch builds a conditional branch instruction.
func NewCondBranch(cond irmodel.Operand, trueTarget, falseTarget *Block) *Branch {
	return &Branch{base: voidBase(irmodel.OpBr), conditional: true, cond: cond, trueTarget: trueTarget, falseTarget: falseTarget}
}

// NewBranch builds an unconditional branch instruction.
func NewBranch(target *Block) *Branch {
	return &Branch{base: voidBase(irmodel.OpBr), conditional: false, target: target}
}

func (i *Branch) Conditional() bool { return i.conditional }
func (i *Branch) Cond() irmodel.Operand { return i.cond }
func (i *Branch) TrueTarget() irmodel.BasicBlock  { return i.trueTarget }
func (i *Branch) FalseTarget() irmodel.BasicBlock { return i.falseTarget }
func (i *Branch) Target() irmodel.BasicBlock      { return i.target }

// Ret is a fake irmodel.RetInst.
type Ret struct {
	base
	value    irmodel.Operand
	hasValue bool
}

// NewRet builds a return instruction; pass value=nil for a void return.
func NewRet(value irmodel.Operand) *Ret {
	return &Ret{base: voidBase(irmodel.OpRet), value: value, hasValue: value != nil}
}

func (i *Ret) Value() (irmodel.Operand, bool) { return i.value, i.hasValue }

// Phi is a fake irmodel.PhiInst.
type Phi struct {
	base
	incoming []irmodel.PhiEdge
}

// NewPhi builds a phi instruction.
func NewPhi(ident string, t exprlang.ExprT, incoming []irmodel.PhiEdge) *Phi {
	return &Phi{base: namedBase(irmodel.OpPhi, ident, t), incoming: incoming}
}

func (i *Phi) Incoming() []irmodel.PhiEdge { return i.incoming }

// Select is a fake irmodel.SelectInst.
type Select struct {
	base
	cond, ifTrue, ifFalse irmodel.Operand
}

// NewSelect builds a select instruction.
func NewSelect(ident string, t exprlang.ExprT, cond, ifTrue, ifFalse irmodel.Operand) *Select {
	return &Select{base: namedBase(irmodel.OpSelect, ident, t), cond: cond, ifTrue: ifTrue, ifFalse: ifFalse}
}

func (i *Select) Cond() irmodel.Operand    { return i.cond }
func (i *Select) IfTrue() irmodel.Operand  { return i.ifTrue }
func (i *Select) IfFalse() irmodel.Operand { return i.ifFalse }

// GEP is a fake irmodel.GEPInst.
type GEP struct {
	base
}

// NewGEP builds a getelementptr instruction.
func NewGEP(ident string) *GEP {
	return &GEP{base: namedBase(irmodel.OpGetElementPtr, ident, exprlang.Ptr)}
}

// InsertValue is a fake irmodel.InsertValueInst.
type InsertValue struct {
	base
	aggregate, value irmodel.Operand
	indices          []int
}

// NewInsertValue builds an insertvalue instruction.
func NewInsertValue(ident string, t exprlang.ExprT, aggregate, value irmodel.Operand, indices []int) *InsertValue {
	return &InsertValue{base: namedBase(irmodel.OpInsertValue, ident, t), aggregate: aggregate, value: value, indices: indices}
}

func (i *InsertValue) Aggregate() irmodel.Operand { return i.aggregate }
func (i *InsertValue) Value() irmodel.Operand     { return i.value }
func (i *InsertValue) Indices() []int             { return i.indices }

// ExtractValue is a fake irmodel.ExtractValueInst.
type ExtractValue struct {
	base
	aggregate irmodel.Operand
	indices   []int
}

// NewExtractValue builds an extractvalue instruction.
func NewExtractValue(ident string, t exprlang.ExprT, aggregate irmodel.Operand, indices []int) *ExtractValue {
	return &ExtractValue{base: namedBase(irmodel.OpExtractValue, ident, t), aggregate: aggregate, indices: indices}
}

func (i *ExtractValue) Aggregate() irmodel.Operand { return i.aggregate }
func (i *ExtractValue) Indices() []int             { return i.indices }

// ICmp is a fake irmodel.ICmpInst.
type ICmp struct {
	base
	pred     exprlang.Predicate
	lhs, rhs irmodel.Operand
}

// NewICmp builds an icmp instruction. Its result type is always Int8, per
// exprlang.ICmpExpr.
func NewICmp(ident string, pred exprlang.Predicate, lhs, rhs irmodel.Operand) *ICmp {
	return &ICmp{base: namedBase(irmodel.OpICmp, ident, exprlang.Int8), pred: pred, lhs: lhs, rhs: rhs}
}

func (i *ICmp) Pred() exprlang.Predicate { return i.pred }
func (i *ICmp) LHS() irmodel.Operand     { return i.lhs }
func (i *ICmp) RHS() irmodel.Operand     { return i.rhs }

// Alloca is a fake irmodel.AllocaInst.
type Alloca struct {
	base
}

// NewAlloca builds an alloca instruction.
func NewAlloca(ident string) *Alloca {
	return &Alloca{base: namedBase(irmodel.OpAlloca, ident, exprlang.Ptr)}
}

// Switch is a fake irmodel.SwitchInst.
type Switch struct {
	base
}

// NewSwitch builds a switch instruction. The evaluator treats switch as a
// no-op, so no case data is modeled.
func NewSwitch() *Switch {
	return &Switch{base: voidBase(irmodel.OpSwitch)}
}

// Unreachable is a fake irmodel.UnreachableInst.
type Unreachable struct {
	base
}

// NewUnreachable builds an unreachable instruction.
func NewUnreachable() *Unreachable {
	return &Unreachable{base: voidBase(irmodel.OpUnreachable)}
}
