// Package irmodel is the boundary between the analyzer and the (out of
// scope) IR parser: the minimal interface surface a caller's parsed IR
// module must satisfy for the associator and evaluator to walk it. This
// generalizes core/instruction.go's flat Instruction struct (opcode +
// string operands "for gradual migration") into a typed interface a real
// parser — llir/llvm-shaped, in the style of the bin2ll example in the
// retrieved pack — can implement directly against its own concrete types.
package irmodel

import "github.com/sarchlab/symtrace/exprlang"

// Opcode names the operation an Instruction performs.
type Opcode string

// The instruction opcodes the evaluator recognizes. Binary/cast opcodes
// share names with exprlang's BinOpKind/CastKind so the lookup tables in
// package symeval can translate directly.
const (
	OpAdd  Opcode = "add"
	OpSub  Opcode = "sub"
	OpMul  Opcode = "mul"
	OpDiv  Opcode = "div"
	OpRem  Opcode = "rem"
	OpShl  Opcode = "shl"
	OpLshr Opcode = "lshr"
	OpAshr Opcode = "ashr"
	OpAnd  Opcode = "and"
	OpOr   Opcode = "or"
	OpXor  Opcode = "xor"

	OpTrunc    Opcode = "trunc"
	OpZExt     Opcode = "zext"
	OpSExt     Opcode = "sext"
	OpFPTrunc  Opcode = "fptrunc"
	OpFPExt    Opcode = "fpext"
	OpFPToSI   Opcode = "fptosi"
	OpFPToUI   Opcode = "fptoui"
	OpSIToFP   Opcode = "sitofp"
	OpUIToFP   Opcode = "uitofp"
	OpPtrToInt Opcode = "ptrtoint"
	OpIntToPtr Opcode = "inttoptr"
	OpBitcast  Opcode = "bitcast"

	OpPhi            Opcode = "phi"
	OpGetElementPtr  Opcode = "getelementptr"
	OpInsertValue    Opcode = "insertvalue"
	OpExtractValue   Opcode = "extractvalue"
	OpICmp           Opcode = "icmp"
	OpLoad           Opcode = "load"
	OpStore          Opcode = "store"
	OpCall           Opcode = "call"
	OpAlloca         Opcode = "alloca"
	OpBr             Opcode = "br"
	OpRet            Opcode = "ret"
	OpSwitch         Opcode = "switch"
	OpSelect         Opcode = "select"
	OpUnreachable    Opcode = "unreachable"
)

// Module exposes an IR module's functions by name.
type Module interface {
	Function(name string) (Function, bool)
	Functions() []Function
}

// Function exposes one IR function's parameters and basic blocks.
type Function interface {
	Name() string
	Params() []Operand
	BasicBlocks() []BasicBlock
}

// BasicBlock is a maximal straight-line instruction sequence ending in one
// terminator.
type BasicBlock interface {
	Label() string
	Function() Function
	Instructions() []Instruction
}

// Instruction is the common surface every instruction exposes. Opcode-
// specific data (operands, targets, predicate, ...) is reached through the
// narrower interfaces below via a type assertion on the concrete
// Instruction, the same way a caller of llir/llvm type-switches on
// *ir.InstAdd, *ir.InstLoad, and so on.
type Instruction interface {
	// Opcode reports which operation this instruction performs.
	Opcode() Opcode
	// Ident returns the SSA identifier this instruction's result is bound
	// to, and false if it produces no named result.
	Ident() (name string, ok bool)
	// BasicBlock returns the block this instruction belongs to.
	BasicBlock() BasicBlock
	// ResultType returns the type of the value this instruction produces,
	// or exprlang.Void if it produces none.
	ResultType() exprlang.ExprT
}

// Operand is a use of a value: either a reference to another
// instruction's result, a function parameter, or — via a type assertion to
// ConstOperand — a compile-time constant.
type Operand interface {
	Type() exprlang.ExprT
}

// IdentOperand is an Operand that refers to a named SSA value.
type IdentOperand interface {
	Operand
	Ident() string
}

// ConstOperand is an Operand whose value is known at IR-build time.
// Exactly one of the introspection methods applies to a given constant.
type ConstOperand interface {
	Operand
	IntValue() (int64, bool)
	FloatValue() (float64, bool)
	IsUndef() bool
	// InnerInst returns the instruction a constant expression (such as a
	// folded GEP) wraps, for opaque re-use by the GEP builder.
	InnerInst() (Instruction, bool)
}

// BinaryInst is implemented by instructions with opcode in the
// arithmetic/logic set.
type BinaryInst interface {
	Instruction
	LHS() Operand
	RHS() Operand
}

// CastInst is implemented by instructions with a unary-cast opcode.
type CastInst interface {
	Instruction
	Operand() Operand
}

// LoadInst is implemented by Load instructions. The dynamic address comes
// from the trace, not the IR, so no address accessor lives here.
type LoadInst interface {
	Instruction
}

// StoreInst is implemented by Store instructions.
type StoreInst interface {
	Instruction
	Value() Operand
	Volatile() bool
}

// CallInst is implemented by Call instructions.
type CallInst interface {
	Instruction
	// Callee returns the called function and true if it is defined in
	// this module (and therefore inlinable as a helper); false for an
	// external function.
	Callee() (Function, bool)
	CalleeName() string
	Args() []Operand
	IsIntrinsic() bool
	IsNoReturn() bool
}

// BranchInst is implemented by Br instructions, conditional or not.
type BranchInst interface {
	Instruction
	Conditional() bool
	Cond() Operand
	TrueTarget() BasicBlock
	FalseTarget() BasicBlock
	Target() BasicBlock
}

// RetInst is implemented by Ret instructions.
type RetInst interface {
	Instruction
	Value() (Operand, bool)
}

// PhiEdge is one incoming value of a Phi instruction.
type PhiEdge struct {
	Value Operand
	Block BasicBlock
}

// PhiInst is implemented by Phi instructions.
type PhiInst interface {
	Instruction
	Incoming() []PhiEdge
}

// SelectInst is implemented by Select instructions.
type SelectInst interface {
	Instruction
	Cond() Operand
	IfTrue() Operand
	IfFalse() Operand
}

// GEPInst is implemented by GetElementPtr instructions. The analyzer
// treats the result as opaque (exprlang.GEP) regardless of indices.
type GEPInst interface {
	Instruction
}

// InsertValueInst is implemented by InsertValue instructions.
type InsertValueInst interface {
	Instruction
	Aggregate() Operand
	Value() Operand
	Indices() []int
}

// ExtractValueInst is implemented by ExtractValue instructions.
type ExtractValueInst interface {
	Instruction
	Aggregate() Operand
	Indices() []int
}

// ICmpInst is implemented by ICmp instructions.
type ICmpInst interface {
	Instruction
	Pred() exprlang.Predicate
	LHS() Operand
	RHS() Operand
}

// AllocaInst is implemented by Alloca instructions.
type AllocaInst interface {
	Instruction
}

// SwitchInst is implemented by Switch instructions. The evaluator treats
// Switch as a no-op (see design notes), so no case data is exposed yet.
type SwitchInst interface {
	Instruction
}

// UnreachableInst is implemented by Unreachable instructions.
type UnreachableInst interface {
	Instruction
}
