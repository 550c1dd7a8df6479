// Package irfake is a small, hand-written fake implementation of the
// irmodel interfaces, used by the associator's and evaluator's test suites
// in place of a real IR parser — the same spirit as core's
// extport_internal_test.go hand-rolling a TestMsg type instead of pulling
// in a generated mock.
package irfake

import (
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
)

// Module is a fake irmodel.Module.
type Module struct {
	funcs map[string]*Function
	order []string
}

// NewModule builds an empty fake module.
func NewModule() *Module {
	return &Module{funcs: make(map[string]*Function)}
}

// Function looks up a function by name.
func (m *Module) Function(name string) (irmodel.Function, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// Functions returns every registered function in registration order.
func (m *Module) Functions() []irmodel.Function {
	out := make([]irmodel.Function, len(m.order))
	for i, n := range m.order {
		out[i] = m.funcs[n]
	}
	return out
}

// AddFunction registers and returns a new function.
func (m *Module) AddFunction(name string) *Function {
	f := &Function{name: name}
	m.funcs[name] = f
	m.order = append(m.order, name)
	return f
}

// Function is a fake irmodel.Function.
type Function struct {
	name   string
	params []irmodel.Operand
	blocks []*Block
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Params returns the function's formal parameters.
func (f *Function) Params() []irmodel.Operand { return f.params }

// AddParam appends a named parameter of the given type and returns an
// operand referring to it.
func (f *Function) AddParam(name string, t exprlang.ExprT) irmodel.Operand {
	p := IdentOperand(name, t)
	f.params = append(f.params, p)
	return p
}

// BasicBlocks returns the function's blocks in declaration order.
func (f *Function) BasicBlocks() []irmodel.BasicBlock {
	out := make([]irmodel.BasicBlock, len(f.blocks))
	for i, b := range f.blocks {
		out[i] = b
	}
	return out
}

// AddBlock appends and returns a new basic block.
func (f *Function) AddBlock(label string) *Block {
	b := &Block{label: label, fn: f}
	f.blocks = append(f.blocks, b)
	return b
}

// Block is a fake irmodel.BasicBlock.
type Block struct {
	label string
	insts []irmodel.Instruction
	fn    *Function
}

// Label returns the block's label.
func (b *Block) Label() string { return b.label }

// Function returns the block's containing function.
func (b *Block) Function() irmodel.Function { return b.fn }

// Instructions returns the block's instructions in order.
func (b *Block) Instructions() []irmodel.Instruction { return b.insts }

// Add appends inst to the block and wires its containing-block
// back-pointer, returning inst for chaining.
func (b *Block) Add(inst blockSetter) irmodel.Instruction {
	inst.setBlock(b)
	ri, _ := inst.(irmodel.Instruction)
	b.insts = append(b.insts, ri)
	return ri
}

type blockSetter interface {
	setBlock(*Block)
}

// ident is an irmodel.Operand + irmodel.IdentOperand referring to a named
// SSA value or function parameter.
type ident struct {
	name string
	t    exprlang.ExprT
}

func (o ident) Type() exprlang.ExprT { return o.t }
func (o ident) Ident() string        { return o.name }

// IdentOperand builds an operand referring to a named SSA value.
func IdentOperand(name string, t exprlang.ExprT) irmodel.Operand {
	return ident{name: name, t: t}
}

// constOperand is an irmodel.Operand + irmodel.ConstOperand. Exactly one
// of its introspection methods returns ok=true for any given instance.
type constOperand struct {
	t        exprlang.ExprT
	intVal   int64
	hasInt   bool
	floatVal float64
	hasFloat bool
	undef    bool
	inner    irmodel.Instruction
	hasInner bool
}

func (o constOperand) Type() exprlang.ExprT                 { return o.t }
func (o constOperand) IntValue() (int64, bool)               { return o.intVal, o.hasInt }
func (o constOperand) FloatValue() (float64, bool)           { return o.floatVal, o.hasFloat }
func (o constOperand) IsUndef() bool                         { return o.undef }
func (o constOperand) InnerInst() (irmodel.Instruction, bool) { return o.inner, o.hasInner }

// IntConst builds a constant integer operand.
func IntConst(t exprlang.ExprT, v int64) irmodel.Operand {
	return constOperand{t: t, intVal: v, hasInt: true}
}

// FloatConst builds a constant float operand.
func FloatConst(t exprlang.ExprT, v float64) irmodel.Operand {
	return constOperand{t: t, floatVal: v, hasFloat: true}
}

// UndefConst builds an undef constant operand.
func UndefConst(t exprlang.ExprT) irmodel.Operand {
	return constOperand{t: t, undef: true}
}

// InnerConst builds a constant operand wrapping a folded instruction,
// standing in for GEP-like constant expressions.
func InnerConst(t exprlang.ExprT, inner irmodel.Instruction) irmodel.Operand {
	return constOperand{t: t, inner: inner, hasInner: true}
}
