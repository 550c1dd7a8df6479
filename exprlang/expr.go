// Package exprlang is the expression algebra of the analyzer: a closed set
// of typed, immutable expression nodes with structural equality and a
// canonical bottom-up simplifier.
package exprlang

import (
	"fmt"
	"strings"

	"github.com/sarchlab/symtrace/addr"
)

// Expr is an immutable node of the algebraic expression tree. All variants
// listed in the specification implement this interface as small exported
// value types (sealed by the unexported isExpr method), in the spirit of the teacher's URegister/IRegister/FRegister
// wrappers in operand-impl/register.go — each variant is just a handful of
// fields behind a few methods, never a pointer-heavy class hierarchy.
type Expr interface {
	// Type returns the result type annotation of the node.
	Type() ExprT
	// String renders the node for diagnostics and message formatting.
	String() string
	// Equal reports structural equality with other.
	Equal(other Expr) bool

	isExpr()
}

// BinOpKind enumerates the binary arithmetic/logic node kinds.
type BinOpKind int

// The binary arithmetic/logic operations.
const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpLshr
	OpAshr
	OpAnd
	OpOr
	OpXor
)

func (k BinOpKind) String() string {
	names := [...]string{"add", "sub", "mul", "div", "rem", "shl", "lshr", "ashr", "and", "or", "xor"}
	if int(k) < len(names) {
		return names[k]
	}
	return "binop(?)"
}

// BinOp is a binary arithmetic/logic node.
type BinOp struct {
	Kind  BinOpKind
	T     ExprT
	L, R  Expr
}

func (e BinOp) isExpr()      {}
func (e BinOp) Type() ExprT  { return e.T }
func (e BinOp) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", e.Kind, e.T, e.L, e.R)
}
func (e BinOp) Equal(other Expr) bool {
	o, ok := other.(BinOp)
	if !ok {
		return false
	}
	return e.Kind == o.Kind && e.T == o.T && e.L.Equal(o.L) && e.R.Equal(o.R)
}

// NewBinOp builds a binary node.
func NewBinOp(kind BinOpKind, t ExprT, l, r Expr) Expr {
	return BinOp{Kind: kind, T: t, L: l, R: r}
}

// CastKind enumerates the unary cast node kinds.
type CastKind int

// The unary cast operations.
const (
	OpTrunc CastKind = iota
	OpZExt
	OpSExt
	OpFPTrunc
	OpFPExt
	OpFPToSI
	OpFPToUI
	OpSIToFP
	OpUIToFP
	OpPtrToInt
	OpIntToPtr
	OpBitcast
)

func (k CastKind) String() string {
	names := [...]string{
		"trunc", "zext", "sext", "fptrunc", "fpext", "fptosi", "fptoui",
		"sitofp", "uitofp", "ptrtoint", "inttoptr", "bitcast",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "cast(?)"
}

// CastOp is a unary cast node.
type CastOp struct {
	Kind CastKind
	T    ExprT
	X    Expr
}

func (e CastOp) isExpr()     {}
func (e CastOp) Type() ExprT { return e.T }
func (e CastOp) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Kind, e.T, e.X)
}
func (e CastOp) Equal(other Expr) bool {
	o, ok := other.(CastOp)
	if !ok {
		return false
	}
	return e.Kind == o.Kind && e.T == o.T && e.X.Equal(o.X)
}

// NewCastOp builds a unary cast node.
func NewCastOp(kind CastKind, t ExprT, x Expr) Expr {
	return CastOp{Kind: kind, T: t, X: x}
}

// StructExpr is an aggregate literal.
type StructExpr struct {
	T      ExprT
	Fields []Expr
}

func (e StructExpr) isExpr()     {}
func (e StructExpr) Type() ExprT { return e.T }
func (e StructExpr) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("struct(%s){%s}", e.T, strings.Join(parts, ", "))
}
func (e StructExpr) Equal(other Expr) bool {
	o, ok := other.(StructExpr)
	if !ok || e.T != o.T || len(e.Fields) != len(o.Fields) {
		return false
	}
	for i := range e.Fields {
		if !e.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

// NewStruct builds an aggregate literal node.
func NewStruct(t ExprT, fields []Expr) Expr {
	return StructExpr{T: t, Fields: fields}
}

// ExtractExpr reads one field out of an aggregate.
type ExtractExpr struct {
	T         ExprT
	Index     int
	Aggregate Expr
}

func (e ExtractExpr) isExpr()     {}
func (e ExtractExpr) Type() ExprT { return e.T }
func (e ExtractExpr) String() string {
	return fmt.Sprintf("extract(%s, %d, %s)", e.T, e.Index, e.Aggregate)
}
func (e ExtractExpr) Equal(other Expr) bool {
	o, ok := other.(ExtractExpr)
	if !ok {
		return false
	}
	return e.T == o.T && e.Index == o.Index && e.Aggregate.Equal(o.Aggregate)
}

// NewExtract builds an Extract node.
func NewExtract(t ExprT, index int, aggregate Expr) Expr {
	return ExtractExpr{T: t, Index: index, Aggregate: aggregate}
}

// ICmpExpr is a comparison node.
type ICmpExpr struct {
	Pred Predicate
	L, R Expr
}

func (e ICmpExpr) isExpr()     {}
func (e ICmpExpr) Type() ExprT { return Int8 }
func (e ICmpExpr) String() string {
	return fmt.Sprintf("icmp.%s(%s, %s)", e.Pred, e.L, e.R)
}
func (e ICmpExpr) Equal(other Expr) bool {
	o, ok := other.(ICmpExpr)
	if !ok {
		return false
	}
	return e.Pred == o.Pred && e.L.Equal(o.L) && e.R.Equal(o.R)
}

// NewICmp builds an ICmp node.
func NewICmp(pred Predicate, l, r Expr) Expr {
	return ICmpExpr{Pred: pred, L: l, R: r}
}

// IntrinsicExpr is a call to a recognized intrinsic function.
type IntrinsicExpr struct {
	Name string
	T    ExprT
	Args []Expr
}

func (e IntrinsicExpr) isExpr()     {}
func (e IntrinsicExpr) Type() ExprT { return e.T }
func (e IntrinsicExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(parts, ", "))
}
func (e IntrinsicExpr) Equal(other Expr) bool {
	o, ok := other.(IntrinsicExpr)
	if !ok || e.Name != o.Name || e.T != o.T || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// NewIntrinsic builds an Intrinsic node.
func NewIntrinsic(name string, t ExprT, args []Expr) Expr {
	return IntrinsicExpr{Name: name, T: t, Args: args}
}

// LoadExpr is the value produced by a symbolic memory load.
type LoadExpr struct {
	T    ExprT
	Addr addr.Entry
	Name *string
}

func (e LoadExpr) isExpr()     {}
func (e LoadExpr) Type() ExprT { return e.T }
func (e LoadExpr) String() string {
	if e.Name != nil {
		return *e.Name
	}
	return fmt.Sprintf("load(%s, %s)", e.T, e.Addr.Pretty())
}
func (e LoadExpr) Equal(other Expr) bool {
	o, ok := other.(LoadExpr)
	if !ok || e.T != o.T || !e.Addr.Equal(o.Addr) {
		return false
	}
	if (e.Name == nil) != (o.Name == nil) {
		return false
	}
	return e.Name == nil || *e.Name == *o.Name
}

// NewLoad builds a Load node.
func NewLoad(t ExprT, a addr.Entry, name *string) Expr {
	return LoadExpr{T: t, Addr: a, Name: name}
}

// ILitExpr is an integer literal.
type ILitExpr struct {
	T     ExprT
	Value int64
}

func (e ILitExpr) isExpr()       {}
func (e ILitExpr) Type() ExprT   { return e.T }
func (e ILitExpr) String() string { return fmt.Sprintf("%d", e.Value) }
func (e ILitExpr) Equal(other Expr) bool {
	o, ok := other.(ILitExpr)
	return ok && e.T == o.T && e.Value == o.Value
}

// NewILit builds an integer literal node.
func NewILit(t ExprT, value int64) Expr {
	return ILitExpr{T: t, Value: value}
}

// FLitExpr is a floating-point literal.
type FLitExpr struct {
	T     ExprT
	Value float64
}

func (e FLitExpr) isExpr()       {}
func (e FLitExpr) Type() ExprT   { return e.T }
func (e FLitExpr) String() string { return fmt.Sprintf("%g", e.Value) }
func (e FLitExpr) Equal(other Expr) bool {
	o, ok := other.(FLitExpr)
	return ok && e.T == o.T && e.Value == o.Value
}

// NewFLit builds a floating-point literal node.
func NewFLit(t ExprT, value float64) Expr {
	return FLitExpr{T: t, Value: value}
}

// InputExpr is a free variable: a value from a location whose origin is
// not yet known.
type InputExpr struct {
	T   ExprT
	Loc addr.Loc
}

func (e InputExpr) isExpr()       {}
func (e InputExpr) Type() ExprT   { return e.T }
func (e InputExpr) String() string { return fmt.Sprintf("input(%s, %s)", e.T, e.Loc) }
func (e InputExpr) Equal(other Expr) bool {
	o, ok := other.(InputExpr)
	return ok && e.T == o.T && e.Loc == o.Loc
}

// NewInput builds an Input node.
func NewInput(t ExprT, loc addr.Loc) Expr {
	return InputExpr{T: t, Loc: loc}
}

// GEPExpr is an opaque placeholder standing in for a pointer computation
// the analyzer does not model in detail.
type GEPExpr struct{}

func (e GEPExpr) isExpr()       {}
func (e GEPExpr) Type() ExprT   { return Ptr }
func (e GEPExpr) String() string { return "gep(?)" }
func (e GEPExpr) Equal(other Expr) bool {
	_, ok := other.(GEPExpr)
	return ok
}

// GEP is the single GEP placeholder value.
var GEP Expr = GEPExpr{}

// UndefinedExpr is the aggregate-insertion placeholder bottom.
type UndefinedExpr struct {
	T ExprT
}

func (e UndefinedExpr) isExpr()       {}
func (e UndefinedExpr) Type() ExprT   { return e.T }
func (e UndefinedExpr) String() string { return "undef" }
func (e UndefinedExpr) Equal(other Expr) bool {
	o, ok := other.(UndefinedExpr)
	return ok && e.T == o.T
}

// NewUndefined builds an Undefined node of type t.
func NewUndefined(t ExprT) Expr {
	return UndefinedExpr{T: t}
}

// IrrelevantExpr is the "don't care" zero element. Any arithmetic or cast
// producing Irrelevant is Irrelevant; it propagates through builders
// without ever being constructed as a child node (see Build in build.go).
type IrrelevantExpr struct{}

func (e IrrelevantExpr) isExpr()       {}
func (e IrrelevantExpr) Type() ExprT   { return Void }
func (e IrrelevantExpr) String() string { return "irrelevant" }
func (e IrrelevantExpr) Equal(other Expr) bool {
	_, ok := other.(IrrelevantExpr)
	return ok
}

// Irrelevant is the single Irrelevant value.
var Irrelevant Expr = IrrelevantExpr{}

// IsIrrelevant reports whether e is the Irrelevant bottom.
func IsIrrelevant(e Expr) bool {
	_, ok := e.(IrrelevantExpr)
	return ok
}
