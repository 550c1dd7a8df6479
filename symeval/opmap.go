package symeval

import (
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
)

// binOpKindOf translates an irmodel.Opcode into the exprlang.BinOpKind it
// names. The two enums share names by construction (see irmodel.Opcode's
// doc comment) so this is a straight lookup, not a semantic mapping.
func binOpKindOf(op irmodel.Opcode) exprlang.BinOpKind {
	switch op {
	case irmodel.OpAdd:
		return exprlang.OpAdd
	case irmodel.OpSub:
		return exprlang.OpSub
	case irmodel.OpMul:
		return exprlang.OpMul
	case irmodel.OpDiv:
		return exprlang.OpDiv
	case irmodel.OpRem:
		return exprlang.OpRem
	case irmodel.OpShl:
		return exprlang.OpShl
	case irmodel.OpLshr:
		return exprlang.OpLshr
	case irmodel.OpAshr:
		return exprlang.OpAshr
	case irmodel.OpAnd:
		return exprlang.OpAnd
	case irmodel.OpOr:
		return exprlang.OpOr
	default:
		return exprlang.OpXor
	}
}

func castKindOf(op irmodel.Opcode) exprlang.CastKind {
	switch op {
	case irmodel.OpTrunc:
		return exprlang.OpTrunc
	case irmodel.OpZExt:
		return exprlang.OpZExt
	case irmodel.OpSExt:
		return exprlang.OpSExt
	case irmodel.OpFPTrunc:
		return exprlang.OpFPTrunc
	case irmodel.OpFPExt:
		return exprlang.OpFPExt
	case irmodel.OpFPToSI:
		return exprlang.OpFPToSI
	case irmodel.OpFPToUI:
		return exprlang.OpFPToUI
	case irmodel.OpSIToFP:
		return exprlang.OpSIToFP
	case irmodel.OpUIToFP:
		return exprlang.OpUIToFP
	case irmodel.OpPtrToInt:
		return exprlang.OpPtrToInt
	case irmodel.OpIntToPtr:
		return exprlang.OpIntToPtr
	default:
		return exprlang.OpBitcast
	}
}

func isBinaryOpcode(op irmodel.Opcode) bool {
	switch op {
	case irmodel.OpAdd, irmodel.OpSub, irmodel.OpMul, irmodel.OpDiv, irmodel.OpRem,
		irmodel.OpShl, irmodel.OpLshr, irmodel.OpAshr, irmodel.OpAnd, irmodel.OpOr, irmodel.OpXor:
		return true
	default:
		return false
	}
}

func isCastOpcode(op irmodel.Opcode) bool {
	switch op {
	case irmodel.OpTrunc, irmodel.OpZExt, irmodel.OpSExt, irmodel.OpFPTrunc, irmodel.OpFPExt,
		irmodel.OpFPToSI, irmodel.OpFPToUI, irmodel.OpSIToFP, irmodel.OpUIToFP,
		irmodel.OpPtrToInt, irmodel.OpIntToPtr, irmodel.OpBitcast:
		return true
	default:
		return false
	}
}
