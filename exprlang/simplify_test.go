package exprlang_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/sarchlab/symtrace/exprlang"
)

var _ = Describe("Simplify", func() {
	It("drops a zero added on the right", func() {
		a := NewInput(Int32, inputLoc("f", "a"))
		e := NewBinOp(OpAdd, Int32, a, NewILit(Int32, 0))
		Expect(Simplify(e).Equal(a)).To(BeTrue())
	})

	It("drops a zero added on the left", func() {
		a := NewInput(Int32, inputLoc("f", "a"))
		e := NewBinOp(OpAdd, Int32, NewILit(Int32, 0), a)
		Expect(Simplify(e).Equal(a)).To(BeTrue())
	})

	It("collapses Ashr(0, _) to 0", func() {
		e := NewBinOp(OpAshr, Int32, NewILit(Int32, 0), NewInput(Int32, inputLoc("f", "n")))
		Expect(Simplify(e).Equal(NewILit(Int32, 0))).To(BeTrue())
	})

	It("cancels Trunc(ZExt(e))", func() {
		a := NewInput(Int8, inputLoc("f", "a"))
		e := NewCastOp(OpTrunc, Int8, NewCastOp(OpZExt, Int32, a))
		Expect(Simplify(e).Equal(a)).To(BeTrue())
	})

	It("cancels Trunc(SExt(e))", func() {
		a := NewInput(Int8, inputLoc("f", "a"))
		e := NewCastOp(OpTrunc, Int8, NewCastOp(OpSExt, Int32, a))
		Expect(Simplify(e).Equal(a)).To(BeTrue())
	})

	It("folds Trunc of a literal that fits", func() {
		e := NewCastOp(OpTrunc, Int8, NewILit(Int32, 3))
		Expect(Simplify(e).Equal(NewILit(Int8, 3))).To(BeTrue())
	})

	It("preserves Trunc of a literal that does not fit", func() {
		e := NewCastOp(OpTrunc, Int8, NewILit(Int32, 1000))
		got := Simplify(e)
		_, isCast := got.(CastOp)
		Expect(isCast).To(BeTrue())
	})

	It("folds ZExt/SExt of a literal", func() {
		e := NewCastOp(OpZExt, Int32, NewILit(Int8, 3))
		Expect(Simplify(e).Equal(NewILit(Int32, 3))).To(BeTrue())
	})

	It("cancels PtrToInt(IntToPtr(e))", func() {
		a := NewInput(Ptr, inputLoc("f", "p"))
		e := NewCastOp(OpPtrToInt, Int64, NewCastOp(OpIntToPtr, Ptr, a))
		Expect(Simplify(e).Equal(a)).To(BeTrue())
	})

	It("cancels IntToPtr(PtrToInt(e)) only at Int64", func() {
		a := NewInput(Int64, inputLoc("f", "n"))
		e := NewCastOp(OpIntToPtr, Int64, NewCastOp(OpPtrToInt, Int64, a))
		Expect(Simplify(e).Equal(a)).To(BeTrue())
		kept := NewCastOp(OpIntToPtr, Ptr, NewCastOp(OpPtrToInt, Int64, a))
		Expect(Simplify(kept).Equal(kept)).To(BeTrue())
	})

	It("is idempotent on an already-simplified expression", func() {
		a := NewInput(Int32, inputLoc("f", "a"))
		once := Simplify(NewBinOp(OpAdd, Int32, a, NewILit(Int32, 0)))
		twice := Simplify(once)
		Expect(twice.Equal(once)).To(BeTrue())
	})

	It("treats Irrelevant as a zero element for arithmetic", func() {
		Expect(IsIrrelevant(Irrelevant)).To(BeTrue())
		got := Map2(Ok(NewILit(Int32, 1)), Ok(Irrelevant), func(x, y Expr) Expr {
			return NewBinOp(OpAdd, Int32, x, y)
		})
		Expect(got.IsIrrelevant()).To(BeTrue())
	})

	It("never increases tree size: every other constructor just rebuilds", func() {
		a := NewInput(Int32, inputLoc("f", "a"))
		b := NewInput(Int32, inputLoc("f", "b"))
		e := NewBinOp(OpMul, Int32, a, b)
		Expect(Simplify(e).Equal(e)).To(BeTrue())
	})
})
