package exprlang_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/sarchlab/symtrace/exprlang"
)

var _ = Describe("Build", func() {
	lit := NewILit(Int32, 7)

	It("Or prefers a Just result from the left alternative", func() {
		got := Or(Ok(lit), BuildErr(errors.New("unused")))
		Expect(got.IsJust()).To(BeTrue())
		Expect(got.Expr().Equal(lit)).To(BeTrue())
	})

	It("Or falls through to the right alternative on Err", func() {
		got := Or(BuildErr(errors.New("nope")), Ok(lit))
		Expect(got.IsJust()).To(BeTrue())
		Expect(got.Expr().Equal(lit)).To(BeTrue())
	})

	It("Or propagates Irrelevant when the left alternative is Irrelevant", func() {
		got := Or(BuildIrrelevant(), Ok(lit))
		Expect(got.IsIrrelevant()).To(BeTrue())
	})

	It("Or keeps the first error when both alternatives fail", func() {
		first := errors.New("first")
		got := Or(BuildErr(first), BuildErr(errors.New("second")))
		Expect(got.IsErr()).To(BeTrue())
		Expect(got.Err()).To(Equal(first))
	})

	It("Ok of Irrelevant collapses to an Irrelevant build", func() {
		got := Ok(Irrelevant)
		Expect(got.IsIrrelevant()).To(BeTrue())
	})

	It("Map2 short-circuits to Irrelevant when either operand is Irrelevant", func() {
		got := Map2(Ok(lit), BuildIrrelevant(), func(x, y Expr) Expr { return x })
		Expect(got.IsIrrelevant()).To(BeTrue())
	})

	It("Map2 builds from two Just operands", func() {
		got := Map2(Ok(lit), Ok(lit), func(x, y Expr) Expr {
			return NewBinOp(OpAdd, Int32, x, y)
		})
		Expect(got.IsJust()).To(BeTrue())
	})
})
