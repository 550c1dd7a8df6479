package addr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/symtrace/addr"
)

var _ = Describe("Kind", func() {
	It("names every registered kind", func() {
		Expect(addr.MAddr.String()).To(Equal("MAddr"))
		Expect(addr.GReg.String()).To(Equal("GReg"))
	})

	It("falls back to a numbered placeholder outside the known table", func() {
		Expect(addr.Kind(99).String()).To(Equal("Kind 99"))
	})
})

var _ = Describe("Flag", func() {
	It("names every registered flag", func() {
		Expect(addr.FlagException.String()).To(Equal("Exception"))
		Expect(addr.FlagIrrelevant.String()).To(Equal("Irrelevant"))
	})

	It("falls back to a numbered placeholder outside the known table", func() {
		Expect(addr.Flag(42).String()).To(Equal("Flag 42"))
	})
})

var _ = Describe("Entry", func() {
	It("is uninteresting when flagged irrelevant", func() {
		e := addr.Entry{Kind: addr.MAddr, Value: 0x1000, Flag: addr.FlagIrrelevant}
		Expect(e.Interesting()).To(BeFalse())
	})

	It("is uninteresting for a GReg beyond the tracked register file", func() {
		e := addr.Entry{Kind: addr.GReg, Value: 16}
		Expect(e.Interesting()).To(BeFalse())
	})

	It("is interesting for a tracked GReg", func() {
		e := addr.Entry{Kind: addr.GReg, Value: 0}
		Expect(e.Interesting()).To(BeTrue())
	})

	It("is interesting for an ordinary flagged-none memory address", func() {
		e := addr.Entry{Kind: addr.MAddr, Value: 0x401000}
		Expect(e.Interesting()).To(BeTrue())
	})

	It("pretty-prints memory-like kinds as zero-padded hex", func() {
		e := addr.Entry{Kind: addr.MAddr, Value: 0x1000}
		Expect(e.Pretty()).To(Equal("0x00001000"))
	})

	It("pretty-prints non-memory kinds as Kind(value)", func() {
		e := addr.Entry{Kind: addr.GReg, Value: 3}
		Expect(e.Pretty()).To(Equal("GReg(3)"))
	})

	It("reports structural equality", func() {
		a := addr.Entry{Kind: addr.MAddr, Value: 0x1000, Offset: 4, Flag: addr.FlagNone}
		b := addr.Entry{Kind: addr.MAddr, Value: 0x1000, Offset: 4, Flag: addr.FlagNone}
		c := addr.Entry{Kind: addr.MAddr, Value: 0x2000, Offset: 4, Flag: addr.FlagNone}
		Expect(a.Equal(b)).To(BeTrue())
		Expect(a.Equal(c)).To(BeFalse())
	})
})

var _ = Describe("Loc", func() {
	It("discriminates an SSA identifier location", func() {
		loc := addr.IdLoc("main", "x1")
		Expect(loc.IsMem()).To(BeFalse())
		fn, ident := loc.AsID()
		Expect(fn).To(Equal("main"))
		Expect(ident).To(Equal("x1"))
		Expect(loc.String()).To(Equal("main:x1"))
	})

	It("discriminates a memory location", func() {
		e := addr.Entry{Kind: addr.MAddr, Value: 0x1000}
		loc := addr.MemLoc(e)
		Expect(loc.IsMem()).To(BeTrue())
		Expect(loc.AsMem()).To(Equal(e))
		Expect(loc.String()).To(Equal("mem:0x00001000"))
	})

	It("is usable as a map key distinguishing id and memory locations", func() {
		m := map[addr.Loc]int{}
		m[addr.IdLoc("main", "x1")] = 1
		m[addr.MemLoc(addr.Entry{Kind: addr.MAddr, Value: 0x1000})] = 2
		Expect(m[addr.IdLoc("main", "x1")]).To(Equal(1))
		Expect(m[addr.MemLoc(addr.Entry{Kind: addr.MAddr, Value: 0x1000})]).To(Equal(2))
	})
})
