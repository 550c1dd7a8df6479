package assoc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel/irfake"
	"github.com/sarchlab/symtrace/tracelog"
)

func loadAddr(v uint64) addr.Entry {
	return addr.Entry{Kind: addr.MAddr, Value: v}
}

var _ = Describe("Associate", func() {
	var mod *irfake.Module

	BeforeEach(func() {
		mod = irfake.NewModule()
	})

	It("walks a straight-line function and pairs events with instructions", func() {
		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		exit := fn.AddBlock("exit")

		entry.Add(irfake.NewLoad("a", exprlang.Int32))
		entry.Add(irfake.NewBranch(exit))
		exit.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryAddr, AddrOp: tracelog.Load, AddrEntry: loadAddr(0x1000)},
			{Type: tracelog.EntryBranch, BranchTaken: 0},
		}

		result, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.InstCount).To(Equal(3))
		Expect(result.Blocks).To(HaveLen(2))
		Expect(result.Blocks[0].Instructions).To(HaveLen(2))
		Expect(result.Blocks[0].Instructions[0].Event.Kind()).To(Equal(assoc.KindAddr))
		op, a := result.Blocks[0].Instructions[0].Event.Addr()
		Expect(op).To(Equal(tracelog.Load))
		Expect(a).To(Equal(loadAddr(0x1000)))
	})

	It("follows the taken edge of a conditional branch", func() {
		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		thenBlk := fn.AddBlock("then")
		elseBlk := fn.AddBlock("else")
		exit := fn.AddBlock("exit")

		cond := irfake.IdentOperand("c", exprlang.Int8)
		entry.Add(irfake.NewCondBranch(cond, thenBlk, elseBlk))
		thenBlk.Add(irfake.NewStore(irfake.IntConst(exprlang.Int32, 7), false))
		thenBlk.Add(irfake.NewBranch(exit))
		elseBlk.Add(irfake.NewBranch(exit))
		exit.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryBranch, BranchTaken: 0}, // true edge -> then
			{Type: tracelog.EntryAddr, AddrOp: tracelog.Store, AddrEntry: loadAddr(0x2000)},
			{Type: tracelog.EntryBranch, BranchTaken: 0},
		}

		result, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Blocks).To(HaveLen(3))
		Expect(result.Blocks[1].Block.Label()).To(Equal("then"))
	})

	It("drops uninteresting blocks but still consumes their events", func() {
		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		exit := fn.AddBlock("exit")
		entry.Add(irfake.NewLoad("a", exprlang.Int32))
		entry.Add(irfake.NewBranch(exit))
		exit.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryAddr, AddrOp: tracelog.Load, AddrEntry: loadAddr(0x1000)},
			{Type: tracelog.EntryBranch, BranchTaken: 0},
		}

		result, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Blocks).To(BeEmpty())
		Expect(result.InstCount).To(Equal(3))
	})

	It("reports an alignment error when the trace and IR disagree", func() {
		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		exit := fn.AddBlock("exit")
		entry.Add(irfake.NewLoad("a", exprlang.Int32))
		entry.Add(irfake.NewBranch(exit))
		exit.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryBranch, BranchTaken: 0}, // wrong: Load expected an Addr(Load) event
		}

		_, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true})
		Expect(err).To(HaveOccurred())
		var alignErr *assoc.AlignmentError
		Expect(err).To(BeAssignableToTypeOf(alignErr))
	})

	It("recurses into an inlined helper call and nests its sub-memlog", func() {
		helper := mod.AddFunction("helper")
		hEntry := helper.AddBlock("entry")
		hEntry.Add(irfake.NewLoad("h", exprlang.Int32))
		hEntry.Add(irfake.NewRet(nil))

		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		exit := fn.AddBlock("exit")
		call := irfake.NewCall("r", exprlang.Int32, helper, "helper", nil, false, false)
		entry.Add(call)
		entry.Add(irfake.NewBranch(exit))
		exit.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryAddr, AddrOp: tracelog.Load, AddrEntry: loadAddr(0x3000)},
			{Type: tracelog.EntryBranch, BranchTaken: 0},
		}

		result, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true, "helper": true})
		Expect(err).NotTo(HaveOccurred())
		callEvent := result.Blocks[0].Instructions[0].Event
		Expect(callEvent.Kind()).To(Equal(assoc.KindHelperFunc))
		Expect(callEvent.Helper().Blocks).To(HaveLen(1))
		Expect(callEvent.Helper().Blocks[0].Instructions).To(HaveLen(2))
	})

	It("pops a memset intrinsic's single address event", func() {
		fn := mod.AddFunction("main")
		entry := fn.AddBlock("entry")
		entry.Add(irfake.NewCall("", exprlang.Void, nil, "memset", nil, true, false))
		entry.Add(irfake.NewRet(nil))

		ops := []tracelog.Op{
			{Type: tracelog.EntryAddr, AddrOp: tracelog.Store, AddrEntry: loadAddr(0x4000)},
		}

		result, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true})
		Expect(err).NotTo(HaveOccurred())
		ev := result.Blocks[0].Instructions[0].Event
		Expect(ev.Kind()).To(Equal(assoc.KindMemset))
		Expect(ev.MemsetAddr()).To(Equal(loadAddr(0x4000)))
	})
})
