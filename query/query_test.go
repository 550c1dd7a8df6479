package query_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/assoc"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel/irfake"
	"github.com/sarchlab/symtrace/query"
	"github.com/sarchlab/symtrace/symeval"
	"github.com/sarchlab/symtrace/tracelog"
	"github.com/sarchlab/symtrace/traceopts"
)

func memAddr(v uint64) addr.Entry {
	return addr.Entry{Kind: addr.MAddr, Value: v}
}

func runFixture() *symeval.SymbolicState {
	mod := irfake.NewModule()
	fn := mod.AddFunction("main")
	entry := fn.AddBlock("entry")
	entry.Add(irfake.NewStore(irfake.IntConst(exprlang.Int64, 0x5000), true))
	entry.Add(irfake.NewStore(irfake.IntConst(exprlang.Int32, 1), false))
	entry.Add(irfake.NewUnreachable())
	entry.Add(irfake.NewRet(nil))

	ops := []tracelog.Op{
		{Type: tracelog.EntryAddr, AddrOp: tracelog.Store, AddrEntry: memAddr(0x6000)},
	}
	list, err := assoc.Associate(mod, []string{"main"}, ops, map[string]bool{"main": true})
	Expect(err).NotTo(HaveOccurred())

	state, err := symeval.Run(list, traceopts.New())
	Expect(err).NotTo(HaveOccurred())
	return state
}

var _ = Describe("View", func() {
	It("returns messages grouped by the guest IP active when they were emitted", func() {
		state := runFixture()
		v := query.NewView(state)

		msgs := v.MessagesByIP(0x5000)
		Expect(msgs).NotTo(BeEmpty())
	})

	It("returns every message and warning across the whole run", func() {
		state := runFixture()
		v := query.NewView(state)

		Expect(v.Messages()).NotTo(BeEmpty())
		Expect(v.Warnings()).NotTo(BeEmpty())
	})

	It("dumps messages and warnings as tables when verbose", func() {
		state := runFixture()
		v := query.NewView(state)

		var buf bytes.Buffer
		query.Dump(&buf, v, true)
		Expect(buf.String()).To(ContainSubstring("Messages"))
		Expect(buf.String()).To(ContainSubstring("Warnings"))
		Expect(buf.String()).To(ContainSubstring("Kind"))
	})

	It("renders nothing when not verbose", func() {
		state := runFixture()
		v := query.NewView(state)

		var buf bytes.Buffer
		query.Dump(&buf, v, false)
		Expect(buf.String()).To(BeEmpty())
	})
})
