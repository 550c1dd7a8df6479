package tracelog_test

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/tracelog"
)

// record builds one raw 40-byte trace record the way the emulator's wire
// format lays it out: entry_type, addr_op, addr_kind, value, offset, flag,
// all little-endian.
func record(entryType, addrOp, addrKind, value uint64, offset uint32, flag int32) []byte {
	var b [40]byte
	binary.LittleEndian.PutUint64(b[0:8], entryType)
	binary.LittleEndian.PutUint64(b[8:16], addrOp)
	binary.LittleEndian.PutUint64(b[16:24], addrKind)
	binary.LittleEndian.PutUint64(b[24:32], value)
	binary.LittleEndian.PutUint32(b[32:36], offset)
	binary.LittleEndian.PutUint32(b[36:40], uint32(flag))
	return b[:]
}

func branchRecord(taken uint32) []byte {
	var b [40]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(tracelog.EntryBranch))
	binary.LittleEndian.PutUint32(b[8:12], taken)
	return b[:]
}

var _ = Describe("ReadAll", func() {
	It("decodes an address record", func() {
		raw := record(uint64(tracelog.EntryAddr), uint64(tracelog.Load), uint64(addr.MAddr), 0x401000, 4, int32(addr.FlagNone))
		ops, err := tracelog.ReadAll(bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		Expect(ops).To(HaveLen(1))
		Expect(ops[0].Type).To(Equal(tracelog.EntryAddr))
		Expect(ops[0].AddrOp).To(Equal(tracelog.Load))
		Expect(ops[0].AddrEntry).To(Equal(addr.Entry{
			Kind: addr.MAddr, Value: 0x401000, Offset: 4, Flag: addr.FlagNone,
		}))
		Expect(ops[0].IsAddr(tracelog.Load)).To(BeTrue())
		Expect(ops[0].IsAddr(tracelog.Store)).To(BeFalse())
	})

	It("decodes a negative addr_flag without misreading it as a huge unsigned value", func() {
		raw := record(uint64(tracelog.EntryAddr), uint64(tracelog.Store), uint64(addr.GReg), 3, 0, int32(addr.FlagIrrelevant))
		ops, err := tracelog.ReadAll(bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		Expect(ops[0].AddrEntry.Flag).To(Equal(addr.FlagIrrelevant))
	})

	It("decodes a branch record, preserving the raw taken value", func() {
		ops, err := tracelog.ReadAll(bytes.NewReader(branchRecord(0)))
		Expect(err).NotTo(HaveOccurred())
		Expect(ops).To(HaveLen(1))
		Expect(ops[0].Type).To(Equal(tracelog.EntryBranch))
		Expect(ops[0].BranchTaken).To(Equal(uint32(0)))
	})

	It("decodes a run of multiple records in order", func() {
		var buf bytes.Buffer
		buf.Write(record(uint64(tracelog.EntryAddr), uint64(tracelog.Load), uint64(addr.MAddr), 0x1000, 0, int32(addr.FlagNone)))
		buf.Write(branchRecord(1))
		buf.Write(record(uint64(tracelog.EntryAddr), uint64(tracelog.Store), uint64(addr.MAddr), 0x2000, 0, int32(addr.FlagNone)))

		ops, err := tracelog.ReadAll(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(ops).To(HaveLen(3))
		Expect(ops[0].AddrEntry.Value).To(Equal(uint64(0x1000)))
		Expect(ops[1].Type).To(Equal(tracelog.EntryBranch))
		Expect(ops[2].AddrEntry.Value).To(Equal(uint64(0x2000)))
	})

	It("rejects an unknown addr_op as a ParseError", func() {
		raw := record(uint64(tracelog.EntryAddr), 99, uint64(addr.MAddr), 0, 0, int32(addr.FlagNone))
		_, err := tracelog.ReadAll(bytes.NewReader(raw))
		Expect(err).To(HaveOccurred())
		var perr *tracelog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("rejects an unknown addr_kind as a ParseError", func() {
		raw := record(uint64(tracelog.EntryAddr), uint64(tracelog.Load), 99, 0, 0, int32(addr.FlagNone))
		_, err := tracelog.ReadAll(bytes.NewReader(raw))
		Expect(err).To(HaveOccurred())
		var perr *tracelog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("rejects an unknown addr_flag as a ParseError", func() {
		raw := record(uint64(tracelog.EntryAddr), uint64(tracelog.Load), uint64(addr.MAddr), 0, 0, 77)
		_, err := tracelog.ReadAll(bytes.NewReader(raw))
		Expect(err).To(HaveOccurred())
		var perr *tracelog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("rejects an unknown entry_type as a ParseError", func() {
		var b [40]byte
		binary.LittleEndian.PutUint64(b[0:8], 99)
		_, err := tracelog.ReadAll(bytes.NewReader(b[:]))
		Expect(err).To(HaveOccurred())
		var perr *tracelog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("returns an empty slice for an empty stream", func() {
		ops, err := tracelog.ReadAll(bytes.NewReader(nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(ops).To(BeEmpty())
	})

	It("reports a truncated final record as a ParseError rather than silently dropping it", func() {
		raw := record(uint64(tracelog.EntryAddr), uint64(tracelog.Load), uint64(addr.MAddr), 0x1000, 0, int32(addr.FlagNone))
		_, err := tracelog.ReadAll(bytes.NewReader(raw[:20]))
		Expect(err).To(HaveOccurred())
		var perr *tracelog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})
})
