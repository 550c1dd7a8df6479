// Package assoc implements the memlog associator: it aligns the flat
// dynamic trace against the IR's control flow, attaching zero or one event
// to each instruction and producing a per-basic-block instruction list the
// evaluator can walk block by block.
package assoc

import (
	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/tracelog"
)

// eventKind tags which variant of Event is populated.
type eventKind int

// The MemlogOp variants the evaluator dispatches on. Addr/Branch/Select
// pass straight through from the wire; Memset/Memcpy/HelperFunc are built
// by the associator by interpreting runs of raw tracelog.Op records in the
// context of the instruction they are paired with — the wire format
// itself only ever carries Addr/Branch/Select records (see tracelog.Op).
const (
	KindAddr eventKind = iota
	KindBranch
	KindSelect
	KindMemset
	KindMemcpy
	KindHelperFunc
)

// Event is one entry attached to an instruction by the associator.
type Event struct {
	kind eventKind

	addrOp    tracelog.AddrOp
	addrEntry addr.Entry

	branchTrue bool

	selectIndex uint32

	memsetAddr addr.Entry

	memcpySrc addr.Entry
	memcpyDst addr.Entry

	helper MemlogList
}

// Kind reports which variant e is.
func (e *Event) Kind() eventKind { return e.kind }

// Addr returns the address operation and address of an Addr event. Only
// valid when Kind() == KindAddr.
func (e *Event) Addr() (tracelog.AddrOp, addr.Entry) { return e.addrOp, e.addrEntry }

// BranchTaken reports whether the true edge was taken. Only valid when
// Kind() == KindBranch.
func (e *Event) BranchTaken() bool { return e.branchTrue }

// SelectIndex returns the chosen operand index. Only valid when
// Kind() == KindSelect.
func (e *Event) SelectIndex() uint32 { return e.selectIndex }

// MemsetAddr returns the memset target address. Only valid when
// Kind() == KindMemset.
func (e *Event) MemsetAddr() addr.Entry { return e.memsetAddr }

// MemcpyAddrs returns the memcpy source and destination addresses. Only
// valid when Kind() == KindMemcpy.
func (e *Event) MemcpyAddrs() (src, dst addr.Entry) { return e.memcpySrc, e.memcpyDst }

// Helper returns the nested, already-associated sub-memlog for an inlined
// helper call. Only valid when Kind() == KindHelperFunc.
func (e *Event) Helper() MemlogList { return e.helper }
