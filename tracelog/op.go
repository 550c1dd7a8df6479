// Package tracelog models the dynamic trace records recorded by the
// emulator and decodes them from the binary log format of the
// specification. These are the three record shapes the wire format can
// actually carry; the associator (package assoc) builds the richer
// Memset/Memcpy/HelperFunc event taxonomy on top of these by interpreting
// runs of raw records in the context of the IR it is walking.
package tracelog

import "github.com/sarchlab/symtrace/addr"

// EntryType is the tag of a raw 40-byte trace record.
type EntryType uint64

// The three entry types the binary format defines.
const (
	EntryAddr   EntryType = 0
	EntryBranch EntryType = 1
	EntrySelect EntryType = 2
)

func (t EntryType) String() string {
	switch t {
	case EntryAddr:
		return "Addr"
	case EntryBranch:
		return "Branch"
	case EntrySelect:
		return "Select"
	default:
		return "EntryType(?)"
	}
}

// AddrOp distinguishes the four address-carrying event kinds a record of
// EntryAddr can represent.
type AddrOp uint64

// The address-event operations a trace record can carry.
const (
	Load AddrOp = iota
	Store
	BranchAddr
	SelectAddr
)

func (op AddrOp) String() string {
	switch op {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case BranchAddr:
		return "BranchAddr"
	case SelectAddr:
		return "SelectAddr"
	default:
		return "AddrOp(?)"
	}
}

// Op is one raw dynamic trace record, decoded straight off the wire.
// Exactly one accessor group is meaningful, selected by Type.
type Op struct {
	Type EntryType

	// Meaningful when Type == EntryAddr.
	AddrOp    AddrOp
	AddrEntry addr.Entry

	// Meaningful when Type == EntryBranch: 0 means the true edge was
	// taken, any other value means the false edge was taken.
	BranchTaken uint32

	// Meaningful when Type == EntrySelect: the index of the chosen
	// operand.
	SelectValue uint32
}

// IsAddr reports whether op is an address-carrying record matching the
// given AddrOp.
func (op Op) IsAddr(want AddrOp) bool {
	return op.Type == EntryAddr && op.AddrOp == want
}
