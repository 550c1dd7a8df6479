// Package addr defines the tagged guest-address record (AddrEntry in the
// specification) and the Loc key used to index the evaluator's store.
package addr

import (
	"fmt"
	"sync"
)

// Kind tags what an Entry's value actually addresses.
type Kind int

// The full set of address kinds a trace record can carry.
const (
	HAddr Kind = iota
	MAddr
	IAddr
	LAddr
	GReg
	GSpec
	Unk
	Const
	Ret
)

var (
	kindNames   = []string{"HAddr", "MAddr", "IAddr", "LAddr", "GReg", "GSpec", "Unk", "Const", "Ret"}
	kindNamesMu sync.RWMutex
)

// String renders a Kind's name, falling back to a numbered placeholder for
// values outside the known table — the same degrade-gracefully idiom
// cgra.Side.Name uses for sides registered at runtime.
func (k Kind) String() string {
	kindNamesMu.RLock()
	defer kindNamesMu.RUnlock()
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind %d", int(k))
}

// Flag tags why an address was recorded, or that it should be ignored
// entirely. It is read from the trace as a signed 32-bit quantity (see
// tracelog.ReadAll) and compared against these named constants rather than
// bit-patterns, resolving the sign-extension open question from the
// specification.
type Flag int32

// The full set of address flags a trace record can carry.
const (
	FlagIrrelevant Flag = -1
	FlagNone       Flag = 0
	FlagException  Flag = 1
	FlagReadlog    Flag = 2
	FlagFuncarg    Flag = 3
)

func (f Flag) String() string {
	switch f {
	case FlagIrrelevant:
		return "Irrelevant"
	case FlagNone:
		return "None"
	case FlagException:
		return "Exception"
	case FlagReadlog:
		return "Readlog"
	case FlagFuncarg:
		return "Funcarg"
	default:
		return fmt.Sprintf("Flag %d", int(f))
	}
}

// Entry is a tagged guest address, the AddrEntry of the specification.
type Entry struct {
	Kind   Kind
	Value  uint64
	Offset uint32
	Flag   Flag
}

// trackedGRegCount is the number of general-purpose registers the
// evaluator actually tracks; GReg addresses beyond this are uninteresting.
const trackedGRegCount = 16

// Interesting reports whether stores/loads to e should emit a message.
// Addresses flagged Irrelevant, or GReg addresses beyond the tracked
// register file, are uninteresting.
func (e Entry) Interesting() bool {
	if e.Flag == FlagIrrelevant {
		return false
	}
	if e.Kind == GReg && e.Value >= trackedGRegCount {
		return false
	}
	return true
}

// Pretty renders e the way query output and load-naming want to see it:
// a zero-padded 8-hex-digit address for memory-like kinds, or a symbolic
// "Kind(value)" form otherwise.
func (e Entry) Pretty() string {
	switch e.Kind {
	case HAddr, MAddr, IAddr, LAddr:
		return fmt.Sprintf("0x%08X", e.Value)
	default:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Value)
	}
}

// Equal reports structural equality, the key requirement for using Entry
// as (part of) a map key via Loc.
func (e Entry) Equal(o Entry) bool {
	return e == o
}

// Loc is an abstract storage location: either an SSA value in a function
// activation (IdLoc) or a memory cell (MemLoc).
type Loc struct {
	isMem bool

	// IdLoc fields.
	funcID string
	ident  string

	// MemLoc field.
	mem Entry
}

// IdLoc builds the Loc for SSA identifier ident within function funcID.
func IdLoc(funcID, ident string) Loc {
	return Loc{funcID: funcID, ident: ident}
}

// MemLoc builds the Loc for the memory cell addressed by e.
func MemLoc(e Entry) Loc {
	return Loc{isMem: true, mem: e}
}

// IsMem reports whether the Loc addresses memory rather than an SSA value.
func (l Loc) IsMem() bool { return l.isMem }

// AsMem returns the underlying Entry; only valid when IsMem is true.
func (l Loc) AsMem() Entry { return l.mem }

// AsID returns the (function, identifier) pair; only valid when IsMem is
// false.
func (l Loc) AsID() (funcID, ident string) { return l.funcID, l.ident }

// String renders l for diagnostics and map-key debugging.
func (l Loc) String() string {
	if l.isMem {
		return "mem:" + l.mem.Pretty()
	}
	return l.funcID + ":" + l.ident
}
