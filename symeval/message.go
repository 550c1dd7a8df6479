package symeval

import (
	"fmt"

	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/tracelog"
)

// Message is one interesting event surfaced to a query: a memory access, a
// branch decision, or a warning, in the form the specification's Message
// union describes.
type Message interface {
	String() string
	isMessage()
}

// MemoryMessage reports a Load or Store to an address the caller considers
// interesting (see addr.Entry.Interesting).
type MemoryMessage struct {
	Op        tracelog.AddrOp
	Pretty    string
	Value     exprlang.Expr
	Origin    exprlang.Expr
	HasOrigin bool
}

func (MemoryMessage) isMessage() {}
func (m MemoryMessage) String() string {
	if m.HasOrigin {
		return fmt.Sprintf("%s %s = %s (origin %s)", m.Op, m.Pretty, m.Value, m.Origin)
	}
	return fmt.Sprintf("%s %s = %s", m.Op, m.Pretty, m.Value)
}

// BranchMessage reports a conditional branch's outcome.
type BranchMessage struct {
	Cond  exprlang.Expr
	Taken bool
}

func (BranchMessage) isMessage() {}
func (m BranchMessage) String() string {
	return fmt.Sprintf("branch %s taken=%v", m.Cond, m.Taken)
}

// UnconditionalBranchMessage reports an unconditional branch.
type UnconditionalBranchMessage struct{}

func (UnconditionalBranchMessage) isMessage() {}
func (UnconditionalBranchMessage) String() string {
	return "unconditional branch"
}

// WarningMessage wraps a warning into the message stream, formatted the way
// the specification requires: " - (<hex-ip-or-unknown>) <text>".
type WarningMessage struct {
	IP    uint64
	HasIP bool
	Text  string
}

func (WarningMessage) isMessage() {}
func (m WarningMessage) String() string {
	return fmt.Sprintf(" - (%s) %s", ipLabel(m.IP, m.HasIP), m.Text)
}

func ipLabel(ip uint64, hasIP bool) string {
	if !hasIP {
		return "unknown"
	}
	return fmt.Sprintf("0x%X", ip)
}

// TimedMessage pairs a Message with the IP that was current when it was
// emitted.
type TimedMessage struct {
	IP      uint64
	HasIP   bool
	Message Message
}

// TimedWarning pairs a raw warning string with the IP current at the time.
type TimedWarning struct {
	IP    uint64
	HasIP bool
	Text  string
}
