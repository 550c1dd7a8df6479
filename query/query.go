// Package query exposes read-only views over a completed symbolic run,
// grounded on spec.md §4.5's query interface.
package query

import (
	"fmt"

	"github.com/sarchlab/symtrace/symeval"
)

// View wraps a finished SymbolicState with read-only accessors. It never
// mutates the state it wraps.
type View struct {
	state *symeval.SymbolicState
}

// NewView wraps state for querying.
func NewView(state *symeval.SymbolicState) View {
	return View{state: state}
}

// MessagesByIP returns the messages recorded while processing instructions
// at ip, in emission order, or nil if no message was recorded at ip.
func (v View) MessagesByIP(ip uint64) []symeval.Message {
	return v.state.MessagesByIPView(ip)
}

// Messages returns every message emitted over the run, each tagged with
// the guest IP active when it was produced.
func (v View) Messages() []symeval.TimedMessage {
	return v.state.Messages
}

// Warnings returns every warning emitted over the run, each tagged with
// the guest IP active when it was produced.
func (v View) Warnings() []symeval.TimedWarning {
	return v.state.Warnings
}

// ipLabel renders an optional guest IP the way symeval's own messages do.
func ipLabel(ip uint64, hasIP bool) string {
	if !hasIP {
		return "unknown"
	}
	return fmt.Sprintf("0x%X", ip)
}
