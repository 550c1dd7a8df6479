package symeval

import (
	"fmt"

	"github.com/sarchlab/symtrace/addr"
	"github.com/sarchlab/symtrace/exprlang"
	"github.com/sarchlab/symtrace/irmodel"
	"github.com/sarchlab/symtrace/traceopts"
)

// LocInfo is the current value expression at a Loc and the guest IP that
// wrote it.
type LocInfo struct {
	Expr      exprlang.Expr
	Origin    uint64
	HasOrigin bool
}

// varKey is the (type, address) pair fresh_name is injective over.
type varKey struct {
	t exprlang.ExprT
	a addr.Entry
}

// SymbolicState is the evaluator's full state: the abstract store plus the
// append-only message/warning logs. It is mutated monotonically over the
// course of a run and read by package query afterward.
type SymbolicState struct {
	Info map[addr.Loc]LocInfo

	PreviousBlock irmodel.BasicBlock
	Function      irmodel.Function

	varNames    map[varKey]string
	nameCounter int

	CurrentIP    uint64
	HasCurrentIP bool

	Warnings []TimedWarning
	Messages []TimedMessage

	messagesByIP map[uint64][]Message

	SkipRest bool
	RetVal   exprlang.Expr

	FuncsProcessed int
	FuncsTotal     int

	Options traceopts.Options

	lastFunc irmodel.Function
}

// New creates an empty SymbolicState, ready to run_blocks against.
func New(opts traceopts.Options) *SymbolicState {
	return &SymbolicState{
		Info:         make(map[addr.Loc]LocInfo),
		varNames:     make(map[varKey]string),
		messagesByIP: make(map[uint64][]Message),
		Options:      opts,
	}
}

// freshName allocates (or returns the already-allocated) stable symbolic
// name for an uninitialized load of type t at address a, formatted
// "{TypeT}_{lowValueHex}_{counter}" — e.g. "Int32T_1000_0" for the first
// free variable read from an address whose low 16 bits are 0x1000. Only
// memory-kind addresses get a name; other kinds return ("", false).
func (s *SymbolicState) freshName(t exprlang.ExprT, a addr.Entry) (string, bool) {
	switch a.Kind {
	case addr.HAddr, addr.MAddr, addr.IAddr, addr.LAddr:
	default:
		return "", false
	}

	key := varKey{t: t, a: a}
	if name, ok := s.varNames[key]; ok {
		return name, true
	}

	name := fmt.Sprintf("%sT_%04x_%d", t, a.Value&0xFFFF, s.nameCounter)
	s.nameCounter++
	s.varNames[key] = name
	return name, true
}

// appendMessage records msg in the append-only message log and its
// per-IP bucket.
func (s *SymbolicState) appendMessage(msg Message) {
	tm := TimedMessage{IP: s.CurrentIP, HasIP: s.HasCurrentIP, Message: msg}
	s.Messages = append(s.Messages, tm)
	if s.HasCurrentIP {
		s.messagesByIP[s.CurrentIP] = append(s.messagesByIP[s.CurrentIP], msg)
	}
}

// warn records a warning both in the warnings log and, wrapped as a
// WarningMessage, in the message stream — spec.md §4.4's "Warnings" clause.
func (s *SymbolicState) warn(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	s.Warnings = append(s.Warnings, TimedWarning{IP: s.CurrentIP, HasIP: s.HasCurrentIP, Text: text})
	s.appendMessage(WarningMessage{IP: s.CurrentIP, HasIP: s.HasCurrentIP, Text: text})
}

// MessagesByIPView returns the accumulated messages for ip, or nil. It is
// the read-only accessor package query's MessagesByIP is built on.
func (s *SymbolicState) MessagesByIPView(ip uint64) []Message {
	return s.messagesByIP[ip]
}
