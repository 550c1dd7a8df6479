package assoc

import "fmt"

// AlignmentError reports a structural mismatch between the trace and the
// IR: fewer events available than an instruction requires, or a type
// mismatch between the instruction and the event it popped. It is fatal —
// the specification says the associator must abort the run rather than
// guess at realignment.
type AlignmentError struct {
	Function  string
	Block     string
	InstIndex int
	Reason    string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("assoc: alignment fault in %s/%s at instruction %d: %s",
		e.Function, e.Block, e.InstIndex, e.Reason)
}
