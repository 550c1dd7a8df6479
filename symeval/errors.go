package symeval

import "fmt"

// ContractError reports an internal contract violation: a situation the
// associator's output should make impossible, such as a Phi instruction
// reached with no previous block, or a helper call whose callee function is
// missing from the module. It is fatal, the same way core/emu.go panics on
// a malformed ReservationState — except here it is returned, not panicked,
// since symeval is a library.
type ContractError struct {
	Function string
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("symeval: contract violation in %s: %s", e.Function, e.Reason)
}
