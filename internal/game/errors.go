package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ContractError reports a broken caller or engine invariant: a bad square, an
// impossible owner/piece pair, a corrupt board. It is never used for tactical
// negatives such as "no capture found".
type ContractError struct {
	err error
}

func (e *ContractError) Error() string { return "contract violation: " + e.err.Error() }
func (e *ContractError) Unwrap() error { return e.err }
func (e *ContractError) Cause() error  { return e.err }

// Format prints the stack recorded where the violation was raised with %+v.
func (e *ContractError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "contract violation: %+v", e.err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Contractf builds a ContractError carrying a stack trace.
func Contractf(format string, args ...any) *ContractError {
	return &ContractError{err: errors.Errorf(format, args...)}
}

// Violation panics with a ContractError. Engine code treats these as fatal.
func Violation(format string, args ...any) {
	panic(Contractf(format, args...))
}

// IsContract reports whether err is or wraps a ContractError.
func IsContract(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// RecoverContract turns a ContractError panic into an error for process
// boundaries. Other panics are re-raised.
//
//	defer game.RecoverContract(&err)
func RecoverContract(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ce, ok := r.(*ContractError); ok {
		*errp = ce
		return
	}
	panic(r)
}
