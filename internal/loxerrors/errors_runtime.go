package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/golox/internal/token"
)

var (
	ErrRuntimeOperandMustBeNumber          = errors.New("Operand must be a number")
	ErrRuntimeOperandsMustBeNumbers        = errors.New("Operands must be numbers")
	ErrRuntimeOperandsMustNumbersOrStrings = errors.New("Operands must be two numbers or two strings")
	ErrRuntimeUndefinedVariable            = errors.New("Undefined variable")
	ErrRuntimeCalleeMustBeCallable         = errors.New("Can only call functions and classes.")
	ErrRuntimeDivisionByZero               = errors.New("Division by zero.")
)

func ErrRuntimeCalleeArityError(expectedArity int, actualArity int) error {
	return fmt.Errorf("Expected %d arguments but got %d.", expectedArity, actualArity)
}

// ErrRuntimeOperatorError names the operator an operand check failed for.
func ErrRuntimeOperatorError(cause error, operator string) error {
	return fmt.Errorf("%w for '%s'.", cause, operator)
}

func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Line reports the line of the token the error was raised at.
func (r *RuntimeError) Line() int {
	return r.tok.Line
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%v\n[line %d] in script", r.cause, r.tok.Line)
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

var _ error = (*RuntimeError)(nil)
var _ unwrapInterface = (*RuntimeError)(nil)
