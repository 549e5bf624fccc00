package interpreter

import (
	"context"
	"fmt"
	"strconv"
)

type Arity int

func (a Arity) String() string {
	return strconv.Itoa(int(a))
}

// Callable is anything a call expression can invoke. The interpreter checks
// the argument count against Arity before calling.
type Callable interface {
	Arity() Arity
	Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error)
	fmt.Stringer
}

// NativeFunction is a callable implemented in Go. It is used by pointer so
// that two references to the same native compare equal.
type NativeFunction struct {
	arity Arity
	fn    func(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error)
}

func NewNativeFunction(arity Arity, fn func(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{arity: arity, fn: fn}
}

// Arity implements Callable.
func (n *NativeFunction) Arity() Arity {
	return n.arity
}

// Call implements Callable.
func (n *NativeFunction) Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
	return n.fn(ctx, interpreter, arguments)
}

// String implements fmt.Stringer.
func (n *NativeFunction) String() string {
	return "<native fn>"
}

// GoString implements fmt.GoStringer.
func (n *NativeFunction) GoString() string {
	return fmt.Sprintf("<native fn/%s>", n.arity)
}

var (
	_ Callable       = (*NativeFunction)(nil)
	_ fmt.Stringer   = (*NativeFunction)(nil)
	_ fmt.GoStringer = (*NativeFunction)(nil)
)
