package interpreter

import (
	"context"
	"time"

	"github.com/leonardinius/golox/internal/parser"
)

func defineStdLib(globals *Environment, opts *interpreterOpts) {
	globals.Define("clock", ValueCallable{StdFnClock(opts.clock)})
}

// StdFnClock returns the clock() native: seconds since the Unix epoch,
// with sub-second precision.
func StdFnClock(now func() time.Time) *NativeFunction {
	return NewNativeFunction(0, func(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
		return parser.ValueFloat(float64(now().UnixMilli()) / 1000.0), nil
	})
}
