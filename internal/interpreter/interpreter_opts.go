package interpreter

import (
	"io"
	"os"
	"time"
)

type interpreterOpts struct {
	globals *Environment
	stdout  io.Writer
	clock   func() time.Time
}

var defaultInterpreterOpts = interpreterOpts{
	stdout: os.Stdout,
	clock:  time.Now,
}

type InterpreterOption func(*interpreterOpts)

// WithGlobals makes the interpreter use globals as its outermost scope.
// Native functions are defined into it.
func WithGlobals(globals *Environment) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.globals = globals
	}
}

// WithStdout sets where print statements write.
func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

// WithClock replaces the time source behind the clock() native.
func WithClock(clock func() time.Time) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.clock = clock
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.globals == nil {
		opts.globals = NewEnvironment()
	}

	return &opts
}
