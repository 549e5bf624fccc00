package interpreter

import (
	"github.com/leonardinius/golox/internal/parser"
)

// Value alias, not type redefinition.
type Value = parser.Value

type ValueCallable struct {
	Callable
}

var (
	NilValue   = parser.NilValue
	TrueValue  = parser.TrueValue
	FalseValue = parser.FalseValue
)

// Type implements parser.Value.
func (v ValueCallable) Type() parser.ValueType {
	return parser.ValueCallableType
}

func boolValue(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// isTruthy reports false for nil and false, true for everything else.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, parser.ValueNil:
		return false
	case parser.ValueBool:
		return bool(v)
	}
	return true
}

// isEqual never fails: values of different kinds are simply unequal.
// Callables are equal only to themselves.
func isEqual(left, right Value) bool {
	if left == nil {
		left = NilValue
	}
	if right == nil {
		right = NilValue
	}
	if left.Type() != right.Type() {
		return false
	}
	return left == right
}

var _ Value = ValueCallable{Callable: nil}
