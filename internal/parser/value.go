package parser

import (
	"fmt"
	"strconv"

	"github.com/leonardinius/golox/internal/token"
)

type ValueType uint

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
	ValueCallableType
)

// Value is a runtime value. Literal nodes carry one; the interpreter adds
// the callable kind.
type Value interface {
	Type() ValueType
	fmt.Stringer
}

type (
	ValueNil    struct{}
	ValueBool   bool
	ValueFloat  float64
	ValueString string
)

var (
	NilValue   Value = ValueNil{}
	TrueValue  Value = ValueBool(true)
	FalseValue Value = ValueBool(false)
)

// Type implements Value.
func (v ValueNil) Type() ValueType {
	return ValueNilType
}

// Type implements Value.
func (v ValueBool) Type() ValueType {
	return ValueBoolType
}

// Type implements Value.
func (v ValueFloat) Type() ValueType {
	return ValueFloatType
}

// Type implements Value.
func (v ValueString) Type() ValueType {
	return ValueStringType
}

// String implements fmt.Stringer.
func (v ValueNil) String() string {
	return "nil"
}

// String implements fmt.Stringer.
func (v ValueBool) String() string {
	return strconv.FormatBool(bool(v))
}

// String implements fmt.Stringer.
func (v ValueFloat) String() string {
	return token.FormatNumber(float64(v))
}

// String implements fmt.Stringer.
func (v ValueString) String() string {
	return string(v)
}

func (t ValueType) String() string {
	switch t {
	case ValueNilType:
		return "nil"
	case ValueBoolType:
		return "boolean"
	case ValueFloatType:
		return "number"
	case ValueStringType:
		return "string"
	case ValueCallableType:
		return "callable"
	}
	return "unknown"
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")
)
