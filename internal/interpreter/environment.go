package interpreter

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/token"
)

// Environment is one scope frame. Frames are shared by pointer: a closure
// keeps its defining frame (and the chain above it) alive for as long as
// the function value itself is reachable.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{}
}

// Define binds name in this frame only, overwriting any previous binding.
func (e *Environment) Define(name string, value Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	e.values[name] = value
}

func (e *Environment) Get(name *token.Token) (Value, error) {
	for self := e; self != nil; self = self.enclosing {
		if value, ok := self.values[name.Lexeme]; ok {
			return value, nil
		}
	}

	return nil, e.undefinedVariable(name)
}

// Assign mutates the nearest existing binding. It never creates one.
func (e *Environment) Assign(name *token.Token, value Value) error {
	for self := e; self != nil; self = self.enclosing {
		if _, ok := self.values[name.Lexeme]; ok {
			self.values[name.Lexeme] = value
			return nil
		}
	}

	return e.undefinedVariable(name)
}

func (e *Environment) Nest() *Environment {
	env := NewEnvironment()
	env.enclosing = e
	return env
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

func (e *Environment) undefinedVariable(name *token.Token) error {
	err := fmt.Errorf("%w '%s'.", loxerrors.ErrRuntimeUndefinedVariable, name.Lexeme)
	return loxerrors.NewRuntimeError(name, err)
}

// String implements fmt.Stringer. Frames are listed innermost first with
// their names sorted.
func (e *Environment) String() string {
	w := new(strings.Builder)

	for self := e; self != nil; self = self.enclosing {
		keys := maps.Keys(self.values)
		slices.Sort(keys)

		w.WriteString("{")
		for i, k := range keys {
			if i > 0 {
				w.WriteString(", ")
			}
			fmt.Fprintf(w, "%s=%v", k, self.values[k])
		}
		w.WriteString("}")
		if self.enclosing != nil {
			w.WriteString(" -> ")
		}
	}

	return w.String()
}

var _ fmt.Stringer = (*Environment)(nil)
