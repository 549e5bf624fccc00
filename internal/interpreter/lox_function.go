package interpreter

import (
	"context"
	"fmt"

	"github.com/leonardinius/golox/internal/parser"
	"github.com/leonardinius/golox/internal/token"
)

// LoxFunction is a user-defined function together with the environment it
// was declared in. Name is nil for anonymous function expressions.
type LoxFunction struct {
	Name       *token.Token
	Parameters []*token.Token
	Body       []parser.Stmt
	Closure    *Environment
}

func NewLoxFunction(name *token.Token, parameters []*token.Token, body []parser.Stmt, closure *Environment) *LoxFunction {
	return &LoxFunction{Name: name, Parameters: parameters, Body: body, Closure: closure}
}

// Arity implements Callable.
func (l *LoxFunction) Arity() Arity {
	return Arity(len(l.Parameters))
}

// Call implements Callable.
func (l *LoxFunction) Call(ctx context.Context, interpreter *interpreter, arguments []Value) (Value, error) {
	env := l.Closure.Nest()

	for idx, param := range l.Parameters {
		env.Define(param.Lexeme, arguments[idx])
	}

	c, err := interpreter.executeBlock(ctx, l.Body, env)
	if err != nil {
		return nil, err
	}
	if c.returning && c.value != nil {
		return c.value, nil
	}
	return NilValue, nil
}

// String implements fmt.Stringer.
func (l *LoxFunction) String() string {
	if l.Name == nil {
		return "<fn #anon>"
	}
	return fmt.Sprintf("<fn %s>", l.Name.Lexeme)
}

// GoString implements fmt.GoStringer.
func (l *LoxFunction) GoString() string {
	if l.Name == nil {
		return fmt.Sprintf("<fn:#anon/%s>", l.Arity())
	}
	return fmt.Sprintf("<fn:%s/%s>", l.Name.Lexeme, l.Arity())
}

var (
	_ Callable       = (*LoxFunction)(nil)
	_ fmt.Stringer   = (*LoxFunction)(nil)
	_ fmt.GoStringer = (*LoxFunction)(nil)
)
