package interpreter

import (
	"context"
	"fmt"
	"io"

	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/parser"
	"github.com/leonardinius/golox/internal/token"
)

type Interpreter interface {
	// Interpret executes the statements in the global scope.
	// Returns the display form of the value of the last expression
	// statement executed ("nil" if there was none) and the first
	// runtime error, which aborts execution.
	//
	// Not thread safe.
	// Globals survive between calls, which is what the REPL relies on.
	Interpret(ctx context.Context, statements []parser.Stmt) (string, error)

	// Evaluate evaluates a single expression in the global scope.
	//
	// Not thread safe.
	Evaluate(ctx context.Context, expr parser.Expr) (Value, error)

	// Execute runs the statements in env for their side effects.
	Execute(ctx context.Context, statements []parser.Stmt, env *Environment) error

	// Globals returns the outermost environment.
	Globals() *Environment
}

// completion is the outcome of executing a statement. A return statement
// sets returning, and every enclosing block, if and while passes it up
// untouched until the function call that owns it.
type completion struct {
	returning bool
	value     Value
}

var normalCompletion = completion{}

type interpreter struct {
	globals *Environment
	stdout  io.Writer
	last    Value
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	i := &interpreter{
		globals: opts.globals,
		stdout:  opts.stdout,
		last:    NilValue,
	}
	defineStdLib(i.globals, opts)
	return i
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt) (string, error) {
	i.last = NilValue
	if err := i.Execute(ctx, statements, i.globals); err != nil {
		return "", err
	}
	return i.stringify(i.last), nil
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(ctx context.Context, expr parser.Expr) (Value, error) {
	return i.evaluate(ctx, expr, i.globals)
}

// Execute implements Interpreter.
func (i *interpreter) Execute(ctx context.Context, statements []parser.Stmt, env *Environment) error {
	for _, stmt := range statements {
		if _, err := i.execute(ctx, stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// Globals implements Interpreter.
func (i *interpreter) Globals() *Environment {
	return i.globals
}

func (i *interpreter) execute(ctx context.Context, stmt parser.Stmt, env *Environment) (completion, error) {
	switch s := stmt.(type) {
	case *parser.StmtBlock:
		return i.executeBlock(ctx, s.Statements, env.Nest())
	case *parser.StmtExpression:
		value, err := i.evaluate(ctx, s.Expression, env)
		if err != nil {
			return normalCompletion, err
		}
		i.last = value
		return normalCompletion, nil
	case *parser.StmtFunction:
		fn := NewLoxFunction(s.Name, s.Parameters, s.Body, env)
		env.Define(s.Name.Lexeme, ValueCallable{fn})
		return normalCompletion, nil
	case *parser.StmtIf:
		return i.executeIf(ctx, s, env)
	case *parser.StmtPrint:
		value, err := i.evaluate(ctx, s.Expression, env)
		if err != nil {
			return normalCompletion, err
		}
		i.print(value)
		return normalCompletion, nil
	case *parser.StmtReturn:
		var value Value = NilValue
		if s.Value != nil {
			var err error
			if value, err = i.evaluate(ctx, s.Value, env); err != nil {
				return normalCompletion, err
			}
		}
		return completion{returning: true, value: value}, nil
	case *parser.StmtVar:
		var value Value = NilValue
		if s.Initializer != nil {
			var err error
			if value, err = i.evaluate(ctx, s.Initializer, env); err != nil {
				return normalCompletion, err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return normalCompletion, nil
	case *parser.StmtWhile:
		return i.executeWhile(ctx, s, env)
	}

	return i.unreachable(stmt)
}

// executeBlock runs statements in env, which the caller has already nested.
func (i *interpreter) executeBlock(ctx context.Context, statements []parser.Stmt, env *Environment) (completion, error) {
	for _, stmt := range statements {
		c, err := i.execute(ctx, stmt, env)
		if err != nil || c.returning {
			return c, err
		}
	}
	return normalCompletion, nil
}

func (i *interpreter) executeIf(ctx context.Context, s *parser.StmtIf, env *Environment) (completion, error) {
	condition, err := i.evaluate(ctx, s.Condition, env)
	if err != nil {
		return normalCompletion, err
	}

	if isTruthy(condition) {
		return i.execute(ctx, s.ThenBranch, env)
	} else if s.ElseBranch != nil {
		return i.execute(ctx, s.ElseBranch, env)
	}
	return normalCompletion, nil
}

func (i *interpreter) executeWhile(ctx context.Context, s *parser.StmtWhile, env *Environment) (completion, error) {
	for {
		if err := ctx.Err(); err != nil {
			return normalCompletion, err
		}

		condition, err := i.evaluate(ctx, s.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !isTruthy(condition) {
			return normalCompletion, nil
		}

		c, err := i.execute(ctx, s.Body, env)
		if err != nil || c.returning {
			return c, err
		}
	}
}

func (i *interpreter) evaluate(ctx context.Context, expr parser.Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *parser.ExprAssign:
		value, err := i.evaluate(ctx, e.Value, env)
		if err != nil {
			return nil, err
		}
		if err = env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *parser.ExprBinary:
		return i.evaluateBinary(ctx, e, env)
	case *parser.ExprCall:
		return i.evaluateCall(ctx, e, env)
	case *parser.ExprFunction:
		return ValueCallable{NewLoxFunction(nil, e.Parameters, e.Body, env)}, nil
	case *parser.ExprGrouping:
		return i.evaluate(ctx, e.Expression, env)
	case *parser.ExprLiteral:
		if e.Value == nil {
			return NilValue, nil
		}
		return e.Value, nil
	case *parser.ExprLogical:
		return i.evaluateLogical(ctx, e, env)
	case *parser.ExprUnary:
		return i.evaluateUnary(ctx, e, env)
	case *parser.ExprVariable:
		return env.Get(e.Name)
	}

	_, err := i.unreachable(expr)
	return nil, err
}

func (i *interpreter) evaluateBinary(ctx context.Context, expr *parser.ExprBinary, env *Environment) (Value, error) {
	left, err := i.evaluate(ctx, expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ctx, expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.BANG_EQUAL:
		return boolValue(!isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return boolValue(isEqual(left, right)), nil
	case token.PLUS:
		if l, ok := left.(parser.ValueString); ok {
			if r, ok := right.(parser.ValueString); ok {
				return l + r, nil
			}
		}
		if l, ok := left.(parser.ValueFloat); ok {
			if r, ok := right.(parser.ValueFloat); ok {
				return l + r, nil
			}
		}
		return nil, i.operandError(expr.Operator, loxerrors.ErrRuntimeOperandsMustNumbersOrStrings)
	}

	l, r, err := i.checkNumberOperands(expr.Operator, left, right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.GREATER:
		return boolValue(l > r), nil
	case token.GREATER_EQUAL:
		return boolValue(l >= r), nil
	case token.LESS:
		return boolValue(l < r), nil
	case token.LESS_EQUAL:
		return boolValue(l <= r), nil
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		if r == 0 {
			return nil, loxerrors.NewRuntimeError(expr.Operator, loxerrors.ErrRuntimeDivisionByZero)
		}
		return l / r, nil
	}

	_, err = i.unreachable(expr)
	return nil, err
}

func (i *interpreter) evaluateLogical(ctx context.Context, expr *parser.ExprLogical, env *Environment) (Value, error) {
	left, err := i.evaluate(ctx, expr.Left, env)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return i.evaluate(ctx, expr.Right, env)
}

func (i *interpreter) evaluateUnary(ctx context.Context, expr *parser.ExprUnary, env *Environment) (Value, error) {
	right, err := i.evaluate(ctx, expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.MINUS:
		r, ok := right.(parser.ValueFloat)
		if !ok {
			return nil, i.operandError(expr.Operator, loxerrors.ErrRuntimeOperandMustBeNumber)
		}
		return -r, nil
	case token.BANG:
		return boolValue(!isTruthy(right)), nil
	}

	_, err = i.unreachable(expr)
	return nil, err
}

func (i *interpreter) evaluateCall(ctx context.Context, expr *parser.ExprCall, env *Environment) (Value, error) {
	callee, err := i.evaluate(ctx, expr.Callee, env)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		value, err := i.evaluate(ctx, argument, env)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	fn, ok := callee.(ValueCallable)
	if !ok {
		return nil, loxerrors.NewRuntimeError(expr.Paren, loxerrors.ErrRuntimeCalleeMustBeCallable)
	}

	if arity := int(fn.Arity()); arity != len(arguments) {
		return nil, loxerrors.NewRuntimeError(expr.Paren, loxerrors.ErrRuntimeCalleeArityError(arity, len(arguments)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return fn.Call(ctx, i, arguments)
}

func (i *interpreter) checkNumberOperands(operator *token.Token, left, right Value) (parser.ValueFloat, parser.ValueFloat, error) {
	l, lok := left.(parser.ValueFloat)
	r, rok := right.(parser.ValueFloat)
	if !lok || !rok {
		return 0, 0, i.operandError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers)
	}
	return l, r, nil
}

func (i *interpreter) operandError(operator *token.Token, cause error) error {
	return loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperatorError(cause, operator.Lexeme))
}

func (i *interpreter) print(v Value) {
	_, _ = fmt.Fprintln(i.stdout, i.stringify(v))
}

func (i *interpreter) stringify(v Value) string {
	if v == nil {
		return NilValue.String()
	}
	return v.String()
}

func (i *interpreter) unreachable(node any) (completion, error) {
	panic(fmt.Sprintf("unreachable: unexpected node %T", node))
}

var _ Interpreter = (*interpreter)(nil)
