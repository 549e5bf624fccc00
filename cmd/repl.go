package cmd

import (
	"context"
	"fmt"

	"github.com/leonardinius/golox/internal/interpreter"
	"github.com/leonardinius/golox/internal/parser"
	"github.com/leonardinius/golox/internal/scanner"
)

// replSession keeps one interpreter alive across prompt lines so that
// declarations made on one line are visible on the next.
type replSession struct {
	app    *LoxApp
	interp interpreter.Interpreter
}

func newReplSession(app *LoxApp) *replSession {
	return &replSession{
		app:    app,
		interp: interpreter.NewInterpreter(interpreter.WithStdout(app.stdout)),
	}
}

// eval runs one line. A line that is not a valid program but is a valid
// expression, like "1 + 2" without the semicolon, is evaluated and echoed.
// Errors are reported and the session carries on.
func (r *replSession) eval(ctx context.Context, line string) {
	tokens, err := scanner.NewScanner(line).Scan()
	if err != nil {
		r.app.reporter.ReportError(err)
		return
	}

	statements, err := parser.NewParser(tokens).Parse()
	if err != nil {
		expr, exprErr := parser.NewParser(tokens).ParseExpression()
		if exprErr != nil {
			r.app.reporter.ReportError(err)
			return
		}

		value, err := r.interp.Evaluate(ctx, expr)
		if err != nil {
			r.app.reporter.ReportError(err)
			return
		}
		fmt.Fprintln(r.app.stdout, value)
		return
	}

	out, err := r.interp.Interpret(ctx, statements)
	if err != nil {
		r.app.reporter.ReportError(err)
		return
	}

	if len(statements) > 0 {
		if _, ok := statements[len(statements)-1].(*parser.StmtExpression); ok {
			fmt.Fprintln(r.app.stdout, out)
		}
	}
}
