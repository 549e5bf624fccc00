package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/golox/internal/interpreter"
	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/parser"
	"github.com/leonardinius/golox/internal/scanner"
	"github.com/leonardinius/golox/internal/token"
)

// Process exit codes. Scripts can branch on the failure class.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitScanError    = 65
	ExitParseError   = 66
	ExitRuntimeError = 70
	ExitIOError      = 74
)

type command struct {
	help     string
	withFile bool
	run      func(app *LoxApp, ctx context.Context, source string) int
}

var commands = map[string]command{
	"tokenize": {help: "print the tokens of <file>", withFile: true, run: (*LoxApp).tokenize},
	"parse":    {help: "parse <file> as one expression and print its tree", withFile: true, run: (*LoxApp).parse},
	"evaluate": {help: "evaluate <file> as one expression and print the value", withFile: true, run: (*LoxApp).evaluate},
	"run":      {help: "execute <file> as a program", withFile: true, run: (*LoxApp).run},
	"dbg":      {help: "print tokens and statement trees of <file>", withFile: true, run: (*LoxApp).dbg},
	"repl":     {help: "start an interactive prompt", run: (*LoxApp).repl},
}

type LoxApp struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	reporter loxerrors.ErrReporter
}

type AppOption func(*LoxApp)

func WithStdin(stdin io.Reader) AppOption {
	return func(app *LoxApp) {
		app.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stderr = stderr
	}
}

func NewLoxApp(options ...AppOption) *LoxApp {
	app := &LoxApp{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range options {
		opt(app)
	}
	app.reporter = loxerrors.NewErrReporter(app.stderr)
	return app
}

// Main runs the command line and returns the process exit code.
func (app *LoxApp) Main(args []string) int {
	return app.MainContext(context.Background(), args)
}

// MainContext is Main with a context that stops a running program when done.
func (app *LoxApp) MainContext(ctx context.Context, args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			app.reporter.ReportPanic(fmt.Errorf("%v", r))
			exitCode = ExitRuntimeError
		}
	}()

	if len(args) == 0 || len(args) > 2 {
		return app.usage()
	}

	cmd, ok := commands[args[0]]
	if !ok {
		if len(args) != 1 {
			return app.usage()
		}
		// golox <file> is short for golox run <file>.
		cmd, args = commands["run"], []string{"run", args[0]}
	}

	if !cmd.withFile {
		if len(args) != 1 {
			return app.usage()
		}
		return cmd.run(app, ctx, "")
	}

	if len(args) != 2 {
		return app.usage()
	}

	source, err := app.readFile(args[1])
	if err != nil {
		app.reporter.ReportError(err)
		return ExitIOError
	}

	return cmd.run(app, ctx, source)
}

func (app *LoxApp) usage() int {
	names := maps.Keys(commands)
	slices.Sort(names)

	w := new(strings.Builder)
	fmt.Fprintln(w, "Usage: golox <command> <file>")
	fmt.Fprintln(w, "       golox <file>")
	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].help)
	}
	_, _ = io.WriteString(app.stderr, w.String())

	return ExitUsage
}

func (app *LoxApp) readFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (app *LoxApp) tokenize(_ context.Context, source string) int {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		app.reporter.ReportError(err)
	}

	app.printTokens(tokens)

	if err != nil {
		return ExitScanError
	}
	return ExitOK
}

func (app *LoxApp) parse(_ context.Context, source string) int {
	expr, code := app.parseExpression(source)
	if code != ExitOK {
		return code
	}

	fmt.Fprintln(app.stdout, parser.NewAstPrinter().Print(expr))
	return ExitOK
}

func (app *LoxApp) evaluate(ctx context.Context, source string) int {
	expr, code := app.parseExpression(source)
	if code != ExitOK {
		return code
	}

	value, err := interpreter.NewInterpreter(interpreter.WithStdout(app.stdout)).Evaluate(ctx, expr)
	if err != nil {
		app.reporter.ReportError(err)
		return ExitRuntimeError
	}

	fmt.Fprintln(app.stdout, value)
	return ExitOK
}

func (app *LoxApp) run(ctx context.Context, source string) int {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		app.reporter.ReportError(err)
		return ExitScanError
	}

	statements, err := parser.NewParser(tokens).Parse()
	if err != nil {
		app.reporter.ReportError(err)
		return ExitParseError
	}

	eval := interpreter.NewInterpreter(interpreter.WithStdout(app.stdout))
	if _, err := eval.Interpret(ctx, statements); err != nil {
		app.reporter.ReportError(err)
		return ExitRuntimeError
	}

	return ExitOK
}

// dbg prints whatever it can: the tokens even after scan errors, and the
// statements that parsed even after parse errors.
func (app *LoxApp) dbg(_ context.Context, source string) int {
	tokens, scanErr := scanner.NewScanner(source).Scan()
	app.printTokens(tokens)

	statements, parseErr := parser.NewParser(tokens).Parse()
	printer := parser.NewAstPrinter()
	for _, stmt := range statements {
		fmt.Fprintln(app.stdout, printer.PrintStmt(stmt))
	}

	switch {
	case scanErr != nil:
		app.reporter.ReportError(errors.Join(scanErr, parseErr))
		return ExitScanError
	case parseErr != nil:
		app.reporter.ReportError(parseErr)
		return ExitParseError
	}
	return ExitOK
}

func (app *LoxApp) repl(ctx context.Context, _ string) int {
	cfg := &readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          app.stdout,
		Stderr:          app.stderr,
	}
	if app.stdin != os.Stdin {
		cfg.Stdin = io.NopCloser(app.stdin)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		app.reporter.ReportError(err)
		return ExitIOError
	}
	defer rl.Close()

	session := newReplSession(app)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return ExitOK
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return ExitOK
		}
		if err != nil {
			app.reporter.ReportError(err)
			return ExitIOError
		}

		session.eval(ctx, line)
	}
}

func (app *LoxApp) parseExpression(source string) (parser.Expr, int) {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		app.reporter.ReportError(err)
		return nil, ExitScanError
	}

	expr, err := parser.NewParser(tokens).ParseExpression()
	if err != nil {
		app.reporter.ReportError(err)
		return nil, ExitParseError
	}

	return expr, ExitOK
}

func (app *LoxApp) printTokens(tokens []token.Token) {
	w := new(strings.Builder)
	for _, tok := range tokens {
		fmt.Fprintln(w, tok.String())
	}
	_, _ = io.WriteString(app.stdout, w.String())
}
