package parser

import (
	"strings"

	"github.com/leonardinius/golox/internal/token"
)

// AstPrinter renders nodes in a fully parenthesized prefix form, e.g.
// (+ 1.0 (* 2.0 3.0)). It is a debugging aid and plays no part in
// evaluation.
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// Print renders an expression.
func (p *AstPrinter) Print(expr Expr) string {
	out := new(strings.Builder)
	p.writeExpr(out, expr)
	return out.String()
}

// PrintStmt renders a statement.
func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	out := new(strings.Builder)
	p.writeStmt(out, stmt)
	return out.String()
}

func (p *AstPrinter) writeExpr(out *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		_, _ = out.WriteString("<nil>")
	case *ExprAssign:
		p.parenthesize(out, "= "+e.Name.Lexeme, e.Value)
	case *ExprBinary:
		p.parenthesize(out, e.Operator.Lexeme, e.Left, e.Right)
	case *ExprCall:
		p.parenthesize(out, "call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *ExprFunction:
		_, _ = out.WriteString("(fun ")
		p.writeParameters(out, e.Parameters)
		p.writeBody(out, e.Body)
		_, _ = out.WriteString(")")
	case *ExprGrouping:
		p.parenthesize(out, "group", e.Expression)
	case *ExprLiteral:
		_, _ = out.WriteString(p.literal(e.Value))
	case *ExprLogical:
		p.parenthesize(out, e.Operator.Lexeme, e.Left, e.Right)
	case *ExprUnary:
		p.parenthesize(out, e.Operator.Lexeme, e.Right)
	case *ExprVariable:
		_, _ = out.WriteString(e.Name.Lexeme)
	}
}

func (p *AstPrinter) writeStmt(out *strings.Builder, stmt Stmt) {
	switch s := stmt.(type) {
	case nil:
		_, _ = out.WriteString("<nil>")
	case *StmtBlock:
		_, _ = out.WriteString("(block")
		p.writeBody(out, s.Statements)
		_, _ = out.WriteString(")")
	case *StmtExpression:
		p.parenthesize(out, ";", s.Expression)
	case *StmtFunction:
		_, _ = out.WriteString("(fun ")
		_, _ = out.WriteString(s.Name.Lexeme)
		_, _ = out.WriteString(" ")
		p.writeParameters(out, s.Parameters)
		p.writeBody(out, s.Body)
		_, _ = out.WriteString(")")
	case *StmtIf:
		_, _ = out.WriteString("(if ")
		p.writeExpr(out, s.Condition)
		_, _ = out.WriteString(" ")
		p.writeStmt(out, s.ThenBranch)
		if s.ElseBranch != nil {
			_, _ = out.WriteString(" ")
			p.writeStmt(out, s.ElseBranch)
		}
		_, _ = out.WriteString(")")
	case *StmtPrint:
		p.parenthesize(out, "print", s.Expression)
	case *StmtReturn:
		if s.Value == nil {
			_, _ = out.WriteString("(return)")
		} else {
			p.parenthesize(out, "return", s.Value)
		}
	case *StmtVar:
		if s.Initializer == nil {
			_, _ = out.WriteString("(var " + s.Name.Lexeme + ")")
		} else {
			p.parenthesize(out, "var "+s.Name.Lexeme, s.Initializer)
		}
	case *StmtWhile:
		_, _ = out.WriteString("(while ")
		p.writeExpr(out, s.Condition)
		_, _ = out.WriteString(" ")
		p.writeStmt(out, s.Body)
		_, _ = out.WriteString(")")
	}
}

func (p *AstPrinter) parenthesize(out *strings.Builder, name string, exprs ...Expr) {
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		_, _ = out.WriteString(" ")
		p.writeExpr(out, expr)
	}
	_, _ = out.WriteString(")")
}

func (p *AstPrinter) writeParameters(out *strings.Builder, parameters []*token.Token) {
	names := make([]string, len(parameters))
	for i, param := range parameters {
		names[i] = param.Lexeme
	}
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(strings.Join(names, " "))
	_, _ = out.WriteString(")")
}

func (p *AstPrinter) writeBody(out *strings.Builder, body []Stmt) {
	for _, stmt := range body {
		_, _ = out.WriteString(" ")
		p.writeStmt(out, stmt)
	}
}

func (p *AstPrinter) literal(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case ValueFloat:
		return token.FormatNumberLiteral(float64(v))
	}
	return v.String()
}
