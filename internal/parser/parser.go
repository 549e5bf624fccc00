package parser

import (
	"errors"
	"fmt"

	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/token"
)

const maxArity = 255

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	// Parse parses a whole program. Syntax errors do not stop the parse:
	// the parser synchronizes to the next statement boundary and carries
	// on, so the returned statements are every declaration that parsed
	// cleanly and the error joins every ParserError found.
	Parse() ([]Stmt, error)

	// ParseExpression parses the token stream as exactly one expression.
	ParseExpression() (Expr, error)
}

type parser struct {
	tokens        []token.Token
	current       int
	functionDepth int
	err           error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v}", p.tokens, p.current, p.err)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v}", len(p.tokens), p.err)
}

// Parse implements Parser.
func (p *parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	var errs []error

	for !p.isAtEnd() {
		stmt := p.declaration()
		if p.err != nil {
			errs = append(errs, p.err)
			p.synchronize()
			p.err = nil
			continue
		}
		statements = append(statements, stmt)
	}

	return statements, errors.Join(errs...)
}

// ParseExpression implements Parser.
func (p *parser) ParseExpression() (Expr, error) {
	expr := p.expression()
	if p.err == nil && !p.isAtEnd() {
		p.reportExprError(loxerrors.ErrParseExpectedEndOfExpression)
	}
	if p.err != nil {
		return nilExpr, p.err
	}
	return expr, nil
}

func (p *parser) declaration() Stmt {
	if p.check(token.FUN) && p.checkNext(token.IDENTIFIER) {
		p.advance()
		return p.funDeclaration("function")
	}

	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *parser) funDeclaration(kind string) Stmt {
	if !p.match(token.IDENTIFIER) {
		return p.reportStmtError(loxerrors.ErrParseExpectedIdentifierKindError(kind))
	}
	name := p.previous()

	if !p.match(token.LEFT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedLeftParenError(kind))
	}

	parameters, body := p.functionBody(kind)
	if p.err != nil {
		return nilStmt
	}

	return &StmtFunction{Name: name, Parameters: parameters, Body: body}
}

// functionBody parses the parameter list and the body block. The opening
// parenthesis is already consumed.
func (p *parser) functionBody(kind string) ([]*token.Token, []Stmt) {
	var parameters []*token.Token

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(parameters) >= maxArity {
				p.reportExprError(loxerrors.ErrParseTooManyParameters)
				return nil, nilStatements
			}
			if !p.match(token.IDENTIFIER) {
				p.reportExprError(loxerrors.ErrParseUnexpectedParameterName)
				return nil, nilStatements
			}
			parameters = append(parameters, p.previous())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if !p.match(token.RIGHT_PAREN) {
		p.reportExprError(loxerrors.ErrParseExpectedRightParentFunToken)
		return nil, nilStatements
	}

	if !p.match(token.LEFT_BRACE) {
		p.reportExprError(loxerrors.ErrParseExpectedLeftBraceFunToken(kind))
		return nil, nilStatements
	}

	p.functionDepth++
	body := p.blockStatement()
	p.functionDepth--

	return parameters, body
}

func (p *parser) varDeclaration() Stmt {

	if !p.match(token.IDENTIFIER) {
		return p.reportStmtError(loxerrors.ErrParseUnexpectedVariableName)
	}
	name := p.previous()

	var initializer Expr = nilExpr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterVar)
	}

	return &StmtVar{Name: name, Initializer: initializer}
}

func (p *parser) statement() Stmt {

	if p.match(token.IF) {
		return p.ifStatement()
	}

	if p.match(token.FOR) {
		return p.forStatement()
	}

	if p.match(token.PRINT) {
		return p.printStatement()
	}

	if p.match(token.RETURN) {
		return p.returnStatement()
	}

	if p.match(token.WHILE) {
		return p.whileStatement()
	}

	if p.match(token.LEFT_BRACE) {
		block := p.blockStatement()
		return &StmtBlock{Statements: block}
	}

	return p.expressionStatement()
}

func (p *parser) ifStatement() Stmt {

	if !p.match(token.LEFT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedLeftParentIfToken)
	}

	condition := p.expression()

	if !p.match(token.RIGHT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedRightParentIfToken)
	}

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	return &StmtIf{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// forStatement desugars a for loop into a while loop wrapped in a block.
func (p *parser) forStatement() Stmt {
	if !p.match(token.LEFT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedLeftParentForToken)
	}

	var initializer Stmt
	if p.match(token.SEMICOLON) {
		initializer = nilStmt
	} else if p.match(token.VAR) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonAfterForLoopCond)
	}

	var increment Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	if !p.match(token.RIGHT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedRightParentForToken)
	}

	body := p.statement()
	if p.err != nil {
		return nilStmt
	}

	if increment != nilExpr {
		body = &StmtBlock{
			Statements: []Stmt{body, &StmtExpression{Expression: increment}},
		}
	}
	if condition == nilExpr {
		condition = &ExprLiteral{Value: TrueValue}
	}
	body = &StmtWhile{Condition: condition, Body: body}
	if initializer != nilStmt {
		body = &StmtBlock{Statements: []Stmt{initializer, body}}
	}
	return body
}

func (p *parser) printStatement() Stmt {

	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterPrintValue)
	}

	return &StmtPrint{Expression: expr}
}

func (p *parser) returnStatement() Stmt {
	keyword := p.previous()
	if p.functionDepth == 0 {
		return p.reportTokenStmtError(keyword, loxerrors.ErrParseReturnOutsideFunction)
	}

	var value Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterReturn)
	}

	return &StmtReturn{Keyword: keyword, Value: value}
}

func (p *parser) whileStatement() Stmt {

	if !p.match(token.LEFT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedLeftParentWhileToken)
	}
	condition := p.expression()
	if !p.match(token.RIGHT_PAREN) {
		return p.reportStmtError(loxerrors.ErrParseExpectedRightParentWhileToken)
	}

	body := p.statement()

	return &StmtWhile{Condition: condition, Body: body}
}

func (p *parser) blockStatement() []Stmt {

	var stmts []Stmt

	for !p.check(token.RIGHT_BRACE) && !p.isDone() {
		stmts = append(stmts, p.declaration())
	}

	if !p.match(token.RIGHT_BRACE) {
		return p.reportStmtsError(loxerrors.ErrParseExpectedRightCurlyBlockToken)
	}

	return stmts
}

func (p *parser) expressionStatement() Stmt {
	expr := p.expression()
	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(loxerrors.ErrParseExpectedSemicolonTokenAfterExpr)
	}
	return &StmtExpression{Expression: expr}
}

func (p *parser) expression() Expr {
	return p.assignment()
}

func (p *parser) assignment() Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ExprVariable); ok {
			name := v.Name
			return &ExprAssign{Name: name, Value: value}
		}

		return p.reportTokenExprError(equals, loxerrors.ErrParseInvalidAssignmentTarget)
	}

	return expr
}

func (p *parser) logicOr() Expr {
	expr := p.logicAnd()

	for p.match(token.OR) {
		operator := p.previous()
		right := p.logicAnd()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) logicAnd() Expr {
	expr := p.equality()

	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) equality() Expr {
	expr := p.comparison()

	for p.anyMatch(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) comparison() Expr {
	expr := p.term()

	for p.anyMatch(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) term() Expr {
	expr := p.factor()

	for p.anyMatch(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) factor() Expr {
	expr := p.unary()

	for p.anyMatch(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) unary() Expr {
	if p.anyMatch(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ExprUnary{
			Operator: operator,
			Right:    right,
		}
	}

	return p.call()
}

func (p *parser) call() Expr {
	expr := p.primary()

	for p.match(token.LEFT_PAREN) {
		expr = p.finishCall(expr)
	}

	return expr
}

func (p *parser) finishCall(callee Expr) Expr {
	var arguments []Expr

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(arguments) >= maxArity {
				return p.reportExprError(loxerrors.ErrParseTooManyArguments)
			}
			arguments = append(arguments, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if !p.match(token.RIGHT_PAREN) {
		return p.reportExprError(loxerrors.ErrParseExpectedRightParenAfterArguments)
	}

	return &ExprCall{Callee: callee, Paren: p.previous(), Arguments: arguments}
}

func (p *parser) primary() Expr {
	if p.match(token.FALSE) {
		return &ExprLiteral{Value: FalseValue}
	}
	if p.match(token.TRUE) {
		return &ExprLiteral{Value: TrueValue}
	}
	if p.match(token.NIL) {
		return &ExprLiteral{Value: NilValue}
	}

	if p.anyMatch(token.NUMBER, token.STRING) {
		tok := p.previous()
		return &ExprLiteral{Value: p.literalValue(tok)}
	}

	if p.match(token.IDENTIFIER) {
		tok := p.previous()
		return &ExprVariable{Name: tok}
	}

	if p.match(token.FUN) {
		return p.functionExpression()
	}

	return p.grouping()
}

func (p *parser) functionExpression() Expr {
	keyword := p.previous()
	if !p.match(token.LEFT_PAREN) {
		return p.reportExprError(loxerrors.ErrParseExpectedLeftParenError("function"))
	}

	parameters, body := p.functionBody("function")
	if p.err != nil {
		return nilExpr
	}

	return &ExprFunction{Keyword: keyword, Parameters: parameters, Body: body}
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		if !p.match(token.RIGHT_PAREN) {
			return p.reportExprError(loxerrors.ErrParseExpectedRightParenToken)
		}
		return &ExprGrouping{Expression: expr}
	}

	return p.reportExprError(loxerrors.ErrParseUnexpectedToken)
}

func (p *parser) literalValue(tok *token.Token) Value {
	switch v := tok.Literal.(type) {
	case float64:
		return ValueFloat(v)
	case string:
		return ValueString(v)
	}
	return NilValue
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) checkNext(tokenType token.TokenType) bool {
	if p.isDone() || p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// Be carefull with isAtEnd, it does not check for parse errors.
// Use isDone instead.
// isAtEnd is used from top level Parse, synchronize and advance ony.
func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) isDone() bool {
	// at the end, OR, have errors
	return p.isAtEnd() || p.err != nil
}

func (p *parser) reportStmtError(err error) Stmt {
	return p.reportTokenStmtError(p.peek(), err)
}

func (p *parser) reportTokenStmtError(tok *token.Token, err error) Stmt {
	if p.err != nil {
		return nilStmt
	}

	p.err = loxerrors.NewParseError(tok, err)

	return nilStmt
}

func (p *parser) reportStmtsError(err error) []Stmt {
	if p.err != nil {
		return nilStatements
	}

	t := p.peek()
	p.err = loxerrors.NewParseError(t, err)

	return nilStatements
}

func (p *parser) reportExprError(err error) Expr {
	return p.reportTokenExprError(p.peek(), err)
}

func (p *parser) reportTokenExprError(tok *token.Token, err error) Expr {
	if p.err != nil {
		return nilExpr
	}
	p.err = loxerrors.NewParseError(tok, err)
	return nilExpr
}

// synchronize discards tokens until it has probably found a statement
// boundary: just past a semicolon, or at a keyword that starts a statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS,
			token.FUN,
			token.VAR,
			token.FOR,
			token.IF,
			token.WHILE,
			token.PRINT,
			token.RETURN:
			return
		}

		p.advance()
	}
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
