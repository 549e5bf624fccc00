package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/golox/internal/token"
)

var (
	ErrParseUnexpectedToken                       = errors.New("Expect expression.")
	ErrParseUnexpectedVariableName                = errors.New("Expect variable name.")
	ErrParseInvalidAssignmentTarget               = errors.New("Invalid assignment target.")
	ErrParseExpectedRightParenToken               = errors.New("Expect ')' after expression.")
	ErrParseExpectedRightParenAfterArguments      = errors.New("Expect ')' after arguments.")
	ErrParseExpectedLeftParentIfToken             = errors.New("Expect '(' after 'if'.")
	ErrParseExpectedRightParentIfToken            = errors.New("Expect ')' after if condition.")
	ErrParseExpectedLeftParentWhileToken          = errors.New("Expect '(' after 'while'.")
	ErrParseExpectedRightParentWhileToken         = errors.New("Expect ')' after condition.")
	ErrParseExpectedLeftParentForToken            = errors.New("Expect '(' after 'for'.")
	ErrParseExpectedRightParentForToken           = errors.New("Expect ')' after for clauses.")
	ErrParseExpectedRightCurlyBlockToken          = errors.New("Expect '}' after block.")
	ErrParseExpectedSemicolonTokenAfterPrintValue = errors.New("Expect ';' after value.")
	ErrParseExpectedSemicolonTokenAfterExpr       = errors.New("Expect ';' after expression.")
	ErrParseExpectedSemicolonTokenAfterVar        = errors.New("Expect ';' after variable declaration.")
	ErrParseExpectedSemicolonAfterForLoopCond     = errors.New("Expect ';' after loop condition.")
	ErrParseExpectedSemicolonTokenAfterReturn     = errors.New("Expect ';' after return value.")
	ErrParseReturnOutsideFunction                 = errors.New("Can't return from top-level code.")
	ErrParseUnexpectedParameterName               = errors.New("Expect parameter name.")
	ErrParseExpectedRightParentFunToken           = errors.New("Expect ')' after parameters.")
	ErrParseTooManyArguments                      = errors.New("Can't have more than 255 arguments.")
	ErrParseTooManyParameters                     = errors.New("Can't have more than 255 parameters.")
	ErrParseExpectedEndOfExpression               = errors.New("Expect end of expression.")
)

func ErrParseExpectedIdentifierKindError(kind string) error {
	return fmt.Errorf("Expect %s name.", kind)
}

func ErrParseExpectedLeftParenError(kind string) error {
	return fmt.Errorf("Expect '(' after %s name.", kind)
}

func ErrParseExpectedLeftBraceFunToken(kind string) error {
	return fmt.Errorf("Expect '{' before %s body.", kind)
}

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Line reports the line of the offending token.
func (p *ParserError) Line() int {
	return p.tok.Line
}

// Token returns the offending token.
func (p *ParserError) Token() *token.Token {
	return p.tok
}

// Error implements error.
func (p *ParserError) Error() string {
	where := "at end"
	if p.tok.Type != token.EOF {
		where = fmt.Sprintf("at '%s'", p.tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error %s: %v", p.tok.Line, where, p.cause)
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

var _ error = (*ParserError)(nil)
var _ unwrapInterface = (*ParserError)(nil)
