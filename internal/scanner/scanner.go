package scanner

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/token"
)

// Scanner converts source text into tokens.
type Scanner interface {
	// Scan returns every token it recognised, always terminated by exactly
	// one EOF token. Lexical errors do not stop the scan; they are collected
	// and returned joined together once the input is exhausted.
	Scan() ([]token.Token, error)
}

type scanner struct {
	source               string
	tokens               []token.Token
	start, current, line int
	errs                 []error
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: input, start: 0, current: 0, line: 1}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		// We are at the beginning of the next lexeme.
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))

	return s.tokens, errors.Join(s.errs...)
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) scanToken() {
	var c = s.advance()

	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		s.addMatchToken('=', token.BANG_EQUAL, token.BANG)
	case '=':
		s.addMatchToken('=', token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		s.addMatchToken('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.addMatchToken('=', token.GREATER_EQUAL, token.GREATER)
	case '/':
		if s.match('/') {
			s.comment()
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t', '\n':
		// Ignore whitespace.
	case '"':
		s.string()
	default:
		if s.isDigit(c) {
			s.number()
		} else if s.isAlpha(c) {
			s.reservedOrIdentifier()
		} else {
			s.reportUnexpectedCharater(c)
		}
	}
}

// The source is walked as UTF-8 so that lexemes stay byte-exact slices of
// the input; invalid bytes decode as utf8.RuneError of width 1.
func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return '\000'
	}
	c, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return c
}

func (s *scanner) peekNext() rune {
	if s.isAtEnd() {
		return '\000'
	}
	_, width := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+width >= len(s.source) {
		return '\000'
	}
	c, _ := utf8.DecodeRuneInString(s.source[s.current+width:])
	return c
}

func (s *scanner) advance() rune {
	c, width := utf8.DecodeRuneInString(s.source[s.current:])
	if c == '\n' {
		s.line++
	}
	s.current += width
	return c
}

func (s *scanner) match(expected rune) bool {
	if !s.isAtEnd() && expected == s.peek() {
		s.advance()
		return true
	}

	return false
}

func (s *scanner) addMatchToken(lookAhead rune, ifMatch, ifNotMatched token.TokenType) {
	if s.match(lookAhead) {
		s.addToken(ifMatch)
	} else {
		s.addToken(ifNotMatched)
	}
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, s.source[s.start:s.current], literal, s.line))
}

func (s *scanner) comment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *scanner) string() {
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}

	if s.isAtEnd() {
		s.reportError(loxerrors.ErrScanUnterminatedString)
		return
	}

	// The closing ".
	s.advance()

	value := s.source[s.start+1 : s.current-1]
	s.addTokenLiteral(token.STRING, value)
}

func (s *scanner) number() {
	for s.isDigit(s.peek()) {
		s.advance()
	}

	// A trailing dot is a DOT token of its own.
	if s.peek() == '.' && s.isDigit(s.peekNext()) {
		s.advance()

		for s.isDigit(s.peek()) {
			s.advance()
		}
	}

	svalue := s.source[s.start:s.current]
	// Digit runs too long for float64 saturate to infinity.
	value, err := strconv.ParseFloat(svalue, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.reportErrorDetails(loxerrors.ErrScanInvalidNumber, strconv.Quote(svalue))
		return
	}
	s.addTokenLiteral(token.NUMBER, value)
}

func (s *scanner) reservedOrIdentifier() {
	for s.isAlphaNumeric(s.peek()) {
		s.advance()
	}

	tokenType := token.IDENTIFIER
	name := s.source[s.start:s.current]
	if _type, ok := token.LookupKeyword(name); ok {
		tokenType = _type
	}
	s.addToken(tokenType)
}

func (s *scanner) isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

func (s *scanner) isAlphaNumeric(c rune) bool {
	return s.isAlpha(c) || s.isDigit(c)
}

func (s *scanner) reportUnexpectedCharater(c rune) {
	details := strconv.QuoteRune(c)
	if c == utf8.RuneError && s.current-s.start == 1 {
		// A stray byte that is not valid UTF-8.
		details = strconv.Quote(s.source[s.start:s.current])
	}
	s.reportErrorDetails(loxerrors.ErrScanUnexpectedCharacter, details)
}

func (s *scanner) reportError(err error) {
	s.reportErrorDetails(err, "")
}

func (s *scanner) reportErrorDetails(err error, details string) {
	s.errs = append(s.errs, loxerrors.NewScanError(s.line, err, details))
}

var _ Scanner = (*scanner)(nil)
