package token

import (
	"fmt"
	"math"
	"strconv"
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func NewToken(t TokenType, lexeme string, literal any, line int) Token {
	return Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    line,
	}
}

func NewTokenHeap(t TokenType, lexeme string, literal any, line int) *Token {
	tt := NewToken(t, lexeme, literal, line)
	return &tt
}

// String implements fmt.Stringer.
//
// The format is the one printed by the tokenize command: kind, lexeme and
// the literal payload, or null when the token carries none.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, FormatLiteral(t.Literal))
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Type, t.Lexeme, t.Literal, t.Line)
}

// FormatLiteral renders a scanned literal payload.
func FormatLiteral(literal any) string {
	switch v := literal.(type) {
	case nil:
		return "null"
	case float64:
		return FormatNumberLiteral(v)
	case string:
		return v
	}
	return fmt.Sprintf("%v", literal)
}

// FormatNumberLiteral renders a number in source-literal form: integral
// values keep one decimal place (7.0), others use the shortest exact form.
func FormatNumberLiteral(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatNumber(v)
	}
	if usesExponent(v) {
		return FormatNumber(v)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumber renders a number for display: integral values drop the
// fractional part (3, not 3.0).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if usesExponent(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// usesExponent reports whether v is printed in exponent form: magnitudes
// of 1e21 and above, or non-zero ones below 1e-6.
func usesExponent(v float64) bool {
	abs := math.Abs(v)
	return abs >= 1e21 || (abs != 0 && abs < 1e-6)
}

var _ fmt.Stringer = (*Token)(nil)
var _ fmt.GoStringer = (*Token)(nil)
