package scanner_test

import (
	"math"
	"strings"
	"testing"

	"github.com/leonardinius/golox/internal/loxerrors"
	"github.com/leonardinius/golox/internal/scanner"
	"github.com/leonardinius/golox/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTokens(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected []string
		err      string
	}{
		{"empty", "", []string{`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`}, ""},
		{"syntax error", "⌘", nil, "[line 1] Error: Unexpected character. '⌘'"},
		{"unterminated string", `"abc`, nil, "[line 1] Error: Unterminated string."},
		{
			"basic",
			"(){},*+-;",
			[]string{
				`{Type: LEFT_PAREN, Lexeme: "(", Literal: <nil>, Line: 1}`,
				`{Type: RIGHT_PAREN, Lexeme: ")", Literal: <nil>, Line: 1}`,
				`{Type: LEFT_BRACE, Lexeme: "{", Literal: <nil>, Line: 1}`,
				`{Type: RIGHT_BRACE, Lexeme: "}", Literal: <nil>, Line: 1}`,
				`{Type: COMMA, Lexeme: ",", Literal: <nil>, Line: 1}`,
				`{Type: STAR, Lexeme: "*", Literal: <nil>, Line: 1}`,
				`{Type: PLUS, Lexeme: "+", Literal: <nil>, Line: 1}`,
				`{Type: MINUS, Lexeme: "-", Literal: <nil>, Line: 1}`,
				`{Type: SEMICOLON, Lexeme: ";", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bang",
			"!",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangbang",
			"!!",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangbangeqeqeqeq",
			"!====",
			[]string{
				`{Type: BANG_EQUAL, Lexeme: "!=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lt",
			"<",
			[]string{
				`{Type: LESS, Lexeme: "<", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lteq",
			"<=",
			[]string{
				`{Type: LESS_EQUAL, Lexeme: "<=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"lteqeqeqeq",
			"<====",
			[]string{
				`{Type: LESS_EQUAL, Lexeme: "<=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gt",
			">",
			[]string{
				`{Type: GREATER, Lexeme: ">", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gteq",
			">=",
			[]string{
				`{Type: GREATER_EQUAL, Lexeme: ">=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"gteqeqeqeq",
			">====",
			[]string{
				`{Type: GREATER_EQUAL, Lexeme: ">=", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL_EQUAL, Lexeme: "==", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"comment",
			"//comment",
			[]string{
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"bangcomment",
			"!//comment",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"spaces",
			"! \r\t=",
			[]string{
				`{Type: BANG, Lexeme: "!", Literal: <nil>, Line: 1}`,
				`{Type: EQUAL, Lexeme: "=", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"string",
			`"string"`,
			[]string{
				`{Type: STRING, Lexeme: "\"string\"", Literal: "string", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"empty-string",
			`""`,
			[]string{
				`{Type: STRING, Lexeme: "\"\"", Literal: "", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"string-nl",
			`"string\nstring"`,
			[]string{
				`{Type: STRING, Lexeme: "\"string\\nstring\"", Literal: "string\\nstring", Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-integer",
			`10`,
			[]string{
				`{Type: NUMBER, Lexeme: "10", Literal: 10, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-integer-leading-zeroes",
			`0010`,
			[]string{
				`{Type: NUMBER, Lexeme: "0010", Literal: 10, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-decimal",
			`12.34`,
			[]string{
				`{Type: NUMBER, Lexeme: "12.34", Literal: 12.34, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-decimal-leading-zeroes",
			`0012.34`,
			[]string{
				`{Type: NUMBER, Lexeme: "0012.34", Literal: 12.34, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-dot",
			`12.`,
			[]string{
				`{Type: NUMBER, Lexeme: "12", Literal: 12, Line: 1}`,
				`{Type: DOT, Lexeme: ".", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"number-leading-dot",
			`.5`,
			[]string{
				`{Type: DOT, Lexeme: ".", Literal: <nil>, Line: 1}`,
				`{Type: NUMBER, Lexeme: "5", Literal: 5, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"slash",
			"1/2",
			[]string{
				`{Type: NUMBER, Lexeme: "1", Literal: 1, Line: 1}`,
				`{Type: SLASH, Lexeme: "/", Literal: <nil>, Line: 1}`,
				`{Type: NUMBER, Lexeme: "2", Literal: 2, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"newlines",
			"a\n\nb // trailing\nc",
			[]string{
				`{Type: IDENTIFIER, Lexeme: "a", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "b", Literal: <nil>, Line: 3}`,
				`{Type: IDENTIFIER, Lexeme: "c", Literal: <nil>, Line: 4}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 4}`,
			},
			"",
		},
		{
			"string-multiline",
			"\"a\nb\" x",
			[]string{
				`{Type: STRING, Lexeme: "\"a\nb\"", Literal: "a\nb", Line: 2}`,
				`{Type: IDENTIFIER, Lexeme: "x", Literal: <nil>, Line: 2}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 2}`,
			},
			"",
		},
		{
			"identifier-underscore",
			`_foo_1 orchid`,
			[]string{
				`{Type: IDENTIFIER, Lexeme: "_foo_1", Literal: <nil>, Line: 1}`,
				`{Type: IDENTIFIER, Lexeme: "orchid", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"identifier",
			`identifier`,
			[]string{
				`{Type: IDENTIFIER, Lexeme: "identifier", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
		{
			"reserved",
			`and class else false for fun if nil or print return super this true var while`,
			[]string{
				`{Type: AND, Lexeme: "and", Literal: <nil>, Line: 1}`,
				`{Type: CLASS, Lexeme: "class", Literal: <nil>, Line: 1}`,
				`{Type: ELSE, Lexeme: "else", Literal: <nil>, Line: 1}`,
				`{Type: FALSE, Lexeme: "false", Literal: <nil>, Line: 1}`,
				`{Type: FOR, Lexeme: "for", Literal: <nil>, Line: 1}`,
				`{Type: FUN, Lexeme: "fun", Literal: <nil>, Line: 1}`,
				`{Type: IF, Lexeme: "if", Literal: <nil>, Line: 1}`,
				`{Type: NIL, Lexeme: "nil", Literal: <nil>, Line: 1}`,
				`{Type: OR, Lexeme: "or", Literal: <nil>, Line: 1}`,
				`{Type: PRINT, Lexeme: "print", Literal: <nil>, Line: 1}`,
				`{Type: RETURN, Lexeme: "return", Literal: <nil>, Line: 1}`,
				`{Type: SUPER, Lexeme: "super", Literal: <nil>, Line: 1}`,
				`{Type: THIS, Lexeme: "this", Literal: <nil>, Line: 1}`,
				`{Type: TRUE, Lexeme: "true", Literal: <nil>, Line: 1}`,
				`{Type: VAR, Lexeme: "var", Literal: <nil>, Line: 1}`,
				`{Type: WHILE, Lexeme: "while", Literal: <nil>, Line: 1}`,
				`{Type: EOF, Lexeme: "", Literal: <nil>, Line: 1}`,
			},
			"",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()

			s := scanner.NewScanner(tc.input)
			tokens, err := s.Scan()
			if tc.err != "" {
				assert.ErrorContainsf(tt, err, tc.err, "expected error %v, got %v", tc.err, err)
			} else {
				tokensAsStrings := make([]string, len(tokens))
				for i, token := range tokens {
					tokensAsStrings[i] = token.GoString()
				}
				assert.Equal(tt, tc.expected, tokensAsStrings)
			}
		})
	}
}

func TestScanRecoversFromErrors(t *testing.T) {
	t.Parallel()

	s := scanner.NewScanner("var a = $;\nprint #a;\n@")
	tokens, err := s.Scan()
	require.Error(t, err)

	errs := loxerrors.Flatten(err)
	require.Len(t, errs, 3)
	assert.EqualError(t, errs[0], "[line 1] Error: Unexpected character. '$'")
	assert.EqualError(t, errs[1], "[line 2] Error: Unexpected character. '#'")
	assert.EqualError(t, errs[2], "[line 3] Error: Unexpected character. '@'")
	for _, e := range errs {
		assert.ErrorIs(t, e, loxerrors.ErrScanUnexpectedCharacter)
	}

	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.SEMICOLON,
		token.PRINT, token.IDENTIFIER, token.SEMICOLON,
		token.EOF,
	}, types)
}

func TestScanAlwaysEndsWithSingleEOF(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "   ", "//only comment", "\"unterminated", "!@#$%^&", "var x = 1;", "\n\n\n", "1..2"}
	for _, input := range inputs {
		tokens, _ := scanner.NewScanner(input).Scan()
		require.NotEmpty(t, tokens, input)

		eofs := 0
		for _, tok := range tokens {
			if tok.Type == token.EOF {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, input)
		assert.Equal(t, token.EOF, tokens[len(tokens)-1].Type, input)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	t.Parallel()

	const input = "fun f(a) { return a * 2.5; } // x\nprint f(\"s\");"
	first, err := scanner.NewScanner(input).Scan()
	require.NoError(t, err)
	second, err := scanner.NewScanner(input).Scan()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScanOverlongNumbers(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected float64
	}{
		{"overflow", "1" + strings.Repeat("0", 400), math.Inf(1)},
		{"overflow with fraction", strings.Repeat("9", 400) + ".5", math.Inf(1)},
		{"underflow", "0." + strings.Repeat("0", 400) + "1", 0},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()

			tokens, err := scanner.NewScanner(tc.input).Scan()
			require.NoError(tt, err)
			require.Len(tt, tokens, 2)
			assert.Equal(tt, token.NUMBER, tokens[0].Type)
			assert.Equal(tt, tc.input, tokens[0].Lexeme)
			assert.Equal(tt, tc.expected, tokens[0].Literal)
		})
	}
}

func TestScanKeepsSourceBytes(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name    string
		input   string
		lexeme  string
		literal any
		line    int
	}{
		{"invalid utf8 in string", "\"a\xffb\"", "\"a\xffb\"", "a\xffb", 1},
		{"multibyte string", "\"⌘é\"", "\"⌘é\"", "⌘é", 1},
		{"multiline invalid utf8", "\"\xfe\n\xc3\"", "\"\xfe\n\xc3\"", "\xfe\n\xc3", 2},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()

			tokens, err := scanner.NewScanner(tc.input).Scan()
			require.NoError(tt, err)
			require.Len(tt, tokens, 2)
			assert.Equal(tt, token.STRING, tokens[0].Type)
			assert.Equal(tt, tc.lexeme, tokens[0].Lexeme)
			assert.Equal(tt, tc.literal, tokens[0].Literal)
			assert.Equal(tt, tc.line, tokens[0].Line)
		})
	}
}

func TestScanReportsInvalidByteOutsideString(t *testing.T) {
	t.Parallel()

	tokens, err := scanner.NewScanner("var a\xff = 1;").Scan()
	require.Error(t, err)
	assert.ErrorIs(t, err, loxerrors.ErrScanUnexpectedCharacter)
	assert.EqualError(t, err, `[line 1] Error: Unexpected character. "\xff"`)

	lexemes := make([]string, len(tokens))
	for i, tok := range tokens {
		lexemes[i] = tok.Lexeme
	}
	assert.Equal(t, []string{"var", "a", "=", "1", ";", ""}, lexemes)
}
