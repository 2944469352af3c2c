package lexer

import (
	"testing"

	"github.com/chip8lang/chippyvm/internal/token"
	"github.com/stretchr/testify/assert"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasic(t *testing.T) {
	l := New("( 123 \n            55 testident var else asdfg")
	l.Lex()

	assert.Equal(t, []token.Kind{
		token.LeftParen, token.Number, token.Number, token.Identifier,
		token.Var, token.Else, token.Identifier, token.EndOfFile,
	}, kinds(l.Tokens()))
	assert.EqualValues(t, 1, l.line)
}

func TestLexVarAssignment(t *testing.T) {
	l := New("\n        var a = 50; \n        a = a + 20;")
	l.Lex()

	assert.Equal(t, []token.Kind{
		token.Var, token.Identifier, token.Equals, token.Number, token.Semicolon,
		token.Identifier, token.Equals, token.Identifier, token.Plus, token.Number,
		token.Semicolon, token.EndOfFile,
	}, kinds(l.Tokens()))
	assert.EqualValues(t, 2, l.line)
}

func TestLexTwoCharTokens(t *testing.T) {
	l := New("8 == 5 != !0;")
	l.Lex()

	assert.Equal(t,
		"Number(8) EqualsEquals Number(5) NotEquals Not Number(0) Semicolon EndOfFile",
		l.StringifyTokens(),
	)
}

func TestLexStringifyTokens(t *testing.T) {
	l := New("test test 123 55")
	l.Lex()

	assert.Equal(t,
		`Identifier("test") Identifier("test") Number(123) Number(55) EndOfFile`,
		l.StringifyTokens(),
	)
}

func TestLexGlobals(t *testing.T) {
	l := New("ST test test DT 123 I 55 RAND")
	l.Lex()

	assert.Equal(t,
		`ST Identifier("test") Identifier("test") DT Number(123) I Number(55) Rand EndOfFile`,
		l.StringifyTokens(),
	)
}

func TestLexKeywords(t *testing.T) {
	l := New("ST test test DT var while 55 RAND")
	l.Lex()

	assert.Equal(t,
		`ST Identifier("test") Identifier("test") DT Var While Number(55) Rand EndOfFile`,
		l.StringifyTokens(),
	)
}

func TestLexUnknownCharacterBecomesErrorToken(t *testing.T) {
	l := New("1 @ 2;")
	l.Lex()

	assert.Equal(t, []token.Kind{
		token.Number, token.ErrorToken, token.Number, token.Semicolon, token.EndOfFile,
	}, kinds(l.Tokens()))
}
