package assembler

import (
	"testing"

	"github.com/chip8lang/chippyvm/internal/compiler"
	"github.com/chip8lang/chippyvm/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestEncodeOpcode(t *testing.T) {
	assert.EqualValues(t, 0x600D, encode(compiler.Opcode{Kind: compiler.LDRegByte, A: 0, B: 0xD}))
	assert.EqualValues(t, 0x84F4, encode(compiler.Opcode{Kind: compiler.AddRegReg, A: 4, B: 15}))
}

func assembleSrc(t *testing.T, src string) []byte {
	t.Helper()
	l := lexer.New(src)
	l.Lex()
	c := compiler.New(l.Tokens())
	asm, _, err := c.Compile()
	assert.NoError(t, err)
	a := New(asm)
	a.Assemble()
	return a.Binary()
}

func TestAssembleAddition(t *testing.T) {
	bin := assembleSrc(t, "14 + 14;")
	assert.Equal(t, []byte{0x60, 0x0E, 0x61, 0x0E, 0x80, 0x14}, bin)
}

func TestAssembleSubtraction(t *testing.T) {
	bin := assembleSrc(t, "9 - 7;")
	assert.Equal(t, []byte{0x60, 0x09, 0x61, 0x07, 0x80, 0x15}, bin)
}
