package compiler

import (
	"testing"

	"github.com/chip8lang/chippyvm/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func compileSrc(t *testing.T, src string) []Opcode {
	t.Helper()
	l := lexer.New(src)
	l.Lex()
	c := New(l.Tokens())
	asm, _, err := c.Compile()
	assert.NoError(t, err)
	return asm
}

func TestCompileNumberAddition(t *testing.T) {
	asm := compileSrc(t, "12 + 3 + 7 + 2;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 12),
		ldRegByte(1, 3),
		addRegReg(0, 1),
		ldRegByte(1, 7),
		addRegReg(0, 1),
		ldRegByte(1, 2),
		addRegReg(0, 1),
	}, asm)
}

func TestCompileSubtraction(t *testing.T) {
	asm := compileSrc(t, "9 - 7;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 9),
		ldRegByte(1, 7),
		subRegReg(0, 1),
	}, asm)
}

func TestCompileVariable(t *testing.T) {
	asm := compileSrc(t, "var a = 3; a;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 3),
		ldRegReg(1, 0),
	}, asm)
}

func TestCompileVariableAssignment(t *testing.T) {
	asm := compileSrc(t, "var a = 1; a + 4; var b = 2; var c = b + a; c = a;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 1),
		ldRegReg(1, 0),
		ldRegByte(2, 4),
		addRegReg(1, 2),
		ldRegByte(1, 2),
		ldRegReg(2, 1),
		ldRegReg(3, 0),
		addRegReg(2, 3),
		ldRegReg(3, 0),
		ldRegReg(2, 3),
	}, asm)
}

func TestCompileLexicalScope(t *testing.T) {
	asm := compileSrc(t, "var a = 1; { var b = 4; } var c = 7;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 1),
		ldRegByte(1, 4),
		ldRegByte(1, 7),
	}, asm)
}

func TestCompileIf(t *testing.T) {
	asm := compileSrc(t, "if (1+3 == 4) { 10; } 5;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 1),
		ldRegByte(1, 3),
		addRegReg(0, 1),
		ldRegByte(1, 4),
		seRegReg(0, 1),
		jp(0x20E),
		ldRegByte(0, 10),
		ldRegByte(0, 5),
	}, asm)
}

func TestCompileIfElse(t *testing.T) {
	asm := compileSrc(t, "var a = 0; if (1 == 2) a = 5; else a = 9;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 0),
		ldRegByte(1, 1),
		ldRegByte(2, 2),
		seRegReg(1, 2),
		jp(0x210),
		ldRegByte(1, 5),
		ldRegReg(0, 1),
		jp(0x214),
		ldRegByte(1, 9),
		ldRegReg(0, 1),
	}, asm)
}

func TestCompileAnd(t *testing.T) {
	asm := compileSrc(t, "if (2 == 2 and 4 == 4) 5; else 9;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 2),
		ldRegByte(1, 2),
		seRegReg(0, 1),
		jp(0x20E),
		ldRegByte(0, 4),
		ldRegByte(1, 4),
		seRegReg(0, 1),
		jp(0x214),
		ldRegByte(0, 5),
		jp(0x216),
		ldRegByte(0, 9),
	}, asm)
}

func TestCompileNotEqual(t *testing.T) {
	asm := compileSrc(t, "if (1 != 5) 3;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 1),
		ldRegByte(1, 5),
		sneRegReg(0, 1),
		jp(0x20A),
		ldRegByte(0, 3),
	}, asm)
}

func TestCompileOr(t *testing.T) {
	asm := compileSrc(t, "if (1 != 1 or 3 == 3) 8; else 5;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 1),
		ldRegByte(1, 1),
		sneRegReg(0, 1),
		jp(0x20A),
		jp(0x212),
		ldRegByte(0, 3),
		ldRegByte(1, 3),
		seRegReg(0, 1),
		jp(0x216),
		ldRegByte(0, 8),
		jp(0x218),
		ldRegByte(0, 5),
	}, asm)
}

func TestCompileWhile(t *testing.T) {
	asm := compileSrc(t, "var a = 255; while (a != 0) { a = a - 1; }")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 255),
		ldRegReg(1, 0),
		ldRegByte(2, 0),
		sneRegReg(1, 2),
		jp(0x214),
		ldRegReg(1, 0),
		ldRegByte(2, 1),
		subRegReg(1, 2),
		ldRegReg(0, 1),
		jp(0x202),
	}, asm)
}

func TestCompileFnWithoutArgs(t *testing.T) {
	asm := compileSrc(t, "var variable = 6; fn test() {5;} test(); variable;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 6),
		jp(528),
		ldRegByte(0, 5),
		ldRegByte(14, 3),
		subRegReg(13, 14),
		ldFReg(13),
		ldRegI(13),
		ret(),
		ldFReg(13),
		ldIReg(13),
		ldRegByte(14, 3),
		addRegReg(13, 14),
		call(516),
		ldRegReg(1, 0),
	}, asm)
}

func TestCompileFnNestedCallWithArgs(t *testing.T) {
	asm := compileSrc(t, "var variable = 9; fn test(num) {var a = 5; num;} test(1); variable;")
	assert.Equal(t, []Opcode{
		ldRegByte(0, 9),
		jp(530),
		ldRegByte(1, 5),
		ldRegReg(2, 0),
		ldRegByte(14, 3),
		subRegReg(13, 14),
		ldFReg(13),
		ldRegI(13),
		ret(),
		ldFReg(13),
		ldIReg(13),
		ldRegByte(14, 3),
		addRegReg(13, 14),
		ldRegByte(1, 1),
		ldRegReg(0, 1),
		call(516),
		ldRegReg(1, 0),
	}, asm)
}

func TestCompileFnWithArgsAndNestedLoops(t *testing.T) {
	asm := compileSrc(t, `
		var glob1 = 7;
		var glob2 = 3;

		fn doubleloop(num1, num2) {
		  var num2backup = num2;
		  while(num1 != 0) {
		     while(num2 != 0) {
		         num2 = num2 - 1;
		     }
		   num2 = num2backup;
		   num1 = num1 - 1;
		  }
		}

		var glob3 = 255;

		doubleloop(glob2, glob1);

		var glob4 = 128;

		glob3;
	`)

	assert.Equal(t, []Opcode{
		ldRegByte(0, 7),
		ldRegByte(1, 3),
		jp(570),
		ldRegReg(2, 1),
		ldRegReg(3, 0),
		ldRegByte(4, 0),
		sneRegReg(3, 4),
		jp(560),
		ldRegReg(3, 1),
		ldRegByte(4, 0),
		sneRegReg(3, 4),
		jp(546),
		ldRegReg(3, 1),
		ldRegByte(4, 1),
		subRegReg(3, 4),
		ldRegReg(1, 3),
		jp(528),
		ldRegReg(3, 2),
		ldRegReg(1, 3),
		ldRegReg(3, 0),
		ldRegByte(4, 1),
		subRegReg(3, 4),
		ldRegReg(0, 3),
		jp(520),
		ldRegByte(14, 3),
		subRegReg(13, 14),
		ldFReg(13),
		ldRegI(13),
		ret(),
		ldRegByte(2, 255),
		ldFReg(13),
		ldIReg(13),
		ldRegByte(14, 3),
		addRegReg(13, 14),
		ldRegReg(3, 1),
		ldRegReg(4, 0),
		ldRegReg(0, 3),
		ldRegReg(1, 4),
		call(518),
		ldRegByte(3, 128),
		ldRegReg(4, 2),
	}, asm)
}

func TestCompileDrawRandKeyDelayAndIndex(t *testing.T) {
	asm := compileSrc(t, `
		var testvar = 10;

		fn drawrand(times, delay) {
		    I = 20;
		    while(times != 0) {
		       times = times - 1;
		       KEY();
		       DT = delay;
		       while (DT != 0) {}
		       DRAW(RAND(255),RAND(255),5);
		    }
		}
		drawrand(testvar, 50);
		while(1 == 1) {7;}
	`)

	assert.Equal(t, []Opcode{
		ldRegByte(0, 10),
		jp(568),
		ldIAddr(20),
		ldRegReg(2, 0),
		ldRegByte(3, 0),
		sneRegReg(2, 3),
		jp(558),
		ldRegReg(2, 0),
		ldRegByte(3, 1),
		subRegReg(2, 3),
		ldRegReg(0, 2),
		ldRegKey(2),
		ldRegReg(2, 1),
		ldDTReg(2),
		ldRegDT(2),
		ldRegByte(3, 0),
		sneRegReg(2, 3),
		jp(550),
		jp(540),
		rndRegByte(2, 255),
		rndRegByte(3, 255),
		drwRegRegNibble(2, 3, 5),
		jp(518),
		ldRegByte(14, 3),
		subRegReg(13, 14),
		ldFReg(13),
		ldRegI(13),
		ret(),
		ldFReg(13),
		ldIReg(13),
		ldRegByte(14, 3),
		addRegReg(13, 14),
		ldRegReg(1, 0),
		ldRegByte(2, 50),
		ldRegReg(0, 1),
		ldRegReg(1, 2),
		call(516),
		ldRegByte(1, 1),
		ldRegByte(2, 1),
		seRegReg(1, 2),
		jp(598),
		ldRegByte(1, 7),
		jp(586),
	}, asm)
}

func TestCompileArityMismatchFails(t *testing.T) {
	l := lexer.New("fn add(a, b) { a + b; } add(1);")
	l.Lex()
	c := New(l.Tokens())
	_, _, err := c.Compile()
	assert.Error(t, err)
}
