// Package assembler packs the compiler's symbolic opcode list into the
// big-endian 16-bit CHIP-8 instruction encoding and concatenates the
// result into a flat byte buffer ready to be loaded into a VM at 0x200.
package assembler

import (
	"fmt"
	"strings"

	"github.com/chip8lang/chippyvm/internal/compiler"
)

// Assembler encodes a symbolic opcode list into CHIP-8 machine code.
type Assembler struct {
	asm    []compiler.Opcode
	words  []uint16
	binary []byte
}

// New creates an Assembler over the opcode list produced by the compiler.
func New(asm []compiler.Opcode) *Assembler {
	return &Assembler{asm: asm}
}

// Assemble encodes every opcode and appends its big-endian bytes to the
// output buffer. Well-typed symbolic opcodes cannot fail to encode.
func (a *Assembler) Assemble() {
	for _, op := range a.asm {
		word := encode(op)
		a.words = append(a.words, word)
		a.binary = append(a.binary, byte(word>>8), byte(word))
	}
}

// Binary returns the assembled ROM image.
func (a *Assembler) Binary() []byte {
	return a.binary
}

// StringifyBinary renders the assembled words as a space-joined hex dump.
func (a *Assembler) StringifyBinary() string {
	parts := make([]string, len(a.words))
	for i, w := range a.words {
		parts[i] = fmt.Sprintf("%04X", w)
	}
	return strings.Join(parts, " ")
}

func encode(op compiler.Opcode) uint16 {
	switch op.Kind {
	case compiler.LDRegByte:
		return 0x6000 | op.A<<8 | op.B
	case compiler.LDRegReg:
		return 0x8000 | op.A<<8 | op.B<<4 | 0x0
	case compiler.AddRegReg:
		return 0x8000 | op.A<<8 | op.B<<4 | 0x4
	case compiler.SubRegReg:
		return 0x8000 | op.A<<8 | op.B<<4 | 0x5
	case compiler.SERegReg:
		return 0x5000 | op.A<<8 | op.B<<4 | 0x0
	case compiler.SNERegReg:
		return 0x9000 | op.A<<8 | op.B<<4 | 0x0
	case compiler.LDFReg:
		return 0xF000 | op.A<<8 | 0x29
	case compiler.LDIReg:
		return 0xF000 | op.A<<8 | 0x55
	case compiler.LDRegI:
		return 0xF000 | op.A<<8 | 0x65
	case compiler.LDDTReg:
		return 0xF000 | op.A<<8 | 0x15
	case compiler.LDRegDT:
		return 0xF000 | op.A<<8 | 0x07
	case compiler.LDSTReg:
		return 0xF000 | op.A<<8 | 0x18
	case compiler.LDRegKey:
		return 0xF000 | op.A<<8 | 0x0A
	case compiler.LDIAddr:
		return 0xA000 | op.A
	case compiler.RNDRegByte:
		return 0xC000 | op.A<<8 | op.B
	case compiler.DRWRegRegNibble:
		return 0xD000 | op.A<<8 | op.B<<4 | op.C
	case compiler.JP:
		return 0x1000 | op.A
	case compiler.CALL:
		return 0x2000 | op.A
	case compiler.RET:
		return 0x00EE
	default:
		panic(fmt.Sprintf("assembler: unknown opcode kind %d", op.Kind))
	}
}
