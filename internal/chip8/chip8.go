// Package chip8 is a faithful interpreter for the classical (COSMAC VIP)
// CHIP-8 instruction set: 16 general-purpose registers, a 16-level call
// stack, 4 KiB of RAM, a 64x32 monochrome framebuffer, and the delay and
// sound timers. It executes one fetch/decode/execute cycle per Tick; the
// host decides how often to call it, how to render the framebuffer, and
// what to do when the sound timer is non-zero.
//
//		System memory map
// 		+---------------+= 0xFFF (4095) End Chip-8 RAM
// 		|               |
// 		| 0x200 to 0xFFF|
// 		|     Chip-8    |
// 		| Program / Data|
// 		|     Space     |
// 		|               |
// 		+---------------+= 0x200 (512) Start of most Chip-8 programs
// 		| 0x000 to 0x1FF|
// 		| Font data here|
// 		+---------------+= 0x000 (0) Begin Chip-8 RAM
package chip8

import (
	"fmt"
)

const (
	// VideoWidth is the framebuffer width in pixels.
	VideoWidth = 64
	// VideoHeight is the framebuffer height in pixels.
	VideoHeight = 32
	// romStart is the RAM address every program image is loaded at.
	romStart = 0x200
	// memSize is the total addressable RAM.
	memSize = 4096
	// maxROMSize is the largest program image that fits between romStart
	// and the end of RAM.
	maxROMSize = memSize - romStart
)

// State is the entire mutable state of a running CHIP-8 program, held as
// a single aggregate so that save/restore is one assignment.
type State struct {
	Opcode uint16
	V      [16]byte
	I      uint16
	PC     uint16

	Framebuffer [VideoWidth * VideoHeight]uint32

	DelayTimer byte
	SoundTimer byte

	Stack [16]uint16
	SP    byte

	Keys [16]byte

	RAM [memSize]byte
}

// instruction pairs the operation a dispatch slot performs with the
// disassembly string it renders as; both are driven off the same table
// so the disassembler can never drift from what Tick actually executes.
type instruction struct {
	operation func(vm *VM)
	disasm    func(vm *VM) string
}

// VM is a CHIP-8 virtual machine. It owns no window, audio device, or
// clock of its own: the host calls Tick at whatever rate it chooses,
// reads Framebuffer/SoundTimer to drive presentation, and calls SetKey
// to report input.
type VM struct {
	state      State
	savedState State

	disasmOpcode uint16
	disasmMap    map[uint16]string

	opcodes  [16]instruction
	opcodes0 [0x10]instruction
	opcodes8 [0x10]instruction
	opcodesE [0x10]instruction
	opcodesF [0x100]instruction
}

// New creates a VM with its dispatch tables wired up and its memory
// zeroed. Call Load before Tick.
func New() *VM {
	vm := &VM{
		disasmMap: make(map[uint16]string),
	}
	vm.buildDispatchTables()
	vm.Reset()
	return vm
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 { return vm.state.PC }

// I returns the current index register.
func (vm *VM) I() uint16 { return vm.state.I }

// SP returns the current stack pointer.
func (vm *VM) SP() byte { return vm.state.SP }

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() byte { return vm.state.DelayTimer }

// SoundTimer returns the current sound timer value. The host should
// produce sound for as long as this is non-zero.
func (vm *VM) SoundTimer() byte { return vm.state.SoundTimer }

// V returns a copy of the general-purpose register file.
func (vm *VM) V() [16]byte { return vm.state.V }

// RAM returns a copy of the full address space.
func (vm *VM) RAM() [memSize]byte { return vm.state.RAM }

// Framebuffer returns a copy of the pixel buffer. Each element is
// 0x00000000 (off) or 0xFFFFFFFF (on).
func (vm *VM) Framebuffer() [VideoWidth * VideoHeight]uint32 { return vm.state.Framebuffer }

// VideoWidth returns the framebuffer width in pixels.
func (vm *VM) VideoWidth() int { return VideoWidth }

// VideoHeight returns the framebuffer height in pixels.
func (vm *VM) VideoHeight() int { return VideoHeight }

// Reset zeroes all VM state, sets PC to the ROM start address, and
// copies the built-in fontset into RAM at address 0.
func (vm *VM) Reset() {
	vm.state = State{PC: romStart}
	copy(vm.state.RAM[:len(fontset)], fontset[:])
}

// Load resets the VM and installs program at 0x200. It panics if the
// program does not fit in the address space available to it.
func (vm *VM) Load(program []byte) {
	if len(program) > maxROMSize {
		panic(fmt.Sprintf("chip8: rom too large: %d bytes, max %d", len(program), maxROMSize))
	}
	vm.Reset()
	copy(vm.state.RAM[romStart:], program)
}

// SetKey sets the pressed state of key i (0-15); out-of-range panics,
// since it can only be called with a value the caller already validated
// against its own keymap.
func (vm *VM) SetKey(i int, pressed bool) {
	if i < 0 || i > 15 {
		panic(fmt.Sprintf("chip8: key index out of range: %d", i))
	}
	if pressed {
		vm.state.Keys[i] = 1
	} else {
		vm.state.Keys[i] = 0
	}
}

// SaveState snapshots the current state. Arrays are value types in Go,
// so this is a deep copy with no aliasing back to the live state.
func (vm *VM) SaveState() { vm.savedState = vm.state }

// LoadState restores the state captured by the most recent SaveState.
func (vm *VM) LoadState() { vm.state = vm.savedState }

// DisassemblyMap returns the address-to-mnemonic map produced by the
// most recent call to Disassemble.
func (vm *VM) DisassemblyMap() map[uint16]string { return vm.disasmMap }

func (vm *VM) read(addr uint16) byte {
	if int(addr) >= memSize {
		panic(fmt.Sprintf("chip8: memory read out of range: %#x", addr))
	}
	return vm.state.RAM[addr]
}

func (vm *VM) write(addr uint16, b byte) {
	if int(addr) >= memSize {
		panic(fmt.Sprintf("chip8: memory write out of range: %#x", addr))
	}
	vm.state.RAM[addr] = b
}

// Tick runs one fetch/decode/execute cycle: it reads the instruction at
// PC, advances PC past it, dispatches on the top nibble, and then
// decrements the delay and sound timers if they are non-zero. The host
// is responsible for calling this at CHIP-8's nominal 60Hz cadence, or
// faster with its own instructions-per-frame throttle.
func (vm *VM) Tick() {
	vm.state.Opcode = uint16(vm.read(vm.state.PC))<<8 | uint16(vm.read(vm.state.PC+1))
	vm.state.PC += 2

	vm.opcodes[(vm.state.Opcode&0xF000)>>12].operation(vm)

	if vm.state.DelayTimer > 0 {
		vm.state.DelayTimer--
	}
	if vm.state.SoundTimer > 0 {
		vm.state.SoundTimer--
	}
}

// Disassemble walks the full program address space from 0x200 to the
// end of RAM and renders every instruction word as a mnemonic string,
// reusing the exact dispatch table Tick executes against so the two
// can never disagree about what an opcode means.
func (vm *VM) Disassemble() {
	vm.disasmMap = make(map[uint16]string)

	for addr := uint32(romStart); addr+1 < memSize; addr += 2 {
		vm.disasmOpcode = uint16(vm.read(uint16(addr)))<<8 | uint16(vm.read(uint16(addr)+1))
		mnemonic := vm.opcodes[(vm.disasmOpcode&0xF000)>>12].disasm(vm)
		vm.disasmMap[uint16(addr)] = mnemonic
	}
}
