package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/chip8lang/chippyvm/internal/chip8"
	"github.com/spf13/cobra"
)

// disasmCmd loads a ROM image and prints its disassembly: one mnemonic
// per two-byte address from 0x200 to the end of RAM, skipping words that
// decode to no known instruction. Zero-filled memory decodes as CLS and
// is printed too.
var disasmCmd = &cobra.Command{
	Use:   "disasm `path/to/rom`",
	Short: "disassemble a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	vm := chip8.New()
	vm.Load(rom)
	vm.Disassemble()

	addrs := make([]uint16, 0, len(vm.DisassemblyMap()))
	for addr := range vm.DisassemblyMap() {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	mnemonics := vm.DisassemblyMap()
	for _, addr := range addrs {
		if mnemonics[addr] == "null" {
			continue
		}
		fmt.Printf("%04X  %s\n", addr, mnemonics[addr])
	}
}
