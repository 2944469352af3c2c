package cmd

import (
	"fmt"
	"os"

	"github.com/chip8lang/chippyvm/internal/assembler"
	"github.com/chip8lang/chippyvm/internal/compiler"
	"github.com/chip8lang/chippyvm/internal/lexer"
	"github.com/spf13/cobra"
)

var compileOut string

// compileCmd lexes, compiles, and assembles a source file into a raw
// CHIP-8 ROM image.
var compileCmd = &cobra.Command{
	Use:   "compile `path/to/source`",
	Short: "compile a chippy source file into a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "a.ch8", "path to write the assembled ROM to")
}

func runCompile(cmd *cobra.Command, args []string) {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	l := lexer.New(string(src))
	l.Lex()

	c := compiler.New(l.Tokens())
	asm, _, err := c.Compile()
	if err != nil {
		fmt.Printf("compile error: %v\n", err)
		os.Exit(1)
	}

	a := assembler.New(asm)
	a.Assemble()

	if err := os.WriteFile(compileOut, a.Binary(), 0o644); err != nil {
		fmt.Printf("error writing %s: %v\n", compileOut, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d bytes to %s\n", len(a.Binary()), compileOut)
}
