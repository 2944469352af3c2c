package main

import (
	"github.com/chip8lang/chippyvm/cmd"
	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl requires its windowing calls to happen on the OS's main
	// thread; routing every subcommand through pixelgl.Run keeps that
	// true even for the ones (compile, disasm, version) that never open
	// a window.
	pixelgl.Run(cmd.Execute)
}
