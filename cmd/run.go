package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chip8lang/chippyvm/internal/audio"
	"github.com/chip8lang/chippyvm/internal/chip8"
	"github.com/chip8lang/chippyvm/internal/pixel"
	"github.com/spf13/cobra"
)

const refreshRate = 300

// runCmd runs a CHIP-8 ROM until the window is closed.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func runChippy(cmd *cobra.Command, args []string) {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	vm := chip8.New()
	vm.Load(rom)

	win, err := pixel.NewWindow("chippy")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	player, err := audio.NewPlayer("assets/beep.mp3")
	if err != nil {
		fmt.Printf("audio disabled: %v\n", err)
	} else {
		defer player.Close()
	}

	ticker := time.NewTicker(time.Second / refreshRate)
	defer ticker.Stop()

	for range ticker.C {
		if win.Closed() {
			fmt.Println("exit signal detected, gracefully shutting down...")
			return
		}

		vm.Tick()
		win.DrawGraphics(vm.Framebuffer())
		win.PollKeys(vm)
		if player != nil {
			player.Poll(vm)
		}
	}
}
