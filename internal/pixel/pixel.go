// Package pixel renders a chip8.VM's framebuffer to a window and turns
// its key events into chip8.VM.SetKey calls. It is the only piece of
// this toolchain that touches a GPU or an OS window; the VM itself
// knows nothing about presentation.
package pixel

import (
	"fmt"

	"github.com/chip8lang/chippyvm/internal/chip8"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  float64 = 1024
	screenHeight float64 = 768
)

// keyMap maps a CHIP-8 hex keypad value to the host key that triggers
// it, following the de-facto layout most CHIP-8 ROMs assume:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keyMap = map[uint16]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
	0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
	0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
	0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
	0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window embeds a pixelgl window and the keymap used to translate host
// keyboard events into CHIP-8 keypad indices.
type Window struct {
	*pixelgl.Window
	KeyMap map[uint16]pixelgl.Button
}

// NewWindow creates and configures the emulator's display window.
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	return &Window{Window: w, KeyMap: keyMap}, nil
}

// PollKeys checks every mapped host key against its last-frame state
// and forwards presses/releases to vm.SetKey. Call this once per frame
// before reading vm's next tick.
func (w *Window) PollKeys(vm *chip8.VM) {
	for chip8Key, hostKey := range w.KeyMap {
		switch {
		case w.JustPressed(hostKey):
			vm.SetKey(int(chip8Key), true)
		case w.JustReleased(hostKey):
			vm.SetKey(int(chip8Key), false)
		}
	}
}

// DrawGraphics renders one CHIP-8 framebuffer frame, scaling the
// 64x32 logical pixel grid up to fill the window.
func (w *Window) DrawGraphics(fb [chip8.VideoWidth * chip8.VideoHeight]uint32) {
	w.Clear(colornames.Black)

	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)
	cellWidth, cellHeight := screenWidth/chip8.VideoWidth, screenHeight/chip8.VideoHeight

	for row := 0; row < chip8.VideoHeight; row++ {
		for col := 0; col < chip8.VideoWidth; col++ {
			if fb[row*chip8.VideoWidth+col] == 0 {
				continue
			}
			// Framebuffer row 0 is the top of the screen; pixel.Picture
			// coordinates grow upward, so flip vertically on the way out.
			flippedRow := chip8.VideoHeight - 1 - row
			imDraw.Push(pixel.V(cellWidth*float64(col), cellHeight*float64(flippedRow)))
			imDraw.Push(pixel.V(cellWidth*float64(col)+cellWidth, cellHeight*float64(flippedRow)+cellHeight))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}
