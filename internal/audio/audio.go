// Package audio plays a beep each time a chip8.VM's sound timer becomes
// non-zero. The VM itself has no notion of audio devices; this package
// is the host-side collaborator the design notes describe as reading
// sound_timer and deciding what to do.
package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/chip8lang/chippyvm/internal/chip8"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Player decodes a beep sample once and replays it every time it
// observes the sound timer transition from zero to non-zero.
type Player struct {
	streamer  beep.StreamSeekCloser
	format    beep.Format
	wasSilent bool
}

// NewPlayer decodes the mp3 at path and initializes the speaker. The
// returned Player's Close should be called when the host is done with
// it to release the decoded stream.
func NewPlayer(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: opening %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decoding %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("audio: initializing speaker: %w", err)
	}

	return &Player{streamer: streamer, format: format, wasSilent: true}, nil
}

// Poll inspects vm's sound timer and starts playback exactly once per
// rising edge, so a ROM that holds the timer nonzero across many ticks
// doesn't retrigger the beep every tick. Call it once per frame.
func (p *Player) Poll(vm *chip8.VM) {
	silent := vm.SoundTimer() == 0
	if !silent && p.wasSilent {
		speaker.Lock()
		err := p.streamer.Seek(0)
		speaker.Unlock()
		if err == nil {
			speaker.Play(p.streamer)
		}
	}
	p.wasSilent = silent
}

// Close releases the decoded audio stream.
func (p *Player) Close() error {
	return p.streamer.Close()
}
