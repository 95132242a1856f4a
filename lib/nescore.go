package lib

import (
	"image/color"

	"github.com/tiagolobocastro/nescore/lib/console"
)

type NesCore interface {
	// Runs the emulator in real time (blocking)
	Run()
	// RunFrame advances emulation until the next completed frame and
	// returns its 256x240 pixels in row major order
	RunFrame() []color.RGBA
	// Requests to...
	Stop()
	Reset()
	// Save/Load the full state of the emulator
	// (excluding some settings like logging verbosity)
	Save()
	Load()
	// controller input
	Poke(controllerId uint8, button uint8, pressed bool)
	SetInput(controllerId uint8, buttons uint8)
}

func CartPath(path string) func(c *console.Console) error {
	return console.CartPath(path)
}

func CartData(raw []byte) func(c *console.Console) error {
	return console.CartData(raw)
}

func Verbose(verbose bool) func(c *console.Console) error {
	return console.Verbose(verbose)
}

func FreeRun(freeRun bool) func(c *console.Console) error {
	return console.FreeRun(freeRun)
}

func SpriteLimit(limit bool) func(c *console.Console) error {
	return console.SpriteLimit(limit)
}

func PalettePath(path string) func(c *console.Console) error {
	return console.PalettePath(path)
}

// Example usage:
// 	nes, err := nescore.NewNES(
//		nescore.CartPath("rom.nes"),
//		nescore.Verbose(false),
//	)
func NewNES(options ...func(c *console.Console) error) (NesCore, error) {
	nes := console.NewConsole()

	if err := nes.SetOptions(options...); err != nil {
		return nil, err
	}

	if err := nes.Init(); err != nil {
		return nil, err
	}
	return nes.Nes(), nil
}

// LoadCartridge boots a console from an in-memory iNES image.
func LoadCartridge(raw []byte, options ...func(c *console.Console) error) (NesCore, error) {
	return NewNES(append([]func(c *console.Console) error{CartData(raw)}, options...)...)
}
