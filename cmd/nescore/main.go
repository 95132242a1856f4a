package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tiagolobocastro/nescore/lib/console"
	"github.com/tiagolobocastro/nescore/lib/ui"
)

func validINesPath(romPath string) error {
	stat, err := os.Stat(romPath)
	if err != nil {
		return fmt.Errorf("iNes Rom file path (%q) does not exist or is not valid", romPath)
	} else if stat.IsDir() {
		return fmt.Errorf("iNes Rom file path (%q) points to a directory", romPath)
	}
	return nil
}

func main() {
	romPath := flag.String("rom", "", "path to the iNes Rom file to run")
	verbose := flag.Bool("verbose", false, "log every executed instruction")
	freeRun := flag.Bool("freerun", false, "run as fast as possible rather than in real time")
	spriteLimit := flag.Bool("spritelimit", true, "enforce the 8 sprites per scanline limit")
	palette := flag.String("palette", "", "path to a 64 entry rgb .pal file to use instead of the built in palette")
	flag.Parse()

	if err := validINesPath(*romPath); err != nil {
		fmt.Printf("Failed to start NesCore, err=%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting NesCore with iNes Rom file: %s\n", *romPath)

	cons := console.NewConsole()
	if err := cons.SetOptions(
		console.CartPath(*romPath),
		console.Verbose(*verbose),
		console.FreeRun(*freeRun),
		console.SpriteLimit(*spriteLimit),
		console.PalettePath(*palette),
	); err != nil {
		fmt.Printf("Failed to configure NesCore, err=%v\n", err)
		os.Exit(1)
	}
	if err := cons.Init(); err != nil {
		fmt.Printf("Failed to start NesCore, err=%v\n", err)
		os.Exit(1)
	}

	nes := cons.Nes()

	screen := ui.Screen{}
	screen.Init(nes, nes.Framebuffer())
	screen.Run()

	nes.Run()
}
