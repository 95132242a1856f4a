package lib

import (
	"errors"
	"testing"

	"github.com/tiagolobocastro/nescore/lib/mappers"
)

// the smallest bootable NROM image: the reset vector points at an
// infinite JMP loop at $8000
func makeTestRom() []byte {
	header := make([]byte, 16)
	copy(header, "NES\x1a")
	header[4] = 1 // 16 KB PRG
	header[5] = 1 // 8 KB CHR

	prg := make([]byte, 16384)
	prg[0] = 0x4C // JMP $8000
	prg[1] = 0x00
	prg[2] = 0x80
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80

	image := header
	image = append(image, prg...)
	image = append(image, make([]byte, 8192)...)
	return image
}

func Test_LoadCartridge(t *testing.T) {
	nes, err := LoadCartridge(makeTestRom())
	if err != nil {
		t.Fatalf("failed to boot the image: %v", err)
	}

	for i := 0; i < 3; i++ {
		frame := nes.RunFrame()
		if len(frame) != 256*240 {
			t.Fatalf("frame %d has %d pixels, want %d", i, len(frame), 256*240)
		}
	}
}

func Test_LoadCartridgeInvalid(t *testing.T) {
	_, err := LoadCartridge([]byte("not an ines image"))
	if err == nil {
		t.Fatalf("booting garbage should have failed")
	}
	if !errors.Is(err, mappers.ErrInvalidFormat) {
		t.Fatalf("error %v does not wrap ErrInvalidFormat", err)
	}
}
