package mappers

import (
	"errors"
	"testing"

	"github.com/tiagolobocastro/nescore/lib/common"
)

// makeINES builds a minimal iNES 1.0 image in memory.
func makeINES(prgUnits, chrUnits, flags6, flags7 byte) []byte {
	header := make([]byte, 16)
	copy(header, "NES\x1a")
	header[4] = prgUnits
	header[5] = chrUnits
	header[6] = flags6
	header[7] = flags7

	image := header
	image = append(image, make([]byte, int(prgUnits)*16384)...)
	image = append(image, make([]byte, int(chrUnits)*8192)...)
	return image
}

func Test_InvalidImages(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{name: "truncated header", image: []byte("NES\x1a\x01")},
		{name: "bad magic", image: makeINES(1, 1, 0, 0)[4:]},
		{name: "missing prg data", image: makeINES(1, 1, 0, 0)[:16+100]},
		{name: "unsupported mapper", image: makeINES(1, 1, 0x10, 0)}, // mapper 1
		{name: "unsupported console", image: makeINES(1, 1, 0, 0x01)},
		{name: "no prg rom units", image: makeINES(0, 1, 0, 0)},
	}

	for _, test := range tests {
		cart := Cartridge{}
		err := cart.InitData(test.image)
		if err == nil {
			t.Fatalf("[%s] loading should have failed", test.name)
		}
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("[%s] error %v does not wrap ErrInvalidFormat", test.name, err)
		}
	}
}

func Test_ParseNROM(t *testing.T) {
	image := makeINES(1, 1, 0x01, 0) // vertical mirroring
	image[16+0x10] = 0xAB

	cart := Cartridge{}
	if err := cart.InitData(image); err != nil {
		t.Fatalf("failed to load image: %v", err)
	}

	if cart.version != iNES1 {
		t.Errorf("version is %v, want iNES1", cart.version)
	}
	if cart.config.mapper != mapperNROM {
		t.Errorf("mapper is %v, want NROM", cart.config.mapper)
	}
	if cart.config.prgRomSize != 16384 || cart.config.chrRomSize != 8192 {
		t.Errorf("rom sizes are %v/%v, want 16384/8192", cart.config.prgRomSize, cart.config.chrRomSize)
	}
	if cart.Tables.Mirroring != common.VerticalMirroring {
		t.Errorf("mirroring is %v, want vertical", cart.Tables.Mirroring)
	}

	// a 16 KB prg is mirrored into both cpu banks
	if got := cart.Mapper.Read8(0x8010); got != 0xAB {
		t.Errorf("read at 0x8010 = %#02x, want 0xab", got)
	}
	if got := cart.Mapper.Read8(0xC010); got != 0xAB {
		t.Errorf("read at 0xC010 = %#02x, want 0xab", got)
	}
}

func Test_UNROMBankSwitch(t *testing.T) {
	image := makeINES(4, 0, 0x20, 0) // mapper 2, CHR RAM
	for bank := 0; bank < 4; bank++ {
		image[16+bank*0x4000] = uint8(bank + 1)
	}

	cart := Cartridge{}
	if err := cart.InitData(image); err != nil {
		t.Fatalf("failed to load image: %v", err)
	}

	if got := cart.Mapper.Read8(0x8000); got != 1 {
		t.Errorf("switchable bank read = %v, want bank 1 marker", got)
	}
	if got := cart.Mapper.Read8(0xC000); got != 4 {
		t.Errorf("fixed bank read = %v, want last bank marker", got)
	}

	cart.Mapper.Write8(0x8000, 2)
	if got := cart.Mapper.Read8(0x8000); got != 3 {
		t.Errorf("switchable bank read after select = %v, want bank 3 marker", got)
	}
	if got := cart.Mapper.Read8(0xC000); got != 4 {
		t.Errorf("fixed bank must not move, got %v", got)
	}

	// CHR RAM is writable
	cart.Mapper.Write8(0x1000, 0x55)
	if got := cart.Mapper.Read8(0x1000); got != 0x55 {
		t.Errorf("chr ram read back = %#02x, want 0x55", got)
	}
}

func Test_CNROMChrBankSwitch(t *testing.T) {
	image := makeINES(1, 2, 0x30, 0) // mapper 3
	image[16+16384] = 0x11
	image[16+16384+0x2000] = 0x22

	cart := Cartridge{}
	if err := cart.InitData(image); err != nil {
		t.Fatalf("failed to load image: %v", err)
	}

	if got := cart.Mapper.Read8(0x0000); got != 0x11 {
		t.Errorf("chr read = %#02x, want bank 0 marker", got)
	}
	cart.Mapper.Write8(0x8000, 1)
	if got := cart.Mapper.Read8(0x0000); got != 0x22 {
		t.Errorf("chr read after select = %#02x, want bank 1 marker", got)
	}
}

// stray writes into the rom windows are dropped, never fatal
func Test_RomWritesAreDropped(t *testing.T) {
	image := makeINES(1, 1, 0, 0)
	image[16+0x10] = 0xAB
	image[16+16384+0x20] = 0xCD

	cart := Cartridge{}
	if err := cart.InitData(image); err != nil {
		t.Fatalf("failed to load image: %v", err)
	}

	cart.Mapper.Write8(0x8010, 0x55)
	if got := cart.Mapper.Read8(0x8010); got != 0xAB {
		t.Errorf("prg rom write changed 0x8010 to %#02x", got)
	}

	cart.Mapper.Write8(0x0020, 0x55)
	if got := cart.Mapper.Read8(0x0020); got != 0xCD {
		t.Errorf("chr rom write changed 0x0020 to %#02x", got)
	}

	// unmapped cartridge space below prg ram
	cart.Mapper.Write8(0x4020, 0x55)
	cart.Mapper.Write8(0x5000, 0x55)
}

func Test_SoftLoadCartridge(t *testing.T) {
	cart := Cartridge{}
	if err := cart.Init(""); err != nil {
		t.Fatalf("failed to init empty cartridge: %v", err)
	}

	cart.WriteRom16(0xFFFC, 0x0600)
	if lo, hi := cart.Mapper.Read8(0xFFFC), cart.Mapper.Read8(0xFFFD); lo != 0x00 || hi != 0x06 {
		t.Errorf("reset vector reads back %02x%02x, want 0600", hi, lo)
	}
}
