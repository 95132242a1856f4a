package mappers

import (
	"github.com/tiagolobocastro/nescore/lib/common"
)

// https://wiki.nesdev.com/w/index.php/NROM
//
// CPU $6000-$7FFF: PRG RAM, mirrored as necessary to fill the 8 KiB window
// CPU $8000-$BFFF: First 16 KB of ROM
// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128)
type MapperNROM struct {
	cart *Cartridge
}

func (m *MapperNROM) Init() {}
func (m *MapperNROM) Tick() {}

func (m *MapperNROM) Read8(addr uint16) uint8 {
	switch {
	// PPU pattern tables sit in CHR
	case addr < 0x2000:
		return m.cart.chr.Read8(addr)
	case addr < 0x8000:
		return m.cart.prgRam.Read8(addr % 0x2000)
	default:
		// the modulo folds both 16KB mirroring and the 64KB soft load rom
		return m.cart.prgRom.Read8(uint16(int(addr) % m.cart.prgRom.Size()))
	}
}

func (m *MapperNROM) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		if m.cart.chr.Writable() {
			m.cart.chr.Write8(addr, val)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8(addr%0x2000, val)
	default:
		// nrom has no registers, rom writes are dropped
	}
}

// nrom has no mapper state of its own
func (m *MapperNROM) Serialise(common.Serialiser) error   { return nil }
func (m *MapperNROM) DeSerialise(common.Serialiser) error { return nil }
