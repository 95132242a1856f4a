package mappers

import (
	"github.com/tiagolobocastro/nescore/lib/common"
)

// https://wiki.nesdev.com/w/index.php/UxROM
//
// CPU $8000-$BFFF: 16 KB switchable PRG ROM bank
// CPU $C000-$FFFF: 16 KB PRG ROM bank, fixed to the last bank
type MapperUNROM struct {
	cart *Cartridge

	bank     uint32
	lastBank uint32
}

func (m *MapperUNROM) Init() {
	m.bank = 0
	m.lastBank = uint32(m.cart.prgRom.Size()/0x4000) - 1
}

func (m *MapperUNROM) Tick() {}

func (m *MapperUNROM) Read8(addr uint16) uint8 {
	switch {
	// CHR RAM on most UNROM boards
	case addr < 0x2000:
		return m.cart.chr.Read8(addr)
	case addr < 0x8000:
		return m.cart.prgRam.Read8(addr % 0x2000)
	case addr < 0xC000:
		return m.cart.prgRom.Read8w(m.bank*0x4000 + uint32(addr-0x8000))
	default:
		return m.cart.prgRom.Read8w(m.lastBank*0x4000 + uint32(addr-0xC000))
	}
}

func (m *MapperUNROM) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		if m.cart.chr.Writable() {
			m.cart.chr.Write8(addr, val)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8(addr%0x2000, val)
	case addr >= 0x8000:
		// 7  bit  0
		// ---- ----
		// xxxx pPPP
		//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
		m.bank = uint32(val&0x0F) % (m.lastBank + 1)
	default:
		// unmapped, dropped
	}
}

func (m *MapperUNROM) Serialise(s common.Serialiser) error {
	return s.Serialise(m.bank, m.lastBank)
}
func (m *MapperUNROM) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&m.bank, &m.lastBank)
}
