package mappers

import (
	"github.com/tiagolobocastro/nescore/lib/common"
)

// https://wiki.nesdev.com/w/index.php/CNROM
//
// PRG behaves like NROM, CHR is a switchable 8 KB bank.
type MapperCNROM struct {
	cart *Cartridge

	chrBank uint32
}

func (m *MapperCNROM) Init() {
	m.chrBank = 0
}

func (m *MapperCNROM) Tick() {}

func (m *MapperCNROM) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.cart.chr.Read8w(m.chrBank*0x2000 + uint32(addr))
	case addr < 0x8000:
		return m.cart.prgRam.Read8(addr % 0x2000)
	default:
		return m.cart.prgRom.Read8(uint16(int(addr) % m.cart.prgRom.Size()))
	}
}

func (m *MapperCNROM) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.prgRam.Write8(addr%0x2000, val)
	case addr >= 0x8000:
		// 7  bit  0
		// ---- ----
		// cccc ccCC
		//        ++- Select 8 KB CHR ROM bank (only 2 bits on stock boards)
		banks := uint32(m.cart.chr.Size() / 0x2000)
		m.chrBank = uint32(val&0x3) % banks
	default:
		// CHR-ROM and unmapped writes are dropped
	}
}

func (m *MapperCNROM) Serialise(s common.Serialiser) error {
	return s.Serialise(m.chrBank)
}
func (m *MapperCNROM) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&m.chrBank)
}
