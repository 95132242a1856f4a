package console

import (
	"log"
)

// CPU Mapping Table
// Address range 	Size 	Device
// $0000-$07FF 		$0800 	2KB internal RAM
// $0800-$1FFF 		$1800 	Mirrors of $0000-$07FF
// $2000-$2007 		$0008 	NES PPU registers
// $2008-$3FFF 		$1FF8 	Mirrors of $2000-2007 (repeats every 8 bytes)
// $4000-$4017 		$0018 	APU and I/O registers
// $4018-$401F 		$0008 	normally disabled APU and I/O functionality
// $4020-$FFFF 		$BFE0 	Cartridge space: PRG ROM, PRG RAM, mapper registers
type cpuMapper struct {
	*nes
}

func (m *cpuMapper) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.nes.ram.Read8(addr % 2048)

	case addr < 0x4000:
		return m.nes.ppu.Read8(addr)

	case addr < 0x4016:
		// apu and I/O registers, nothing to read without an apu
		return 0
	case addr < 0x4018:
		// Controllers
		return m.nes.ctrl.Read8(addr)
	case addr < 0x4020:
		// normally disabled apu and I/O functionality
		return 0
	case addr < 0x6000:
		// open bus on most boards
		return 0
	default:
		return m.nes.cart.Mapper.Read8(addr)
	}
}

func (m *cpuMapper) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.nes.ram.Write8(addr%2048, val)

	case addr < 0x4000:
		m.nes.ppu.Write8(addr, val)

	case addr == 0x4014:
		m.nes.dma.Write8(addr, val)

	case addr < 0x4014, addr == 0x4015:
		// apu registers, dropped

	case addr < 0x4018:
		m.nes.ctrl.Write8(addr, val)

	case addr < 0x6000:
		log.Printf("write to address 0x%04x not implemented", addr)
	default:
		m.nes.cart.Mapper.Write8(addr, val)
	}
}

// DMA
// handles writes to the OAMDMA register by reading from the cpu space
// and copying into the ppu OAMDATA register
type dmaMapper struct {
	*nes
}

func (m *dmaMapper) Read8(addr uint16) uint8 {
	// read from the cpu
	return m.nes.cpu.Read8(addr)
}

func (m *dmaMapper) Write8(addr uint16, val uint8) {
	// and copy to the ppu
	m.nes.ppu.Write8(addr, val)
}

// PPU Mapping Table
// Address range 	Size 	Device
// $0000-$1FFF 		$2000 	Pattern tables (cartridge CHR)
// $2000-$2FFF 		$1000 	Nametables (vram, mirroring set by the cartridge)
// $3000-$3EFF 		$0F00 	Mirrors of $2000-$2EFF
// $3F00-$3FFF 		$0100 	Palette RAM indexes and their mirrors
type ppuMapper struct {
	*nes
}

func (m *ppuMapper) Read8(addr uint16) uint8 {
	switch {
	// normally mapped by the cartridge to CHR-ROM or CHR-RAM
	case addr < 0x2000:
		return m.nes.cart.Mapper.Read8(addr)
	// normally mapped to the internal vRAM but it can be remapped!
	case addr < 0x3000:
		return m.nes.cart.Tables.Read8(addr)
	case addr < 0x3F00:
		return m.nes.cart.Tables.Read8(addr - 0x1000)

	// internal palette control - not configurable
	case addr < 0x4000:
		return m.nes.ppu.Palette.Read8(addr % 32)
	}
	return 0
}

func (m *ppuMapper) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.nes.cart.Mapper.Write8(addr, val)
	case addr < 0x3000:
		m.nes.cart.Tables.Write8(addr, val)
	case addr < 0x3F00:
		m.nes.cart.Tables.Write8(addr-0x1000, val)

	// internal palette control
	case addr < 0x4000:
		m.nes.ppu.Palette.Write8(addr%32, val)
	}
}
