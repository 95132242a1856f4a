package common

// BusInt is the read/write interface every bus master and device speaks.
type BusInt interface {
	Read8(uint16) uint8
	Write8(uint16, uint8)
}

// BusExtInt extends BusInt with the 16 bit helpers the cpu wants.
type BusExtInt interface {
	Read8(uint16) uint8
	Write8(uint16, uint8)
	Read16(uint16) uint16
	Write16(uint16, uint16)
}

// Bus holds one address map per master (cpu, ppu, dma).
// Each master decodes the same 16 bit space its own way, which is how the
// console routes cpu accesses to ram/ppu-regs/cartridge and ppu accesses to
// pattern/nametable/palette memory. Every access funnels through a map;
// no component reaches into another's backing store.
type Bus struct {
	maps []BusMapInt
}

// BusMapInt is one master's view of the bus.
type BusMapInt struct {
	BusInt
}

func (b *BusMapInt) Read8(addr uint16) uint8 {
	return b.BusInt.Read8(addr)
}

// little endian
func (b *BusMapInt) Read16(addr uint16) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}

func (b *BusMapInt) Write8(addr uint16, val uint8) {
	b.BusInt.Write8(addr, val)
}
func (b *BusMapInt) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val&0xFF))
	b.Write8(addr+1, uint8((val&0xFF00)>>8))
}

func (b *Bus) Init(nMaps int) {
	b.maps = make([]BusMapInt, nMaps)
}

func (b *Bus) Connect(mapId int, busInt BusInt) {
	b.maps[mapId].BusInt = busInt
}

func (b *Bus) GetBusInt(mapId int) *BusMapInt {
	return &b.maps[mapId]
}
