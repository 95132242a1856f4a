package ppu

import (
	"testing"

	"github.com/tiagolobocastro/nescore/lib/common"
)

// flat vram so the ppu can fetch without a cartridge
type testBus struct {
	mem [0x4000]uint8
}

func (b *testBus) Read8(addr uint16) uint8 {
	return b.mem[addr%0x4000]
}
func (b *testBus) Write8(addr uint16, val uint8) {
	b.mem[addr%0x4000] = val
}

type testInterrupts struct {
	raised  uint8
	cleared uint8
}

func (i *testInterrupts) Raise(flag uint8) {
	i.raised |= flag
}
func (i *testInterrupts) Clear(flag uint8) {
	i.cleared |= flag
	i.raised &= ^flag
}

func newTestPpu() (*Ppu, *testBus, *testInterrupts) {
	bus := &testBus{}
	ints := &testInterrupts{}
	framebuffer := &common.Framebuffer{}
	framebuffer.Init()

	ppu := &Ppu{}
	ppu.Init(bus, false, ints, framebuffer)
	return ppu, bus, ints
}

func putOAMSprite(p *Ppu, slot uint16, yPos, tIndex, attr, xPos uint8) {
	p.rOAM.Write8(slot*4+0, yPos)
	p.rOAM.Write8(slot*4+1, tIndex)
	p.rOAM.Write8(slot*4+2, attr)
	p.rOAM.Write8(slot*4+3, xPos)
}

func countLoaded(sprites []OamSprite) int {
	count := 0
	for i := range sprites {
		if sprites[i].id != 64 {
			count++
		}
	}
	return count
}

func Test_SpriteOverflow(t *testing.T) {
	p, _, _ := newTestPpu()

	// ten 8x8 sprites on the same scanline
	for i := uint16(0); i < 10; i++ {
		putOAMSprite(p, i, 50, uint8(i), 0, uint8(i*8))
	}
	p.scanLine = 55
	p.clearSecOAM()

	p.evalSprites()

	if p.regs[PPUSTATUS].Val&statusSpriteOverflow == 0 {
		t.Errorf("sprite overflow flag not set")
	}
	if got := countLoaded(p.sOAM[:]); got != 8 {
		t.Errorf("loaded %d sprites, the hardware limit is 8", got)
	}
}

func Test_SpriteOverflowNoLimit(t *testing.T) {
	p, _, _ := newTestPpu()
	p.SpriteLimit(false)

	for i := uint16(0); i < 10; i++ {
		putOAMSprite(p, i, 50, uint8(i), 0, uint8(i*8))
	}
	p.scanLine = 55
	p.clearSecOAM()

	p.evalSprites()

	// the flag still behaves like hardware even with the limit off
	if p.regs[PPUSTATUS].Val&statusSpriteOverflow == 0 {
		t.Errorf("sprite overflow flag not set")
	}
	if got := countLoaded(p.sOAM[:]); got != 10 {
		t.Errorf("loaded %d sprites, want all 10 with the limit off", got)
	}
}

// a full scanline of exactly eight sprites is not an overflow
func Test_SpriteOverflowExactlyEight(t *testing.T) {
	p, _, _ := newTestPpu()

	for i := uint16(0); i < 8; i++ {
		putOAMSprite(p, i, 50, uint8(i), 0, uint8(i*8))
	}
	p.scanLine = 55
	p.clearSecOAM()

	p.evalSprites()

	if p.regs[PPUSTATUS].Val&statusSpriteOverflow != 0 {
		t.Errorf("sprite overflow flag set with only 8 sprites in range")
	}
	if got := countLoaded(p.sOAM[:]); got != 8 {
		t.Errorf("loaded %d sprites, want 8", got)
	}
}

func Test_SpriteEvalRange(t *testing.T) {
	p, _, _ := newTestPpu()

	putOAMSprite(p, 0, 50, 1, 0, 0)  // in range
	putOAMSprite(p, 1, 58, 2, 0, 8)  // off by one below
	putOAMSprite(p, 2, 43, 3, 0, 16) // in range, last line
	p.scanLine = 50
	p.clearSecOAM()

	p.evalSprites()

	if got := countLoaded(p.sOAM[:]); got != 2 {
		t.Fatalf("loaded %d sprites, want 2", got)
	}
	if p.sOAM[0].id != 0 || p.sOAM[1].id != 2 {
		t.Errorf("loaded sprite ids %d,%d, want 0,2", p.sOAM[0].id, p.sOAM[1].id)
	}
	if p.regs[PPUSTATUS].Val&statusSpriteOverflow != 0 {
		t.Errorf("sprite overflow flag must not be set for 2 sprites")
	}
}

func Test_LoopyScrollWrites(t *testing.T) {
	p, _, _ := newTestPpu()

	// $2005 first write: coarse X and fine x
	p.Write8(0x2005, 0x7D) // 0b01111_101
	if p.tRAM.getCoarseX() != 0x0F {
		t.Errorf("coarse X = %#x, want 0x0f", p.tRAM.getCoarseX())
	}
	if p.xFine.Val != 0x5 {
		t.Errorf("fine x = %#x, want 0x5", p.xFine.Val)
	}
	if p.wToggle.Val != 1 {
		t.Errorf("w toggle = %d, want 1", p.wToggle.Val)
	}

	// $2005 second write: coarse Y and fine Y
	p.Write8(0x2005, 0x5E) // 0b01011_110
	if p.tRAM.getCoarseY() != 0x0B {
		t.Errorf("coarse Y = %#x, want 0x0b", p.tRAM.getCoarseY())
	}
	if p.tRAM.getFineY() != 0x6 {
		t.Errorf("fine Y = %#x, want 0x6", p.tRAM.getFineY())
	}
	if p.wToggle.Val != 0 {
		t.Errorf("w toggle = %d, want 0", p.wToggle.Val)
	}
}

func Test_LoopyAddrWrites(t *testing.T) {
	p, bus, _ := newTestPpu()

	p.Write8(0x2006, 0x23)
	p.Write8(0x2006, 0x45)
	if p.vRAM.Val != 0x2345 {
		t.Fatalf("vram addr = %#04x, want 0x2345", p.vRAM.Val)
	}

	p.Write8(0x2007, 0xAB)
	if bus.mem[0x2345] != 0xAB {
		t.Errorf("vram write did not land, mem[0x2345] = %#02x", bus.mem[0x2345])
	}
	if p.vRAM.Val != 0x2346 {
		t.Errorf("vram addr after write = %#04x, want 0x2346", p.vRAM.Val)
	}

	// PPUCTRL bit 2 switches the increment to 32
	p.Write8(0x2000, 0x04)
	p.Write8(0x2007, 0xCD)
	if p.vRAM.Val != 0x2346+32 {
		t.Errorf("vram addr after write = %#04x, want %#04x", p.vRAM.Val, 0x2346+32)
	}
}

func Test_PPUDataBufferedReads(t *testing.T) {
	p, bus, _ := newTestPpu()

	bus.mem[0x2345] = 0x11
	bus.mem[0x2346] = 0x22

	p.Write8(0x2006, 0x23)
	p.Write8(0x2006, 0x45)

	// first read returns the stale buffer, the data arrives a read late
	_ = p.Read8(0x2007)
	if got := p.Read8(0x2007); got != 0x11 {
		t.Errorf("second read = %#02x, want 0x11", got)
	}
	if got := p.Read8(0x2007); got != 0x22 {
		t.Errorf("third read = %#02x, want 0x22", got)
	}
}

func Test_StatusReadClearsLatches(t *testing.T) {
	p, _, ints := newTestPpu()

	p.regs[PPUSTATUS].Val |= statusVBlank
	p.wToggle.Val = 1
	p.interruptDelay = 2

	val := p.Read8(0x2002)
	if val&statusVBlank == 0 {
		t.Errorf("status read should return the vblank bit that was set")
	}
	if p.regs[PPUSTATUS].Val&statusVBlank != 0 {
		t.Errorf("vblank flag must clear on read")
	}
	if p.wToggle.Val != 0 {
		t.Errorf("w toggle must clear on read")
	}
	if p.interruptDelay != 0 {
		t.Errorf("a pending nmi must be swallowed by the status read")
	}
	if ints.cleared == 0 {
		t.Errorf("the nmi line must be released")
	}
}

func Test_VBlankTiming(t *testing.T) {
	p, _, ints := newTestPpu()
	p.Write8(0x2000, 0x80) // NMI on

	// run to scanline 241 dot 1 plus the nmi delay
	for p.scanLine != 241 || p.cycle != 1 {
		p.tick()
	}
	p.Ticks(2)

	if p.regs[PPUSTATUS].Val&statusVBlank == 0 {
		t.Fatalf("vblank flag not set at scanline 241")
	}
	if ints.raised == 0 {
		t.Fatalf("nmi not raised at vblank with PPUCTRL bit 7 on")
	}
	if p.Frames() != 1 {
		t.Fatalf("frame count = %d, want 1", p.Frames())
	}

	// and clear again on the pre-render line
	for p.scanLine != -1 || p.cycle != 2 {
		p.tick()
	}
	if p.regs[PPUSTATUS].Val&statusVBlank != 0 {
		t.Fatalf("vblank flag not cleared on the pre-render line")
	}
	if ints.raised != 0 {
		t.Fatalf("nmi line not released on the pre-render line")
	}
}

func Test_ReverseByte(t *testing.T) {
	for _, test := range []struct{ in, out uint8 }{
		{0x00, 0x00}, {0xFF, 0xFF}, {0x80, 0x01}, {0x01, 0x80}, {0xA5, 0xA5}, {0xC3, 0xC3}, {0x12, 0x48},
	} {
		if got := reverseByte(test.in); got != test.out {
			t.Errorf("reverseByte(%#02x) = %#02x, want %#02x", test.in, got, test.out)
		}
	}
}
