package ppu

import (
	"image/color"

	"github.com/tiagolobocastro/nescore/lib/common"
	"github.com/tiagolobocastro/nescore/lib/cpu"
)

// http://wiki.nesdev.com/w/index.php/PPU_OAM
type OamSprite struct {
	// Y position of top of sprite
	yPos uint8
	// Tile index number
	tIndex uint8
	// Sprite Attributes
	attributes uint8
	// X position of left side of sprite
	xPos uint8

	// sprite id, 64 marks an empty slot
	id uint8

	// pattern row data
	msbIndex uint8
	lsbIndex uint8
}

type Ppu struct {
	common.BusInt

	clock    int
	cycle    int
	scanLine int
	verbose  bool

	// cpu mapped registers
	regs [8]common.Register

	// internal registers: http://wiki.nesdev.com/w/index.php/PPU_scrolling
	vRAM    loopyRegister   // Current VRAM address (15 bits)
	tRAM    loopyRegister   // Temporary VRAM address, the top left onscreen tile
	xFine   common.Register // Fine X scroll (3 bits)
	wToggle common.Register // First or second write toggle (1 bit)

	// background pipeline
	nametableEntry uint8
	attributeEntry uint8
	lowOrderByte   uint8
	highOrderByte  uint8
	rowShifter     uint64

	vRAMBuffer uint8

	// sprites
	rOAM common.Ram
	// sprite output units loaded from the secondary OAM
	pOAM [64]OamSprite
	// the secondary OAM is cleared every visible scanline and refilled by
	// a linear search of the primary OAM for sprites in range of the next
	// scanline (the sprite evaluation phase)
	sOAM [64]OamSprite

	// per dot composition state
	bgIndex    uint8
	bgPalette  uint8
	fgIndex    uint8
	fgPalette  uint8
	fgPriority bool

	Palette ppuPalette

	frameBuffer *common.Framebuffer

	interrupts     common.Interrupts
	interruptDelay uint8
	nmiLinePulled  bool

	oddFrame bool

	maxSprites  uint8
	spriteLimit bool
}

func (p *Ppu) Init(busInt common.BusInt, verbose bool, interrupts common.Interrupts, framebuffer *common.Framebuffer) {
	p.verbose = verbose
	p.BusInt = busInt
	p.interrupts = interrupts
	p.frameBuffer = framebuffer

	p.clock = 0
	p.cycle = 0
	p.scanLine = -1
	p.interruptDelay = 0
	p.nmiLinePulled = false
	p.oddFrame = false

	p.rOAM.Initf(256, 0xfe)
	p.Palette.init()

	if p.maxSprites == 0 {
		p.SpriteLimit(true)
	}

	p.initRegisters()
	p.clearOAM()
}

func (p *Ppu) Reset() {
	p.Init(p.BusInt, p.verbose, p.interrupts, p.frameBuffer)
}

// SpriteLimit toggles the 8 sprites per scanline limit. The real ppu always
// enforces it, turning it off trades accuracy for less flicker.
func (p *Ppu) SpriteLimit(limit bool) {
	p.spriteLimit = limit
	if limit {
		p.maxSprites = 8
	} else {
		p.maxSprites = 64
	}
}

func (p *Ppu) Frames() int {
	return p.frameBuffer.Frames
}

func (p *Ppu) Clock() int {
	return p.clock
}

func (p *Ppu) startVBlank() {
	p.frameBuffer.Swap()

	p.regs[PPUSTATUS].Val |= statusVBlank
	if p.getNMIVertical() == 1 {
		// the cpu samples the interrupt line slightly behind the ppu, a
		// PPUSTATUS read in that window can still swallow the nmi
		p.interruptDelay = 2
	}
}

func (p *Ppu) stopVBlank() {
	p.regs[PPUSTATUS].Val &= 0x7F
	p.regs[PPUSTATUS].Clr(statusSpriteOverflow | statusSprite0Hit)
	p.interrupts.Clear(cpu.CpuIntNMI)
	p.nmiLinePulled = false
	p.interruptDelay = 0
}

func (p *Ppu) updateShifter() {
	// palette and pixel index
	// a a i i
	p.rowShifter <<= 4
}

// 1 row of aaii*8
func (p *Ppu) buildBgPixelRow() {
	attr := (p.attributeEntry & 0x3) << 2
	for i := uint(0); i < 8; i++ {
		pixel := uint64(attr | (p.highOrderByte>>6)&2 | (p.lowOrderByte>>7)&1)
		p.rowShifter |= pixel << ((7 - i) * 4)
		p.highOrderByte <<= 1
		p.lowOrderByte <<= 1
	}
}

func (p *Ppu) getBgPixel() uint8 {
	return uint8(p.rowShifter >> (32 + ((7 - p.xFine.Val) * 4)))
}

func (p *Ppu) tick() {
	p.clock++
	p.exec()
}

func (p *Ppu) Ticks(nTicks int) {
	for i := 0; i < nTicks; i++ {
		p.tick()
	}
}

func (p *Ppu) exec() {
	// setup values required for the draw decision
	x := uint8(p.cycle) - 1
	y := uint8(p.scanLine)
	p.bgIndex = 0
	p.bgPalette = 0
	p.fgIndex = 0
	p.fgPalette = 0
	p.fgPriority = false

	// http://wiki.nesdev.com/w/images/d/d1/Ntsc_timing.png
	visibleFrame := p.scanLine >= 0 && p.scanLine < 240
	preRenderLn := p.scanLine == -1
	vBlankLn := p.scanLine == 241
	renderFrame := visibleFrame || preRenderLn
	copyVertCycle := p.cycle >= 280 && p.cycle <= 304
	copyHoriCycle := p.cycle == 257
	incVert := p.cycle == 256

	visibleCycle := p.cycle >= 1 && p.cycle <= 256
	bgTileFetch := visibleCycle || (p.cycle >= 321 && p.cycle <= 336)

	rendering := p.showBackground() || p.showSprites()

	if rendering {
		if renderFrame && bgTileFetch {

			if visibleFrame && visibleCycle && p.showBackground() {
				if p.showBackgroundLeft() || x > 7 {
					bgPix := p.getBgPixel()
					p.bgIndex = bgPix & 0x3
					p.bgPalette = (bgPix >> 2) & 0x3
				}
			}

			p.updateShifter()
			switch p.cycle % 8 {
			case 1:
				p.nametableEntry = p.BusInt.Read8(0x2000 | (p.vRAM.Val & 0x0FFF))
			case 3:
				//  NN 1111 YYY XXX
				//  || |||| ||| +++-- high 3 bits of coarse X (X/4)
				//  || |||| +++------ high 3 bits of coarse Y (Y/4)
				//  || ++++---------- attribute offset (960 bytes)
				//  ++--------------- nametable select
				vv := 0x2000 | 0x03C0 | p.vRAM.getNameTables()<<10 | ((p.vRAM.getCoarseY() >> 2) << 3) | (p.vRAM.getCoarseX() >> 2)

				p.attributeEntry = p.BusInt.Read8(vv)

				// BR BL TR TL
				// shift to find the right half nibble
				if (p.vRAM.getCoarseY() & 0x02) != 0 {
					p.attributeEntry >>= 4
				}
				if (p.vRAM.getCoarseX() & 0x02) != 0 {
					p.attributeEntry >>= 2
				}
			case 5:
				p.lowOrderByte = p.BusInt.Read8(p.getBackgroundTable() | uint16(p.nametableEntry)<<4 | p.vRAM.getFineY())
			case 7:
				p.highOrderByte = p.BusInt.Read8(p.getBackgroundTable() | uint16(p.nametableEntry)<<4 | p.vRAM.getFineY() | 8)
			case 0:
				p.buildBgPixelRow()

				// Increment Horizontal(v)
				if p.vRAM.getCoarseX() == 31 {
					p.vRAM.setCoarseX(0)
					p.vRAM.flipNameTableH()
				} else {
					p.vRAM.setCoarseX(p.vRAM.getCoarseX() + 1)
				}
			}
		}

		if renderFrame {
			if incVert {
				// Increment Vertical(v)
				fineY := p.vRAM.getFineY()
				if fineY < 7 {
					p.vRAM.setFineY(fineY + 1)
				} else {
					p.vRAM.setFineY(0)
					y := p.vRAM.getCoarseY()
					if y == 29 {
						y = 0
						p.vRAM.flipNameTableV()
					} else if y == 31 {
						y = 0
					} else {
						y += 1
					}
					p.vRAM.setCoarseY(y)
				}
			}

			if copyHoriCycle {
				// Horizontal(v) = Horizontal(t)
				p.vRAM.copyHori(p.tRAM)
			}
		}

		if preRenderLn && copyVertCycle {
			// Vertical(v) = Vertical(t)
			p.vRAM.copyVert(p.tRAM)
		}
	}

	if visibleFrame && p.showSprites() {
		switch p.cycle {
		// the ppu works these incrementally every cycle, for simplicity
		// each task runs bundled at its final cycle
		case 1:
			p.clearSecOAM()
		case 257:
			p.evalSprites()
		case 321:
			p.loadSprites()
		}

		if visibleCycle {
			for i := uint8(0); i < p.maxSprites; i++ {
				if p.pOAM[i].id == 64 {
					break
				}

				s := &p.pOAM[i]
				xi := uint(x) - uint(s.xPos)
				if xi < 8 && (p.showSpritesLeft() || x > 7) {

					bit := 8 - xi - 1

					b0 := (s.lsbIndex >> bit) & 1
					b1 := (s.msbIndex >> bit) & 1
					p.fgIndex = b0 | (b1 << 1)
					p.fgPriority = (s.attributes>>5)&1 == 0
					p.fgPalette = s.attributes & 0x3

					// non transparent pixel found so "accept" this sprite
					if p.fgIndex != 0 {

						if s.id == 0 && p.bgIndex > 0 && x != 255 {
							p.regs[PPUSTATUS].Set(statusSprite0Hit)
						}

						break
					}
				}
			}
		}
	}

	if visibleFrame && visibleCycle {

		// what gets drawn based on transparency (index==0) and priority
		if p.bgIndex == 0 && p.fgIndex == 0 {
			p.drawPixel(x, y, p.Palette.nesPalette[p.BusInt.Read8(0x3F00)])
		} else if p.bgIndex > 0 && p.fgIndex == 0 {
			p.drawPixel(x, y, p.Palette.nesPalette[p.BusInt.Read8(0x3F00+uint16(p.bgPalette*4+p.bgIndex))])
		} else if p.bgIndex == 0 && p.fgIndex > 0 {
			p.drawPixel(x, y, p.Palette.nesPalette[p.BusInt.Read8(0x3F00+uint16((p.fgPalette+4)*4+p.fgIndex))])
		} else if p.fgPriority {
			p.drawPixel(x, y, p.Palette.nesPalette[p.BusInt.Read8(0x3F00+uint16((p.fgPalette+4)*4+p.fgIndex))])
		} else {
			p.drawPixel(x, y, p.Palette.nesPalette[p.BusInt.Read8(0x3F00+uint16(p.bgPalette*4+p.bgIndex))])
		}
	}

	p.cycle += 1

	// odd frames lose the last pre-render dot when rendering is on
	if preRenderLn && p.oddFrame && rendering && p.cycle == 340 {
		p.cycle += 1
	}

	if p.cycle > 340 {
		p.scanLine += 1
		p.cycle = 0

		if p.scanLine > 260 {
			p.clearOAM()
			p.scanLine = -1
			p.oddFrame = !p.oddFrame
		}
	} else if p.cycle == 1 {
		if vBlankLn {
			p.startVBlank()
		} else if preRenderLn {
			p.stopVBlank()
		}
	}

	// the cpu needs time to sample the interrupt line, reading PPUSTATUS
	// within 2 cycles of raising it can actually clear it, so the nmi is
	// raised behind a small delay which the PPUSTATUS read also resets
	if p.interruptDelay > 0 {
		p.interruptDelay--
		if p.interruptDelay == 0 {
			p.interrupts.Raise(cpu.CpuIntNMI)
			p.nmiLinePulled = true
		}
	}
}

func (p *Ppu) drawPixel(x uint8, y uint8, c color.RGBA) {
	p.frameBuffer.SetPixel(x, y, c)
}

func (p *Ppu) loadSprites() {
	_, spriteSizeY := p.getSpriteSize()
	patternAddr := p.getSpritePattern()
	for i := uint8(0); i < p.maxSprites; i++ {

		p.pOAM[i] = p.sOAM[i]
		s := &p.pOAM[i]
		if s.id == 64 {
			continue
		}

		addr := uint16(0)
		if spriteSizeY == 16 {
			// bit 0 selects the pattern table, the rest the top tile
			addr = (uint16(s.tIndex)&1)*0x1000 + (uint16(s.tIndex)&0xFFFE)*16
		} else {
			addr = patternAddr + uint16(s.tIndex)*16
		}

		// line inside the sprite for the next scanLine
		lSpY := (p.scanLine - int(s.yPos)) % int(spriteSizeY)

		// vertical flip
		if (s.attributes & 0x80) != 0 {
			lSpY ^= int(spriteSizeY) - 1
		}

		// second tile on 8x16
		addr += uint16(lSpY) + uint16(lSpY&8)

		s.lsbIndex = p.BusInt.Read8(addr)
		s.msbIndex = p.BusInt.Read8(addr + 8)

		// horizontal flip
		if (s.attributes & 0x40) != 0 {
			s.lsbIndex = reverseByte(s.lsbIndex)
			s.msbIndex = reverseByte(s.msbIndex)
		}
	}
}

func reverseByte(b uint8) uint8 {
	return ((b & 0x01) << 7) | ((b & 0x02) << 5) |
		((b & 0x04) << 3) | ((b & 0x08) << 1) |
		((b & 0x10) >> 1) | ((b & 0x20) >> 3) |
		((b & 0x40) >> 5) | ((b & 0x80) >> 7)
}

func (p *Ppu) evalSprites() {
	spriteCount := 0
	_, yLen := p.getSpriteSize()
	for i := uint16(0); i < 64; i++ {

		// 0 yPos, 1 index, 2 attr, 3 xPos => i*4
		yPos := p.rOAM.Read8(i * 4)
		yPosEnd := uint16(yPos) + uint16(yLen)

		// if the scanLine intersects the sprite, it's a "hit"
		// copy sprite to the secondary OAM
		if p.scanLine >= int(yPos) && p.scanLine < int(yPosEnd) {
			if spriteCount < int(p.maxSprites) {
				p.sOAM[spriteCount].yPos = yPos
				p.sOAM[spriteCount].tIndex = p.rOAM.Read8(i*4 + 1)
				p.sOAM[spriteCount].attributes = p.rOAM.Read8(i*4 + 2)
				p.sOAM[spriteCount].xPos = p.rOAM.Read8(i*4 + 3)
				p.sOAM[spriteCount].id = uint8(i)
			}

			spriteCount += 1
			// exactly eight sprites is still fine, only the ninth
			// in range sprite raises the overflow flag
			if spriteCount > 8 {
				p.regs[PPUSTATUS].Set(statusSpriteOverflow)
			}
			if spriteCount > int(p.maxSprites) {
				break
			}
		}
	}
}

func (p *Ppu) clearOAM() {
	p.clearSecOAM()
	p.pOAM = p.sOAM
}

func (p *Ppu) clearSecOAM() {
	for i := range p.sOAM {
		// set back to defaults
		p.sOAM[i] = OamSprite{
			yPos:       0xFF,
			tIndex:     0xFF,
			attributes: 0xFF,
			xPos:       0xFF,
			id:         64,
			lsbIndex:   0x00,
			msbIndex:   0x00,
		}
	}
}

func (p *Ppu) Serialise(s common.Serialiser) error {
	return s.Serialise(
		&p.rOAM, &p.Palette,
		p.clock, p.cycle, p.scanLine, p.regs, p.vRAM, p.tRAM,
		p.xFine, p.wToggle, p.nametableEntry, p.attributeEntry, p.lowOrderByte,
		p.highOrderByte, p.rowShifter, p.vRAMBuffer,
		p.bgIndex, p.bgPalette, p.fgIndex, p.fgPalette, p.fgPriority,
		p.interruptDelay, p.nmiLinePulled, p.oddFrame, p.maxSprites, p.spriteLimit,
	)
}
func (p *Ppu) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(
		&p.rOAM, &p.Palette,
		&p.clock, &p.cycle, &p.scanLine, &p.regs, &p.vRAM, &p.tRAM,
		&p.xFine, &p.wToggle, &p.nametableEntry, &p.attributeEntry, &p.lowOrderByte,
		&p.highOrderByte, &p.rowShifter, &p.vRAMBuffer,
		&p.bgIndex, &p.bgPalette, &p.fgIndex, &p.fgPalette, &p.fgPriority,
		&p.interruptDelay, &p.nmiLinePulled, &p.oddFrame, &p.maxSprites, &p.spriteLimit,
	)
}
