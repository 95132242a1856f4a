package console

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"github.com/tiagolobocastro/nescore/lib/common"
	"github.com/tiagolobocastro/nescore/lib/cpu"
	"github.com/tiagolobocastro/nescore/lib/mappers"
	"github.com/tiagolobocastro/nescore/lib/ppu"
)

const NesBaseFrequency = 1789773 // NTSC
//const NesBaseFrequency = 1662607 // PAL

const (
	MapCPUId = iota
	MapPPUId
	MapDMAId
)

// Console wires the cpu, ppu, dma engine, controllers and cartridge
// together over the shared bus and drives them in lockstep.
type Console struct {
	nes *nes
}

type nes struct {
	bus common.Bus

	cpu  cpu.Cpu
	ram  common.Ram
	cart mappers.Cartridge
	ppu  ppu.Ppu
	dma  common.Dma
	ctrl common.Controllers

	framebuffer common.Framebuffer

	opRequests int

	// Options
	verbose     bool
	cartPath    string
	cartData    []byte
	freeRun     bool
	spriteLimit bool
	palettePath string
}

func NewConsole() *Console {
	return &Console{&nes{spriteLimit: true}}
}

func (c *Console) Init() error {
	return c.nes.init()
}
func (c *Console) Nes() *nes {
	return c.nes
}

func (n *nes) init() error {
	n.bus.Init(3)

	var err error
	if n.cartData != nil {
		err = n.cart.InitData(n.cartData)
	} else {
		err = n.cart.Init(n.cartPath)
	}
	if err != nil {
		return fmt.Errorf("failed to initialise the cartridge: %w", err)
	}

	n.ram.Init(0x800)
	n.ctrl.Init()
	n.framebuffer.Init()

	n.cpu.Init(n.bus.GetBusInt(MapCPUId), n.verbose)
	n.ppu.SpriteLimit(n.spriteLimit)
	n.ppu.Init(n.bus.GetBusInt(MapPPUId), n.verbose, &n.cpu, &n.framebuffer)
	if n.palettePath != "" {
		if err := n.ppu.LoadPalette(n.palettePath); err != nil {
			return fmt.Errorf("failed to load the palette: %w", err)
		}
	}
	n.dma.Init(n.bus.GetBusInt(MapDMAId))

	n.bus.Connect(MapCPUId, &cpuMapper{n})
	n.bus.Connect(MapPPUId, &ppuMapper{n})
	n.bus.Connect(MapDMAId, &dmaMapper{n})

	n.cpu.Reset()
	return nil
}

func (n *nes) Stop() {
	n.opRequests |= 1 << common.StopRequest
}

func (n *nes) Reset() {
	n.opRequests |= 1 << common.ResetRequest
}

func (n *nes) Save() {
	n.opRequests |= 1 << common.SaveRequest
}

func (n *nes) Load() {
	n.opRequests |= 1 << common.LoadRequest
}

func (n *nes) Poke(controllerId uint8, button uint8, pressed bool) {
	n.ctrl.Poke(controllerId, button, pressed)
}

// SetInput replaces the whole button mask of one controller.
func (n *nes) SetInput(controllerId uint8, buttons uint8) {
	n.ctrl.Set(controllerId, buttons)
}

func (n *nes) CPU() *cpu.Cpu {
	return &n.cpu
}
func (n *nes) PPU() *ppu.Ppu {
	return &n.ppu
}
func (n *nes) Framebuffer() *common.Framebuffer {
	return &n.framebuffer
}

// Run drives the console in real time until Stop is requested.
func (n *nes) Run() {
	if n.freeRun {
		for n.opRequests&(1<<common.StopRequest) == 0 {
			n.Step(time.Second.Seconds())
		}
	} else {
		tmr := time.Tick(time.Second / 240)
		for n.opRequests&(1<<common.StopRequest) == 0 {
			n.Step((time.Second / 240).Seconds())
			<-tmr
		}
	}
	n.opRequests &= ^(1 << common.StopRequest)
	n.cart.Stop()
}

// tick runs one cpu instruction (or one stall cycle) and keeps the ppu,
// cartridge and dma engine in sync: 3 ppu dots per cpu cycle.
func (n *nes) tick() int {
	ticks := 1
	if !n.dma.Active() {
		// cpu stalled whilst dma is active
		ticks = n.cpu.Tick()
	}

	// 3 ppu ticks per 1 cpu
	for i := 0; i < 3*ticks; i++ {
		n.ppu.Ticks(1)
		n.cart.Ticks(1)
	}

	n.dma.Ticks(ticks)

	return ticks
}

// Step runs for the given amount of emulated seconds.
func (n *nes) Step(seconds float64) {
	runCycles := int(float64(NesBaseFrequency) * seconds)

	for runCycles > 0 {
		runCycles -= n.tick()
	}

	n.processOpRequest()
}

// RunFrame advances the emulation until the ppu hands over the next
// completed frame and returns its pixels, 256x240 in row major order.
func (n *nes) RunFrame() []color.RGBA {
	frames := n.framebuffer.Frames
	for n.framebuffer.Frames == frames && !n.cpu.Halted() {
		n.tick()
	}
	n.processOpRequest()
	return n.framebuffer.Frame()
}

func (n *nes) processOpRequest() {
	switch {
	case n.opRequests&(1<<common.ResetRequest) != 0:
		n.reset()
	case n.opRequests&(1<<common.SaveRequest) != 0:
		n.save()
	case n.opRequests&(1<<common.LoadRequest) != 0:
		n.load()
	}
}

func (n *nes) reset() {
	n.ppu.Reset()
	n.dma.Reset()
	n.cpu.Reset()
	n.ctrl.Reset()
	n.cart.Reset()

	n.opRequests &= ^(1 << common.ResetRequest)
}

func (n *nes) save() {
	if err := n.Serialise(common.NewSerialiser(n.cart.GetStateSaveFile())); err != nil {
		log.Printf("Failed to Save State: %v", err)
	}
	n.opRequests &= ^(1 << common.SaveRequest)
}

func (n *nes) load() {
	// reset first, otherwise the gob decoder merges slices into the
	// running state: https://github.com/golang/go/issues/21929
	n.reset()
	if err := n.DeSerialise(common.NewSerialiser(n.cart.GetStateSaveFile())); err != nil {
		log.Printf("Failed to Load State: %v", err)
	}
	n.opRequests &= ^(1 << common.LoadRequest)
}

func (n *nes) Serialise(s common.Serialiser) error {
	return s.Serialise(
		&n.cpu, &n.ram, &n.dma, &n.ppu, &n.cart, &n.ctrl, &n.framebuffer,
		n.opRequests, n.freeRun, n.spriteLimit,
	)
}

func (n *nes) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(
		&n.cpu, &n.ram, &n.dma, &n.ppu, &n.cart, &n.ctrl, &n.framebuffer,
		&n.opRequests, &n.freeRun, &n.spriteLimit,
	)
}

// Test runs soft loaded code until it halts on a BRK.
func (n *nes) Test() {
	n.cpu.HaltOnBrk(true)
	for !n.cpu.Halted() {
		n.tick()
	}
}

// LoadEasyCode loads hex dumps from: https://skilldrick.github.io/easy6502/, eg:
// `0600: a9 01 85 02 a9 cc 8d 00 01 a9 01 a a1 00 00 00
//  0610: a9 05 a 8e 00 02 a9 05 8d 01 02 a9 08 8d 02 02`
func (n *nes) LoadEasyCode(code string) {
	for i, line := range strings.Split(strings.TrimSuffix(code, "\n"), "\n") {
		addr := 0
		var bt [16]int
		ns, err := fmt.Sscanf(line, "%X: %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X ",
			&addr, &bt[0], &bt[1], &bt[2], &bt[3], &bt[4], &bt[5], &bt[6], &bt[7],
			&bt[8], &bt[9], &bt[10], &bt[11], &bt[12], &bt[13], &bt[14], &bt[15])
		if err != nil && err != io.EOF {
			log.Printf("Error when scanning easyCode line, ns: %X, error: %v\n", ns, err)
		}

		if i == 0 {
			// assumes first line is where the program starts
			n.cart.WriteRom16(0xFFFC, uint16(addr))
		}

		for i, b := range bt {
			n.cpu.Write8(uint16(addr+i), uint8(b))
		}
	}
	n.cpu.Reset()
}
