package cpu

import (
	"testing"
)

// flat 64KB memory, enough to run the cpu without the rest of the console
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read8(addr uint16) uint8 {
	return b.mem[addr]
}
func (b *testBus) Write8(addr uint16, val uint8) {
	b.mem[addr] = val
}
func (b *testBus) Read16(addr uint16) uint16 {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8
}
func (b *testBus) Write16(addr uint16, val uint16) {
	b.mem[addr] = uint8(val)
	b.mem[addr+1] = uint8(val >> 8)
}

func newTestCpu(program ...uint8) (*Cpu, *testBus) {
	bus := &testBus{}
	bus.Write16(vectorReset, 0x0600)
	copy(bus.mem[0x0600:], program)

	cpu := &Cpu{}
	cpu.Init(bus, false)
	cpu.Reset()
	return cpu, bus
}

func Test_InstructionTable(t *testing.T) {
	cpu, _ := newTestCpu()

	for op, ins := range cpu.ins {
		if ins.eval == nil {
			t.Fatalf("opcode %#02x has no evaluator", op)
		}
		if ins.opCode != uint8(op) {
			t.Fatalf("opcode %#02x registered under %#02x", ins.opCode, op)
		}
		if ins.opLength < 1 || ins.opLength > 3 {
			t.Fatalf("opcode %#02x (%s) has length %d", op, ins.opName, ins.opLength)
		}
		if ins.opCycles < 2 || ins.opCycles > 8 {
			t.Fatalf("opcode %#02x (%s) has %d cycles", op, ins.opName, ins.opCycles)
		}
		if ins.addrMode == ModeInvalid {
			t.Fatalf("opcode %#02x (%s) has no addressing mode", op, ins.opName)
		}
		if ins.opName == "" {
			t.Fatalf("opcode %#02x has no name", op)
		}
	}
}

func Test_PageCrossCycles(t *testing.T) {
	// LDA $10F0,X
	cpu, _ := newTestCpu(0xBD, 0xF0, 0x10)
	cpu.Rg.Gp.Ix.X.Write(0x20)
	if cycles := cpu.Tick(); cycles != 5 {
		t.Errorf("LDA abs,X across a page took %d cycles, want 5", cycles)
	}

	cpu, _ = newTestCpu(0xBD, 0xF0, 0x10)
	cpu.Rg.Gp.Ix.X.Write(0x01)
	if cycles := cpu.Tick(); cycles != 4 {
		t.Errorf("LDA abs,X within a page took %d cycles, want 4", cycles)
	}

	// stores always pay the cross penalty up front
	cpu, _ = newTestCpu(0x9D, 0xF0, 0x10)
	cpu.Rg.Gp.Ix.X.Write(0x20)
	if cycles := cpu.Tick(); cycles != 5 {
		t.Errorf("STA abs,X took %d cycles, want 5", cycles)
	}
}

func Test_BranchCycles(t *testing.T) {
	// BNE not taken
	cpu, _ := newTestCpu(0xD0, 0x10)
	cpu.Rg.Spc.Ps.Set(BZ, 0)
	if cycles := cpu.Tick(); cycles != 2 {
		t.Errorf("branch not taken took %d cycles, want 2", cycles)
	}

	// BNE taken, same page
	cpu, _ = newTestCpu(0xD0, 0x10)
	cpu.Rg.Spc.Ps.Set(BZ, 1)
	if cycles := cpu.Tick(); cycles != 3 {
		t.Errorf("branch taken took %d cycles, want 3", cycles)
	}
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0612 {
		t.Errorf("branch landed at %#04x, want 0x0612", pc)
	}

	// BNE taken, crossing into the previous page
	cpu, _ = newTestCpu(0xD0, 0x80)
	cpu.Rg.Spc.Ps.Set(BZ, 1)
	if cycles := cpu.Tick(); cycles != 4 {
		t.Errorf("branch across a page took %d cycles, want 4", cycles)
	}
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0582 {
		t.Errorf("branch landed at %#04x, want 0x0582", pc)
	}

	// BNE taken, landing right at the start of the next page
	bus := &testBus{}
	bus.Write16(vectorReset, 0x05F0)
	bus.mem[0x05F0] = 0xD0
	bus.mem[0x05F1] = 0x0E
	cpu = &Cpu{}
	cpu.Init(bus, false)
	cpu.Reset()
	cpu.Rg.Spc.Ps.Set(BZ, 1)
	if cycles := cpu.Tick(); cycles != 4 {
		t.Errorf("branch onto a new page took %d cycles, want 4", cycles)
	}
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0600 {
		t.Errorf("branch landed at %#04x, want 0x0600", pc)
	}
}

func Test_ZeroPageWrap(t *testing.T) {
	// LDA ($FF,X) with X=0, the pointer high byte comes from $00 not $100
	cpu, bus := newTestCpu(0xA1, 0xFF)
	bus.mem[0xFF] = 0x34
	bus.mem[0x00] = 0x12
	bus.mem[0x1234] = 0x77
	cpu.Tick()
	if ac := cpu.Rg.Gp.Ac.Read(); ac != 0x77 {
		t.Errorf("LDA ($ff,X) read %#02x, want 0x77", ac)
	}

	// LDA ($FF),Y wraps the same way
	cpu, bus = newTestCpu(0xB1, 0xFF)
	bus.mem[0xFF] = 0x34
	bus.mem[0x00] = 0x12
	bus.mem[0x1236] = 0x88
	cpu.Rg.Gp.Ix.Y.Write(0x02)
	cpu.Tick()
	if ac := cpu.Rg.Gp.Ac.Read(); ac != 0x88 {
		t.Errorf("LDA ($ff),Y read %#02x, want 0x88", ac)
	}
}

func Test_JmpIndirectPageBug(t *testing.T) {
	// JMP ($10FF) reads the high byte from $1000, not $1100
	cpu, bus := newTestCpu(0x6C, 0xFF, 0x10)
	bus.mem[0x10FF] = 0x34
	bus.mem[0x1000] = 0x12
	bus.mem[0x1100] = 0x56
	cpu.Tick()
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x1234 {
		t.Errorf("JMP ($10ff) landed at %#04x, want 0x1234", pc)
	}
}

func Test_KILJamsTheCpu(t *testing.T) {
	cpu, _ := newTestCpu(0x02)
	cpu.Tick()
	if !cpu.Halted() {
		t.Fatalf("KIL did not halt the cpu")
	}

	// a jammed cpu still burns cycles so the console timing holds up
	if cycles := cpu.Tick(); cycles != 1 {
		t.Errorf("halted tick took %d cycles, want 1", cycles)
	}

	cpu.Reset()
	if cpu.Halted() {
		t.Errorf("reset did not clear the jam")
	}
}

func Test_UndocumentedNopsKeepTiming(t *testing.T) {
	// NOP $A9 (DOP), then LDA #$55: the two byte nop must not swallow
	// the operand of the next instruction
	cpu, _ := newTestCpu(0x04, 0xA9, 0xA9, 0x55)
	if cycles := cpu.Tick(); cycles != 3 {
		t.Errorf("DOP took %d cycles, want 3", cycles)
	}
	cpu.Tick()
	if ac := cpu.Rg.Gp.Ac.Read(); ac != 0x55 {
		t.Errorf("Ac = %#02x after DOP + LDA, want 0x55", ac)
	}
}

func Test_NMI(t *testing.T) {
	cpu, bus := newTestCpu(0xEA) // NOP
	bus.Write16(vectorNMI, 0x0700)
	bus.mem[0x0700] = 0xEA

	cpu.Raise(CpuIntNMI)
	cycles := cpu.Tick()
	if cycles != 7+2 {
		t.Errorf("nmi entry plus NOP took %d cycles, want 9", cycles)
	}
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0701 {
		t.Errorf("pc = %#04x, want to be past the nmi handler entry", pc)
	}
	if cpu.Rg.Spc.Ps.Bit[I] != 1 {
		t.Errorf("interrupt entry must set the I flag")
	}
	// the line is edge triggered, it must not re-enter
	if cycles := cpu.Tick(); cycles != 2 {
		t.Errorf("next tick took %d cycles, want a plain NOP", cycles)
	}
}

func Test_IRQMasking(t *testing.T) {
	cpu, bus := newTestCpu(0xEA)
	bus.Write16(vectorIRQ, 0x0700)
	bus.mem[0x0700] = 0xEA

	// I is set at power on, the irq must wait
	cpu.Raise(CpuIntIRQ)
	cpu.Tick()
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0601 {
		t.Fatalf("masked irq was taken, pc = %#04x", pc)
	}

	cpu.Rg.Spc.Ps.Set(BI, 0)
	cpu.Tick()
	if pc := cpu.Rg.Spc.Pc.Read(); pc != 0x0701 {
		t.Fatalf("irq not taken once unmasked, pc = %#04x", pc)
	}
}

func Test_StackPushPull(t *testing.T) {
	// LDA #$C4, PHA, LDA #$00, PLA
	cpu, bus := newTestCpu(0xA9, 0xC4, 0x48, 0xA9, 0x00, 0x68)
	cpu.Tick()
	cpu.Tick()
	if sp := cpu.Rg.Spc.Sp.Read(); sp != 0xFE {
		t.Errorf("sp after push = %#02x, want 0xfe", sp)
	}
	if bus.mem[0x01FF] != 0xC4 {
		t.Errorf("stack top = %#02x, want 0xc4", bus.mem[0x01FF])
	}
	cpu.Tick()
	cpu.Tick()
	if ac := cpu.Rg.Gp.Ac.Read(); ac != 0xC4 {
		t.Errorf("Ac after pull = %#02x, want 0xc4", ac)
	}
	if sp := cpu.Rg.Spc.Sp.Read(); sp != 0xFF {
		t.Errorf("sp after pull = %#02x, want 0xff", sp)
	}
}
