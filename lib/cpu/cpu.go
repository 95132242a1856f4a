package cpu

import (
	"fmt"
	"log"

	"github.com/tiagolobocastro/nescore/lib/common"
)

const (
	// allows for validity test
	ModeInvalid = iota
	ModeZeroPage
	ModeIndexedZeroPageX
	ModeIndexedZeroPageY
	ModeAbsolute
	ModeIndexedAbsoluteX
	ModeIndexedAbsoluteY
	ModeIndirect
	ModeImplied
	ModeAccumulator
	ModeImmediate
	ModeRelative
	ModeIndexedIndirectX
	ModeIndirectIndexedY
)

const (
	CpuIntNMI = 1
	CpuIntIRQ = 2
)

// interrupt vectors
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
)

type Instruction struct {
	opLength     uint8
	opCycles     uint8
	opPageCycles uint8
	addrMode     uint8

	opCode uint8
	opName string

	// evaluator function
	eval func()
	// undocumented opcodes carry table data but run as no-ops
	implemented bool
}

type Context struct {
	ins *Instruction
	opr uint32
	pgX bool
}

type Cpu struct {
	common.BusExtInt

	ins [256]Instruction

	curr Context

	Rg Registers

	clk int

	verbose   bool
	haltOnBrk bool

	halted     bool
	interrupts uint8
}

func (c *Cpu) Init(busInt common.BusExtInt, verbose bool) {
	c.verbose = verbose
	c.haltOnBrk = false

	c.Rg.Init()
	c.setupIns()

	c.BusExtInt = busInt
}

// Reset loads the program counter from the reset vector and puts the
// registers back to their power on state. The cycle counter is part of the
// session, not the power on state, so it survives.
func (c *Cpu) Reset() {
	c.Rg.Init()
	c.halted = false
	c.interrupts = 0
	c.Rg.Spc.Pc.Write(c.Read16(vectorReset))
	c.curr.ins = nil
}

// HaltOnBrk makes BRK halt the cpu instead of taking the IRQ vector,
// which is what the soft loaded test programs use as their stop sign.
func (c *Cpu) HaltOnBrk(halt bool) {
	c.haltOnBrk = halt
}

func (c *Cpu) Halted() bool {
	return c.halted
}

// Clock is the cumulative cycle count since power on.
func (c *Cpu) Clock() int {
	return c.clk
}

// interrupt lines
func (c *Cpu) Raise(flag uint8) {
	c.interrupts |= flag
}
func (c *Cpu) Clear(flag uint8) {
	c.interrupts &= flag ^ 0xFF
}

func (c *Cpu) nmi() {
	c.interrupts &= CpuIntNMI ^ 0xFF
	c._push16(c.Rg.Spc.Pc.Read())
	c._push8(c.Rg.Spc.Ps.Read() | BE)
	c.Rg.Spc.Ps.Set(BI, BI)
	c.Rg.Spc.Pc.Write(c.Read16(vectorNMI))
	c.clk += 7
}

func (c *Cpu) irq() {
	c.interrupts &= CpuIntIRQ ^ 0xFF
	c._push16(c.Rg.Spc.Pc.Read())
	c._push8(c.Rg.Spc.Ps.Read() | BE)
	c.Rg.Spc.Ps.Set(BI, BI)
	c.Rg.Spc.Pc.Write(c.Read16(vectorIRQ))
	c.clk += 7
}

// Tick runs one instruction (plus any pending interrupt entry) and returns
// the cycles it consumed. A halted cpu just burns cycles so the rest of the
// console keeps its timing.
func (c *Cpu) Tick() int {
	clk := c.clk
	c.exec()
	return c.clk - clk
}

func (c *Cpu) exec() {
	if c.halted {
		c.clk++
		return
	}

	if c.interrupts&CpuIntNMI != 0 {
		c.nmi()
	} else if c.interrupts&CpuIntIRQ != 0 && c.Rg.Spc.Ps.Bit[I] == 0 {
		c.irq()
	}

	c.curr.pgX = false
	c.curr.opr = c.fetch()
	opCode := c.curr.opr & 0xFF
	c.curr.ins = &c.ins[opCode]

	if c.haltOnBrk && opCode == 0x00 {
		c.halted = true
		c.Rg.Spc.Pc.Val += uint16(c.curr.ins.opLength)
		return
	}

	if c.verbose {
		log.Printf("0x%04x: 0x%02x - %s %s", c.Rg.Spc.Pc.Val, opCode, c.curr.ins.opName, c.getOperandString(c.curr.ins))
	}

	c.curr.ins.eval()
	c.Rg.Spc.Pc.Val += uint16(c.curr.ins.opLength)

	if c.verbose {
		log.Printf("%s", c.Rg)
	}

	c.clk += int(c.curr.ins.opCycles)
	if c.curr.pgX {
		c.clk += int(c.curr.ins.opPageCycles)
	}
}

func (c *Cpu) fetch() uint32 {
	op01 := c.Read16(c.Rg.Spc.Pc.Val)
	op2 := c.Read8(c.Rg.Spc.Pc.Val + 2)
	return uint32(op01) | uint32(op2)<<16
}

func (c *Cpu) getOperandString(ins *Instruction) string {
	op1 := uint16(c.curr.opr&0xFF00) >> 8
	op12 := uint16((c.curr.opr & 0xFFFF00) >> 8)
	str := ""
	switch ins.addrMode {
	case ModeImplied:
	case ModeAccumulator:
	case ModeImmediate:
		str = fmt.Sprintf("#$%02x", op1)
	case ModeZeroPage:
		str = fmt.Sprintf("$%02x", op1)
	case ModeIndexedZeroPageX:
		str = fmt.Sprintf("$%02x, X", op1)
	case ModeIndexedZeroPageY:
		str = fmt.Sprintf("$%02x, Y", op1)
	case ModeAbsolute:
		str = fmt.Sprintf("$%04x", op12)
	case ModeIndexedAbsoluteX:
		str = fmt.Sprintf("$%04x, X", op12)
	case ModeIndexedAbsoluteY:
		str = fmt.Sprintf("$%04x, Y", op12)
	case ModeIndexedIndirectX:
		str = fmt.Sprintf("($%02x, X)", op1)
	case ModeIndirectIndexedY:
		str = fmt.Sprintf("($%02x), Y", op1)
	case ModeIndirect:
		str = fmt.Sprintf("($%04x)", op12)
	case ModeRelative:
		str = fmt.Sprintf("#$%02x", op1)
	}
	return str
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// read16 with the zero page wrap around the pointer reads have on the 6502
func (c *Cpu) read16zp(addr uint8) uint16 {
	lo := uint16(c.Read8(uint16(addr)))
	hi := uint16(c.Read8(uint16(addr + 1)))
	return lo | hi<<8
}

func (c *Cpu) getOperandAddr(ins *Instruction) uint16 {
	op1 := uint16(c.curr.opr&0xFF00) >> 8
	op12 := uint16((c.curr.opr & 0xFFFF00) >> 8)
	switch ins.addrMode {
	case ModeImmediate:
		return c.Rg.Spc.Pc.Read() + 1
	case ModeZeroPage:
		return op1
	case ModeIndexedZeroPageX:
		return (op1 + uint16(c.Rg.Gp.Ix.X.Read())) % 256
	case ModeIndexedZeroPageY:
		return (op1 + uint16(c.Rg.Gp.Ix.Y.Read())) % 256
	case ModeAbsolute:
		return op12
	case ModeIndexedAbsoluteX:
		x := uint16(c.Rg.Gp.Ix.X.Read())
		addr := op12 + x
		c.curr.pgX = pageCrossed(addr-x, addr)
		return addr
	case ModeIndexedAbsoluteY:
		y := uint16(c.Rg.Gp.Ix.Y.Read())
		addr := op12 + y
		c.curr.pgX = pageCrossed(addr-y, addr)
		return addr
	case ModeIndexedIndirectX:
		return c.read16zp(uint8(op1) + c.Rg.Gp.Ix.X.Read())
	case ModeIndirectIndexedY:
		y := uint16(c.Rg.Gp.Ix.Y.Read())
		addr := c.read16zp(uint8(op1)) + y
		c.curr.pgX = pageCrossed(addr-y, addr)
		return addr
	case ModeIndirect:
		// the 6502 does not carry into the high byte when the indirect
		// vector sits at the end of a page, JMP ($xxFF) reads the msb
		// from $xx00
		if op1 == 0xFF {
			l := uint16(c.Read8(op12))
			h := uint16(c.Read8(op12 & 0xFF00))
			return l | h<<8
		}
		return c.Read16(op12)
	case ModeRelative:
		// op1 is -128..127 so we can jump backwards
		return c.Rg.Spc.Pc.Read() + uint16(int8(op1))
	default:
		panic(fmt.Errorf("invalid instruction address mode: %d", ins.addrMode))
	}
}

// Move Commands:
func (c *Cpu) sta() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Gp.Ac.Read())
}
func (c *Cpu) stx() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Gp.Ix.X.Read())
}
func (c *Cpu) sty() {
	c.Write8(c.getOperandAddr(c.curr.ins), c.Rg.Gp.Ix.Y.Read())
}

func (c *Cpu) lda() {
	c.Rg.Gp.Ac.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}
func (c *Cpu) ldx() {
	c.Rg.Gp.Ix.X.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ix.X.Read()))
}
func (c *Cpu) ldy() {
	c.Rg.Gp.Ix.Y.Write(c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ix.Y.Read()))
}

func (c *Cpu) tax() {
	c.Rg.Gp.Ix.X.Write(c.Rg.Gp.Ac.Read())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ix.X.Read()))
}
func (c *Cpu) tay() {
	c.Rg.Gp.Ix.Y.Write(c.Rg.Gp.Ac.Read())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ix.Y.Read()))
}
func (c *Cpu) txa() {
	c.Rg.Gp.Ac.Write(c.Rg.Gp.Ix.X.Read())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}
func (c *Cpu) tya() {
	c.Rg.Gp.Ac.Write(c.Rg.Gp.Ix.Y.Read())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}

func (c *Cpu) txs() {
	c.Rg.Spc.Sp.Write(c.Rg.Gp.Ix.X.Read())
}
func (c *Cpu) tsx() {
	c.Rg.Gp.Ix.X.Write(c.Rg.Spc.Sp.Read())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ix.X.Read()))
}

func (c *Cpu) _push8(val uint8) {
	sp := c.Rg.Spc.Sp.Read()
	c.Write8(uint16(sp)|0x100, val)
	c.Rg.Spc.Sp.Write(sp - 1)
}
func (c *Cpu) _push16(val uint16) {
	c._push8(uint8((val & 0xFF00) >> 8))
	c._push8(uint8(val & 0xFF))
}
func (c *Cpu) _pull8() uint8 {
	sp := c.Rg.Spc.Sp.Read() + 1
	c.Rg.Spc.Sp.Write(sp)
	return c.Read8(uint16(sp) | 0x100)
}
func (c *Cpu) _pull16() uint16 {
	return uint16(c._pull8()) | uint16(c._pull8())<<8
}

func (c *Cpu) pha() {
	c._push8(c.Rg.Gp.Ac.Read())
}
func (c *Cpu) php() {
	c._push8(c.Rg.Spc.Ps.Read() | BB)
}

func (c *Cpu) pla() {
	c.Rg.Gp.Ac.Write(c._pull8())
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}
func (c *Cpu) plp() {
	c.Rg.Spc.Ps.Write(c._pull8())
}

// Jump/Flag Commands:
func (c *Cpu) brk() {
	// pushes PC and status, takes the IRQ vector with the break flag set
	c._push16(c.Rg.Spc.Pc.Read() + uint16(c.curr.ins.opLength) + 1)
	c.php()
	c.sei()
	c.Rg.Spc.Pc.Write(c.Read16(vectorIRQ) - uint16(c.curr.ins.opLength))
}

func (c *Cpu) bit() {
	mask := c.Rg.Gp.Ac.Read()
	value := c.Read8(c.getOperandAddr(c.curr.ins))
	result := value & mask
	c.Rg.Spc.Ps.Set(BZ, int8(result))
	c.Rg.Spc.Ps.Set(BN|BV, int8(value))
}

func (c *Cpu) clc() {
	c.Rg.Spc.Ps.Set(BC, 0)
}
func (c *Cpu) sec() {
	c.Rg.Spc.Ps.Set(BC, BC)
}
func (c *Cpu) sed() {
	c.Rg.Spc.Ps.Set(BD, BD)
}
func (c *Cpu) cld() {
	c.Rg.Spc.Ps.Set(BD, 0)
}
func (c *Cpu) clv() {
	c.Rg.Spc.Ps.Set(BV, 0)
}
func (c *Cpu) sei() {
	c.Rg.Spc.Ps.Set(BI, BI)
}
func (c *Cpu) cli() {
	c.Rg.Spc.Ps.Set(BI, 0)
}

// taken branches cost one more cycle, two when they cross a page.
// addr still lacks the instruction length the exec loop adds, so the
// real target is addr + opLength.
func (c *Cpu) addBranchCycles(addr uint16) {
	c.clk++
	pc := c.Rg.Spc.Pc.Val + uint16(c.curr.ins.opLength)
	if pageCrossed(pc, addr+uint16(c.curr.ins.opLength)) {
		c.clk++
	}
}

func (c *Cpu) jmp() {
	// exec bumps the PC by the instruction length afterwards
	addr := c.getOperandAddr(c.curr.ins) - uint16(c.curr.ins.opLength)
	c.Rg.Spc.Pc.Write(addr)
}

func (c *Cpu) _branch(flag uint8, test uint8) {
	if (c.Rg.Spc.Ps.Read() & flag) == test {
		addr := c.getOperandAddr(c.curr.ins)
		c.addBranchCycles(addr)
		c.Rg.Spc.Pc.Write(addr)
	}
}

func (c *Cpu) bpl() {
	c._branch(BN, 0)
}
func (c *Cpu) bmi() {
	c._branch(BN, BN)
}

func (c *Cpu) bvc() {
	c._branch(BV, 0)
}
func (c *Cpu) bvs() {
	c._branch(BV, BV)
}

func (c *Cpu) bcc() {
	c._branch(BC, 0)
}
func (c *Cpu) bcs() {
	c._branch(BC, BC)
}

func (c *Cpu) bne() {
	c._branch(BZ, 0)
}
func (c *Cpu) beq() {
	c._branch(BZ, BZ)
}

func (c *Cpu) jsr() {
	retAddr := c.Rg.Spc.Pc.Read() + uint16(c.curr.ins.opLength)
	c._push16(retAddr - 1)
	c.jmp()
}
func (c *Cpu) rts() {
	c.Rg.Spc.Pc.Write(c._pull16())
}

func (c *Cpu) rti() {
	c.plp()
	c.Rg.Spc.Pc.Write(c._pull16() - uint16(c.curr.ins.opLength))
}

func (c *Cpu) nop() {}

// undocumented opcodes jam the cpu for good
func (c *Cpu) kil() {
	c.halted = true
}

// Logical and arithmetic commands:
func (c *Cpu) ora() {
	c.Rg.Gp.Ac.Write(c.Rg.Gp.Ac.Read() | c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}
func (c *Cpu) and() {
	c.Rg.Gp.Ac.Write(c.Rg.Gp.Ac.Read() & c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}
func (c *Cpu) eor() {
	c.Rg.Gp.Ac.Write(c.Rg.Gp.Ac.Read() ^ c.Read8(c.getOperandAddr(c.curr.ins)))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
}

func (c *Cpu) _add(opr uint8) {
	result := uint16(c.Rg.Gp.Ac.Read()) + uint16(opr) + uint16(c.Rg.Spc.Ps.Bit[C])
	if result > 0xFF {
		c.Rg.Spc.Ps.Set(BC, BC)
	} else {
		c.Rg.Spc.Ps.Set(BC, 0)
	}

	// signed overflow: the addends agree on the sign and the result differs
	// eg: 127 + 3 = 130 ( -126 )
	if ((c.Rg.Gp.Ac.Read()^opr)&0x80) == 0 && ((uint16(c.Rg.Gp.Ac.Read())^result)&0x80) != 0 {
		c.Rg.Spc.Ps.Set(BV, BV)
	} else {
		c.Rg.Spc.Ps.Set(BV, 0)
	}
	c.Rg.Gp.Ac.Write(uint8(result & 0xFF))
	c.Rg.Spc.Ps.Set(BZ|BN, int8(c.Rg.Gp.Ac.Read()))
	// decimal mode does not exist on the 2A03
}

func (c *Cpu) adc() {
	c._add(c.Read8(c.getOperandAddr(c.curr.ins)))
}
func (c *Cpu) sbc() {
	c._add(c.Read8(c.getOperandAddr(c.curr.ins)) ^ 0xFF)
}

func (c *Cpu) _cmp(op1 uint8) {
	op2 := c.Read8(c.getOperandAddr(c.curr.ins))
	r := int8(op1 - op2)

	if op1 >= op2 {
		c.Rg.Spc.Ps.Set(BC, BC)
	} else {
		c.Rg.Spc.Ps.Set(BC, 0)
	}
	c.Rg.Spc.Ps.Set(BZ|BN, r)
}

func (c *Cpu) cmp() {
	c._cmp(c.Rg.Gp.Ac.Read())
}
func (c *Cpu) cpx() {
	c._cmp(c.Rg.Gp.Ix.X.Read())
}
func (c *Cpu) cpy() {
	c._cmp(c.Rg.Gp.Ix.Y.Read())
}

func (c *Cpu) dec() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) - 1
	c.Write8(addr, v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) dex() {
	v := c.Rg.Gp.Ix.X.Read() - 1
	c.Rg.Gp.Ix.X.Write(v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) dey() {
	v := c.Rg.Gp.Ix.Y.Read() - 1
	c.Rg.Gp.Ix.Y.Write(v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) inc() {
	addr := c.getOperandAddr(c.curr.ins)
	v := c.Read8(addr) + 1
	c.Write8(addr, v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) inx() {
	v := c.Rg.Gp.Ix.X.Read() + 1
	c.Rg.Gp.Ix.X.Write(v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

func (c *Cpu) iny() {
	v := c.Rg.Gp.Ix.Y.Read() + 1
	c.Rg.Gp.Ix.Y.Write(v)
	c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
}

// read-modify-write helpers shared by the shift/rotate family so the
// accumulator and memory variants stay in sync
func (c *Cpu) _rmw(modify func(uint8) uint8) {
	if c.curr.ins.addrMode == ModeAccumulator {
		v := modify(c.Rg.Gp.Ac.Read())
		c.Rg.Gp.Ac.Write(v)
		c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
	} else {
		addr := c.getOperandAddr(c.curr.ins)
		v := modify(c.Read8(addr))
		c.Write8(addr, v)
		c.Rg.Spc.Ps.Set(BZ|BN, int8(v))
	}
}

func (c *Cpu) asl() {
	c._rmw(func(v uint8) uint8 {
		c.Rg.Spc.Ps.Set(BC, int8(v>>7)&BC)
		return v << 1
	})
}

func (c *Cpu) rol() {
	c._rmw(func(v uint8) uint8 {
		fC := c.Rg.Spc.Ps.Read() & BC
		c.Rg.Spc.Ps.Set(BC, int8(v>>7)&BC)
		return (v << 1) | fC
	})
}

func (c *Cpu) lsr() {
	c._rmw(func(v uint8) uint8 {
		c.Rg.Spc.Ps.Set(BC, int8(v)&BC)
		return v >> 1
	})
}

func (c *Cpu) ror() {
	c._rmw(func(v uint8) uint8 {
		fC := c.Rg.Spc.Ps.Read() & BC
		c.Rg.Spc.Ps.Set(BC, int8(v)&BC)
		return (v >> 1) | (fC << 7)
	})
}

func (c *Cpu) Serialise(s common.Serialiser) error {
	if err := c.Rg.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(c.clk, c.halted, c.interrupts)
}
func (c *Cpu) DeSerialise(s common.Serialiser) error {
	if err := c.Rg.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&c.clk, &c.halted, &c.interrupts)
}
