package cpu

import (
	"fmt"

	"github.com/tiagolobocastro/nescore/lib/common"
)

const (
	C = 0 // Carry
	Z = 1 // Zero Result
	I = 2 // Interrupt Disable
	D = 3 // Decimal Mode
	B = 4 // Break Command
	E = 5 // Expansion
	V = 6 // Overflow
	N = 7 // Negative Result

	BC = 1 << C
	BZ = 1 << Z
	BI = 1 << I
	BD = 1 << D
	BB = 1 << B
	BE = 1 << E
	BV = 1 << V
	BN = 1 << N
)

// processor status, one byte per flag so the flag ops stay branch free-ish
// and trivially inspectable
type ps_register struct {
	Bit [8]byte

	name string
}

type spc_registers struct {
	Pc common.Register16
	Sp common.Register
	Ps ps_register

	name string
}

type ix_registers struct {
	X common.Register
	Y common.Register

	name string
}

type gp_registers struct {
	Ac common.Register
	Ix ix_registers

	name string
}

type Registers struct {
	Spc spc_registers
	Gp  gp_registers
}

func (psr *ps_register) Read() uint8 {
	return 0 |
		psr.Bit[C]<<C |
		psr.Bit[Z]<<Z |
		psr.Bit[I]<<I |
		psr.Bit[D]<<D |
		psr.Bit[B]<<B |
		psr.Bit[E]<<E |
		psr.Bit[V]<<V |
		psr.Bit[N]<<N
}

// Set updates the selected flags from the value: Z tests for zero, N for
// the sign bit, the rest copy their own bit out of the value.
func (psr *ps_register) Set(flags int, value int8) {
	if (flags & BC) == BC {
		psr.setBit(C, value&BC == BC)
	}
	if (flags & BZ) == BZ {
		psr.setBit(Z, value == 0)
	}
	if (flags & BI) == BI {
		psr.setBit(I, value&BI == BI)
	}
	if (flags & BD) == BD {
		psr.setBit(D, value&BD == BD)
	}
	if (flags & BB) == BB {
		psr.setBit(B, value&BB == BB)
	}
	if (flags & BV) == BV {
		psr.setBit(V, value&BV == BV)
	}
	if (flags & BN) == BN {
		psr.setBit(N, value < 0)
	}
}

func (psr *ps_register) setBit(bit int, set bool) {
	if set {
		psr.Bit[bit] = 1
	} else {
		psr.Bit[bit] = 0
	}
}

func (psr *ps_register) Write(value uint8) {
	for bit := 0; bit < 8; bit++ {
		psr.Bit[bit] = (value >> bit) & 1
	}
}

func (psr ps_register) String() string {
	return fmt.Sprintf("%s: 0x%02x (N:%d V:%d E:%d B:%d D:%d I:%d Z:%d C:%d)", psr.name, psr.Read(),
		psr.Bit[N], psr.Bit[V], psr.Bit[E], psr.Bit[B], psr.Bit[D], psr.Bit[I], psr.Bit[Z], psr.Bit[C])
}

func (psr *ps_register) init(name string, val uint8) {
	psr.Write(val)
	psr.name = name
}

func (r *spc_registers) init(name string) {
	r.Pc.Init("Pc", 0xFFFC)
	r.Sp.Init("Sp", 0xFF)
	r.Ps.init("Ps", BB|BI|BZ|BE)
	r.name = name
}
func (r spc_registers) String() string {
	return fmt.Sprintf("%s, %s, %s", r.Pc, r.Sp, r.Ps)
}

func (r *ix_registers) init(name string) {
	r.X.Init("X", 0)
	r.Y.Init("Y", 0)
	r.name = name
}
func (r ix_registers) String() string {
	return fmt.Sprintf("%s, %s", r.X, r.Y)
}

func (r *gp_registers) init(name string) {
	r.Ac.Init("Ac", 0)
	r.Ix.init("Ix")
	r.name = name
}
func (r gp_registers) String() string {
	return fmt.Sprintf("%s, %s", r.Ac, r.Ix)
}

func (r *Registers) Init() {
	r.Spc.init("spcr")
	r.Gp.init("gpr")
}

func (r Registers) String() string {
	return fmt.Sprintf("%s, %s", r.Spc, r.Gp)
}

func (r *Registers) Serialise(s common.Serialiser) error {
	return s.Serialise(
		r.Spc.Pc.Val, r.Spc.Sp.Val, r.Spc.Ps.Read(),
		r.Gp.Ac.Val, r.Gp.Ix.X.Val, r.Gp.Ix.Y.Val,
	)
}
func (r *Registers) DeSerialise(s common.Serialiser) error {
	var ps uint8
	if err := s.DeSerialise(
		&r.Spc.Pc.Val, &r.Spc.Sp.Val, &ps,
		&r.Gp.Ac.Val, &r.Gp.Ix.X.Val, &r.Gp.Ix.Y.Val,
	); err != nil {
		return err
	}
	r.Spc.Ps.Write(ps)
	return nil
}
