package cpu

// set registers a documented opcode
func (c *Cpu) set(op uint8, name string, length uint8, cycles uint8, pageCycles uint8, mode uint8, eval func()) {
	c.ins[op] = Instruction{length, cycles, pageCycles, mode, op, name, eval, true}
}

// und registers an undocumented opcode: the table data is real so timing and
// the program counter stay honest, but the evaluator is a no-op
func (c *Cpu) und(op uint8, name string, length uint8, cycles uint8, mode uint8) {
	c.ins[op] = Instruction{length, cycles, 0, mode, op, name, c.nop, false}
}

// kilOp registers a jam opcode which halts the cpu for good
func (c *Cpu) kilOp(op uint8) {
	c.ins[op] = Instruction{1, 2, 0, ModeImplied, op, "KIL", c.kil, false}
}

func (c *Cpu) setupIns() {
	// Move commands
	c.set(0xA9, "LDA", 2, 2, 0, ModeImmediate, c.lda)
	c.set(0xA5, "LDA", 2, 3, 0, ModeZeroPage, c.lda)
	c.set(0xB5, "LDA", 2, 4, 0, ModeIndexedZeroPageX, c.lda)
	c.set(0xAD, "LDA", 3, 4, 0, ModeAbsolute, c.lda)
	c.set(0xBD, "LDA", 3, 4, 1, ModeIndexedAbsoluteX, c.lda)
	c.set(0xB9, "LDA", 3, 4, 1, ModeIndexedAbsoluteY, c.lda)
	c.set(0xA1, "LDA", 2, 6, 0, ModeIndexedIndirectX, c.lda)
	c.set(0xB1, "LDA", 2, 5, 1, ModeIndirectIndexedY, c.lda)

	c.set(0xA2, "LDX", 2, 2, 0, ModeImmediate, c.ldx)
	c.set(0xA6, "LDX", 2, 3, 0, ModeZeroPage, c.ldx)
	c.set(0xB6, "LDX", 2, 4, 0, ModeIndexedZeroPageY, c.ldx)
	c.set(0xAE, "LDX", 3, 4, 0, ModeAbsolute, c.ldx)
	c.set(0xBE, "LDX", 3, 4, 1, ModeIndexedAbsoluteY, c.ldx)

	c.set(0xA0, "LDY", 2, 2, 0, ModeImmediate, c.ldy)
	c.set(0xA4, "LDY", 2, 3, 0, ModeZeroPage, c.ldy)
	c.set(0xB4, "LDY", 2, 4, 0, ModeIndexedZeroPageX, c.ldy)
	c.set(0xAC, "LDY", 3, 4, 0, ModeAbsolute, c.ldy)
	c.set(0xBC, "LDY", 3, 4, 1, ModeIndexedAbsoluteX, c.ldy)

	c.set(0x85, "STA", 2, 3, 0, ModeZeroPage, c.sta)
	c.set(0x95, "STA", 2, 4, 0, ModeIndexedZeroPageX, c.sta)
	c.set(0x8D, "STA", 3, 4, 0, ModeAbsolute, c.sta)
	c.set(0x9D, "STA", 3, 5, 0, ModeIndexedAbsoluteX, c.sta)
	c.set(0x99, "STA", 3, 5, 0, ModeIndexedAbsoluteY, c.sta)
	c.set(0x81, "STA", 2, 6, 0, ModeIndexedIndirectX, c.sta)
	c.set(0x91, "STA", 2, 6, 0, ModeIndirectIndexedY, c.sta)

	c.set(0x86, "STX", 2, 3, 0, ModeZeroPage, c.stx)
	c.set(0x96, "STX", 2, 4, 0, ModeIndexedZeroPageY, c.stx)
	c.set(0x8E, "STX", 3, 4, 0, ModeAbsolute, c.stx)

	c.set(0x84, "STY", 2, 3, 0, ModeZeroPage, c.sty)
	c.set(0x94, "STY", 2, 4, 0, ModeIndexedZeroPageX, c.sty)
	c.set(0x8C, "STY", 3, 4, 0, ModeAbsolute, c.sty)

	c.set(0xAA, "TAX", 1, 2, 0, ModeImplied, c.tax)
	c.set(0xA8, "TAY", 1, 2, 0, ModeImplied, c.tay)
	c.set(0x8A, "TXA", 1, 2, 0, ModeImplied, c.txa)
	c.set(0x98, "TYA", 1, 2, 0, ModeImplied, c.tya)
	c.set(0x9A, "TXS", 1, 2, 0, ModeImplied, c.txs)
	c.set(0xBA, "TSX", 1, 2, 0, ModeImplied, c.tsx)

	c.set(0x48, "PHA", 1, 3, 0, ModeImplied, c.pha)
	c.set(0x08, "PHP", 1, 3, 0, ModeImplied, c.php)
	c.set(0x68, "PLA", 1, 4, 0, ModeImplied, c.pla)
	c.set(0x28, "PLP", 1, 4, 0, ModeImplied, c.plp)

	// Logical and arithmetic commands
	c.set(0x09, "ORA", 2, 2, 0, ModeImmediate, c.ora)
	c.set(0x05, "ORA", 2, 3, 0, ModeZeroPage, c.ora)
	c.set(0x15, "ORA", 2, 4, 0, ModeIndexedZeroPageX, c.ora)
	c.set(0x0D, "ORA", 3, 4, 0, ModeAbsolute, c.ora)
	c.set(0x1D, "ORA", 3, 4, 1, ModeIndexedAbsoluteX, c.ora)
	c.set(0x19, "ORA", 3, 4, 1, ModeIndexedAbsoluteY, c.ora)
	c.set(0x01, "ORA", 2, 6, 0, ModeIndexedIndirectX, c.ora)
	c.set(0x11, "ORA", 2, 5, 1, ModeIndirectIndexedY, c.ora)

	c.set(0x29, "AND", 2, 2, 0, ModeImmediate, c.and)
	c.set(0x25, "AND", 2, 3, 0, ModeZeroPage, c.and)
	c.set(0x35, "AND", 2, 4, 0, ModeIndexedZeroPageX, c.and)
	c.set(0x2D, "AND", 3, 4, 0, ModeAbsolute, c.and)
	c.set(0x3D, "AND", 3, 4, 1, ModeIndexedAbsoluteX, c.and)
	c.set(0x39, "AND", 3, 4, 1, ModeIndexedAbsoluteY, c.and)
	c.set(0x21, "AND", 2, 6, 0, ModeIndexedIndirectX, c.and)
	c.set(0x31, "AND", 2, 5, 1, ModeIndirectIndexedY, c.and)

	c.set(0x49, "EOR", 2, 2, 0, ModeImmediate, c.eor)
	c.set(0x45, "EOR", 2, 3, 0, ModeZeroPage, c.eor)
	c.set(0x55, "EOR", 2, 4, 0, ModeIndexedZeroPageX, c.eor)
	c.set(0x4D, "EOR", 3, 4, 0, ModeAbsolute, c.eor)
	c.set(0x5D, "EOR", 3, 4, 1, ModeIndexedAbsoluteX, c.eor)
	c.set(0x59, "EOR", 3, 4, 1, ModeIndexedAbsoluteY, c.eor)
	c.set(0x41, "EOR", 2, 6, 0, ModeIndexedIndirectX, c.eor)
	c.set(0x51, "EOR", 2, 5, 1, ModeIndirectIndexedY, c.eor)

	c.set(0x69, "ADC", 2, 2, 0, ModeImmediate, c.adc)
	c.set(0x65, "ADC", 2, 3, 0, ModeZeroPage, c.adc)
	c.set(0x75, "ADC", 2, 4, 0, ModeIndexedZeroPageX, c.adc)
	c.set(0x6D, "ADC", 3, 4, 0, ModeAbsolute, c.adc)
	c.set(0x7D, "ADC", 3, 4, 1, ModeIndexedAbsoluteX, c.adc)
	c.set(0x79, "ADC", 3, 4, 1, ModeIndexedAbsoluteY, c.adc)
	c.set(0x61, "ADC", 2, 6, 0, ModeIndexedIndirectX, c.adc)
	c.set(0x71, "ADC", 2, 5, 1, ModeIndirectIndexedY, c.adc)

	c.set(0xE9, "SBC", 2, 2, 0, ModeImmediate, c.sbc)
	c.set(0xE5, "SBC", 2, 3, 0, ModeZeroPage, c.sbc)
	c.set(0xF5, "SBC", 2, 4, 0, ModeIndexedZeroPageX, c.sbc)
	c.set(0xED, "SBC", 3, 4, 0, ModeAbsolute, c.sbc)
	c.set(0xFD, "SBC", 3, 4, 1, ModeIndexedAbsoluteX, c.sbc)
	c.set(0xF9, "SBC", 3, 4, 1, ModeIndexedAbsoluteY, c.sbc)
	c.set(0xE1, "SBC", 2, 6, 0, ModeIndexedIndirectX, c.sbc)
	c.set(0xF1, "SBC", 2, 5, 1, ModeIndirectIndexedY, c.sbc)

	c.set(0xC9, "CMP", 2, 2, 0, ModeImmediate, c.cmp)
	c.set(0xC5, "CMP", 2, 3, 0, ModeZeroPage, c.cmp)
	c.set(0xD5, "CMP", 2, 4, 0, ModeIndexedZeroPageX, c.cmp)
	c.set(0xCD, "CMP", 3, 4, 0, ModeAbsolute, c.cmp)
	c.set(0xDD, "CMP", 3, 4, 1, ModeIndexedAbsoluteX, c.cmp)
	c.set(0xD9, "CMP", 3, 4, 1, ModeIndexedAbsoluteY, c.cmp)
	c.set(0xC1, "CMP", 2, 6, 0, ModeIndexedIndirectX, c.cmp)
	c.set(0xD1, "CMP", 2, 5, 1, ModeIndirectIndexedY, c.cmp)

	c.set(0xE0, "CPX", 2, 2, 0, ModeImmediate, c.cpx)
	c.set(0xE4, "CPX", 2, 3, 0, ModeZeroPage, c.cpx)
	c.set(0xEC, "CPX", 3, 4, 0, ModeAbsolute, c.cpx)

	c.set(0xC0, "CPY", 2, 2, 0, ModeImmediate, c.cpy)
	c.set(0xC4, "CPY", 2, 3, 0, ModeZeroPage, c.cpy)
	c.set(0xCC, "CPY", 3, 4, 0, ModeAbsolute, c.cpy)

	c.set(0xE6, "INC", 2, 5, 0, ModeZeroPage, c.inc)
	c.set(0xF6, "INC", 2, 6, 0, ModeIndexedZeroPageX, c.inc)
	c.set(0xEE, "INC", 3, 6, 0, ModeAbsolute, c.inc)
	c.set(0xFE, "INC", 3, 7, 0, ModeIndexedAbsoluteX, c.inc)
	c.set(0xE8, "INX", 1, 2, 0, ModeImplied, c.inx)
	c.set(0xC8, "INY", 1, 2, 0, ModeImplied, c.iny)

	c.set(0xC6, "DEC", 2, 5, 0, ModeZeroPage, c.dec)
	c.set(0xD6, "DEC", 2, 6, 0, ModeIndexedZeroPageX, c.dec)
	c.set(0xCE, "DEC", 3, 6, 0, ModeAbsolute, c.dec)
	c.set(0xDE, "DEC", 3, 7, 0, ModeIndexedAbsoluteX, c.dec)
	c.set(0xCA, "DEX", 1, 2, 0, ModeImplied, c.dex)
	c.set(0x88, "DEY", 1, 2, 0, ModeImplied, c.dey)

	c.set(0x0A, "ASL", 1, 2, 0, ModeAccumulator, c.asl)
	c.set(0x06, "ASL", 2, 5, 0, ModeZeroPage, c.asl)
	c.set(0x16, "ASL", 2, 6, 0, ModeIndexedZeroPageX, c.asl)
	c.set(0x0E, "ASL", 3, 6, 0, ModeAbsolute, c.asl)
	c.set(0x1E, "ASL", 3, 7, 0, ModeIndexedAbsoluteX, c.asl)

	c.set(0x4A, "LSR", 1, 2, 0, ModeAccumulator, c.lsr)
	c.set(0x46, "LSR", 2, 5, 0, ModeZeroPage, c.lsr)
	c.set(0x56, "LSR", 2, 6, 0, ModeIndexedZeroPageX, c.lsr)
	c.set(0x4E, "LSR", 3, 6, 0, ModeAbsolute, c.lsr)
	c.set(0x5E, "LSR", 3, 7, 0, ModeIndexedAbsoluteX, c.lsr)

	c.set(0x2A, "ROL", 1, 2, 0, ModeAccumulator, c.rol)
	c.set(0x26, "ROL", 2, 5, 0, ModeZeroPage, c.rol)
	c.set(0x36, "ROL", 2, 6, 0, ModeIndexedZeroPageX, c.rol)
	c.set(0x2E, "ROL", 3, 6, 0, ModeAbsolute, c.rol)
	c.set(0x3E, "ROL", 3, 7, 0, ModeIndexedAbsoluteX, c.rol)

	c.set(0x6A, "ROR", 1, 2, 0, ModeAccumulator, c.ror)
	c.set(0x66, "ROR", 2, 5, 0, ModeZeroPage, c.ror)
	c.set(0x76, "ROR", 2, 6, 0, ModeIndexedZeroPageX, c.ror)
	c.set(0x6E, "ROR", 3, 6, 0, ModeAbsolute, c.ror)
	c.set(0x7E, "ROR", 3, 7, 0, ModeIndexedAbsoluteX, c.ror)

	// Jump/Flag commands
	c.set(0x4C, "JMP", 3, 3, 0, ModeAbsolute, c.jmp)
	c.set(0x6C, "JMP", 3, 5, 0, ModeIndirect, c.jmp)
	c.set(0x20, "JSR", 3, 6, 0, ModeAbsolute, c.jsr)
	c.set(0x60, "RTS", 1, 6, 0, ModeImplied, c.rts)
	c.set(0x40, "RTI", 1, 6, 0, ModeImplied, c.rti)

	c.set(0x10, "BPL", 2, 2, 0, ModeRelative, c.bpl)
	c.set(0x30, "BMI", 2, 2, 0, ModeRelative, c.bmi)
	c.set(0x50, "BVC", 2, 2, 0, ModeRelative, c.bvc)
	c.set(0x70, "BVS", 2, 2, 0, ModeRelative, c.bvs)
	c.set(0x90, "BCC", 2, 2, 0, ModeRelative, c.bcc)
	c.set(0xB0, "BCS", 2, 2, 0, ModeRelative, c.bcs)
	c.set(0xD0, "BNE", 2, 2, 0, ModeRelative, c.bne)
	c.set(0xF0, "BEQ", 2, 2, 0, ModeRelative, c.beq)

	c.set(0x24, "BIT", 2, 3, 0, ModeZeroPage, c.bit)
	c.set(0x2C, "BIT", 3, 4, 0, ModeAbsolute, c.bit)

	c.set(0x18, "CLC", 1, 2, 0, ModeImplied, c.clc)
	c.set(0x38, "SEC", 1, 2, 0, ModeImplied, c.sec)
	c.set(0xD8, "CLD", 1, 2, 0, ModeImplied, c.cld)
	c.set(0xF8, "SED", 1, 2, 0, ModeImplied, c.sed)
	c.set(0x58, "CLI", 1, 2, 0, ModeImplied, c.cli)
	c.set(0x78, "SEI", 1, 2, 0, ModeImplied, c.sei)
	c.set(0xB8, "CLV", 1, 2, 0, ModeImplied, c.clv)

	c.set(0x00, "BRK", 1, 7, 0, ModeImplied, c.brk)
	c.set(0xEA, "NOP", 1, 2, 0, ModeImplied, c.nop)

	// Undocumented opcodes. Games rarely touch these, so for now they only
	// advance the program counter and the clock by the documented amounts.
	c.und(0x07, "SLO", 2, 5, ModeZeroPage)
	c.und(0x17, "SLO", 2, 6, ModeIndexedZeroPageX)
	c.und(0x0F, "SLO", 3, 6, ModeAbsolute)
	c.und(0x1F, "SLO", 3, 7, ModeIndexedAbsoluteX)
	c.und(0x1B, "SLO", 3, 7, ModeIndexedAbsoluteY)
	c.und(0x03, "SLO", 2, 8, ModeIndexedIndirectX)
	c.und(0x13, "SLO", 2, 8, ModeIndirectIndexedY)

	c.und(0x27, "RLA", 2, 5, ModeZeroPage)
	c.und(0x37, "RLA", 2, 6, ModeIndexedZeroPageX)
	c.und(0x2F, "RLA", 3, 6, ModeAbsolute)
	c.und(0x3F, "RLA", 3, 7, ModeIndexedAbsoluteX)
	c.und(0x3B, "RLA", 3, 7, ModeIndexedAbsoluteY)
	c.und(0x23, "RLA", 2, 8, ModeIndexedIndirectX)
	c.und(0x33, "RLA", 2, 8, ModeIndirectIndexedY)

	c.und(0x47, "SRE", 2, 5, ModeZeroPage)
	c.und(0x57, "SRE", 2, 6, ModeIndexedZeroPageX)
	c.und(0x4F, "SRE", 3, 6, ModeAbsolute)
	c.und(0x5F, "SRE", 3, 7, ModeIndexedAbsoluteX)
	c.und(0x5B, "SRE", 3, 7, ModeIndexedAbsoluteY)
	c.und(0x43, "SRE", 2, 8, ModeIndexedIndirectX)
	c.und(0x53, "SRE", 2, 8, ModeIndirectIndexedY)

	c.und(0x67, "RRA", 2, 5, ModeZeroPage)
	c.und(0x77, "RRA", 2, 6, ModeIndexedZeroPageX)
	c.und(0x6F, "RRA", 3, 6, ModeAbsolute)
	c.und(0x7F, "RRA", 3, 7, ModeIndexedAbsoluteX)
	c.und(0x7B, "RRA", 3, 7, ModeIndexedAbsoluteY)
	c.und(0x63, "RRA", 2, 8, ModeIndexedIndirectX)
	c.und(0x73, "RRA", 2, 8, ModeIndirectIndexedY)

	c.und(0xC7, "DCP", 2, 5, ModeZeroPage)
	c.und(0xD7, "DCP", 2, 6, ModeIndexedZeroPageX)
	c.und(0xCF, "DCP", 3, 6, ModeAbsolute)
	c.und(0xDF, "DCP", 3, 7, ModeIndexedAbsoluteX)
	c.und(0xDB, "DCP", 3, 7, ModeIndexedAbsoluteY)
	c.und(0xC3, "DCP", 2, 8, ModeIndexedIndirectX)
	c.und(0xD3, "DCP", 2, 8, ModeIndirectIndexedY)

	c.und(0xE7, "ISB", 2, 5, ModeZeroPage)
	c.und(0xF7, "ISB", 2, 6, ModeIndexedZeroPageX)
	c.und(0xEF, "ISB", 3, 6, ModeAbsolute)
	c.und(0xFF, "ISB", 3, 7, ModeIndexedAbsoluteX)
	c.und(0xFB, "ISB", 3, 7, ModeIndexedAbsoluteY)
	c.und(0xE3, "ISB", 2, 8, ModeIndexedIndirectX)
	c.und(0xF3, "ISB", 2, 8, ModeIndirectIndexedY)

	c.und(0x87, "SAX", 2, 3, ModeZeroPage)
	c.und(0x97, "SAX", 2, 4, ModeIndexedZeroPageY)
	c.und(0x8F, "SAX", 3, 4, ModeAbsolute)
	c.und(0x83, "SAX", 2, 6, ModeIndexedIndirectX)

	c.und(0xAB, "LAX", 2, 2, ModeImmediate)
	c.und(0xA7, "LAX", 2, 3, ModeZeroPage)
	c.und(0xB7, "LAX", 2, 4, ModeIndexedZeroPageY)
	c.und(0xAF, "LAX", 3, 4, ModeAbsolute)
	c.und(0xBF, "LAX", 3, 4, ModeIndexedAbsoluteY)
	c.und(0xA3, "LAX", 2, 6, ModeIndexedIndirectX)
	c.und(0xB3, "LAX", 2, 5, ModeIndirectIndexedY)

	c.und(0x1A, "NOP", 1, 2, ModeImplied)
	c.und(0x3A, "NOP", 1, 2, ModeImplied)
	c.und(0x5A, "NOP", 1, 2, ModeImplied)
	c.und(0x7A, "NOP", 1, 2, ModeImplied)
	c.und(0xDA, "NOP", 1, 2, ModeImplied)
	c.und(0xFA, "NOP", 1, 2, ModeImplied)

	c.und(0x04, "DOP", 2, 3, ModeZeroPage)
	c.und(0x44, "DOP", 2, 3, ModeZeroPage)
	c.und(0x64, "DOP", 2, 3, ModeZeroPage)
	c.und(0x14, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0x34, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0x54, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0x74, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0xD4, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0xF4, "DOP", 2, 4, ModeIndexedZeroPageX)
	c.und(0x80, "DOP", 2, 2, ModeImmediate)
	c.und(0x82, "DOP", 2, 2, ModeImmediate)
	c.und(0x89, "DOP", 2, 2, ModeImmediate)
	c.und(0xC2, "DOP", 2, 2, ModeImmediate)
	c.und(0xE2, "DOP", 2, 2, ModeImmediate)

	c.und(0x0C, "TOP", 3, 4, ModeAbsolute)
	c.und(0x1C, "TOP", 3, 4, ModeIndexedAbsoluteX)
	c.und(0x3C, "TOP", 3, 4, ModeIndexedAbsoluteX)
	c.und(0x5C, "TOP", 3, 4, ModeIndexedAbsoluteX)
	c.und(0x7C, "TOP", 3, 4, ModeIndexedAbsoluteX)
	c.und(0xDC, "TOP", 3, 4, ModeIndexedAbsoluteX)
	c.und(0xFC, "TOP", 3, 4, ModeIndexedAbsoluteX)

	c.und(0x0B, "ANC", 2, 2, ModeImmediate)
	c.und(0x2B, "ANC", 2, 2, ModeImmediate)
	c.und(0x4B, "ALR", 2, 2, ModeImmediate)
	c.und(0x6B, "ARR", 2, 2, ModeImmediate)
	c.und(0x8B, "XAA", 2, 2, ModeImmediate)
	c.und(0xCB, "AXS", 2, 2, ModeImmediate)
	c.und(0xEB, "SBC", 2, 2, ModeImmediate)

	c.und(0x93, "AHX", 2, 6, ModeIndirectIndexedY)
	c.und(0x9F, "AHX", 3, 5, ModeIndexedAbsoluteY)
	c.und(0x9C, "SHY", 3, 5, ModeIndexedAbsoluteX)
	c.und(0x9E, "SHX", 3, 5, ModeIndexedAbsoluteY)
	c.und(0x9B, "TAS", 3, 5, ModeIndexedAbsoluteY)
	c.und(0xBB, "LAS", 3, 4, ModeIndexedAbsoluteY)

	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		c.kilOp(op)
	}
}
