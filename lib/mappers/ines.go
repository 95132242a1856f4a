package mappers

import (
	"fmt"
)

// "NES" + EOF
const NESMagicConstant = 0x1A53454E

type iNESFormat int

const (
	iNESInvalid = iota
	iNES0       // Archaic iNES format
	iNES1
	iNES2
)

const (
	consoleNES = iota
	consoleVs
	consolePlayChoice
)

// iNESHeader is the raw 16 byte header at the start of every .nes image.
type iNESHeader struct {
	Flags [16]byte
}

type iNESConfig struct {
	console byte
	mapper  byte
	mirror  byte
	battery bool
	trainer bool

	prgRomSize int
	chrRomSize int
	prgRamSize int
}

func (h *iNESHeader) MagicNumber() int32 {
	return int32(h.Flags[3])<<24 |
		int32(h.Flags[2])<<16 |
		int32(h.Flags[1])<<8 |
		int32(h.Flags[0])
}

func (h *iNESHeader) Version() (iNESFormat, error) {
	if h.MagicNumber() != NESMagicConstant {
		return iNESInvalid, fmt.Errorf("%w: wrong magic number %#x", ErrInvalidFormat, h.MagicNumber())
	}

	// flags 7 bits 2-3: 0x8 means NES 2.0, 0x0 with a zeroed tail means
	// iNES 1.0, anything else falls back to the archaic format
	version := iNESFormat(iNES0)
	if (h.Flags[7] & 0x0C) == 0x8 {
		version = iNES2
	} else if (h.Flags[7] & 0x0C) == 0 {
		allZero := true
		for i := 12; (i < 16) && allZero; i++ {
			if h.Flags[i] != 0 {
				allZero = false
			}
		}
		if allZero {
			version = iNES1
		}
	}

	return version, nil
}

func (h *iNESHeader) Config() (iNESConfig, error) {
	version, err := h.Version()
	if err != nil {
		return iNESConfig{}, err
	}

	flags6 := h.Flags[6]
	mirror1 := flags6 & 1
	mirror2 := (flags6 >> 3) & 1

	config := iNESConfig{
		mapper:     flags6 >> 4,
		mirror:     mirror1 | mirror2<<1,
		battery:    (flags6>>1)&1 == 1,
		trainer:    flags6&4 == 4,
		prgRomSize: int(h.Flags[4]) * 16384,
		chrRomSize: int(h.Flags[5]) * 8192,
		prgRamSize: 8192,
	}

	if version == iNES0 {
		return config, nil
	}

	flags7 := h.Flags[7]
	config.mapper |= flags7 & 0xF0
	config.console = flags7 & 0x3

	// size value 0 infers 1 (8 KB) for compatibility, see PRG RAM circuit
	ramUnits := int(h.Flags[8])
	if ramUnits == 0 {
		ramUnits = 1
	}
	config.prgRamSize = ramUnits * 8192

	if version == iNES2 {
		// NES 2.0 moves the mapper top nibble and the ram sizing around,
		// only the subset shared with iNES 1.0 is honoured here
		config.prgRamSize = 8192
	}

	return config, nil
}
