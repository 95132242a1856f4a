package mappers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/tiagolobocastro/nescore/lib/common"
)

const (
	mapperNROM  = 0
	mapperUNROM = 2
	mapperCNROM = 3
)

// ErrInvalidFormat covers truncated images, bad magic numbers and mappers
// the emulator does not know about.
var ErrInvalidFormat = errors.New("invalid cartridge image")

type Mapper interface {
	common.BusInt
	Init()
	Tick()
}

var CartEndianness = binary.LittleEndian

// BusInt (via the Mapper)
type Cartridge struct {
	config  iNESConfig
	version iNESFormat
	cart    string

	prgRom *common.Rom
	prgRam *common.Ram
	chr    *common.Rom
	Tables common.NameTables

	Mapper Mapper
}

// defaultInit gives the cartridge writable rom and a nrom mapper so tests
// can soft load code without an image.
func (c *Cartridge) defaultInit() error {
	c.prgRom.Init(16384*4, true)
	c.chr.Init(16384, true)
	c.prgRam.Init(16384)
	c.Tables.Init(common.VerticalMirroring)

	c.Mapper, _ = c.newCartMapper(mapperNROM)
	c.Mapper.Init()

	return nil
}

// Init loads a cartridge from a .nes file, or sets up an empty soft
// loadable cartridge when the path is empty.
func (c *Cartridge) Init(cartPath string) error {
	c.cart = cartPath

	c.prgRom = new(common.Rom)
	c.prgRam = new(common.Ram)
	c.chr = new(common.Rom)

	if c.cart == "" {
		return c.defaultInit()
	}

	file, err := os.Open(c.cart)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("error closing cart file: %v", err)
		}
	}()

	return c.load(file)
}

// InitData loads a cartridge from an in-memory .nes image.
func (c *Cartridge) InitData(raw []byte) error {
	c.cart = ""

	c.prgRom = new(common.Rom)
	c.prgRam = new(common.Ram)
	c.chr = new(common.Rom)

	return c.load(bytes.NewReader(raw))
}

func (c *Cartridge) load(reader io.Reader) error {
	header := iNESHeader{}
	if err := binary.Read(reader, CartEndianness, &header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	version, err := header.Version()
	if err != nil {
		return err
	}
	c.version = version

	if c.config, err = header.Config(); err != nil {
		return err
	}

	if c.config.console != consoleNES {
		return fmt.Errorf("%w: unsupported console type %v", ErrInvalidFormat, c.config.console)
	}

	if c.config.prgRomSize == 0 {
		return fmt.Errorf("%w: no prg rom units", ErrInvalidFormat)
	}

	if c.config.trainer {
		trainer := make([]byte, 512)
		if _, err = io.ReadFull(reader, trainer); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}

	c.prgRom.Init(c.config.prgRomSize, false)
	if err = c.prgRom.LoadFrom(reader); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	c.prgRam.Init(c.config.prgRamSize)
	if c.config.battery && c.cart != "" {
		c.prgRam.LoadFromFile(c.getRamSaveFile())
	}

	if c.config.chrRomSize == 0 {
		// the board uses CHR RAM
		c.chr.Init(0x4000, true)
	} else {
		c.chr.Init(c.config.chrRomSize, false)
		if err = c.chr.LoadFrom(reader); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}

	if c.Mapper, err = c.newCartMapper(c.config.mapper); err != nil {
		return err
	}
	c.Mapper.Init()
	c.Tables.Init(common.NameTableMirroring(c.config.mirror))
	return nil
}

func (c *Cartridge) newCartMapper(mapper byte) (Mapper, error) {
	switch mapper {
	case mapperNROM:
		return &MapperNROM{cart: c}, nil
	case mapperUNROM:
		return &MapperUNROM{cart: c}, nil
	case mapperCNROM:
		return &MapperCNROM{cart: c}, nil
	default:
		return nil, fmt.Errorf("%w: mapper %v not supported", ErrInvalidFormat, mapper)
	}
}

func (c *Cartridge) Ticks(nTicks int) {
	for i := 0; i < nTicks; i++ {
		c.Mapper.Tick()
	}
}

func (c *Cartridge) Stop() {
	if c.config.battery && c.cart != "" {
		if err := c.prgRam.SaveToFile(c.getRamSaveFile()); err != nil {
			log.Panicf("Failed to save game: %v", err)
		}
	}
}

func (c *Cartridge) Reset() {
	if c.cart != "" {
		if err := c.Init(c.cart); err != nil {
			log.Panicf("Failed to reset cartridge: %v", err)
		}
	}
}

func (c *Cartridge) SetMirroring(mirroring common.NameTableMirroring) {
	c.Tables.Mirroring = mirroring
}

// WriteRom16 is the soft load backdoor used by the code loading tests.
func (c *Cartridge) WriteRom16(addr uint16, val uint16) {
	c.prgRom.Write16(addr, val)
}

func (c *Cartridge) Serialise(s common.Serialiser) error {
	return s.Serialise(c.prgRom, c.prgRam, c.chr, &c.Tables, c.Mapper)
}
func (c *Cartridge) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(c.prgRom, c.prgRam, c.chr, &c.Tables, c.Mapper)
}

// GetStateSaveFile is where the console state snapshots live.
func (c *Cartridge) GetStateSaveFile() *os.File {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Panicf("Failed to get user homedir: %v", err)
	}
	_, romName := filepath.Split(c.cart)
	saveFolder := filepath.Join(homeDir, ".config", "nescore")
	save := filepath.Join(saveFolder, fmt.Sprintf("%s_%x.state", romName, c.prgRom.Hash()))
	if err := os.MkdirAll(saveFolder, 0700); err != nil {
		log.Panicf("Failed to create save folder: %v", err)
	}
	f, err := os.OpenFile(save, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		log.Panicf("Failed to open state save file: %v", err)
	}
	return f
}

// must be called after the prgRom is loaded
func (c *Cartridge) getRamSaveFile() *os.File {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Panicf("Failed to get user homedir: %v", err)
	}
	_, romName := filepath.Split(c.cart)
	// a hash of the prgRom keeps throwaway debug images ("a.nes") apart
	saveFolder := filepath.Join(homeDir, ".config", "nescore")
	save := filepath.Join(saveFolder, fmt.Sprintf("%s_%x", romName, c.prgRom.Hash()))
	if _, err := os.Stat(save); os.IsNotExist(err) {
		if err := os.MkdirAll(saveFolder, 0700); err != nil {
			log.Panicf("Failed to create save folder: %v", err)
		}
		f, err := os.Create(save)
		if err != nil {
			log.Panicf("Failed to create save file: %v", err)
		}
		f.Close()
	}
	f, err := os.OpenFile(save, os.O_RDWR, 0600)
	if err != nil {
		log.Panicf("Failed to open save file: %v", err)
	}
	return f
}
