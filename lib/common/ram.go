package common

import (
	"io"
	"os"
)

// BusInt
type Ram struct {
	ram []byte
}

func (r *Ram) Init(size int) {
	r.ram = make([]byte, size)
}

// Initf fills the ram with a fixed pattern, handy for OAM which powers
// up to garbage rather than zeroes.
func (r *Ram) Initf(size int, fill byte) {
	r.Init(size)
	for i := range r.ram {
		r.ram[i] = fill
	}
}

func (r *Ram) Size() uint16 {
	return uint16(len(r.ram))
}

func (r *Ram) Read8(addr uint16) uint8 {
	return r.ram[addr]
}
func (r *Ram) Write8(addr uint16, val uint8) {
	r.ram[addr] = val
}

// little endian
func (r *Ram) Read16(addr uint16) uint16 {
	return uint16(r.Read8(addr)) | uint16(r.Read8(addr+1))<<8
}
func (r *Ram) Write16(addr uint16, val uint16) {
	r.Write8(addr, uint8(val&0xFF))
	r.Write8(addr+1, uint8((val&0xFF00)>>8))
}

func (r *Ram) LoadFromFile(file *os.File) {
	// partial reads are fine, eg a save file smaller than prg-ram
	_, _ = io.ReadFull(file, r.ram)
}
func (r *Ram) SaveToFile(file *os.File) error {
	_, err := file.Write(r.ram)
	return err
}

func (r *Ram) Serialise(s Serialiser) error {
	return s.Serialise(r.ram)
}
func (r *Ram) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&r.ram)
}
