package common

type NameTableMirroring uint8

const (
	HorizontalMirroring NameTableMirroring = iota
	VerticalMirroring
	SingleScreenMirroring
	// cartridge supplies the extra vram, ciram is disabled
	QuadScreenMirroring
)

// NameTables folds the four logical nametables at $2000-$2FFF onto the
// console's 2KB of vram according to the mirroring mode the cartridge
// selects.
//
// BusInt
type NameTables struct {
	vRam Ram

	Mirroring NameTableMirroring
}

func (n *NameTables) Init(defaultMirror NameTableMirroring) {
	// sized for quad screen, the mirrored modes only ever touch 2KB of it
	n.vRam.Init(0x800 * 2)
	n.Mirroring = defaultMirror
}

func (n *NameTables) Read8(addr uint16) uint8 {
	return n.vRam.Read8(n.decode(addr))
}
func (n *NameTables) Write8(addr uint16, val uint8) {
	n.vRam.Write8(n.decode(addr), val)
}

func (n *NameTables) decode(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x400
	addr = addr % 0x400

	switch n.Mirroring {
	case HorizontalMirroring:
		// $2000 equals $2400 and $2800 equals $2C00
		table /= 2
	case VerticalMirroring:
		// $2000 equals $2800 and $2400 equals $2C00
		table %= 2
	case SingleScreenMirroring:
		table = 0
	case QuadScreenMirroring:
		// all four tables are distinct
	}

	return (table * 0x400) + addr
}

func (n *NameTables) Serialise(s Serialiser) error {
	return s.Serialise(&n.vRam, n.Mirroring)
}
func (n *NameTables) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&n.vRam, &n.Mirroring)
}
