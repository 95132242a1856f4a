package common

import "testing"

func Test_NameTableMirroring(t *testing.T) {
	tests := []struct {
		name      string
		mirroring NameTableMirroring
		// pairs of addresses which must alias, and ones which must not
		aliased  [][2]uint16
		distinct [][2]uint16
	}{
		{
			name:      "horizontal",
			mirroring: HorizontalMirroring,
			aliased:   [][2]uint16{{0x2000, 0x2400}, {0x2800, 0x2C00}},
			distinct:  [][2]uint16{{0x2000, 0x2800}},
		},
		{
			name:      "vertical",
			mirroring: VerticalMirroring,
			aliased:   [][2]uint16{{0x2000, 0x2800}, {0x2400, 0x2C00}},
			distinct:  [][2]uint16{{0x2000, 0x2400}},
		},
		{
			name:      "single screen",
			mirroring: SingleScreenMirroring,
			aliased:   [][2]uint16{{0x2000, 0x2400}, {0x2000, 0x2800}, {0x2000, 0x2C00}},
		},
		{
			name:      "quad screen",
			mirroring: QuadScreenMirroring,
			distinct:  [][2]uint16{{0x2000, 0x2400}, {0x2800, 0x2C00}, {0x2000, 0x2C00}},
		},
	}

	for _, test := range tests {
		tables := NameTables{}
		tables.Init(test.mirroring)

		for _, pair := range test.aliased {
			tables.Write8(pair[0]+0x10, 0xAB)
			if got := tables.Read8(pair[1] + 0x10); got != 0xAB {
				t.Errorf("[%s] %#04x and %#04x should alias", test.name, pair[0], pair[1])
			}
			tables.Write8(pair[0]+0x10, 0)
		}
		for _, pair := range test.distinct {
			tables.Write8(pair[0]+0x20, 0xCD)
			if got := tables.Read8(pair[1] + 0x20); got == 0xCD {
				t.Errorf("[%s] %#04x and %#04x should be distinct", test.name, pair[0], pair[1])
			}
			tables.Write8(pair[0]+0x20, 0)
		}
	}
}

func Test_NameTableMirrorRegion(t *testing.T) {
	tables := NameTables{}
	tables.Init(VerticalMirroring)

	// $3000-$3EFF mirrors $2000-$2EFF
	tables.Write8(0x2123, 0x42)
	if got := tables.Read8(0x3123); got != 0x42 {
		t.Errorf("read at 0x3123 = %#02x, want the value written at 0x2123", got)
	}
}
