package ppu

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_LoadPalette(t *testing.T) {
	p, _, _ := newTestPpu()

	pal := make([]byte, 64*3)
	pal[0], pal[1], pal[2] = 0x12, 0x34, 0x56
	pal[189], pal[190], pal[191] = 0x0A, 0x0B, 0x0C

	path := filepath.Join(t.TempDir(), "test.pal")
	if err := os.WriteFile(path, pal, 0o644); err != nil {
		t.Fatalf("failed to write palette file: %v", err)
	}

	if err := p.LoadPalette(path); err != nil {
		t.Fatalf("failed to load palette: %v", err)
	}

	if c := p.Palette.nesPalette[0]; c.R != 0x12 || c.G != 0x34 || c.B != 0x56 {
		t.Errorf("palette entry 0 = %v, want 12/34/56", c)
	}
	if c := p.Palette.nesPalette[63]; c.R != 0x0A || c.G != 0x0B || c.B != 0x0C {
		t.Errorf("palette entry 63 = %v, want 0a/0b/0c", c)
	}
}

func Test_LoadPaletteTruncated(t *testing.T) {
	p, _, _ := newTestPpu()

	path := filepath.Join(t.TempDir(), "short.pal")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatalf("failed to write palette file: %v", err)
	}

	if err := p.LoadPalette(path); err == nil {
		t.Errorf("loading a truncated palette should fail")
	}
	if err := p.LoadPalette(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Errorf("loading a missing palette should fail")
	}
}
