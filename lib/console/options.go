package console

import (
	"fmt"
)

func (c *Console) SetCart(path string) error {
	c.nes.cartPath = path
	return nil
}
func (c *Console) SetCartData(raw []byte) error {
	c.nes.cartData = raw
	return nil
}
func (c *Console) SetVerbose(verbose bool) error {
	c.nes.verbose = verbose
	return nil
}
func (c *Console) SetFreeRun(freeRun bool) error {
	c.nes.freeRun = freeRun
	return nil
}
func (c *Console) SetSpriteLimit(limit bool) error {
	c.nes.spriteLimit = limit
	return nil
}
func (c *Console) SetPalette(path string) error {
	c.nes.palettePath = path
	return nil
}

func (c *Console) SetOptions(options ...func(*Console) error) error {
	for i, option := range options {
		if err := option(c); err != nil {
			return fmt.Errorf("failed to set option index %d: %w", i, err)
		}
	}
	return nil
}

func CartPath(path string) func(c *Console) error {
	return func(c *Console) error {
		return c.SetCart(path)
	}
}

func CartData(raw []byte) func(c *Console) error {
	return func(c *Console) error {
		return c.SetCartData(raw)
	}
}

func Verbose(verbose bool) func(c *Console) error {
	return func(c *Console) error {
		return c.SetVerbose(verbose)
	}
}

func FreeRun(freeRun bool) func(c *Console) error {
	return func(c *Console) error {
		return c.SetFreeRun(freeRun)
	}
}

func SpriteLimit(limit bool) func(c *Console) error {
	return func(c *Console) error {
		return c.SetSpriteLimit(limit)
	}
}

// PalettePath loads a 64 entry rgb .pal file in place of the built in palette.
func PalettePath(path string) func(c *Console) error {
	return func(c *Console) error {
		return c.SetPalette(path)
	}
}
