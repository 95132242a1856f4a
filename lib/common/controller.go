package common

const (
	BitA = iota
	BitB
	BitSelect
	BitStart
	BitUp
	BitDown
	BitLeft
	BitRight
)

type nesController struct {
	buttons   [8]uint8
	targetBit uint8
}

func (n *nesController) Serialise(s Serialiser) error {
	return s.Serialise(n.buttons, n.targetBit)
}
func (n *nesController) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&n.buttons, &n.targetBit)
}

// Controllers is the pair of joypads mapped at $4016/$4017: writing the
// strobe latches the button state, reads then clock one button bit out at
// a time in the A,B,Select,Start,Up,Down,Left,Right order.
type Controllers struct {
	controllers [2]nesController
	strobe      uint8
}

func (c *Controllers) Init() {
	c.controllers = [2]nesController{}
	c.strobe = 0
}

func (c *Controllers) Reset() {
	c.Init()
}

// Poke presses or releases a single button, eg from a key event.
func (c *Controllers) Poke(controllerId uint8, button uint8, pressed bool) {
	controller := &c.controllers[controllerId]
	if pressed {
		controller.buttons[button] = 1
	} else {
		controller.buttons[button] = 0
	}
}

// Set replaces the whole button state with a mask, bit 0 is A through
// bit 7 which is Right.
func (c *Controllers) Set(controllerId uint8, buttons uint8) {
	controller := &c.controllers[controllerId]
	for bit := uint8(0); bit < 8; bit++ {
		controller.buttons[bit] = (buttons >> bit) & 1
	}
}

func (c *Controllers) readButton(controllerId uint8) uint8 {
	controller := &c.controllers[controllerId]

	if c.strobe&1 == 1 {
		// strobe held high keeps reloading the shift register,
		// reads return button A
		return controller.buttons[BitA]
	}

	if controller.targetBit < 8 {
		active := controller.buttons[controller.targetBit]
		controller.targetBit++
		return active
	}
	// official controllers return 1 after the eighth read
	return 1
}

// BusInt
func (c *Controllers) Read8(addr uint16) uint8 {
	switch addr {
	case 0x4016:
		return c.readButton(0)
	case 0x4017:
		return c.readButton(1)
	}
	return 0
}

func (c *Controllers) Write8(addr uint16, val uint8) {
	switch addr {
	case 0x4016:
		c.strobe = val & 0x1
		for i := range c.controllers {
			c.controllers[i].targetBit = 0
		}
	}
}

func (c *Controllers) Serialise(s Serialiser) error {
	for i := range c.controllers {
		if err := c.controllers[i].Serialise(s); err != nil {
			return err
		}
	}
	return s.Serialise(c.strobe)
}
func (c *Controllers) DeSerialise(s Serialiser) error {
	for i := range c.controllers {
		if err := c.controllers[i].DeSerialise(s); err != nil {
			return err
		}
	}
	return s.DeSerialise(&c.strobe)
}
