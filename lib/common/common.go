package common

import "image/color"

const (
	FrameXWidth  = 256
	FrameYHeight = 240
)

// Interrupts is how the ppu pulls the cpu interrupt lines.
type Interrupts interface {
	Raise(uint8)
	Clear(uint8)
}

type OpRequest int

const (
	ResetRequest OpRequest = iota
	SaveRequest
	LoadRequest
	StopRequest
)

// Framebuffer double buffers the ppu pixel output: the ppu composites into
// the back buffer while the embedder reads the front one. Ownership of a
// completed frame moves on Swap, the buffer is overwritten two frames later.
type Framebuffer struct {
	Buffer0 []color.RGBA
	Buffer1 []color.RGBA

	// 0 - ppu draws on Buffer0, 1 - ppu draws on Buffer1
	FrameIndex   int
	FrameUpdated chan bool

	// number of completed frames
	Frames int
}

func (f *Framebuffer) Init() {
	f.Buffer0 = make([]color.RGBA, FrameXWidth*FrameYHeight)
	f.Buffer1 = make([]color.RGBA, FrameXWidth*FrameYHeight)
	f.FrameIndex = 0
	f.Frames = 0
	f.FrameUpdated = make(chan bool, 1)
}

func (f *Framebuffer) SetPixel(x uint8, y uint8, pixel color.RGBA) {
	offset := int(y)*FrameXWidth + int(x)
	if f.FrameIndex == 0 {
		f.Buffer0[offset] = pixel
	} else {
		f.Buffer1[offset] = pixel
	}
}

// Swap hands the just completed frame over and starts drawing on the other
// buffer. The notification never blocks the emulation loop; a slow embedder
// simply skips frames.
func (f *Framebuffer) Swap() {
	f.FrameIndex ^= 1
	f.Frames++

	select {
	case f.FrameUpdated <- true:
	default:
	}
}

// Frame is the completed front buffer.
func (f *Framebuffer) Frame() []color.RGBA {
	if f.FrameIndex == 1 {
		return f.Buffer0
	}
	return f.Buffer1
}

func (f *Framebuffer) Serialise(s Serialiser) error {
	return s.Serialise(f.Buffer0, f.Buffer1, f.FrameIndex, f.Frames)
}
func (f *Framebuffer) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&f.Buffer0, &f.Buffer1, &f.FrameIndex, &f.Frames)
}
