package ui

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"

	"github.com/tiagolobocastro/nescore/lib/common"
)

const (
	screenFrameRatio = 3
	screenXWidth     = common.FrameXWidth * screenFrameRatio
	screenYHeight    = common.FrameYHeight * screenFrameRatio
)

// Console is the slice of the emulator the screen needs: input injection
// and the operation requests bound to hotkeys.
type Console interface {
	Poke(controllerId uint8, button uint8, pressed bool)
	Reset()
	Save()
	Load()
	Stop()
}

type Screen struct {
	nes Console

	// window where we draw the sprite
	window *pixelgl.Window

	// front and back buffers
	buffer0 *pixel.PictureData
	buffer1 *pixel.PictureData
	sprite  *pixel.Sprite

	framebuffer *common.Framebuffer

	// FPS stats
	fpsChannel   <-chan time.Time
	fpsLastFrame int
}

func (s *Screen) Init(nes Console, framebuffer *common.Framebuffer) {
	s.nes = nes
	s.framebuffer = framebuffer

	s.setSprite()
}

func (s *Screen) Run() {
	go func() {
		runtime.LockOSThread()
		pixelgl.Run(s.runThread)
		os.Exit(0)
	}()
}

func (s *Screen) runThread() {
	cfg := pixelgl.WindowConfig{
		Title:  "NesCore",
		Bounds: pixel.R(0, 0, screenXWidth, screenYHeight),
		VSync:  true,
	}
	window, err := pixelgl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}

	s.window = window
	s.fpsChannel = time.Tick(time.Second)
	s.fpsLastFrame = 0

	s.runner()
}

func (s *Screen) runner() {
	lastLoopFrames := 0
	for !s.window.Closed() {

		<-s.framebuffer.FrameUpdated

		frameDiff := s.framebuffer.Frames - lastLoopFrames
		if frameDiff > 0 {
			if frameDiff > 1 {
				fmt.Printf("Oops, skipped %v frames!\n", frameDiff)
			}

			s.draw()
			s.window.Update()
			lastLoopFrames = s.framebuffer.Frames
		}

		s.updateFpsTitle()
		s.updateControllers()
	}
	s.nes.Stop()
}

var buttons = [8]struct {
	id  uint8
	key pixelgl.Button
}{
	{common.BitA, pixelgl.KeyS},
	{common.BitB, pixelgl.KeyA},
	{common.BitSelect, pixelgl.KeyLeftShift},
	{common.BitStart, pixelgl.KeyEnter},
	{common.BitUp, pixelgl.KeyUp},
	{common.BitDown, pixelgl.KeyDown},
	{common.BitLeft, pixelgl.KeyLeft},
	{common.BitRight, pixelgl.KeyRight},
}

func (s *Screen) updateControllers() {
	onePressed := false
	for _, button := range buttons {
		pressed := s.window.Pressed(button.key)
		s.nes.Poke(0, button.id, pressed)
		if pressed {
			onePressed = true
		}
	}

	if s.window.Pressed(pixelgl.KeyLeftControl) && s.window.JustPressed(pixelgl.KeyR) {
		s.nes.Reset()
		onePressed = true
	}
	if s.window.JustPressed(pixelgl.KeyLeftControl) && s.window.Pressed(pixelgl.KeyS) ||
		s.window.JustPressed(pixelgl.KeyS) && s.window.Pressed(pixelgl.KeyLeftControl) {
		s.nes.Save()
		onePressed = true
	}
	if s.window.JustPressed(pixelgl.KeyLeftControl) && s.window.Pressed(pixelgl.KeyL) ||
		s.window.JustPressed(pixelgl.KeyL) && s.window.Pressed(pixelgl.KeyLeftControl) {
		s.nes.Load()
		onePressed = true
	}

	if onePressed {
		s.window.UpdateInput()
	}
}

func (s *Screen) updateFpsTitle() {
	select {
	case <-s.fpsChannel:
		frames := s.framebuffer.Frames - s.fpsLastFrame
		s.fpsLastFrame = s.framebuffer.Frames

		s.window.SetTitle(fmt.Sprintf("NesCore | FPS: %d", frames))
	default:
	}
}

func (s *Screen) draw() {
	s.updateSprite()

	// the framebuffer is top-left row major, pixel pictures are bottom-left,
	// the negative Y scale flips the image the right way up
	s.sprite.Draw(s.window, pixel.IM.
		Moved(s.window.Bounds().Center()).
		ScaledXY(s.window.Bounds().Center(), pixel.V(screenFrameRatio, -screenFrameRatio)))
}

func (s *Screen) updateSprite() {
	if s.framebuffer.FrameIndex == 1 {
		// ppu is drawing new pixels on buffer1, the stable frame is buffer0
		s.sprite = pixel.NewSprite(s.buffer0, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	} else {
		s.sprite = pixel.NewSprite(s.buffer1, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	}
}

func (s *Screen) setSprite() {
	s.buffer0 = &pixel.PictureData{
		Pix:    s.framebuffer.Buffer0,
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}

	s.buffer1 = &pixel.PictureData{
		Pix:    s.framebuffer.Buffer1,
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}

	s.updateSprite()
}
