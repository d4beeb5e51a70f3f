package core

import "time"

// Viewport describes the terminal a session renders into and how often it
// redraws.
type Viewport struct {
	Width  int
	Height int
	FPS    int // render frames per second
}

// DefaultFPS is used when a viewport does not set a frame rate.
const DefaultFPS = 60

// DefaultViewport is a classic 80x24 terminal at DefaultFPS.
func DefaultViewport() Viewport {
	return Viewport{Width: 80, Height: 24, FPS: DefaultFPS}
}

// FrameInterval returns the time between render frames.
func (v Viewport) FrameInterval() time.Duration {
	fps := v.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
