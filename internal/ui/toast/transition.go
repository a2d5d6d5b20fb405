package toast

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	slideFPS       = 60
	slideFrequency = 8.0
	slideDamping   = 0.9
	slideMaxFrames = 120
)

var frameInterval = time.Second / slideFPS

// slide springs the toast offset from 1 to 0 after a reveal.
type slide struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	frames int
	active bool
}

func newSlide() slide {
	return slide{
		spring: harmonica.NewSpring(harmonica.FPS(slideFPS), slideFrequency, slideDamping),
	}
}

func (s *slide) start() {
	s.pos = 1
	s.vel = 0
	s.frames = 0
	s.active = true
}

func (s *slide) stop() {
	s.pos = 0
	s.vel = 0
	s.active = false
}

// step advances one frame and reports whether the slide has settled.
func (s *slide) step() bool {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, 0)
	s.frames++
	if (math.Abs(s.pos) < 0.01 && math.Abs(s.vel) < 0.01) || s.frames >= slideMaxFrames {
		s.stop()
		return true
	}
	return false
}
