package console

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const minUserFrac = 0.1

// Slide animates how far the console is pulled down, as a fraction of
// the screen height.
type Slide struct {
	speed    float32 // screen fractions per second
	userFrac float32
	display  float32
	open     bool
	tween    *gween.Tween
}

func NewSlide(speed float64) *Slide {
	return &Slide{speed: float32(speed), userFrac: 0.5}
}

// SetFrac sets the open height, clamped to [0.1, 1] so an open console
// is never invisible.
func (s *Slide) SetFrac(frac float64) {
	s.userFrac = min(max(float32(frac), minUserFrac), 1)
	if s.open {
		s.retarget()
	}
}

// Toggle opens or closes the console and reports whether it is now open.
func (s *Slide) Toggle() bool {
	s.SetOpen(!s.open)
	return s.open
}

func (s *Slide) SetOpen(open bool) {
	if open == s.open {
		return
	}
	s.open = open
	s.retarget()
}

// Close snaps the console shut with no animation.
func (s *Slide) Close() {
	s.open = false
	s.display = 0
	s.tween = nil
}

func (s *Slide) target() float32 {
	if s.open {
		return s.userFrac
	}
	return 0
}

func (s *Slide) retarget() {
	final := s.target()
	dist := final - s.display
	if dist < 0 {
		dist = -dist
	}
	if dist == 0 || s.speed <= 0 {
		s.display = final
		s.tween = nil
		return
	}
	s.tween = gween.New(s.display, final, dist/s.speed, ease.Linear)
}

// Run advances the slide by dt seconds and returns the displayed fraction.
func (s *Slide) Run(dt float64) float64 {
	if s.tween != nil {
		v, done := s.tween.Update(float32(dt))
		s.display = v
		if done {
			s.tween = nil
		}
	}
	return float64(s.display)
}

func (s *Slide) Frac() float64 { return float64(s.display) }

func (s *Slide) IsOpen() bool { return s.open }
