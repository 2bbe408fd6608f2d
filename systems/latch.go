package systems

import (
	"log"
	"time"

	"github.com/automoto/fragclient/components"
	"golang.org/x/time/rate"
)

var threeKeysLog = rate.Sometimes{Interval: time.Second}

// KeyDown records a press of b by source at downTime. A source already
// holding b is ignored, and a third concurrent source is dropped.
func KeyDown(b *components.ButtonState, source, downTime int) {
	if source == b.Down[0] || source == b.Down[1] {
		return // repeating key
	}

	switch {
	case b.Down[0] == 0:
		b.Down[0] = source
	case b.Down[1] == 0:
		b.Down[1] = source
	default:
		threeKeysLog.Do(func() {
			log.Printf("[input] three keys down for a button")
		})
		return
	}

	if b.Active {
		return // still down
	}
	b.DownTime = downTime
	b.Active = true
	b.WasPressed = true
}

// KeyUp releases source from b. The held time is banked into Msec once
// the last source lets go. An upTime of 0 means the release time is
// unknown and half a frame is assumed.
func KeyUp(b *components.ButtonState, source, upTime, frameMsec int) {
	switch source {
	case b.Down[0]:
		b.Down[0] = 0
	case b.Down[1]:
		b.Down[1] = 0
	default:
		return // key up without corresponding down
	}
	if b.Down[0] != 0 || b.Down[1] != 0 {
		return // some other key is still holding it down
	}

	b.Active = false
	if upTime != 0 {
		b.Msec += upTime - b.DownTime
	} else {
		b.Msec += frameMsec / 2
	}
}

// ReleaseAll clears b without banking time, as a release typed at the
// console with no source does.
func ReleaseAll(b *components.ButtonState) {
	b.Down = [2]int{}
	b.Active = false
}

// KeyState returns the fraction of the frame ending at frameTime that b was
// held, in [0, 1], and resets the bank.
func KeyState(b *components.ButtonState, frameTime, frameMsec int) float64 {
	msec := b.Msec
	b.Msec = 0

	if b.Active {
		if b.DownTime == 0 {
			msec = frameTime
		} else {
			msec += frameTime - b.DownTime
		}
		b.DownTime = frameTime
	}

	if frameMsec <= 0 {
		if msec > 0 {
			return 1
		}
		return 0
	}
	val := float64(msec) / float64(frameMsec)
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}
