package hud

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var graphColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

const graphHeight = 64

// DrawGraph draws the debug graph samples, oldest first, as bars along the
// bottom of the screen. scale is how many pixels one sample unit is.
func DrawGraph(screen *ebiten.Image, samples []float64, scale float64) {
	if len(samples) == 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	base := float32(h)
	x := float32(w - len(samples))
	for _, v := range samples {
		bar := float32(v * scale)
		if bar > graphHeight {
			bar = graphHeight
		}
		if bar > 0 {
			vector.StrokeLine(screen, x, base, x, base-bar, 1, graphColor, false)
		}
		x++
	}
}
