package hud

import (
	"image/color"

	"github.com/automoto/fragclient/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var attackButtonColor = color.NRGBA{R: 255, G: 64, B: 64, A: 255}

// DrawAttackButton draws the fading fire button a touch tap leaves behind.
func DrawAttackButton(screen *ebiten.Image, t *components.TouchData) {
	ab := t.AttackButton
	alpha := ab[components.AttackButtonAlpha]
	if alpha <= 0 {
		return
	}
	c := attackButtonColor
	c.A = uint8(min(alpha, 1) * 255)
	x, y := float32(ab[components.AttackButtonX]), float32(ab[components.AttackButtonY])
	w, h := float32(ab[components.AttackButtonW]), float32(ab[components.AttackButtonH])
	vector.StrokeRect(screen, x, y, w, h, 2, c, false)
}
