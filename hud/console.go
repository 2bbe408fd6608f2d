// Package hud draws the console and chat line, the notify overlay, touch
// feedback and the debug graph.
package hud

import (
	"image/color"

	"github.com/automoto/fragclient/console"
	"github.com/automoto/fragclient/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// colorTable is indexed by console color code.
var colorTable = [8]color.RGBA{
	{0, 0, 0, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{255, 255, 0, 255},
	{0, 0, 255, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
	{255, 255, 255, 255},
}

var (
	consoleBackground = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	consoleEdge       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	scrollbackColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

const (
	charWidth  = 9 // advance of the 14pt console face
	lineHeight = 16
	notifyX    = 8
	notifyRows = 5
)

// ConsoleWidth is how many characters fit across a screen w pixels wide.
func ConsoleWidth(w int) int {
	return w/charWidth - 2
}

// DrawConsole draws the console pulled down to frac of the screen height,
// with the line being typed at the bottom.
func DrawConsole(screen *ebiten.Image, con *console.Console, frac float64, editLine string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	height := int(float64(h) * frac)
	if height <= 0 {
		return
	}
	if height > h {
		height = h
	}

	vector.FillRect(screen, 0, 0, float32(w), float32(height), consoleBackground, false)
	vector.FillRect(screen, 0, float32(height-2), float32(w), 2, consoleEdge, false)

	face := fonts.Console.Get()
	y := height - lineHeight/2
	text.Draw(screen, "]"+editLine+"_", face, charWidth, y, colorTable[7])
	y -= lineHeight

	rows := (height - lineHeight) / lineHeight
	lines, scrolledBack := con.Lines(rows)
	if scrolledBack && len(lines) > 0 {
		// mark the bottom row to show there is newer text below
		marker := ""
		for i := 0; i < ConsoleWidth(w); i += 4 {
			marker += "^   "
		}
		text.Draw(screen, marker, face, charWidth, y, scrollbackColor)
		y -= lineHeight
		lines = lines[:len(lines)-1]
	}
	for i := len(lines) - 1; i >= 0 && y > 0; i-- {
		drawLine(screen, lines[i], charWidth, y)
		y -= lineHeight
	}
}

// DrawNotify draws the lines printed in the last notifyTime ms over the
// top of the game view.
func DrawNotify(screen *ebiten.Image, con *console.Console, now, notifyTime int) {
	lines := con.NotifyLines(now, notifyTime)
	if len(lines) > notifyRows {
		lines = lines[len(lines)-notifyRows:]
	}
	y := lineHeight
	for _, l := range lines {
		drawLine(screen, l, notifyX, y)
		y += lineHeight
	}
}

// drawLine draws l one color run at a time.
func drawLine(screen *ebiten.Image, l console.Line, x, y int) {
	face := fonts.Console.Get()
	start := 0
	for i := 1; i <= len(l); i++ {
		if i < len(l) && l[i].Color == l[start].Color {
			continue
		}
		run := make([]byte, 0, i-start)
		for _, c := range l[start:i] {
			run = append(run, c.Ch)
		}
		text.Draw(screen, string(run), face, x+start*charWidth, y, colorTable[l[start].Color&7])
		start = i
	}
}

// DrawChat draws the message mode line under the notify overlay.
func DrawChat(screen *ebiten.Image, prompt, line string) {
	face := fonts.Notify.Get()
	y := lineHeight * (notifyRows + 2)
	text.Draw(screen, prompt+" "+line+"_", face, notifyX, y, colorTable[7])
}
