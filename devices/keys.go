package devices

import (
	cfg "github.com/automoto/fragclient/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyMap translates ebiten keys to client key numbers.
var keyMap = map[ebiten.Key]int{
	ebiten.KeyTab:          cfg.KeyTab,
	ebiten.KeyEnter:        cfg.KeyEnter,
	ebiten.KeyNumpadEnter:  cfg.KeyEnter,
	ebiten.KeyEscape:       cfg.KeyEscape,
	ebiten.KeySpace:        cfg.KeySpace,
	ebiten.KeyBackspace:    cfg.KeyBackspace,
	ebiten.KeyBackquote:    cfg.KeyConsole,
	ebiten.KeyArrowUp:      cfg.KeyUpArrow,
	ebiten.KeyArrowDown:    cfg.KeyDownArrow,
	ebiten.KeyArrowLeft:    cfg.KeyLeftArrow,
	ebiten.KeyArrowRight:   cfg.KeyRightArrow,
	ebiten.KeyAltLeft:      cfg.KeyAlt,
	ebiten.KeyAltRight:     cfg.KeyAlt,
	ebiten.KeyControlLeft:  cfg.KeyCtrl,
	ebiten.KeyControlRight: cfg.KeyCtrl,
	ebiten.KeyShiftLeft:    cfg.KeyShift,
	ebiten.KeyShiftRight:   cfg.KeyShift,
	ebiten.KeyPageUp:       cfg.KeyPgUp,
	ebiten.KeyPageDown:     cfg.KeyPgDn,
	ebiten.KeyHome:         cfg.KeyHome,
	ebiten.KeyEnd:          cfg.KeyEnd,
	ebiten.KeyMinus:        '-',
	ebiten.KeyEqual:        '=',
	ebiten.KeyBracketLeft:  '[',
	ebiten.KeyBracketRight: ']',
	ebiten.KeySemicolon:    ';',
	ebiten.KeyQuote:        '\'',
	ebiten.KeyComma:        ',',
	ebiten.KeyPeriod:       '.',
	ebiten.KeySlash:        '/',
	ebiten.KeyBackslash:    '\\',
}

var (
	letterKeys = []ebiten.Key{ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ}
	digitKeys  = []ebiten.Key{ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	fnKeys     = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12}
)

func init() {
	for i, k := range letterKeys {
		keyMap[k] = 'a' + i
	}
	for i, k := range digitKeys {
		keyMap[k] = '0' + i
	}
	for i, k := range fnKeys {
		keyMap[k] = cfg.KeyF1 + i
	}
}

var mouseButtons = []struct {
	button ebiten.MouseButton
	key    int
}{
	{ebiten.MouseButtonLeft, cfg.KeyMouse1},
	{ebiten.MouseButtonRight, cfg.KeyMouse2},
	{ebiten.MouseButtonMiddle, cfg.KeyMouse3},
	{ebiten.MouseButton3, cfg.KeyMouse4},
	{ebiten.MouseButton4, cfg.KeyMouse5},
}
