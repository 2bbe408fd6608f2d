package components

import "github.com/yohamta/donburi"

// FireData tracks railgun zoom and attack deferral between commands.
type FireData struct {
	RailgunZoomActive bool
	ZoomDeferred      int // >0 zoom in when it reaches 0, <0 zoom out
	AttackReleased    bool
	DeferShooting     bool
}

var Fire = donburi.NewComponentType[FireData]()
