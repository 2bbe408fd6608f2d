package components

import "github.com/yohamta/donburi"

// ViewData is the local view direction in degrees, indexed by
// gamemath.Pitch, Yaw and Roll.
type ViewData struct {
	ViewAngles   [3]float64
	AimingAngles [3]float64 // what goes into the command
	DeltaAngles  [3]int32   // server view offset, 16 bit wire angles
}

var View = donburi.NewComponentType[ViewData]()

// CgameData is what the game module tells the input pipeline each frame.
type CgameData struct {
	Weapon            uint8   // weapon currently selected
	Sensitivity       float64 // zoom sensitivity scale
	HoldingUsableItem bool
	WeaponBarWidth    int    // active weapon bar half width in 640 wide units, 0 when hidden
	WeaponBarWeapons  string // weapons on the bar, "1/2/5/"
	ServerTime        int32
}

var Cgame = donburi.NewComponentType[CgameData]()
