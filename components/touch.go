package components

import "github.com/yohamta/donburi"

// Attack button overlay slots in TouchData.AttackButton.
const (
	AttackButtonX = iota
	AttackButtonY
	AttackButtonW
	AttackButtonH
	AttackButtonAlpha
)

// TouchData is the state of touchscreen and screen joystick aiming.
type TouchData struct {
	MouseX, MouseY           int
	OldMouseX, OldMouseY     int
	MultitouchX, MultitouchY int
	TapMouseX, TapMouseY     int

	CameraYawSpeed           int // -1, 0, 1 while a finger rests on a screen edge
	CameraPitchSpeed         int
	CameraMultitouchYawSpeed int
	WeaponBarActive          bool

	MouseSwipingActive bool
	MultitouchActive   bool

	SwipeActivated          bool
	SwipeTime               int     // ms since the swipe began
	SwipeAngleRotate        float64 // outstanding yaw, degrees
	SwipeAngleRotatePitch   float64
	JoystickJumpTriggerTime int
	OldForwardMove          int8
	OldRightMove            int8
	OldJump                 int8

	AttackButton [5]float64 // x, y, w, h, alpha of the fading tap button
}

var Touch = donburi.NewComponentType[TouchData]()
