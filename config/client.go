package config

// InputProfile selects the movement and aiming strategy used when building
// commands.
type InputProfile int

const (
	ProfileDesktop InputProfile = iota
	ProfileTouch
	ProfileGamepad
)

var profileNames = []string{"desktop", "touch", "gamepad"}

func (p InputProfile) String() string {
	if int(p) >= 0 && int(p) < len(profileNames) {
		return profileNames[p]
	}
	return "unknown"
}

// ParseInputProfile maps a flag value to a profile.
func ParseInputProfile(s string) (InputProfile, bool) {
	for i, name := range profileNames {
		if name == s {
			return InputProfile(i), true
		}
	}
	return ProfileDesktop, false
}

// TouchControls is the touchscreen aiming scheme.
type TouchControls int

const (
	TouchFloatingCrosshair TouchControls = iota // crosshair follows the finger, fire button held
	TouchShootUnderFinger                       // tap turns toward the finger and fires
	TouchSwipeToAim                             // swipe rotates the view, keyboard fires
	TouchTapToFire                              // swipe to aim, tap the fading button to fire
	TouchAimUnderFinger                         // tap turns toward the finger, tap again to fire
)

// DebugMove selects what the debug graph plots.
type DebugMove int

const (
	DebugMoveOff DebugMove = iota
	DebugMoveYaw
	DebugMovePitch
)

// Gyroscope axis remap bits.
const (
	GyroSwapX  = 1
	GyroSwapY  = 2
	GyroSwapXY = 4
)

// Bounds for the packet tunables.
const (
	MinMaxPackets = 15
	MaxMaxPackets = 125
	MinPacketDup  = 0
	MaxPacketDup  = 5
)

// ClientConfig holds every tunable the input pipeline reads.
type ClientConfig struct {
	// Movement
	Run           bool    // always run; the speed button toggles walking
	PitchSpeed    float64 // edge camera pitch rate
	AngleSpeedKey float64 // turn rate multiplier while speed is held
	FreeLook      bool
	ThirdPerson   bool

	// Mouse and touch aiming
	Sensitivity              float64
	MouseYaw                 float64
	MousePitch               float64
	MouseSide                float64 // strafe per mouse unit while +strafe is held
	MouseForward             float64
	TouchControls            TouchControls
	SwipeAngle               float64 // degrees snapped by a fast swipe, 0 disables
	SwipeSensitivity         float64 // minimum swipe rotation in degrees
	SwipeFreeCrosshairOffset float64
	SwipeFreeStickyEdges     bool
	PitchAutoCenter          bool
	AutoCenterViewSpeed      float64 // degrees per ms
	WeaponBarAtBottom        bool
	RailgunAutoZoom          bool

	// Gyroscope
	Gyroscope            bool
	GyroscopeSensitivity float64
	GyroscopeAxesSwap    int // GyroSwap* bits

	// Joystick
	InputProfile      InputProfile
	SwapGamepadSticks bool
	JoyForward        float64
	JoySide           float64
	JoyUp             float64
	JoyYaw            float64
	JoyPitch          float64
	JoyForwardAxis    Axis
	JoySideAxis       Axis
	JoyUpAxis         Axis
	JoyYawAxis        Axis
	JoyPitchAxis      Axis
	JoystickJumpTime  int // ms window for a release-and-press jump on the screen stick

	// Shake to talk
	VoipAccelShakeThreshold     int
	VoipAccelShakeRecordingTime int // ms
	VoipAccelShakeDecrease      int // per ms

	// Network
	MaxPackets      int // packets per second, [15,125]
	PacketDup       int // previous packets' commands repeated, [0,5]
	LANForcePackets bool
	NoDelta         bool
	ShowSend        bool
	DebugMove       DebugMove

	// Display
	VidWidth          int
	VidHeight         int
	ConsoleNotifyTime float64 // seconds
	ConsoleSpeed      float64 // screen fractions per second
}

// C is the global client configuration. Sessions take a copy.
var C ClientConfig

func init() {
	C = Default()
}

// Default returns the stock configuration.
func Default() ClientConfig {
	return ClientConfig{
		Run:           true,
		PitchSpeed:    140,
		AngleSpeedKey: 1.5,
		FreeLook:      true,

		Sensitivity:              5,
		MouseYaw:                 0.022,
		MousePitch:               0.022,
		MouseSide:                0.25,
		MouseForward:             0.25,
		TouchControls:            TouchFloatingCrosshair,
		SwipeAngle:               90,
		SwipeSensitivity:         20,
		SwipeFreeCrosshairOffset: 1,
		SwipeFreeStickyEdges:     true,
		AutoCenterViewSpeed:      0.04,
		RailgunAutoZoom:          true,

		GyroscopeSensitivity: 1,

		InputProfile:     ProfileDesktop,
		JoyForward:       -0.25,
		JoySide:          0.25,
		JoyUp:            0,
		JoyYaw:           -0.022,
		JoyPitch:         0.022,
		JoyForwardAxis:   AxisGamepadLeftY,
		JoySideAxis:      AxisGamepadLeftX,
		JoyUpAxis:        AxisGamepadLeftTrigger,
		JoyYawAxis:       AxisGamepadRightX,
		JoyPitchAxis:     AxisGamepadRightY,
		JoystickJumpTime: 250,

		VoipAccelShakeThreshold:     15000,
		VoipAccelShakeRecordingTime: 2000,
		VoipAccelShakeDecrease:      5,

		MaxPackets:      30,
		PacketDup:       1,
		LANForcePackets: true,

		VidWidth:          1280,
		VidHeight:         720,
		ConsoleNotifyTime: 6,
		ConsoleSpeed:      3,
	}
}

// SetMaxPackets stores n clamped to [MinMaxPackets, MaxMaxPackets].
func (c *ClientConfig) SetMaxPackets(n int) {
	c.MaxPackets = ClampMaxPackets(n)
}

// SetPacketDup stores n clamped to [MinPacketDup, MaxPacketDup].
func (c *ClientConfig) SetPacketDup(n int) {
	c.PacketDup = ClampPacketDup(n)
}

func ClampMaxPackets(n int) int {
	return clampInt(n, MinMaxPackets, MaxMaxPackets)
}

func ClampPacketDup(n int) int {
	return clampInt(n, MinPacketDup, MaxPacketDup)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
