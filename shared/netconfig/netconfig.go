// Package netconfig defines lightweight types shared between the client and
// the command sink. It must have zero dependencies on ebiten or any graphics
// library so the sink binary stays headless.
package netconfig

// Phase is the connection state of a client session. Phases are ordered:
// comparisons such as phase >= PhasePrimed are meaningful.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseChallenging
	PhaseConnected
	PhaseLoading
	PhasePrimed // gamestate received, commands may be created
	PhaseActive
	PhaseCinematic
)

var phaseNames = map[Phase]string{
	PhaseDisconnected: "disconnected",
	PhaseConnecting:   "connecting",
	PhaseChallenging:  "challenging",
	PhaseConnected:    "connected",
	PhaseLoading:      "loading",
	PhasePrimed:       "primed",
	PhaseActive:       "active",
	PhaseCinematic:    "cinematic",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// AddressClass tells the pacing gate how far away the server is.
type AddressClass int

const (
	AddressRemote AddressClass = iota
	AddressLAN
	AddressLoopback
)

func (a AddressClass) String() string {
	switch a {
	case AddressLoopback:
		return "loopback"
	case AddressLAN:
		return "lan"
	default:
		return "remote"
	}
}

// Ring sizes. All must be powers of two.
const (
	CmdBackup           = 64
	PacketBackup        = 32
	MaxReliableCommands = 64
)

const (
	MaxPacketUsercmds = 32    // commands per clc_move
	MaxMsgLen         = 16384 // datagram payload
	MaxStringChars    = 1024
	MaxClients        = 64
	MaxJoystickAxis   = 16
)

// Client to server opcodes.
const (
	ClcBad           = 0
	ClcNop           = 1
	ClcMove          = 2
	ClcMoveNoDelta   = 3
	ClcClientCommand = 4
	ClcEOF           = 5
)

// Button bits carried in UserCmd.Buttons.
const (
	ButtonAttack      = 1 << 0
	ButtonTalk        = 1 << 1
	ButtonUseHoldable = 1 << 2
	ButtonGesture     = 1 << 3
	ButtonWalking     = 1 << 4
	ButtonAny         = 1 << 11
)

// Key catcher bits.
const (
	KeyCatchConsole = 1 << 0
	KeyCatchUI      = 1 << 1
	KeyCatchMessage = 1 << 2
	KeyCatchCgame   = 1 << 3
)

// WeaponRailgun is the weapon number that triggers automatic zoom.
const WeaponRailgun = 7
