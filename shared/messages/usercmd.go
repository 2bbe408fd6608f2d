package messages

// UserCmd is one movement command. It is built once per client tick and is
// never modified after being stored in the command ring.
type UserCmd struct {
	ServerTime  int32
	Angles      [3]int32 // 16 bit wire angles, see gamemath.AngleToShort
	Buttons     int32
	Weapon      uint8
	ForwardMove int8
	RightMove   int8
	UpMove      int8
}

// SameInput reports whether two commands carry identical angles, movement,
// buttons and weapon. Server time is not compared.
func (c UserCmd) SameInput(o UserCmd) bool {
	return c.Angles == o.Angles &&
		c.ForwardMove == o.ForwardMove &&
		c.RightMove == o.RightMove &&
		c.UpMove == o.UpMove &&
		c.Buttons == o.Buttons &&
		c.Weapon == o.Weapon
}

// OutPacket records what went out in one datagram.
type OutPacket struct {
	RealTime   int   // client clock when sent, in ms
	ServerTime int32 // server time of the last command in the packet
	CmdNumber  int   // newest command number at send time
}
