package gamemath

import "math"

// Angle indices into a view angle triple.
const (
	Pitch = 0
	Yaw   = 1
	Roll  = 2
)

// AngleToShort packs degrees into the 16 bit wire form (65536 units per turn).
func AngleToShort(deg float64) int32 {
	return int32(int(deg*65536.0/360.0) & 65535)
}

// ShortToAngle unpacks a 16 bit wire angle back to degrees.
func ShortToAngle(s int32) float64 {
	return float64(int16(s)) * (360.0 / 65536.0)
}

// ClampChar clamps i to the signed 8 bit range.
func ClampChar(i int) int8 {
	if i < -128 {
		return -128
	}
	if i > 127 {
		return 127
	}
	return int8(i)
}

// AngleSubtract returns a1-a2 normalized to [-180, 180].
func AngleSubtract(a1, a2 float64) float64 {
	a := a1 - a2
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// WrapYaw folds yaw back into (-180, 180] after at most one turn of drift.
func WrapYaw(yaw float64) float64 {
	if yaw > 180 {
		return yaw - 360
	}
	if yaw <= -180 {
		return yaw + 360
	}
	return yaw
}

// ClampPitch clamps pitch to [-limit, limit].
func ClampPitch(pitch, limit float64) float64 {
	if pitch > limit {
		return limit
	}
	if pitch < -limit {
		return -limit
	}
	return pitch
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Sign returns 1 for positive values and -1 otherwise.
func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
