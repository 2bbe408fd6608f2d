package protocol

import "github.com/automoto/fragclient/shared/messages"

// WriteDeltaUsercmdKey writes to as a delta from from. Changed fields are
// XORed with key (itself mixed with to.ServerTime) so that only a peer that
// knows the key can decode them.
func WriteDeltaUsercmdKey(w *Writer, key int32, from, to *messages.UserCmd) {
	if to.ServerTime-from.ServerTime < 256 {
		w.WriteBits(1, 1)
		w.WriteBits(uint32(to.ServerTime-from.ServerTime), 8)
	} else {
		w.WriteBits(0, 1)
		w.WriteBits(uint32(to.ServerTime), 32)
	}

	if from.SameInput(*to) {
		w.WriteBits(0, 1)
		return
	}

	key ^= to.ServerTime
	w.WriteBits(1, 1)
	writeDeltaKey(w, key, from.Angles[0], to.Angles[0], 16)
	writeDeltaKey(w, key, from.Angles[1], to.Angles[1], 16)
	writeDeltaKey(w, key, from.Angles[2], to.Angles[2], 16)
	writeDeltaKey(w, key, int32(from.ForwardMove), int32(to.ForwardMove), 8)
	writeDeltaKey(w, key, int32(from.RightMove), int32(to.RightMove), 8)
	writeDeltaKey(w, key, int32(from.UpMove), int32(to.UpMove), 8)
	writeDeltaKey(w, key, from.Buttons, to.Buttons, 16)
	writeDeltaKey(w, key, int32(from.Weapon), int32(to.Weapon), 8)
}

// ReadDeltaUsercmdKey is the inverse of WriteDeltaUsercmdKey.
func ReadDeltaUsercmdKey(r *Reader, key int32, from *messages.UserCmd) messages.UserCmd {
	to := *from
	if r.ReadBits(1) != 0 {
		to.ServerTime = from.ServerTime + int32(r.ReadBits(8))
	} else {
		to.ServerTime = int32(r.ReadBits(32))
	}
	if r.ReadBits(1) == 0 {
		return to
	}

	key ^= to.ServerTime
	to.Angles[0] = readDeltaKey(r, key, from.Angles[0], 16)
	to.Angles[1] = readDeltaKey(r, key, from.Angles[1], 16)
	to.Angles[2] = readDeltaKey(r, key, from.Angles[2], 16)
	to.ForwardMove = int8(uint8(readDeltaKey(r, key, int32(from.ForwardMove), 8)))
	to.RightMove = int8(uint8(readDeltaKey(r, key, int32(from.RightMove), 8)))
	to.UpMove = int8(uint8(readDeltaKey(r, key, int32(from.UpMove), 8)))
	to.Buttons = readDeltaKey(r, key, from.Buttons, 16)
	to.Weapon = uint8(readDeltaKey(r, key, int32(from.Weapon), 8))
	return to
}

func writeDeltaKey(w *Writer, key, oldV, newV int32, bits int) {
	if oldV == newV {
		w.WriteBits(0, 1)
		return
	}
	w.WriteBits(1, 1)
	w.WriteBits(uint32(newV^key), bits)
}

func readDeltaKey(r *Reader, key, oldV int32, bits int) int32 {
	if r.ReadBits(1) == 0 {
		return oldV
	}
	mask := uint32(1)<<uint(bits) - 1
	return int32(r.ReadBits(bits) ^ (uint32(key) & mask))
}

// HashKey hashes at most maxLen characters of s. It seeds the command key
// with the last server command the client acknowledged.
func HashKey(s string, maxLen int) int32 {
	var hash int32
	for i := 0; i < maxLen && i < len(s) && s[i] != 0; i++ {
		hash += int32(sanitize(s[i])) * int32(119+i)
	}
	return hash ^ (hash >> 10) ^ (hash >> 20)
}

// CommandKey derives the delta key for one packet.
func CommandKey(checksumFeed, messageSequence int32, lastServerCommand string) int32 {
	return checksumFeed ^ messageSequence ^ HashKey(lastServerCommand, 32)
}
