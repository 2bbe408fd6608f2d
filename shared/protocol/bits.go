// Package protocol implements the client command wire format: an LSB-first
// bit stream, keyed delta compression of movement commands, and the framing
// of client packets and server acknowledgements.
package protocol

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/fragclient/shared/netconfig"
)

var (
	ErrOverflow  = errors.New("protocol: message overflow")
	ErrShortRead = errors.New("protocol: read past end of message")
)

// Writer appends bit fields to a growing buffer. Errors are sticky: after the
// first failure every write is a no-op and Err reports it.
type Writer struct {
	data []byte
	bit  int
	max  int
	err  error
}

// NewWriter returns a writer that refuses to grow past maxBytes.
func NewWriter(maxBytes int) *Writer {
	return &Writer{
		data: make([]byte, 0, 64),
		max:  maxBytes,
	}
}

// WriteBits writes the low bits of value, least significant bit first.
func (w *Writer) WriteBits(value uint32, bits int) {
	if w.err != nil {
		return
	}
	if bits <= 0 || bits > 32 {
		w.err = fmt.Errorf("protocol: bad bit width %d", bits)
		return
	}
	if w.bit+bits > w.max*8 {
		w.err = ErrOverflow
		return
	}
	for i := 0; i < bits; i++ {
		if w.bit>>3 >= len(w.data) {
			w.data = append(w.data, 0)
		}
		if value&(1<<uint(i)) != 0 {
			w.data[w.bit>>3] |= 1 << uint(w.bit&7)
		}
		w.bit++
	}
}

func (w *Writer) WriteUint8(v uint8) {
	w.WriteBits(uint32(v), 8)
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteBits(uint32(uint16(v)), 16)
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteBits(uint32(v), 32)
}

// WriteString writes a NUL terminated string. High bit characters and '%'
// are replaced by '.'; strings at or over the limit are sent empty.
func (w *Writer) WriteString(s string) {
	if len(s) >= netconfig.MaxStringChars {
		log.Printf("[protocol] string of %d bytes exceeds limit, sending empty", len(s))
		s = ""
	}
	for i := 0; i < len(s); i++ {
		w.WriteUint8(sanitize(s[i]))
	}
	w.WriteUint8(0)
}

// Bytes returns the written data, padded with zero bits to a whole byte.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Bits returns the number of bits written.
func (w *Writer) Bits() int {
	return w.bit
}

func (w *Writer) Err() error {
	return w.err
}

// Reader consumes a bit stream produced by Writer. Errors are sticky and
// reads after a failure return zero.
type Reader struct {
	data []byte
	bit  int
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) ReadBits(bits int) uint32 {
	if r.err != nil {
		return 0
	}
	if bits <= 0 || bits > 32 {
		r.err = fmt.Errorf("protocol: bad bit width %d", bits)
		return 0
	}
	if r.bit+bits > len(r.data)*8 {
		r.err = ErrShortRead
		return 0
	}
	var v uint32
	for i := 0; i < bits; i++ {
		if r.data[r.bit>>3]&(1<<uint(r.bit&7)) != 0 {
			v |= 1 << uint(i)
		}
		r.bit++
	}
	return v
}

func (r *Reader) ReadUint8() uint8 {
	return uint8(r.ReadBits(8))
}

func (r *Reader) ReadInt16() int16 {
	return int16(uint16(r.ReadBits(16)))
}

func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadBits(32))
}

// ReadString reads up to the terminating NUL.
func (r *Reader) ReadString() string {
	buf := make([]byte, 0, 32)
	for len(buf) < netconfig.MaxStringChars {
		c := r.ReadUint8()
		if r.err != nil || c == 0 {
			break
		}
		buf = append(buf, sanitize(c))
	}
	return string(buf)
}

func (r *Reader) Err() error {
	return r.err
}

func sanitize(c byte) byte {
	if c > 127 || c == '%' {
		return '.'
	}
	return c
}
