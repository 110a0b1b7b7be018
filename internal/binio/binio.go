// Package binio provides little-endian payload encoding helpers shared by
// the artifact codecs.
package binio

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShort is returned when a payload ends before a read completes.
var ErrShort = errors.New("binio: truncated payload")

// AppendUint32 appends v in little-endian order.
func AppendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

// AppendUint32s appends a run of uint32 values.
func AppendUint32s(buf []byte, vs []uint32) []byte {
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// AppendFloat32 appends the IEEE 754 bits of v.
func AppendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}

// AppendFloat32s appends a run of float32 values.
func AppendFloat32s(buf []byte, vs []float32) []byte {
	for _, v := range vs {
		buf = AppendFloat32(buf, v)
	}
	return buf
}

// Reader is a cursor over a decoded payload. It records the first error and
// turns subsequent reads into no-ops, so callers can check Err once.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader wraps a payload.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first read error, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.buf) {
		r.err = ErrShort
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *Reader) Uint32s(n int) []uint32 {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+4*n > len(r.buf) {
		r.err = ErrShort
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(r.buf[r.off:])
		r.off += 4
	}
	return out
}

func (r *Reader) Float32s(n int) []float32 {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+4*n > len(r.buf) {
		r.err = ErrShort
		return nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(r.buf[r.off:]))
		r.off += 4
	}
	return out
}

// Bytes copies out n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = ErrShort
		return nil
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:])
	r.off += n
	return out
}
