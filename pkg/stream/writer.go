// Package stream provides typed little-endian primitives over sequential byte streams.
//
// Both Writer and Reader keep the first error they hit and turn every later
// call into a no-op, so codecs can emit or consume a whole record and check
// Err once at a convenient boundary.
package stream

import (
	"encoding/binary"
	"io"
	gomath "math"

	"github.com/Faultbox/ackasset/pkg/math"
)

var order = binary.LittleEndian

// Writer appends primitive encodings to an io.Writer.
type Writer struct {
	w   io.Writer
	n   int64
	err error
	buf [64]byte
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.n
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
}

// Uint8 writes one byte.
func (w *Writer) Uint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

// Uint32 writes a 4-byte unsigned integer.
func (w *Writer) Uint32(v uint32) {
	order.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

// Float32 writes a 4-byte IEEE-754 float.
func (w *Writer) Float32(v float32) {
	w.Uint32(gomath.Float32bits(v))
}

// String writes s into a fixed slot of size bytes.
// Longer strings are truncated, shorter ones are NUL padded.
func (w *Writer) String(s string, size int) {
	slot := make([]byte, size)
	copy(slot, s)
	w.write(slot)
}

// Vec3 writes x, y, z.
func (w *Writer) Vec3(v math.Vec3) {
	w.floats(v.X, v.Y, v.Z)
}

// Color writes r, g, b, a.
func (w *Writer) Color(c math.Color) {
	w.floats(c.R, c.G, c.B, c.A)
}

// UV writes u, v.
func (w *Writer) UV(v math.Vec2) {
	w.floats(v.X, v.Y)
}

// Matrix writes the 16 floats of m in storage order.
func (w *Writer) Matrix(m math.Mat4) {
	w.floats(m[:]...)
}

// Bytes writes p verbatim.
func (w *Writer) Bytes(p []byte) {
	w.write(p)
}

func (w *Writer) floats(vs ...float32) {
	b := w.buf[:4*len(vs)]
	for i, v := range vs {
		order.PutUint32(b[4*i:], gomath.Float32bits(v))
	}
	w.write(b)
}
