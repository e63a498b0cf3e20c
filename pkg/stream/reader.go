package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	gomath "math"

	"github.com/Faultbox/ackasset/pkg/math"
)

// ErrTruncated is returned when a read needs more bytes than the stream holds.
var ErrTruncated = errors.New("truncated stream")

// readChunk bounds how much ReadBytes allocates ahead of data actually arriving.
const readChunk = 64 << 10

// Reader consumes primitive encodings from an io.Reader.
//
// It never reads past the last byte a decode asks for, except for the single
// byte More peeks. That byte is held by the Reader, so a caller interleaving
// blocks with other data must keep reading through the same Reader after
// calling More. Wrap slow sources such as files in a bufio.Reader first when
// nothing else reads from them.
type Reader struct {
	r   heldReader
	n   int64
	err error
	buf [64]byte
}

// heldReader serves a byte peeked by More before reading on from r.
type heldReader struct {
	r    io.Reader
	b    byte
	held bool
}

func (h *heldReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if h.held {
		p[0] = h.b
		h.held = false
		return 1, nil
	}
	return h.r.Read(p)
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: heldReader{r: r}}
}

// Err returns the first read error, if any.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.n
}

// More reports whether at least one more byte can be read.
func (r *Reader) More() bool {
	if r.err != nil {
		return false
	}
	if r.r.held {
		return true
	}
	var one [1]byte
	if n, _ := io.ReadFull(r.r.r, one[:]); n == 1 {
		r.r.b, r.r.held = one[0], true
		return true
	}
	return false
}

func (r *Reader) fill(p []byte) bool {
	if r.err != nil {
		clear(p)
		return false
	}
	n, err := io.ReadFull(&r.r, p)
	r.n += int64(n)
	if err != nil {
		r.fail(err, len(p), n)
		clear(p)
		return false
	}
	return true
}

func (r *Reader) fail(err error, want, got int) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, got %d",
			ErrTruncated, want, r.n-int64(got), got)
		return
	}
	r.err = fmt.Errorf("reading at offset %d: %w", r.n, err)
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	r.fill(r.buf[:1])
	return r.buf[0]
}

// Uint32 reads a 4-byte unsigned integer.
func (r *Reader) Uint32() uint32 {
	r.fill(r.buf[:4])
	return order.Uint32(r.buf[:4])
}

// Float32 reads a 4-byte IEEE-754 float.
func (r *Reader) Float32() float32 {
	return gomath.Float32frombits(r.Uint32())
}

// String reads a fixed slot of size bytes and returns the text before the first NUL.
func (r *Reader) String(size int) string {
	slot := make([]byte, size)
	if !r.fill(slot) {
		return ""
	}
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}
	return string(slot)
}

// Vec3 reads x, y, z.
func (r *Reader) Vec3() math.Vec3 {
	var f [3]float32
	r.floats(f[:])
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}
}

// Color reads r, g, b, a.
func (r *Reader) Color() math.Color {
	var f [4]float32
	r.floats(f[:])
	return math.Color{R: f[0], G: f[1], B: f[2], A: f[3]}
}

// UV reads u, v.
func (r *Reader) UV() math.Vec2 {
	var f [2]float32
	r.floats(f[:])
	return math.Vec2{X: f[0], Y: f[1]}
}

// Matrix reads 16 floats in storage order.
func (r *Reader) Matrix() math.Mat4 {
	var m math.Mat4
	r.floats(m[:])
	return m
}

// Bytes fills p completely.
func (r *Reader) Bytes(p []byte) {
	r.fill(p)
}

// ReadBytes reads exactly n bytes into a new slice. The slice grows as data
// arrives, so a forged length fails with ErrTruncated instead of allocating n
// bytes up front.
func (r *Reader) ReadBytes(n int64) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = fmt.Errorf("reading at offset %d: negative length %d", r.n, n)
		return nil
	}

	out := make([]byte, 0, min(n, readChunk))
	for int64(len(out)) < n {
		step := int(min(n-int64(len(out)), readChunk))
		start := len(out)
		out = append(out, make([]byte, step)...)
		got, err := io.ReadFull(&r.r, out[start:])
		r.n += int64(got)
		if err != nil {
			r.fail(err, int(n)-start, got)
			return nil
		}
	}
	return out
}

func (r *Reader) floats(dst []float32) {
	b := r.buf[:4*len(dst)]
	if !r.fill(b) {
		clear(dst)
		return
	}
	for i := range dst {
		dst[i] = gomath.Float32frombits(order.Uint32(b[4*i:]))
	}
}
