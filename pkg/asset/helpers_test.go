package asset_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/gfx/memdevice"
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/math"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// faultyDevice overrides selected memdevice calls.
type faultyDevice struct {
	*memdevice.Device
	info      *gfx.LevelInfo
	uploadErr error
}

func (d *faultyDevice) TextureInfo(tex gfx.TextureID) (gfx.LevelInfo, error) {
	if d.info != nil {
		return *d.info, nil
	}
	return d.Device.TextureInfo(tex)
}

func (d *faultyDevice) SubImage2D(tex gfx.TextureID, w, h int, f gfx.PixelFormat, t gfx.PixelType, data []byte) error {
	if d.uploadErr != nil {
		return d.uploadErr
	}
	return d.Device.SubImage2D(tex, w, h, f, t, data)
}

func encode(t *testing.T, write func(w *stream.Writer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	require.NoError(t, write(w))
	require.NoError(t, w.Err())
	return buf.Bytes()
}

func reader(data []byte) *stream.Reader {
	return stream.NewReader(bytes.NewReader(data))
}

// translate returns a translation matrix.
func translate(x, y, z float32) math.Mat4 {
	m := math.Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// pattern returns n bytes of a recognizable sequence.
func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*13 + 5)
	}
	return p
}

func rgbaBitmap(t *testing.T, dev *memdevice.Device, w, h int) *asset.Bitmap {
	t.Helper()
	tex, err := dev.NewTexture(gfx.Texture2D, gfx.RGBA8, w, h, 1, pattern(w*h*4))
	require.NoError(t, err)
	return &asset.Bitmap{Target: gfx.Texture2D, Texture: tex}
}

func triangle() *asset.Mesh {
	v := func(x, y float32, bone uint8) asset.Vertex {
		return asset.Vertex{
			Position: math.Vec3{X: x, Y: y, Z: 0.5},
			Normal:   math.Vec3{Z: 1},
			Tangent:  math.Vec3{X: 1},
			Color:    math.Color{R: x, G: y, B: 0.25, A: 1},
			UV0:      math.Vec2{X: x, Y: y},
			UV1:      math.Vec2{X: 1 - x, Y: 1 - y},
			Bones:    [4]uint8{bone, 0, 0, 0},
			Weights:  [4]uint8{255, 0, 0, 0},
		}
	}
	return &asset.Mesh{
		Primitive: gfx.Triangles,
		Indices:   []uint32{0, 1, 2},
		Vertices:  []asset.Vertex{v(0, 0, 0), v(1, 0, 1), v(0, 1, 1)},
	}
}

type rawBitmap struct {
	target        gfx.Target
	format        gfx.InternalFormat
	width, height uint32
	depth         uint32
	pixelFormat   gfx.PixelFormat
	pixelType     gfx.PixelType
	length        uint32
	payload       []byte
}

// bytes builds a bitmap block by hand, so decode tests do not depend on the encoder.
func (b rawBitmap) bytes() []byte {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	w.Bytes(asset.BitmapGUID[:])
	w.Uint32(uint32(b.target))
	w.Uint32(uint32(b.format))
	w.Uint32(b.width)
	w.Uint32(b.height)
	w.Uint32(b.depth)
	w.Uint32(uint32(b.pixelFormat))
	w.Uint32(uint32(b.pixelType))
	w.Uint32(b.length)
	w.Bytes(b.payload)
	return buf.Bytes()
}

func validRGBA(w, h uint32) rawBitmap {
	n := w * h * 4
	return rawBitmap{
		target: gfx.Texture2D, format: gfx.RGBA8,
		width: w, height: h, depth: 1,
		pixelFormat: gfx.FormatRGBA, pixelType: gfx.TypeUnsignedByte,
		length: n, payload: pattern(int(n)),
	}
}

func block(id guid.GUID, payload ...byte) []byte {
	return append(append([]byte(nil), id[:]...), payload...)
}
