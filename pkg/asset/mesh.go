package asset

import (
	"fmt"

	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/math"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// VertexSize is the encoded size of one vertex.
const VertexSize = 76

// growStep caps up-front allocation for element counts read from a stream.
const growStep = 4096

// Vertex is one skinned mesh vertex. Weights are raw bytes and are not normalized.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	Color    math.Color
	UV0      math.Vec2
	UV1      math.Vec2
	Bones    [4]uint8
	Weights  [4]uint8
}

// Mesh is an indexed vertex list. Decoded meshes hold nil slices for empty buffers.
type Mesh struct {
	Primitive gfx.Primitive
	Indices   []uint32
	Vertices  []Vertex
}

// Bounds returns the axis-aligned box around all vertex positions.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (lo, hi math.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v.Position)
		hi = hi.Max(v.Position)
	}
	return lo, hi, true
}

// WriteMesh writes a mesh block.
func (e *Encoder) WriteMesh(w *stream.Writer, m *Mesh) error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidAsset)
	}
	if err := e.header(w, KindMesh, MeshGUID); err != nil {
		return err
	}

	w.Uint32(uint32(m.Primitive))
	w.Uint32(uint32(len(m.Indices)))
	w.Uint32(uint32(len(m.Vertices)))
	for _, idx := range m.Indices {
		w.Uint32(idx)
	}
	for i := range m.Vertices {
		writeVertex(w, &m.Vertices[i])
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	return nil
}

func writeVertex(w *stream.Writer, v *Vertex) {
	w.Vec3(v.Position)
	w.Vec3(v.Normal)
	w.Vec3(v.Tangent)
	w.Color(v.Color)
	w.UV(v.UV0)
	w.UV(v.UV1)
	w.Bytes(v.Bones[:])
	w.Bytes(v.Weights[:])
}

func readVertex(r *stream.Reader) Vertex {
	var v Vertex
	v.Position = r.Vec3()
	v.Normal = r.Vec3()
	v.Tangent = r.Vec3()
	v.Color = r.Color()
	v.UV0 = r.UV()
	v.UV1 = r.UV()
	r.Bytes(v.Bones[:])
	r.Bytes(v.Weights[:])
	return v
}

func decodeMesh(l *Loader, r *stream.Reader, id guid.GUID) (any, error) {
	if id != MeshGUID {
		return nil, fmt.Errorf("%w: %s is not a mesh block", ErrTypeMismatch, id)
	}

	m := &Mesh{Primitive: gfx.Primitive(r.Uint32())}
	indexCount := r.Uint32()
	vertexCount := r.Uint32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}

	if indexCount > 0 {
		m.Indices = make([]uint32, 0, min(indexCount, growStep))
		for i := uint32(0); i < indexCount && r.Err() == nil; i++ {
			m.Indices = append(m.Indices, r.Uint32())
		}
	}
	if vertexCount > 0 {
		m.Vertices = make([]Vertex, 0, min(vertexCount, growStep))
		for i := uint32(0); i < vertexCount && r.Err() == nil; i++ {
			m.Vertices = append(m.Vertices, readVertex(r))
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh buffers: %w", err)
	}

	l.log.Debug("decoded mesh",
		zap.Stringer("primitive", m.Primitive),
		zap.Int("indices", len(m.Indices)),
		zap.Int("vertices", len(m.Vertices)))
	return m, nil
}
