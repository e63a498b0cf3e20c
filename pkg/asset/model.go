package asset

import (
	"fmt"

	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/math"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// MaxBones is the largest skeleton a model can carry; parents are stored in one byte.
const MaxBones = 255

const boneNameSize = 64

// Bone is one joint of a model skeleton.
type Bone struct {
	Name       string // at most 64 bytes survive encoding
	Parent     uint8  // index of the parent bone; the root (bone 0) stores 0
	Transform  math.Mat4
	BindToBone math.Mat4
}

// Model is a skinned mesh set. Materials[i] belongs to Meshes[i].
type Model struct {
	Bones          []Bone
	Meshes         []*Mesh
	Materials      []*Material
	AnimationCount uint32
}

// Validate checks the structural rules the block layout depends on.
func (m *Model) Validate() error {
	if len(m.Bones) > MaxBones {
		return fmt.Errorf("%w: %d bones, limit is %d", ErrInvalidAsset, len(m.Bones), MaxBones)
	}
	if err := checkParents(m.Bones); err != nil {
		return err
	}
	if len(m.Materials) != len(m.Meshes) {
		return fmt.Errorf("%w: %d materials for %d meshes", ErrInvalidAsset, len(m.Materials), len(m.Meshes))
	}
	for i, mesh := range m.Meshes {
		if mesh == nil {
			return fmt.Errorf("%w: mesh %d is nil", ErrInvalidAsset, i)
		}
	}
	for i, mat := range m.Materials {
		if mat == nil {
			return fmt.Errorf("%w: material %d is nil", ErrInvalidAsset, i)
		}
	}
	return nil
}

func checkParents(bones []Bone) error {
	for i, b := range bones {
		if i == 0 && b.Parent != 0 {
			return fmt.Errorf("%w: root bone has parent %d", ErrInvalidAsset, b.Parent)
		}
		if i > 0 && int(b.Parent) >= i {
			return fmt.Errorf("%w: bone %d (%q) has parent %d", ErrInvalidAsset, i, b.Name, b.Parent)
		}
	}
	return nil
}

// GlobalTransforms composes each bone's transform with its ancestors',
// giving model-space bone matrices. The model must be valid.
func (m *Model) GlobalTransforms() []math.Mat4 {
	out := make([]math.Mat4, len(m.Bones))
	for i, b := range m.Bones {
		parent := math.Identity()
		if i > 0 {
			parent = out[b.Parent]
		}
		out[i] = parent.Mul(b.Transform)
	}
	return out
}

// JointPositions returns the model-space origin of every bone.
func (m *Model) JointPositions() []math.Vec3 {
	global := m.GlobalTransforms()
	out := make([]math.Vec3, len(global))
	for i, g := range global {
		out[i] = g.TransformVec3(math.Vec3{})
	}
	return out
}

// WriteModel writes m and every nested mesh, material and bitmap block.
func (e *Encoder) WriteModel(w *stream.Writer, m *Model) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidAsset)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := e.header(w, KindModel, ModelGUID); err != nil {
		return err
	}

	w.Uint32(uint32(len(m.Bones)))
	w.Uint32(uint32(len(m.Meshes)))
	w.Uint32(m.AnimationCount)
	for _, b := range m.Bones {
		w.String(b.Name, boneNameSize)
		w.Uint8(b.Parent)
		w.Matrix(b.Transform)
		w.Matrix(b.BindToBone)
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}

	for i, mesh := range m.Meshes {
		if err := e.WriteMesh(w, mesh); err != nil {
			return fmt.Errorf("writing model mesh %d: %w", i, err)
		}
	}
	for i, mat := range m.Materials {
		if err := e.WriteMaterial(w, mat); err != nil {
			return fmt.Errorf("writing model material %d: %w", i, err)
		}
	}
	return nil
}

func decodeModel(l *Loader, r *stream.Reader, id guid.GUID) (any, error) {
	if id != ModelGUID {
		return nil, fmt.Errorf("%w: %s is not a model block", ErrTypeMismatch, id)
	}

	boneCount := r.Uint32()
	meshCount := r.Uint32()
	animations := r.Uint32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	if boneCount > MaxBones {
		return nil, fmt.Errorf("%w: %d bones, limit is %d", ErrInvalidAsset, boneCount, MaxBones)
	}

	m := &Model{AnimationCount: animations}
	if boneCount > 0 {
		m.Bones = make([]Bone, boneCount)
	}
	for i := range m.Bones {
		b := &m.Bones[i]
		b.Name = r.String(boneNameSize)
		b.Parent = r.Uint8()
		b.Transform = r.Matrix()
		b.BindToBone = r.Matrix()
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading model bones: %w", err)
	}
	if err := checkParents(m.Bones); err != nil {
		return nil, err
	}

	// Counts come from the stream; grow as blocks decode rather than trusting them.
	for i := uint32(0); i < meshCount; i++ {
		mesh, err := l.LoadMesh(r)
		if err != nil {
			return nil, fmt.Errorf("reading model mesh %d: %w", i, err)
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	for i := uint32(0); i < meshCount; i++ {
		mat, err := l.LoadMaterial(r)
		if err != nil {
			l.Release(m)
			return nil, fmt.Errorf("reading model material %d: %w", i, err)
		}
		m.Materials = append(m.Materials, mat)
	}

	l.log.Debug("decoded model",
		zap.Int("bones", len(m.Bones)),
		zap.Int("meshes", len(m.Meshes)),
		zap.Uint32("animations", animations))
	return m, nil
}
