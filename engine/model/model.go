package model

import (
	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
)

type model struct {
	name           string
	track          *AnimationTrack
	mesh           ImportedMesh
	materials      []Material
	materialPaths  []string
	textures       []*common.ImportedTexture
	boundingRadius float32
}

// Model is a loaded skeletal asset: mesh, materials and animation track, never mutated after load.
// It is produced by the Loader after importing and validating an asset file; the track is
// owned by the model for its whole lifetime and shared read-only by every animator driving it.
type Model interface {
	// Name returns the asset name, usually the file path or stream name it was loaded as.
	Name() string

	// Skinned reports whether this model carries a skeleton.
	//
	// Returns:
	//   - bool: true if the model has joint data
	Skinned() bool

	// Track returns the validated keyframes and bind pose, or nil for a static mesh.
	//
	// Returns:
	//   - *AnimationTrack: the track or nil
	Track() *AnimationTrack

	// Mesh returns the geometry.
	//
	// Returns:
	//   - ImportedMesh: the mesh
	Mesh() ImportedMesh

	// Materials returns the per-submesh material records.
	Materials() []Material

	// MaterialPaths retrieves the texture path table.
	//
	// Returns:
	//   - []string: the texture paths as stored in the asset
	MaterialPaths() []string

	// Textures retrieves the resolved textures, one per material path.
	//
	// Returns:
	//   - []*common.ImportedTexture: the textures
	Textures() []*common.ImportedTexture

	// BoundingRadius is the farthest vertex or bind-pose joint from the origin. The camera frames
	// with it and the scene culls with it.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel assembles a Model from its parts. The bounding radius is derived from the mesh and bind pose unless WithBoundingRadius is given.
//
// Parameters:
//   - options: name, mesh, track and material parts
//
// Returns:
//   - Model: the immutable model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{boundingRadius: -1}
	for _, opt := range options {
		opt(m)
	}
	if m.boundingRadius < 0 {
		m.boundingRadius = m.computeBoundingRadius()
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.track != nil && len(m.track.BindPose) > 0
}

func (m *model) Track() *AnimationTrack {
	return m.track
}

func (m *model) Mesh() ImportedMesh {
	return m.mesh
}

func (m *model) Materials() []Material {
	return m.materials
}

func (m *model) MaterialPaths() []string {
	return m.materialPaths
}

func (m *model) Textures() []*common.ImportedTexture {
	return m.textures
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// computeBoundingRadius measures the farthest vertex or bind-pose joint from the origin.
func (m *model) computeBoundingRadius() float32 {
	var r float32
	for _, v := range m.mesh.Vertices {
		r = max(r, v.Position.Vec3().Len())
	}
	if m.track != nil {
		for i := range m.track.BindPose {
			r = max(r, m.track.BindPose.Position(i).Len())
		}
	}
	return r
}

// FromImported builds a Model from an ImportedModel.
//
// Parameters:
//   - imported: the CPU-side import result
//
// Returns:
//   - Model: the model
func FromImported(imported *ImportedModel) Model {
	return NewModel(
		WithName(imported.Name),
		WithTrack(imported.Track),
		WithMesh(imported.Mesh),
		WithMaterials(imported.Materials),
		WithMaterialPaths(imported.MaterialPaths),
		WithTextures(imported.Textures),
	)
}

// Center returns the point a camera should orbit to frame the model: the midpoint of the mesh
// bounds, or the bind pose centroid when the mesh is empty.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - mgl32.Vec3: the framing center
func Center(m Model) mgl32.Vec3 {
	mesh := m.Mesh()
	if len(mesh.Vertices) > 0 {
		return mesh.BoundingMin.Add(mesh.BoundingMax).Mul(0.5)
	}
	t := m.Track()
	if t == nil || len(t.BindPose) == 0 {
		return mgl32.Vec3{}
	}
	var c mgl32.Vec3
	for i := range t.BindPose {
		c = c.Add(t.BindPose.Position(i))
	}
	return c.Mul(1 / float32(len(t.BindPose)))
}
