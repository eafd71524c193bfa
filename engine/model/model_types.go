package model

import (
	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Skeleton & Animation Types ---

// RootParent is the parent index carried by joints without a parent.
const RootParent int32 = -1

// Joint is a single node of a skeleton: a model-space transform and the index of its parent
// within the same flat joint array.
type Joint struct {
	// Transform holds the joint matrix in on-disk order (row-major, translation in row 3).
	// See common.Translation and common.Axis for accessors.
	Transform mgl32.Mat4

	// ParentIndex is the index of the parent joint, or RootParent for roots.
	ParentIndex int32
}

// Pose is an ordered joint array. A joint's index is its identity across the bind pose and every keyframe.
type Pose []Joint

// Clone returns a deep copy of the pose.
func (p Pose) Clone() Pose {
	if p == nil {
		return nil
	}
	out := make(Pose, len(p))
	copy(out, p)
	return out
}

// Parents returns the parent index of every joint in order.
func (p Pose) Parents() []int32 {
	out := make([]int32, len(p))
	for i, j := range p {
		out[i] = j.ParentIndex
	}
	return out
}

// Position returns the translation of joint i as a 3-component vector.
func (p Pose) Position(i int) mgl32.Vec3 {
	return common.Translation(p[i].Transform).Vec3()
}

// Keyframe is a sampled pose at a point in animation time.
type Keyframe struct {
	// Keytime is the keyframe time in seconds, within [0, duration).
	Keytime float64

	// Pose is the joint array at Keytime.
	Pose Pose
}

// AnimationTrack is a single looping keyframed animation together with the bind pose it deforms.
type AnimationTrack struct {
	// Duration is the loop length in seconds (> 0).
	Duration float64

	// Keyframes are ordered by strictly increasing Keytime. The first keytime need not be zero.
	Keyframes []Keyframe

	// BindPose is the reference skeleton configuration.
	BindPose Pose
}

// JointCount returns the number of joints in the bind pose.
func (t *AnimationTrack) JointCount() int {
	return len(t.BindPose)
}

// KeyframeCount returns the number of keyframes in the track.
func (t *AnimationTrack) KeyframeCount() int {
	return len(t.Keyframes)
}

// Keytimes returns the keytime of every keyframe in order.
func (t *AnimationTrack) Keytimes() []float64 {
	out := make([]float64, len(t.Keyframes))
	for i, k := range t.Keyframes {
		out[i] = k.Keytime
	}
	return out
}

// SkinningMatrices computes per-joint skinning matrices for pose relative to bind:
// pose[i] * inverse(bind[i]) in column-vector form, the matrices a GPU skinning pass would consume.
// Both poses must have the same length.
//
// Parameters:
//   - bind: the bind pose
//   - pose: the current (sampled) pose
//
// Returns:
//   - []mgl32.Mat4: one skinning matrix per joint
func SkinningMatrices(bind, pose Pose) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(pose))
	for i := range pose {
		out[i] = pose[i].Transform.Mul4(bind[i].Transform.Inv())
	}
	return out
}

// --- Mesh & Material Types ---

// Vertex is a single mesh vertex as stored in an .mbm file.
type Vertex struct {
	// Position is the vertex position; w is 1 after loading.
	Position mgl32.Vec4

	// Normal is the vertex normal; w is unused.
	Normal mgl32.Vec4

	// Tex is the texture coordinate.
	Tex mgl32.Vec2
}

// MaterialComponentType indexes the components of a Material.
type MaterialComponentType int

const (
	// ComponentDiffuse is the diffuse color and map.
	ComponentDiffuse MaterialComponentType = iota
	// ComponentEmissive is the emissive color and map.
	ComponentEmissive
	// ComponentSpecular is the specular color and map.
	ComponentSpecular
	// ComponentNormalMap is the normal map.
	ComponentNormalMap

	// MaterialComponentCount is the number of components in a Material.
	MaterialComponentCount
)

// String returns the lowercase component name.
func (c MaterialComponentType) String() string {
	switch c {
	case ComponentDiffuse:
		return "diffuse"
	case ComponentEmissive:
		return "emissive"
	case ComponentSpecular:
		return "specular"
	case ComponentNormalMap:
		return "normalmap"
	default:
		return "unknown"
	}
}

// NoInput marks a material component without a texture.
const NoInput int64 = -1

// MaterialComponent is one channel of a material: a color, a scalar factor, and an optional texture.
type MaterialComponent struct {
	// Value is the RGB color.
	Value [3]float32

	// Factor scales Value.
	Factor float32

	// Input is an index into ImportedModel.MaterialPaths, or NoInput.
	Input int64
}

// Material is a fixed set of components indexed by MaterialComponentType.
type Material [MaterialComponentCount]MaterialComponent

// --- Import Types ---

// ImportedMesh is the geometry of an imported asset.
type ImportedMesh struct {
	// Vertices are the mesh vertices.
	Vertices []Vertex

	// Indices are the triangle indices (three per triangle).
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin mgl32.Vec3

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax mgl32.Vec3
}

// ComputeBounds recalculates BoundingMin and BoundingMax from the vertex positions.
func (m *ImportedMesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.BoundingMin, m.BoundingMax = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	lo := m.Vertices[0].Position.Vec3()
	hi := lo
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	m.BoundingMin, m.BoundingMax = lo, hi
}

// ImportedModel is the CPU-side content of a skeletal asset file.
type ImportedModel struct {
	// Name is the model identifier (usually the file path).
	Name string

	// Mesh is the model geometry.
	Mesh ImportedMesh

	// Materials are the model materials.
	Materials []Material

	// MaterialPaths is the texture path table referenced by MaterialComponent.Input.
	MaterialPaths []string

	// Textures holds one entry per MaterialPaths element, resolved against the asset directory.
	Textures []*common.ImportedTexture

	// Track is the skeleton bind pose and animation (nil for assets without a skeleton).
	Track *AnimationTrack
}
