package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
)

// WaveTrack builds a procedural track: a vertical chain of joints swaying about Z, evenly keyed over
// the loop. It is used to produce sample assets and test fixtures without an external converter.
//
// Parameters:
//   - joints: number of joints in the chain (at least 1)
//   - keyframes: number of keyframes (at least 1)
//   - duration: loop length in seconds (> 0)
//
// Returns:
//   - *AnimationTrack: a track that passes Validate
func WaveTrack(joints, keyframes int, duration float64) *AnimationTrack {
	joints = max(joints, 1)
	keyframes = max(keyframes, 1)

	const spacing = 0.5
	chain := func(phase float64, amplitude float32) Pose {
		p := make(Pose, joints)
		for i := range p {
			angle := amplitude * float32(math.Sin(phase+float64(i)*0.6))
			q := mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
			pos := mgl32.Vec3{angle * 0.3 * float32(i), float32(i) * spacing, 0}
			p[i] = Joint{
				Transform:   common.WithTranslation(common.MatrixFromQuat(q), pos.Vec4(1)),
				ParentIndex: int32(i) - 1,
			}
		}
		return p
	}

	track := &AnimationTrack{
		Duration:  duration,
		BindPose:  chain(0, 0),
		Keyframes: make([]Keyframe, keyframes),
	}
	for k := range track.Keyframes {
		frac := float64(k) / float64(keyframes)
		track.Keyframes[k] = Keyframe{
			Keytime: duration * frac,
			Pose:    chain(2*math.Pi*frac, 0.45),
		}
	}
	return track
}

// WaveModel wraps WaveTrack in an ImportedModel with a thin box mesh around the chain and a single
// untextured material.
//
// Parameters:
//   - name: the model name
//   - joints: number of joints
//   - keyframes: number of keyframes
//   - duration: loop length in seconds
//
// Returns:
//   - *ImportedModel: the model
func WaveModel(name string, joints, keyframes int, duration float64) *ImportedModel {
	track := WaveTrack(joints, keyframes, duration)
	height := float32(max(joints-1, 1)) * 0.5

	var mesh ImportedMesh
	for _, c := range [8][3]float32{
		{-0.1, 0, -0.1}, {0.1, 0, -0.1}, {0.1, 0, 0.1}, {-0.1, 0, 0.1},
		{-0.1, 1, -0.1}, {0.1, 1, -0.1}, {0.1, 1, 0.1}, {-0.1, 1, 0.1},
	} {
		pos := mgl32.Vec4{c[0], c[1] * height, c[2], 1}
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: pos,
			Normal:   pos.Vec3().Sub(mgl32.Vec3{0, height / 2, 0}).Normalize().Vec4(0),
		})
	}
	mesh.Indices = []uint32{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4,
		1, 2, 6, 1, 6, 5,
		2, 3, 7, 2, 7, 6,
		3, 0, 4, 3, 4, 7,
	}
	mesh.ComputeBounds()

	var mat Material
	for i := range mat {
		mat[i] = MaterialComponent{Factor: 1, Input: NoInput}
	}
	mat[ComponentDiffuse].Value = [3]float32{0.8, 0.8, 0.8}

	return &ImportedModel{
		Name:      name,
		Mesh:      mesh,
		Materials: []Material{mat},
		Track:     track,
	}
}
