package model

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithTrack is an option builder that sets the animation track and bind pose of the Model.
//
// Parameters:
//   - track: the track to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the track option to a model
func WithTrack(track *AnimationTrack) ModelBuilderOption {
	return func(m *model) {
		m.track = track
	}
}

// WithMesh is an option builder that sets the geometry of the Model.
//
// Parameters:
//   - mesh: the mesh to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh ImportedMesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithMaterials is an option builder that sets the materials of the Model.
//
// Parameters:
//   - materials: the materials to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(materials []Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = materials
	}
}

// WithMaterialPaths is an option builder that sets the texture path table of the Model.
//
// Parameters:
//   - paths: the texture paths as stored in the asset
//
// Returns:
//   - ModelBuilderOption: a function that applies the paths option to a model
func WithMaterialPaths(paths []string) ModelBuilderOption {
	return func(m *model) {
		m.materialPaths = paths
	}
}

// WithTextures is an option builder that sets the resolved textures of the Model.
//
// Parameters:
//   - textures: one texture per material path
//
// Returns:
//   - ModelBuilderOption: a function that applies the textures option to a model
func WithTextures(textures []*common.ImportedTexture) ModelBuilderOption {
	return func(m *model) {
		m.textures = textures
	}
}

// WithBoundingRadius is an option builder that overrides the computed bounding radius.
//
// Parameters:
//   - radius: the bounding radius
//
// Returns:
//   - ModelBuilderOption: a function that applies the radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
