package loader

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"golang.org/x/text/encoding/charmap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = model
	}
}

// WithCharmap is an option builder that sets the character set material paths are stored in.
// A nil charmap treats paths as UTF-8. Defaults to Windows-1252.
//
// Parameters:
//   - cm: the charmap
//
// Returns:
//   - LoaderBuilderOption: a function that applies the charmap option to a loader
func WithCharmap(cm *charmap.Charmap) LoaderBuilderOption {
	return func(l *loader) {
		if b, ok := l.backend.(*mbmLoaderBackend); ok {
			b.charmap = cm
		}
	}
}

// WithTextureProbe is an option builder that reads the header of every referenced texture at
// load time and logs the ones that cannot be opened or decoded.
//
// Parameters:
//   - probe: true to probe textures
//
// Returns:
//   - LoaderBuilderOption: a function that applies the probe option to a loader
func WithTextureProbe(probe bool) LoaderBuilderOption {
	return func(l *loader) {
		if b, ok := l.backend.(*mbmLoaderBackend); ok {
			b.probeTextures = probe
		}
	}
}
