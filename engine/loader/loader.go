package loader

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/pkg/errors"
)

// LoaderBackendType names the asset codec a Loader falls back to for readers and Encode.
type LoaderBackendType int

const (
	// BackendTypeMBM selects the .mbm skeletal asset backend.
	BackendTypeMBM LoaderBackendType = iota
)

type loader struct {
	mu sync.RWMutex

	cache map[string]model.Model

	backend loaderBackend
}

// Loader reads skeletal assets from disk or streams and hands out shared, immutable models.
// Models are cached by path (or by the name given to LoadReader), so every caller animating
// the same asset shares one track. Every track handed out has passed model.AnimationTrack.Validate.
type Loader interface {
	// Load decodes the asset at path, picking the codec from the extension. A second call with
	// the same path returns the first result without touching the disk.
	//
	// Parameters:
	//   - path: asset file, currently only .mbm
	//
	// Returns:
	//   - model.Model: the shared model
	//   - error: unsupported extension, I/O failure or a malformed asset
	Load(path string) (model.Model, error)

	// LoadReader decodes an asset streamed from r with the default codec and caches it as name.
	// Material paths are resolved against the working directory.
	//
	// Parameters:
	//   - name: cache key, also used as the model name
	//   - r: asset bytes
	//
	// Returns:
	//   - model.Model: the shared model
	//   - error: a malformed asset
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Save writes an imported model to path in the format chosen by its extension and drops
	// any cached model under that path.
	//
	// Parameters:
	//   - path: the destination file
	//   - m: the model to write
	//
	// Returns:
	//   - error: error if encoding or writing fails
	Save(path string, m *model.ImportedModel) error

	// Encode writes an imported model to w with the loader's default backend.
	//
	// Parameters:
	//   - w: the destination
	//   - m: the model to write
	//
	// Returns:
	//   - error: error if encoding fails
	Encode(w io.Writer, m *model.ImportedModel) error

	// Get returns the model cached under name, or nil.
	Get(name string) model.Model

	// Models returns a snapshot of the cache keyed by path or stream name.
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader returns an empty Loader whose default codec is kind.
//
// Parameters:
//   - kind: default codec for LoadReader and Encode
//   - options: preloaded models and codec settings
//
// Returns:
//   - Loader: the loader
func NewLoader(kind LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{cache: make(map[string]model.Model)}

	switch kind {
	case BackendTypeMBM:
		l.backend = newMBMLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	codec, err := l.codecFor(path)
	if err != nil {
		return nil, err
	}

	imported, err := codec.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	m := l.store(path, imported)
	logLoaded(path, m)
	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	if m := l.Get(name); m != nil {
		return m, nil
	}

	imported, err := l.backend.LoadReader(r, "")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load from reader %q", name)
	}
	imported.Name = name

	return l.store(name, imported), nil
}

func (l *loader) Save(path string, m *model.ImportedModel) error {
	codec, err := l.codecFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := codec.Write(&buf, m); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
	return nil
}

func (l *loader) Encode(w io.Writer, m *model.ImportedModel) error {
	return l.backend.Write(w, m)
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := make(map[string]model.Model, len(l.cache))
	for key, m := range l.cache {
		snapshot[key] = m
	}
	return snapshot
}

// store converts imported into a Model and caches it under key. If another goroutine cached the
// same key first, that model wins so every caller shares one track.
func (l *loader) store(key string, imported *model.ImportedModel) model.Model {
	m := model.FromImported(imported)

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.cache[key]; ok {
		return existing
	}
	l.cache[key] = m
	return m
}

func (l *loader) codecFor(path string) (loaderBackend, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mbm":
		return l.backend, nil
	default:
		return nil, errors.Errorf("unsupported model format: %q", ext)
	}
}

func logLoaded(name string, m model.Model) {
	if t := m.Track(); t != nil {
		log.Printf("[Loader] %s: %d vertices, %d joints, %d keyframes, %.3fs loop",
			name, len(m.Mesh().Vertices), t.JointCount(), t.KeyframeCount(), t.Duration)
		return
	}
	log.Printf("[Loader] %s: %d vertices, no skeleton", name, len(m.Mesh().Vertices))
}
