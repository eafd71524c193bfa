package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"
)

// loaderBackend is one asset codec.
type loaderBackend interface {
	// Load decodes the file at path; texture paths resolve against its directory.
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a reader stream. Texture paths are resolved against dir.
	//
	// Parameters:
	//   - r: asset bytes
	//   - dir: base for relative texture paths, empty for the working directory
	//
	// Returns:
	//   - *model.ImportedModel: the decoded asset
	//   - error: a truncated or malformed stream
	LoadReader(r io.Reader, dir string) (*model.ImportedModel, error)

	// Write serializes a model in the backend's format.
	//
	// Parameters:
	//   - w: the destination
	//   - m: the model to write
	//
	// Returns:
	//   - error: error if the model cannot be represented or writing fails
	Write(w io.Writer, m *model.ImportedModel) error
}
