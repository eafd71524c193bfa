package loader

import (
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// mbmLoaderBackend implements loaderBackend for the .mbm skeletal asset format.
type mbmLoaderBackend struct {
	charmap       *charmap.Charmap
	probeTextures bool
}

var _ loaderBackend = &mbmLoaderBackend{}

// newMBMLoaderBackend creates an .mbm backend decoding material paths with Windows-1252.
func newMBMLoaderBackend() *mbmLoaderBackend {
	return &mbmLoaderBackend{charmap: charmap.Windows1252}
}

func (b *mbmLoaderBackend) Load(p string) (*model.ImportedModel, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, "mbm: open")
	}
	defer f.Close()

	m, err := b.LoadReader(f, filepath.Dir(p))
	if err != nil {
		return nil, err
	}
	m.Name = p
	return m, nil
}

func (b *mbmLoaderBackend) LoadReader(r io.Reader, dir string) (*model.ImportedModel, error) {
	m, err := decodeMBM(r, b.charmap)
	if err != nil {
		return nil, err
	}

	m.Textures = make([]*common.ImportedTexture, len(m.MaterialPaths))
	for i, p := range m.MaterialPaths {
		tex := &common.ImportedTexture{Name: p, Path: resolveTexturePath(dir, p)}
		if b.probeTextures && tex.Path != "" {
			if err := tex.Probe(); err != nil {
				log.Printf("[Loader] texture %q unavailable: %v", p, err)
			}
		}
		m.Textures[i] = tex
	}
	return m, nil
}

func (b *mbmLoaderBackend) Write(w io.Writer, m *model.ImportedModel) error {
	return encodeMBM(w, m, b.charmap)
}

// resolveTexturePath maps a stored material path onto the asset directory. Paths are written by
// a Windows tool, so backslashes are treated as separators. When the relative path does not exist
// the file name alone is tried, since exporters often store absolute source paths.
func resolveTexturePath(dir, stored string) string {
	if stored == "" {
		return ""
	}
	slashed := strings.ReplaceAll(stored, `\`, "/")
	if filepath.IsAbs(slashed) {
		if _, err := os.Stat(slashed); err == nil {
			return slashed
		}
	} else {
		candidate := filepath.Join(dir, filepath.FromSlash(slashed))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(dir, path.Base(slashed))
}
