// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImportedTexture represents a texture referenced by an asset's material path table.
// The Path field is resolved against the asset's directory by the loader; Data may instead hold
// the raw encoded bytes when the texture did not come from disk.
type ImportedTexture struct {
	// Name is the path exactly as stored in the asset.
	Name string

	// Path is the resolved file path (empty when Data is used).
	Path string

	// Data contains raw encoded image bytes (PNG, JPEG, BMP, TIFF or WebP).
	Data []byte

	// Format is the image format name reported by the decoder (populated after Decode or Probe).
	Format string

	// Width is the texture width in pixels (populated after Decode or Probe).
	Width int

	// Height is the texture height in pixels (populated after Decode or Probe).
	Height int
}

// open returns a reader over the texture's encoded bytes.
func (t *ImportedTexture) open() (io.ReadCloser, error) {
	if t == nil {
		return nil, errors.New("texture is nil")
	}
	if len(t.Data) > 0 {
		return io.NopCloser(bytes.NewReader(t.Data)), nil
	}
	if t.Path == "" {
		return nil, errors.New("texture has neither data nor path")
	}
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open texture %s", t.Path)
	}
	return f, nil
}

// Probe reads only the image header to fill Format, Width and Height.
//
// Returns:
//   - error: error if the texture cannot be opened or its format is unknown
func (t *ImportedTexture) Probe() error {
	r, err := t.open()
	if err != nil {
		return err
	}
	defer r.Close()

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return errors.Wrapf(err, "probe texture %q", t.Name)
	}
	t.Format = format
	t.Width = cfg.Width
	t.Height = cfg.Height
	return nil
}

// Decode decodes the texture to an RGBA image.
// Uses either Data bytes or loads from Path on disk.
// Supports PNG, JPEG, BMP, TIFF and WebP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - *image.RGBA: the decoded pixels
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() (*image.RGBA, error) {
	r, err := t.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decode texture %q", t.Name)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	t.Format = format
	t.Width = bounds.Dx()
	t.Height = bounds.Dy()
	return rgba, nil
}
