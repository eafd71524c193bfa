package main

import (
	"fmt"
	"image"
	"io"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
}

func dumpString(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}

// writeSummary prints the mesh, material and skeleton overview of m.
func writeSummary(w io.Writer, m model.Model) {
	mesh := m.Mesh()
	fmt.Fprintf(w, "name:      %s\n", m.Name())
	fmt.Fprintf(w, "skinned:   %v\n", m.Skinned())
	fmt.Fprintf(w, "vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(w, "indices:   %d\n", len(mesh.Indices))
	fmt.Fprintf(w, "radius:    %.3f\n", m.BoundingRadius())
	fmt.Fprintf(w, "materials: %d\n", len(m.Materials()))
	for i, p := range m.MaterialPaths() {
		fmt.Fprintf(w, "  [%d] %s", i, p)
		if textures := m.Textures(); i < len(textures) && textures[i] != nil && textures[i].Format != "" {
			fmt.Fprintf(w, " (%s %dx%d)", textures[i].Format, textures[i].Width, textures[i].Height)
		}
		fmt.Fprintln(w)
	}

	track := m.Track()
	if track == nil {
		fmt.Fprintln(w, "skeleton:  none")
		return
	}
	fmt.Fprintf(w, "joints:    %d\n", track.JointCount())
	for i, j := range track.BindPose {
		p := track.BindPose.Position(i)
		fmt.Fprintf(w, "  [%d] parent %2d  at (%.3f, %.3f, %.3f)\n", i, j.ParentIndex, p[0], p[1], p[2])
	}
	fmt.Fprintf(w, "keyframes: %d\n", track.KeyframeCount())
	fmt.Fprintf(w, "duration:  %gs\n", track.Duration)
	fmt.Fprintf(w, "keytimes:  %v\n", track.Keytimes())
	if err := track.Validate(); err != nil {
		fmt.Fprintf(w, "valid:     no (%v)\n", err)
	} else {
		fmt.Fprintln(w, "valid:     yes")
	}
}

// writeTextures decodes every texture the materials reference and reports its format and size,
// or the reason it could not be read.
func writeTextures(w io.Writer, m model.Model) {
	fmt.Fprintln(w, "textures:")
	for i, tex := range m.Textures() {
		if tex == nil {
			continue
		}
		img, err := tex.Decode()
		if err != nil {
			fmt.Fprintf(w, "  [%d] %s: %v\n", i, tex.Name, err)
			continue
		}
		fmt.Fprintf(w, "  [%d] %s: %s %dx%d", i, tex.Name, tex.Format, tex.Width, tex.Height)
		if translucent(img) {
			fmt.Fprint(w, " alpha")
		}
		fmt.Fprintln(w)
	}
}

func translucent(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return true
		}
	}
	return false
}
