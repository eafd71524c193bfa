package loader

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func encoded(t *testing.T, m *model.ImportedModel) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewLoader(BackendTypeMBM).Encode(&buf, m))
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	src := model.WaveModel("wave", 4, 6, 1.5)
	src.Mesh.Vertices[0].Tex = mgl32.Vec2{0.25, 0.75}
	src.MaterialPaths = []string{"textures/skin.png"}
	src.Materials[0][model.ComponentDiffuse].Input = 0

	l := NewLoader(BackendTypeMBM)
	m, err := l.LoadReader("wave", bytes.NewReader(encoded(t, src)))
	require.NoError(t, err)

	assert.Equal(t, "wave", m.Name())
	assert.Equal(t, src.Mesh, m.Mesh())
	assert.Equal(t, src.Materials, m.Materials())
	assert.Equal(t, src.MaterialPaths, m.MaterialPaths())
	assert.Equal(t, src.Track, m.Track())
	require.Len(t, m.Textures(), 1)
	assert.Equal(t, "textures/skin.png", m.Textures()[0].Name)

	assert.Same(t, m, l.Get("wave"))
	again, err := l.LoadReader("wave", bytes.NewReader(nil))
	require.NoError(t, err, "cached models are not re-read")
	assert.Same(t, m, again)
}

func TestLoadConvertsHandedness(t *testing.T) {
	src := &model.ImportedModel{
		Mesh: model.ImportedMesh{
			Vertices: []model.Vertex{
				{Position: mgl32.Vec4{1, 2, 3, 1}, Normal: mgl32.Vec4{1, 0, 0, 0}, Tex: mgl32.Vec2{0, 0.25}},
				{Position: mgl32.Vec4{4, 5, 6, 1}},
				{Position: mgl32.Vec4{7, 8, 9, 1}},
			},
			Indices: []uint32{0, 1, 2},
		},
	}
	raw := encoded(t, src)

	// Stored data is left-handed: the writer mirrored X, flipped V and reversed the winding.
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(raw[4:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(raw[12:]))
	vertexStart := 4 + 12 + 4
	assert.Equal(t, float32(-1), mathF32(raw[vertexStart:]))
	assert.Equal(t, float32(-1), mathF32(raw[vertexStart+16:]))
	assert.Equal(t, float32(0.75), mathF32(raw[vertexStart+36:]))

	m, err := NewLoader(BackendTypeMBM).LoadReader("tri", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Nil(t, m.Track())
	assert.False(t, m.Skinned())
	assert.Equal(t, src.Mesh.Vertices, m.Mesh().Vertices)
	assert.Equal(t, []uint32{0, 1, 2}, m.Mesh().Indices)
}

func mathF32(b []byte) float32 {
	var f float32
	_ = binary.Read(bytes.NewReader(b[:4]), binary.LittleEndian, &f)
	return f
}

func TestLoadForcesPositionW(t *testing.T) {
	src := &model.ImportedModel{Mesh: model.ImportedMesh{Vertices: []model.Vertex{{Position: mgl32.Vec4{1, 1, 1, 0}}}}}
	m, err := NewLoader(BackendTypeMBM).LoadReader("w", bytes.NewReader(encoded(t, src)))
	require.NoError(t, err)
	assert.Equal(t, float32(1), m.Mesh().Vertices[0].Position.W())
}

func TestLoadTruncated(t *testing.T) {
	raw := encoded(t, model.WaveModel("wave", 4, 3, 1))

	tests := []struct {
		name    string
		length  int
		section string
	}{
		{"empty", 0, "indices"},
		{"mid indices", 100, "indices"},
		{"before vertices", 148, "vertices"},
		{"mid vertices", 200, "vertices"},
		{"last byte", len(raw) - 1, "keyframes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader(BackendTypeMBM).LoadReader(tc.name, bytes.NewReader(raw[:tc.length]))
			require.Error(t, err)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			assert.Contains(t, err.Error(), "mbm: read "+tc.section)
		})
	}
}

func TestLoadRejectsCorruptCounts(t *testing.T) {
	var huge bytes.Buffer
	binary.Write(&huge, binary.LittleEndian, uint32(0xFFFFFFF0))
	_, err := NewLoader(BackendTypeMBM).LoadReader("huge", &huge)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")

	var ragged bytes.Buffer
	binary.Write(&ragged, binary.LittleEndian, uint32(4))
	_, err = NewLoader(BackendTypeMBM).LoadReader("ragged", &ragged)
	assert.ErrorContains(t, err, "not a multiple of 3")
}

func TestLoadRejectsBadReferences(t *testing.T) {
	outOfRange := model.WaveModel("wave", 2, 2, 1)
	outOfRange.Mesh.Indices[0] = 99
	_, err := NewLoader(BackendTypeMBM).LoadReader("idx", bytes.NewReader(encoded(t, outOfRange)))
	assert.ErrorContains(t, err, "references vertex 99")

	badInput := model.WaveModel("wave", 2, 2, 1)
	badInput.Materials[0][model.ComponentSpecular].Input = 3
	_, err = NewLoader(BackendTypeMBM).LoadReader("mat", bytes.NewReader(encoded(t, badInput)))
	assert.ErrorContains(t, err, "specular input 3 out of range")
}

func TestLoadRejectsInvalidTrack(t *testing.T) {
	src := model.WaveModel("wave", 3, 4, 2)
	src.Track.Keyframes[2].Keytime = src.Track.Keyframes[1].Keytime

	_, err := NewLoader(BackendTypeMBM).LoadReader("bad", bytes.NewReader(encoded(t, src)))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrKeytimeOrder)
}

func TestEncodeRejectsRaggedKeyframes(t *testing.T) {
	src := model.WaveModel("wave", 3, 4, 2)
	src.Track.Keyframes[3].Pose = src.Track.Keyframes[3].Pose[:1]
	err := NewLoader(BackendTypeMBM).Encode(io.Discard, src)
	assert.ErrorIs(t, err, model.ErrJointCountMismatch)
}

func TestMaterialPathCharsets(t *testing.T) {
	src := model.WaveModel("wave", 2, 2, 1)
	src.MaterialPaths = []string{"café.png"}

	raw := encoded(t, src)
	assert.True(t, bytes.Contains(raw, []byte{'c', 'a', 'f', 0xE9, '.'}), "stored as Windows-1252")

	m, err := NewLoader(BackendTypeMBM).LoadReader("1252", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []string{"café.png"}, m.MaterialPaths())

	utf8, err := NewLoader(BackendTypeMBM, WithCharmap(nil)).LoadReader("utf8", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9.png", utf8.MaterialPaths()[0])

	dos, err := NewLoader(BackendTypeMBM, WithCharmap(charmap.CodePage437)).LoadReader("437", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "caf\u0398.png", dos.MaterialPaths()[0])

	unencodable := model.WaveModel("wave", 2, 2, 1)
	unencodable.MaterialPaths = []string{"猫.png"}
	assert.Error(t, NewLoader(BackendTypeMBM).Encode(io.Discard, unencodable))
}

func TestDecodePathStopsAtNUL(t *testing.T) {
	p, err := decodePath([]byte("skin.png\x00\x00junk"), charmap.Windows1252)
	require.NoError(t, err)
	assert.Equal(t, "skin.png", p)
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "tex"), 0o755))
	writePNG(t, filepath.Join(dir, "tex", "skin.png"), 4, 2)
	writePNG(t, filepath.Join(dir, "flat.png"), 1, 1)

	src := model.WaveModel("wave", 3, 4, 1)
	src.MaterialPaths = []string{`tex\skin.png`, `C:\art\export\flat.png`, "missing.png"}

	l := NewLoader(BackendTypeMBM, WithTextureProbe(true))
	file := filepath.Join(dir, "wave.mbm")
	require.NoError(t, l.Save(file, src))

	m, err := l.Load(file)
	require.NoError(t, err)
	assert.Equal(t, file, m.Name())
	assert.Equal(t, src.Track, m.Track())

	tex := m.Textures()
	require.Len(t, tex, 3)
	assert.Equal(t, filepath.Join(dir, "tex", "skin.png"), tex[0].Path)
	assert.Equal(t, "png", tex[0].Format)
	assert.Equal(t, 4, tex[0].Width)
	assert.Equal(t, filepath.Join(dir, "flat.png"), tex[1].Path)
	assert.Equal(t, 1, tex[1].Height)
	assert.Zero(t, tex[2].Width, "missing textures are logged, not fatal")

	cached, err := l.Load(file)
	require.NoError(t, err)
	assert.Same(t, m, cached)
	assert.Len(t, l.Models(), 1)

	require.NoError(t, l.Save(file, src))
	assert.Nil(t, l.Get(file), "saving invalidates the cache entry")
}

func TestUnsupportedExtension(t *testing.T) {
	l := NewLoader(BackendTypeMBM)
	_, err := l.Load("model.fbx")
	assert.ErrorContains(t, err, "unsupported model format")
	assert.Error(t, l.Save(filepath.Join(t.TempDir(), "out.glb"), model.WaveModel("w", 1, 1, 1)))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(BackendTypeMBM).Load(filepath.Join(t.TempDir(), "nope.mbm"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}
