package loader

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Sanity limits on .mbm section counts. Corrupt files fail fast instead of allocating gigabytes.
const (
	maxIndexCount    = 1 << 26
	maxVertexCount   = 1 << 24
	maxMaterialCount = 1 << 16
	maxPathCount     = 1 << 16
	maxPathLength    = 1 << 12
	maxJointCount    = 1 << 14
	maxFrameCount    = 1 << 20
	maxFrameJoints   = 1 << 26
)

// On-disk record sizes in bytes.
const (
	vertexSize    = 40
	componentSize = 24
	materialSize  = componentSize * int(model.MaterialComponentCount)
	jointSize     = 68
)

// mbmDecoder reads little-endian .mbm fields. The first failure is kept and every later read
// becomes a no-op, so callers check err once per section.
type mbmDecoder struct {
	r       *bufio.Reader
	scratch []byte
	section string
	err     error
}

func newMBMDecoder(r io.Reader) *mbmDecoder {
	return &mbmDecoder{r: bufio.NewReader(r), scratch: make([]byte, 256)}
}

// next reads n raw bytes into the scratch buffer.
func (d *mbmDecoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if cap(d.scratch) < n {
		d.scratch = make([]byte, n)
	}
	b := d.scratch[:n]
	if _, err := io.ReadFull(d.r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		d.err = errors.Wrapf(err, "mbm: read %s", d.section)
		return nil
	}
	return b
}

func (d *mbmDecoder) u32() uint32 {
	b := d.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *mbmDecoder) f64() float64 {
	b := d.next(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// count reads a u32 element count and rejects it above limit.
func (d *mbmDecoder) count(limit int) int {
	n := d.u32()
	if d.err == nil && uint64(n) > uint64(limit) {
		d.err = errors.Errorf("mbm: %s count %d exceeds limit %d", d.section, n, limit)
		return 0
	}
	return int(n)
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func (d *mbmDecoder) joints(n int) model.Pose {
	if d.err != nil {
		return nil
	}
	pose := make(model.Pose, n)
	for i := range pose {
		b := d.next(jointSize)
		if b == nil {
			return nil
		}
		for k := 0; k < 16; k++ {
			pose[i].Transform[k] = f32At(b, k*4)
		}
		pose[i].ParentIndex = int32(binary.LittleEndian.Uint32(b[64:]))
	}
	return pose
}

// decodeMBM parses an .mbm stream into an ImportedModel, applying the left-handed to right-handed
// mesh conversion. Material paths are decoded with cm; a nil cm keeps the raw bytes.
func decodeMBM(r io.Reader, cm *charmap.Charmap) (*model.ImportedModel, error) {
	d := newMBMDecoder(r)
	out := &model.ImportedModel{}

	d.section = "indices"
	if n := d.count(maxIndexCount); d.err == nil {
		if n%3 != 0 {
			return nil, errors.Errorf("mbm: index count %d is not a multiple of 3", n)
		}
		out.Mesh.Indices = make([]uint32, n)
		for i := range out.Mesh.Indices {
			out.Mesh.Indices[i] = d.u32()
		}
	}

	d.section = "vertices"
	if n := d.count(maxVertexCount); d.err == nil {
		out.Mesh.Vertices = make([]model.Vertex, n)
		for i := range out.Mesh.Vertices {
			b := d.next(vertexSize)
			if b == nil {
				break
			}
			v := &out.Mesh.Vertices[i]
			for k := 0; k < 4; k++ {
				v.Position[k] = f32At(b, k*4)
				v.Normal[k] = f32At(b, 16+k*4)
			}
			v.Tex = mgl32.Vec2{f32At(b, 32), f32At(b, 36)}
		}
	}

	d.section = "materials"
	if n := d.count(maxMaterialCount); d.err == nil {
		out.Materials = make([]model.Material, n)
		for i := range out.Materials {
			b := d.next(materialSize)
			if b == nil {
				break
			}
			for c := range out.Materials[i] {
				o := c * componentSize
				out.Materials[i][c] = model.MaterialComponent{
					Value:  [3]float32{f32At(b, o), f32At(b, o+4), f32At(b, o+8)},
					Factor: f32At(b, o+12),
					Input:  int64(binary.LittleEndian.Uint64(b[o+16:])),
				}
			}
		}
	}

	d.section = "material paths"
	if n := d.count(maxPathCount); d.err == nil {
		out.MaterialPaths = make([]string, 0, n)
		for i := 0; i < n && d.err == nil; i++ {
			size := d.count(maxPathLength)
			raw := d.next(size)
			if d.err != nil {
				break
			}
			p, err := decodePath(raw, cm)
			if err != nil {
				return nil, errors.Wrapf(err, "mbm: material path %d", i)
			}
			out.MaterialPaths = append(out.MaterialPaths, p)
		}
	}

	d.section = "bind pose"
	bind := d.joints(d.count(maxJointCount))

	d.section = "animation header"
	duration := d.f64()
	jointCount := d.count(maxJointCount)
	frameCount := d.count(maxFrameCount)
	if d.err == nil && jointCount*frameCount > maxFrameJoints {
		return nil, errors.Errorf("mbm: %d frames of %d joints exceeds limit", frameCount, jointCount)
	}

	d.section = "keyframes"
	var keyframes []model.Keyframe
	if d.err == nil && frameCount > 0 {
		keyframes = make([]model.Keyframe, frameCount)
		for i := range keyframes {
			keyframes[i].Keytime = d.f64()
			keyframes[i].Pose = d.joints(jointCount)
		}
	}
	if d.err != nil {
		return nil, d.err
	}

	if err := validateIndices(out.Mesh.Indices, len(out.Mesh.Vertices)); err != nil {
		return nil, err
	}
	for i, m := range out.Materials {
		for c, comp := range m {
			if comp.Input != model.NoInput && (comp.Input < 0 || comp.Input >= int64(len(out.MaterialPaths))) {
				return nil, errors.Errorf("mbm: material %d %s input %d out of range", i, model.MaterialComponentType(c), comp.Input)
			}
		}
	}

	if len(bind) > 0 || len(keyframes) > 0 {
		out.Track = &model.AnimationTrack{Duration: duration, Keyframes: keyframes, BindPose: bind}
		if err := out.Track.Validate(); err != nil {
			return nil, errors.Wrap(err, "mbm: invalid track")
		}
	}

	toRightHanded(&out.Mesh)
	out.Mesh.ComputeBounds()
	return out, nil
}

// encodeMBM writes m in .mbm layout, undoing the handedness conversion decodeMBM applies.
func encodeMBM(w io.Writer, m *model.ImportedModel, cm *charmap.Charmap) error {
	bw := bufio.NewWriter(w)
	var b [8]byte
	put32 := func(v uint32) {
		binary.LittleEndian.PutUint32(b[:4], v)
		bw.Write(b[:4])
	}
	putF32 := func(v float32) { put32(math.Float32bits(v)) }
	put64 := func(v uint64) {
		binary.LittleEndian.PutUint64(b[:], v)
		bw.Write(b[:])
	}
	putJoints := func(p model.Pose) {
		for _, j := range p {
			for k := 0; k < 16; k++ {
				putF32(j.Transform[k])
			}
			put32(uint32(j.ParentIndex))
		}
	}

	mesh := m.Mesh
	if len(mesh.Indices)%3 != 0 {
		return errors.Errorf("mbm: index count %d is not a multiple of 3", len(mesh.Indices))
	}
	put32(uint32(len(mesh.Indices)))
	for t := 0; t < len(mesh.Indices); t += 3 {
		put32(mesh.Indices[t+2])
		put32(mesh.Indices[t+1])
		put32(mesh.Indices[t])
	}

	put32(uint32(len(mesh.Vertices)))
	for _, v := range mesh.Vertices {
		pos, nrm := v.Position, v.Normal
		pos[0], nrm[0] = -pos[0], -nrm[0]
		for k := 0; k < 4; k++ {
			putF32(pos[k])
		}
		for k := 0; k < 4; k++ {
			putF32(nrm[k])
		}
		putF32(v.Tex[0])
		putF32(1 - v.Tex[1])
	}

	put32(uint32(len(m.Materials)))
	for _, mat := range m.Materials {
		for _, c := range mat {
			putF32(c.Value[0])
			putF32(c.Value[1])
			putF32(c.Value[2])
			putF32(c.Factor)
			put64(uint64(c.Input))
		}
	}

	put32(uint32(len(m.MaterialPaths)))
	for i, p := range m.MaterialPaths {
		raw, err := encodePath(p, cm)
		if err != nil {
			return errors.Wrapf(err, "mbm: material path %d", i)
		}
		put32(uint32(len(raw)))
		bw.Write(raw)
	}

	track := m.Track
	if track == nil {
		track = &model.AnimationTrack{}
	}
	put32(uint32(len(track.BindPose)))
	putJoints(track.BindPose)

	put64(math.Float64bits(track.Duration))
	jointCount := len(track.BindPose)
	if len(track.Keyframes) > 0 {
		jointCount = len(track.Keyframes[0].Pose)
	}
	put32(uint32(jointCount))
	put32(uint32(len(track.Keyframes)))
	for _, k := range track.Keyframes {
		if len(k.Pose) != jointCount {
			return errors.Wrapf(model.ErrJointCountMismatch, "mbm: keyframe at %v", k.Keytime)
		}
		put64(math.Float64bits(k.Keytime))
		putJoints(k.Pose)
	}

	return errors.Wrap(bw.Flush(), "mbm: write")
}

// toRightHanded mirrors the mesh across X, flips the V texture coordinate, and reverses triangle
// winding to match.
func toRightHanded(mesh *model.ImportedMesh) {
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position[0] = -v.Position[0]
		v.Position[3] = 1
		v.Normal[0] = -v.Normal[0]
		v.Tex[1] = 1 - v.Tex[1]
	}
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		mesh.Indices[t], mesh.Indices[t+2] = mesh.Indices[t+2], mesh.Indices[t]
	}
}

func validateIndices(indices []uint32, vertexCount int) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return errors.Errorf("mbm: index %d references vertex %d of %d", i, idx, vertexCount)
		}
	}
	return nil
}

// decodePath converts a stored material path to UTF-8. Anything from the first NUL on is dropped.
func decodePath(raw []byte, cm *charmap.Charmap) (string, error) {
	if i := strings.IndexByte(string(raw), 0); i >= 0 {
		raw = raw[:i]
	}
	if cm == nil {
		return string(raw), nil
	}
	s, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func encodePath(p string, cm *charmap.Charmap) ([]byte, error) {
	if cm == nil {
		return []byte(p), nil
	}
	return cm.NewEncoder().Bytes([]byte(p))
}
