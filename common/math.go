package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Joint matrices are stored exactly as they appear on disk: sixteen floats in row-major order with
// the translation in row 3. Read as an mgl32.Mat4 (column-major) the same sixteen floats describe the
// transposed, column-vector form of that transform, so the disk "row i" is mgl32 column i. All helpers
// below work on that layout.

// basisEpsilon guards against normalizing degenerate (zero-scale) basis vectors.
const basisEpsilon = 1e-8

// Lerp4 linearly interpolates two 4-component vectors component-wise: a + (b - a) * t.
// The factor is not clamped; values slightly outside [0, 1] extrapolate without error.
//
// Parameters:
//   - a: the start vector (returned exactly when t == 0)
//   - b: the end vector
//   - t: the interpolation factor
//
// Returns:
//   - mgl32.Vec4: the interpolated vector
func Lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return mgl32.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// Add4 adds two 4-component vectors component-wise.
//
// Parameters:
//   - a: the left operand
//   - b: the right operand
//
// Returns:
//   - mgl32.Vec4: a + b
func Add4(a, b mgl32.Vec4) mgl32.Vec4 {
	return a.Add(b)
}

// Scale4 multiplies every component of a by s.
//
// Parameters:
//   - a: the vector to scale
//   - s: the scalar multiplier
//
// Returns:
//   - mgl32.Vec4: a * s
func Scale4(a mgl32.Vec4, s float32) mgl32.Vec4 {
	return a.Mul(s)
}

// Translation returns the translation row (row 3) of a joint matrix, including its w component.
//
// Parameters:
//   - m: the joint matrix
//
// Returns:
//   - mgl32.Vec4: the translation row
func Translation(m mgl32.Mat4) mgl32.Vec4 {
	return mgl32.Vec4{m[12], m[13], m[14], m[15]}
}

// WithTranslation returns a copy of m whose translation row is replaced by t.
//
// Parameters:
//   - m: the source matrix
//   - t: the new translation row
//
// Returns:
//   - mgl32.Mat4: the updated matrix
func WithTranslation(m mgl32.Mat4, t mgl32.Vec4) mgl32.Mat4 {
	m[12], m[13], m[14], m[15] = t[0], t[1], t[2], t[3]
	return m
}

// Axis returns basis axis i (0 = X, 1 = Y, 2 = Z) of a joint matrix as a 3-component vector.
//
// Parameters:
//   - m: the joint matrix
//   - i: the axis index in [0, 2]
//
// Returns:
//   - mgl32.Vec3: the axis as stored (not normalized)
func Axis(m mgl32.Mat4, i int) mgl32.Vec3 {
	return mgl32.Vec3{m[i*4], m[i*4+1], m[i*4+2]}
}

// QuatFromMatrix extracts the rotation from the upper 3x3 of a joint matrix.
// Translation is ignored. Each basis axis is normalized first so uniformly or non-uniformly
// scaled joints still produce a unit rotation; a zero-length axis is left as is.
//
// Parameters:
//   - m: the joint matrix
//
// Returns:
//   - mgl32.Quat: the unit rotation quaternion
func QuatFromMatrix(m mgl32.Mat4) mgl32.Quat {
	var r mgl32.Mat4
	for i := 0; i < 3; i++ {
		axis := Axis(m, i)
		if l := axis.Len(); l > basisEpsilon {
			axis = axis.Mul(1 / l)
		}
		r[i*4], r[i*4+1], r[i*4+2] = axis[0], axis[1], axis[2]
	}
	r[15] = 1
	return mgl32.Mat4ToQuat(r).Normalize()
}

// MatrixFromQuat builds a pure rotation matrix from q. The translation row is (0, 0, 0, 1);
// callers supply their own translation with WithTranslation.
//
// Parameters:
//   - q: the rotation (normalized before conversion)
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func MatrixFromQuat(q mgl32.Quat) mgl32.Mat4 {
	return q.Normalize().Mat4()
}

// Slerp spherically interpolates from a to b along the shorter arc.
// When a and b lie in opposite hemispheres (negative dot product) b is negated first, since
// q and -q encode the same rotation but interpolating toward -q would take the long way around.
//
// Parameters:
//   - a: the start rotation (returned when t == 0)
//   - b: the end rotation
//   - t: the interpolation factor
//
// Returns:
//   - mgl32.Quat: the normalized interpolated rotation
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}

// SameRotation reports whether a and b describe the same rotation, treating q and -q as equal.
// Every component must differ by at most threshold.
//
// Parameters:
//   - a: the first rotation
//   - b: the second rotation
//   - threshold: the allowed absolute per-component difference
//
// Returns:
//   - bool: true if the rotations match
func SameRotation(a, b mgl32.Quat, threshold float32) bool {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return Near4(mgl32.Vec4{a.V[0], a.V[1], a.V[2], a.W}, mgl32.Vec4{b.V[0], b.V[1], b.V[2], b.W}, threshold)
}

// Near4 reports whether every component of a and b differs by at most threshold.
// Unlike mgl32's ApproxEqualThreshold the comparison is absolute, so values near zero behave.
//
// Parameters:
//   - a: the first vector
//   - b: the second vector
//   - threshold: the allowed absolute difference
//
// Returns:
//   - bool: true if the vectors match
func Near4(a, b mgl32.Vec4, threshold float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > threshold {
			return false
		}
	}
	return true
}

// Near3 is Near4 for 3-component vectors.
func Near3(a, b mgl32.Vec3, threshold float32) bool {
	return Near4(a.Vec4(0), b.Vec4(0), threshold)
}

// SliceToBytes converts any slice to a byte slice for vertex buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
