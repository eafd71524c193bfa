package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerp4(t *testing.T) {
	a := mgl32.Vec4{1, 2, 3, 1}
	b := mgl32.Vec4{3, -2, 7, 1}

	tests := []struct {
		name string
		t    float32
		want mgl32.Vec4
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"half", 0.5, mgl32.Vec4{2, 0, 5, 1}},
		{"extrapolate", 1.5, mgl32.Vec4{4, -4, 9, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, Near4(Lerp4(a, b, tc.t), tc.want, 1e-6), "got %v", Lerp4(a, b, tc.t))
		})
	}

	assert.Equal(t, a, Lerp4(a, b, 0), "t == 0 must return a exactly")
}

func TestAdd4Scale4(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{4, 6, 8, 10}, Add4(mgl32.Vec4{1, 2, 3, 4}, mgl32.Vec4{3, 4, 5, 6}))
	assert.Equal(t, mgl32.Vec4{0.5, 1, 1.5, 2}, Scale4(mgl32.Vec4{1, 2, 3, 4}, 0.5))
}

func TestTranslationRow(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, Translation(m))

	moved := WithTranslation(mgl32.Ident4(), mgl32.Vec4{-4, 5, 6, 1})
	assert.Equal(t, mgl32.Vec4{-4, 5, 6, 1}, Translation(moved))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, Axis(moved, 0))
}

func TestQuatMatrixRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		q    mgl32.Quat
	}{
		{"identity", mgl32.QuatIdent()},
		{"yaw 90", mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})},
		{"roll 170", mgl32.QuatRotate(mgl32.DegToRad(170), mgl32.Vec3{0, 0, 1})},
		{"oblique", mgl32.QuatRotate(1.2, mgl32.Vec3{1, 2, 3}.Normalize())},
		{"half turn", mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := MatrixFromQuat(tc.q)
			assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, Translation(m))

			got := QuatFromMatrix(m)
			assert.True(t, SameRotation(tc.q, got, 1e-5), "want %v got %v", tc.q, got)
			assert.InDelta(t, 1, got.Len(), 1e-5)
		})
	}
}

func TestQuatFromMatrixIgnoresTranslationAndScale(t *testing.T) {
	q := mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0})
	m := q.Mat4().Mul4(mgl32.Scale3D(2, 3, 4))
	m = WithTranslation(m, mgl32.Vec4{10, 20, 30, 1})

	assert.True(t, SameRotation(q, QuatFromMatrix(m), 1e-5))
}

func TestSlerpEndpoints(t *testing.T) {
	a := mgl32.QuatIdent()
	b := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	assert.True(t, SameRotation(a, Slerp(a, b, 0), 1e-6))
	assert.True(t, SameRotation(b, Slerp(a, b, 1), 1e-5))

	half := Slerp(a, b, 0.5)
	want := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	assert.True(t, SameRotation(want, half, 1e-5), "want %v got %v", want, half)
}

func TestSlerpTakesShortestArc(t *testing.T) {
	a := mgl32.QuatIdent()
	// 40 degrees about Z, expressed in the opposite hemisphere.
	b := mgl32.QuatRotate(mgl32.DegToRad(40), mgl32.Vec3{0, 0, 1}).Scale(-1)
	require.Less(t, a.Dot(b), float32(0), "inputs must start in opposite hemispheres")

	got := Slerp(a, b, 0.5)
	assert.Greater(t, got.Dot(a), float32(0))

	want := mgl32.QuatRotate(mgl32.DegToRad(20), mgl32.Vec3{0, 0, 1})
	assert.True(t, SameRotation(want, got, 1e-5), "want %v got %v", want, got)

	// The long way around would pass through 200 degrees.
	longWay := mgl32.QuatRotate(mgl32.DegToRad(200), mgl32.Vec3{0, 0, 1})
	assert.False(t, SameRotation(longWay, got, 1e-2))
}

func TestSlerpNormalizes(t *testing.T) {
	a := mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 0})
	b := mgl32.QuatRotate(2.1, mgl32.Vec3{0, 1, 0})
	for _, f := range []float32{0, 0.1, 0.33, 0.5, 0.9, 1} {
		assert.InDelta(t, 1, Slerp(a, b, f).Len(), 1e-5)
	}
}

func TestHSVToRGB(t *testing.T) {
	assert.True(t, Near4(HSVToRGB(0, 1, 1), ColorRed, 1e-6))
	assert.True(t, Near4(HSVToRGB(1.0/3, 1, 1), ColorGreen, 1e-5))
	assert.True(t, Near4(HSVToRGB(2.0/3, 1, 1), ColorBlue, 1e-5))
	assert.True(t, Near4(HSVToRGB(1, 1, 1), ColorRed, 1e-6), "hue wraps at 1")
	assert.True(t, Near4(HSVToRGB(0.5, 0, 0.5), ColorGray, 1e-6))
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 4, WrapIndex(-1, 5))
	assert.Equal(t, 0, WrapIndex(5, 5))
	assert.Equal(t, 2, WrapIndex(12, 5))
	assert.Equal(t, 0, WrapIndex(3, 0))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
