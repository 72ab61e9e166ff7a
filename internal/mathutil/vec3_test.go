package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n[1], 1e-12)
	assert.InDelta(t, 0.8, n[2], 1e-12)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.True(t, Vec3{1e-13, 0, 0}.IsZero())
	assert.False(t, Vec3{0, 0, 1}.IsZero())
}

func TestVec3NegKeepsSignedZero(t *testing.T) {
	n := Vec3{}.Neg()
	for i := range n {
		assert.True(t, math.Signbit(n[i]), "component %d", i)
	}
	assert.Equal(t, Vec3{-1, 2, -3}, Vec3{1, -2, 3}.Neg())
}

func TestIsometricViewPreservesLength(t *testing.T) {
	v := Vec3{1, 2, 3}
	assert.InDelta(t, v.Len(), IsometricView.MulVec3(v).Len(), 1e-9)
	assert.InDelta(t, math.Pi/2, Deg2Rad(90), 1e-15)
}
