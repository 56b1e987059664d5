package mass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// inertiaAbout lumps the given point masses about ref with the direct
// second-moment formula, for comparison against the accumulator.
func inertiaAbout(ref r3.Vec, centroids []r3.Vec, masses []float64) (float64, r3.Vec, [6]float64) {
	acc := newAccumulator(ref)
	for i, c := range centroids {
		acc.add(c, masses[i])
	}
	return acc.finalize()
}

func TestAccumulatorSinglePointMass(t *testing.T) {
	acc := newAccumulator(r3.Vec{})
	acc.add(r3.Vec{X: 1, Y: 2, Z: 3}, 2.0)
	m, cg, inertia := acc.finalize()

	assert.Equal(t, 2.0, m)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, cg)
	// Ixx = m(y^2+z^2), cross terms are +m*di*dj products.
	assert.Equal(t, 2.0*(4+9), inertia[Ixx])
	assert.Equal(t, 2.0*(1+9), inertia[Iyy])
	assert.Equal(t, 2.0*(1+4), inertia[Izz])
	assert.Equal(t, 2.0*1*2, inertia[Ixy])
	assert.Equal(t, 2.0*1*3, inertia[Ixz])
	assert.Equal(t, 2.0*2*3, inertia[Iyz])
}

func TestAccumulatorZeroMassFinalize(t *testing.T) {
	acc := newAccumulator(r3.Vec{X: 5})
	m, cg, inertia := acc.finalize()
	assert.Zero(t, m)
	assert.Equal(t, r3.Vec{}, cg)
	assert.Equal(t, [6]float64{}, inertia)
}

func TestTransformInertiaRoundTrip(t *testing.T) {
	// Inertia computed directly about B must equal computing about A and
	// transforming to B, for an arbitrary cluster of point masses.
	centroids := []r3.Vec{
		{X: 1.0, Y: -2.0, Z: 0.5},
		{X: -0.3, Y: 4.1, Z: 2.2},
		{X: 2.5, Y: 0.7, Z: -1.9},
		{X: 0.0, Y: 0.0, Z: 3.3},
	}
	masses := []float64{2.0, 0.5, 1.25, 3.75}

	refA := r3.Vec{X: 0.4, Y: -1.1, Z: 2.0}
	refB := r3.Vec{X: -2.2, Y: 3.0, Z: 0.1}

	mA, cg, iA := inertiaAbout(refA, centroids, masses)
	mB, _, iB := inertiaAbout(refB, centroids, masses)
	require.Equal(t, mA, mB)

	got := TransformInertia(mA, cg, refA, refB, iA)
	for k := 0; k < 6; k++ {
		assert.InDelta(t, iB[k], got[k], 1e-12, "component %d", k)
	}
}

func TestTransformInertiaIdentity(t *testing.T) {
	inertia := [6]float64{10, 11, 12, 1, 2, 3}
	ref := r3.Vec{X: 1, Y: 2, Z: 3}
	got := TransformInertia(5, r3.Vec{X: -1, Y: 0.5, Z: 2}, ref, ref, inertia)
	assert.Equal(t, inertia, got)
}

func TestTransformInertiaToCG(t *testing.T) {
	// Transforming to the CG must strip the parallel-axis terms entirely:
	// a single lumped mass has zero inertia about its own centroid.
	c := r3.Vec{X: 2, Y: -1, Z: 4}
	m := 3.0
	acc := newAccumulator(r3.Vec{})
	acc.add(c, m)
	mass, cg, inertia := acc.finalize()

	got := TransformInertia(mass, cg, r3.Vec{}, cg, inertia)
	for k := 0; k < 6; k++ {
		assert.InDelta(t, 0, got[k], 1e-12, "component %d", k)
	}
}

func TestInertiaMatrixSigns(t *testing.T) {
	p := Properties{Inertia: [6]float64{10, 20, 30, 1, 2, 3}}
	im := p.InertiaMatrix()
	assert.Equal(t, 10.0, im.At(0, 0))
	assert.Equal(t, 20.0, im.At(1, 1))
	assert.Equal(t, 30.0, im.At(2, 2))
	assert.Equal(t, -1.0, im.At(0, 1))
	assert.Equal(t, -2.0, im.At(0, 2))
	assert.Equal(t, -3.0, im.At(1, 2))
	assert.Equal(t, im.At(1, 0), im.At(0, 1))
}
