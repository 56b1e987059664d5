package mass

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Inertia component order used throughout: [Ixx, Iyy, Izz, Ixy, Ixz, Iyz].
// Cross terms store the raw mass products m*dx*dy (the sign convention of the
// reference implementation); InertiaMatrix negates them for the tensor view.
const (
	Ixx = iota
	Iyy
	Izz
	Ixy
	Ixz
	Iyz
)

// accumulator maintains the running (mass, mass-weighted centroid sum,
// inertia about a fixed reference point) during one pass over the model.
type accumulator struct {
	ref     r3.Vec
	mass    float64
	cgSum   r3.Vec
	inertia [6]float64
}

func newAccumulator(ref r3.Vec) *accumulator {
	return &accumulator{ref: ref}
}

// add accumulates a point mass m at centroid: the direct second-moment
// formula about the reference point.
func (a *accumulator) add(centroid r3.Vec, m float64) {
	d := r3.Sub(centroid, a.ref)
	x2, y2, z2 := d.X*d.X, d.Y*d.Y, d.Z*d.Z
	a.inertia[Ixx] += m * (y2 + z2)
	a.inertia[Iyy] += m * (x2 + z2)
	a.inertia[Izz] += m * (x2 + y2)
	a.inertia[Ixy] += m * d.X * d.Y
	a.inertia[Ixz] += m * d.X * d.Z
	a.inertia[Iyz] += m * d.Y * d.Z
	a.mass += m
	a.cgSum = r3.Add(a.cgSum, r3.Scale(m, centroid))
}

// addInertia folds in a direct inertia contribution (a concentrated mass's
// own tensor about its centroid), componentwise in the fixed order.
func (a *accumulator) addInertia(inertia [6]float64) {
	for i, v := range inertia {
		a.inertia[i] += v
	}
}

// finalize divides the centroid sum by the total mass. A zero-mass state
// finalizes to the origin CG; callers must check mass before relying on CG.
func (a *accumulator) finalize() (float64, r3.Vec, [6]float64) {
	cg := a.cgSum
	if a.mass != 0 {
		cg = r3.Scale(1/a.mass, a.cgSum)
	}
	return a.mass, cg, a.inertia
}

// TransformInertia re-expresses an inertia vector computed about refOld to be
// about refNew, given the body's mass and CG, via the parallel-axis theorem
// applied in reverse (to the CG) and forward (to the new point):
//
//	I_new = I_old - m*(d1^2 - d2^2)
//
// with d1 = cg - refOld and d2 = refNew - cg. Diagonal terms subtract the
// orthogonal-plane distances (dy^2+dz^2 for Ixx), cross terms the matching
// products. Multiple call sites depend on these exact sign conventions; do
// not re-derive locally.
func TransformInertia(mass float64, cg, refOld, refNew r3.Vec, inertia [6]float64) [6]float64 {
	d1 := r3.Sub(cg, refOld)
	d2 := r3.Sub(refNew, cg)
	return [6]float64{
		inertia[Ixx] - mass*((d1.Y*d1.Y+d1.Z*d1.Z)-(d2.Y*d2.Y+d2.Z*d2.Z)),
		inertia[Iyy] - mass*((d1.X*d1.X+d1.Z*d1.Z)-(d2.X*d2.X+d2.Z*d2.Z)),
		inertia[Izz] - mass*((d1.X*d1.X+d1.Y*d1.Y)-(d2.X*d2.X+d2.Y*d2.Y)),
		inertia[Ixy] - mass*(d1.X*d1.Y-d2.X*d2.Y),
		inertia[Ixz] - mass*(d1.X*d1.Z-d2.X*d2.Z),
		inertia[Iyz] - mass*(d1.Y*d1.Z-d2.Y*d2.Z),
	}
}

// Properties is the aggregate result: total mass, center of gravity, and the
// six independent inertia components about the resolved reference point.
type Properties struct {
	Mass    float64
	CG      r3.Vec
	Inertia [6]float64
}

// InertiaMatrix returns the symmetric 3x3 moment-of-inertia tensor. The
// stored cross components are mass products, so they enter the tensor with a
// negative sign.
func (p Properties) InertiaMatrix() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		p.Inertia[Ixx], -p.Inertia[Ixy], -p.Inertia[Ixz],
		-p.Inertia[Ixy], p.Inertia[Iyy], -p.Inertia[Iyz],
		-p.Inertia[Ixz], -p.Inertia[Iyz], p.Inertia[Izz],
	})
}
