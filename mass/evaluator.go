package mass

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notargets/massprop/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// nsmBucket indexes the fixed per-family contribution lists consumed by the
// NSM resolver. Composite shell properties share the PSHELL bucket, all beam
// property flavors share PBEAM, matching the card-target canonicalization.
type nsmBucket uint8

const (
	bucketPSHELL nsmBucket = iota
	bucketPSHEAR
	bucketPBAR
	bucketPBEAM
	bucketPROD
	bucketPTUBE
	bucketCONROD
	numBuckets
)

func (b nsmBucket) isArea() bool { return b == bucketPSHELL || b == bucketPSHEAR }

var bucketNames = [numBuckets]string{
	"PSHELL", "PSHEAR", "PBAR", "PBEAM", "PROD", "PTUBE", "CONROD",
}

func (b nsmBucket) String() string { return bucketNames[b] }

// conrodPID is the placeholder property id recorded for CONROD
// contributions, whose section data lives on the element's property record
// but which NSM cards address by element id only.
const conrodPID = -42

// contribution is the transient (element, property, area-or-length, centroid)
// record the evaluator emits for every NSM-eligible element. The centroid is
// the NSM centroid, which for offset beams differs from the geometric one.
type contribution struct {
	eid      int
	pid      int
	value    float64
	centroid r3.Vec
}

// evaluator walks the model's elements family by family, feeding the inertia
// accumulator and collecting NSM contributions. One evaluator serves one pass.
type evaluator struct {
	mdl        *model.Model
	log        *zap.SugaredLogger
	permissive bool

	acc     *accumulator
	contrib [numBuckets][]contribution
	skipped [model.NumFamilies]bool
}

func newEvaluator(mdl *model.Model, ref r3.Vec, permissive bool, log *zap.SugaredLogger) *evaluator {
	return &evaluator{
		mdl:        mdl,
		log:        log,
		permissive: permissive,
		acc:        newAccumulator(ref),
	}
}

// massRule computes one element's (mass, centroid) contribution and records
// any NSM-eligible area/length. A nil entry means the family has no rule.
type massRule func(ev *evaluator, e *model.Element) error

var massRules = [model.NumFamilies]massRule{
	model.CROD:   ruleLine,
	model.CONROD: ruleLine,
	model.CTUBE:  ruleLine,
	model.CBAR:   ruleLine,
	model.CBEAM:  ruleBeam,
	model.CTRIA3: ruleTria,
	model.CTRIA6: ruleTria,
	model.CTRIAR: ruleTria,
	model.CQUAD4: ruleQuad,
	model.CQUAD8: ruleQuad,
	model.CQUADR: ruleQuad,
	model.CQUAD:  ruleQuad,
	model.CSHEAR: ruleShear,
	model.CTETRA: ruleTetra,
	model.CPENTA: rulePenta,
	model.CPYRAM: rulePyramid,
	model.CHEXA:  ruleHexa,
}

// run processes the selected element ids (bucketed by family, ascending
// within each bucket) and then the selected point masses. Families are
// visited in fixed enum order so summation order is deterministic.
func (ev *evaluator) run(famIDs [model.NumFamilies][]int, massIDs []int) error {
	for fam := model.ElementFamily(0); fam < model.NumFamilies; fam++ {
		ids := famIDs[fam]
		if len(ids) == 0 || fam.IsZeroMass() || fam.IsMass() {
			continue
		}
		rule := massRules[fam]
		if rule == nil {
			if !ev.permissive {
				return &UnsupportedElementTypeError{Family: fam, EID: ids[0]}
			}
			if !ev.skipped[fam] {
				ev.skipped[fam] = true
				ev.log.Warnf("element family %s has no mass rule; skipping %d elements",
					fam, len(ids))
			}
			continue
		}
		for _, eid := range ids {
			if err := rule(ev, ev.mdl.Elements[eid]); err != nil {
				return errors.Wrapf(err, "element %d (%s)", eid, fam)
			}
		}
	}

	for _, mid := range massIDs {
		pm := ev.mdl.Masses[mid]
		centroid, err := ev.mdl.PointMassCentroid(pm)
		if err != nil {
			return err
		}
		ev.acc.add(centroid, pm.Mass)
		ev.acc.addInertia(pm.Inertia)
	}
	return nil
}

func (ev *evaluator) record(b nsmBucket, eid, pid int, value float64, centroid r3.Vec) {
	ev.contrib[b] = append(ev.contrib[b], contribution{
		eid: eid, pid: pid, value: value, centroid: centroid,
	})
}

func (ev *evaluator) endPoints(e *model.Element) (p1, p2 r3.Vec, err error) {
	if len(e.Nodes) < 2 {
		return p1, p2, errors.Errorf("line element needs 2 nodes, has %d", len(e.Nodes))
	}
	if p1, err = ev.mdl.Position(e.Nodes[0]); err != nil {
		return p1, p2, err
	}
	p2, err = ev.mdl.Position(e.Nodes[1])
	return p1, p2, err
}

// ruleLine covers CROD, CONROD, CTUBE and CBAR: mass is mass-per-unit-length
// times the node-to-node length, centroid at the midpoint.
func ruleLine(ev *evaluator, e *model.Element) error {
	p1, p2, err := ev.endPoints(e)
	if err != nil {
		return err
	}
	length := r3.Norm(r3.Sub(p2, p1))
	centroid := r3.Scale(0.5, r3.Add(p1, p2))

	prop, err := ev.mdl.Property(e.PID)
	if err != nil {
		return err
	}
	mpl, err := prop.MassPerUnitLength()
	if err != nil {
		return err
	}

	switch e.Family {
	case model.CONROD:
		ev.record(bucketCONROD, e.ID, conrodPID, length, centroid)
	case model.CROD:
		ev.record(bucketPROD, e.ID, e.PID, length, centroid)
	case model.CTUBE:
		ev.record(bucketPTUBE, e.ID, e.PID, length, centroid)
	case model.CBAR:
		ev.record(bucketPBAR, e.ID, e.PID, length, centroid)
	}
	ev.acc.add(centroid, mpl*length)
	return nil
}

// beamAxes returns the (jhat, khat) section axes of a beam from its axis and
// orientation vector. A zero orientation falls back to the global Y axis, or
// Z when the axis is Y-aligned.
func beamAxes(p1, p2, orient r3.Vec) (jhat, khat r3.Vec, err error) {
	axis := r3.Sub(p2, p1)
	if r3.Norm(axis) == 0 {
		return jhat, khat, errors.New("beam has zero length")
	}
	ihat := r3.Unit(axis)
	v := orient
	if r3.Norm(v) == 0 {
		v = r3.Vec{Y: 1}
		if math.Abs(r3.Dot(ihat, v)) > 1-1e-8 {
			v = r3.Vec{Z: 1}
		}
	}
	k := r3.Cross(ihat, v)
	if r3.Norm(k) == 0 {
		return jhat, khat, errors.New("beam orientation vector is parallel to the axis")
	}
	khat = r3.Unit(k)
	jhat = r3.Unit(r3.Cross(khat, ihat))
	return jhat, khat, nil
}

// ruleBeam handles CBEAM. The structural mass uses the raw node midpoint; the
// NSM centroid uses the offset end points (and PBEAM/PBCOMP m1/m2 section
// offsets), which is where NSM cards attach their extra mass.
func ruleBeam(ev *evaluator, e *model.Element) error {
	node1, node2, err := ev.endPoints(e)
	if err != nil {
		return err
	}
	length := r3.Norm(r3.Sub(node2, node1))
	centroid := r3.Scale(0.5, r3.Add(node1, node2))

	p1 := r3.Add(node1, e.WA)
	p2 := r3.Add(node2, e.WB)

	prop, err := ev.mdl.Property(e.PID)
	if err != nil {
		return err
	}

	var massPerLength, nsmPerLength float64
	var nsmCentroid r3.Vec
	switch prop.Type {
	case model.PBEAM:
		if massPerLength, err = prop.MassPerUnitLength(); err != nil {
			return err
		}
		if nsmPerLength, err = prop.NSMPerUnitLength(); err != nil {
			return err
		}
		jhat, khat, err := beamAxes(p1, p2, e.Orient)
		if err != nil {
			return err
		}
		nsmN1 := r3.Add(p1, r3.Add(r3.Scale(prop.M1A, jhat), r3.Scale(prop.M2A, khat)))
		nsmN2 := r3.Add(p2, r3.Add(r3.Scale(prop.M1B, jhat), r3.Scale(prop.M2B, khat)))
		nsmCentroid = r3.Scale(0.5, r3.Add(nsmN1, nsmN2))
	case model.PBEAML:
		if massPerLength, err = prop.MassPerUnitLength(); err != nil {
			return err
		}
		if nsmPerLength, err = prop.NSMPerUnitLength(); err != nil {
			return err
		}
		nsmCentroid = r3.Scale(0.5, r3.Add(p1, p2))
	case model.PBCOMP:
		massPerLength = prop.Rho * prop.Area
		nsmPerLength = prop.NSM
		jhat, khat, err := beamAxes(p1, p2, e.Orient)
		if err != nil {
			return err
		}
		off := r3.Add(r3.Scale(prop.M1A, jhat), r3.Scale(prop.M2A, khat))
		nsmCentroid = r3.Scale(0.5, r3.Add(r3.Add(p1, off), r3.Add(p2, off)))
	default:
		return errors.Errorf("property %d (%s) is not a beam property", prop.ID, prop.Type)
	}

	ev.record(bucketPBEAM, e.ID, e.PID, length, nsmCentroid)

	m := massPerLength * length
	nsm := nsmPerLength * length
	ev.acc.add(centroid, m)
	ev.acc.add(nsmCentroid, nsm)
	return nil
}

// effectiveThickness averages the element's per-corner thickness overrides
// over n corners. Zero overrides default to the nominal; with TFlag 1 the
// overrides scale the nominal instead of replacing it.
func effectiveThickness(e *model.Element, nominal float64, n int) (float64, error) {
	if e.TFlag != 0 && e.TFlag != 1 {
		return 0, errors.Errorf("tflag=%d is invalid", e.TFlag)
	}
	var sum float64
	for i := 0; i < n; i++ {
		t := nominal
		if e.T[i] != 0 {
			t = e.T[i]
			if e.TFlag == 1 {
				t *= nominal
			}
		}
		sum += t
	}
	if sum <= 0 {
		return 0, errors.Errorf("non-positive total thickness %g", sum)
	}
	return sum / float64(n), nil
}

// shellMass accumulates one shell element given its area and centroid.
// recordNSM is false for the CQUAD family member that NSM cards cannot
// target.
func shellMass(ev *evaluator, e *model.Element, area float64, centroid r3.Vec,
	ncorner int, recordNSM bool) error {

	prop, err := ev.mdl.Property(e.PID)
	if err != nil {
		return err
	}

	var mpa float64
	switch prop.Type {
	case model.PSHELL:
		tEff := prop.Thickness
		if ncorner > 0 {
			if tEff, err = effectiveThickness(e, prop.Thickness, ncorner); err != nil {
				return err
			}
		}
		if mpa, err = prop.ShellMassPerArea(tEff); err != nil {
			return err
		}
	case model.PCOMP, model.PCOMPG:
		if mpa, err = prop.ShellMassPerArea(0); err != nil {
			return err
		}
	case model.PLPLANE:
		// Hyperelastic plane elements carry no mass.
		return nil
	default:
		return errors.Errorf("property %d (%s) is not a shell property", prop.ID, prop.Type)
	}

	if recordNSM {
		ev.record(bucketPSHELL, e.ID, e.PID, area, centroid)
	}
	ev.acc.add(centroid, mpa*area)
	return nil
}

func (ev *evaluator) cornerPositions(e *model.Element, n int) ([]r3.Vec, error) {
	if len(e.Nodes) < n {
		return nil, errors.Errorf("element needs %d nodes, has %d", n, len(e.Nodes))
	}
	pts := make([]r3.Vec, n)
	for i := 0; i < n; i++ {
		p, err := ev.mdl.Position(e.Nodes[i])
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

func centroidOf(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

// quadArea is half the cross product of the diagonals; triArea half the cross
// product of two edges.
func quadArea(p1, p2, p3, p4 r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(p3, p1), r3.Sub(p4, p2)))
}

func triArea(p1, p2, p3 r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(p1, p2), r3.Sub(p1, p3)))
}

// ruleTria covers the CTRIA3/CTRIA6/CTRIAR shells via their three corner
// nodes.
func ruleTria(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 3)
	if err != nil {
		return err
	}
	area := triArea(pts[0], pts[1], pts[2])
	return shellMass(ev, e, area, centroidOf(pts), 3, true)
}

// ruleQuad covers the CQUAD4/CQUAD8/CQUADR/CQUAD shells via their four corner
// nodes. The 9-node CQUAD uses the nominal thickness only and is not an NSM
// target.
func ruleQuad(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 4)
	if err != nil {
		return err
	}
	area := quadArea(pts[0], pts[1], pts[2], pts[3])
	if e.Family == model.CQUAD {
		return shellMass(ev, e, area, centroidOf(pts), 0, false)
	}
	return shellMass(ev, e, area, centroidOf(pts), 4, true)
}

// ruleShear covers CSHEAR panels, whose PSHEAR property supplies the areal
// mass directly.
func ruleShear(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 4)
	if err != nil {
		return err
	}
	area := quadArea(pts[0], pts[1], pts[2], pts[3])
	centroid := centroidOf(pts)

	prop, err := ev.mdl.Property(e.PID)
	if err != nil {
		return err
	}
	mpa, err := prop.ShellMassPerArea(0)
	if err != nil {
		return err
	}
	ev.record(bucketPSHEAR, e.ID, e.PID, area, centroid)
	ev.acc.add(centroid, mpa*area)
	return nil
}

func (ev *evaluator) solidDensity(e *model.Element) (float64, error) {
	prop, err := ev.mdl.Property(e.PID)
	if err != nil {
		return 0, err
	}
	if prop.Type != model.PSOLID {
		return 0, errors.Errorf("property %d (%s) is not a solid property", prop.ID, prop.Type)
	}
	return prop.Rho, nil
}

// ruleTetra uses the exact signed tetrahedron volume. The absolute value
// keeps inverted node orderings from producing negative mass.
func ruleTetra(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 4)
	if err != nil {
		return err
	}
	rho, err := ev.solidDensity(e)
	if err != nil {
		return err
	}
	centroid := centroidOf(pts)
	volume := math.Abs(r3.Dot(r3.Sub(pts[0], pts[3]),
		r3.Cross(r3.Sub(pts[1], pts[3]), r3.Sub(pts[2], pts[3])))) / 6
	ev.acc.add(centroid, rho*volume)
	return nil
}

// rulePyramid approximates the volume as base-area/3 times the apex-to-base
// centroid distance.
func rulePyramid(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 5)
	if err != nil {
		return err
	}
	rho, err := ev.solidDensity(e)
	if err != nil {
		return err
	}
	base := centroidOf(pts[:4])
	baseArea := quadArea(pts[0], pts[1], pts[2], pts[3])
	apex := pts[4]
	centroid := r3.Scale(0.5, r3.Add(base, apex))
	volume := baseArea / 3 * r3.Norm(r3.Sub(base, apex))
	ev.acc.add(centroid, rho*volume)
	return nil
}

// rulePenta approximates a wedge via its two triangular faces: average face
// area times the distance between the face centroids.
func rulePenta(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 6)
	if err != nil {
		return err
	}
	rho, err := ev.solidDensity(e)
	if err != nil {
		return err
	}
	area1 := triArea(pts[0], pts[2], pts[1])
	area2 := triArea(pts[3], pts[5], pts[4])
	c1 := centroidOf(pts[:3])
	c2 := centroidOf(pts[3:6])
	centroid := r3.Scale(0.5, r3.Add(c1, c2))
	volume := (area1 + area2) / 2 * r3.Norm(r3.Sub(c1, c2))
	ev.acc.add(centroid, rho*volume)
	return nil
}

// ruleHexa approximates a hexahedron via its two bounding quadrilateral
// faces, same decomposition as rulePenta.
func ruleHexa(ev *evaluator, e *model.Element) error {
	pts, err := ev.cornerPositions(e, 8)
	if err != nil {
		return err
	}
	rho, err := ev.solidDensity(e)
	if err != nil {
		return err
	}
	area1 := quadArea(pts[0], pts[1], pts[2], pts[3])
	area2 := quadArea(pts[4], pts[5], pts[6], pts[7])
	c1 := centroidOf(pts[:4])
	c2 := centroidOf(pts[4:8])
	centroid := r3.Scale(0.5, r3.Add(c1, c2))
	volume := (area1 + area2) / 2 * r3.Norm(r3.Sub(c1, c2))
	ev.acc.add(centroid, rho*volume)
	return nil
}
