package mass

import (
	"github.com/pkg/errors"

	"github.com/notargets/massprop/model"
	"gonum.org/v1/gonum/spatial/r3"
)

type refKind uint8

const (
	refFixed refKind = iota
	refNode
	refCG
)

// ReferencePoint selects where the inertia tensor is anchored: a fixed point
// (the origin by default), a node's position, or the model's own center of
// gravity. The CG mode needs two passes: the first locates the CG, the second
// recomputes inertia about it.
type ReferencePoint struct {
	kind  refKind
	point r3.Vec
	node  int
}

// AtOrigin anchors the computation at the global origin. It is the zero value
// of ReferencePoint.
func AtOrigin() ReferencePoint { return ReferencePoint{} }

// AtPoint anchors the computation at a caller-supplied point.
func AtPoint(p r3.Vec) ReferencePoint {
	return ReferencePoint{kind: refFixed, point: p}
}

// AtNode anchors the computation at a node's position.
func AtNode(nid int) ReferencePoint {
	return ReferencePoint{kind: refNode, node: nid}
}

// AtCG anchors the computation at the model's center of gravity.
func AtCG() ReferencePoint { return ReferencePoint{kind: refCG} }

// IsCG reports whether the two-pass CG protocol is required.
func (r ReferencePoint) IsCG() bool { return r.kind == refCG }

// fixed resolves the reference point to a concrete position. It must not be
// called in CG mode; the CG protocol supplies the pass-2 point itself.
func (r ReferencePoint) fixed(m *model.Model) (r3.Vec, error) {
	switch r.kind {
	case refFixed:
		return r.point, nil
	case refNode:
		p, err := m.Position(r.node)
		if err != nil {
			return r3.Vec{}, errors.Wrap(err, "reference point")
		}
		return p, nil
	}
	return r3.Vec{}, errors.New("reference point is CG-anchored; resolve via the two-pass protocol")
}
