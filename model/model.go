package model

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Element is one structural element record: a family tag, an ordered node
// list, and a property reference. Beam-specific fields are zero for other
// families.
type Element struct {
	ID     int
	Family ElementFamily
	Nodes  []int
	PID    int

	// Per-corner shell thickness overrides. A zero entry means "use the
	// property's nominal thickness". TFlag 0 treats the overrides as
	// absolute thicknesses, 1 as factors on the nominal thickness.
	T     [4]float64
	TFlag int

	// Beam end offsets from the end nodes and the orientation vector that
	// fixes the element's (jhat, khat) frame.
	WA, WB r3.Vec
	Orient r3.Vec
}

// PointMass is a concentrated mass (CONM2/CMASS): a direct mass value at a
// node plus offset, with an optional direct inertia about its own centroid in
// [Ixx, Iyy, Izz, Ixy, Ixz, Iyz] order.
type PointMass struct {
	ID      int
	Node    int
	Offset  r3.Vec
	Mass    float64
	Inertia [6]float64
}

// Model is the read-only view of a finite-element model the mass core
// consumes. All maps are owned by the caller and must not be mutated during a
// computation call.
type Model struct {
	Nodes      map[int]r3.Vec
	Elements   map[int]*Element
	Properties map[int]*Property
	Masses     map[int]*PointMass
	NSMCards   map[int][]*NSMCard

	// WTMass is the model-level weight-to-mass conversion constant applied
	// to mass and inertia unless the caller overrides the scale.
	WTMass float64
}

// NewModel returns an empty model with a unit weight-to-mass constant.
func NewModel() *Model {
	return &Model{
		Nodes:      make(map[int]r3.Vec),
		Elements:   make(map[int]*Element),
		Properties: make(map[int]*Property),
		Masses:     make(map[int]*PointMass),
		NSMCards:   make(map[int][]*NSMCard),
		WTMass:     1.0,
	}
}

// Position returns the global position of node nid.
func (m *Model) Position(nid int) (r3.Vec, error) {
	p, ok := m.Nodes[nid]
	if !ok {
		return r3.Vec{}, errors.Errorf("node %d is not defined", nid)
	}
	return p, nil
}

// Property returns the property record pid.
func (m *Model) Property(pid int) (*Property, error) {
	p, ok := m.Properties[pid]
	if !ok {
		return nil, errors.Errorf("property %d is not defined", pid)
	}
	return p, nil
}

// ElementIDs returns all element ids in ascending order.
func (m *Model) ElementIDs() []int {
	ids := make([]int, 0, len(m.Elements))
	for id := range m.Elements {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MassIDs returns all point-mass ids in ascending order.
func (m *Model) MassIDs() []int {
	ids := make([]int, 0, len(m.Masses))
	for id := range m.Masses {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ElementIDsByFamily buckets element ids by family, ascending within each
// family. Point masses live in their own table and are not included.
func (m *Model) ElementIDsByFamily() [NumFamilies][]int {
	var out [NumFamilies][]int
	for id, e := range m.Elements {
		out[e.Family] = append(out[e.Family], id)
	}
	for f := range out {
		sort.Ints(out[f])
	}
	return out
}

// PropertyIDsByTypes returns the ids of all properties whose type is in
// types, ascending.
func (m *Model) PropertyIDsByTypes(types []PropertyType) []int {
	var ids []int
	for id, p := range m.Properties {
		for _, t := range types {
			if p.Type == t {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Ints(ids)
	return ids
}

// NSM returns the NSM cards registered under set id sid.
func (m *Model) NSM(sid int) []*NSMCard {
	return m.NSMCards[sid]
}

// PointMassCentroid resolves a point mass's centroid: its anchor node's
// position plus the offset.
func (m *Model) PointMassCentroid(pm *PointMass) (r3.Vec, error) {
	p, err := m.Position(pm.Node)
	if err != nil {
		return r3.Vec{}, errors.Wrapf(err, "point mass %d", pm.ID)
	}
	return r3.Add(p, pm.Offset), nil
}
