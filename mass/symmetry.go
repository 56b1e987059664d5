package mass

import (
	"strings"

	"go.uber.org/zap"

	"github.com/notargets/massprop/model"
)

// normalizeSymAxis validates a symmetry-plane set: names must be drawn from
// {xy, xz, yz}, the sentinel "no" must stand alone, and duplicates collapse.
// Validation happens before any accumulation starts.
func normalizeSymAxis(axes []string) ([]string, error) {
	seen := make(map[string]bool, len(axes))
	var out []string
	for _, a := range axes {
		al := strings.ToLower(a)
		switch al {
		case "no", "xy", "xz", "yz":
		default:
			return nil, &InvalidSymmetryAxisError{Axis: a}
		}
		if !seen[al] {
			seen[al] = true
			out = append(out, al)
		}
	}
	if seen["no"] && len(out) > 1 {
		return nil, &InvalidSymmetryAxisError{Axis: "no (must be used by itself)"}
	}
	if seen["no"] {
		return nil, nil
	}
	return out, nil
}

// applySymmetryScale applies the mirror-plane doubling rules and the
// weight-to-mass scale to a finished result. For each active plane the
// orthogonal CG component zeroes, mass and the diagonal terms double, the two
// cross terms involving the zeroed axis vanish and the remaining cross term
// doubles. The scale (explicit override, else the model's WTMASS constant)
// multiplies mass and inertia but not the CG.
func applySymmetryScale(mdl *model.Model, axes []string, scale *float64,
	log *zap.SugaredLogger, p *Properties) {

	if len(axes) > 0 {
		log.Debugf("mass/MOI symmetry planes = %v", axes)
	}
	for _, axis := range axes {
		switch axis {
		case "xz":
			p.CG.Y = 0
			p.Mass *= 2
			p.Inertia[Ixx] *= 2
			p.Inertia[Iyy] *= 2
			p.Inertia[Izz] *= 2
			p.Inertia[Ixy] = 0
			p.Inertia[Ixz] *= 2
			p.Inertia[Iyz] = 0
		case "xy":
			p.CG.Z = 0
			p.Mass *= 2
			p.Inertia[Ixx] *= 2
			p.Inertia[Iyy] *= 2
			p.Inertia[Izz] *= 2
			p.Inertia[Ixy] *= 2
			p.Inertia[Ixz] = 0
			p.Inertia[Iyz] = 0
		case "yz":
			p.CG.X = 0
			p.Mass *= 2
			p.Inertia[Ixx] *= 2
			p.Inertia[Iyy] *= 2
			p.Inertia[Izz] *= 2
			p.Inertia[Ixy] = 0
			p.Inertia[Ixz] = 0
			p.Inertia[Iyz] *= 2
		}
	}

	s := 1.0
	switch {
	case scale != nil:
		s = *scale
	case mdl.WTMass != 0:
		s = mdl.WTMass
		if s != 1 {
			log.Infof("weight-to-mass scale = %g", s)
		}
	}
	p.Mass *= s
	for i := range p.Inertia {
		p.Inertia[i] *= s
	}
}
