// Package mass computes aggregate mass properties (total mass, center of
// gravity, and the 6-component moment-of-inertia tensor) of a finite-element
// model: per-family geometric mass rules, non-structural-mass card
// resolution, parallel-axis bookkeeping, and symmetry/scale post-processing.
//
// The numbers agree element-by-element with the lumped m*r^2 formulation of
// the Nastran ecosystem: solids use a face-centroid volume decomposition, so
// results are approximations for badly proportioned elements.
package mass

import (
	"go.uber.org/zap"

	"github.com/notargets/massprop/model"
	"github.com/notargets/massprop/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options configures one computation call.
type Options struct {
	// ElementIDs / MassIDs subset which entities contribute. When both are
	// nil everything is included; when only one is given, the other
	// collection is excluded entirely.
	ElementIDs []int
	MassIDs    []int

	// NSMID selects the non-structural-mass card set to apply; zero applies
	// none.
	NSMID int

	// Reference anchors the inertia tensor. The zero value is the origin.
	Reference ReferencePoint

	// SymAxis lists active mirror planes out of {"xy", "xz", "yz"}, or the
	// lone sentinel "no".
	SymAxis []string

	// Scale overrides the model's weight-to-mass constant when non-nil.
	Scale *float64

	// Permissive downgrades unsupported element families from an error to a
	// once-per-family warning with zero contribution.
	Permissive bool

	// Logger receives skip and NSM-card diagnostics; nil discards them.
	Logger *zap.SugaredLogger
}

// Compute walks the model once (twice for a CG-anchored reference) and
// returns its aggregate mass properties. The model must not be mutated
// concurrently; elements are processed family by family in ascending id
// order, so identical inputs reproduce identical floating-point results.
func Compute(mdl *model.Model, opts Options) (Properties, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	axes, err := normalizeSymAxis(opts.SymAxis)
	if err != nil {
		return Properties{}, err
	}

	famIDs, massIDs := selectIDs(mdl, opts)

	var ref r3.Vec
	if opts.Reference.IsCG() {
		// Pass 1 locates the CG; pass 2 recomputes the inertia about it.
		m, cg, _, err := computePass(mdl, famIDs, massIDs, opts.NSMID, r3.Vec{},
			opts.Permissive, log)
		if err != nil {
			return Properties{}, err
		}
		if m == 0 {
			return Properties{}, nil
		}
		ref = cg
	} else {
		if ref, err = opts.Reference.fixed(mdl); err != nil {
			return Properties{}, err
		}
	}

	m, cg, inertia, err := computePass(mdl, famIDs, massIDs, opts.NSMID, ref,
		opts.Permissive, log)
	if err != nil {
		return Properties{}, err
	}
	props := Properties{Mass: m, CG: cg, Inertia: inertia}
	applySymmetryScale(mdl, axes, opts.Scale, log, &props)
	return props, nil
}

// computePass runs the evaluator and NSM resolver once about a fixed
// reference point.
func computePass(mdl *model.Model, famIDs [model.NumFamilies][]int, massIDs []int,
	nsmID int, ref r3.Vec, permissive bool, log *zap.SugaredLogger) (float64, r3.Vec, [6]float64, error) {

	ev := newEvaluator(mdl, ref, permissive, log)
	if err := ev.run(famIDs, massIDs); err != nil {
		return 0, r3.Vec{}, [6]float64{}, err
	}
	if nsmID != 0 {
		if err := newNSMResolver(ev).apply(nsmID); err != nil {
			return 0, r3.Vec{}, [6]float64{}, err
		}
	}
	m, cg, inertia := ev.acc.finalize()
	return m, cg, inertia, nil
}

// selectIDs applies the element/mass id filters: both nil means everything;
// a single non-nil filter excludes the other collection.
func selectIDs(mdl *model.Model, opts Options) ([model.NumFamilies][]int, []int) {
	allFam := mdl.ElementIDsByFamily()
	if opts.ElementIDs == nil && opts.MassIDs == nil {
		return allFam, mdl.MassIDs()
	}

	var famIDs [model.NumFamilies][]int
	if opts.ElementIDs != nil {
		sel := utils.SortedUnique(opts.ElementIDs)
		for f := range allFam {
			famIDs[f] = utils.SortedIntersect(allFam[f], sel)
		}
	}
	var massIDs []int
	if opts.MassIDs != nil {
		massIDs = utils.SortedIntersect(mdl.MassIDs(), utils.SortedUnique(opts.MassIDs))
	}
	return famIDs, massIDs
}
