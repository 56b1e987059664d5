package mass

import (
	"fmt"

	"github.com/notargets/massprop/model"
)

// UnsupportedElementTypeError is returned when an element family has no mass
// rule and is not on the known zero-mass list. In strict mode the first
// occurrence aborts the computation; in permissive mode the family is logged
// once and skipped.
type UnsupportedElementTypeError struct {
	Family model.ElementFamily
	EID    int
}

func (e *UnsupportedElementTypeError) Error() string {
	return fmt.Sprintf("element %d: family %s has no mass rule", e.EID, e.Family)
}

// InvalidSymmetryAxisError is returned for a malformed sym_axis input before
// any accumulation starts.
type InvalidSymmetryAxisError struct {
	Axis string
}

func (e *InvalidSymmetryAxisError) Error() string {
	return fmt.Sprintf("sym_axis %q is invalid; allowed: no, xy, yz, xz", e.Axis)
}

// InconsistentElementFamilyError marks an NSM id selection that mixes area-
// and length-typed elements. The accumulated unit is ambiguous, so the card's
// contribution is skipped with a warning.
type InconsistentElementFamilyError struct {
	SID  int
	EIDs []int
}

func (e *InconsistentElementFamilyError) Error() string {
	return fmt.Sprintf("NSM set %d: mixed line/area element types in ids %v", e.SID, e.EIDs)
}
