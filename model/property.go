package model

import (
	"sort"

	"github.com/pkg/errors"
)

// PropertyType enumerates the property cards the mass core can evaluate.
type PropertyType uint8

const (
	PropUnknown PropertyType = iota
	PROD
	PTUBE
	PBAR
	PBARL
	PBEAM
	PBEAML
	PBCOMP
	PSHELL
	PCOMP
	PCOMPG
	PSHEAR
	PSOLID
	PLPLANE
)

var propertyNames = map[PropertyType]string{
	PropUnknown: "UNKNOWN",
	PROD:        "PROD",
	PTUBE:       "PTUBE",
	PBAR:        "PBAR",
	PBARL:       "PBARL",
	PBEAM:       "PBEAM",
	PBEAML:      "PBEAML",
	PBCOMP:      "PBCOMP",
	PSHELL:      "PSHELL",
	PCOMP:       "PCOMP",
	PCOMPG:      "PCOMPG",
	PSHEAR:      "PSHEAR",
	PSOLID:      "PSOLID",
	PLPLANE:     "PLPLANE",
}

func (p PropertyType) String() string { return propertyNames[p] }

// BeamStation is one station of a tapered beam profile, located at the
// normalized coordinate Xxb in [0,1] along the element axis.
type BeamStation struct {
	Xxb  float64
	Area float64
	NSM  float64 // non-structural mass per unit length at this station
}

// Ply is one layer of a composite laminate (PCOMP/PCOMPG).
type Ply struct {
	Rho       float64
	Thickness float64
}

// Property holds the material/section data a mass rule needs. Fields outside
// the owning card type are simply ignored: a PROD never reads Plies.
type Property struct {
	ID   int
	Type PropertyType

	Rho       float64 // material density
	Area      float64 // cross-section area (rod/tube/bar)
	Thickness float64 // nominal shell thickness (PSHELL)
	NSM       float64 // non-structural mass per unit length or area

	// MassPerArea is supplied directly for PSHEAR properties.
	MassPerArea float64

	// Tapered beam profile (PBEAM/PBEAML). Stations must cover [0,1] in
	// ascending Xxb order.
	Stations []BeamStation

	// NSM centroid offsets in the element (jhat, khat) frame. PBEAM carries
	// independent end A/end B values; PBCOMP uses M1A/M2A for both ends.
	M1A, M2A, M1B, M2B float64

	// Composite plies (PCOMP/PCOMPG).
	Plies []Ply
}

// MassPerUnitLength returns the structural mass per unit length of a line
// property. For tapered beams this is the unit-line integral of the
// per-station area x density profile.
func (p *Property) MassPerUnitLength() (float64, error) {
	switch p.Type {
	case PROD, PTUBE, PBAR, PBARL:
		return p.Rho*p.Area + p.NSM, nil
	case PBEAM, PBEAML:
		y := make([]float64, len(p.Stations))
		for i, st := range p.Stations {
			y[i] = st.Area * p.Rho
		}
		return p.integrateStations(y)
	case PBCOMP:
		return p.Rho * p.Area, nil
	}
	return 0, errors.Errorf("property %d (%s) has no mass per unit length", p.ID, p.Type)
}

// NSMPerUnitLength returns the non-structural mass per unit length of a beam
// property, integrated over the station profile where one exists.
func (p *Property) NSMPerUnitLength() (float64, error) {
	switch p.Type {
	case PBEAM, PBEAML:
		y := make([]float64, len(p.Stations))
		for i, st := range p.Stations {
			y[i] = st.NSM
		}
		return p.integrateStations(y)
	case PBCOMP:
		return p.NSM, nil
	}
	return 0, errors.Errorf("property %d (%s) has no NSM per unit length", p.ID, p.Type)
}

// ShellMassPerArea returns the areal mass density for a shell property given
// the effective thickness tEff (already averaged over corner overrides).
// Composite properties derive it from ply data and ignore tEff.
func (p *Property) ShellMassPerArea(tEff float64) (float64, error) {
	switch p.Type {
	case PSHELL:
		return p.NSM + p.Rho*tEff, nil
	case PCOMP, PCOMPG:
		mpa := p.NSM
		for _, ply := range p.Plies {
			mpa += ply.Rho * ply.Thickness
		}
		return mpa, nil
	case PSHEAR:
		return p.MassPerArea, nil
	}
	return 0, errors.Errorf("property %d (%s) has no mass per area", p.ID, p.Type)
}

// integrateStations computes the trapezoidal integral of y over the unit line
// using the station Xxb coordinates. A single station degenerates to a
// constant profile. Negative station values are rejected: section areas and
// NSM rates are physical quantities.
func (p *Property) integrateStations(y []float64) (float64, error) {
	n := len(p.Stations)
	if n == 0 {
		return 0, errors.Errorf("property %d (%s) has no stations", p.ID, p.Type)
	}
	for i, yi := range y {
		if yi < 0 {
			return 0, errors.Errorf("property %d (%s): negative value %g at station %d",
				p.ID, p.Type, yi, i)
		}
	}
	if n == 1 {
		return y[0], nil
	}
	if !sort.SliceIsSorted(p.Stations, func(i, j int) bool {
		return p.Stations[i].Xxb < p.Stations[j].Xxb
	}) {
		return 0, errors.Errorf("property %d (%s): stations not in ascending x/xb order", p.ID, p.Type)
	}
	var total float64
	for i := 1; i < n; i++ {
		dx := p.Stations[i].Xxb - p.Stations[i-1].Xxb
		total += 0.5 * (y[i] + y[i-1]) * dx
	}
	return total, nil
}
