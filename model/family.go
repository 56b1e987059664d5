package model

// ElementFamily enumerates the closed set of element families the mass core
// understands. Families outside this set dispatch to the unsupported path
// rather than falling through silently.
type ElementFamily uint8

const (
	FamilyUnknown ElementFamily = iota

	// Line elements
	CROD
	CONROD
	CTUBE
	CBAR
	CBEAM

	// Shell elements
	CTRIA3
	CTRIA6
	CTRIAR
	CQUAD4
	CQUAD8
	CQUADR
	CQUAD
	CSHEAR

	// Solid elements
	CTETRA
	CPENTA
	CPYRAM
	CHEXA

	// Concentrated masses
	CONM2
	CMASS

	// Known zero-mass families: recognized and skipped without warning.
	CELAS
	CDAMP
	CBUSH
	CVISC
	CGAP
	CFAST
	CAERO
	CORD

	// NumFamilies sizes per-family arrays; keep it last.
	NumFamilies
)

var familyNames = [NumFamilies]string{
	FamilyUnknown: "UNKNOWN",
	CROD:          "CROD",
	CONROD:        "CONROD",
	CTUBE:         "CTUBE",
	CBAR:          "CBAR",
	CBEAM:         "CBEAM",
	CTRIA3:        "CTRIA3",
	CTRIA6:        "CTRIA6",
	CTRIAR:        "CTRIAR",
	CQUAD4:        "CQUAD4",
	CQUAD8:        "CQUAD8",
	CQUADR:        "CQUADR",
	CQUAD:         "CQUAD",
	CSHEAR:        "CSHEAR",
	CTETRA:        "CTETRA",
	CPENTA:        "CPENTA",
	CPYRAM:        "CPYRAM",
	CHEXA:         "CHEXA",
	CONM2:         "CONM2",
	CMASS:         "CMASS",
	CELAS:         "CELAS",
	CDAMP:         "CDAMP",
	CBUSH:         "CBUSH",
	CVISC:         "CVISC",
	CGAP:          "CGAP",
	CFAST:         "CFAST",
	CAERO:         "CAERO",
	CORD:          "CORD",
}

func (f ElementFamily) String() string {
	if f >= NumFamilies {
		return "UNKNOWN"
	}
	return familyNames[f]
}

// IsZeroMass reports whether the family is on the known zero-mass list
// (springs, dampers, bushings, gaps, aero panels, coordinate systems).
// These contribute nothing and are skipped without a warning.
func (f ElementFamily) IsZeroMass() bool {
	switch f {
	case CELAS, CDAMP, CBUSH, CVISC, CGAP, CFAST, CAERO, CORD:
		return true
	}
	return false
}

// IsMass reports whether the family is a concentrated mass looked up in the
// model's mass table rather than the element table.
func (f ElementFamily) IsMass() bool {
	return f == CONM2 || f == CMASS
}

// IsLine reports whether the family is a two-node line element whose NSM
// contribution is tracked per unit length.
func (f ElementFamily) IsLine() bool {
	switch f {
	case CROD, CONROD, CTUBE, CBAR, CBEAM:
		return true
	}
	return false
}

// IsArea reports whether the family is a shell element whose NSM contribution
// is tracked per unit area.
func (f ElementFamily) IsArea() bool {
	switch f {
	case CTRIA3, CTRIA6, CTRIAR, CQUAD4, CQUAD8, CQUADR, CQUAD, CSHEAR:
		return true
	}
	return false
}

// IsSolid reports whether the family is a volume element.
func (f ElementFamily) IsSolid() bool {
	switch f {
	case CTETRA, CPENTA, CPYRAM, CHEXA:
		return true
	}
	return false
}
