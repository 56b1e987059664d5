package model

// NSMKind distinguishes the four non-structural-mass card variants. The
// per-unit kinds (NSM/NSM1) apply their value as a rate per unit area or
// length; the total kinds (NSML/NSML1) split their value proportionally over
// the matched set.
type NSMKind uint8

const (
	KindNSM NSMKind = iota
	KindNSM1
	KindNSML
	KindNSML1
)

var nsmKindNames = map[NSMKind]string{
	KindNSM:   "NSM",
	KindNSM1:  "NSM1",
	KindNSML:  "NSML",
	KindNSML1: "NSML1",
}

func (k NSMKind) String() string { return nsmKindNames[k] }

// IsTotal reports whether the card's value is a total mass to be divided over
// the target set rather than a per-unit rate.
func (k NSMKind) IsTotal() bool { return k == KindNSML || k == KindNSML1 }

// NSMTargetType names what an NSM card's id list refers to: a property family
// (ids are property ids) or elements directly (ELEMENT / CONROD ids).
type NSMTargetType uint8

const (
	TargetPSHELL NSMTargetType = iota
	TargetPCOMP
	TargetPCOMPG
	TargetPBAR
	TargetPBARL
	TargetPBEAM
	TargetPBEAML
	TargetPBCOMP
	TargetPROD
	TargetPTUBE
	TargetPSHEAR
	TargetCONROD
	TargetELEMENT
)

var nsmTargetNames = map[NSMTargetType]string{
	TargetPSHELL:  "PSHELL",
	TargetPCOMP:   "PCOMP",
	TargetPCOMPG:  "PCOMPG",
	TargetPBAR:    "PBAR",
	TargetPBARL:   "PBARL",
	TargetPBEAM:   "PBEAM",
	TargetPBEAML:  "PBEAML",
	TargetPBCOMP:  "PBCOMP",
	TargetPROD:    "PROD",
	TargetPTUBE:   "PTUBE",
	TargetPSHEAR:  "PSHEAR",
	TargetCONROD:  "CONROD",
	TargetELEMENT: "ELEMENT",
}

func (t NSMTargetType) String() string { return nsmTargetNames[t] }

// IsElementScoped reports whether the card's ids are element ids rather than
// property ids.
func (t NSMTargetType) IsElementScoped() bool {
	return t == TargetELEMENT || t == TargetCONROD
}

// PropertyTypes returns the property card types a property-scoped target
// covers. PSHELL-family targets match composites too, since the resolver
// buckets them together.
func (t NSMTargetType) PropertyTypes() []PropertyType {
	switch t {
	case TargetPSHELL, TargetPCOMP, TargetPCOMPG:
		return []PropertyType{PSHELL, PCOMP, PCOMPG}
	case TargetPBAR, TargetPBARL:
		return []PropertyType{PBAR, PBARL}
	case TargetPBEAM, TargetPBEAML, TargetPBCOMP:
		return []PropertyType{PBEAM, PBEAML, PBCOMP}
	case TargetPROD:
		return []PropertyType{PROD}
	case TargetPTUBE:
		return []PropertyType{PTUBE}
	case TargetPSHEAR:
		return []PropertyType{PSHEAR}
	}
	return nil
}

// NSMCard is one non-structural-mass definition. Cards sharing an SID form
// one NSM set and are applied additively.
type NSMCard struct {
	SID    int
	Kind   NSMKind
	Target NSMTargetType
	All    bool // id list is the wildcard "ALL"
	IDs    []int
	Value  float64
}
