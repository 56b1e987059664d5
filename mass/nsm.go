package mass

import (
	"sort"

	"go.uber.org/zap"

	"github.com/notargets/massprop/model"
	"github.com/notargets/massprop/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// bucketFor canonicalizes a card target to its resolver bucket (composites
// fold into PSHELL, beam flavors into PBEAM, and so on).
func bucketFor(t model.NSMTargetType) nsmBucket {
	switch t {
	case model.TargetPSHELL, model.TargetPCOMP, model.TargetPCOMPG:
		return bucketPSHELL
	case model.TargetPBAR, model.TargetPBARL:
		return bucketPBAR
	case model.TargetPBEAM, model.TargetPBEAML, model.TargetPBCOMP:
		return bucketPBEAM
	case model.TargetPROD:
		return bucketPROD
	case model.TargetPTUBE:
		return bucketPTUBE
	case model.TargetPSHEAR:
		return bucketPSHEAR
	case model.TargetCONROD:
		return bucketCONROD
	}
	return bucketPSHELL
}

// nsmResolver matches the evaluator's per-element area/length contributions
// against the cards of one NSM set and feeds the extra point masses into the
// accumulator. Element-scoped cards search a flattened eid-sorted view of all
// buckets; property-scoped cards work per bucket.
type nsmResolver struct {
	mdl *model.Model
	log *zap.SugaredLogger
	acc *accumulator

	contrib *[numBuckets][]contribution

	// Flattened across buckets, sorted by element id.
	eids      []int
	values    []float64
	isArea    []bool
	centroids []r3.Vec
}

func newNSMResolver(ev *evaluator) *nsmResolver {
	rs := &nsmResolver{
		mdl:     ev.mdl,
		log:     ev.log,
		acc:     ev.acc,
		contrib: &ev.contrib,
	}
	var flat []struct {
		c      contribution
		isArea bool
	}
	for b := nsmBucket(0); b < numBuckets; b++ {
		for _, c := range ev.contrib[b] {
			flat = append(flat, struct {
				c      contribution
				isArea bool
			}{c, b.isArea()})
		}
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].c.eid < flat[j].c.eid })
	rs.eids = make([]int, len(flat))
	rs.values = make([]float64, len(flat))
	rs.isArea = make([]bool, len(flat))
	rs.centroids = make([]r3.Vec, len(flat))
	for i, f := range flat {
		rs.eids[i] = f.c.eid
		rs.values[i] = f.c.value
		rs.isArea[i] = f.isArea
		rs.centroids[i] = f.c.centroid
	}
	return rs
}

// apply resolves every card of NSM set sid. Per-card problems (no matching
// targets, mixed element families) are warned and skipped; they never abort
// the computation.
func (rs *nsmResolver) apply(sid int) error {
	cards := rs.mdl.NSM(sid)
	if len(cards) == 0 {
		rs.log.Warnf("NSM set %d has no cards", sid)
		return nil
	}
	if len(rs.eids) == 0 {
		rs.log.Debugf("skipping NSM set %d: no NSM-eligible elements", sid)
		return nil
	}
	for _, card := range cards {
		if card.Target.IsElementScoped() {
			rs.applyElementScoped(card)
		} else {
			rs.applyPropertyScoped(card)
		}
	}
	return nil
}

// applyElementScoped handles ELEMENT/CONROD targets: the card's ids are
// element ids looked up in the flattened contribution view.
func (rs *nsmResolver) applyElementScoped(card *model.NSMCard) {
	var ids []int
	switch {
	case card.All && card.Target == model.TargetCONROD:
		ids = rs.mdl.ElementIDsByFamily()[model.CONROD]
	case card.All:
		ids = rs.mdl.ElementIDs()
	default:
		ids = utils.SortedUnique(card.IDs)
	}

	var idx []int
	for _, id := range ids {
		if i := utils.IndexOf(rs.eids, id); i >= 0 {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		rs.log.Warnf("%s set %d (%s): no matching elements", card.Kind, card.SID, card.Target)
		return
	}

	area0 := rs.isArea[idx[0]]
	for _, i := range idx[1:] {
		if rs.isArea[i] != area0 {
			matched := make([]int, len(idx))
			for j, k := range idx {
				matched[j] = rs.eids[k]
			}
			err := &InconsistentElementFamilyError{SID: card.SID, EIDs: matched}
			rs.log.Warnf("skipping %s card: %v", card.Kind, err)
			return
		}
	}

	scale := 1.0
	if card.Kind.IsTotal() {
		var sum float64
		for _, i := range idx {
			sum += rs.values[i]
		}
		if sum == 0 {
			rs.log.Warnf("%s set %d (%s): zero total %s", card.Kind, card.SID, card.Target, unitWord(area0))
			return
		}
		scale = 1 / sum
	}
	for _, i := range idx {
		rs.acc.add(rs.centroids[i], card.Value*rs.values[i]*scale)
	}
}

// applyPropertyScoped handles the property-family targets. NSM/NSM1 apply
// the per-unit value to each matched element; NSML splits its total per
// property id; NSML1 splits one total across every matched property.
func (rs *nsmResolver) applyPropertyScoped(card *model.NSMCard) {
	bucket := bucketFor(card.Target)
	entries := rs.contrib[bucket]
	if len(entries) == 0 {
		rs.log.Warnf("%s set %d (%s): no elements with a %s-family property",
			card.Kind, card.SID, card.Target, bucket)
		return
	}

	var pids []int
	if card.All {
		pids = rs.mdl.PropertyIDsByTypes(card.Target.PropertyTypes())
	} else {
		pids = utils.SortedUnique(card.IDs)
	}

	if card.Kind == model.KindNSML1 {
		rs.applyTotalAcrossProperties(card, entries, pids, bucket)
		return
	}

	for _, pid := range pids {
		matched := matchPID(entries, pid)
		if len(matched) == 0 {
			rs.log.Warnf("%s set %d (%s): property %d matches no elements",
				card.Kind, card.SID, card.Target, pid)
			continue
		}
		scale := 1.0
		if card.Kind.IsTotal() {
			var sum float64
			for _, c := range matched {
				sum += c.value
			}
			if sum == 0 {
				rs.log.Warnf("%s set %d: property %d has zero total %s",
					card.Kind, card.SID, pid, unitWord(bucket.isArea()))
				continue
			}
			scale = 1 / sum
		}
		for _, c := range matched {
			rs.acc.add(c.centroid, card.Value*c.value*scale)
		}
	}
}

// applyTotalAcrossProperties implements NSML1: one total split proportionally
// over all elements of every matched property id.
func (rs *nsmResolver) applyTotalAcrossProperties(card *model.NSMCard,
	entries []contribution, pids []int, bucket nsmBucket) {

	var matched []contribution
	var sum float64
	for _, pid := range pids {
		for _, c := range matchPID(entries, pid) {
			matched = append(matched, c)
			sum += c.value
		}
	}
	if len(matched) == 0 {
		rs.log.Warnf("%s set %d (%s): properties %v match no elements",
			card.Kind, card.SID, card.Target, pids)
		return
	}
	if sum == 0 {
		rs.log.Warnf("%s set %d (%s): zero total %s", card.Kind, card.SID,
			card.Target, unitWord(bucket.isArea()))
		return
	}
	for _, c := range matched {
		rs.acc.add(c.centroid, card.Value*c.value/sum)
	}
}

func matchPID(entries []contribution, pid int) []contribution {
	var out []contribution
	for _, c := range entries {
		if c.pid == pid {
			out = append(out, c)
		}
	}
	return out
}

func unitWord(isArea bool) string {
	if isArea {
		return "area"
	}
	return "length"
}
