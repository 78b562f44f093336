package availability

import (
	"sort"
	"time"

	"syncslot/models"
)

type span struct {
	start, end time.Time
}

// SplitOverlaps partitions busy and preferred coverage into overlapping,
// busy-only and preferred-only segments.
//
// Each side is density-reduced first, so overlapping raw input on one side
// never leads to overlapping output. Every busy/preferred block pair is then
// intersected; each non-empty intersection becomes an overlap segment and is
// punched out of both blocks' remaining coverage. Whatever is left of a block
// after all pairings lands in the matching "only" list. The result depends on
// the interval sets alone, not on input order.
func SplitOverlaps(busy, preferred []models.TimeSlot) models.OverlapPartition {
	return splitBlocks(AggregateDensity(busy), AggregateDensity(preferred))
}

func splitBlocks(busy, preferred []models.DensityBlock) models.OverlapPartition {
	part := models.OverlapPartition{
		Overlapping:   []models.OverlapSegment{},
		BusyOnly:      []models.OverlapSegment{},
		PreferredOnly: []models.OverlapSegment{},
	}

	busyRemain := make([][]span, len(busy))
	for i, b := range busy {
		busyRemain[i] = []span{{b.Start, b.End}}
	}
	prefRemain := make([][]span, len(preferred))
	for j, p := range preferred {
		prefRemain[j] = []span{{p.Start, p.End}}
	}

	for i, b := range busy {
		for j, p := range preferred {
			start, end := later(b.Start, p.Start), earlier(b.End, p.End)
			if !end.After(start) {
				continue
			}
			part.Overlapping = append(part.Overlapping, models.OverlapSegment{
				Start:             start,
				End:               end,
				BusyCount:         b.Count,
				BusyOwnerIDs:      cloneIDs(b.OwnerIDs),
				PreferredCount:    p.Count,
				PreferredOwnerIDs: cloneIDs(p.OwnerIDs),
			})
			cut := span{start, end}
			busyRemain[i] = punch(busyRemain[i], cut)
			prefRemain[j] = punch(prefRemain[j], cut)
		}
	}

	for i, b := range busy {
		for _, s := range busyRemain[i] {
			part.BusyOnly = append(part.BusyOnly, models.OverlapSegment{
				Start:        s.start,
				End:          s.end,
				BusyCount:    b.Count,
				BusyOwnerIDs: cloneIDs(b.OwnerIDs),
			})
		}
	}
	for j, p := range preferred {
		for _, s := range prefRemain[j] {
			part.PreferredOnly = append(part.PreferredOnly, models.OverlapSegment{
				Start:             s.start,
				End:               s.end,
				PreferredCount:    p.Count,
				PreferredOwnerIDs: cloneIDs(p.OwnerIDs),
			})
		}
	}

	sortSegments(part.Overlapping)
	sortSegments(part.BusyOnly)
	sortSegments(part.PreferredOnly)
	return part
}

// punch removes cut from every span in remaining, splitting spans it falls inside.
func punch(remaining []span, cut span) []span {
	out := make([]span, 0, len(remaining)+1)
	for _, s := range remaining {
		if !cut.start.Before(s.end) || !cut.end.After(s.start) {
			out = append(out, s)
			continue
		}
		if cut.start.After(s.start) {
			out = append(out, span{s.start, cut.start})
		}
		if cut.end.Before(s.end) {
			out = append(out, span{cut.end, s.end})
		}
	}
	return out
}

func sortSegments(segs []models.OverlapSegment) {
	sort.Slice(segs, func(i, j int) bool { return segs[i].Start.Before(segs[j].Start) })
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// PartitionToSlots turns a partition back into busy and preferred slots, one
// per owner per segment.
func PartitionToSlots(part models.OverlapPartition) (busy, preferred []models.TimeSlot) {
	all := make([]models.OverlapSegment, 0, len(part.Overlapping)+len(part.BusyOnly)+len(part.PreferredOnly))
	all = append(all, part.Overlapping...)
	all = append(all, part.BusyOnly...)
	all = append(all, part.PreferredOnly...)
	for _, seg := range all {
		for _, owner := range seg.BusyOwnerIDs {
			busy = append(busy, models.TimeSlot{OwnerID: owner, Kind: models.SlotKindBusy, Start: seg.Start, End: seg.End})
		}
		for _, owner := range seg.PreferredOwnerIDs {
			preferred = append(preferred, models.TimeSlot{OwnerID: owner, Kind: models.SlotKindPreferred, Start: seg.Start, End: seg.End})
		}
	}
	return busy, preferred
}
