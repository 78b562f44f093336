package availability

import (
	"sort"
	"time"

	"syncslot/models"
)

// AggregateDensity reduces per-user slots into the minimal list of
// non-overlapping blocks, each annotated with the set of users covering it.
//
// Every distinct slot boundary is a cut point. A sub-interval between two
// consecutive cut points belongs to every slot whose [Start, End) contains it.
// Touching sub-intervals with the same owner set are merged, so no two
// adjacent blocks share an owner set. Gaps produce no block. Output is ordered
// by start; malformed slots are ignored.
func AggregateDensity(slots []models.TimeSlot) []models.DensityBlock {
	valid := SanitizeSlots(slots)
	blocks := make([]models.DensityBlock, 0, len(valid))
	if len(valid) == 0 {
		return blocks
	}

	cuts := cutPoints(valid)
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		owners := coveringOwners(valid, from, to)
		if len(owners) == 0 {
			continue
		}
		if n := len(blocks); n > 0 && blocks[n-1].End.Equal(from) && sameOwners(blocks[n-1].OwnerIDs, owners) {
			blocks[n-1].End = to
			continue
		}
		blocks = append(blocks, models.DensityBlock{
			Start:    from,
			End:      to,
			Count:    len(owners),
			OwnerIDs: owners,
		})
	}
	return blocks
}

// coveringOwners returns the sorted, de-duplicated owners of slots containing [from, to).
func coveringOwners(slots []models.TimeSlot, from, to time.Time) []string {
	seen := make(map[string]struct{})
	for _, s := range slots {
		if !s.Start.After(from) && !s.End.Before(to) {
			seen[s.OwnerID] = struct{}{}
		}
	}
	owners := make([]string, 0, len(seen))
	for id := range seen {
		owners = append(owners, id)
	}
	sort.Strings(owners)
	return owners
}

// sameOwners compares two sorted owner sets.
func sameOwners(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BlocksToSlots expands blocks back into one slot per owner per block. Feeding
// the result to AggregateDensity yields the same blocks.
func BlocksToSlots(blocks []models.DensityBlock, kind string) []models.TimeSlot {
	var out []models.TimeSlot
	for _, b := range blocks {
		for _, owner := range b.OwnerIDs {
			out = append(out, models.TimeSlot{OwnerID: owner, Kind: kind, Start: b.Start, End: b.End})
		}
	}
	return out
}
