package suggestion

import (
	"fmt"
	"sort"
	"time"

	"syncslot/models"
	"syncslot/services/availability"
	"syncslot/utils"

	"go.uber.org/zap"
)

// GridStep is the spacing of candidate start times inside a window.
const GridStep = 15 * time.Minute

// maxCandidates bounds the work done for very long windows.
const maxCandidates = 5000

// Candidates lists every start on the grid, anchored at each window start,
// whose meeting of length d still ends inside the window. Past maxCandidates
// only the earliest starts are kept, whatever the window order.
func Candidates(windows []models.TimeWindow, d time.Duration) []time.Time {
	if d <= 0 {
		return nil
	}
	seen := make(map[int64]struct{})
	var out []time.Time
	for _, w := range windows {
		for start := w.Start; !start.Add(d).After(w.End); start = start.Add(GridStep) {
			key := start.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, start)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	if len(out) > maxCandidates {
		utils.GetLogger().Warn("Candidate starts truncated",
			zap.Int("total", len(out)),
			zap.Int("kept", maxCandidates),
			zap.Time("lastKept", out[maxCandidates-1]),
		)
		out = out[:maxCandidates]
	}
	return out
}

// Rank scores each candidate by preferred owner-minutes minus busy
// owner-minutes and orders them by score, then by start.
func Rank(windows []models.TimeWindow, d time.Duration, preferred, busy []models.TimeSlot) []models.Suggestion {
	prefBlocks := availability.AggregateDensity(preferred)
	busyBlocks := availability.AggregateDensity(busy)

	starts := Candidates(windows, d)
	out := make([]models.Suggestion, 0, len(starts))
	for _, start := range starts {
		end := start.Add(d)
		prefMinutes, prefOwners := coverage(prefBlocks, start, end)
		busyMinutes, busyOwners := coverage(busyBlocks, start, end)
		out = append(out, models.Suggestion{
			Start:          start,
			End:            end,
			Score:          prefMinutes - busyMinutes,
			PreferredCount: prefOwners,
			BusyCount:      busyOwners,
			Reason:         fmt.Sprintf("%d preferred, %d busy", prefOwners, busyOwners),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// coverage returns the owner-minutes blocks spend inside [start,end) and the
// number of distinct owners touching it.
func coverage(blocks []models.DensityBlock, start, end time.Time) (int, int) {
	minutes := 0
	owners := make(map[string]struct{})
	for _, b := range blocks {
		from, to := b.Start, b.End
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		if !to.After(from) {
			continue
		}
		minutes += int(to.Sub(from)/time.Minute) * b.Count
		for _, id := range b.OwnerIDs {
			owners[id] = struct{}{}
		}
	}
	return minutes, len(owners)
}
