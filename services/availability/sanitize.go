package availability

import (
	"sort"
	"time"

	"syncslot/models"
)

// validSlot reports whether a slot can take part in aggregation.
func validSlot(s models.TimeSlot) bool {
	return s.OwnerID != "" && !s.Start.IsZero() && !s.End.IsZero() && s.End.After(s.Start)
}

// SanitizeSlots drops slots that cannot be aggregated: missing owner, missing
// timestamps, or an end that is not after the start. It never fails.
func SanitizeSlots(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if validSlot(s) {
			out = append(out, s)
		}
	}
	return out
}

// cutPoints returns every distinct boundary of slots in ascending order.
func cutPoints(slots []models.TimeSlot) []time.Time {
	points := make([]time.Time, 0, len(slots)*2)
	for _, s := range slots {
		points = append(points, s.Start, s.End)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	out := points[:0]
	for i, p := range points {
		if i > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
