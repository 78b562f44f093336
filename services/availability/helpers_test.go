package availability

import (
	"math/rand"
	"time"

	"syncslot/models"
)

var day = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

// at returns the test day at hh:mm UTC.
func at(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func slot(owner string, start, end time.Time) models.TimeSlot {
	return models.TimeSlot{OwnerID: owner, Start: start, End: end}
}

const gridStep = 15 * time.Minute

// randomSlots builds n slots aligned to a 15 minute grid within one day.
func randomSlots(rng *rand.Rand, n int, owners []string) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		startCell := rng.Intn(80)
		length := 1 + rng.Intn(16)
		start := day.Add(time.Duration(startCell) * gridStep)
		out = append(out, slot(owners[rng.Intn(len(owners))], start, start.Add(time.Duration(length)*gridStep)))
	}
	return out
}

func shuffled(rng *rand.Rand, in []models.TimeSlot) []models.TimeSlot {
	out := append([]models.TimeSlot(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ownersAt returns the sorted owners of slots covering the grid cell starting at t.
func ownersAt(slots []models.TimeSlot, t time.Time) []string {
	return coveringOwners(SanitizeSlots(slots), t, t.Add(gridStep))
}

func gridCells() []time.Time {
	var cells []time.Time
	for t := day; t.Before(day.Add(30 * time.Hour)); t = t.Add(gridStep) {
		cells = append(cells, t)
	}
	return cells
}

func segmentsCover(segs []models.OverlapSegment, t time.Time) int {
	n := 0
	for _, s := range segs {
		if !s.Start.After(t) && s.End.After(t) {
			n++
		}
	}
	return n
}
