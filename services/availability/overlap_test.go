package availability

import (
	"math/rand"
	"testing"

	"syncslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOverlaps_Basic(t *testing.T) {
	part := SplitOverlaps(
		[]models.TimeSlot{slot("A", at(9, 0), at(10, 0))},
		[]models.TimeSlot{slot("B", at(9, 30), at(10, 30))},
	)

	require.Len(t, part.Overlapping, 1)
	require.Len(t, part.BusyOnly, 1)
	require.Len(t, part.PreferredOnly, 1)

	assert.Equal(t, at(9, 30), part.Overlapping[0].Start)
	assert.Equal(t, at(10, 0), part.Overlapping[0].End)
	assert.Equal(t, []string{"A"}, part.Overlapping[0].BusyOwnerIDs)
	assert.Equal(t, []string{"B"}, part.Overlapping[0].PreferredOwnerIDs)

	assert.Equal(t, at(9, 0), part.BusyOnly[0].Start)
	assert.Equal(t, at(9, 30), part.BusyOnly[0].End)
	assert.Equal(t, 0, part.BusyOnly[0].PreferredCount)

	assert.Equal(t, at(10, 0), part.PreferredOnly[0].Start)
	assert.Equal(t, at(10, 30), part.PreferredOnly[0].End)
	assert.Equal(t, 0, part.PreferredOnly[0].BusyCount)
}

func TestSplitOverlaps_BusySpanningTwoPreferred(t *testing.T) {
	part := SplitOverlaps(
		[]models.TimeSlot{slot("A", at(8, 0), at(14, 0))},
		[]models.TimeSlot{
			slot("B", at(9, 0), at(10, 0)),
			slot("C", at(11, 0), at(12, 0)),
		},
	)

	require.Len(t, part.Overlapping, 2)
	assert.Equal(t, at(9, 0), part.Overlapping[0].Start)
	assert.Equal(t, at(11, 0), part.Overlapping[1].Start)

	// Both overlaps are punched out of the busy slot, leaving three pieces.
	require.Len(t, part.BusyOnly, 3)
	assert.Equal(t, at(8, 0), part.BusyOnly[0].Start)
	assert.Equal(t, at(9, 0), part.BusyOnly[0].End)
	assert.Equal(t, at(10, 0), part.BusyOnly[1].Start)
	assert.Equal(t, at(11, 0), part.BusyOnly[1].End)
	assert.Equal(t, at(12, 0), part.BusyOnly[2].Start)
	assert.Equal(t, at(14, 0), part.BusyOnly[2].End)
	assert.Empty(t, part.PreferredOnly)
}

func TestSplitOverlaps_FullyContainedLeavesNoRemainder(t *testing.T) {
	part := SplitOverlaps(
		[]models.TimeSlot{slot("A", at(9, 0), at(10, 0))},
		[]models.TimeSlot{slot("B", at(9, 0), at(10, 0))},
	)
	require.Len(t, part.Overlapping, 1)
	assert.Empty(t, part.BusyOnly)
	assert.Empty(t, part.PreferredOnly)
}

func TestSplitOverlaps_EmptySides(t *testing.T) {
	part := SplitOverlaps(nil, nil)
	assert.NotNil(t, part.Overlapping)
	assert.NotNil(t, part.BusyOnly)
	assert.NotNil(t, part.PreferredOnly)

	part = SplitOverlaps(nil, []models.TimeSlot{slot("B", at(9, 0), at(10, 0))})
	assert.Empty(t, part.Overlapping)
	assert.Len(t, part.PreferredOnly, 1)
}

func TestSplitOverlaps_SelfOverlappingInput(t *testing.T) {
	part := SplitOverlaps(
		[]models.TimeSlot{
			slot("A", at(9, 0), at(11, 0)),
			slot("B", at(10, 0), at(12, 0)),
		},
		nil,
	)
	require.Len(t, part.BusyOnly, 3)
	assert.Equal(t, 2, part.BusyOnly[1].BusyCount)
}

func TestSplitOverlaps_MalformedInputNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		part := SplitOverlaps(
			[]models.TimeSlot{slot("A", at(10, 0), at(9, 0)), {}},
			[]models.TimeSlot{slot("", at(9, 0), at(10, 0))},
		)
		assert.Empty(t, part.Overlapping)
		assert.Empty(t, part.BusyOnly)
		assert.Empty(t, part.PreferredOnly)
	})
}

func TestSplitOverlaps_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	owners := []string{"u1", "u2", "u3"}

	for iter := 0; iter < 200; iter++ {
		busy := randomSlots(rng, rng.Intn(8), owners)
		preferred := randomSlots(rng, rng.Intn(8), owners)
		part := SplitOverlaps(busy, preferred)

		for _, cell := range gridCells() {
			busyOwners := ownersAt(busy, cell)
			prefOwners := ownersAt(preferred, cell)
			inOverlap := segmentsCover(part.Overlapping, cell)
			inBusy := segmentsCover(part.BusyOnly, cell)
			inPref := segmentsCover(part.PreferredOnly, cell)

			// At most one output segment covers any instant.
			assert.LessOrEqual(t, inOverlap+inBusy+inPref, 1, "cell %s covered twice", cell)

			switch {
			case len(busyOwners) > 0 && len(prefOwners) > 0:
				assert.Equal(t, 1, inOverlap, "cell %s should overlap", cell)
			case len(busyOwners) > 0:
				assert.Equal(t, 1, inBusy, "cell %s should be busy-only", cell)
			case len(prefOwners) > 0:
				assert.Equal(t, 1, inPref, "cell %s should be preferred-only", cell)
			default:
				assert.Equal(t, 0, inOverlap+inBusy+inPref, "cell %s should be empty", cell)
			}
		}

		assert.Equal(t, part, SplitOverlaps(shuffled(rng, busy), shuffled(rng, preferred)), "shuffle changed output")

		againBusy, againPref := PartitionToSlots(part)
		assert.Equal(t, part, SplitOverlaps(againBusy, againPref), "not idempotent")
	}
}
