package availability

import (
	"math/rand"
	"testing"
	"time"

	"syncslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateDensity_TwoOverlappingOwners(t *testing.T) {
	blocks := AggregateDensity([]models.TimeSlot{
		slot("A", at(10, 0), at(11, 0)),
		slot("B", at(10, 30), at(11, 30)),
	})

	require.Len(t, blocks, 3)
	assert.Equal(t, models.DensityBlock{Start: at(10, 0), End: at(10, 30), Count: 1, OwnerIDs: []string{"A"}}, blocks[0])
	assert.Equal(t, models.DensityBlock{Start: at(10, 30), End: at(11, 0), Count: 2, OwnerIDs: []string{"A", "B"}}, blocks[1])
	assert.Equal(t, models.DensityBlock{Start: at(11, 0), End: at(11, 30), Count: 1, OwnerIDs: []string{"B"}}, blocks[2])
}

func TestAggregateDensity_Empty(t *testing.T) {
	blocks := AggregateDensity(nil)
	assert.NotNil(t, blocks)
	assert.Empty(t, blocks)
}

func TestAggregateDensity_GapEmitsNothing(t *testing.T) {
	blocks := AggregateDensity([]models.TimeSlot{
		slot("A", at(9, 0), at(10, 0)),
		slot("A", at(11, 0), at(12, 0)),
	})
	require.Len(t, blocks, 2)
	assert.Equal(t, at(10, 0), blocks[0].End)
	assert.Equal(t, at(11, 0), blocks[1].Start)
}

func TestAggregateDensity_MergesTouchingSameOwners(t *testing.T) {
	blocks := AggregateDensity([]models.TimeSlot{
		slot("A", at(9, 0), at(10, 0)),
		slot("A", at(10, 0), at(11, 0)),
		slot("B", at(9, 0), at(11, 0)),
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, at(9, 0), blocks[0].Start)
	assert.Equal(t, at(11, 0), blocks[0].End)
	assert.Equal(t, []string{"A", "B"}, blocks[0].OwnerIDs)
}

func TestAggregateDensity_OwnerSetComparedAsSet(t *testing.T) {
	// The same pair of owners listed in a different order still merges.
	blocks := AggregateDensity([]models.TimeSlot{
		slot("B", at(9, 0), at(10, 0)),
		slot("A", at(9, 0), at(10, 0)),
		slot("A", at(10, 0), at(11, 0)),
		slot("B", at(10, 0), at(11, 0)),
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Count)
}

func TestAggregateDensity_DuplicateOwnerCountsOnce(t *testing.T) {
	blocks := AggregateDensity([]models.TimeSlot{
		slot("A", at(9, 0), at(10, 0)),
		slot("A", at(9, 0), at(10, 0)),
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Count)
	assert.Equal(t, []string{"A"}, blocks[0].OwnerIDs)
}

func TestAggregateDensity_DropsMalformedSlots(t *testing.T) {
	var blocks []models.DensityBlock
	require.NotPanics(t, func() {
		blocks = AggregateDensity([]models.TimeSlot{
			slot("A", at(9, 0), at(9, 0)),
			slot("A", at(10, 0), at(9, 0)),
			slot("", at(9, 0), at(10, 0)),
			slot("B", time.Time{}, at(10, 0)),
			slot("C", at(9, 0), time.Time{}),
			slot("D", at(12, 0), at(13, 0)),
		})
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"D"}, blocks[0].OwnerIDs)
}

func TestAggregateDensity_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	owners := []string{"u1", "u2", "u3", "u4"}

	for iter := 0; iter < 200; iter++ {
		slots := randomSlots(rng, 1+rng.Intn(12), owners)
		blocks := AggregateDensity(slots)

		for i, b := range blocks {
			assert.True(t, b.End.After(b.Start), "block %d has no duration", i)
			assert.Equal(t, len(b.OwnerIDs), b.Count)
			if i > 0 {
				prev := blocks[i-1]
				assert.False(t, b.Start.Before(prev.End), "blocks %d and %d overlap", i-1, i)
				if b.Start.Equal(prev.End) {
					assert.NotEqual(t, prev.OwnerIDs, b.OwnerIDs, "touching blocks %d and %d share owners", i-1, i)
				}
			}
		}

		// Every grid cell carries exactly the owners of the raw input.
		for _, cell := range gridCells() {
			want := ownersAt(slots, cell)
			var got []string
			for _, b := range blocks {
				if !b.Start.After(cell) && b.End.After(cell) {
					got = b.OwnerIDs
				}
			}
			if len(want) == 0 {
				assert.Empty(t, got, "cell %s should be uncovered", cell)
			} else {
				assert.Equal(t, want, got, "cell %s", cell)
			}
		}

		assert.Equal(t, blocks, AggregateDensity(shuffled(rng, slots)), "shuffle changed output")
		assert.Equal(t, blocks, AggregateDensity(BlocksToSlots(blocks, models.SlotKindPreferred)), "not idempotent")
	}
}
