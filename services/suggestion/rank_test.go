package suggestion

import (
	"sort"
	"testing"
	"time"

	"syncslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)

func hm(h, m int) time.Time {
	return t0.Add(time.Duration(h-9)*time.Hour + time.Duration(m)*time.Minute)
}

func TestCandidates(t *testing.T) {
	windows := []models.TimeWindow{
		{Start: hm(9, 0), End: hm(10, 30)},
		{Start: hm(10, 0), End: hm(11, 0)}, // overlaps the first
	}
	starts := Candidates(windows, time.Hour)
	assert.Equal(t, []time.Time{hm(9, 0), hm(9, 15), hm(9, 30), hm(10, 0)}, starts)

	assert.Empty(t, Candidates(windows, 3*time.Hour))
	assert.Empty(t, Candidates(windows, 0))
}

func TestCandidates_CapKeepsEarliestAcrossWindows(t *testing.T) {
	long := models.TimeWindow{Start: t0.Add(10 * 24 * time.Hour), End: t0.Add(70 * 24 * time.Hour)}
	early := models.TimeWindow{Start: hm(9, 0), End: hm(10, 0)}

	starts := Candidates([]models.TimeWindow{long, early}, time.Hour)
	require.Len(t, starts, maxCandidates)
	assert.Equal(t, hm(9, 0), starts[0])
	assert.Equal(t, long.Start, starts[1])
	assert.True(t, sort.SliceIsSorted(starts, func(i, j int) bool { return starts[i].Before(starts[j]) }))

	assert.Equal(t, starts, Candidates([]models.TimeWindow{early, long}, time.Hour))
}

func TestRank_PrefersCoveredTimes(t *testing.T) {
	windows := []models.TimeWindow{{Start: hm(9, 0), End: hm(12, 0)}}
	preferred := []models.TimeSlot{
		{OwnerID: "a", Start: hm(10, 0), End: hm(11, 0)},
		{OwnerID: "b", Start: hm(10, 0), End: hm(12, 0)},
	}
	busy := []models.TimeSlot{{OwnerID: "c", Start: hm(11, 0), End: hm(12, 0)}}

	ranked := Rank(windows, time.Hour, preferred, busy)
	require.NotEmpty(t, ranked)

	best := ranked[0]
	assert.Equal(t, hm(10, 0), best.Start)
	assert.Equal(t, 120, best.Score)
	assert.Equal(t, 2, best.PreferredCount)
	assert.Equal(t, 0, best.BusyCount)

	// 09:00 and 11:00 both score zero; the later start ranks last.
	last := ranked[len(ranked)-1]
	assert.Equal(t, hm(11, 0), last.Start)
	assert.Equal(t, 0, last.Score)
	assert.Equal(t, 1, last.BusyCount)
}

func TestRank_TiesBreakByStart(t *testing.T) {
	windows := []models.TimeWindow{{Start: hm(9, 0), End: hm(11, 0)}}
	ranked := Rank(windows, 30*time.Minute, nil, nil)
	require.Len(t, ranked, 7)
	for i := 1; i < len(ranked); i++ {
		assert.True(t, ranked[i-1].Start.Before(ranked[i].Start))
	}
}

func TestRank_Deterministic(t *testing.T) {
	windows := []models.TimeWindow{{Start: hm(9, 0), End: hm(17, 0)}}
	preferred := []models.TimeSlot{
		{OwnerID: "a", Start: hm(9, 0), End: hm(13, 0)},
		{OwnerID: "b", Start: hm(12, 0), End: hm(15, 0)},
	}
	reversed := []models.TimeSlot{preferred[1], preferred[0]}
	assert.Equal(t, Rank(windows, time.Hour, preferred, nil), Rank(windows, time.Hour, reversed, nil))
}
