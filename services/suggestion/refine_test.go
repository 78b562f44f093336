package suggestion

import (
	"strings"
	"testing"
	"time"

	"syncslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []models.Suggestion {
	return []models.Suggestion{
		{Start: hm(9, 0), End: hm(10, 0), Score: 90, Reason: "r0"},
		{Start: hm(10, 0), End: hm(11, 0), Score: 60, Reason: "r1"},
		{Start: hm(11, 0), End: hm(12, 0), Score: 30, Reason: "r2"},
	}
}

func TestApplyRefinement(t *testing.T) {
	out, err := applyRefinement("```json\n[{\"index\":2,\"reason\":\"after lunch\"},{\"index\":2},{\"index\":0}]\n```", sampleCandidates(), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, hm(11, 0), out[0].Start)
	assert.Equal(t, "after lunch", out[0].Reason)
	assert.Equal(t, hm(9, 0), out[1].Start)
	assert.Equal(t, "r0", out[1].Reason)
	assert.Equal(t, hm(10, 0), out[2].Start)
}

func TestApplyRefinement_RespectsLimit(t *testing.T) {
	out, err := applyRefinement(`[{"index":1},{"index":0},{"index":2}]`, sampleCandidates(), 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, hm(10, 0), out[0].Start)
}

func TestApplyRefinement_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"prose":        "I think 10am is best",
		"empty array":  "[]",
		"out of range": `[{"index":7}]`,
		"negative":     `[{"index":-1}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := applyRefinement(raw, sampleCandidates(), 3)
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	ev := &models.Event{Title: "Retro", DurationMinutes: 60, CoordinatorID: "a", ParticipantIDs: []string{"b"}}
	loc := time.FixedZone("UTC+2", 2*60*60)
	prompt, err := buildPrompt(ev, sampleCandidates(), 2, "  avoid mornings ", loc)
	require.NoError(t, err)

	assert.Contains(t, prompt, `"Retro"`)
	assert.Contains(t, prompt, "2 participants")
	assert.Contains(t, prompt, "Coordinator note: avoid mornings")
	assert.Contains(t, prompt, "2024-06-03T11:00:00+02:00")
	assert.True(t, strings.HasSuffix(prompt, "best first."))
}
