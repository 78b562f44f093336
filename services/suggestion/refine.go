package suggestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"syncslot/models"
)

type promptCandidate struct {
	Index          int    `json:"index"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Score          int    `json:"score"`
	PreferredCount int    `json:"preferredCount"`
	BusyCount      int    `json:"busyCount"`
}

type refinedPick struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// buildPrompt asks the model to pick and order candidates. Times are shown in
// the event's zone so reasons can mention local hours.
func buildPrompt(event *models.Event, candidates []models.Suggestion, limit int, note string, loc *time.Location) (string, error) {
	list := make([]promptCandidate, len(candidates))
	for i, c := range candidates {
		list[i] = promptCandidate{
			Index:          i,
			Start:          c.Start.In(loc).Format(time.RFC3339),
			End:            c.End.In(loc).Format(time.RFC3339),
			Score:          c.Score,
			PreferredCount: c.PreferredCount,
			BusyCount:      c.BusyCount,
		}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You help a group pick a meeting time for %q (%d minutes, %d participants).\n",
		event.Title, event.DurationMinutes, len(event.Members()))
	sb.WriteString("Each candidate has a score: preferred participant-minutes minus busy participant-minutes.\n")
	sb.WriteString("Prefer high scores, then sociable local hours.\n")
	if note = strings.TrimSpace(note); note != "" {
		fmt.Fprintf(&sb, "Coordinator note: %s\n", note)
	}
	fmt.Fprintf(&sb, "Candidates: %s\n", b)
	fmt.Fprintf(&sb, "Reply with JSON only: an array of at most %d objects {\"index\": <candidate index>, \"reason\": <one short sentence>}, best first.", limit)
	return sb.String(), nil
}

// applyRefinement reorders candidates as the model suggested. Missing slots
// are filled from the deterministic ranking.
func applyRefinement(raw string, candidates []models.Suggestion, limit int) ([]models.Suggestion, error) {
	var picks []refinedPick
	if err := json.Unmarshal([]byte(stripFence(raw)), &picks); err != nil {
		return nil, fmt.Errorf("unparseable model output: %w", err)
	}
	if len(picks) == 0 {
		return nil, errors.New("model returned no picks")
	}

	used := make(map[int]bool)
	out := make([]models.Suggestion, 0, limit)
	for _, p := range picks {
		if p.Index < 0 || p.Index >= len(candidates) {
			return nil, fmt.Errorf("model picked unknown candidate %d", p.Index)
		}
		if used[p.Index] {
			continue
		}
		used[p.Index] = true
		s := candidates[p.Index]
		if r := strings.TrimSpace(p.Reason); r != "" {
			s.Reason = r
		}
		out = append(out, s)
		if len(out) == limit {
			return out, nil
		}
	}
	for i, c := range candidates {
		if len(out) == limit {
			break
		}
		if !used[i] {
			out = append(out, c)
		}
	}
	return out, nil
}

// stripFence removes a markdown code fence around a JSON payload.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
