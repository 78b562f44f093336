package suggestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	"syncslot/models"
	"syncslot/utils"

	"go.uber.org/zap"
)

const (
	SourceRanking = "ranking"
	SourceGemini  = "gemini"

	defaultLimit = 5
	maxLimit     = 20
	// generatorTimeout bounds the optional refinement step.
	generatorTimeout = 15 * time.Second
)

// Suggest ranks candidate meeting times for an open event and, when a
// generator is configured, lets it reorder the best of them.
func (s *DefaultSuggestionService) Suggest(ctx context.Context, eventID, userID string, req models.SuggestionRequest) (*models.SuggestionResponse, error) {
	event, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, utils.NewNotFoundError("event %s not found", eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if !event.IsMember(userID) {
		return nil, utils.NewForbiddenError("user is not a participant of this event")
	}
	if event.Status != models.EventStatusOpen {
		return nil, utils.NewConflictError("event is %s", event.Status)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	req.Limit = limit

	slots, err := s.Slots.Find(ctx, slotRepo.SlotFilter{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}

	key := cacheKey(event, slots, req)
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key)
		if err != nil {
			utils.GetLogger().Warn("Suggestion cache read failed", zap.String("eventID", eventID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	var preferred, busy []models.TimeSlot
	for _, slot := range slots {
		if slot.Kind == models.SlotKindBusy {
			busy = append(busy, slot)
		} else {
			preferred = append(preferred, slot)
		}
	}
	ranked := Rank(event.Windows, event.Duration(), preferred, busy)

	resp := &models.SuggestionResponse{
		EventID:     eventID,
		Suggestions: head(ranked, limit),
		Source:      SourceRanking,
		GeneratedAt: s.now(),
	}
	if s.Generator != nil && len(ranked) > 1 {
		if refined, ok := s.refine(ctx, event, head(ranked, 2*limit), limit, req.Note); ok {
			resp.Suggestions = refined
			resp.Source = SourceGemini
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, resp); err != nil {
			utils.GetLogger().Warn("Suggestion cache write failed", zap.String("eventID", eventID), zap.Error(err))
		}
	}
	return resp, nil
}

// refine asks the generator to reorder candidates; ok is false on any failure.
func (s *DefaultSuggestionService) refine(ctx context.Context, event *models.Event, candidates []models.Suggestion, limit int, note string) ([]models.Suggestion, bool) {
	loc := time.UTC
	if event.Timezone != "" {
		if l, err := time.LoadLocation(event.Timezone); err == nil {
			loc = l
		}
	}
	prompt, err := buildPrompt(event, candidates, limit, note, loc)
	if err != nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, generatorTimeout)
	defer cancel()
	raw, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("Suggestion refinement failed, using ranking", zap.String("eventID", event.ID), zap.Error(err))
		return nil, false
	}
	refined, err := applyRefinement(raw, candidates, limit)
	if err != nil {
		utils.GetLogger().Warn("Ignoring refinement output", zap.String("eventID", event.ID), zap.Error(err))
		return nil, false
	}
	return refined, true
}

func (s *DefaultSuggestionService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func head(list []models.Suggestion, n int) []models.Suggestion {
	if len(list) > n {
		list = list[:n]
	}
	out := make([]models.Suggestion, len(list))
	copy(out, list)
	return out
}
