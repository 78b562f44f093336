package suggestion

import (
	"context"
	"time"

	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	"syncslot/models"
)

type SuggestionService interface {
	Suggest(ctx context.Context, eventID, userID string, req models.SuggestionRequest) (*models.SuggestionResponse, error)
}

// TextGenerator produces a completion for a prompt. *GeminiClient implements it.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// DefaultSuggestionService ranks candidate meeting times. Generator and Cache
// are optional.
type DefaultSuggestionService struct {
	Events    eventRepo.EventRepository
	Slots     slotRepo.SlotRepository
	Generator TextGenerator
	Cache     SuggestionCache
	Now       func() time.Time
}

func NewSuggestionService(events eventRepo.EventRepository, slots slotRepo.SlotRepository, gen TextGenerator, cache SuggestionCache) *DefaultSuggestionService {
	return &DefaultSuggestionService{
		Events:    events,
		Slots:     slots,
		Generator: gen,
		Cache:     cache,
		Now:       time.Now,
	}
}
