package suggestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"syncslot/models"

	"github.com/go-redis/redis/v8"
)

const suggestionPrefix = "suggest:"

// SuggestionCache stores computed responses by key. A miss is (nil, nil).
type SuggestionCache interface {
	Get(ctx context.Context, key string) (*models.SuggestionResponse, error)
	Set(ctx context.Context, key string, resp *models.SuggestionResponse) error
}

type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client, ttl: ttl}
}

func (c *RedisSuggestionCache) Get(ctx context.Context, key string) (*models.SuggestionResponse, error) {
	data, err := c.client.Get(ctx, suggestionPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp models.SuggestionResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RedisSuggestionCache) Set(ctx context.Context, key string, resp *models.SuggestionResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, suggestionPrefix+key, b, c.ttl).Err()
}

// cacheKey changes whenever the event, its slots or the request change.
func cacheKey(event *models.Event, slots []models.TimeSlot, req models.SuggestionRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d|%d|%d|%s|", event.Version, event.DurationMinutes, req.Limit, req.Note)
	for _, w := range event.Windows {
		fmt.Fprintf(h, "w%d-%d|", w.Start.UnixNano(), w.End.UnixNano())
	}
	for _, s := range slots {
		fmt.Fprintf(h, "%s:%s:%s:%d-%d|", s.ID, s.OwnerID, s.Kind, s.Start.UnixNano(), s.End.UnixNano())
	}
	return event.ID + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
