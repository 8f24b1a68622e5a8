package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const analysisTTL = 10 * time.Minute

// AnalysisCache stores generated analyses per user so repeated taps on the
// "recommendations" button do not hammer the text-generation service.
// Key format: analysis:<user_id>
type AnalysisCache struct {
	client *redis.Client
}

func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{client: client}
}

// Get returns the cached analysis for the user, if any.
func (c *AnalysisCache) Get(ctx context.Context, userID string) (string, bool, error) {
	text, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("analysis cache get: %w", err)
	}
	return text, true, nil
}

// Set stores the analysis (expires after analysisTTL).
func (c *AnalysisCache) Set(ctx context.Context, userID, text string) error {
	return c.client.Set(ctx, c.key(userID), text, analysisTTL).Err()
}

func (c *AnalysisCache) key(userID string) string {
	return "analysis:" + userID
}
