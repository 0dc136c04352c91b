package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
)

const filterKeyPrefix = "filter"

// FilterStore keeps each member's current filter in Redis. It is the
// preferences-store collaborator: a missing entry means the zero filter
// (match everything), and filters never expire — they are tiny and a stale
// filter only changes what the queue offers next, never recorded swipes.
type FilterStore struct {
	client *RedisClient
}

// NewFilterStore creates a FilterStore backed by the given RedisClient.
func NewFilterStore(r *RedisClient) *FilterStore {
	return &FilterStore{client: r}
}

// Get returns the member's filter, or the zero filter when none is stored.
func (s *FilterStore) Get(ctx context.Context, memberID uuid.UUID) (models.Filter, error) {
	raw, err := s.client.Client().Get(ctx, s.key(memberID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Filter{}, nil
	}
	if err != nil {
		return models.Filter{}, fmt.Errorf("filter get: %w", err)
	}

	var filter models.Filter
	if err := json.Unmarshal(raw, &filter); err != nil {
		return models.Filter{}, fmt.Errorf("filter decode: %w", err)
	}
	return filter, nil
}

// Put stores the member's filter.
func (s *FilterStore) Put(ctx context.Context, memberID uuid.UUID, filter models.Filter) error {
	raw, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("filter encode: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.key(memberID), raw, 0).Err(); err != nil {
		return fmt.Errorf("filter put: %w", err)
	}
	return nil
}

func (s *FilterStore) key(memberID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", filterKeyPrefix, memberID)
}
