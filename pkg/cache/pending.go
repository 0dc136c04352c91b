package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const pendingQueueKey = "sync:pending"

// PendingSwipe is a swipe that could not reach the ledger because of a
// transient failure. It sits in a durable Redis list until the retry worker
// drains it; the idempotency token makes redelivery harmless.
type PendingSwipe struct {
	Token       string `json:"token"`
	HouseholdID string `json:"household_id"`
	MemberID    string `json:"member_id"`
	NameID      string `json:"name_id"`
	Decision    string `json:"decision"`
	SwipedAt    string `json:"swiped_at"` // RFC3339Nano
}

// PendingQueue is the Redis-backed retry queue for failed pushes.
type PendingQueue struct {
	client *RedisClient
}

// NewPendingQueue creates a PendingQueue backed by the given RedisClient.
func NewPendingQueue(r *RedisClient) *PendingQueue {
	return &PendingQueue{client: r}
}

// Enqueue appends entries to the tail of the queue.
func (q *PendingQueue) Enqueue(ctx context.Context, entries ...PendingSwipe) error {
	if len(entries) == 0 {
		return nil
	}
	vals := make([]any, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("pending encode: %w", err)
		}
		vals = append(vals, raw)
	}
	if err := q.client.Client().RPush(ctx, pendingQueueKey, vals...).Err(); err != nil {
		return fmt.Errorf("pending enqueue: %w", err)
	}
	return nil
}

// Dequeue pops the head entry. Returns (nil, nil) when the queue is empty.
func (q *PendingQueue) Dequeue(ctx context.Context) (*PendingSwipe, error) {
	raw, err := q.client.Client().LPop(ctx, pendingQueueKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pending dequeue: %w", err)
	}
	var e PendingSwipe
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("pending decode: %w", err)
	}
	return &e, nil
}

// Requeue puts an entry back at the head so ordering is preserved across a
// failed retry.
func (q *PendingQueue) Requeue(ctx context.Context, e PendingSwipe) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("pending encode: %w", err)
	}
	if err := q.client.Client().LPush(ctx, pendingQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("pending requeue: %w", err)
	}
	return nil
}

// Len returns the number of queued entries.
func (q *PendingQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.Client().LLen(ctx, pendingQueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("pending len: %w", err)
	}
	return n, nil
}
