package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ReplicaTTL bounds staleness of the local replica. Reads fall back to
	// the primary store once a replica entry ages out.
	ReplicaTTL = 24 * time.Hour

	replicaKeyPrefix   = "replica"
	watermarkKeyPrefix = "watermark"
)

// SwipeReplica is the Redis-backed local replica of effective decisions.
// The sync coordinator refreshes it on every successful pull/record, and the
// candidate queue builder reads it when the primary store is unreachable, so
// local decision-making never blocks on the network.
//
// Key format: "replica:{householdID}:{memberID}" → hash of nameID → decision.
type SwipeReplica struct {
	client *RedisClient
}

// NewSwipeReplica creates a SwipeReplica backed by the given RedisClient.
func NewSwipeReplica(r *RedisClient) *SwipeReplica {
	return &SwipeReplica{client: r}
}

// SetDecision records one effective decision in the replica.
func (c *SwipeReplica) SetDecision(ctx context.Context, householdID, memberID, nameID uuid.UUID, decision string) error {
	key := c.key(householdID, memberID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, nameID.String(), decision)
	pipe.Expire(ctx, key, ReplicaTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replica set: %w", err)
	}
	return nil
}

// Decisions returns the member's replicated effective decisions keyed by
// name id. An empty map means no replica (or an empty one); the caller
// decides whether that is acceptable staleness.
func (c *SwipeReplica) Decisions(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]string, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(householdID, memberID)).Result()
	if err != nil {
		return nil, fmt.Errorf("replica get: %w", err)
	}

	decisions := make(map[uuid.UUID]string, len(vals))
	for rawID, decision := range vals {
		nameID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("replica parse name id: %w", err)
		}
		decisions[nameID] = decision
	}
	return decisions, nil
}

// SetWatermark stores the household's last pulled ledger sequence for a member.
func (c *SwipeReplica) SetWatermark(ctx context.Context, householdID, memberID uuid.UUID, seq int64) error {
	key := c.watermarkKey(householdID, memberID)
	if err := c.client.Client().Set(ctx, key, seq, ReplicaTTL).Err(); err != nil {
		return fmt.Errorf("watermark set: %w", err)
	}
	return nil
}

// Watermark returns the last pulled ledger sequence, zero when none is stored.
func (c *SwipeReplica) Watermark(ctx context.Context, householdID, memberID uuid.UUID) (int64, error) {
	raw, err := c.client.Client().Get(ctx, c.watermarkKey(householdID, memberID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("watermark get: %w", err)
	}
	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("watermark parse: %w", err)
	}
	return seq, nil
}

func (c *SwipeReplica) key(householdID, memberID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", replicaKeyPrefix, householdID, memberID)
}

func (c *SwipeReplica) watermarkKey(householdID, memberID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", watermarkKeyPrefix, householdID, memberID)
}
