// Package dedup remembers which webhook events were already applied so that
// redeliveries can be acknowledged without touching the booking store.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Marker struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Marker {
	return &Marker{client: client, ttl: ttl}
}

func key(eventID string) string {
	return "webhook:stripe:event:" + eventID
}

func (m *Marker) Seen(ctx context.Context, eventID string) (bool, error) {
	const op = "lib.dedup.Seen"

	n, err := m.client.Exists(ctx, key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

// Mark records eventID. It must only be called once the event was applied.
func (m *Marker) Mark(ctx context.Context, eventID string) error {
	const op = "lib.dedup.Mark"

	if err := m.client.SetNX(ctx, key(eventID), 1, m.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
