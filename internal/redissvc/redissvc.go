// Package redissvc carries inventory change signals between processes over
// Redis pub/sub.
package redissvc

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "pantry:items:changed"

// Feed publishes and receives change signals on one Redis channel.
type Feed struct {
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

func NewFeed(rdb *redis.Client, channel string, logger *zap.Logger) *Feed {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Feed{
		rdb:     rdb,
		channel: channel,
		logger:  logger,
	}
}

func (f *Feed) Publish(ctx context.Context) error {
	if err := f.rdb.Publish(ctx, f.channel, "changed").Err(); err != nil {
		return fmt.Errorf("publish %s: %w", f.channel, err)
	}
	return nil
}

// Listen subscribes to the channel and returns once Redis has confirmed the
// subscription, so no signal published after Listen returns is missed.
func (f *Feed) Listen(ctx context.Context) (<-chan struct{}, error) {
	pubsub := f.rdb.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", f.channel, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					f.logger.Warn("redis subscription closed", zap.String("channel", f.channel))
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Ping checks connectivity at startup.
func (f *Feed) Ping(ctx context.Context) error {
	return f.rdb.Ping(ctx).Err()
}
