package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/creatorstack/tracker/internal/domain"
)

// TaskEvent is the envelope published for every successful mutation.
// The dashboard's realtime layer subscribes to these; the engine itself
// never consumes them.
type TaskEvent struct {
	Type string       `json:"type"`
	Task *domain.Task `json:"task,omitempty"`
}

type PubSub struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PubSub{client: client}, nil
}

func (ps *PubSub) Close() error {
	if err := ps.client.Close(); err != nil {
		return fmt.Errorf("redis.PubSub.Close: %w", err)
	}
	return nil
}

// PublishTaskEvent marshals and publishes a task event on the shared
// event channel.
func (ps *PubSub) PublishTaskEvent(ctx context.Context, eventType string, task *domain.Task) error {
	payload, err := json.Marshal(TaskEvent{Type: eventType, Task: task})
	if err != nil {
		return fmt.Errorf("redis.PubSub.PublishTaskEvent: marshal: %w", err)
	}

	if err := ps.client.Publish(ctx, TaskEventChannel(), payload).Err(); err != nil {
		return fmt.Errorf("redis.PubSub.PublishTaskEvent: %w", err)
	}

	return nil
}

// SubscribeTaskEvents subscribes to the task event channel and decodes
// every payload. The returned channel closes when ctx ends or the
// subscription drops; stop releases the subscription early. Malformed
// payloads are dropped, not fatal.
func (ps *PubSub) SubscribeTaskEvents(ctx context.Context) (<-chan TaskEvent, func(), error) {
	sub := ps.client.Subscribe(ctx, TaskEventChannel())

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.PubSub.SubscribeTaskEvents: receive confirmation: %w", err)
	}

	out := make(chan TaskEvent, 64)
	msgs := sub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, err := DecodeTaskEvent([]byte(msg.Payload))
				if err != nil {
					log.Warn().Err(err).Msg("dropping malformed task event")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}

// DecodeTaskEvent unmarshals one published task event payload.
func DecodeTaskEvent(payload []byte) (TaskEvent, error) {
	var ev TaskEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return TaskEvent{}, fmt.Errorf("redis.DecodeTaskEvent: %w", err)
	}
	return ev, nil
}

// TaskEventChannel returns the Redis channel name for task mutation events.
func TaskEventChannel() string {
	return "tracker:tasks:events"
}
